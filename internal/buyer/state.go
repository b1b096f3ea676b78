// Package buyer implements the buyer agent's per-vendor negotiation loop
// (§4.H): one worker per (request, vendor) that drives rounds through the
// negotiation engine, seller agent, and evaluation kernel, writing every
// move to the audit trail and memory store.
package buyer

import (
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/concession"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/config"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/kernel"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

// concessionLadder mirrors the negotiation package's stalemate ladder: the
// lever order the buyer escalates through on repeated stalemates.
var concessionLadder = []model.Lever{model.LeverTerm, model.LeverPayment, model.LeverValue}

// newState builds the round-1 VendorNegotiationState: a plan with the
// seed-bundle anchor price, opponent model seeded from
// price_floor*0.9/anchor*1.1, and the match summary already computed by the
// shortlist gate (§4.H step 1).
func newState(req *model.Request, vendor *model.VendorProfile, matchSummary model.VendorMatchSummary, competingOffers []model.CompetingOffer, cfg *config.Config) *model.VendorNegotiationState {
	maxRounds := vendor.ExchangePolicy.MaxRounds
	if maxRounds <= 0 {
		maxRounds = cfg.DefaultMaxRounds
	}
	policy := vendor.ExchangePolicy
	policy.MaxRounds = maxRounds

	listPrice := vendor.ListPrice(req.Quantity)
	anchorDiscount := anchorDiscountFraction(listPrice, req.BudgetPerUnit())
	anchorPrice := listPrice * (1 - anchorDiscount)
	if anchorPrice < vendor.Guardrails.PriceFloor {
		anchorPrice = vendor.Guardrails.PriceFloor
	}

	state := &model.VendorNegotiationState{
		Vendor:          vendor,
		Round:           0,
		Active:          true,
		FSMState:        model.FSMInit,
		MatchSummary:    matchSummary,
		CompetingOffers: competingOffers,
		Plan: model.NegotiationPlan{
			Anchors: map[model.Lever]float64{
				model.LeverPrice: anchorPrice,
			},
			ConcessionLadder:   concessionLadder,
			AllowedConcessions: concessionLadder,
			StopConditions: model.StopConditions{
				Utility: cfg.BuyerAcceptThreshold,
				Risk:    req.PolicyContext.RiskThreshold,
			},
			CurrentStrategy: model.StrategyPriceAnchor,
			ExchangePolicy:  policy,
		},
		OpponentModel: model.OpponentModel{
			PriceFloorEstimate:   vendor.Guardrails.PriceFloor * 0.9,
			PriceCeilingEstimate: anchorPrice * 1.1,
			PriceElasticity:      0.5,
			TermElasticity:       0.5,
		},
	}
	return state
}

// anchorDiscountFraction implements the seed-bundle A discount of §4.G:
// clamp((list-budget_pu)/list, 0.05, 0.15).
func anchorDiscountFraction(listPrice, budgetPerUnit float64) float64 {
	if listPrice <= 0 {
		return 0
	}
	raw := (listPrice - budgetPerUnit) / listPrice
	if raw < 0.05 {
		return 0.05
	}
	if raw > 0.15 {
		return 0.15
	}
	return raw
}

// hasZOPA implements spec §4.A/§4.F's feasible_with_trades gate checked
// once before a vendor enters round 1: the buyer's per-unit budget must
// cover the cheaper of the vendor's hard floor or the best concession-engine
// price.
func hasZOPA(req *model.Request, vendor *model.VendorProfile) bool {
	listPrice := vendor.ListPrice(req.Quantity)
	best := concession.Search(listPrice, vendor.Guardrails.PriceFloor, req.Quantity, &vendor.ExchangePolicy)
	concessionsMin := vendor.Guardrails.PriceFloor
	if best.Feasible {
		concessionsMin = best.BestPrice
	}
	return kernel.ZOPAExists(kernel.ZOPAInput{
		BuyerBudgetPerUnit:  req.BudgetPerUnit(),
		SellerFloor:         vendor.Guardrails.PriceFloor,
		ConcessionsMinPrice: concessionsMin,
	})
}

package buyer

import (
	"fmt"
	"time"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/clockutil"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/config"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/guardrail"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/kernel"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/negotiation"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/policy"
)

// alternativeStrategies is the deterministic cycle used to pick "2
// alternatives from other levers" (§4.H step 3) when the round is not a
// seed round.
var alternativeStrategies = []model.BuyerStrategy{
	model.StrategyPriceAnchor,
	model.StrategyTermTrade,
	model.StrategyPaymentTrade,
	model.StrategyValueAdd,
	model.StrategyUltimatum,
	model.StrategyPricePressure,
}

// candidateBundles implements §4.H step 3: seed bundles on round 1 or after
// a replan, else a target bundle for the selected strategy plus two
// alternative-lever bundles.
func candidateBundles(state *model.VendorNegotiationState, req *model.Request, strategy model.BuyerStrategy, cfg *config.Config, clock clockutil.Clock) []model.OfferComponents {
	vendor := state.Vendor
	listPrice := vendor.ListPrice(req.Quantity)
	seedCtx := negotiation.SeedContext{
		Quantity:      req.Quantity,
		Currency:      req.Currency,
		ListPrice:     listPrice,
		FloorPrice:    vendor.Guardrails.PriceFloor,
		BudgetPerUnit: req.BudgetPerUnit(),
		BudgetMax:     req.BudgetMax,
		Policy:        vendor.ExchangePolicy,
	}

	if state.Round <= 1 || state.FSMState == model.FSMReplanRequired {
		return negotiation.GenerateSeedBundles(seedCtx)
	}

	prev, hadPrev := state.LastBuyerOffer()
	if !hadPrev {
		return negotiation.GenerateSeedBundles(seedCtx)
	}

	now := clock.Now()
	targetCtx := func(s model.BuyerStrategy) negotiation.TargetContext {
		return negotiation.TargetContext{
			SeedContext:      seedCtx,
			Strategy:         s,
			PreviousOffer:    prev,
			OpponentFloorEst: state.OpponentModel.PriceFloorEstimate,
			EndOfQuarter:     isEndOfQuarter(now),
			EndOfYear:        isEndOfYear(now),
		}
	}

	bundles := []model.OfferComponents{negotiation.GenerateTargetBundle(targetCtx(strategy))}
	alts := 0
	for _, s := range alternativeStrategies {
		if alts >= 2 {
			break
		}
		if s == strategy {
			continue
		}
		bundles = append(bundles, negotiation.GenerateTargetBundle(targetCtx(s)))
		alts++
	}
	return bundles
}

func isEndOfQuarter(t time.Time) bool {
	m := t.Month()
	return (m == time.March || m == time.June || m == time.September || m == time.December) && t.Day() >= 20
}

func isEndOfYear(t time.Time) bool {
	return t.Month() == time.December && t.Day() >= 10
}

// scoreCandidate implements the "score all via kernel" half of §4.H step 3:
// TCO, buyer utility, policy/guardrail validity, and a short rationale.
func scoreCandidate(offer model.OfferComponents, primaryLever model.Lever, req *model.Request, vendor *model.VendorProfile, matchSummary model.VendorMatchSummary, cfg *config.Config) model.CandidateEvaluation {
	tco, tcoErr := kernel.TCO(kernel.TCOInput{Offer: offer})
	buyerUtility := kernel.BuyerUtility(kernel.BuyerUtilityInput{
		UnitPrice:       offer.UnitPrice,
		BudgetPerUnit:   req.BudgetPerUnit(),
		FeatureScore:    matchSummary.FeatureScore,
		ComplianceScore: matchSummary.ComplianceScore,
		SLAScore:        matchSummary.SLAScore,
		Weights:         cfg.ScoringWeights,
	})

	policyResult := policy.ValidateOffer(req, &offer, vendor, true)
	alerts := guardrail.RunAll(vendor, &offer, cfg)

	var rationale []string
	if tcoErr != nil {
		rationale = append(rationale, fmt.Sprintf("rounding drift on candidate: %v", tcoErr))
	}
	valid := policyResult.Valid && tcoErr == nil
	for _, a := range alerts {
		if a.Blocking {
			valid = false
		}
	}
	rationale = append(rationale, fmt.Sprintf("%s candidate: unit_price=%.2f tco=%.2f utility=%.3f", primaryLever, offer.UnitPrice, tco, buyerUtility))

	return model.CandidateEvaluation{
		Offer:            offer,
		PrimaryLever:     primaryLever,
		TCO:              tco,
		BuyerUtility:     buyerUtility,
		Valid:            valid,
		PolicyViolations: policyResult.Violations,
		GuardrailAlerts:  alerts,
		Rationale:        rationale,
	}
}

// chooseBest scores every candidate and returns the highest-utility valid
// one (falling back to the highest-utility candidate overall if none
// validate cleanly) plus the rejected remainder for the round memory.
func chooseBest(bundles []model.OfferComponents, primaryLever func(model.OfferComponents) model.Lever, req *model.Request, vendor *model.VendorProfile, matchSummary model.VendorMatchSummary, cfg *config.Config) (model.CandidateEvaluation, []model.CandidateEvaluation) {
	evaluated := make([]model.CandidateEvaluation, 0, len(bundles))
	for _, b := range bundles {
		evaluated = append(evaluated, scoreCandidate(b, primaryLever(b), req, vendor, matchSummary, cfg))
	}

	bestIdx := -1
	for i, c := range evaluated {
		if !c.Valid {
			continue
		}
		if bestIdx == -1 || c.BuyerUtility > evaluated[bestIdx].BuyerUtility {
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		for i, c := range evaluated {
			if bestIdx == -1 || c.BuyerUtility > evaluated[bestIdx].BuyerUtility {
				bestIdx = i
			}
		}
	}

	best := evaluated[bestIdx]
	rejected := make([]model.CandidateEvaluation, 0, len(evaluated)-1)
	for i, c := range evaluated {
		if i != bestIdx {
			rejected = append(rejected, c)
		}
	}
	return best, rejected
}

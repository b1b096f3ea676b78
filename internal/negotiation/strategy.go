// Package negotiation implements the per-round decision logic of spec
// §4.G: strategy selection, bundle generation, exchange enforcement,
// opponent modeling, and the close decision. It is the layer the buyer and
// seller agents call into; it never touches the network or a store.
package negotiation

import "github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"

// competitorPressureMargin is the §4.G competitor-leveraging precedence
// threshold: a competing offer must be at least 5% cheaper than the
// current best to trigger PRICE_PRESSURE.
const competitorPressureMargin = 0.05

// concessionLadder maps the ladder position advanced on stalemate to a
// buyer strategy.
var concessionLadder = []model.BuyerStrategy{
	model.StrategyTermTrade,
	model.StrategyPaymentTrade,
	model.StrategyValueAdd,
	model.StrategyUltimatum,
}

// SelectBuyerStrategy implements spec §4.G's buyer strategy selection.
func SelectBuyerStrategy(state *model.VendorNegotiationState, maxStalledRounds int) (model.BuyerStrategy, string) {
	if best, ok := cheapestCompetingOffer(state); ok {
		if currentBest, hasBest := currentBestPrice(state); hasBest && best < currentBest*(1-competitorPressureMargin) {
			return model.StrategyPricePressure, "competitor offer undercuts current best by 5%+"
		}
	}

	if state.StalemateRounds >= maxStalledRounds {
		idx := state.ConcessionIndex
		if idx >= len(concessionLadder) {
			idx = len(concessionLadder) - 1
		}
		return concessionLadder[idx], "stalemate ladder advance"
	}

	round := state.Round
	switch {
	case round == 1:
		return model.StrategyPriceAnchor, "opening round"
	case round == 2 && state.OpponentModel.ConsecutiveNoPriceMoves > 0:
		return model.StrategyTermTrade, "opponent held price in round 1"
	case round == 3 && lastSellerPaymentTerms(state) == model.PaymentNet45:
		return model.StrategyPaymentTrade, "seller proposed slow payment terms"
	case isStalemate(state):
		return model.StrategyUltimatum, "stalemate detected"
	case round >= 4:
		return model.StrategyValueAdd, "late-round value exploration"
	default:
		return model.StrategyPricePressure, "default pressure"
	}
}

func cheapestCompetingOffer(state *model.VendorNegotiationState) (float64, bool) {
	best := 0.0
	found := false
	for _, c := range state.CompetingOffers {
		if !found || c.UnitPrice < best {
			best = c.UnitPrice
			found = true
		}
	}
	return best, found
}

func currentBestPrice(state *model.VendorNegotiationState) (float64, bool) {
	if offer, ok := state.LastSellerOffer(); ok {
		return offer.UnitPrice, true
	}
	if offer, ok := state.LastBuyerOffer(); ok {
		return offer.UnitPrice, true
	}
	return 0, false
}

func lastSellerPaymentTerms(state *model.VendorNegotiationState) model.PaymentTerms {
	offer, ok := state.LastSellerOffer()
	if !ok {
		return ""
	}
	return offer.PaymentTerms
}

// stalemateUtilityFloor and stalemateTCOFloorDollars implement spec §4.G's
// stalemate detection: average utility improvement below 0.01 and average
// TCO improvement below $50 over the last 3 rounds.
const (
	stalemateUtilityFloor   = 0.01
	stalemateTCOFloorDollars = 50.0
	stalemateWindow         = 3
)

// IsStalemate exposes the stalemate check for the buyer agent to drive its
// own StalemateRounds counter.
func IsStalemate(state *model.VendorNegotiationState) bool {
	return isStalemate(state)
}

func isStalemate(state *model.VendorNegotiationState) bool {
	var buyerMoves []model.Offer
	for _, o := range state.History {
		if o.Actor == "buyer" {
			buyerMoves = append(buyerMoves, o)
		}
	}
	if len(buyerMoves) < stalemateWindow+1 {
		return false
	}
	window := buyerMoves[len(buyerMoves)-(stalemateWindow+1):]

	utilityImprovement := 0.0
	tcoImprovement := 0.0
	for i := 1; i < len(window); i++ {
		utilityImprovement += window[i].Score.Utility - window[i-1].Score.Utility
		tcoImprovement += window[i-1].Score.TCO - window[i].Score.TCO
	}
	n := float64(len(window) - 1)
	avgUtility := utilityImprovement / n
	avgTCO := tcoImprovement / n
	return avgUtility < stalemateUtilityFloor && avgTCO < stalemateTCOFloorDollars
}

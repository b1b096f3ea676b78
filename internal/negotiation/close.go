package negotiation

import (
	"math"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/policy"
)

// CloseDecisionInput carries everything spec §4.G's should_close_deal needs.
type CloseDecisionInput struct {
	Request        *model.Request
	Vendor         *model.VendorProfile
	Candidate      model.OfferComponents
	TCO            float64
	BuyerUtility   float64
	SellerUtility  float64
	BuyerThreshold float64
	SellerThreshold float64
	LastTwoOpponentOffers []model.OfferComponents // oldest first, len 0-2
	FinalizeGapAbs float64
	FinalizeGapPct float64
}

// ShouldCloseDeal implements spec §4.G should_close_deal: every hard
// invariant must hold, then either the gap-closing heuristics or an
// outright threshold match gates the close.
func ShouldCloseDeal(in CloseDecisionInput) bool {
	if in.TCO > in.Request.BudgetMax {
		return false
	}
	if in.BuyerUtility < in.BuyerThreshold {
		return false
	}
	if in.SellerUtility < in.SellerThreshold {
		return false
	}
	if in.Candidate.UnitPrice < in.Vendor.Guardrails.PriceFloor {
		return false
	}
	res := policy.ValidateOffer(in.Request, &in.Candidate, in.Vendor, false)
	if !res.Valid {
		return false
	}

	if len(in.LastTwoOpponentOffers) == 2 {
		prev, cur := in.LastTwoOpponentOffers[0], in.LastTwoOpponentOffers[1]
		gap := math.Abs(cur.UnitPrice - prev.UnitPrice)
		favorable := cur.UnitPrice <= prev.UnitPrice
		if favorable && gap < in.FinalizeGapAbs {
			return true
		}
		if favorable && cur.UnitPrice > 0 && gap/cur.UnitPrice < in.FinalizeGapPct {
			return true
		}
	}

	// (c) thresholds met outright: every hard invariant above already held.
	return true
}

// AcceptanceProbability implements spec §4.G's optional explainability
// score: a logistic transform of a weighted fit score, damped by a
// round-based fatigue factor.
func AcceptanceProbability(priceFit, leverFit, utility float64, round int) float64 {
	score := 0.6*priceFit + 0.2*leverFit + 0.2*utility
	logistic := 1.0 / (1.0 + math.Exp(-8*(score-0.7)))
	fatigue := math.Max(0.5, 1-float64(round)*0.05)
	return logistic * fatigue
}

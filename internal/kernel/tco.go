package kernel

import (
	"fmt"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

// ErrRoundingDrift is returned by TCO when the recomputed total diverges
// from the rounded total by more than a cent — a fatal, run-aborting
// invariant breach per spec §7/§8.
type ErrRoundingDrift struct {
	Recomputed float64
	Total      float64
}

func (e ErrRoundingDrift) Error() string {
	return fmt.Sprintf("rounding drift: recomputed %.4f vs total %.4f", e.Recomputed, e.Total)
}

// TCOInput carries the optional prepay adjustment alongside the offer.
type TCOInput struct {
	Offer          model.OfferComponents
	PaymentPrepaid bool
	PrepayRate     float64
}

// TCO computes total cost of ownership per spec §4.A:
//
//	base  = round2(unit_price * quantity * term_months / 12)
//	fees  = sum(positive one_time_fees)
//	credits = -sum(negative one_time_fees)
//	prepay_adj = -round2(base * prepay_rate) when payment_prepaid
//	total = round2(base + fees - credits + prepay_adj)
//
// The invariant |(base+fees-credits+prepay_adj) - total| <= 0.01 is
// checked and returned as ErrRoundingDrift on violation.
func TCO(in TCOInput) (float64, error) {
	o := in.Offer
	base := round2(o.UnitPrice * float64(o.Quantity) * float64(o.TermMonths) / 12.0)

	var fees, credits float64
	for _, v := range o.OneTimeFees {
		if v > 0 {
			fees += v
		} else {
			credits += -v
		}
	}

	var prepayAdj float64
	if in.PaymentPrepaid {
		prepayAdj = -round2(base * in.PrepayRate)
	}

	recomputed := base + fees - credits + prepayAdj
	total := round2(recomputed)

	if diff := recomputed - total; diff > 0.01 || diff < -0.01 {
		return 0, ErrRoundingDrift{Recomputed: recomputed, Total: total}
	}
	return total, nil
}

// MustTCO panics on rounding drift. Used only where the caller has
// already validated the offer cannot legally produce that drift (e.g.
// in tests constructing well-formed fixtures).
func MustTCO(in TCOInput) float64 {
	v, err := TCO(in)
	if err != nil {
		panic(err)
	}
	return v
}

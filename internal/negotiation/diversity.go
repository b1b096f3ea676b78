package negotiation

import "github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"

const (
	diversityUnitDelta  = 5.0
	diversityForcedDrop = 15.0
)

// EnforceOfferDiversity implements spec §4.G's offer-diversity rule: a new
// bundle that differs from the last counterparty offer by less than $5 a
// unit and 0 months is pushed down by at least $15, and buyer price
// progress across the buyer's own last two offers must stay monotonic.
func EnforceOfferDiversity(candidate model.OfferComponents, lastCounterpartyOffer model.OfferComponents, hadCounterpartyOffer bool, ownPreviousOffer model.OfferComponents, hadOwnOffer bool, floor float64) model.OfferComponents {
	out := candidate

	if hadCounterpartyOffer {
		priceDelta := out.UnitPrice - lastCounterpartyOffer.UnitPrice
		if priceDelta < 0 {
			priceDelta = -priceDelta
		}
		monthsDelta := out.TermMonths - lastCounterpartyOffer.TermMonths
		if priceDelta < diversityUnitDelta && monthsDelta == 0 {
			forced := out.UnitPrice - diversityForcedDrop
			if forced < floor {
				forced = floor
			}
			out.UnitPrice = forced
		}
	}

	if hadOwnOffer && out.UnitPrice > ownPreviousOffer.UnitPrice {
		// Buyer price must never regress upward across the buyer's own
		// successive offers.
		out.UnitPrice = ownPreviousOffer.UnitPrice
	}

	return out
}

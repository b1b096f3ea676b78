package negotiation

import "github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"

const (
	noPriceMoveThresholdDollars = 5.0
	floorEstimateOffsetDollars  = 25.0
	elasticityStep              = 0.1
	elasticityMin               = 0.1
	elasticityMax               = 0.9
)

// UpdateOpponentModel implements spec §4.G's opponent-model update: run
// after recording each counterparty move. previousOffer/hadPrevious carry
// the prior round's full offer so both the price and term elasticities
// can be compared against it.
func UpdateOpponentModel(m *model.OpponentModel, previousOffer model.OfferComponents, hadPrevious bool, newOffer model.OfferComponents) {
	if hadPrevious {
		delta := newOffer.UnitPrice - previousOffer.UnitPrice
		if delta < 0 {
			delta = -delta
		}
		if delta < noPriceMoveThresholdDollars {
			m.ConsecutiveNoPriceMoves++
			candidateFloor := newOffer.UnitPrice - floorEstimateOffsetDollars
			if candidateFloor > m.PriceFloorEstimate {
				m.PriceFloorEstimate = candidateFloor
			}
			m.PriceElasticity = clampElasticity(m.PriceElasticity - elasticityStep)
		} else {
			m.ConsecutiveNoPriceMoves = 0
			if newOffer.UnitPrice < m.PriceCeilingEstimate || m.PriceCeilingEstimate == 0 {
				m.PriceCeilingEstimate = newOffer.UnitPrice
			}
			m.PriceElasticity = clampElasticity(m.PriceElasticity + elasticityStep)
		}

		if newOffer.TermMonths != previousOffer.TermMonths {
			m.TermElasticity = clampElasticity(m.TermElasticity + elasticityStep)
		}
	}
	m.PushOffer(newOffer)
}

func clampElasticity(v float64) float64 {
	if v < elasticityMin {
		return elasticityMin
	}
	if v > elasticityMax {
		return elasticityMax
	}
	return v
}

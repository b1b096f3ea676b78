package negotiation

import (
	"testing"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

func TestEnforceOfferDiversityForcesDrop(t *testing.T) {
	candidate := model.OfferComponents{UnitPrice: 998, TermMonths: 12}
	last := model.OfferComponents{UnitPrice: 1000, TermMonths: 12}
	out := EnforceOfferDiversity(candidate, last, true, model.OfferComponents{}, false, 900)
	if out.UnitPrice != 983 {
		t.Errorf("UnitPrice = %v, want 983 (998 - 15 forced drop)", out.UnitPrice)
	}
}

func TestEnforceOfferDiversityRespectsFloor(t *testing.T) {
	candidate := model.OfferComponents{UnitPrice: 905, TermMonths: 12}
	last := model.OfferComponents{UnitPrice: 903, TermMonths: 12}
	out := EnforceOfferDiversity(candidate, last, true, model.OfferComponents{}, false, 900)
	if out.UnitPrice != 900 {
		t.Errorf("UnitPrice = %v, want clamped to floor 900", out.UnitPrice)
	}
}

func TestEnforceOfferDiversityAllowsGenuineMove(t *testing.T) {
	candidate := model.OfferComponents{UnitPrice: 950, TermMonths: 12}
	last := model.OfferComponents{UnitPrice: 1000, TermMonths: 12}
	out := EnforceOfferDiversity(candidate, last, true, model.OfferComponents{}, false, 900)
	if out.UnitPrice != 950 {
		t.Errorf("UnitPrice = %v, want unchanged 950 (already >=$5 move)", out.UnitPrice)
	}
}

func TestEnforceOfferDiversityMonotonicAgainstOwnHistory(t *testing.T) {
	candidate := model.OfferComponents{UnitPrice: 960, TermMonths: 12}
	ownPrevious := model.OfferComponents{UnitPrice: 950, TermMonths: 12}
	out := EnforceOfferDiversity(candidate, model.OfferComponents{}, false, ownPrevious, true, 900)
	if out.UnitPrice != 950 {
		t.Errorf("UnitPrice = %v, want capped at own previous offer 950", out.UnitPrice)
	}
}

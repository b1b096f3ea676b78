package negotiation

import (
	"testing"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

func TestUpdateOpponentModelSmallMoveTightensFloor(t *testing.T) {
	m := &model.OpponentModel{PriceFloorEstimate: 800, PriceElasticity: 0.5}
	UpdateOpponentModel(m, model.OfferComponents{UnitPrice: 1000}, true, model.OfferComponents{UnitPrice: 998})
	if m.ConsecutiveNoPriceMoves != 1 {
		t.Errorf("ConsecutiveNoPriceMoves = %d, want 1", m.ConsecutiveNoPriceMoves)
	}
	if m.PriceFloorEstimate != 973 {
		t.Errorf("PriceFloorEstimate = %v, want 973 (998-25)", m.PriceFloorEstimate)
	}
	if m.PriceElasticity != 0.4 {
		t.Errorf("PriceElasticity = %v, want 0.4", m.PriceElasticity)
	}
}

func TestUpdateOpponentModelBigMoveResetsCounter(t *testing.T) {
	m := &model.OpponentModel{ConsecutiveNoPriceMoves: 2, PriceElasticity: 0.5}
	UpdateOpponentModel(m, model.OfferComponents{UnitPrice: 1000}, true, model.OfferComponents{UnitPrice: 950})
	if m.ConsecutiveNoPriceMoves != 0 {
		t.Errorf("ConsecutiveNoPriceMoves = %d, want reset to 0", m.ConsecutiveNoPriceMoves)
	}
	if m.PriceElasticity != 0.6 {
		t.Errorf("PriceElasticity = %v, want 0.6", m.PriceElasticity)
	}
}

func TestUpdateOpponentModelElasticityClamped(t *testing.T) {
	m := &model.OpponentModel{PriceElasticity: 0.85}
	UpdateOpponentModel(m, model.OfferComponents{UnitPrice: 1000}, true, model.OfferComponents{UnitPrice: 950})
	if m.PriceElasticity != 0.9 {
		t.Errorf("PriceElasticity = %v, want clamped to 0.9", m.PriceElasticity)
	}
}

func TestUpdateOpponentModelTermElasticityRisesOnTermChange(t *testing.T) {
	m := &model.OpponentModel{PriceElasticity: 0.5, TermElasticity: 0.5}
	UpdateOpponentModel(m, model.OfferComponents{UnitPrice: 950, TermMonths: 12}, true, model.OfferComponents{UnitPrice: 950, TermMonths: 24})
	if m.TermElasticity != 0.6 {
		t.Errorf("TermElasticity = %v, want 0.6", m.TermElasticity)
	}
}

func TestUpdateOpponentModelTermElasticityUnchangedWhenTermStable(t *testing.T) {
	m := &model.OpponentModel{PriceElasticity: 0.5, TermElasticity: 0.5}
	UpdateOpponentModel(m, model.OfferComponents{UnitPrice: 950, TermMonths: 12}, true, model.OfferComponents{UnitPrice: 940, TermMonths: 12})
	if m.TermElasticity != 0.5 {
		t.Errorf("TermElasticity = %v, want unchanged at 0.5", m.TermElasticity)
	}
}

func TestUpdateOpponentModelTermElasticityClamped(t *testing.T) {
	m := &model.OpponentModel{TermElasticity: 0.85}
	UpdateOpponentModel(m, model.OfferComponents{UnitPrice: 950, TermMonths: 12}, true, model.OfferComponents{UnitPrice: 950, TermMonths: 24})
	if m.TermElasticity != 0.9 {
		t.Errorf("TermElasticity = %v, want clamped to 0.9", m.TermElasticity)
	}
}

func TestUpdateOpponentModelPushesRing(t *testing.T) {
	m := &model.OpponentModel{}
	UpdateOpponentModel(m, model.OfferComponents{}, false, model.OfferComponents{UnitPrice: 1000})
	if len(m.LastOffers()) != 1 {
		t.Errorf("expected 1 offer in ring, got %d", len(m.LastOffers()))
	}
}

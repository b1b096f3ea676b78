package negotiation

import (
	"testing"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

func baseCloseInput() CloseDecisionInput {
	return CloseDecisionInput{
		Request: &model.Request{
			BudgetMax: 10000,
			Quantity:  10,
			PolicyContext: model.PolicyContext{BudgetCap: 10000},
		},
		Vendor: &model.VendorProfile{
			Guardrails: model.GuardrailPolicy{PriceFloor: 800},
		},
		Candidate:       model.OfferComponents{UnitPrice: 900, Quantity: 10, TermMonths: 12},
		TCO:             9000,
		BuyerUtility:    0.8,
		SellerUtility:   0.2,
		BuyerThreshold:  0.75,
		SellerThreshold: 0.10,
		FinalizeGapAbs:  10,
		FinalizeGapPct:  0.01,
	}
}

func TestShouldCloseDealAllInvariantsHold(t *testing.T) {
	if !ShouldCloseDeal(baseCloseInput()) {
		t.Error("expected close when all invariants hold")
	}
}

func TestShouldCloseDealFailsOnLowBuyerUtility(t *testing.T) {
	in := baseCloseInput()
	in.BuyerUtility = 0.5
	if ShouldCloseDeal(in) {
		t.Error("expected no close with buyer utility below threshold")
	}
}

func TestShouldCloseDealFailsOnPriceBelowFloor(t *testing.T) {
	in := baseCloseInput()
	in.Candidate.UnitPrice = 700
	if ShouldCloseDeal(in) {
		t.Error("expected no close with price below vendor floor")
	}
}

func TestShouldCloseDealFailsOnTCOOverBudget(t *testing.T) {
	in := baseCloseInput()
	in.TCO = 11000
	if ShouldCloseDeal(in) {
		t.Error("expected no close when TCO exceeds budget_max")
	}
}

func TestAcceptanceProbabilityDecaysWithRound(t *testing.T) {
	early := AcceptanceProbability(0.9, 0.8, 0.8, 1)
	late := AcceptanceProbability(0.9, 0.8, 0.8, 10)
	if late >= early {
		t.Errorf("expected fatigue to reduce acceptance probability over rounds: early=%v late=%v", early, late)
	}
}

package proposal

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

func TestDeterministicIntakeReturnsClarificationsWhenFieldsMissing(t *testing.T) {
	gen := NewDeterministic()
	result, err := gen.Intake(context.Background(), `{"description":"10 laptops"}`, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Request != nil {
		t.Fatal("expected no Request when required fields are missing")
	}
	if len(result.Clarifications) == 0 {
		t.Fatal("expected clarification questions")
	}
}

func TestDeterministicIntakeBuildsRequestWhenComplete(t *testing.T) {
	raw, _ := json.Marshal(model.Request{
		RequesterID: "user-1",
		Type:        model.RequestTypeGoods,
		Description: "100 laptops",
		Quantity:    100,
		BudgetMax:   150000,
		Currency:    "USD",
	})

	gen := NewDeterministic()
	result, err := gen.Intake(context.Background(), string(raw), "default policy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Request == nil {
		t.Fatal("expected a Request")
	}
	if result.Request.PolicyContext.BudgetCap != 150000 {
		t.Errorf("BudgetCap = %v, want budget_max fallback 150000", result.Request.PolicyContext.BudgetCap)
	}
	if result.Request.Status != model.RequestStatusDraft {
		t.Errorf("Status = %v, want draft", result.Request.Status)
	}
}

func TestDeterministicIntakeEmptyRawTextIsAllClarifications(t *testing.T) {
	gen := NewDeterministic()
	result, err := gen.Intake(context.Background(), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Clarifications) != 5 {
		t.Errorf("expected 5 clarification questions for empty intake, got %d", len(result.Clarifications))
	}
}

func TestDeterministicProposeNormalizesQuantityAndCurrency(t *testing.T) {
	gen := NewDeterministic()
	req := &model.Request{Quantity: 50, Currency: "USD"}
	bundle := model.OfferComponents{UnitPrice: 1000, Quantity: 1, TermMonths: 12}

	msg, err := gen.Propose(context.Background(), req, VendorContext{}, "PRICE_ANCHOR", bundle, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Proposal.Quantity != 50 {
		t.Errorf("Proposal.Quantity = %d, want 50", msg.Proposal.Quantity)
	}
	if msg.Proposal.Currency != "USD" {
		t.Errorf("Proposal.Currency = %q, want USD", msg.Proposal.Currency)
	}
	if msg.Actor != model.MessageActorBuyer {
		t.Errorf("Actor = %v, want buyer_agent", msg.Actor)
	}
	if len(msg.JustificationBullets) == 0 {
		t.Error("expected non-empty justification bullets")
	}
}

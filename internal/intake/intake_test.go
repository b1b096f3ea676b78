package intake

import (
	"testing"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

func validRequest() *model.Request {
	return &model.Request{
		RequestID:   "req-1",
		RequesterID: "user-1",
		Type:        model.RequestTypeGoods,
		Description: "laptops for engineering",
		Quantity:    10,
		BudgetMax:   9000,
		Currency:    "USD",
		PolicyContext: model.PolicyContext{
			BudgetCap:     9000,
			RiskThreshold: 0.5,
		},
	}
}

func TestValidateRequestAccepted(t *testing.T) {
	if err := ValidateRequest(validRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRequestRejectsMissingRequiredFields(t *testing.T) {
	req := validRequest()
	req.RequestID = ""
	if err := ValidateRequest(req); err == nil {
		t.Fatal("expected an error for a missing request_id")
	}
}

func TestValidateRequestRejectsBadCurrencyLength(t *testing.T) {
	req := validRequest()
	req.Currency = "US"
	if err := ValidateRequest(req); err == nil {
		t.Fatal("expected an error for a non-ISO currency code")
	}
}

func TestValidateRequestRejectsZeroQuantity(t *testing.T) {
	req := validRequest()
	req.Quantity = 0
	if err := ValidateRequest(req); err == nil {
		t.Fatal("expected an error for a zero quantity")
	}
}

func validMessage() *model.NegotiationMessage {
	return &model.NegotiationMessage{
		Actor: model.MessageActorBuyer,
		Round: 1,
		Proposal: model.OfferComponents{
			UnitPrice:  100,
			Quantity:   10,
			TermMonths: 12,
		},
		NextStepHint: model.NextStepCounter,
	}
}

func TestValidateMessageAccepted(t *testing.T) {
	if err := ValidateMessage(validMessage()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateMessageRejectsBadActor(t *testing.T) {
	msg := validMessage()
	msg.Actor = "mediator"
	if err := ValidateMessage(msg); err == nil {
		t.Fatal("expected an error for an unrecognized actor")
	}
}

func TestValidateMessageRejectsZeroOfferFields(t *testing.T) {
	msg := validMessage()
	msg.Proposal.UnitPrice = 0
	if err := ValidateMessage(msg); err == nil {
		t.Fatal("expected an error for a zero unit_price on the nested proposal")
	}
}

func TestValidateMessageRejectsMissingNextStepHint(t *testing.T) {
	msg := validMessage()
	msg.NextStepHint = ""
	if err := ValidateMessage(msg); err == nil {
		t.Fatal("expected an error for a missing next_step_hint")
	}
}

package negotiation

import (
	"math"
	"testing"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

func sampleVendor() *model.VendorProfile {
	return &model.VendorProfile{
		PriceTiers: map[int]float64{10: 1000},
		Guardrails: model.GuardrailPolicy{PriceFloor: 700},
	}
}

func samplePolicyForExchange() model.ExchangePolicy {
	return model.ExchangePolicy{
		TermTrade:    map[int]float64{12: 0.05},
		PaymentTrade: map[model.PaymentTerms]float64{model.PaymentNet15: 0.03, model.PaymentNet30: 0, model.PaymentNet45: -0.02},
	}
}

func TestEnforceExchangeRequirementsTermExtensionRequiresDiscount(t *testing.T) {
	previous := model.OfferComponents{UnitPrice: 1000, Quantity: 10, TermMonths: 12, PaymentTerms: model.PaymentNet30}
	current := model.OfferComponents{UnitPrice: 1000, Quantity: 10, TermMonths: 24, PaymentTerms: model.PaymentNet30}
	out, _ := EnforceExchangeRequirements(previous, current, sampleVendor(), samplePolicyForExchange(), 0.12)
	want := 950.0
	if math.Abs(out.UnitPrice-want) > 0.01 {
		t.Errorf("UnitPrice = %v, want %v (5%% term discount applied)", out.UnitPrice, want)
	}
}

func TestEnforceExchangeRequirementsFasterPaymentRequiresDiscount(t *testing.T) {
	previous := model.OfferComponents{UnitPrice: 1000, Quantity: 10, TermMonths: 12, PaymentTerms: model.PaymentNet30}
	current := model.OfferComponents{UnitPrice: 1000, Quantity: 10, TermMonths: 12, PaymentTerms: model.PaymentNet15}
	out, _ := EnforceExchangeRequirements(previous, current, sampleVendor(), samplePolicyForExchange(), 0.12)
	if out.UnitPrice >= 1000 {
		t.Errorf("UnitPrice = %v, expected discount for accelerated payment", out.UnitPrice)
	}
}

func TestEnforceExchangeRequirementsNeverBelowFloor(t *testing.T) {
	previous := model.OfferComponents{UnitPrice: 710, Quantity: 10, TermMonths: 12, PaymentTerms: model.PaymentNet30}
	current := model.OfferComponents{UnitPrice: 710, Quantity: 10, TermMonths: 24, PaymentTerms: model.PaymentNet30}
	out, _ := EnforceExchangeRequirements(previous, current, sampleVendor(), samplePolicyForExchange(), 0.12)
	if out.UnitPrice < 700 {
		t.Errorf("UnitPrice = %v, must never fall below vendor floor 700", out.UnitPrice)
	}
}

func TestEnforceExchangeRequirementsEmitsNoteOnAdjustment(t *testing.T) {
	previous := model.OfferComponents{UnitPrice: 1000, Quantity: 10, TermMonths: 12, PaymentTerms: model.PaymentNet30}
	current := model.OfferComponents{UnitPrice: 1000, Quantity: 10, TermMonths: 24, PaymentTerms: model.PaymentNet30}
	_, note := EnforceExchangeRequirements(previous, current, sampleVendor(), samplePolicyForExchange(), 0.12)
	if note == "" {
		t.Error("expected a note when the term trade silently rewrote unit_price")
	}
}

func TestEnforceExchangeRequirementsNoNoteWhenUnchanged(t *testing.T) {
	previous := model.OfferComponents{UnitPrice: 950, Quantity: 10, TermMonths: 12, PaymentTerms: model.PaymentNet30}
	current := model.OfferComponents{UnitPrice: 950, Quantity: 10, TermMonths: 12, PaymentTerms: model.PaymentNet30}
	_, note := EnforceExchangeRequirements(previous, current, sampleVendor(), samplePolicyForExchange(), 0.12)
	if note != "" {
		t.Errorf("note = %q, want empty when no adjustment was made", note)
	}
}

func TestPVDiscountFractionZeroForNoDelta(t *testing.T) {
	if got := pvDiscountFraction(0.12, 0); got != 0 {
		t.Errorf("pvDiscountFraction = %v, want 0", got)
	}
}

package seller

import (
	"testing"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/config"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

func sampleVendorState() *model.VendorNegotiationState {
	return &model.VendorNegotiationState{
		Round: 1,
		Vendor: &model.VendorProfile{
			VendorID: "v1",
			Guardrails: model.GuardrailPolicy{
				PriceFloor:          800,
				PaymentTermsAllowed: []model.PaymentTerms{model.PaymentNet15, model.PaymentNet30, model.PaymentNet45},
			},
			PriceTiers: map[int]float64{10: 1200},
			ExchangePolicy: model.ExchangePolicy{
				MinStepAbs:   10,
				TermTrade:    map[int]float64{12: 0.05},
				PaymentTrade: map[model.PaymentTerms]float64{model.PaymentNet15: 0.03},
			},
		},
	}
}

func TestDetermineStrategyAnchorsRoundOne(t *testing.T) {
	state := sampleVendorState()
	buyerOffer := model.OfferComponents{UnitPrice: 1000, Quantity: 10, TermMonths: 12, PaymentTerms: model.PaymentNet30}
	if got := DetermineStrategy(state, buyerOffer); got != model.StrategyAnchorHigh {
		t.Errorf("strategy = %v, want ANCHOR_HIGH", got)
	}
}

func TestDetermineStrategyRejectsBelowFloor(t *testing.T) {
	state := sampleVendorState()
	state.Round = 2
	buyerOffer := model.OfferComponents{UnitPrice: 700, Quantity: 10, TermMonths: 12}
	if got := DetermineStrategy(state, buyerOffer); got != model.StrategyRejectBelowFloor {
		t.Errorf("strategy = %v, want REJECT_BELOW_FLOOR", got)
	}
}

func TestGenerateSellerCounterNeverBelowFloor(t *testing.T) {
	state := sampleVendorState()
	req := &model.Request{Quantity: 10, BudgetMax: 20000, PolicyContext: model.PolicyContext{BudgetCap: 20000}}
	buyerOffer := model.OfferComponents{UnitPrice: 750, Quantity: 10, TermMonths: 12, PaymentTerms: model.PaymentNet30}
	cfg := config.Default()

	counter, _, _ := GenerateSellerCounter(state, buyerOffer, model.StrategyRejectBelowFloor, req, cfg)
	if counter.UnitPrice < state.Vendor.Guardrails.PriceFloor {
		t.Errorf("UnitPrice = %v, must never fall below floor %v", counter.UnitPrice, state.Vendor.Guardrails.PriceFloor)
	}
}

func TestGenerateSellerCounterCloseDealHitsFloor(t *testing.T) {
	state := sampleVendorState()
	state.StalemateRounds = 2
	req := &model.Request{Quantity: 10, BudgetMax: 20000, PolicyContext: model.PolicyContext{BudgetCap: 20000}}
	buyerOffer := model.OfferComponents{UnitPrice: 900, Quantity: 10, TermMonths: 12, PaymentTerms: model.PaymentNet30}
	cfg := config.Default()

	counter, _, _ := GenerateSellerCounter(state, buyerOffer, model.StrategyCloseDeal, req, cfg)
	if counter.UnitPrice != state.Vendor.Guardrails.PriceFloor {
		t.Errorf("UnitPrice = %v, want floor %v for CLOSE_DEAL", counter.UnitPrice, state.Vendor.Guardrails.PriceFloor)
	}
}

// Package seller implements the deterministic counterparty the buyer
// agent negotiates against: one counter-offer generator per seller
// strategy, always clamped to the vendor's floor and validated against
// policy and guardrails (§4.I).
package seller

import (
	"math"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/config"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/guardrail"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/kernel"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/policy"
)

// DetermineStrategy implements spec §4.I determine_seller_strategy: a
// simple deterministic mapping from round shape and buyer behavior onto
// one of the seven seller strategies. A production seller profile could
// vary this by vendor.risk_level; the core ships this single baseline.
func DetermineStrategy(state *model.VendorNegotiationState, buyerOffer model.OfferComponents) model.SellerStrategy {
	vendor := state.Vendor
	switch {
	case buyerOffer.UnitPrice < vendor.Guardrails.PriceFloor:
		return model.StrategyRejectBelowFloor
	case state.Round == 1:
		return model.StrategyAnchorHigh
	case buyerOffer.TermMonths >= 24:
		return model.StrategyTermValue
	case buyerOffer.PaymentTerms == model.PaymentNet15:
		return model.StrategyPaymentPremium
	case state.StalemateRounds >= 2:
		return model.StrategyCloseDeal
	default:
		return model.StrategyGradualConcession
	}
}

// GenerateSellerCounter implements spec §4.I generate_seller_counter: the
// per-strategy price rule, always clamped to the floor, then validated and
// scored.
func GenerateSellerCounter(state *model.VendorNegotiationState, buyerOffer model.OfferComponents, strategy model.SellerStrategy, req *model.Request, cfg *config.Config) (model.OfferComponents, []model.Violation, []model.Alert) {
	vendor := state.Vendor
	floor := vendor.Guardrails.PriceFloor
	currentPrice := buyerOffer.UnitPrice
	if last, ok := state.LastSellerOffer(); ok {
		currentPrice = last.UnitPrice
	}

	out := buyerOffer
	switch strategy {
	case model.StrategyAnchorHigh:
		out.UnitPrice = math.Max(currentPrice*1.15, floor*1.3)
	case model.StrategyRejectBelowFloor:
		out.UnitPrice = math.Max(floor*1.05, currentPrice*1.02)
	case model.StrategyMinimalConcession:
		out.UnitPrice = math.Max(floor, currentPrice-vendor.ExchangePolicy.MinStepAbs)
	case model.StrategyTermValue:
		if buyerOffer.TermMonths >= 24 {
			discount := vendor.ExchangePolicy.TermTrade[12]
			out.UnitPrice = math.Max(floor, vendor.ListPrice(buyerOffer.Quantity)*(1-discount))
		} else {
			out.UnitPrice = currentPrice * 1.01
		}
	case model.StrategyPaymentPremium:
		if buyerOffer.PaymentTerms == model.PaymentNet15 {
			discount := vendor.ExchangePolicy.PaymentTrade[model.PaymentNet15]
			out.UnitPrice = math.Max(floor, vendor.ListPrice(buyerOffer.Quantity)*(1-discount))
		} else {
			premium := -vendor.ExchangePolicy.PaymentTrade[buyerOffer.PaymentTerms]
			out.UnitPrice = currentPrice * (1 + math.Max(premium, 0))
		}
	case model.StrategyCloseDeal:
		out.UnitPrice = floor
	case model.StrategyGradualConcession:
		out.UnitPrice = math.Max(floor, currentPrice-vendor.ExchangePolicy.MinStepAbs)
	}

	if out.UnitPrice < floor {
		out.UnitPrice = floor
	}
	out.UnitPrice = kernel.Round2(out.UnitPrice)

	violationsResult := policy.ValidateOffer(req, &out, vendor, false)
	if !violationsResult.Valid {
		out.UnitPrice = floor
	}

	alerts := guardrail.RunAll(vendor, &out, cfg)
	return out, violationsResult.Violations, alerts
}

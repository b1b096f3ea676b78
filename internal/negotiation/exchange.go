package negotiation

import (
	"fmt"
	"math"
	"strings"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/kernel"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

// paymentTermDays approximates a payment-terms day delta (Net15/Net30/Net45)
// in calendar days for the PV discount calculation.
var paymentTermDays = map[model.PaymentTerms]int{
	model.PaymentNet15:      15,
	model.PaymentNet30:      30,
	model.PaymentNet45:      45,
	model.PaymentMilestones: 30,
	model.PaymentDeposit:    0,
}

// EnforceExchangeRequirements implements spec §4.G's
// enforce_exchange_requirements: when a party extends term or accelerates
// payment, the corresponding discount must actually be applied to the
// price, not merely claimed. The returned note is empty unless the offer
// as proposed understated the trade and unit_price was rewritten down (or
// capped) to match, so audit consumers can see when that happened.
func EnforceExchangeRequirements(previous, current model.OfferComponents, vendor *model.VendorProfile, policy model.ExchangePolicy, discountRate float64) (model.OfferComponents, string) {
	out := current
	var notes []string

	if out.TermMonths > previous.TermMonths {
		impliedDiscount := termTradeDiscount(policy, out.TermMonths-previous.TermMonths)
		minPrice := vendor.ListPrice(out.Quantity) * (1 - impliedDiscount)
		if out.UnitPrice > minPrice {
			adjusted := math.Max(vendor.Guardrails.PriceFloor, minPrice)
			notes = append(notes, fmt.Sprintf("term extension to %dmo implies unit_price <= %.2f; adjusted from %.2f to %.2f", out.TermMonths, minPrice, out.UnitPrice, adjusted))
			out.UnitPrice = adjusted
		}
	}

	prevPaymentDiscount := policy.PaymentTrade[previous.PaymentTerms]
	curPaymentDiscount := policy.PaymentTrade[out.PaymentTerms]
	if curPaymentDiscount > prevPaymentDiscount {
		dayDelta := paymentTermDays[previous.PaymentTerms] - paymentTermDays[out.PaymentTerms]
		pvDiscount := pvDiscountFraction(discountRate, dayDelta)
		deltaOffset := curPaymentDiscount - prevPaymentDiscount
		required := math.Max(deltaOffset, pvDiscount)
		minPrice := vendor.ListPrice(out.Quantity) * (1 - required)
		if out.UnitPrice > minPrice {
			notes = append(notes, fmt.Sprintf("payment acceleration to %s implies unit_price <= %.2f; adjusted from %.2f to %.2f", out.PaymentTerms, minPrice, out.UnitPrice, minPrice))
			out.UnitPrice = minPrice
		}
	} else if curPaymentDiscount < prevPaymentDiscount {
		// Slower payment: the premium charged is capped at the negative delta.
		premiumCap := prevPaymentDiscount - curPaymentDiscount
		maxPrice := vendor.ListPrice(out.Quantity) * (1 + premiumCap)
		if out.UnitPrice > maxPrice {
			notes = append(notes, fmt.Sprintf("payment deceleration to %s caps unit_price at %.2f; capped from %.2f", out.PaymentTerms, maxPrice, out.UnitPrice))
			out.UnitPrice = maxPrice
		}
	}

	if out.UnitPrice < vendor.Guardrails.PriceFloor {
		out.UnitPrice = vendor.Guardrails.PriceFloor
	}
	out.UnitPrice = kernel.Round2(out.UnitPrice)
	return out, strings.Join(notes, "; ")
}

// termTradeDiscount looks up an exact entry for the month delta, falling
// back to a proportional share of term_trade[12] per §4.G.
func termTradeDiscount(policy model.ExchangePolicy, monthDelta int) float64 {
	if d, ok := policy.TermTrade[monthDelta]; ok {
		return d
	}
	base, ok := policy.TermTrade[12]
	if !ok {
		return 0
	}
	return base * float64(monthDelta) / 12
}

// pvDiscountFraction computes the present-value discount a faster payment
// schedule is worth, using daily compounding of an annual discountRate
// over dayDelta days of accelerated payment.
func pvDiscountFraction(discountRate float64, dayDelta int) float64 {
	if dayDelta <= 0 {
		return 0
	}
	dailyRate := discountRate / 365.0
	return 1 - math.Pow(1+dailyRate, -float64(dayDelta))
}

package negotiation

import (
	"math"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/kernel"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

// SeedContext carries the inputs shared by both seed-bundle and
// target-bundle generation.
type SeedContext struct {
	Quantity      int
	Currency      string
	ListPrice     float64
	FloorPrice    float64
	BudgetPerUnit float64
	BudgetMax     float64
	Policy        model.ExchangePolicy
}

// GenerateSeedBundles implements spec §4.G's round-1 / post-replan seed
// bundle construction: three candidate bundles, plus a value-add bundle
// when budget_per_unit is below 0.9*list, filtered to TCO <=
// budget_max*1.1, falling back to the single minimum-TCO bundle (a deadman
// switch) when none pass.
func GenerateSeedBundles(ctx SeedContext) []model.OfferComponents {
	var bundles []model.OfferComponents

	// A) price anchor.
	discount := math.Min(0.15, math.Max(0.05, (ctx.ListPrice-ctx.BudgetPerUnit)/ctx.ListPrice))
	anchorPrice := math.Max(ctx.FloorPrice, ctx.ListPrice*(1-discount))
	bundles = append(bundles, ctx.newOffer(anchorPrice, 12, model.PaymentNet30))

	// B) term trade at 24 months.
	termDiscount := ctx.Policy.TermTrade[12]
	termPrice := math.Max(ctx.FloorPrice, ctx.ListPrice*(1-termDiscount))
	bundles = append(bundles, ctx.newOffer(termPrice, 24, model.PaymentNet30))

	// C) payment trade Net15.
	paymentDiscount := ctx.Policy.PaymentTrade[model.PaymentNet15]
	paymentPrice := math.Max(ctx.FloorPrice, ctx.ListPrice*(1-paymentDiscount))
	bundles = append(bundles, ctx.newOffer(paymentPrice, 12, model.PaymentNet15))

	// D) value-add bundle, only when the budget is meaningfully below list.
	if ctx.BudgetPerUnit < 0.9*ctx.ListPrice {
		offer := ctx.newOffer(ctx.ListPrice, 12, model.PaymentNet30)
		if len(ctx.Policy.ValueAddOffsets) > 0 {
			offer.OneTimeFees = make(map[string]float64, len(ctx.Policy.ValueAddOffsets))
			for label, credit := range ctx.Policy.ValueAddOffsets {
				offer.OneTimeFees[label] = -credit
			}
		}
		bundles = append(bundles, offer)
	}

	filtered := ctx.filterByTCOBudget(bundles)
	if len(filtered) > 0 {
		return filtered
	}
	return []model.OfferComponents{ctx.minimumTCOBundle(bundles)}
}

func (ctx SeedContext) newOffer(unitPrice float64, termMonths int, terms model.PaymentTerms) model.OfferComponents {
	return model.OfferComponents{
		UnitPrice:    kernel.Round2(unitPrice),
		Currency:     ctx.Currency,
		Quantity:     ctx.Quantity,
		TermMonths:   termMonths,
		PaymentTerms: terms,
	}
}

func (ctx SeedContext) filterByTCOBudget(bundles []model.OfferComponents) []model.OfferComponents {
	cap := ctx.BudgetMax * 1.1
	var out []model.OfferComponents
	for _, b := range bundles {
		total, err := kernel.TCO(kernel.TCOInput{Offer: b})
		if err == nil && total <= cap {
			out = append(out, b)
		}
	}
	return out
}

func (ctx SeedContext) minimumTCOBundle(bundles []model.OfferComponents) model.OfferComponents {
	best := bundles[0]
	bestTCO, _ := kernel.TCO(kernel.TCOInput{Offer: best})
	for _, b := range bundles[1:] {
		total, err := kernel.TCO(kernel.TCOInput{Offer: b})
		if err == nil && total < bestTCO {
			best = b
			bestTCO = total
		}
	}
	return best
}

// advancedDiscountCap is spec §4.G's combined volume+seasonal discount cap.
const advancedDiscountCap = 0.30

// VolumeDiscount implements spec §4.G's volume tiering.
func VolumeDiscount(seats int) float64 {
	switch {
	case seats >= 500:
		return 0.20
	case seats >= 250:
		return 0.18
	case seats >= 100:
		return 0.15
	default:
		return 0
	}
}

// SeasonalDiscount implements spec §4.G's calendar tiering.
func SeasonalDiscount(endOfQuarter, endOfYear bool) float64 {
	if endOfYear {
		return 0.12
	}
	if endOfQuarter {
		return 0.10
	}
	return 0
}

// TargetContext carries the per-round state the target-bundle generator
// needs beyond SeedContext.
type TargetContext struct {
	SeedContext
	Strategy            model.BuyerStrategy
	PreviousOffer       model.OfferComponents
	OpponentFloorEst    float64
	EndOfQuarter        bool
	EndOfYear           bool
}

// GenerateTargetBundle implements spec §4.G's subsequent-round bundle
// generation: one bundle per strategy, using the seed-bundle algebra with
// strategy-specific minimums, then layering capped advanced discounts.
func GenerateTargetBundle(ctx TargetContext) model.OfferComponents {
	prev := ctx.PreviousOffer
	offer := prev

	switch ctx.Strategy {
	case model.StrategyPriceAnchor:
		floorDrop := ctx.ListPrice * 0.15
		target := math.Max(ctx.FloorPrice, ctx.ListPrice-floorDrop)
		offer.UnitPrice = math.Min(prev.UnitPrice, target)
	case model.StrategyTermTrade:
		if offer.TermMonths < prev.TermMonths+12 {
			offer.TermMonths = prev.TermMonths + 12
		}
		discount := ctx.Policy.TermTrade[12]
		offer.UnitPrice = math.Max(ctx.FloorPrice, ctx.ListPrice*(1-discount))
	case model.StrategyPaymentTrade:
		offer.PaymentTerms = model.PaymentNet15
		discount := ctx.Policy.PaymentTrade[model.PaymentNet15]
		offer.UnitPrice = math.Max(ctx.FloorPrice, ctx.ListPrice*(1-discount))
	case model.StrategyValueAdd:
		if len(ctx.Policy.ValueAddOffsets) > 0 {
			offer.OneTimeFees = make(map[string]float64, len(ctx.Policy.ValueAddOffsets))
			for label, credit := range ctx.Policy.ValueAddOffsets {
				offer.OneTimeFees[label] = -credit
			}
		}
	case model.StrategyUltimatum:
		offer.UnitPrice = math.Max(ctx.FloorPrice, ctx.OpponentFloorEst+25)
	case model.StrategyPricePressure:
		offer.UnitPrice = math.Max(ctx.FloorPrice, prev.UnitPrice*0.97)
	}

	discountFactor := math.Min(advancedDiscountCap, VolumeDiscount(ctx.Quantity)+SeasonalDiscount(ctx.EndOfQuarter, ctx.EndOfYear))
	if discountFactor > 0 {
		advanced := ctx.ListPrice * (1 - discountFactor)
		if advanced < offer.UnitPrice {
			offer.UnitPrice = advanced
		}
	}
	offer.UnitPrice = math.Max(offer.UnitPrice, ctx.FloorPrice)
	offer.UnitPrice = kernel.Round2(offer.UnitPrice)
	return offer
}

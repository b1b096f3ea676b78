package negotiation

import (
	"testing"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

func baseSeedContext() SeedContext {
	return SeedContext{
		Quantity:      10,
		Currency:      "USD",
		ListPrice:     1000,
		FloorPrice:    700,
		BudgetPerUnit: 900,
		BudgetMax:     9000 * 1.2,
		Policy: model.ExchangePolicy{
			TermTrade:    map[int]float64{12: 0.05},
			PaymentTrade: map[model.PaymentTerms]float64{model.PaymentNet15: 0.03},
			ValueAddOffsets: map[string]float64{"training": 20},
		},
	}
}

func TestGenerateSeedBundlesRespectFloorAndQuantity(t *testing.T) {
	ctx := baseSeedContext()
	bundles := GenerateSeedBundles(ctx)
	if len(bundles) == 0 {
		t.Fatal("expected at least one seed bundle")
	}
	for _, b := range bundles {
		if b.UnitPrice < ctx.FloorPrice {
			t.Errorf("bundle price %v below floor %v", b.UnitPrice, ctx.FloorPrice)
		}
		if b.Quantity != ctx.Quantity {
			t.Errorf("bundle quantity = %d, want %d", b.Quantity, ctx.Quantity)
		}
	}
}

func TestGenerateSeedBundlesDeadmanFallback(t *testing.T) {
	ctx := baseSeedContext()
	ctx.BudgetMax = 1 // nothing will pass the TCO filter
	bundles := GenerateSeedBundles(ctx)
	if len(bundles) != 1 {
		t.Fatalf("expected exactly one deadman-switch bundle, got %d", len(bundles))
	}
}

func TestVolumeDiscountTiers(t *testing.T) {
	cases := []struct {
		seats int
		want  float64
	}{
		{50, 0}, {100, 0.15}, {250, 0.18}, {500, 0.20}, {1000, 0.20},
	}
	for _, c := range cases {
		if got := VolumeDiscount(c.seats); got != c.want {
			t.Errorf("VolumeDiscount(%d) = %v, want %v", c.seats, got, c.want)
		}
	}
}

func TestGenerateTargetBundleUltimatumTargetsFloorEstimate(t *testing.T) {
	ctx := TargetContext{
		SeedContext:      baseSeedContext(),
		Strategy:         model.StrategyUltimatum,
		PreviousOffer:    model.OfferComponents{UnitPrice: 950, Quantity: 10, TermMonths: 12},
		OpponentFloorEst: 800,
	}
	offer := GenerateTargetBundle(ctx)
	want := 825.0
	if offer.UnitPrice != want {
		t.Errorf("UnitPrice = %v, want %v", offer.UnitPrice, want)
	}
}

func TestGenerateTargetBundleNeverBelowFloor(t *testing.T) {
	ctx := TargetContext{
		SeedContext:      baseSeedContext(),
		Strategy:         model.StrategyUltimatum,
		PreviousOffer:    model.OfferComponents{UnitPrice: 950, Quantity: 10, TermMonths: 12},
		OpponentFloorEst: 0,
	}
	offer := GenerateTargetBundle(ctx)
	if offer.UnitPrice < ctx.FloorPrice {
		t.Errorf("UnitPrice = %v, must not fall below floor %v", offer.UnitPrice, ctx.FloorPrice)
	}
}

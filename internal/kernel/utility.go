package kernel

import "github.com/Manas-Kandi/procur-algorithm-sub000/internal/config"

// BuyerUtilityInput carries the component scores the composite blends.
type BuyerUtilityInput struct {
	UnitPrice     float64
	BudgetPerUnit float64
	FeatureScore  float64
	ComplianceScore float64
	SLAScore      float64
	Weights       config.ScoringWeights
}

// costFit implements spec §4.A: full credit at/under budget, linearly
// decaying credit for overages up to 3x budget, floored at 0.
func costFit(unitPrice, budgetPerUnit float64) float64 {
	if budgetPerUnit <= 0 {
		return 0
	}
	if unitPrice <= budgetPerUnit {
		return 1.0
	}
	overage := (unitPrice - budgetPerUnit) / (3 * budgetPerUnit)
	return clamp(1-overage, 0, 1)
}

// BuyerUtility implements spec §4.A's weighted composite, clamped to [0,1].
func BuyerUtility(in BuyerUtilityInput) float64 {
	cf := costFit(in.UnitPrice, in.BudgetPerUnit)
	u := in.Weights.Cost*cf +
		in.Weights.Features*in.FeatureScore +
		in.Weights.Compliance*in.ComplianceScore +
		in.Weights.SLA*in.SLAScore
	return clamp(u, 0, 1)
}

// SellerUtilityInput carries the inputs to the margin-based seller utility.
type SellerUtilityInput struct {
	Price               float64
	Floor               float64
	List                float64
	MinAcceptThreshold  float64
}

// SellerUtility implements spec §4.A:
//
//	margin = clamp((price-floor)/max(list-floor, eps), 0, 1)
//	seller_utility = clamp(0.9*margin + 0.1*0.5, 0, 1)
//	falls back to raw margin when below min_accept_threshold
func SellerUtility(in SellerUtilityInput) float64 {
	const eps = 1e-9
	denom := in.List - in.Floor
	if denom < eps {
		denom = eps
	}
	margin := clamp((in.Price-in.Floor)/denom, 0, 1)
	utility := clamp(0.9*margin+0.1*0.5, 0, 1)
	if utility < in.MinAcceptThreshold {
		return margin
	}
	return utility
}

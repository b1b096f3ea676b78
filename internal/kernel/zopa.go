package kernel

import "math"

// ZOPAInput carries the two thresholds spec §4.A compares.
type ZOPAInput struct {
	BuyerBudgetPerUnit float64
	SellerFloor        float64
	ConcessionsMinPrice float64
}

// ZOPAExists implements spec §4.A: a zone of possible agreement exists
// iff the buyer's per-unit budget covers the cheaper of the seller's hard
// floor and the best price the concession engine can produce.
func ZOPAExists(in ZOPAInput) bool {
	return in.BuyerBudgetPerUnit >= math.Min(in.SellerFloor, in.ConcessionsMinPrice)
}

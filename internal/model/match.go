package model

// VendorMatchSummary is the vendor matcher's output, consumed by the
// shortlist gate and by the buyer agent's per-round compliance notes (§4.E).
type VendorMatchSummary struct {
	VendorID         string   `json:"vendor_id"`
	CategoryMatch    bool     `json:"category_match"`
	InferredCategory string   `json:"inferred_category"`
	FeatureScore     float64  `json:"feature_score"`
	ComplianceScore  float64  `json:"compliance_score"`
	ComplianceBlock  bool     `json:"compliance_block"`
	SLAScore         float64  `json:"sla_score"`
	PriceFit         float64  `json:"price_fit"`
	Composite        float64  `json:"composite"`
	MatchedFeatures  []string `json:"matched_features"`
	MissingFeatures  []string `json:"missing_features"`
	Reasons          []string `json:"reasons"`
}

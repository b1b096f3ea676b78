package kernel

// SupportTier is a vendor's advertised support level.
type SupportTier string

const (
	SupportExtended247   SupportTier = "extended_24_7"
	SupportPremium       SupportTier = "premium"
	SupportBusinessHours SupportTier = "business_hours"
	SupportEmailOnly     SupportTier = "email_only"
)

var supportTierScores = map[SupportTier]float64{
	SupportExtended247:   1.0,
	SupportPremium:       0.9,
	SupportBusinessHours: 0.7,
	SupportEmailOnly:     0.4,
}

const unknownSupportTierScore = 0.5

// SLAScore implements spec §4.A: sla_pct normalized to [0,1] capped at 1,
// blended 70/30 with the support-tier table score (unknown tiers score 0.5).
func SLAScore(slaPct float64, tier SupportTier) float64 {
	sla := clamp(slaPct/100, 0, 1)
	tierScore, ok := supportTierScores[tier]
	if !ok {
		tierScore = unknownSupportTierScore
	}
	return 0.7*sla + 0.3*tierScore
}

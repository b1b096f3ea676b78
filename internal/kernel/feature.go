package kernel

import "strings"

// synonymMap canonicalizes feature tokens so "leads" and "sequences" both
// resolve to the same capability the matcher and kernel reason about.
// Kept small and explicit rather than fuzzy-matched, matching the
// teacher's preference for deterministic lookup tables over heuristics
// wherever a table is feasible.
var synonymMap = map[string]string{
	"leads":            "lead_management",
	"lead_management":  "lead_management",
	"sequences":        "lead_management",
	"sequencing":       "lead_management",
	"sso":              "single_sign_on",
	"single_sign_on":   "single_sign_on",
	"saml":             "single_sign_on",
	"api":              "api_access",
	"api_access":       "api_access",
	"rest_api":         "api_access",
	"crm":              "crm",
	"customer_relationship_management": "crm",
	"mfa":              "multi_factor_auth",
	"multi_factor_auth": "multi_factor_auth",
	"2fa":              "multi_factor_auth",
	"audit_log":        "audit_logging",
	"audit_logging":    "audit_logging",
	"reporting":        "reporting",
	"analytics":        "reporting",
	"dashboards":       "reporting",
}

// canonicalize lowercases and maps a raw token through synonymMap,
// falling back to the normalized token itself when no entry exists.
func canonicalize(token string) string {
	norm := strings.ToLower(strings.TrimSpace(token))
	norm = strings.ReplaceAll(norm, "-", "_")
	norm = strings.ReplaceAll(norm, " ", "_")
	if canon, ok := synonymMap[norm]; ok {
		return canon
	}
	return norm
}

func canonicalSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[canonicalize(t)] = true
	}
	return set
}

// FeatureScoreInput carries the request's required/optional feature
// tokens against a vendor's advertised capability tags.
type FeatureScoreInput struct {
	Required        []string
	Optional        []string
	OptionalWeights map[string]float64 // raw optional token -> weight
	VendorTags      []string
}

// FeatureScoreResult reports the composite score plus matched/missing
// sets for audit display.
type FeatureScoreResult struct {
	Score           float64
	MatchedRequired []string
	MissingRequired []string
}

// FeatureScore implements spec §4.A:
//
//	base = matched_required / |required| (1.0 if no required)
//	optional_score = sum(weight over matched) / sum(weight) when weights given
//	combined = 0.7*base + 0.3*optional when both present; else whichever applies
func FeatureScore(in FeatureScoreInput) FeatureScoreResult {
	vendorSet := canonicalSet(in.VendorTags)

	var matchedReq, missingReq []string
	matchedCount := 0
	for _, req := range in.Required {
		if vendorSet[canonicalize(req)] {
			matchedCount++
			matchedReq = append(matchedReq, req)
		} else {
			missingReq = append(missingReq, req)
		}
	}

	var base float64
	if len(in.Required) == 0 {
		base = 1.0
	} else {
		base = float64(matchedCount) / float64(len(in.Required))
	}

	hasOptional := len(in.Optional) > 0
	var optionalScore float64
	if hasOptional {
		var matchedWeight, totalWeight float64
		for _, opt := range in.Optional {
			w := 1.0
			if in.OptionalWeights != nil {
				if ww, ok := in.OptionalWeights[opt]; ok {
					w = ww
				}
			}
			totalWeight += w
			if vendorSet[canonicalize(opt)] {
				matchedWeight += w
			}
		}
		if totalWeight > 0 {
			optionalScore = matchedWeight / totalWeight
		}
	}

	var score float64
	switch {
	case len(in.Required) > 0 && hasOptional:
		score = 0.7*base + 0.3*optionalScore
	case hasOptional:
		score = optionalScore
	default:
		score = base
	}

	return FeatureScoreResult{
		Score:           clamp(score, 0, 1),
		MatchedRequired: matchedReq,
		MissingRequired: missingReq,
	}
}

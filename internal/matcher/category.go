package matcher

import "strings"

// candidateCategories are the categories spec §4.E scores a request
// against when it does not carry an explicit category.
var candidateCategories = []string{"crm", "hr", "security", "analytics", "erp", "saas"}

// categoryPhraseHints are description phrases scored against each candidate
// category during inference.
var categoryPhraseHints = map[string][]string{
	"crm":       {"customer relationship", "sales pipeline", "lead management", "contact management"},
	"hr":        {"human resources", "payroll", "employee onboarding", "benefits administration"},
	"security":  {"endpoint protection", "threat detection", "vulnerability scanning", "identity and access"},
	"analytics": {"business intelligence", "data visualization", "reporting dashboard", "data warehouse"},
	"erp":       {"enterprise resource planning", "inventory management", "supply chain", "procurement system"},
	"saas":      {"software as a service", "cloud platform", "subscription software"},
}

// categoryFeatureHints are required/nice-to-have feature tokens associated
// with each candidate category.
var categoryFeatureHints = map[string][]string{
	"crm":       {"lead_management", "pipeline_tracking", "contact_management", "crm"},
	"hr":        {"payroll", "benefits", "onboarding", "time_tracking"},
	"security":  {"threat_detection", "vulnerability_scanning", "siem", "multi_factor_auth"},
	"analytics": {"reporting", "dashboards", "data_warehouse", "bi"},
	"erp":       {"inventory", "supply_chain", "procurement", "erp"},
	"saas":      {"api_access", "single_sign_on"},
}

// genericCategories break ties against more specific candidates, since
// "saas" describes nearly everything in the catalog.
var genericCategories = map[string]bool{"saas": true}

// aliasGroups implement spec §4.E's category alias table: members of the
// same group are considered a category match regardless of exact string.
var aliasGroups = [][]string{
	{"crm", "saas/crm", "customer-relationship-management", "customer_relationship_management"},
	{"hr", "saas/hr", "human-resources", "human_resources", "hris"},
	{"security", "saas/security", "infosec", "cybersecurity"},
	{"analytics", "saas/analytics", "business-intelligence", "bi"},
	{"erp", "saas/erp", "enterprise-resource-planning"},
	{"saas", "software-as-a-service"},
}

func normalizeCategory(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// InferCategory implements spec §4.E step 1: an explicit request category
// wins outright; otherwise every candidate is scored by phrase and feature
// hits and the highest-scoring, least-generic candidate is returned.
func InferCategory(description string, featureTokens []string, explicitCategory string) string {
	if explicitCategory != "" {
		return normalizeCategory(explicitCategory)
	}

	descLower := strings.ToLower(description)
	tokenSet := make(map[string]bool, len(featureTokens))
	for _, tok := range featureTokens {
		tokenSet[strings.ToLower(tok)] = true
	}

	bestCategory := ""
	bestScore := -1
	for _, category := range candidateCategories {
		score := 0
		for _, phrase := range categoryPhraseHints[category] {
			if strings.Contains(descLower, phrase) {
				score++
			}
		}
		for _, tok := range categoryFeatureHints[category] {
			if tokenSet[tok] {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestCategory = category
		} else if score == bestScore && score > 0 {
			// Tie-break: prefer the non-generic candidate.
			if genericCategories[bestCategory] && !genericCategories[category] {
				bestCategory = category
			}
		}
	}

	if bestScore <= 0 {
		return "saas"
	}
	return bestCategory
}

// CategoryMatches implements spec §4.E step 2: two category strings match
// if they are identical or belong to the same alias group.
func CategoryMatches(requestCategory, vendorCategory string) bool {
	a, b := normalizeCategory(requestCategory), normalizeCategory(vendorCategory)
	if a == b {
		return true
	}
	for _, group := range aliasGroups {
		inGroup := func(target string) bool {
			for _, member := range group {
				if member == target {
					return true
				}
			}
			return false
		}
		if inGroup(a) && inGroup(b) {
			return true
		}
	}
	return false
}

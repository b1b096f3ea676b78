// Package matcher evaluates a vendor record against a buyer request,
// producing the composite score the pipeline's shortlist gate sorts on
// (§4.E). Feature, compliance, and SLA sub-scores delegate to the
// evaluation kernel; matcher owns only category inference/matching, price
// fit, and the weighted composite.
package matcher

import (
	"fmt"
	"math"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/compliance"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/kernel"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

const (
	weightFeature    = 0.45
	weightCompliance = 0.30
	weightPrice      = 0.15
	weightSLA        = 0.10
)

// EvaluateVendorAgainstRequest implements spec §4.E
// evaluate_vendor_against_request.
func EvaluateVendorAgainstRequest(req *model.Request, vendor *model.VendorProfile, budgetPerUnit float64, optionalFeatures []string) model.VendorMatchSummary {
	explicitCategory, _ := req.Category()
	inferredCategory := InferCategory(req.Description, req.MustHaves, explicitCategory)
	categoryMatch := CategoryMatches(inferredCategory, vendor.Category)

	featureRes := kernel.FeatureScore(kernel.FeatureScoreInput{
		Required:   req.MustHaves,
		Optional:   optionalFeatures,
		VendorTags: vendor.CapabilityTags,
	})

	complianceAssessment := compliance.AssessVendor(req, vendor)
	complianceScore := complianceScoreFromAssessment(complianceAssessment)

	slaScore := kernel.SLAScore(vendor.SLA.UptimePct, kernel.SupportTier(vendor.SLA.SupportTier))

	listPrice := vendor.ListPrice(req.Quantity)
	priceFit := priceFitScore(budgetPerUnit, listPrice)

	summary := model.VendorMatchSummary{
		VendorID:         vendor.VendorID,
		CategoryMatch:    categoryMatch,
		InferredCategory: inferredCategory,
		FeatureScore:     featureRes.Score,
		ComplianceScore:  complianceScore,
		ComplianceBlock:  complianceAssessment.Blocking,
		SLAScore:         slaScore,
		PriceFit:         priceFit,
		MatchedFeatures:  featureRes.MatchedRequired,
		MissingFeatures:  featureRes.MissingRequired,
	}

	summary.Composite = composite(summary)
	summary.Reasons = buildReasons(summary)
	return summary
}

func complianceScoreFromAssessment(a model.ComplianceAssessment) float64 {
	if len(a.Statuses) == 0 {
		return 1.0
	}
	total := 0.0
	for _, s := range a.Statuses {
		if s.Compliant {
			total += 1.0
		}
	}
	return total / float64(len(a.Statuses))
}

// priceFitScore implements spec §4.E step 4: clamp(budget_per_unit /
// list_price, 0, 1.2), then clamped to 1.0 when composed into the composite.
func priceFitScore(budgetPerUnit, listPrice float64) float64 {
	if listPrice <= 0 {
		return 0
	}
	fit := budgetPerUnit / listPrice
	if fit < 0 {
		fit = 0
	}
	if fit > 1.2 {
		fit = 1.2
	}
	return fit
}

// composite implements spec §4.E step 5.
func composite(s model.VendorMatchSummary) float64 {
	if !s.CategoryMatch || s.ComplianceBlock || s.FeatureScore == 0 {
		return 0
	}
	price := math.Min(s.PriceFit, 1.0)
	return weightFeature*s.FeatureScore + weightCompliance*s.ComplianceScore + weightPrice*price + weightSLA*s.SLAScore
}

func buildReasons(s model.VendorMatchSummary) []string {
	var reasons []string
	if !s.CategoryMatch {
		reasons = append(reasons, fmt.Sprintf("category mismatch: inferred %q does not match vendor category", s.InferredCategory))
	}
	if s.ComplianceBlock {
		reasons = append(reasons, "blocking compliance gap")
	}
	if s.FeatureScore == 0 {
		reasons = append(reasons, "no required features matched")
	}
	if len(s.MissingFeatures) > 0 {
		reasons = append(reasons, fmt.Sprintf("missing features: %v", s.MissingFeatures))
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "meets category, compliance, and feature floor")
	}
	return reasons
}

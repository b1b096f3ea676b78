// Package compliance assesses a vendor against a request's compliance
// requirements and builds a per-vendor risk card (§4.D). Framework lookups
// go through a small canonical catalog (catalog.go) rather than exact
// string matching, so "SOC 2" and "soc2_type2" resolve to the same entry.
package compliance

import (
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

// AssessVendor implements spec §4.D assess_vendor: each required framework
// is resolved through the catalog and matched against the vendor's
// certifications or, for frameworks with a region hint, the vendor's
// operating regions.
func AssessVendor(req *model.Request, vendor *model.VendorProfile) model.ComplianceAssessment {
	statuses := make([]model.ComplianceStatus, 0, len(req.ComplianceRequirements))
	blocking := false

	for _, required := range req.ComplianceRequirements {
		entry, known := canonicalFramework(required)
		compliant := hasCertification(vendor.Certifications, required, entry, known)
		if !compliant && known {
			compliant = hasRegionHint(entry, vendor.Regions)
		}

		status := model.ComplianceStatus{
			Framework: required,
			Compliant: compliant,
			Missing:   !compliant,
		}
		if !compliant {
			status.Blocking = !known || entry.Blocking
			if status.Blocking {
				blocking = true
			}
		}
		statuses = append(statuses, status)
	}

	return model.ComplianceAssessment{Statuses: statuses, Blocking: blocking}
}

func hasCertification(certs []string, raw string, entry frameworkEntry, known bool) bool {
	for _, cert := range certs {
		if normalize(cert) == normalize(raw) {
			return true
		}
		if known {
			if normalize(cert) == normalize(entry.Canonical) {
				return true
			}
			for _, alias := range entry.Aliases {
				if normalize(cert) == normalize(alias) {
					return true
				}
			}
		}
	}
	return false
}

// BuildRiskCard implements spec §4.D build_risk_card: evaluates a small
// fixed set of counterparty risk controls against the vendor profile.
func BuildRiskCard(req *model.Request, vendor *model.VendorProfile) model.RiskCard {
	controls := []model.RiskControlStatus{
		counterpartyVerificationControl(vendor),
		onTimeDeliveryControl(vendor),
		disputeRateControl(vendor),
		complianceCoverageControl(req, vendor),
	}

	breach := false
	for _, c := range controls {
		if c.Breach {
			breach = true
			break
		}
	}
	return model.RiskCard{Controls: controls, BlockingBreach: breach}
}

func counterpartyVerificationControl(vendor *model.VendorProfile) model.RiskControlStatus {
	if vendor.ContactEndpoints.BankAccount {
		return model.RiskControlStatus{Control: "counterparty_verification", Status: "verified"}
	}
	return model.RiskControlStatus{Control: "counterparty_verification", Status: "unverified", Breach: false}
}

func onTimeDeliveryControl(vendor *model.VendorProfile) model.RiskControlStatus {
	pct := vendor.ReliabilityStats.OnTimeDeliveryPct
	if pct == 0 {
		return model.RiskControlStatus{Control: "on_time_delivery", Status: "unknown"}
	}
	if pct < 85 {
		return model.RiskControlStatus{Control: "on_time_delivery", Status: "below_threshold", Breach: true}
	}
	return model.RiskControlStatus{Control: "on_time_delivery", Status: "healthy"}
}

func disputeRateControl(vendor *model.VendorProfile) model.RiskControlStatus {
	pct := vendor.ReliabilityStats.DisputeRatePct
	if pct > 10 {
		return model.RiskControlStatus{Control: "dispute_rate", Status: "elevated", Breach: true}
	}
	return model.RiskControlStatus{Control: "dispute_rate", Status: "healthy"}
}

func complianceCoverageControl(req *model.Request, vendor *model.VendorProfile) model.RiskControlStatus {
	assessment := AssessVendor(req, vendor)
	if assessment.Blocking {
		return model.RiskControlStatus{Control: "compliance_coverage", Status: "gap", Breach: true}
	}
	return model.RiskControlStatus{Control: "compliance_coverage", Status: "covered"}
}

// ListKnownFrameworks exposes the catalog's canonical names, used by
// intake-side validation to surface a helpful error for unknown requirements.
func ListKnownFrameworks() []string {
	names := make([]string, 0, len(catalog))
	for _, e := range catalog {
		names = append(names, e.Canonical)
	}
	return names
}

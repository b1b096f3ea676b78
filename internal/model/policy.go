package model

// Violation is a single policy-engine finding (§4.B).
type Violation struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Blocking bool   `json:"blocking"`
}

// PolicyResult is the outcome of a policy-engine validation call.
type PolicyResult struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations"`
}

// NewPolicyResult derives Valid from the presence of any blocking violation.
func NewPolicyResult(violations []Violation) PolicyResult {
	for _, v := range violations {
		if v.Blocking {
			return PolicyResult{Valid: false, Violations: violations}
		}
	}
	return PolicyResult{Valid: true, Violations: violations}
}

// Alert is a single guardrail-service finding (§4.C). SuggestedPrice is
// populated only by alerts that can recommend a corrective price (the
// price-outlier check).
type Alert struct {
	Code           string   `json:"code"`
	Message        string   `json:"message"`
	Blocking       bool     `json:"blocking"`
	SuggestedPrice *float64 `json:"suggested_price,omitempty"`
}

// ComplianceStatus is per-framework assessment outcome (§4.D).
type ComplianceStatus struct {
	Framework string `json:"framework"`
	Compliant bool   `json:"compliant"`
	Missing   bool   `json:"missing"`
	Blocking  bool   `json:"blocking"`
}

// ComplianceAssessment is the outcome of assessing a vendor against a
// request's compliance_requirements (§4.D).
type ComplianceAssessment struct {
	Statuses []ComplianceStatus `json:"statuses"`
	Blocking bool               `json:"blocking"`
}

// RiskControlStatus is a single control evaluated on a RiskCard.
type RiskControlStatus struct {
	Control string `json:"control"`
	Status  string `json:"status"`
	Breach  bool   `json:"breach"`
}

// RiskCard is the per-vendor risk summary produced by the compliance
// service (§4.D).
type RiskCard struct {
	Controls       []RiskControlStatus `json:"controls"`
	BlockingBreach bool                `json:"blocking_breach"`
}

// Package model holds the shared data entities of the negotiation core
// (§3). The package has no behavior beyond the invariant checks a type
// can assert about itself at construction time.
package model

import "fmt"

// RequestType distinguishes the two procurement shapes the core supports.
type RequestType string

const (
	RequestTypeSaaS  RequestType = "saas"
	RequestTypeGoods RequestType = "goods"
)

// RequestStatus tracks the lifecycle of a Request across intake and policy
// validation. It is the only Request field that mutates after creation,
// alongside PolicyContext.
type RequestStatus string

const (
	RequestStatusDraft     RequestStatus = "draft"
	RequestStatusValidated RequestStatus = "validated"
	RequestStatusRejected  RequestStatus = "rejected"
)

// PolicyContext carries the requester's budget ceiling, risk tolerance,
// and approval routing. It may be adjusted by the policy engine during a
// run (e.g. recording required approvals) but never by the negotiation
// loop itself.
type PolicyContext struct {
	BudgetCap      float64  `json:"budget_cap" validate:"required,gt=0"`
	RiskThreshold  float64  `json:"risk_threshold" validate:"gte=0,lte=1"`
	ApprovalChain  []string `json:"approval_chain"`
}

// Request is the buyer's procurement ask, produced by intake and
// immutable thereafter except for Status and PolicyContext.
type Request struct {
	RequestID               string                 `json:"request_id" validate:"required"`
	RequesterID             string                 `json:"requester_id" validate:"required"`
	Type                    RequestType            `json:"type" validate:"required,oneof=saas goods"`
	Description             string                 `json:"description" validate:"required"`
	Specs                   map[string]interface{} `json:"specs"`
	Quantity                int                    `json:"quantity" validate:"required,gt=0"`
	BudgetMin               *float64               `json:"budget_min,omitempty"`
	BudgetMax               float64                `json:"budget_max" validate:"required,gt=0"`
	Currency                string                 `json:"currency" validate:"required,len=3"`
	MustHaves               []string               `json:"must_haves"`
	NiceToHaves             []string               `json:"nice_to_haves"`
	ComplianceRequirements  []string               `json:"compliance_requirements"`
	BillingCadence          string                 `json:"billing_cadence"`
	PolicyContext           PolicyContext          `json:"policy_context"`
	Status                  RequestStatus          `json:"status"`
}

// Validate enforces the structural invariant from spec §3: when both
// budget bounds are present, budget_min must not exceed budget_max.
func (r *Request) Validate() error {
	if r.BudgetMin != nil && *r.BudgetMin > r.BudgetMax {
		return fmt.Errorf("budget_min %.2f exceeds budget_max %.2f", *r.BudgetMin, r.BudgetMax)
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", r.Quantity)
	}
	return nil
}

// BudgetPerUnit returns the per-unit ceiling used throughout scoring.
func (r *Request) BudgetPerUnit() float64 {
	if r.Quantity == 0 {
		return 0
	}
	return r.BudgetMax / float64(r.Quantity)
}

// RiskScore reads specs.risk_score, defaulting to 0 when absent or the
// wrong type — the policy engine treats a missing risk score as "no
// elevated risk" rather than failing the request.
func (r *Request) RiskScore() float64 {
	v, ok := r.Specs["risk_score"]
	if !ok {
		return 0
	}
	f, ok := v.(float64)
	if !ok {
		return 0
	}
	return f
}

// MaxTermMonths reads specs.max_term_months, returning (0, false) when absent.
func (r *Request) MaxTermMonths() (int, bool) {
	v, ok := r.Specs["max_term_months"]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}

// MinimumAcceptancePrice reads specs.minimum_acceptance_price, returning
// (0, false) when absent.
func (r *Request) MinimumAcceptancePrice() (float64, bool) {
	v, ok := r.Specs["minimum_acceptance_price"]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// Category reads an explicit specs.category override, returning ("", false) when absent.
func (r *Request) Category() (string, bool) {
	v, ok := r.Specs["category"]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

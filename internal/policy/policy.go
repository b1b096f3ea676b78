// Package policy enforces the buyer-side spending and approval rules a
// request and its offers must satisfy (§4.B). Every check is a pure
// function over the request/offer/vendor shapes in internal/model; the
// engine never touches a store or the network.
package policy

import (
	"fmt"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

const (
	CodeBudgetCapExceeded      = "budget_cap_exceeded"
	CodeRiskThresholdExceeded  = "risk_threshold_exceeded"
	CodeSpendCapExceeded       = "spend_cap_exceeded"
	CodeTermExceedsMax         = "term_exceeds_max"
	CodePaymentTermsDisallowed = "payment_terms_disallowed"
	CodeBelowPriceFloor        = "below_price_floor"
	CodeAboveAcceptancePrice   = "above_minimum_acceptance_price"
	CodeConcessionBelowFloor   = "concession_below_floor"
)

// spendCapMultiplier is the §4.B(i) slack factor: a proposal may project
// spend up to 5% over the policy's budget cap before it is rejected.
const spendCapMultiplier = 1.05

// ValidateRequest implements spec §4.B validate_request: enforces the
// budget cap and the requester's risk threshold.
func ValidateRequest(req *model.Request) model.PolicyResult {
	var violations []model.Violation

	if req.BudgetMax > req.PolicyContext.BudgetCap {
		violations = append(violations, model.Violation{
			Code:     CodeBudgetCapExceeded,
			Message:  fmt.Sprintf("budget_max %.2f exceeds budget_cap %.2f", req.BudgetMax, req.PolicyContext.BudgetCap),
			Blocking: true,
		})
	}

	if risk := req.RiskScore(); risk > req.PolicyContext.RiskThreshold {
		violations = append(violations, model.Violation{
			Code:     CodeRiskThresholdExceeded,
			Message:  fmt.Sprintf("risk_score %.2f exceeds risk_threshold %.2f", risk, req.PolicyContext.RiskThreshold),
			Blocking: true,
		})
	}

	return model.NewPolicyResult(violations)
}

// ValidateOffer implements spec §4.B validate_offer. vendor may be nil
// when a counterparty profile is not yet known (e.g. before shortlisting).
func ValidateOffer(req *model.Request, offer *model.OfferComponents, vendor *model.VendorProfile, isBuyerProposal bool) model.PolicyResult {
	var violations []model.Violation

	projectedSpend := offer.UnitPrice * float64(offer.Quantity)
	if cap := req.PolicyContext.BudgetCap; projectedSpend > cap*spendCapMultiplier {
		violations = append(violations, model.Violation{
			Code:     CodeSpendCapExceeded,
			Message:  fmt.Sprintf("projected spend %.2f exceeds budget_cap*1.05 %.2f", projectedSpend, cap*spendCapMultiplier),
			Blocking: true,
		})
	}

	if maxTerm, ok := req.MaxTermMonths(); ok && offer.TermMonths > maxTerm {
		violations = append(violations, model.Violation{
			Code:     CodeTermExceedsMax,
			Message:  fmt.Sprintf("term_months %d exceeds specs.max_term_months %d", offer.TermMonths, maxTerm),
			Blocking: true,
		})
	}

	if vendor != nil && offer.PaymentTerms != "" && !vendor.Guardrails.Allows(offer.PaymentTerms) {
		violations = append(violations, model.Violation{
			Code:     CodePaymentTermsDisallowed,
			Message:  fmt.Sprintf("payment_terms %s not in vendor.guardrails.payment_terms_allowed", offer.PaymentTerms),
			Blocking: true,
		})
	}

	if vendor != nil && !isBuyerProposal && offer.UnitPrice < vendor.Guardrails.PriceFloor {
		violations = append(violations, model.Violation{
			Code:     CodeBelowPriceFloor,
			Message:  fmt.Sprintf("unit_price %.2f below vendor price_floor %.2f", offer.UnitPrice, vendor.Guardrails.PriceFloor),
			Blocking: true,
		})
	}

	if isBuyerProposal {
		if minAccept, ok := req.MinimumAcceptancePrice(); ok && offer.UnitPrice > minAccept {
			violations = append(violations, model.Violation{
				Code:     CodeAboveAcceptancePrice,
				Message:  fmt.Sprintf("unit_price %.2f exceeds specs.minimum_acceptance_price %.2f", offer.UnitPrice, minAccept),
				Blocking: false,
			})
		}
	}

	return model.NewPolicyResult(violations)
}

// EnforceConcessionFloor implements spec §4.B enforce_concession_floor:
// a proposed price must not fall below the governing floor.
func EnforceConcessionFloor(floor, proposed float64) model.PolicyResult {
	if proposed < floor {
		return model.NewPolicyResult([]model.Violation{{
			Code:     CodeConcessionBelowFloor,
			Message:  fmt.Sprintf("proposed price %.2f below floor %.2f", proposed, floor),
			Blocking: true,
		}})
	}
	return model.NewPolicyResult(nil)
}

// DetermineApprovals implements spec §4.B determine_approvals: the
// approval chain widens as projected spend climbs past the requester's
// own budget cap, mirroring common finance sign-off ladders.
func DetermineApprovals(req *model.Request, projectedSpend float64) []string {
	var chain []string
	chain = append(chain, req.PolicyContext.ApprovalChain...)

	cap := req.PolicyContext.BudgetCap
	if projectedSpend > cap {
		chain = append(chain, "finance_manager")
	}
	if projectedSpend > cap*1.25 {
		chain = append(chain, "vp_finance")
	}
	if projectedSpend > cap*2 {
		chain = append(chain, "cfo")
	}
	return dedupe(chain)
}

func dedupe(roles []string) []string {
	seen := make(map[string]bool, len(roles))
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

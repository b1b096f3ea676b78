// Package proposal defines the ProposalGenerator capability the buyer and
// seller agents call into (§4.M): intake turns raw text into a Request,
// propose turns a round's chosen bundle into a NegotiationMessage. The core
// never references an LLM directly; it depends only on this interface.
package proposal

import (
	"context"
	"fmt"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/retrieval"
)

// ClarificationQuestion is returned by Intake when a raw request is missing
// a required field (§4.L step 1).
type ClarificationQuestion struct {
	Field    string `json:"field"`
	Question string `json:"question"`
	Required bool   `json:"required"`
}

// IntakeResult is Intake's outcome: either a validated Request, or a set of
// clarification questions the host must resolve before retrying.
type IntakeResult struct {
	Request       *model.Request
	Clarifications []ClarificationQuestion
}

// VendorContext is the per-vendor state a propose call sees: enough of the
// negotiation state to ground a proposal without exposing the full engine.
type VendorContext struct {
	Vendor        *model.VendorProfile
	MatchSummary  model.VendorMatchSummary
	OpponentModel model.OpponentModel
	History       []model.Offer
	// Exemplars are past negotiations retrieved by scenario-tag
	// similarity (§4.K), injected as optional grounding context.
	Exemplars []retrieval.Exemplar
}

// Generator is the capability consumed by the buyer and seller agents
// (§4.M, §6).
type Generator interface {
	Intake(ctx context.Context, rawText string, policySummary string) (IntakeResult, error)
	Propose(ctx context.Context, req *model.Request, vendorCtx VendorContext, strategy string, bundle model.OfferComponents, round int) (model.NegotiationMessage, error)
}

// bestExemplar returns the highest-similarity exemplar, if any, for a
// generator that wants to ground its rationale in a past negotiation.
func bestExemplar(exemplars []retrieval.Exemplar) *retrieval.Exemplar {
	var best *retrieval.Exemplar
	for i := range exemplars {
		if best == nil || exemplars[i].Similarity > best.Similarity {
			best = &exemplars[i]
		}
	}
	return best
}

// SyntheticRationale builds the fallback justification used when a
// Generator fails validation after retries and the engine falls back to
// the deterministic chosen_bundle (§4.H step 4, §7 Validation).
func SyntheticRationale(bundle model.OfferComponents, strategy string) []string {
	return []string{
		fmt.Sprintf("deterministic fallback bundle for strategy %s", strategy),
		fmt.Sprintf("unit_price %.2f, term %d months, %s", bundle.UnitPrice, bundle.TermMonths, bundle.PaymentTerms),
	}
}

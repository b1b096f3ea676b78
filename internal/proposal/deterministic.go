package proposal

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

// Deterministic is the fallback Generator of spec §4.M/§7: it performs no
// network I/O and never fails validation, so it is always available as the
// last resort when an LLM-backed Generator exhausts its retries.
//
// Intake expects rawText to already be a JSON-encoded partial Request (the
// host's structured intake form, not free text) — the core treats text
// structuring as an external collaborator's job (§1 Non-goals) and only
// checks the fields it needs to run a negotiation.
type Deterministic struct{}

// NewDeterministic constructs the always-available fallback Generator.
func NewDeterministic() Deterministic { return Deterministic{} }

func (Deterministic) Intake(_ context.Context, rawText string, policySummary string) (IntakeResult, error) {
	var req model.Request
	if rawText != "" {
		if err := json.Unmarshal([]byte(rawText), &req); err != nil {
			return IntakeResult{}, fmt.Errorf("deterministic intake: decode raw_text: %w", err)
		}
	}

	var missing []ClarificationQuestion
	if req.RequesterID == "" {
		missing = append(missing, ClarificationQuestion{Field: "requester_id", Question: "Who is requesting this purchase?", Required: true})
	}
	if req.Type == "" {
		missing = append(missing, ClarificationQuestion{Field: "type", Question: "Is this a SaaS or goods purchase?", Required: true})
	}
	if req.Quantity <= 0 {
		missing = append(missing, ClarificationQuestion{Field: "quantity", Question: "How many units/seats are needed?", Required: true})
	}
	if req.BudgetMax <= 0 {
		missing = append(missing, ClarificationQuestion{Field: "budget_max", Question: "What is the maximum budget?", Required: true})
	}
	if req.Currency == "" {
		missing = append(missing, ClarificationQuestion{Field: "currency", Question: "What currency is the budget in?", Required: true})
	}
	if len(missing) > 0 {
		return IntakeResult{Clarifications: missing}, nil
	}

	if policySummary != "" && req.PolicyContext.BudgetCap == 0 {
		req.PolicyContext.BudgetCap = req.BudgetMax
	}
	req.Status = model.RequestStatusDraft
	return IntakeResult{Request: &req}, nil
}

func (Deterministic) Propose(_ context.Context, req *model.Request, vendorCtx VendorContext, strategy string, bundle model.OfferComponents, round int) (model.NegotiationMessage, error) {
	bundle.Quantity = req.Quantity
	if bundle.Currency == "" {
		bundle.Currency = req.Currency
	}

	rationale := SyntheticRationale(bundle, strategy)
	if best := bestExemplar(vendorCtx.Exemplars); best != nil {
		rationale = append(rationale, fmt.Sprintf("similar past negotiation closed %s (similarity %.2f)", best.Outcome, best.Similarity))
	}

	return model.NegotiationMessage{
		Actor:                model.MessageActorBuyer,
		Round:                round,
		Proposal:             bundle,
		JustificationBullets: rationale,
		MachineRationale: model.MachineRationale{
			ScoreComponents: map[string]float64{
				"feature_score":    vendorCtx.MatchSummary.FeatureScore,
				"compliance_score": vendorCtx.MatchSummary.ComplianceScore,
				"sla_score":        vendorCtx.MatchSummary.SLAScore,
			},
			ConstraintsRespected: []string{"policy.validate_offer", "guardrail.run_all"},
			ConcessionTaken:      strategy,
		},
		NextStepHint: model.NextStepCounter,
	}, nil
}

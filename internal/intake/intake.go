// Package intake enforces struct-tag validation at the two points
// untyped data crosses into the negotiation core: a Request fresh out of
// ProposalGenerator.Intake, and a NegotiationMessage parsed from a
// generator's response. It is a thin wrapper around
// github.com/go-playground/validator/v10. internal/pipeline calls
// ValidateRequest; no package in this module calls ValidateMessage.
package intake

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation against req, independent of
// req.Validate()'s hand-rolled cross-field invariants.
func ValidateRequest(req *model.Request) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("intake: request failed boundary validation: %w", err)
	}
	return nil
}

// ValidateMessage runs struct-tag validation against a NegotiationMessage
// produced by a ProposalGenerator, rejecting malformed actor/next-step
// enums and zero-value offers before they reach the negotiation core.
func ValidateMessage(msg *model.NegotiationMessage) error {
	if err := validate.Struct(msg); err != nil {
		return fmt.Errorf("intake: negotiation message failed boundary validation: %w", err)
	}
	return nil
}

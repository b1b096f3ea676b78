package model

// MessageActor distinguishes who authored a NegotiationMessage.
type MessageActor string

const (
	MessageActorBuyer  MessageActor = "buyer_agent"
	MessageActorSeller MessageActor = "seller_agent"
)

// NextStepHint is the proposal generator's suggested continuation (§6).
type NextStepHint string

const (
	NextStepAccept      NextStepHint = "accept"
	NextStepCounter     NextStepHint = "counter"
	NextStepRequestInfo NextStepHint = "request_info"
	NextStepEscalate    NextStepHint = "escalate"
)

// MachineRationale is the structured half of a NegotiationMessage's
// justification, consumed by the audit trail rather than rendered as prose.
type MachineRationale struct {
	ScoreComponents      map[string]float64 `json:"score_components"`
	ConstraintsRespected []string           `json:"constraints_respected"`
	ConcessionTaken      string             `json:"concession_taken"`
}

// NegotiationMessage is the wire shape a ProposalGenerator produces for one
// round (§4.M, §6).
type NegotiationMessage struct {
	Actor                MessageActor       `json:"actor" validate:"required,oneof=buyer_agent seller_agent"`
	Round                int                `json:"round" validate:"gte=0"`
	Proposal             OfferComponents    `json:"proposal"`
	JustificationBullets []string           `json:"justification_bullets"`
	MachineRationale     MachineRationale   `json:"machine_rationale"`
	NextStepHint         NextStepHint       `json:"next_step_hint" validate:"required,oneof=accept counter request_info escalate"`
}

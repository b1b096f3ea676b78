package model

import "time"

// Decision is the outcome recorded on a RoundMemory entry (§3).
type Decision string

const (
	DecisionAccept      Decision = "accept"
	DecisionCounter     Decision = "counter"
	DecisionRequestInfo Decision = "request_info"
	DecisionDrop        Decision = "drop"
)

// Actor distinguishes which side authored a move.
type Actor string

const (
	ActorBuyer  Actor = "buyer"
	ActorSeller Actor = "seller"
)

// RoundMemory is a single append-only memory entry for one actor's move
// in one round (§3).
type RoundMemory struct {
	RequestID     string                 `json:"request_id"`
	VendorID      string                 `json:"vendor_id"`
	RoundNumber   int                    `json:"round_number"`
	Timestamp     time.Time              `json:"timestamp"`
	Actor         Actor                  `json:"actor"`
	Strategy      string                 `json:"strategy"`
	Selected      CandidateEvaluation    `json:"selected"`
	Rejected      []CandidateEvaluation  `json:"rejected"`
	Decision      Decision               `json:"decision"`
	DeltaUtility  float64                `json:"delta_utility"`
	DeltaTCO      float64                `json:"delta_tco"`
}

// MoveLog is the human/machine-readable audit record for one actor's
// move (§3, §6 wire shape).
type MoveLog struct {
	Actor           Actor     `json:"actor"`
	RoundNumber     int       `json:"round_number"`
	Offer           OfferComponents `json:"offer"`
	Lever           Lever     `json:"lever"`
	Rationale       []string  `json:"rationale"`
	BuyerUtility    float64   `json:"buyer_utility"`
	SellerUtility   float64   `json:"seller_utility"`
	TCO             float64   `json:"tco"`
	Decision        Decision  `json:"decision,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
	PolicyNotes     []string  `json:"policy_notes"`
	GuardrailNotes  []string  `json:"guardrail_notes"`
	ComplianceNotes []string  `json:"compliance_notes"`
}

// RoundLog is the append-only per-(request,vendor) audit record (§3).
type RoundLog struct {
	RequestID string    `json:"request_id"`
	VendorID  string    `json:"vendor_id"`
	Moves     []MoveLog `json:"moves"`
}

// Event is a free-form audit event on the run's event stream (§3).
type Event struct {
	Name      string                 `json:"name"`
	RequestID string                 `json:"request_id"`
	VendorID  string                 `json:"vendor_id,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// NegotiationOutcome is the terminal state recorded at finalize (§4.H).
type NegotiationOutcome string

const (
	OutcomeAccepted  NegotiationOutcome = "accepted"
	OutcomeDropped   NegotiationOutcome = "dropped"
	OutcomeStalemate NegotiationOutcome = "stalemate"
)

// NegotiationMemory is the scenario-tagged, retrievable memory of one
// (request, vendor) negotiation (§3, §4.K).
type NegotiationMemory struct {
	RequestID    string              `json:"request_id"`
	VendorID     string              `json:"vendor_id"`
	ScenarioTags []string            `json:"scenario_tags"`
	Rounds       []RoundMemory       `json:"rounds"`
	Outcome      NegotiationOutcome  `json:"outcome"`
	Savings      float64             `json:"savings"`
}

// Finalize sets the terminal outcome and savings on a NegotiationMemory.
func (m *NegotiationMemory) Finalize(outcome NegotiationOutcome, savings float64) {
	m.Outcome = outcome
	m.Savings = savings
}

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/logger"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

// MemoryStore is the SQLite-backed memory.MemorySink, persisting rounds
// and finalized outcomes keyed by (request_id, vendor_id).
type MemoryStore struct {
	db *DB
}

// NewMemoryStore builds a memory.MemorySink backed by db.
func NewMemoryStore(db *DB) *MemoryStore {
	return &MemoryStore{db: db}
}

func (s *MemoryStore) ensureOutcomeRow(requestID, vendorID string) {
	s.db.sql.Exec(`INSERT OR IGNORE INTO negotiation_outcomes (request_id, vendor_id) VALUES (?, ?)`, requestID, vendorID)
}

// RecordRound implements memory.MemorySink.
func (s *MemoryStore) RecordRound(requestID, vendorID string, round model.RoundMemory) {
	if round.Timestamp.IsZero() {
		round.Timestamp = s.db.clock.Now()
	}
	payload, err := json.Marshal(round)
	if err != nil {
		logger.Error("STORE", fmt.Sprintf("encode round for %s/%s: %v", requestID, vendorID, err))
		return
	}
	if _, err := s.db.sql.Exec(`INSERT INTO rounds (request_id, vendor_id, payload) VALUES (?, ?, ?)`, requestID, vendorID, string(payload)); err != nil {
		logger.Error("STORE", fmt.Sprintf("insert round for %s/%s: %v", requestID, vendorID, err))
		return
	}
	s.ensureOutcomeRow(requestID, vendorID)
}

// Finalize implements memory.MemorySink.
func (s *MemoryStore) Finalize(requestID, vendorID string, outcome model.NegotiationOutcome, savings float64) {
	s.ensureOutcomeRow(requestID, vendorID)
	if _, err := s.db.sql.Exec(
		`UPDATE negotiation_outcomes SET outcome = ?, savings = ? WHERE request_id = ? AND vendor_id = ?`,
		string(outcome), savings, requestID, vendorID,
	); err != nil {
		logger.Error("STORE", fmt.Sprintf("finalize %s/%s: %v", requestID, vendorID, err))
	}
}

// SetScenarioTags attaches the scenario tags a retrieval service indexes
// on, mirroring memory.MemoryStore.SetScenarioTags.
func (s *MemoryStore) SetScenarioTags(requestID, vendorID string, tags []string) {
	s.ensureOutcomeRow(requestID, vendorID)
	payload, err := json.Marshal(tags)
	if err != nil {
		return
	}
	if _, err := s.db.sql.Exec(
		`UPDATE negotiation_outcomes SET scenario_tags = ? WHERE request_id = ? AND vendor_id = ?`,
		string(payload), requestID, vendorID,
	); err != nil {
		logger.Error("STORE", fmt.Sprintf("set scenario tags %s/%s: %v", requestID, vendorID, err))
	}
}

// Get implements memory.MemorySink.
func (s *MemoryStore) Get(requestID, vendorID string) (model.NegotiationMemory, bool) {
	var scenarioTags, outcome string
	var savings float64
	err := s.db.sql.QueryRow(
		`SELECT scenario_tags, outcome, savings FROM negotiation_outcomes WHERE request_id = ? AND vendor_id = ?`,
		requestID, vendorID,
	).Scan(&scenarioTags, &outcome, &savings)
	if err == sql.ErrNoRows {
		return model.NegotiationMemory{}, false
	}
	if err != nil {
		logger.Error("STORE", fmt.Sprintf("get %s/%s: %v", requestID, vendorID, err))
		return model.NegotiationMemory{}, false
	}

	mem := model.NegotiationMemory{
		RequestID: requestID,
		VendorID:  vendorID,
		Outcome:   model.NegotiationOutcome(outcome),
		Savings:   savings,
	}
	json.Unmarshal([]byte(scenarioTags), &mem.ScenarioTags)
	mem.Rounds = s.loadRounds(requestID, vendorID)
	return mem, true
}

func (s *MemoryStore) loadRounds(requestID, vendorID string) []model.RoundMemory {
	rows, err := s.db.sql.Query(`SELECT payload FROM rounds WHERE request_id = ? AND vendor_id = ? ORDER BY id ASC`, requestID, vendorID)
	if err != nil {
		logger.Error("STORE", fmt.Sprintf("query rounds for %s/%s: %v", requestID, vendorID, err))
		return nil
	}
	defer rows.Close()
	var out []model.RoundMemory
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			continue
		}
		var round model.RoundMemory
		if err := json.Unmarshal([]byte(payload), &round); err != nil {
			continue
		}
		out = append(out, round)
	}
	return out
}

// Export implements memory.MemorySink.
func (s *MemoryStore) Export(requestID string) []model.NegotiationMemory {
	rows, err := s.db.sql.Query(`SELECT vendor_id, scenario_tags, outcome, savings FROM negotiation_outcomes WHERE request_id = ?`, requestID)
	if err != nil {
		logger.Error("STORE", fmt.Sprintf("export memory for %s: %v", requestID, err))
		return nil
	}
	defer rows.Close()

	var out []model.NegotiationMemory
	for rows.Next() {
		var vendorID, scenarioTags, outcome string
		var savings float64
		if err := rows.Scan(&vendorID, &scenarioTags, &outcome, &savings); err != nil {
			continue
		}
		mem := model.NegotiationMemory{
			RequestID: requestID,
			VendorID:  vendorID,
			Outcome:   model.NegotiationOutcome(outcome),
			Savings:   savings,
		}
		json.Unmarshal([]byte(scenarioTags), &mem.ScenarioTags)
		mem.Rounds = s.loadRounds(requestID, vendorID)
		out = append(out, mem)
	}
	return out
}

// All implements memory.MemorySink: every NegotiationMemory across every
// request, for retrieval-service indexing at run finalization.
func (s *MemoryStore) All() []model.NegotiationMemory {
	rows, err := s.db.sql.Query(`SELECT request_id, vendor_id, scenario_tags, outcome, savings FROM negotiation_outcomes`)
	if err != nil {
		logger.Error("STORE", fmt.Sprintf("query all negotiation outcomes: %v", err))
		return nil
	}
	defer rows.Close()

	var out []model.NegotiationMemory
	for rows.Next() {
		var requestID, vendorID, scenarioTags, outcome string
		var savings float64
		if err := rows.Scan(&requestID, &vendorID, &scenarioTags, &outcome, &savings); err != nil {
			continue
		}
		mem := model.NegotiationMemory{
			RequestID: requestID,
			VendorID:  vendorID,
			Outcome:   model.NegotiationOutcome(outcome),
			Savings:   savings,
		}
		json.Unmarshal([]byte(scenarioTags), &mem.ScenarioTags)
		mem.Rounds = s.loadRounds(requestID, vendorID)
		out = append(out, mem)
	}
	return out
}

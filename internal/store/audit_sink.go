package store

import (
	"encoding/json"
	"fmt"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/audit"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/logger"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

// AuditSink is the SQLite-backed audit.AuditSink, persisting moves and
// events as JSON blobs ordered by insertion.
type AuditSink struct {
	db *DB
}

// NewAuditSink builds an audit.AuditSink backed by db.
func NewAuditSink(db *DB) *AuditSink {
	return &AuditSink{db: db}
}

// RecordMove implements audit.AuditSink.
func (s *AuditSink) RecordMove(requestID, vendorID string, move model.MoveLog) {
	if move.Timestamp.IsZero() {
		move.Timestamp = s.db.clock.Now()
	}
	payload, err := json.Marshal(move)
	if err != nil {
		logger.Error("STORE", fmt.Sprintf("encode move for %s/%s: %v", requestID, vendorID, err))
		return
	}
	if _, err := s.db.sql.Exec(`INSERT INTO moves (request_id, vendor_id, payload) VALUES (?, ?, ?)`, requestID, vendorID, string(payload)); err != nil {
		logger.Error("STORE", fmt.Sprintf("insert move for %s/%s: %v", requestID, vendorID, err))
	}
}

// RecordEvent implements audit.AuditSink.
func (s *AuditSink) RecordEvent(event model.Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = s.db.clock.Now()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("STORE", fmt.Sprintf("encode event %s: %v", event.Name, err))
		return
	}
	if _, err := s.db.sql.Exec(`INSERT INTO events (request_id, payload) VALUES (?, ?)`, event.RequestID, string(payload)); err != nil {
		logger.Error("STORE", fmt.Sprintf("insert event %s: %v", event.Name, err))
	}
}

// Export implements audit.AuditSink.
func (s *AuditSink) Export(requestID string) audit.Export {
	out := audit.Export{RequestID: requestID, RoundLogs: make(map[string]model.RoundLog)}

	rows, err := s.db.sql.Query(`SELECT vendor_id, payload FROM moves WHERE request_id = ? ORDER BY id ASC`, requestID)
	if err != nil {
		logger.Error("STORE", fmt.Sprintf("query moves for %s: %v", requestID, err))
		return out
	}
	defer rows.Close()
	for rows.Next() {
		var vendorID, payload string
		if err := rows.Scan(&vendorID, &payload); err != nil {
			continue
		}
		var move model.MoveLog
		if err := json.Unmarshal([]byte(payload), &move); err != nil {
			continue
		}
		log := out.RoundLogs[vendorID]
		log.RequestID = requestID
		log.VendorID = vendorID
		log.Moves = append(log.Moves, move)
		out.RoundLogs[vendorID] = log
	}

	eventRows, err := s.db.sql.Query(`SELECT payload FROM events WHERE request_id = ? ORDER BY id ASC`, requestID)
	if err != nil {
		logger.Error("STORE", fmt.Sprintf("query events for %s: %v", requestID, err))
		return out
	}
	defer eventRows.Close()
	for eventRows.Next() {
		var payload string
		if err := eventRows.Scan(&payload); err != nil {
			continue
		}
		var event model.Event
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			continue
		}
		out.Events = append(out.Events, event)
	}
	return out
}

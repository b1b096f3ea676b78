// Package audit defines the append-only audit trail of spec §4.J: a
// RoundLog of MoveLog entries plus a per-request event stream. The core
// depends only on the AuditSink interface; internal/store ships a SQLite
// reference implementation.
package audit

import (
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/clockutil"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

// Export is the per-request view AuditSink.Export returns.
type Export struct {
	RequestID string                    `json:"request_id"`
	RoundLogs map[string]model.RoundLog `json:"round_logs"` // keyed by vendor_id
	Events    []model.Event             `json:"events"`
}

// AuditSink is the append-only writer the negotiation core depends on
// (§6). Implementations must be safe for concurrent use by multiple
// (request, vendor) workflows.
type AuditSink interface {
	RecordMove(requestID, vendorID string, move model.MoveLog)
	RecordEvent(event model.Event)
	Export(requestID string) Export
}

// MemoryAuditSink is the in-process reference AuditSink: a sharded map
// keyed by (request_id, vendor_id), writer-serialized per key via a single
// mutex, per spec §9's "thread-unsafe in-memory dicts" redesign note.
type MemoryAuditSink struct {
	clock clockutil.Clock

	mu     sync.Mutex
	logs   map[string]map[string]*model.RoundLog // requestID -> vendorID -> log
	events map[string][]model.Event
}

// NewMemoryAuditSink constructs an in-process AuditSink.
func NewMemoryAuditSink(clock clockutil.Clock) *MemoryAuditSink {
	return &MemoryAuditSink{
		clock:  clock,
		logs:   make(map[string]map[string]*model.RoundLog),
		events: make(map[string][]model.Event),
	}
}

func (s *MemoryAuditSink) RecordMove(requestID, vendorID string, move model.MoveLog) {
	if move.Timestamp.IsZero() {
		move.Timestamp = s.clock.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	byVendor, ok := s.logs[requestID]
	if !ok {
		byVendor = make(map[string]*model.RoundLog)
		s.logs[requestID] = byVendor
	}
	log, ok := byVendor[vendorID]
	if !ok {
		log = &model.RoundLog{RequestID: requestID, VendorID: vendorID}
		byVendor[vendorID] = log
	}
	log.Moves = append(log.Moves, move)
}

func (s *MemoryAuditSink) RecordEvent(event model.Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = s.clock.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.RequestID] = append(s.events[event.RequestID], event)
}

func (s *MemoryAuditSink) Export(requestID string) Export {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := Export{RequestID: requestID, RoundLogs: make(map[string]model.RoundLog)}
	for vendorID, log := range s.logs[requestID] {
		out.RoundLogs[vendorID] = *log
	}
	out.Events = append(out.Events, s.events[requestID]...)
	return out
}

// SavingsRationale renders a human-readable savings figure for a MoveLog's
// rationale line, e.g. "$12,400.00 saved vs list price".
func SavingsRationale(listPrice, finalPrice float64, quantity int) string {
	savings := (listPrice - finalPrice) * float64(quantity)
	if savings <= 0 {
		return "no unit-price savings vs list"
	}
	return "$" + humanize.FormatFloat("#,###.##", savings) + " saved vs list price"
}

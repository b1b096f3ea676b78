package audit

import (
	"testing"
	"time"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/clockutil"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

func fixedClock() clockutil.Clock {
	return clockutil.Fixed{At: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestRecordMoveAndExport(t *testing.T) {
	sink := NewMemoryAuditSink(fixedClock())
	sink.RecordMove("req-1", "v1", model.MoveLog{Actor: model.ActorBuyer, RoundNumber: 1})
	sink.RecordMove("req-1", "v1", model.MoveLog{Actor: model.ActorSeller, RoundNumber: 1})
	sink.RecordMove("req-1", "v2", model.MoveLog{Actor: model.ActorBuyer, RoundNumber: 1})

	export := sink.Export("req-1")
	if len(export.RoundLogs) != 2 {
		t.Fatalf("expected 2 vendor round logs, got %d", len(export.RoundLogs))
	}
	if len(export.RoundLogs["v1"].Moves) != 2 {
		t.Errorf("expected 2 moves for v1, got %d", len(export.RoundLogs["v1"].Moves))
	}
}

func TestRecordEventAndExport(t *testing.T) {
	sink := NewMemoryAuditSink(fixedClock())
	sink.RecordEvent(model.Event{Name: "vendor.negotiation_started", RequestID: "req-1", VendorID: "v1"})
	export := sink.Export("req-1")
	if len(export.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(export.Events))
	}
	if export.Events[0].Timestamp.IsZero() {
		t.Error("expected clock-stamped event timestamp")
	}
}

func TestSavingsRationale(t *testing.T) {
	got := SavingsRationale(1200, 1000, 100)
	want := "$20,000.00 saved vs list price"
	if got != want {
		t.Errorf("SavingsRationale = %q, want %q", got, want)
	}
}

func TestSavingsRationaleNoSavings(t *testing.T) {
	got := SavingsRationale(1000, 1000, 100)
	if got != "no unit-price savings vs list" {
		t.Errorf("SavingsRationale = %q", got)
	}
}

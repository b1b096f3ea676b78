package memory

import (
	"testing"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

func TestRecordRoundAndGet(t *testing.T) {
	store := NewMemoryStore()
	store.RecordRound("req-1", "v1", model.RoundMemory{RoundNumber: 1, Actor: model.ActorBuyer})
	store.RecordRound("req-1", "v1", model.RoundMemory{RoundNumber: 1, Actor: model.ActorSeller})

	mem, ok := store.Get("req-1", "v1")
	if !ok {
		t.Fatal("expected memory entry to exist")
	}
	if len(mem.Rounds) != 2 {
		t.Errorf("expected 2 rounds, got %d", len(mem.Rounds))
	}
}

func TestFinalizeSetsOutcomeAndSavings(t *testing.T) {
	store := NewMemoryStore()
	store.RecordRound("req-1", "v1", model.RoundMemory{RoundNumber: 1})
	store.Finalize("req-1", "v1", model.OutcomeAccepted, 1500)

	mem, _ := store.Get("req-1", "v1")
	if mem.Outcome != model.OutcomeAccepted {
		t.Errorf("Outcome = %v, want accepted", mem.Outcome)
	}
	if mem.Savings != 1500 {
		t.Errorf("Savings = %v, want 1500", mem.Savings)
	}
}

func TestGetMissingReturnsFalse(t *testing.T) {
	store := NewMemoryStore()
	if _, ok := store.Get("nope", "v1"); ok {
		t.Error("expected no entry for unknown request")
	}
}

func TestExportScopesByRequest(t *testing.T) {
	store := NewMemoryStore()
	store.RecordRound("req-1", "v1", model.RoundMemory{RoundNumber: 1})
	store.RecordRound("req-1", "v2", model.RoundMemory{RoundNumber: 1})
	store.RecordRound("req-2", "v1", model.RoundMemory{RoundNumber: 1})

	got := store.Export("req-1")
	if len(got) != 2 {
		t.Errorf("expected 2 entries for req-1, got %d", len(got))
	}
}

func TestAllReturnsEveryRequest(t *testing.T) {
	store := NewMemoryStore()
	store.RecordRound("req-1", "v1", model.RoundMemory{RoundNumber: 1})
	store.RecordRound("req-2", "v1", model.RoundMemory{RoundNumber: 1})

	if got := len(store.All()); got != 2 {
		t.Errorf("All() len = %d, want 2", got)
	}
}

func TestScenarioTagsIncludesMustHavesAndBuckets(t *testing.T) {
	req := &model.Request{Quantity: 50, MustHaves: []string{"sso", "audit_log"}}
	tags := ScenarioTags(req, "crm", "tight")

	want := map[string]bool{
		"category:crm":          true,
		"qty_bucket:medium":     true,
		"must_have:sso":         true,
		"must_have:audit_log":   true,
		"budget:tight":          true,
	}
	if len(tags) != len(want) {
		t.Fatalf("got %d tags, want %d: %v", len(tags), len(want), tags)
	}
	for _, tag := range tags {
		if !want[tag] {
			t.Errorf("unexpected tag %q", tag)
		}
	}
}

func TestQuantityBucketBoundaries(t *testing.T) {
	cases := []struct {
		qty  int
		want string
	}{
		{1, "small"}, {10, "small"}, {11, "medium"}, {100, "medium"},
		{101, "large"}, {1000, "large"}, {1001, "xlarge"},
	}
	for _, c := range cases {
		if got := quantityBucket(c.qty); got != c.want {
			t.Errorf("quantityBucket(%d) = %q, want %q", c.qty, got, c.want)
		}
	}
}

func TestBudgetTightnessBuckets(t *testing.T) {
	cases := []struct {
		budget, list float64
		want         string
	}{
		{1050, 1000, "tight"},
		{1250, 1000, "moderate"},
		{2000, 1000, "loose"},
		{1000, 0, "loose"},
	}
	for _, c := range cases {
		if got := BudgetTightness(c.budget, c.list); got != c.want {
			t.Errorf("BudgetTightness(%v, %v) = %q, want %q", c.budget, c.list, got, c.want)
		}
	}
}

func TestKeyFormatsRequestAndVendor(t *testing.T) {
	if got := Key("req-1", "v1"); got != "req-1/v1" {
		t.Errorf("Key = %q", got)
	}
}

// Package retrieval implements the tag-indexed memory retrieval of spec
// §4.K: register negotiation memories by scenario tag, then retrieve the
// top-k most similar by Jaccard similarity over tag sets. A
// singleflight.Group collapses concurrent Retrieve calls for the same
// tag-set key so a burst of concurrent negotiations querying the same
// scenario doesn't repeat the scan.
package retrieval

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

// maxExemplarRounds bounds the compact exemplar context injected into a
// proposal-generator call: the last N rounds of a retrieved memory, not the
// full history.
const maxExemplarRounds = 3

// Exemplar is the compact, injectable view of a past negotiation that
// scored above zero similarity to the query tags.
type Exemplar struct {
	VendorID     string              `json:"vendor_id"`
	ScenarioTags []string            `json:"scenario_tags"`
	Outcome      model.NegotiationOutcome `json:"outcome"`
	Savings      float64             `json:"savings"`
	Similarity   float64             `json:"similarity"`
	RecentRounds []model.RoundMemory `json:"recent_rounds"`
}

// Service is the in-process tag-indexed RetrievalService (§4.K).
type Service struct {
	mu      sync.RWMutex
	entries []model.NegotiationMemory

	group singleflight.Group
}

// NewService constructs an empty retrieval index.
func NewService() *Service {
	return &Service{}
}

// RegisterMemory indexes a finalized NegotiationMemory by its scenario
// tags. Safe for concurrent use.
func (s *Service) RegisterMemory(m model.NegotiationMemory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, m)
}

// Retrieve returns the top-k memories most similar to tags, scored by
// Jaccard similarity over scenario tag sets. Concurrent calls for an
// identical tag set are collapsed into a single scan via singleflight.
func (s *Service) Retrieve(tags []string, k int) []Exemplar {
	key := retrievalKey(tags)
	v, _, _ := s.group.Do(key, func() (interface{}, error) {
		return s.retrieve(tags, k), nil
	})
	return v.([]Exemplar)
}

func (s *Service) retrieve(tags []string, k int) []Exemplar {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := toSet(tags)
	scored := make([]Exemplar, 0, len(s.entries))
	for _, mem := range s.entries {
		sim := jaccard(query, toSet(mem.ScenarioTags))
		if sim <= 0 {
			continue
		}
		scored = append(scored, Exemplar{
			VendorID:     mem.VendorID,
			ScenarioTags: mem.ScenarioTags,
			Outcome:      mem.Outcome,
			Savings:      mem.Savings,
			Similarity:   sim,
			RecentRounds: lastRounds(mem.Rounds, maxExemplarRounds),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Similarity != scored[j].Similarity {
			return scored[i].Similarity > scored[j].Similarity
		}
		return scored[i].VendorID < scored[j].VendorID
	})

	if k > 0 && len(scored) > k {
		scored = scored[:k]
	}
	return scored
}

// jaccard computes |A ∩ B| / |A ∪ B| over two string sets, 0 when both are
// empty.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for tag := range a {
		if _, ok := b[tag]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func toSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

func lastRounds(rounds []model.RoundMemory, n int) []model.RoundMemory {
	if len(rounds) <= n {
		return rounds
	}
	return rounds[len(rounds)-n:]
}

// retrievalKey canonicalizes a tag slice into a stable singleflight key
// independent of input ordering.
func retrievalKey(tags []string) string {
	sorted := append([]string(nil), tags...)
	sort.Strings(sorted)
	return strings.Join(sorted, "|")
}

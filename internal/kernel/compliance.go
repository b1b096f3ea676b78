package kernel

// EvidenceLevel is a vendor's attestation level for a single required
// compliance framework (§4.A).
type EvidenceLevel string

const (
	EvidenceCertified          EvidenceLevel = "certified"
	EvidenceAttestedWithReport EvidenceLevel = "attested_with_report"
	EvidenceInProgress         EvidenceLevel = "in_progress"
	EvidenceRoadmap            EvidenceLevel = "roadmap"
	EvidenceNone               EvidenceLevel = "none"
)

var evidenceWeights = map[EvidenceLevel]float64{
	EvidenceCertified:          1.0,
	EvidenceAttestedWithReport: 0.85,
	EvidenceInProgress:         0.4,
	EvidenceRoadmap:            0.4,
	EvidenceNone:               0.0,
}

// ComplianceScoreResult reports the weighted score and whether any
// framework's evidence falls below the blocking threshold.
type ComplianceScoreResult struct {
	Score    float64
	Blocking bool
}

// ComplianceScore implements spec §4.A: mean of per-framework evidence
// weights (1.0 if no requirements); blocking if any weight < 0.8.
func ComplianceScore(evidenceByFramework map[string]EvidenceLevel, required []string) ComplianceScoreResult {
	if len(required) == 0 {
		return ComplianceScoreResult{Score: 1.0, Blocking: false}
	}

	var sum float64
	blocking := false
	for _, framework := range required {
		level, ok := evidenceByFramework[framework]
		if !ok {
			level = EvidenceNone
		}
		w := evidenceWeights[level]
		sum += w
		if w < 0.8 {
			blocking = true
		}
	}
	return ComplianceScoreResult{
		Score:    sum / float64(len(required)),
		Blocking: blocking,
	}
}

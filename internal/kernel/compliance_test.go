package kernel

import "testing"

func TestComplianceScoreNoRequirements(t *testing.T) {
	res := ComplianceScore(nil, nil)
	if res.Score != 1.0 || res.Blocking {
		t.Errorf("got %+v, want score=1.0 blocking=false", res)
	}
}

func TestComplianceScoreCertified(t *testing.T) {
	res := ComplianceScore(map[string]EvidenceLevel{"SOC2": EvidenceCertified}, []string{"SOC2"})
	if res.Score != 1.0 || res.Blocking {
		t.Errorf("got %+v, want score=1.0 blocking=false", res)
	}
}

func TestComplianceScoreMissingIsBlocking(t *testing.T) {
	res := ComplianceScore(nil, []string{"SOC2"})
	if res.Score != 0.0 || !res.Blocking {
		t.Errorf("got %+v, want score=0.0 blocking=true", res)
	}
}

func TestComplianceScoreMixed(t *testing.T) {
	res := ComplianceScore(map[string]EvidenceLevel{
		"SOC2": EvidenceCertified,
		"ISO27001": EvidenceInProgress,
	}, []string{"SOC2", "ISO27001"})
	want := (1.0 + 0.4) / 2
	if diff := res.Score - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Score = %v, want %v", res.Score, want)
	}
	if !res.Blocking {
		t.Error("expected blocking=true since ISO27001 weight < 0.8")
	}
}

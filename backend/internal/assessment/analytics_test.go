package assessment

import (
	"math"
	"testing"

	"intervention-graph/backend/internal/rdf"
)

// Seeds three linked follow-ups with changes -3, 0 and +2, with the
// employment change being the -3
func seedCohort(t *testing.T) *Engine {
	t.Helper()
	engine := NewEngine(rdf.NewStore())

	seed := []struct {
		pid, domain, barrierType string
		baseline, followup       int
	}{
		{"P001", "employment", "physical_capability", 8, 5},
		{"P001", "accommodation", "physical_opportunity", 6, 6},
		{"P002", "substance_use", "automatic_motivation", 4, 6},
	}
	for _, s := range seed {
		if _, err := engine.RecordBaseline(s.pid, s.domain, map[string]int{s.barrierType: s.baseline}, baselineDate()); err != nil {
			t.Fatalf("baseline %s/%s: %v", s.pid, s.domain, err)
		}
		if _, err := engine.RecordFollowUp(s.pid, s.domain, "day_30", map[string]int{s.barrierType: s.followup}, followupDate()); err != nil {
			t.Fatalf("follow-up %s/%s: %v", s.pid, s.domain, err)
		}
	}
	return engine
}

func TestCohort_ChangeDistribution(t *testing.T) {
	engine := seedCohort(t)

	result := engine.Cohort("employment")

	if !result.Changes.HasData {
		t.Fatal("expected change data")
	}
	if len(result.Changes.Changes) != 3 {
		t.Fatalf("expected 3 changes, got %d", len(result.Changes.Changes))
	}
	if result.Changes.ImprovedCount != 1 || result.Changes.StableCount != 1 || result.Changes.WorsenedCount != 1 {
		t.Errorf("expected 1/1/1 split, got %d/%d/%d",
			result.Changes.ImprovedCount, result.Changes.StableCount, result.Changes.WorsenedCount)
	}
	if math.Abs(result.AverageChange-(-1.0/3.0)) > 1e-9 {
		t.Errorf("expected average -0.333, got %f", result.AverageChange)
	}
	if result.Changes.Distribution[-3] != 1 || result.Changes.Distribution[0] != 1 || result.Changes.Distribution[2] != 1 {
		t.Errorf("unexpected distribution: %v", result.Changes.Distribution)
	}
}

func TestCohort_AssessmentCount(t *testing.T) {
	engine := seedCohort(t)

	// 3 baselines + 3 follow-ups, each a distinct assessment event
	result := engine.Cohort("employment")
	if result.TotalAssessments != 6 {
		t.Errorf("expected 6 assessment events, got %d", result.TotalAssessments)
	}
}

func TestCohort_TargetedComparison(t *testing.T) {
	engine := seedCohort(t)

	result := engine.Cohort("employment")

	if result.Targeted.TargetedDomain != "employment" {
		t.Errorf("unexpected targeted domain %q", result.Targeted.TargetedDomain)
	}
	// Targeted bucket: {-3}; other bucket: {0, +2}
	if math.Abs(result.Targeted.TargetedAvg-(-3.0)) > 1e-9 {
		t.Errorf("expected targeted avg -3, got %f", result.Targeted.TargetedAvg)
	}
	if math.Abs(result.Targeted.NontargetedAvg-1.0) > 1e-9 {
		t.Errorf("expected nontargeted avg 1, got %f", result.Targeted.NontargetedAvg)
	}
	if math.Abs(result.Targeted.Difference-(-4.0)) > 1e-9 {
		t.Errorf("expected difference -4, got %f", result.Targeted.Difference)
	}
	if math.Abs(result.Targeted.AbsDifference-4.0) > 1e-9 {
		t.Errorf("expected abs difference 4, got %f", result.Targeted.AbsDifference)
	}
}

func TestCohort_EmptyStore(t *testing.T) {
	engine := NewEngine(rdf.NewStore())

	result := engine.Cohort("employment")
	if result.Changes.HasData {
		t.Error("empty store should report no data")
	}
	if result.TotalAssessments != 0 {
		t.Errorf("expected 0 assessments, got %d", result.TotalAssessments)
	}
	if result.AverageChange != 0 {
		t.Errorf("expected zero average, got %f", result.AverageChange)
	}
}

func TestParticipant_Stats(t *testing.T) {
	engine := seedCohort(t)

	p1 := engine.Participant("P001")
	if p1.BaselineOnly {
		t.Error("P001 has linked follow-ups")
	}
	if p1.TotalBarriers != 2 {
		t.Fatalf("expected 2 linked barriers for P001, got %d", p1.TotalBarriers)
	}
	if p1.Improved != 1 || p1.Stable != 1 || p1.Worsened != 0 {
		t.Errorf("expected 1/1/0, got %d/%d/%d", p1.Improved, p1.Stable, p1.Worsened)
	}
	if math.Abs(p1.AvgChange-(-1.5)) > 1e-9 {
		t.Errorf("expected avg -1.5, got %f", p1.AvgChange)
	}

	p2 := engine.Participant("P002")
	if p2.Worsened != 1 || p2.TotalBarriers != 1 {
		t.Errorf("unexpected P002 stats: %+v", p2)
	}
}

func TestParticipant_BaselineOnly(t *testing.T) {
	engine := NewEngine(rdf.NewStore())
	if _, err := engine.RecordBaseline("P005", "relationships", map[string]int{"social_opportunity": 7}, baselineDate()); err != nil {
		t.Fatal(err)
	}

	stats := engine.Participant("P005")
	if !stats.BaselineOnly {
		t.Error("expected baseline-only participant")
	}
	if stats.TotalBarriers != 0 {
		t.Errorf("expected 0 linked barriers, got %d", stats.TotalBarriers)
	}
}

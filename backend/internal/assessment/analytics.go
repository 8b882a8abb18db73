package assessment

import (
	"intervention-graph/backend/internal/graph"
	"intervention-graph/backend/internal/ontology"
	"intervention-graph/backend/internal/rdf"
)

// ChangeDistribution summarises the change scores across linked barriers
type ChangeDistribution struct {
	Changes       []int       `json:"changes"`
	Distribution  map[int]int `json:"distribution"`
	ImprovedCount int         `json:"improved_count"`
	StableCount   int         `json:"stable_count"`
	WorsenedCount int         `json:"worsened_count"`
	HasData       bool        `json:"has_data"`
}

// TargetedComparison is the two-bucket comparison of the configured
// targeted domain against every other domain
type TargetedComparison struct {
	TargetedDomain string  `json:"targeted_domain"`
	TargetedAvg    float64 `json:"targeted_avg"`
	NontargetedAvg float64 `json:"nontargeted_avg"`
	Difference     float64 `json:"difference"`
	AbsDifference  float64 `json:"abs_difference"`
}

// CohortAnalytics is the service-wide outcome summary
type CohortAnalytics struct {
	TotalAssessments int                `json:"total_assessments"`
	AverageChange    float64            `json:"avg_barrier_reduction"`
	Targeted         TargetedComparison `json:"targeted_vs_nontargeted"`
	Changes          ChangeDistribution `json:"change_distribution"`
}

// ParticipantStats summarises one participant's linked follow-ups
type ParticipantStats struct {
	BaselineOnly  bool    `json:"baseline_only"`
	TotalBarriers int     `json:"total_barriers"`
	Improved      int     `json:"improved"`
	Stable        int     `json:"stable"`
	Worsened      int     `json:"worsened"`
	AvgChange     float64 `json:"avg_change"`
}

// Cohort aggregates over every barrier instance carrying a change edge,
// regardless of domain, plus the targeted-vs-other domain comparison.
func (e *Engine) Cohort(targetedDomain string) CohortAnalytics {
	result := CohortAnalytics{
		TotalAssessments: len(e.store.Subjects(rdf.Bound(ontology.RDFType), rdf.Bound(ontology.ClassAssessmentProcess))),
		Changes: ChangeDistribution{
			Distribution: make(map[int]int),
		},
		Targeted: TargetedComparison{TargetedDomain: targetedDomain},
	}

	var targetedDomainIRI rdf.Term
	if d, ok := DomainByID(targetedDomain); ok {
		targetedDomainIRI = graph.DomainIRI(d.Class)
	}

	sum := 0
	targetedSum, targetedN := 0, 0
	otherSum, otherN := 0, 0

	for t := range e.store.Match(nil, rdf.Bound(ontology.HasChangeFromBaseline), nil) {
		change, ok := t.Object.Int()
		if !ok {
			continue
		}
		result.Changes.Changes = append(result.Changes.Changes, change)
		result.Changes.Distribution[change]++
		sum += change
		switch {
		case change < 0:
			result.Changes.ImprovedCount++
		case change > 0:
			result.Changes.WorsenedCount++
		default:
			result.Changes.StableCount++
		}

		if targetedDomainIRI.Value != "" && e.store.Has(t.Subject, ontology.ConcernsDomain, targetedDomainIRI) {
			targetedSum += change
			targetedN++
		} else {
			otherSum += change
			otherN++
		}
	}

	if n := len(result.Changes.Changes); n > 0 {
		result.Changes.HasData = true
		result.AverageChange = float64(sum) / float64(n)
	}
	if targetedN > 0 {
		result.Targeted.TargetedAvg = float64(targetedSum) / float64(targetedN)
	}
	if otherN > 0 {
		result.Targeted.NontargetedAvg = float64(otherSum) / float64(otherN)
	}
	result.Targeted.Difference = result.Targeted.TargetedAvg - result.Targeted.NontargetedAvg
	result.Targeted.AbsDifference = result.Targeted.Difference
	if result.Targeted.AbsDifference < 0 {
		result.Targeted.AbsDifference = -result.Targeted.AbsDifference
	}

	return result
}

// Participant summarises progression for one participant; BaselineOnly is
// set when no follow-up has linked back to a baseline yet
func (e *Engine) Participant(participantID string) ParticipantStats {
	stats := ParticipantStats{}
	sum := 0

	for _, rec := range e.ParticipantBarriers(participantID, "", "") {
		if rec.ChangeFromBaseline == nil {
			continue
		}
		change := *rec.ChangeFromBaseline
		stats.TotalBarriers++
		sum += change
		switch {
		case change < 0:
			stats.Improved++
		case change > 0:
			stats.Worsened++
		default:
			stats.Stable++
		}
	}

	if stats.TotalBarriers == 0 {
		stats.BaselineOnly = true
		return stats
	}
	stats.AvgChange = float64(sum) / float64(stats.TotalBarriers)
	return stats
}

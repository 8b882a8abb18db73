// Package assessment implements the longitudinal barrier-assessment
// engine: baseline and follow-up recording over the triple store,
// reassessment linkage, change scores, outcome classification and the
// participant- and cohort-level analytic queries.
package assessment

// BarrierTypeInfo describes one of the six COM-B obstacle categories
type BarrierTypeInfo struct {
	ID        string // e.g. "physical_capability"
	Class     string // barrier-namespace class local name
	Label     string
	Mechanism string // BCIO mechanism local id this barrier is addressable by
}

// BarrierTypes lists the six COM-B categories in canonical order
var BarrierTypes = []BarrierTypeInfo{
	{ID: "physical_capability", Class: "Physical_Capability_Barrier", Label: "Physical Capability Barrier", Mechanism: "0000532"},
	{ID: "psychological_capability", Class: "Psychological_Capability_Barrier", Label: "Psychological Capability Barrier", Mechanism: "0000532"},
	{ID: "physical_opportunity", Class: "Physical_Opportunity_Barrier", Label: "Physical Opportunity Barrier", Mechanism: "0000536"},
	{ID: "social_opportunity", Class: "Social_Opportunity_Barrier", Label: "Social Opportunity Barrier", Mechanism: "0000537"},
	{ID: "reflective_motivation", Class: "Reflective_Motivation_Barrier", Label: "Reflective Motivation Barrier", Mechanism: "0000533"},
	{ID: "automatic_motivation", Class: "Automatic_Motivation_Barrier", Label: "Automatic Motivation Barrier", Mechanism: "0000534"},
}

// BarrierTypeByID returns the COM-B category with the given id
func BarrierTypeByID(id string) (BarrierTypeInfo, bool) {
	for _, bt := range BarrierTypes {
		if bt.ID == id {
			return bt, true
		}
	}
	return BarrierTypeInfo{}, false
}

// TimepointBaseline is the timepoint every follow-up links back to
const TimepointBaseline = "baseline"

// TimepointInfo describes an assessment timepoint
type TimepointInfo struct {
	ID    string // e.g. "day_30"
	Label string // IRI local label, e.g. "Day_30"
}

// Timepoints lists the assessment schedule in temporal order
var Timepoints = []TimepointInfo{
	{ID: "baseline", Label: "Baseline"},
	{ID: "day_30", Label: "Day_30"},
	{ID: "day_90", Label: "Day_90"},
	{ID: "day_180", Label: "Day_180"},
}

// TimepointByID returns the timepoint with the given id
func TimepointByID(id string) (TimepointInfo, bool) {
	for _, tp := range Timepoints {
		if tp.ID == id {
			return tp, true
		}
	}
	return TimepointInfo{}, false
}

// timepointOrder returns the schedule position of a timepoint id, with
// unknown ids sorting last
func timepointOrder(id string) int {
	for i, tp := range Timepoints {
		if tp.ID == id {
			return i
		}
	}
	return len(Timepoints)
}

// DomainInfo describes a life domain barriers are assessed against
type DomainInfo struct {
	ID    string // e.g. "employment"
	Class string // IRI local class name, e.g. "Employment_Domain"
}

// Domains lists the fixed set of life domains
var Domains = []DomainInfo{
	{ID: "employment", Class: "Employment_Domain"},
	{ID: "accommodation", Class: "Accommodation_Domain"},
	{ID: "substance_use", Class: "Substance_Use_Domain"},
	{ID: "relationships", Class: "Relationships_Domain"},
	{ID: "attitudes", Class: "Attitudes_Domain"},
	{ID: "leisure", Class: "Leisure_Domain"},
}

// DomainByID returns the domain with the given id
func DomainByID(id string) (DomainInfo, bool) {
	for _, d := range Domains {
		if d.ID == id {
			return d, true
		}
	}
	return DomainInfo{}, false
}

// Outcome classifications for a linked follow-up barrier
const (
	OutcomeReduction = "Barrier_Reduction"
	OutcomeStable    = "Barrier_Stable"
	OutcomeIncrease  = "Barrier_Increase"
)

// ClassifyChange maps a change score to its outcome class
func ClassifyChange(change int) string {
	switch {
	case change < 0:
		return OutcomeReduction
	case change > 0:
		return OutcomeIncrease
	default:
		return OutcomeStable
	}
}

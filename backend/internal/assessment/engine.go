package assessment

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"intervention-graph/backend/internal/graph"
	"intervention-graph/backend/internal/ontology"
	"intervention-graph/backend/internal/rdf"
	pkgerrors "intervention-graph/backend/pkg/errors"
)

// Engine runs barrier assessments against a triple store. It owns the
// derived-edge computation (reassessment links, change scores, outcome
// classes) and writes its results back into the same store; no separate
// index is kept.
type Engine struct {
	store *rdf.Store
}

// NewEngine returns an engine over the given store
func NewEngine(store *rdf.Store) *Engine {
	return &Engine{store: store}
}

// RecordBaseline creates one barrier instance per scored COM-B category at
// the baseline timepoint. A baseline is single per (participant, domain,
// barrier-type): re-recording any category that already has one is
// rejected before anything is written.
func (e *Engine) RecordBaseline(participantID, domain string, scores map[string]int, date time.Time) (rdf.Term, error) {
	d, ok := DomainByID(domain)
	if !ok {
		return rdf.Term{}, pkgerrors.NewValidationError("domain", fmt.Sprintf("unknown domain %q", domain))
	}
	for _, barrierType := range sortedScoreKeys(scores) {
		if _, ok := BarrierTypeByID(barrierType); !ok {
			return rdf.Term{}, pkgerrors.NewValidationError("barrier_type", fmt.Sprintf("unknown barrier type %q", barrierType))
		}
		barrier := graph.BarrierIRI(participantID, domain, barrierType, TimepointBaseline)
		if e.store.Count(rdf.Bound(barrier), rdf.Bound(ontology.HasSeverityScore), nil) > 0 {
			return rdf.Term{}, pkgerrors.NewValidationError("timepoint",
				fmt.Sprintf("baseline already recorded for %s/%s/%s", participantID, domain, barrierType))
		}
	}

	return e.addAssessment(participantID, d, TimepointBaseline, scores, date), nil
}

// RecordFollowUp creates barrier instances at a follow-up timepoint and
// links each one to its baseline when a baseline exists: an
// is_reassessment_of edge, an integer change score (follow-up minus
// baseline) and an outcome class. A follow-up without a baseline is still
// recorded but carries no change or classification.
func (e *Engine) RecordFollowUp(participantID, domain, timepoint string, scores map[string]int, date time.Time) (rdf.Term, error) {
	d, ok := DomainByID(domain)
	if !ok {
		return rdf.Term{}, pkgerrors.NewValidationError("domain", fmt.Sprintf("unknown domain %q", domain))
	}
	tp, ok := TimepointByID(timepoint)
	if !ok {
		return rdf.Term{}, pkgerrors.NewValidationError("timepoint", fmt.Sprintf("unknown timepoint %q", timepoint))
	}
	if tp.ID == TimepointBaseline {
		return rdf.Term{}, pkgerrors.NewValidationError("timepoint", "follow-up timepoint cannot be baseline")
	}
	for _, barrierType := range sortedScoreKeys(scores) {
		if _, ok := BarrierTypeByID(barrierType); !ok {
			return rdf.Term{}, pkgerrors.NewValidationError("barrier_type", fmt.Sprintf("unknown barrier type %q", barrierType))
		}
	}

	assessment := e.addAssessment(participantID, d, timepoint, scores, date)

	for _, barrierType := range sortedScoreKeys(scores) {
		e.linkToBaseline(participantID, domain, barrierType, timepoint, scores[barrierType])
	}

	return assessment, nil
}

// addAssessment writes the assessment event node and its barrier
// instances. An empty score batch still records the event.
func (e *Engine) addAssessment(participantID string, d DomainInfo, timepoint string, scores map[string]int, date time.Time) rdf.Term {
	tp, _ := TimepointByID(timepoint)
	participant := graph.ParticipantIRI(participantID)
	assessment := graph.AssessmentIRI(participantID, d.ID, timepoint, date)

	e.store.Add(assessment, ontology.RDFType, ontology.ClassAssessmentProcess)
	e.store.Add(assessment, ontology.RDFSLabel, rdf.LangString("Barrier Assessment - "+d.ID, "en"))
	e.store.Add(assessment, ontology.HasSpecifiedInput, participant)
	e.store.Add(assessment, ontology.HasTemporalValue, rdf.DateTime(date))
	e.store.Add(assessment, ontology.AssessedAtTimepoint, graph.TimepointIRI(tp.Label))
	e.store.Add(assessment, ontology.ConcernsDomain, graph.DomainIRI(d.Class))

	for _, barrierType := range sortedScoreKeys(scores) {
		barrier := e.addBarrierInstance(participant, participantID, d, barrierType, timepoint, scores[barrierType], date)
		e.store.Add(assessment, ontology.HasPart, barrier)
	}

	return assessment
}

func (e *Engine) addBarrierInstance(participant rdf.Term, participantID string, d DomainInfo, barrierType, timepoint string, score int, date time.Time) rdf.Term {
	info, _ := BarrierTypeByID(barrierType)
	tp, _ := TimepointByID(timepoint)
	barrier := graph.BarrierIRI(participantID, d.ID, barrierType, timepoint)

	e.store.Add(barrier, ontology.RDFType, ontology.Barrier(info.Class))
	e.store.Add(barrier, ontology.RDFType, ontology.ClassQuality)
	e.store.Add(barrier, ontology.RDFSLabel, rdf.LangString(info.Label, "en"))
	e.store.Add(barrier, ontology.InheresIn, participant)
	e.store.Add(barrier, ontology.ConcernsDomain, graph.DomainIRI(d.Class))
	e.store.Add(barrier, ontology.AssessedAtTimepoint, graph.TimepointIRI(tp.Label))
	e.store.Add(barrier, ontology.HasSeverityScore, rdf.Integer(score))
	e.store.Add(barrier, ontology.HasAssessmentDate, rdf.DateTime(date))
	e.store.Add(barrier, ontology.AddressableByMechanism, ontology.BCIO(info.Mechanism))

	return barrier
}

// linkToBaseline resolves the baseline barrier by its derived identifier,
// never by searching. Missing baseline leaves the follow-up unlinked.
func (e *Engine) linkToBaseline(participantID, domain, barrierType, timepoint string, followupScore int) {
	followup := graph.BarrierIRI(participantID, domain, barrierType, timepoint)
	baseline := graph.BarrierIRI(participantID, domain, barrierType, TimepointBaseline)

	baselineScore, ok := e.barrierScore(baseline)
	if !ok {
		return
	}

	change := followupScore - baselineScore
	e.store.Add(followup, ontology.IsReassessmentOf, baseline)
	e.store.Add(followup, ontology.HasChangeFromBaseline, rdf.Integer(change))
	e.store.Add(followup, ontology.RDFType, ontology.Barrier(ClassifyChange(change)))
}

func (e *Engine) barrierScore(barrier rdf.Term) (int, bool) {
	t, ok := e.store.MatchFirst(rdf.Bound(barrier), rdf.Bound(ontology.HasSeverityScore), nil)
	if !ok {
		return 0, false
	}
	return t.Object.Int()
}

// BarrierRecord is the plain-data view of one barrier instance
type BarrierRecord struct {
	IRI                string `json:"barrier_uri"`
	Label              string `json:"label"`
	Domain             string `json:"domain"`
	BarrierType        string `json:"barrier_type"`
	Timepoint          string `json:"timepoint"`
	SeverityScore      int    `json:"severity_score"`
	ChangeFromBaseline *int   `json:"change_from_baseline"`
	Outcome            string `json:"outcome,omitempty"`
}

// ParticipantBarriers returns a participant's barrier instances, filtered
// by domain and/or timepoint when given, sorted by domain then timepoint
// for progression display. Unknown participants yield an empty result,
// not an error.
func (e *Engine) ParticipantBarriers(participantID, domain, timepoint string) []BarrierRecord {
	var records []BarrierRecord

	for t := range e.store.Match(nil, rdf.Bound(ontology.HasSeverityScore), nil) {
		pid, dom, barrierType, tp, ok := splitBarrierIRI(t.Subject)
		if !ok || pid != participantID {
			continue
		}
		if domain != "" && dom != domain {
			continue
		}
		if timepoint != "" && tp != timepoint {
			continue
		}
		score, ok := t.Object.Int()
		if !ok {
			continue
		}

		rec := BarrierRecord{
			IRI:           t.Subject.Value,
			Domain:        dom,
			BarrierType:   barrierType,
			Timepoint:     tp,
			SeverityScore: score,
		}
		if info, ok := BarrierTypeByID(barrierType); ok {
			rec.Label = info.Label
		}
		if changeTriple, ok := e.store.MatchFirst(rdf.Bound(t.Subject), rdf.Bound(ontology.HasChangeFromBaseline), nil); ok {
			if change, ok := changeTriple.Object.Int(); ok {
				rec.ChangeFromBaseline = &change
				rec.Outcome = ClassifyChange(change)
			}
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Domain != records[j].Domain {
			return records[i].Domain < records[j].Domain
		}
		return timepointOrder(records[i].Timepoint) < timepointOrder(records[j].Timepoint)
	})

	return records
}

// splitBarrierIRI recovers (participant, domain, barrier-type, timepoint)
// from a barrier instance identifier
func splitBarrierIRI(subject rdf.Term) (pid, domain, barrierType, timepoint string, ok bool) {
	if !subject.IsIRI() || !strings.HasPrefix(subject.Value, ontology.NSBarrier) {
		return "", "", "", "", false
	}
	parts := strings.Split(strings.TrimPrefix(subject.Value, ontology.NSBarrier), "/")
	if len(parts) != 4 {
		return "", "", "", "", false
	}
	return parts[0], parts[1], parts[2], parts[3], true
}

func sortedScoreKeys(scores map[string]int) []string {
	keys := make([]string, 0, len(scores))
	for k := range scores {
		keys = append(keys, k)
	}
	// Canonical COM-B order, so emitted triples are deterministic
	sort.Slice(keys, func(i, j int) bool {
		return barrierTypeOrder(keys[i]) < barrierTypeOrder(keys[j])
	})
	return keys
}

func barrierTypeOrder(id string) int {
	for i, bt := range BarrierTypes {
		if bt.ID == id {
			return i
		}
	}
	return len(BarrierTypes)
}

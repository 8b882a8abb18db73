package tracker

import (
	"sort"
	"strings"
	"time"

	"intervention-graph/backend/internal/ontology"
	"intervention-graph/backend/internal/rdf"
)

// readEncounters reconstructs encounter views from the graph, newest
// first. An empty participantID returns every encounter.
func readEncounters(g *rdf.Store, participantID string) []EncounterView {
	var views []EncounterView

	for _, subject := range g.Subjects(rdf.Bound(ontology.RDFType), rdf.Bound(ontology.ClassEncounterProcess)) {
		view, ok := readEncounter(g, subject)
		if !ok {
			continue
		}
		if participantID != "" && view.ParticipantID != participantID {
			continue
		}
		views = append(views, view)
	}

	sort.SliceStable(views, func(i, j int) bool {
		if views[i].Timestamp != views[j].Timestamp {
			return views[i].Timestamp > views[j].Timestamp
		}
		return views[i].EncounterID > views[j].EncounterID
	})
	return views
}

func readEncounter(g *rdf.Store, subject rdf.Term) (EncounterView, bool) {
	prefix := ontology.NSIntervention + "encounter/"
	if !strings.HasPrefix(subject.Value, prefix) {
		return EncounterView{}, false
	}

	view := EncounterView{EncounterID: strings.TrimPrefix(subject.Value, prefix)}

	if t, ok := g.MatchFirst(rdf.Bound(subject), rdf.Bound(ontology.HasTemporalValue), nil); ok {
		if ts, ok := t.Object.Time(); ok {
			view.Timestamp = ts.Format(time.RFC3339)
		}
	}
	view.ParticipantID = linkedLocal(g, subject, ontology.HasSpecifiedInput, "participant/")
	view.ProtocolID = linkedLocal(g, subject, ontology.Realizes, "protocol/")
	view.PractitionerID = linkedLocal(g, subject, ontology.HasSpecifiedAgent, "practitioner/")

	mode := rdf.IRI(subject.Value + "/mode_quality")
	if t, ok := g.MatchFirst(rdf.Bound(mode), rdf.Bound(ontology.HasQualityValue), nil); ok {
		view.Mode = t.Object.Value
	}
	duration := rdf.IRI(subject.Value + "/duration_quality")
	if t, ok := g.MatchFirst(rdf.Bound(duration), rdf.Bound(ontology.HasMeasurementValue), nil); ok {
		if minutes, ok := t.Object.Int(); ok {
			view.DurationMinutes = minutes
		}
	}
	if t, ok := g.MatchFirst(rdf.Bound(subject), rdf.Bound(ontology.RDFSComment), nil); ok {
		view.Notes = t.Object.Value
	}
	view.BCTCount = g.Count(rdf.Bound(subject), rdf.Bound(ontology.HasPart), nil)

	referral := rdf.IRI(subject.Value + "/referral")
	view.ReferralMade = g.Count(rdf.Bound(referral), nil, nil) > 0

	return view, true
}

// linkedLocal resolves an edge to another entity and strips its namespace
// prefix down to the bare identifier
func linkedLocal(g *rdf.Store, subject, predicate rdf.Term, kind string) string {
	t, ok := g.MatchFirst(rdf.Bound(subject), rdf.Bound(predicate), nil)
	if !ok {
		return ""
	}
	return strings.TrimPrefix(t.Object.Value, ontology.NSIntervention+kind)
}

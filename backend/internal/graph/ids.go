// Package graph turns validated intervention records into statements in
// the triple store. It owns the identifier scheme: every entity and
// sub-entity id is derived from stable natural keys, so re-deriving from
// the same inputs always reproduces the same identifier.
package graph

import (
	"fmt"
	"time"

	"intervention-graph/backend/internal/ontology"
	"intervention-graph/backend/internal/rdf"
)

// ParticipantID formats the participant identifier for a sequence number
func ParticipantID(sequence int) string {
	return fmt.Sprintf("P%03d", sequence)
}

// ParticipantIRI returns the node identifier for a participant
func ParticipantIRI(participantID string) rdf.Term {
	return ontology.Intervention("participant/" + participantID)
}

// EncounterID derives the encounter identifier from its timestamp and
// recipient
func EncounterID(t time.Time, participantID string) string {
	return "ENC_" + t.Format("20060102_150405") + "-" + participantID
}

// EncounterIRI returns the node identifier for an encounter
func EncounterIRI(encounterID string) rdf.Term {
	return ontology.Intervention("encounter/" + encounterID)
}

// BCTInstanceIRI returns the node identifier for a technique instance,
// scoped to its encounter by slot index
func BCTInstanceIRI(encounterID string, slot int) rdf.Term {
	return ontology.Intervention(fmt.Sprintf("encounter/%s/bct/%d", encounterID, slot))
}

// ProtocolIRI returns the node identifier for a protocol
func ProtocolIRI(protocolID string) rdf.Term {
	return ontology.Intervention("protocol/" + protocolID)
}

// PractitionerIRI returns the node identifier for a practitioner
func PractitionerIRI(practitionerID string) rdf.Term {
	return ontology.Intervention("practitioner/" + practitionerID)
}

// TimepointIRI returns the node identifier for an assessment timepoint
func TimepointIRI(timepointLabel string) rdf.Term {
	return ontology.Intervention("timepoint:" + timepointLabel)
}

// DomainIRI returns the node identifier for a life domain
func DomainIRI(domainClass string) rdf.Term {
	return ontology.Intervention("domain/" + domainClass)
}

// AssessmentIRI returns the node identifier for an assessment event
func AssessmentIRI(participantID, domain, timepoint string, date time.Time) rdf.Term {
	return ontology.Intervention(fmt.Sprintf("assessment/%s/%s/%s/%s",
		participantID, domain, timepoint, date.Format(time.RFC3339)))
}

// BarrierIRI returns the node identifier for one barrier instance. The
// same (participant, domain, barrier-type, timepoint) always yields the
// same id, which is what lets a follow-up find its baseline without
// searching.
func BarrierIRI(participantID, domain, barrierType, timepoint string) rdf.Term {
	return ontology.Barrier(fmt.Sprintf("%s/%s/%s/%s", participantID, domain, barrierType, timepoint))
}

// Sub-node identifiers for qualities and attributes

func ageAttributeIRI(participant rdf.Term) rdf.Term {
	return rdf.IRI(participant.Value + "/age_attribute")
}

func populationAttributeIRI(participant rdf.Term, tagName string) rdf.Term {
	return rdf.IRI(participant.Value + "/attribute/" + tagName)
}

func modeQualityIRI(encounter rdf.Term) rdf.Term {
	return rdf.IRI(encounter.Value + "/mode_quality")
}

func durationQualityIRI(encounter rdf.Term) rdf.Term {
	return rdf.IRI(encounter.Value + "/duration_quality")
}

func fidelityQualityIRI(bct rdf.Term) rdf.Term {
	return rdf.IRI(bct.Value + "/fidelity_quality")
}

func referralIRI(encounter rdf.Term) rdf.Term {
	return rdf.IRI(encounter.Value + "/referral")
}

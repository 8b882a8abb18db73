package graph

import (
	"strings"

	"intervention-graph/backend/internal/ontology"
	"intervention-graph/backend/internal/rdf"
)

// AddParticipant emits the identity triples, age quality sub-node and one
// attribute sub-node per tag for a participant record. Returns the
// participant's node identifier.
func AddParticipant(store *rdf.Store, p Participant) rdf.Term {
	participant := ParticipantIRI(p.ID)

	store.Add(participant, ontology.RDFType, ontology.ClassMaterialEntity)
	store.Add(participant, ontology.RDFType, ontology.ClassInterventionRecipient)
	store.Add(participant, ontology.Identifier, rdf.String(p.ID))
	store.Add(participant, ontology.CreationTime, rdf.DateTime(p.Created))

	addAgeAttribute(store, participant, p.Age)

	for _, tag := range p.Tags {
		addPopulationAttribute(store, participant, tag)
	}

	return participant
}

func addAgeAttribute(store *rdf.Store, participant rdf.Term, age int) rdf.Term {
	attr := ageAttributeIRI(participant)
	store.Add(attr, ontology.RDFType, ontology.ClassAge)
	store.Add(attr, ontology.InheresIn, participant)
	store.Add(attr, ontology.HasMeasurementValue, rdf.Integer(age))
	store.Add(attr, ontology.HasMeasurementUnit, ontology.UnitYears)
	return attr
}

func addPopulationAttribute(store *rdf.Store, participant rdf.Term, tag AttributeTag) rdf.Term {
	attr := populationAttributeIRI(participant, tag.Name)
	store.Add(attr, ontology.RDFType, ontology.ParseClassRef(tag.ClassID))
	store.Add(attr, ontology.RDFType, ontology.ClassQuality)
	store.Add(attr, ontology.InheresIn, participant)
	store.Add(attr, ontology.RDFSLabel, rdf.LangString(strings.ReplaceAll(tag.Name, "_", " "), "en"))
	store.Add(attr, ontology.AttributeCategory, rdf.String(tag.Category))
	return attr
}

// AddEncounter emits the full triple set for an encounter: identity,
// timestamp, quality sub-nodes, link edges to participant, protocol and
// practitioner, one technique instance per BCT, and the optional referral
// sub-node. Returns the encounter's node identifier.
func AddEncounter(store *rdf.Store, e Encounter) rdf.Term {
	encounter := EncounterIRI(e.ID)

	store.Add(encounter, ontology.RDFType, ontology.ClassEncounterProcess)
	store.Add(encounter, ontology.RDFType, ontology.ClassProcess)
	store.Add(encounter, ontology.HasTemporalValue, rdf.DateTime(e.Timestamp))
	store.Add(encounter, ontology.HasSpecifiedInput, ParticipantIRI(e.ParticipantID))

	addModeQuality(store, encounter, e.Mode)
	addDurationQuality(store, encounter, e.DurationMinutes)

	store.Add(encounter, ontology.Realizes, ProtocolIRI(e.ProtocolID))
	store.Add(encounter, ontology.HasSpecifiedAgent, PractitionerIRI(e.PractitionerID))

	for _, bct := range e.BCTs {
		instance := AddBCTInstance(store, e.ID, bct, encounter)
		store.Add(encounter, ontology.HasPart, instance)
	}

	if e.Referral != nil && e.Referral.WasMade {
		addReferral(store, encounter, *e.Referral)
	}

	if e.Notes != "" {
		store.Add(encounter, ontology.RDFSComment, rdf.LangString(e.Notes, "en"))
	}

	return encounter
}

func addModeQuality(store *rdf.Store, encounter rdf.Term, mode string) rdf.Term {
	quality := modeQualityIRI(encounter)
	store.Add(quality, ontology.RDFType, ontology.ClassModeOfDelivery)
	store.Add(quality, ontology.InheresIn, encounter)
	store.Add(quality, ontology.HasQualityValue, rdf.String(mode))
	return quality
}

func addDurationQuality(store *rdf.Store, encounter rdf.Term, minutes int) rdf.Term {
	quality := durationQualityIRI(encounter)
	store.Add(quality, ontology.RDFType, ontology.ClassDuration)
	store.Add(quality, ontology.InheresIn, encounter)
	store.Add(quality, ontology.HasMeasurementValue, rdf.Integer(minutes))
	store.Add(quality, ontology.HasMeasurementUnit, ontology.UnitMinutes)
	return quality
}

func addReferral(store *rdf.Store, encounter rdf.Term, r Referral) rdf.Term {
	referral := referralIRI(encounter)
	store.Add(referral, ontology.RDFType, ontology.BCIO("referral"))
	store.Add(referral, ontology.PartOf, encounter)
	store.Add(referral, ontology.BCIO("referral_category"), rdf.String(r.Category))
	store.Add(referral, ontology.BCIO("referral_destination"), rdf.String(r.Destination))
	store.Add(referral, ontology.BCIO("referral_accepted"), rdf.Boolean(r.Accepted))
	return referral
}

// AddBCTInstance emits the triples for one technique instance: class,
// labels, notes, auto-tag flag, fidelity quality sub-node and the part-of
// edge back to its encounter
func AddBCTInstance(store *rdf.Store, encounterID string, b BCTInstance, encounter rdf.Term) rdf.Term {
	instance := BCTInstanceIRI(encounterID, b.Slot)

	store.Add(instance, ontology.RDFType, ontology.ParseClassRef(b.ClassRef))

	addFidelityQuality(store, instance, b.Fidelity)

	store.Add(instance, ontology.RDFSLabel, rdf.LangString(b.PractitionerLabel, "en"))
	store.Add(instance, ontology.AlternativeLabel, rdf.LangString(b.FormalLabel, "en"))
	if b.Notes != "" {
		store.Add(instance, ontology.RDFSComment, rdf.LangString(b.Notes, "en"))
	}
	store.Add(instance, ontology.AutoTagged, rdf.Boolean(b.AutoTagged))
	store.Add(instance, ontology.PartOf, encounter)

	return instance
}

func addFidelityQuality(store *rdf.Store, instance rdf.Term, fidelity string) rdf.Term {
	quality := fidelityQualityIRI(instance)
	store.Add(quality, ontology.RDFType, ontology.ClassPATOQuality)
	store.Add(quality, ontology.RDFType, ontology.ClassFidelityQuality)
	store.Add(quality, ontology.RDFType, ontology.FidelityClass(fidelity))
	store.Add(quality, ontology.InheresIn, instance)
	store.Add(quality, ontology.HasQualityValue, rdf.String(fidelity))
	return quality
}

package graph

import (
	"testing"
	"time"

	"intervention-graph/backend/internal/ontology"
	"intervention-graph/backend/internal/rdf"
)

func TestAddParticipant_EmitsIdentityAndQualities(t *testing.T) {
	store := rdf.NewStore()
	created := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

	participant := AddParticipant(store, Participant{
		ID:      "P001",
		Age:     34,
		Created: created,
		Tags: []AttributeTag{
			{Name: "recently_released", Category: "reentry", ClassID: "BCIO:0000203"},
		},
	})

	if !store.Has(participant, ontology.RDFType, ontology.ClassMaterialEntity) {
		t.Error("missing material entity type")
	}
	if !store.Has(participant, ontology.RDFType, ontology.ClassInterventionRecipient) {
		t.Error("missing intervention recipient type")
	}
	if !store.Has(participant, ontology.Identifier, rdf.String("P001")) {
		t.Error("missing identifier literal")
	}
	if !store.Has(participant, ontology.CreationTime, rdf.DateTime(created)) {
		t.Error("missing creation timestamp")
	}

	age := rdf.IRI(participant.Value + "/age_attribute")
	if !store.Has(age, ontology.HasMeasurementValue, rdf.Integer(34)) {
		t.Error("missing age value")
	}
	if !store.Has(age, ontology.HasMeasurementUnit, ontology.UnitYears) {
		t.Error("missing age unit")
	}
	if !store.Has(age, ontology.InheresIn, participant) {
		t.Error("age quality does not inhere in participant")
	}

	tag := rdf.IRI(participant.Value + "/attribute/recently_released")
	if !store.Has(tag, ontology.RDFSLabel, rdf.LangString("recently released", "en")) {
		t.Error("tag label should replace underscores with spaces")
	}
	if !store.Has(tag, ontology.AttributeCategory, rdf.String("reentry")) {
		t.Error("missing tag category")
	}
	if !store.Has(tag, ontology.RDFType, ontology.BCIO("0000203")) {
		t.Error("tag class not parsed from BCIO id")
	}
}

func TestAddParticipant_IsIdempotent(t *testing.T) {
	store := rdf.NewStore()
	p := Participant{ID: "P002", Age: 28, Created: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)}

	AddParticipant(store, p)
	n := store.Len()
	AddParticipant(store, p)
	if store.Len() != n {
		t.Errorf("re-adding the same participant grew the store from %d to %d", n, store.Len())
	}
}

func TestAddEncounter_FullTripleSet(t *testing.T) {
	store := rdf.NewStore()
	ts := time.Date(2025, 3, 5, 11, 30, 0, 0, time.UTC)

	enc := Encounter{
		ID:              EncounterID(ts, "P001"),
		Timestamp:       ts,
		ParticipantID:   "P001",
		ProtocolID:      "employment_support_v1",
		PractitionerID:  "CLW001",
		Mode:            ontology.ModeFaceToFace,
		DurationMinutes: 45,
		Notes:           "good engagement",
		BCTs: []BCTInstance{
			{
				Slot:              1,
				TechniqueID:       "BCT_1.1",
				ClassRef:          "bcio:0000001",
				PractitionerLabel: "Help participant set specific employment goals",
				FormalLabel:       "Goal setting (behaviour)",
				Fidelity:          ontology.FidelityDelivered,
				AutoTagged:        true,
			},
		},
		Referral: &Referral{WasMade: true, Category: "housing", Destination: "Emergency shelter", Accepted: true},
	}

	encounter := AddEncounter(store, enc)

	if !store.Has(encounter, ontology.HasSpecifiedInput, ParticipantIRI("P001")) {
		t.Error("missing participant link")
	}
	if !store.Has(encounter, ontology.Realizes, ProtocolIRI("employment_support_v1")) {
		t.Error("missing protocol link")
	}
	if !store.Has(encounter, ontology.HasSpecifiedAgent, PractitionerIRI("CLW001")) {
		t.Error("missing practitioner link")
	}
	if !store.Has(encounter, ontology.HasTemporalValue, rdf.DateTime(ts)) {
		t.Error("missing timestamp")
	}
	if !store.Has(encounter, ontology.RDFSComment, rdf.LangString("good engagement", "en")) {
		t.Error("missing notes")
	}

	duration := rdf.IRI(encounter.Value + "/duration_quality")
	if !store.Has(duration, ontology.HasMeasurementValue, rdf.Integer(45)) {
		t.Error("missing duration value")
	}
	mode := rdf.IRI(encounter.Value + "/mode_quality")
	if !store.Has(mode, ontology.HasQualityValue, rdf.String(ontology.ModeFaceToFace)) {
		t.Error("missing mode value")
	}

	instance := BCTInstanceIRI(enc.ID, 1)
	if !store.Has(encounter, ontology.HasPart, instance) {
		t.Error("missing has-part edge to BCT instance")
	}
	if !store.Has(instance, ontology.PartOf, encounter) {
		t.Error("missing part-of edge back to encounter")
	}

	fidelity := rdf.IRI(instance.Value + "/fidelity_quality")
	if !store.Has(fidelity, ontology.RDFType, ontology.FidelityClass(ontology.FidelityDelivered)) {
		t.Error("missing fidelity class")
	}
	if !store.Has(fidelity, ontology.HasQualityValue, rdf.String(ontology.FidelityDelivered)) {
		t.Error("missing fidelity value")
	}

	referral := rdf.IRI(encounter.Value + "/referral")
	if !store.Has(referral, ontology.BCIO("referral_category"), rdf.String("housing")) {
		t.Error("missing referral category")
	}
	if !store.Has(referral, ontology.BCIO("referral_accepted"), rdf.Boolean(true)) {
		t.Error("missing referral acceptance")
	}
}

func TestAddEncounter_NoNotesNoReferral(t *testing.T) {
	store := rdf.NewStore()
	ts := time.Date(2025, 3, 6, 10, 0, 0, 0, time.UTC)

	encounter := AddEncounter(store, Encounter{
		ID:              EncounterID(ts, "P003"),
		Timestamp:       ts,
		ParticipantID:   "P003",
		ProtocolID:      "check_in",
		PractitionerID:  "CLW002",
		Mode:            ontology.ModePhone,
		DurationMinutes: 15,
	})

	if store.Count(rdf.Bound(encounter), rdf.Bound(ontology.RDFSComment), nil) != 0 {
		t.Error("unexpected notes triple")
	}
	referral := rdf.IRI(encounter.Value + "/referral")
	if store.Count(rdf.Bound(referral), nil, nil) != 0 {
		t.Error("unexpected referral sub-node")
	}
}

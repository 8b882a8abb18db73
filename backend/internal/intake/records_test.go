package intake

import (
	"testing"

	pkgerrors "intervention-graph/backend/pkg/errors"
)

func validEncounter() EncounterIntake {
	return EncounterIntake{
		ParticipantID:   "P001",
		ProtocolID:      "employment_support_v1",
		PractitionerID:  "CLW001",
		Mode:            "face_to_face",
		DurationMinutes: 45,
	}
}

func TestEncounterIntake_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*EncounterIntake)
		field  string
	}{
		{"missing participant", func(e *EncounterIntake) { e.ParticipantID = "" }, "participant_id"},
		{"unknown protocol", func(e *EncounterIntake) { e.ProtocolID = "telepathy_v9" }, "protocol_id"},
		{"missing practitioner", func(e *EncounterIntake) { e.PractitionerID = "" }, "practitioner_id"},
		{"unknown mode", func(e *EncounterIntake) { e.Mode = "carrier_pigeon" }, "mode"},
		{"zero duration", func(e *EncounterIntake) { e.DurationMinutes = 0 }, "duration_minutes"},
		{"bad fidelity", func(e *EncounterIntake) {
			e.ConfirmedBCTs = map[string]BCTConfirmation{"BCT_1.1": {Fidelity: "kinda"}}
		}, "fidelity"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := validEncounter()
			tc.mutate(&e)
			err := e.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !pkgerrors.IsValidation(err) {
				t.Errorf("expected validation error type, got %v", err)
			}
		})
	}

	e := validEncounter()
	if err := e.Validate(); err != nil {
		t.Errorf("valid encounter rejected: %v", err)
	}
}

func TestBarrierIntake_Validate(t *testing.T) {
	b := BarrierIntake{
		ParticipantID: "P001",
		Domain:        "employment",
		Timepoint:     "baseline",
		Scores:        map[string]int{"physical_capability": 6},
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("valid intake rejected: %v", err)
	}

	b.Scores = map[string]int{"physical_capability": 11}
	if err := b.Validate(); err == nil {
		t.Error("expected score above 10 to be rejected")
	}
	b.Scores = map[string]int{"physical_capability": -1}
	if err := b.Validate(); err == nil {
		t.Error("expected negative score to be rejected")
	}

	b.Scores = map[string]int{"astral_capability": 5}
	if err := b.Validate(); err == nil {
		t.Error("expected unknown barrier type to be rejected")
	}

	b.Scores = nil
	if err := b.Validate(); err != nil {
		t.Errorf("empty score batch should be allowed, got %v", err)
	}

	b.Domain = "gardening"
	if err := b.Validate(); err == nil {
		t.Error("expected unknown domain to be rejected")
	}
	b.Domain = "employment"
	b.Timepoint = "day_45"
	if err := b.Validate(); err == nil {
		t.Error("expected unknown timepoint to be rejected")
	}
}

func TestParticipantIntake_Validate(t *testing.T) {
	p := ParticipantIntake{Age: 34}
	if err := p.Validate(); err != nil {
		t.Fatalf("valid intake rejected: %v", err)
	}
	p.Age = 0
	if err := p.Validate(); err == nil {
		t.Error("expected zero age to be rejected")
	}
	p.Age = 34
	p.DaysSinceRelease = -1
	if err := p.Validate(); err == nil {
		t.Error("expected negative days_since_release to be rejected")
	}
}

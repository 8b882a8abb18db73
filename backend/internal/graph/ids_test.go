package graph

import (
	"testing"
	"time"
)

func TestParticipantID_Format(t *testing.T) {
	cases := map[int]string{
		1:    "P001",
		42:   "P042",
		999:  "P999",
		1000: "P1000",
	}
	for seq, want := range cases {
		if got := ParticipantID(seq); got != want {
			t.Errorf("ParticipantID(%d) = %q, want %q", seq, got, want)
		}
	}
}

func TestIdentifierDeterminism(t *testing.T) {
	ts := time.Date(2025, 5, 20, 14, 3, 7, 0, time.UTC)

	if ParticipantID(7) != ParticipantID(7) {
		t.Error("ParticipantID is not deterministic")
	}
	if EncounterID(ts, "P001") != EncounterID(ts, "P001") {
		t.Error("EncounterID is not deterministic")
	}
	if EncounterID(ts, "P001") == EncounterID(ts, "P002") {
		t.Error("EncounterID collides across participants")
	}
	if !BarrierIRI("P001", "employment", "physical_capability", "baseline").
		Equal(BarrierIRI("P001", "employment", "physical_capability", "baseline")) {
		t.Error("BarrierIRI is not deterministic")
	}
	if BarrierIRI("P001", "employment", "physical_capability", "baseline").
		Equal(BarrierIRI("P001", "employment", "physical_capability", "day_30")) {
		t.Error("BarrierIRI collides across timepoints")
	}
}

func TestEncounterID_Shape(t *testing.T) {
	ts := time.Date(2025, 5, 20, 14, 3, 7, 0, time.UTC)
	got := EncounterID(ts, "P010")
	want := "ENC_20250520_140307-P010"
	if got != want {
		t.Errorf("EncounterID = %q, want %q", got, want)
	}
}

func TestSequentialParticipantIDsNeverCollide(t *testing.T) {
	seen := make(map[string]bool)
	for i := 1; i <= 2000; i++ {
		id := ParticipantID(i)
		if seen[id] {
			t.Fatalf("duplicate participant id %q at sequence %d", id, i)
		}
		seen[id] = true
	}
}

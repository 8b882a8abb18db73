package graph

import "time"

// The builder inputs below are fully populated, already validated records.
// Field validation is the intake boundary's job; builders only translate.

// AttributeTag is a demographic or clinical flag on a participant
type AttributeTag struct {
	Name     string `json:"tag_name"`     // e.g. "recently_released"
	Category string `json:"tag_category"` // e.g. "reentry"
	ClassID  string `json:"bcio_id"`      // controlled-vocabulary code, e.g. "BCIO:0000203"
}

// Participant is the intake record for an intervention recipient
type Participant struct {
	ID      string
	Age     int
	Created time.Time
	Tags    []AttributeTag
}

// Referral captures a referral made during an encounter
type Referral struct {
	WasMade     bool
	Category    string
	Destination string
	Accepted    bool
}

// BCTInstance is one delivered behaviour change technique within an
// encounter
type BCTInstance struct {
	Slot              int // 1-based position within the encounter
	TechniqueID       string
	ClassRef          string
	PractitionerLabel string
	FormalLabel       string
	Fidelity          string
	Notes             string
	AutoTagged        bool
}

// Encounter is the record of a single practitioner-participant session.
// Encounters are immutable once created; corrections are new encounters.
type Encounter struct {
	ID              string
	Timestamp       time.Time
	ParticipantID   string
	ProtocolID      string
	PractitionerID  string
	Mode            string
	DurationMinutes int
	Notes           string
	BCTs            []BCTInstance
	Referral        *Referral
}

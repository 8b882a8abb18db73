// Package intake defines the validated records accepted at the service
// boundary and the sqlite demographics side-table. Range and vocabulary
// checks live here; past this boundary the graph builders and the
// assessment engine trust their inputs.
package intake

import (
	"fmt"
	"time"

	"intervention-graph/backend/internal/assessment"
	"intervention-graph/backend/internal/catalog"
	"intervention-graph/backend/internal/ontology"
	pkgerrors "intervention-graph/backend/pkg/errors"
)

// ParticipantIntake carries the enrollment form fields
type ParticipantIntake struct {
	DOB                 string   `json:"dob"`
	Age                 int      `json:"age"`
	Gender              string   `json:"gender"`
	ReleaseDate         string   `json:"release_date"`
	DaysSinceRelease    int      `json:"days_since_release"`
	SupervisionStatus   string   `json:"supervision_status"`
	HousingStatus       string   `json:"housing_status"`
	HousingType         string   `json:"housing_type"`
	Substances          []string `json:"substances"`
	CurrentSubstanceUse string   `json:"current_substance_use"`
	MentalHealth        []string `json:"mental_health"`
	DisabilityStatus    string   `json:"disability_status"`
	DisabilityDuration  string   `json:"disability_duration"`
	MedicationUse       string   `json:"medication_use"`
	MedicationTypes     []string `json:"medication_types"`
	EducationLevel      string   `json:"education_level"`
	RelationshipStatus  string   `json:"relationship_status"`
	EmploymentStatus    string   `json:"employment_status"`
}

// Validate checks the enrollment form
func (p *ParticipantIntake) Validate() error {
	if p.Age <= 0 || p.Age > 120 {
		return pkgerrors.NewValidationError("age", fmt.Sprintf("must be between 1 and 120, got %d", p.Age))
	}
	if p.DaysSinceRelease < 0 {
		return pkgerrors.NewValidationError("days_since_release", "cannot be negative")
	}
	return nil
}

// BCTConfirmation is a practitioner's confirmation of one protocol
// technique during an encounter
type BCTConfirmation struct {
	Fidelity string `json:"fidelity"`
	Notes    string `json:"notes"`
}

// ReferralIntake carries the referral section of the encounter form
type ReferralIntake struct {
	WasMade     bool   `json:"was_made"`
	Category    string `json:"category"`
	Destination string `json:"destination"`
	Accepted    bool   `json:"accepted"`
}

// EncounterIntake carries one logged session
type EncounterIntake struct {
	ParticipantID   string                     `json:"participant_id"`
	ProtocolID      string                     `json:"protocol_id"`
	PractitionerID  string                     `json:"practitioner_id"`
	Mode            string                     `json:"mode"`
	DurationMinutes int                        `json:"duration_minutes"`
	Notes           string                     `json:"notes"`
	ConfirmedBCTs   map[string]BCTConfirmation `json:"confirmed_bcts"`
	Referral        *ReferralIntake            `json:"referral"`
	Timestamp       time.Time                  `json:"timestamp"`
}

// Validate checks the encounter form against the fixed vocabularies
func (e *EncounterIntake) Validate() error {
	if e.ParticipantID == "" {
		return pkgerrors.NewValidationError("participant_id", "is required")
	}
	if _, ok := catalog.ProtocolByID(e.ProtocolID); !ok {
		return pkgerrors.NewValidationError("protocol_id", fmt.Sprintf("unknown protocol %q", e.ProtocolID))
	}
	if e.PractitionerID == "" {
		return pkgerrors.NewValidationError("practitioner_id", "is required")
	}
	if !ontology.ValidMode(e.Mode) {
		return pkgerrors.NewValidationError("mode", fmt.Sprintf("unknown delivery mode %q", e.Mode))
	}
	if e.DurationMinutes <= 0 {
		return pkgerrors.NewValidationError("duration_minutes", "must be positive")
	}
	for techniqueID, c := range e.ConfirmedBCTs {
		if c.Fidelity != "" && !ontology.ValidFidelity(c.Fidelity) {
			return pkgerrors.NewValidationError("fidelity",
				fmt.Sprintf("unknown fidelity %q for %s", c.Fidelity, techniqueID))
		}
	}
	return nil
}

// BarrierIntake carries one assessment submission, baseline or follow-up
type BarrierIntake struct {
	ParticipantID string         `json:"participant_id"`
	Domain        string         `json:"domain"`
	Timepoint     string         `json:"timepoint"`
	Scores        map[string]int `json:"scores"`
	Date          time.Time      `json:"date"`
}

// Validate checks vocabulary membership and the 0-10 severity range.
// An empty score batch is allowed; it records the assessment event only.
func (b *BarrierIntake) Validate() error {
	if b.ParticipantID == "" {
		return pkgerrors.NewValidationError("participant_id", "is required")
	}
	if _, ok := assessment.DomainByID(b.Domain); !ok {
		return pkgerrors.NewValidationError("domain", fmt.Sprintf("unknown domain %q", b.Domain))
	}
	if _, ok := assessment.TimepointByID(b.Timepoint); !ok {
		return pkgerrors.NewValidationError("timepoint", fmt.Sprintf("unknown timepoint %q", b.Timepoint))
	}
	for barrierType, score := range b.Scores {
		if _, ok := assessment.BarrierTypeByID(barrierType); !ok {
			return pkgerrors.NewValidationError("barrier_type", fmt.Sprintf("unknown barrier type %q", barrierType))
		}
		if score < 0 || score > 10 {
			return pkgerrors.NewValidationError("severity_score",
				fmt.Sprintf("%s must be between 0 and 10, got %d", barrierType, score))
		}
	}
	return nil
}

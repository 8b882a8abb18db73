// Package tracker is the service facade the HTTP layer calls into. Each
// operation validates its intake record, then runs one load-mutate-save
// cycle against the graph repository.
package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"intervention-graph/backend/internal/assessment"
	"intervention-graph/backend/internal/catalog"
	"intervention-graph/backend/internal/export"
	"intervention-graph/backend/internal/graph"
	"intervention-graph/backend/internal/intake"
	"intervention-graph/backend/internal/ontology"
	"intervention-graph/backend/internal/rdf"
	"intervention-graph/backend/internal/store"
	"intervention-graph/backend/pkg/config"
	pkgerrors "intervention-graph/backend/pkg/errors"
	"intervention-graph/backend/pkg/logger"
)

// Service coordinates intake, graph building and persistence
type Service struct {
	repo *store.Repository
	db   *intake.DB
	cfg  *config.Config
	log  *zap.Logger
}

// NewService wires the tracker over its storage layers
func NewService(repo *store.Repository, db *intake.DB, cfg *config.Config) *Service {
	return &Service{
		repo: repo,
		db:   db,
		cfg:  cfg,
		log:  logger.Named("tracker"),
	}
}

// ParticipantView is the enrollment result returned to the caller
type ParticipantView struct {
	ParticipantID  string               `json:"participant_id"`
	ParticipantURI string               `json:"participant_uri"`
	CreatedDate    string               `json:"created_date"`
	Tags           []graph.AttributeTag `json:"tags"`
}

// CreateParticipant enrolls a participant: derives ontology tags from the
// demographics, assigns the next sequential id, writes the side-table row
// and emits the participant subgraph.
func (s *Service) CreateParticipant(in intake.ParticipantIntake) (ParticipantView, error) {
	if err := in.Validate(); err != nil {
		return ParticipantView{}, err
	}

	count, err := s.db.CountParticipants()
	if err != nil {
		return ParticipantView{}, err
	}
	participantID := graph.ParticipantID(count + 1)
	participantURI := graph.ParticipantIRI(participantID).Value
	created := time.Now().UTC()
	tags := intake.DeriveTags(in)

	err = s.repo.Update(func(g *rdf.Store) error {
		graph.AddParticipant(g, graph.Participant{
			ID:      participantID,
			Age:     in.Age,
			Created: created,
			Tags:    tags,
		})
		return nil
	})
	if err != nil {
		return ParticipantView{}, err
	}

	if err := s.db.InsertParticipant(participantID, participantURI, created, in, tags); err != nil {
		return ParticipantView{}, err
	}

	s.log.Info("participant enrolled",
		zap.String("participant_id", participantID),
		zap.Int("tags", len(tags)))

	return ParticipantView{
		ParticipantID:  participantID,
		ParticipantURI: participantURI,
		CreatedDate:    created.Format(time.RFC3339),
		Tags:           tags,
	}, nil
}

// ListParticipants returns the enrollment roster
func (s *Service) ListParticipants() ([]intake.ParticipantRow, error) {
	return s.db.ListParticipants()
}

// EncounterView is the read model for a logged session
type EncounterView struct {
	EncounterID     string `json:"encounter_id"`
	Timestamp       string `json:"timestamp"`
	ParticipantID   string `json:"participant_id"`
	ProtocolID      string `json:"protocol_id"`
	PractitionerID  string `json:"practitioner_id"`
	Mode            string `json:"mode"`
	DurationMinutes int    `json:"duration_minutes"`
	Notes           string `json:"notes,omitempty"`
	BCTCount        int    `json:"bct_count"`
	ReferralMade    bool   `json:"referral_made"`
}

// RecordEncounter logs a session: resolves the protocol's confirmed
// techniques, injects the referral technique when applicable, and emits
// the encounter subgraph under a collision-safe identifier.
func (s *Service) RecordEncounter(in intake.EncounterIntake) (EncounterView, error) {
	if err := in.Validate(); err != nil {
		return EncounterView{}, err
	}

	ts := in.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	var referral *graph.Referral
	if in.Referral != nil {
		referral = &graph.Referral{
			WasMade:     in.Referral.WasMade,
			Category:    in.Referral.Category,
			Destination: in.Referral.Destination,
			Accepted:    in.Referral.Accepted,
		}
	}
	confirmed := make(map[string]graph.Confirmation, len(in.ConfirmedBCTs))
	for id, c := range in.ConfirmedBCTs {
		confirmed[id] = graph.Confirmation{Fidelity: c.Fidelity, Notes: c.Notes}
	}

	var view EncounterView
	err := s.repo.Update(func(g *rdf.Store) error {
		if !participantExists(g, in.ParticipantID) {
			return pkgerrors.NewNotFoundError("participant", in.ParticipantID)
		}

		protocol, _ := catalog.ProtocolByID(in.ProtocolID)
		encounterID := graph.EncounterID(ts, in.ParticipantID)
		if g.Count(rdf.Bound(graph.EncounterIRI(encounterID)), nil, nil) > 0 {
			// Same participant, same second: disambiguate with a random fragment
			encounterID = fmt.Sprintf("%s-%.8s", encounterID, uuid.NewString())
		}

		enc := graph.Encounter{
			ID:              encounterID,
			Timestamp:       ts,
			ParticipantID:   in.ParticipantID,
			ProtocolID:      in.ProtocolID,
			PractitionerID:  in.PractitionerID,
			Mode:            in.Mode,
			DurationMinutes: in.DurationMinutes,
			Notes:           in.Notes,
			BCTs:            graph.BuildBCTInstances(protocol, confirmed, referral),
			Referral:        referral,
		}
		graph.AddEncounter(g, enc)

		view = EncounterView{
			EncounterID:     encounterID,
			Timestamp:       ts.Format(time.RFC3339),
			ParticipantID:   in.ParticipantID,
			ProtocolID:      in.ProtocolID,
			PractitionerID:  in.PractitionerID,
			Mode:            in.Mode,
			DurationMinutes: in.DurationMinutes,
			Notes:           in.Notes,
			BCTCount:        len(enc.BCTs),
			ReferralMade:    referral != nil && referral.WasMade,
		}
		return nil
	})
	if err != nil {
		return EncounterView{}, err
	}

	s.log.Info("encounter recorded",
		zap.String("encounter_id", view.EncounterID),
		zap.String("participant_id", view.ParticipantID),
		zap.Int("bct_count", view.BCTCount))
	return view, nil
}

// ListEncounters returns every logged encounter, newest first
func (s *Service) ListEncounters() ([]EncounterView, error) {
	var views []EncounterView
	err := s.repo.View(func(g *rdf.Store) error {
		views = readEncounters(g, "")
		return nil
	})
	return views, err
}

// ParticipantEncounters returns one participant's encounters, newest first
func (s *Service) ParticipantEncounters(participantID string) ([]EncounterView, error) {
	var views []EncounterView
	err := s.repo.View(func(g *rdf.Store) error {
		if !participantExists(g, participantID) {
			return pkgerrors.NewNotFoundError("participant", participantID)
		}
		views = readEncounters(g, participantID)
		return nil
	})
	return views, err
}

// AssessmentView is the result of one assessment submission
type AssessmentView struct {
	AssessmentURI string                     `json:"assessment_uri"`
	ParticipantID string                     `json:"participant_id"`
	Domain        string                     `json:"domain"`
	Timepoint     string                     `json:"timepoint"`
	Barriers      []assessment.BarrierRecord `json:"barriers"`
}

// RecordAssessment dispatches a submission to the baseline or follow-up
// path by its timepoint
func (s *Service) RecordAssessment(in intake.BarrierIntake) (AssessmentView, error) {
	if err := in.Validate(); err != nil {
		return AssessmentView{}, err
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	var view AssessmentView
	err := s.repo.Update(func(g *rdf.Store) error {
		if !participantExists(g, in.ParticipantID) {
			return pkgerrors.NewNotFoundError("participant", in.ParticipantID)
		}

		engine := assessment.NewEngine(g)
		var (
			event rdf.Term
			err   error
		)
		if in.Timepoint == assessment.TimepointBaseline {
			event, err = engine.RecordBaseline(in.ParticipantID, in.Domain, in.Scores, date)
		} else {
			event, err = engine.RecordFollowUp(in.ParticipantID, in.Domain, in.Timepoint, in.Scores, date)
		}
		if err != nil {
			return err
		}

		view = AssessmentView{
			AssessmentURI: event.Value,
			ParticipantID: in.ParticipantID,
			Domain:        in.Domain,
			Timepoint:     in.Timepoint,
			Barriers:      engine.ParticipantBarriers(in.ParticipantID, in.Domain, in.Timepoint),
		}
		return nil
	})
	if err != nil {
		return AssessmentView{}, err
	}

	s.log.Info("assessment recorded",
		zap.String("participant_id", in.ParticipantID),
		zap.String("domain", in.Domain),
		zap.String("timepoint", in.Timepoint),
		zap.Int("barriers", len(in.Scores)))
	return view, nil
}

// ProgressView is a participant's longitudinal barrier picture
type ProgressView struct {
	ParticipantID string                      `json:"participant_id"`
	Stats         assessment.ParticipantStats `json:"stats"`
	Barriers      []assessment.BarrierRecord  `json:"barriers"`
}

// ParticipantProgress returns a participant's barrier instances with
// change scores plus summary counts
func (s *Service) ParticipantProgress(participantID string) (ProgressView, error) {
	var view ProgressView
	err := s.repo.View(func(g *rdf.Store) error {
		if !participantExists(g, participantID) {
			return pkgerrors.NewNotFoundError("participant", participantID)
		}
		engine := assessment.NewEngine(g)
		view = ProgressView{
			ParticipantID: participantID,
			Stats:         engine.Participant(participantID),
			Barriers:      engine.ParticipantBarriers(participantID, "", ""),
		}
		return nil
	})
	return view, err
}

// ParticipantBarriers returns one participant's barrier instances,
// optionally filtered by domain and timepoint
func (s *Service) ParticipantBarriers(participantID, domain, timepoint string) ([]assessment.BarrierRecord, error) {
	var records []assessment.BarrierRecord
	err := s.repo.View(func(g *rdf.Store) error {
		if !participantExists(g, participantID) {
			return pkgerrors.NewNotFoundError("participant", participantID)
		}
		records = assessment.NewEngine(g).ParticipantBarriers(participantID, domain, timepoint)
		return nil
	})
	return records, err
}

// Analytics returns the cohort outcome summary against the configured
// targeted domain
func (s *Service) Analytics() (assessment.CohortAnalytics, error) {
	var result assessment.CohortAnalytics
	err := s.repo.View(func(g *rdf.Store) error {
		result = assessment.NewEngine(g).Cohort(s.cfg.TargetedDomain)
		return nil
	})
	return result, err
}

// ExportGraph mirrors the current graph into the configured Neo4j
// instance
func (s *Service) ExportGraph(ctx context.Context) (int, error) {
	if !s.cfg.Neo4jExportEnabled {
		return 0, pkgerrors.NewValidationError("export", "neo4j export is disabled")
	}

	mirror, err := export.NewMirror(s.cfg.Neo4jURI, s.cfg.Neo4jUser, s.cfg.Neo4jPassword)
	if err != nil {
		return 0, err
	}
	defer mirror.Close(ctx)

	var triples int
	err = s.repo.View(func(g *rdf.Store) error {
		triples = g.Len()
		return mirror.Upload(ctx, g)
	})
	if err != nil {
		return 0, err
	}
	return triples, nil
}

func participantExists(g *rdf.Store, participantID string) bool {
	return g.Has(graph.ParticipantIRI(participantID), ontology.RDFType, ontology.ClassInterventionRecipient)
}

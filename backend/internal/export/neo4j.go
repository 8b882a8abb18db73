// Package export mirrors the durable graph into an external Neo4j
// instance for visualization and ad-hoc Cypher queries. The mirror is
// write-only and derived; the line-oriented artifact stays the system
// of record.
package export

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"intervention-graph/backend/internal/rdf"
	pkgerrors "intervention-graph/backend/pkg/errors"
	"intervention-graph/backend/pkg/logger"
)

const batchSize = 500

// Mirror uploads triples to a Neo4j instance
type Mirror struct {
	driver neo4j.DriverWithContext
	uri    string
	log    *zap.Logger
}

// NewMirror connects to Neo4j with basic auth
func NewMirror(uri, user, password string) (*Mirror, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, pkgerrors.NewExportError(uri, err)
	}
	return &Mirror{
		driver: driver,
		uri:    uri,
		log:    logger.Named("export"),
	}, nil
}

// Close closes the Neo4j driver connection
func (m *Mirror) Close(ctx context.Context) error {
	return m.driver.Close(ctx)
}

// Upload mirrors every triple. IRI objects become REL edges between
// Resource nodes; literal objects become Literal nodes hanging off the
// subject. Batches upload concurrently and the whole call fails if any
// batch fails.
func (m *Mirror) Upload(ctx context.Context, s *rdf.Store) error {
	var edges, props []map[string]any
	for _, t := range s.Triples() {
		if t.Object.IsIRI() {
			edges = append(edges, map[string]any{
				"subject":   t.Subject.Value,
				"predicate": t.Predicate.Value,
				"object":    t.Object.Value,
			})
		} else {
			props = append(props, map[string]any{
				"subject":   t.Subject.Value,
				"predicate": t.Predicate.Value,
				"value":     t.Object.Value,
			})
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, batch := range chunk(edges) {
		g.Go(func() error {
			return m.run(ctx, `
				UNWIND $rows AS row
				MERGE (s:Resource {iri: row.subject})
				MERGE (o:Resource {iri: row.object})
				MERGE (s)-[:REL {predicate: row.predicate}]->(o)
			`, batch)
		})
	}
	for _, batch := range chunk(props) {
		g.Go(func() error {
			return m.run(ctx, `
				UNWIND $rows AS row
				MERGE (s:Resource {iri: row.subject})
				MERGE (s)-[:VALUE {predicate: row.predicate}]->(:Literal {value: row.value})
			`, batch)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	m.log.Info("graph mirrored",
		zap.String("uri", m.uri),
		zap.Int("edges", len(edges)),
		zap.Int("properties", len(props)))
	return nil
}

func (m *Mirror) run(ctx context.Context, query string, rows []map[string]any) error {
	session := m.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	if _, err := session.Run(ctx, query, map[string]any{"rows": rows}); err != nil {
		return pkgerrors.NewExportError(m.uri, err)
	}
	return nil
}

func chunk(rows []map[string]any) [][]map[string]any {
	var batches [][]map[string]any
	for len(rows) > batchSize {
		batches = append(batches, rows[:batchSize])
		rows = rows[batchSize:]
	}
	if len(rows) > 0 {
		batches = append(batches, rows)
	}
	return batches
}

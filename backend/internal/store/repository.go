// Package store persists the intervention graph as a line-oriented
// triple file on disk. Every mutation runs as load, mutate, save under
// one lock, so the file on disk is always a complete serialization.
package store

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"intervention-graph/backend/internal/rdf"
	pkgerrors "intervention-graph/backend/pkg/errors"
	"intervention-graph/backend/pkg/logger"
)

// Repository serializes access to the graph file
type Repository struct {
	path string
	mu   sync.Mutex
	log  *zap.Logger
}

// NewRepository returns a repository over the given file path. The file
// does not need to exist yet; a missing file reads as an empty graph.
func NewRepository(path string) *Repository {
	return &Repository{
		path: path,
		log:  logger.Named("store"),
	}
}

// Path returns the backing file path
func (r *Repository) Path() string {
	return r.path
}

// View loads the graph and runs fn against it. Mutations made by fn are
// discarded; use Update to persist.
func (r *Repository) View(fn func(s *rdf.Store) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.load()
	if err != nil {
		return err
	}
	return fn(s)
}

// Update loads the graph, runs fn against it and writes the result back
// atomically. If fn returns an error nothing is written.
func (r *Repository) Update(fn func(s *rdf.Store) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.load()
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	return r.save(s)
}

func (r *Repository) load() (*rdf.Store, error) {
	f, err := os.Open(r.path)
	if os.IsNotExist(err) {
		return rdf.NewStore(), nil
	}
	if err != nil {
		return nil, pkgerrors.NewStoreError(r.path, "open graph file", err)
	}
	defer f.Close()

	s, err := rdf.Parse(f)
	if err != nil {
		// Parse failures leave the file on disk untouched
		r.log.Error("graph file failed to parse", zap.String("path", r.path), zap.Error(err))
		return nil, err
	}
	return s, nil
}

// save writes to a temp file in the same directory and renames it over
// the target, so a crash mid-write never truncates the graph
func (r *Repository) save(s *rdf.Store) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return pkgerrors.NewStoreError(r.path, "create data directory", err)
	}

	tmp, err := os.CreateTemp(dir, ".graph-*.nt")
	if err != nil {
		return pkgerrors.NewStoreError(r.path, "create temp file", err)
	}
	defer os.Remove(tmp.Name())

	if err := s.Serialize(tmp); err != nil {
		tmp.Close()
		return pkgerrors.NewStoreError(r.path, "serialize graph", err)
	}
	if err := tmp.Close(); err != nil {
		return pkgerrors.NewStoreError(r.path, "flush temp file", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return pkgerrors.NewStoreError(r.path, "replace graph file", err)
	}

	r.log.Debug("graph saved", zap.String("path", r.path), zap.Int("triples", s.Len()))
	return nil
}

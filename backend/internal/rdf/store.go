package rdf

import (
	"iter"

	pkgerrors "intervention-graph/backend/pkg/errors"
)

// Store is an in-memory triple collection. Adds are idempotent and
// insertion order is preserved, so serialization and unsorted match
// results are stable across a load/mutate/save cycle.
//
// A Store is owned by a single operation and is not safe for concurrent
// mutation; the repository layer serializes access to the durable artifact.
type Store struct {
	triples []Triple
	seen    map[tripleKey]struct{}
}

type tripleKey struct {
	s, p, o Term
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{seen: make(map[tripleKey]struct{})}
}

// Add inserts a statement. Adding an existing triple is a no-op;
// the return value reports whether the triple was new.
func (s *Store) Add(subject, predicate, object Term) bool {
	return s.AddTriple(Triple{Subject: subject, Predicate: predicate, Object: object})
}

// AddTriple inserts a statement, skipping duplicates
func (s *Store) AddTriple(t Triple) bool {
	key := tripleKey{t.Subject, t.Predicate, t.Object}
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	s.triples = append(s.triples, t)
	return true
}

// Len returns the number of distinct triples
func (s *Store) Len() int {
	return len(s.triples)
}

// Triples returns a copy of all triples in insertion order
func (s *Store) Triples() []Triple {
	out := make([]Triple, len(s.triples))
	copy(out, s.triples)
	return out
}

// Has reports whether the exact statement is present
func (s *Store) Has(subject, predicate, object Term) bool {
	_, ok := s.seen[tripleKey{subject, predicate, object}]
	return ok
}

// Bound wraps a term for use as a fixed position in a match pattern.
// A nil position acts as a wildcard.
func Bound(t Term) *Term {
	return &t
}

// Match returns a lazy, restartable sequence of triples satisfying the
// pattern, in insertion order. Match never mutates the store.
func (s *Store) Match(subject, predicate, object *Term) iter.Seq[Triple] {
	return func(yield func(Triple) bool) {
		for _, t := range s.triples {
			if subject != nil && !t.Subject.Equal(*subject) {
				continue
			}
			if predicate != nil && !t.Predicate.Equal(*predicate) {
				continue
			}
			if object != nil && !t.Object.Equal(*object) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// MatchFirst returns the first triple satisfying the pattern
func (s *Store) MatchFirst(subject, predicate, object *Term) (Triple, bool) {
	for t := range s.Match(subject, predicate, object) {
		return t, true
	}
	return Triple{}, false
}

// Count returns the number of triples satisfying the pattern
func (s *Store) Count(subject, predicate, object *Term) int {
	n := 0
	for range s.Match(subject, predicate, object) {
		n++
	}
	return n
}

// Subjects returns the distinct subjects of triples satisfying the
// pattern, in first-appearance order
func (s *Store) Subjects(predicate, object *Term) []Term {
	var out []Term
	seen := make(map[Term]struct{})
	for t := range s.Match(nil, predicate, object) {
		if _, ok := seen[t.Subject]; ok {
			continue
		}
		seen[t.Subject] = struct{}{}
		out = append(out, t.Subject)
	}
	return out
}

// IntObjects collects the integer object values of triples satisfying the
// pattern. A matched non-integer object is a QueryError.
func (s *Store) IntObjects(subject, predicate *Term) ([]int, error) {
	var out []int
	for t := range s.Match(subject, predicate, nil) {
		n, ok := t.Object.Int()
		if !ok {
			return nil, pkgerrors.NewQueryError(t.Predicate.Value, "object is not an integer literal")
		}
		out = append(out, n)
	}
	return out, nil
}

// SumInt sums the integer object values of triples satisfying the pattern
func (s *Store) SumInt(subject, predicate *Term) (int, error) {
	values, err := s.IntObjects(subject, predicate)
	if err != nil {
		return 0, err
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return sum, nil
}

// AvgInt averages the integer object values of triples satisfying the
// pattern; the second return is false when nothing matched
func (s *Store) AvgInt(subject, predicate *Term) (float64, bool, error) {
	values, err := s.IntObjects(subject, predicate)
	if err != nil {
		return 0, false, err
	}
	if len(values) == 0 {
		return 0, false, nil
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values)), true, nil
}

// Package rdf implements the constrained triple representation the rest of
// the system is built on: IRI-identified nodes, typed literals, an
// idempotent in-memory store with pattern matching, and a line-oriented
// textual codec for the durable artifact.
package rdf

import (
	"fmt"
	"strconv"
	"time"
)

// XSD datatype IRIs for the literal kinds the store supports
const (
	XSDString   = "http://www.w3.org/2001/XMLSchema#string"
	XSDInteger  = "http://www.w3.org/2001/XMLSchema#integer"
	XSDBoolean  = "http://www.w3.org/2001/XMLSchema#boolean"
	XSDDateTime = "http://www.w3.org/2001/XMLSchema#dateTime"
)

// TermKind distinguishes IRIs from literals
type TermKind int

const (
	// KindIRI identifies a graph node
	KindIRI TermKind = iota
	// KindLiteral is a typed or language-tagged value
	KindLiteral
)

// Term is one position of a triple: an IRI or a literal.
// Literals carry either a datatype IRI or a language tag, never both.
type Term struct {
	Kind     TermKind
	Value    string // IRI string, or the literal's lexical form
	Datatype string
	Lang     string
}

// IRI returns an IRI term
func IRI(value string) Term {
	return Term{Kind: KindIRI, Value: value}
}

// String returns a typed string literal
func String(value string) Term {
	return Term{Kind: KindLiteral, Value: value, Datatype: XSDString}
}

// LangString returns a language-tagged string literal
func LangString(value, lang string) Term {
	return Term{Kind: KindLiteral, Value: value, Lang: lang}
}

// Integer returns an integer literal
func Integer(value int) Term {
	return Term{Kind: KindLiteral, Value: strconv.Itoa(value), Datatype: XSDInteger}
}

// Boolean returns a boolean literal
func Boolean(value bool) Term {
	return Term{Kind: KindLiteral, Value: strconv.FormatBool(value), Datatype: XSDBoolean}
}

// DateTime returns a dateTime literal in RFC 3339 form
func DateTime(value time.Time) Term {
	return Term{Kind: KindLiteral, Value: value.Format(time.RFC3339), Datatype: XSDDateTime}
}

// IsIRI reports whether the term is an IRI
func (t Term) IsIRI() bool {
	return t.Kind == KindIRI
}

// Int returns the integer value of an integer literal
func (t Term) Int() (int, bool) {
	if t.Kind != KindLiteral || t.Datatype != XSDInteger {
		return 0, false
	}
	n, err := strconv.Atoi(t.Value)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Bool returns the value of a boolean literal
func (t Term) Bool() (bool, bool) {
	if t.Kind != KindLiteral || t.Datatype != XSDBoolean {
		return false, false
	}
	b, err := strconv.ParseBool(t.Value)
	if err != nil {
		return false, false
	}
	return b, true
}

// Time returns the value of a dateTime literal
func (t Term) Time() (time.Time, bool) {
	if t.Kind != KindLiteral || t.Datatype != XSDDateTime {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, t.Value)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// Equal reports whether two terms are identical
func (t Term) Equal(o Term) bool {
	return t.Kind == o.Kind && t.Value == o.Value && t.Datatype == o.Datatype && t.Lang == o.Lang
}

// String renders the term in the codec's wire form
func (t Term) String() string {
	switch {
	case t.Kind == KindIRI:
		return "<" + t.Value + ">"
	case t.Lang != "":
		return fmt.Sprintf("%q@%s", t.Value, t.Lang)
	default:
		return fmt.Sprintf("%q^^<%s>", t.Value, t.Datatype)
	}
}

// Triple is a single subject-predicate-object statement
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// String renders the triple as one codec line
func (tr Triple) String() string {
	return tr.Subject.String() + " " + tr.Predicate.String() + " " + tr.Object.String() + " ."
}

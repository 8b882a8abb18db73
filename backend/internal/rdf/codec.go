package rdf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	pkgerrors "intervention-graph/backend/pkg/errors"
)

// The durable artifact is one statement per line in an N-Triples style
// encoding:
//
//	<subject-iri> <predicate-iri> <object> .
//
// where object is an IRI, "string"@lang, or "lexical"^^<datatype-iri>.
// Blank lines and lines starting with # are ignored. The format is
// append-friendly and diffs cleanly since triples serialize in insertion
// order.

// Serialize writes every triple to w, one per line
func (s *Store) Serialize(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, t := range s.triples {
		if err := writeTriple(bw, t); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeTriple(w *bufio.Writer, t Triple) error {
	for _, term := range []Term{t.Subject, t.Predicate} {
		if !term.IsIRI() {
			return pkgerrors.NewQueryError(term.Value, "subject and predicate must be IRIs")
		}
	}
	_, err := fmt.Fprintf(w, "%s %s %s .\n", writeTerm(t.Subject), writeTerm(t.Predicate), writeTerm(t.Object))
	return err
}

func writeTerm(t Term) string {
	switch {
	case t.Kind == KindIRI:
		return "<" + t.Value + ">"
	case t.Lang != "":
		return strconv.Quote(t.Value) + "@" + t.Lang
	default:
		return strconv.Quote(t.Value) + "^^<" + t.Datatype + ">"
	}
}

// Parse reads a serialized store. The load is atomic: any malformed line
// yields a ParseError and no store, so a previously loaded store is never
// left half-replaced.
func Parse(r io.Reader) (*Store, error) {
	store := NewStore()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		triple, err := parseLine(line, lineNo)
		if err != nil {
			return nil, err
		}
		store.AddTriple(triple)
	}
	if err := scanner.Err(); err != nil {
		return nil, pkgerrors.NewParseError(lineNo, "read failed", err)
	}
	return store, nil
}

func parseLine(line string, lineNo int) (Triple, error) {
	p := &lineParser{input: line, line: lineNo}

	subject, err := p.readIRI()
	if err != nil {
		return Triple{}, err
	}
	predicate, err := p.readIRI()
	if err != nil {
		return Triple{}, err
	}
	object, err := p.readTerm()
	if err != nil {
		return Triple{}, err
	}
	if err := p.readTerminator(); err != nil {
		return Triple{}, err
	}
	return Triple{Subject: subject, Predicate: predicate, Object: object}, nil
}

type lineParser struct {
	input string
	pos   int
	line  int
}

func (p *lineParser) errorf(format string, args ...any) error {
	return pkgerrors.NewParseError(p.line, fmt.Sprintf(format, args...), nil)
}

func (p *lineParser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *lineParser) readIRI() (Term, error) {
	p.skipSpace()
	if p.pos >= len(p.input) || p.input[p.pos] != '<' {
		return Term{}, p.errorf("expected IRI at column %d", p.pos+1)
	}
	end := strings.IndexByte(p.input[p.pos:], '>')
	if end < 0 {
		return Term{}, p.errorf("unterminated IRI")
	}
	iri := p.input[p.pos+1 : p.pos+end]
	p.pos += end + 1
	return IRI(iri), nil
}

func (p *lineParser) readTerm() (Term, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return Term{}, p.errorf("missing object")
	}
	if p.input[p.pos] == '<' {
		return p.readIRI()
	}
	if p.input[p.pos] != '"' {
		return Term{}, p.errorf("expected IRI or literal at column %d", p.pos+1)
	}

	quoted, rest, err := splitQuoted(p.input[p.pos:])
	if err != nil {
		return Term{}, p.errorf("bad literal: %v", err)
	}
	value, err := strconv.Unquote(quoted)
	if err != nil {
		return Term{}, p.errorf("bad literal escape: %v", err)
	}
	p.pos = len(p.input) - len(rest)

	// Language tag or datatype suffix
	if strings.HasPrefix(rest, "@") {
		end := 1
		for end < len(rest) && rest[end] != ' ' && rest[end] != '\t' {
			end++
		}
		p.pos += end
		return LangString(value, rest[1:end]), nil
	}
	if strings.HasPrefix(rest, "^^<") {
		end := strings.IndexByte(rest, '>')
		if end < 0 {
			return Term{}, p.errorf("unterminated datatype IRI")
		}
		p.pos += end + 1
		return Term{Kind: KindLiteral, Value: value, Datatype: rest[3:end]}, nil
	}
	return String(value), nil
}

// splitQuoted returns the quoted prefix of s (including quotes, honoring
// backslash escapes) and the remainder after it
func splitQuoted(s string) (string, string, error) {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return s[:i+1], s[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("unterminated string")
}

func (p *lineParser) readTerminator() error {
	p.skipSpace()
	if p.pos >= len(p.input) || p.input[p.pos] != '.' {
		return p.errorf("expected '.' terminator")
	}
	p.pos++
	p.skipSpace()
	if p.pos != len(p.input) {
		return p.errorf("trailing content after terminator")
	}
	return nil
}

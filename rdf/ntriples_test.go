package rdf

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestNTriplesDecodeTerms(t *testing.T) {
	input := `# leading comment
<http://example.org/s> <http://example.org/p> "v"@en-GB .

_:b1 <http://example.org/p> "5"^^<http://www.w3.org/2001/XMLSchema#integer> .
_:b1 <http://example.org/q> <http://example.org/o> . # trailing comment
`
	dec, err := NewReader(strings.NewReader(input), FormatNTriples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer dec.Close()

	var got []Triple
	for {
		triple, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, triple)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 triples, got %d", len(got))
	}
	if lit, ok := got[0].O.(Literal); !ok || lit.Lang != "en-GB" || lit.Lexical != "v" {
		t.Fatalf("unexpected language literal: %#v", got[0].O)
	}
	if lit, ok := got[1].O.(Literal); !ok || lit.Datatype != XSDInteger {
		t.Fatalf("unexpected typed literal: %#v", got[1].O)
	}
	if bn, ok := got[2].S.(BlankNode); !ok || bn.ID != "b1" {
		t.Fatalf("unexpected subject: %#v", got[2].S)
	}
}

func TestNTriplesDecodeErrors(t *testing.T) {
	cases := []string{
		`<http://example.org/s> <http://example.org/p> "v"`,
		`"s" <http://example.org/p> "v" .`,
		`<http://example.org/s> <http://example.org/p> "unterminated .`,
		`<http://example.org/s> <http://example.org/p> "v"@1x .`,
		`<http://example.org/s> <http://example.org/p> <http://example.org/o> . extra`,
		`<http://example.org/s> <http://example.org/p> "\q" .`,
		`_: <http://example.org/p> "v" .`,
	}
	for _, input := range cases {
		err := ParseTriples(context.Background(), strings.NewReader(input), FormatNTriples, TripleHandlerFunc(func(Triple) error { return nil }))
		if err == nil {
			t.Errorf("expected error for %q", input)
			continue
		}
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("expected ParseError for %q, got %T", input, err)
			continue
		}
		if perr.Line != 1 {
			t.Errorf("expected line 1 for %q, got %d", input, perr.Line)
		}
	}
}

func TestNTriplesRoundTripEscapes(t *testing.T) {
	original := Triple{
		S: IRI{Value: "http://example.org/a b"},
		P: IRI{Value: "http://example.org/p"},
		O: NewLiteral("line1\nline2\t\"quoted\" \\ é\u0001", ""),
	}

	var buf bytes.Buffer
	enc, err := NewWriter(&buf, FormatNTriples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := enc.Write(original); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	decoded, err := ParseNTriplesLine(buf.String())
	if err != nil {
		t.Fatalf("decode failed: %v\n%s", err, buf.String())
	}
	if decoded.S != original.S {
		t.Fatalf("subject mismatch: %#v", decoded.S)
	}
	if decoded.O != original.O {
		t.Fatalf("object mismatch: %#v", decoded.O)
	}
}

func TestNTriplesEncoderRejectsInvalid(t *testing.T) {
	enc, err := NewWriter(io.Discard, FormatNTriples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := enc.Write(Triple{}); err == nil {
		t.Fatal("expected error for empty triple")
	}
	literalSubject := Triple{S: NewLiteral("x", ""), P: IRI{Value: "http://example.org/p"}, O: NewLiteral("y", "")}
	if err := enc.Write(literalSubject); err == nil {
		t.Fatal("expected error for literal subject")
	}
}

func TestNTriplesLineLimit(t *testing.T) {
	input := "<http://example.org/s> <http://example.org/p> \"" + strings.Repeat("x", 64) + "\" .\n" +
		"<http://example.org/s> <http://example.org/p> \"ok\" .\n"

	dec, err := NewReader(strings.NewReader(input), FormatNTriples, OptMaxLineBytes(60))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = dec.Next()
	if !errors.Is(err, ErrLineTooLong) {
		t.Fatalf("expected ErrLineTooLong, got %v", err)
	}
	triple, err := dec.Next()
	if err != nil {
		t.Fatalf("expected next line to decode, got %v", err)
	}
	if lit, ok := triple.O.(Literal); !ok || lit.Lexical != "ok" {
		t.Fatalf("unexpected object: %#v", triple.O)
	}

	unlimited, err := NewReader(strings.NewReader(input), FormatNTriples, OptMaxLineBytes(-1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := unlimited.Next(); err != nil {
		t.Fatalf("unexpected error without limit: %v", err)
	}
}

func TestReaderUnsupportedFormat(t *testing.T) {
	if _, err := NewReader(strings.NewReader(""), FormatJSONLD); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := NewWriter(io.Discard, Format("turtle")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestParseTriplesHandlerError(t *testing.T) {
	input := "<http://example.org/s> <http://example.org/p> <http://example.org/o> .\n"
	stop := errors.New("stop")
	err := ParseTriples(context.Background(), strings.NewReader(input), FormatNTriples, TripleHandlerFunc(func(Triple) error { return stop }))
	if !errors.Is(err, stop) {
		t.Fatalf("expected handler error, got %v", err)
	}
}

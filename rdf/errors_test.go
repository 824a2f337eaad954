package rdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestErrorCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ""},
		{"eof", io.EOF, ""},
		{"unsupported", ErrUnsupportedFormat, ErrCodeUnsupportedFormat},
		{"line too long", ErrLineTooLong, ErrCodeLineTooLong},
		{"depth", fmt.Errorf("item nesting deeper than 4: %w", ErrDepthExceeded), ErrCodeDepthExceeded},
		{"triples", ErrTripleLimitExceeded, ErrCodeTripleLimitExceeded},
		{"canceled", context.Canceled, ErrCodeContextCanceled},
		{"deadline", context.DeadlineExceeded, ErrCodeContextCanceled},
		{"wrapped parse error", wrapParseError("ntriples", "", 3, ErrLineTooLong), ErrCodeLineTooLong},
		{"other", errors.New("boom"), ErrCodeParseError},
	}
	for _, c := range cases {
		if got := Code(c.err); got != c.want {
			t.Errorf("%s: got %q want %q", c.name, got, c.want)
		}
	}
}

func TestErrorCodeFromParseTriples(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	input := "<http://example.org/s> <http://example.org/p> <http://example.org/o> .\n"
	err := ParseTriples(ctx, strings.NewReader(input), FormatNTriples, TripleHandlerFunc(func(Triple) error { return nil }))
	if Code(err) != ErrCodeContextCanceled {
		t.Fatalf("expected %s, got %v", ErrCodeContextCanceled, err)
	}

	err = ParseTriples(context.Background(), strings.NewReader(input), Format("turtle"), TripleHandlerFunc(func(Triple) error { return nil }))
	if Code(err) != ErrCodeUnsupportedFormat {
		t.Fatalf("expected %s, got %v", ErrCodeUnsupportedFormat, err)
	}
}

func TestParseErrorMessage(t *testing.T) {
	cause := errors.New("expected IRI")
	cases := []struct {
		err  *ParseError
		want string
	}{
		{&ParseError{Format: "ntriples", Line: 2, Column: 5, Offset: -1, Err: cause}, "ntriples:2:5: expected IRI"},
		{&ParseError{Format: "ntriples", Line: 2, Offset: -1, Err: cause}, "ntriples:2: expected IRI"},
		{&ParseError{Format: "microdata", Offset: 10, Err: cause}, "microdata (offset 10): expected IRI"},
		{&ParseError{Format: "microdata", Offset: -1, Err: cause}, "microdata: expected IRI"},
	}
	for _, c := range cases {
		if got := c.err.Error(); got != c.want {
			t.Errorf("got %q want %q", got, c.want)
		}
		if !errors.Is(c.err, cause) {
			t.Errorf("expected %q to unwrap to cause", c.want)
		}
	}
}

func TestParseErrorExcerpt(t *testing.T) {
	long := strings.Repeat("a", 100)
	err := wrapParseError("ntriples", long, 1, errors.New("bad"))
	msg := err.Error()
	if !strings.Contains(msg, "\n  "+strings.Repeat("a", 80)+"...") {
		t.Fatalf("expected truncated excerpt, got %q", msg)
	}
	if wrapParseError("ntriples", "", 1, nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}

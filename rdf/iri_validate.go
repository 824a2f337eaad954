package rdf

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateIRI performs basic IRI syntax checks.
//
// Relative references are accepted. An IRI is rejected when it is empty, when
// net/url cannot parse it, when its scheme does not start with a letter, when a
// colon-prefixed segment looks like a malformed scheme, or when it contains
// control characters or raw angle brackets.
func ValidateIRI(iri string) error {
	if iri == "" {
		return fmt.Errorf("empty IRI")
	}

	parsed, err := url.Parse(iri)
	if err != nil {
		return fmt.Errorf("invalid IRI syntax: %w", err)
	}

	if parsed.Scheme != "" {
		first := parsed.Scheme[0]
		if !isASCIILetter(first) {
			return fmt.Errorf("scheme must start with a letter: %s", iri)
		}
	} else {
		if strings.HasPrefix(iri, "//") {
			return fmt.Errorf("relative IRI without scheme: %s", iri)
		}
		if scheme, _, ok := strings.Cut(iri, ":"); ok && !strings.HasPrefix(iri, "/") &&
			!strings.HasPrefix(iri, "./") && !strings.HasPrefix(iri, "../") && !isSchemeName(scheme) {
			return fmt.Errorf("IRI appears to be missing a scheme: %s", iri)
		}
	}

	for i, r := range iri {
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			return fmt.Errorf("invalid control character at position %d in IRI: %s", i, iri)
		}
		if r == '<' || r == '>' {
			return fmt.Errorf("invalid character '%c' at position %d in IRI (should be percent-encoded): %s", r, i, iri)
		}
	}
	return nil
}

func isASCIILetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isSchemeName(scheme string) bool {
	if scheme == "" {
		return false
	}
	for i := 0; i < len(scheme); i++ {
		ch := scheme[i]
		if !isASCIILetter(ch) && !(ch >= '0' && ch <= '9') && ch != '+' && ch != '-' && ch != '.' {
			return false
		}
	}
	return true
}

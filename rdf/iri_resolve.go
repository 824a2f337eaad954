package rdf

import (
	"net/url"
	"strings"
)

// ResolveIRI resolves a relative IRI against a base IRI according to RFC 3986.
// An empty base leaves relative unchanged.
func ResolveIRI(baseStr, relative string) string {
	if baseStr == "" {
		return relative
	}
	baseURL, err := url.Parse(baseStr)
	if err != nil {
		return concatIRI(baseStr, relative)
	}
	relURL, err := url.Parse(relative)
	if err != nil {
		return concatIRI(baseStr, relative)
	}
	if relURL.Scheme != "" {
		return relative
	}
	return baseURL.ResolveReference(relURL).String()
}

func concatIRI(baseStr, relative string) string {
	if strings.HasSuffix(baseStr, "/") {
		return baseStr + relative
	}
	if lastSlash := strings.LastIndex(baseStr, "/"); lastSlash >= 0 {
		return baseStr[:lastSlash+1] + relative
	}
	return baseStr + "/" + relative
}

// IsAbsoluteIRI reports whether value is a syntactically valid IRI with a scheme.
func IsAbsoluteIRI(value string) bool {
	if value == "" || ValidateIRI(value) != nil {
		return false
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return false
	}
	return parsed.Scheme != ""
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/rdf-extract/config"
	"github.com/geoknoesis/rdf-extract/rdf"
)

const personPage = `<!DOCTYPE html>
<html><body>
<div itemscope itemtype="http://schema.org/Person" itemid="http://example.org/alice">
  <span itemprop="name">Alice</span>
  <div itemprop="address" itemscope itemtype="http://schema.org/PostalAddress">
    <span itemprop="addressLocality">Paris</span>
  </div>
</div>
</body></html>`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := rootCmd(strings.NewReader(stdin), &stdout, &stderr)
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), err
}

func parseNTriples(t *testing.T, data string) []rdf.Triple {
	t.Helper()
	var out []rdf.Triple
	err := rdf.ParseTriples(context.Background(), strings.NewReader(data), rdf.FormatNTriples,
		rdf.TripleHandlerFunc(func(tr rdf.Triple) error {
			out = append(out, tr)
			return nil
		}))
	require.NoError(t, err)
	return out
}

func TestRunNTriplesFromFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "person.html", personPage)

	out, err := execute(t, "", path)
	require.NoError(t, err)

	triples := parseNTriples(t, out)
	require.Len(t, triples, 5)
	assert.Equal(t, `<http://example.org/alice> <http://schema.org/name> "Alice" .`, triples[1].String())
	assert.Equal(t, rdf.BlankNode{ID: "b1"}, triples[2].O)
}

func TestRunFromStdin(t *testing.T) {
	src := `<div itemscope><span itemprop="title">T</span></div>`

	out, err := execute(t, src, "--base", "http://example.org/doc", "-")
	require.NoError(t, err)
	assert.Equal(t, "_:b1 <http://example.org/doc#title> \"T\" .\n", out)

	out, err = execute(t, src, "--base", "http://example.org/doc", "--lang", "en")
	require.NoError(t, err)
	assert.Equal(t, "_:b1 <http://example.org/doc#title> \"T\"@en .\n", out)
}

func TestRunGlobUsesUniqueBlankNodes(t *testing.T) {
	dir := t.TempDir()
	page := `<div itemscope itemtype="http://schema.org/Thing"><span itemprop="name">x</span></div>`
	writeFile(t, dir, "a/one.html", page)
	writeFile(t, dir, "b/two.html", page)

	out, err := execute(t, "", filepath.Join(dir, "**", "*.html"))
	require.NoError(t, err)

	triples := parseNTriples(t, out)
	require.Len(t, triples, 4)
	subjects := map[string]bool{}
	for _, tr := range triples {
		subjects[tr.S.String()] = true
	}
	assert.Len(t, subjects, 2)
}

func TestRunJSONLDOutputFile(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "person.html", personPage)
	output := filepath.Join(dir, "out.jsonld")

	_, err := execute(t, "", "-o", output, input)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var doc interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, string(data), "http://example.org/alice")
	assert.Contains(t, string(data), "http://schema.org/name")
}

func TestRunJSONLDCompaction(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "person.html", personPage)
	ctxPath := writeFile(t, dir, "context.json", `{"@context": {"schema": "http://schema.org/"}}`)

	out, err := execute(t, "", "--format", "jsonld", "--jsonld-context", ctxPath, input)
	require.NoError(t, err)
	assert.Contains(t, out, `"schema:name"`)
	assert.Contains(t, out, `"@context"`)
}

func TestRunConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "rdfextract.yaml", "extract:\n  base: http://example.org/cfg\n  lang: de\n")
	src := `<div itemscope><span itemprop="title">T</span></div>`

	out, err := execute(t, src, "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "_:b1 <http://example.org/cfg#title> \"T\"@de .\n", out)

	out, err = execute(t, src, "--config", cfgPath, "--base", "http://example.org/flag")
	require.NoError(t, err)
	assert.Equal(t, "_:b1 <http://example.org/flag#title> \"T\"@de .\n", out)
}

func TestRunErrors(t *testing.T) {
	_, err := execute(t, "", filepath.Join(t.TempDir(), "*.html"))
	assert.ErrorContains(t, err, "no input matches")

	_, err = execute(t, "", "--format", "turtle", "-")
	assert.ErrorContains(t, err, "invalid configuration")

	_, err = execute(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "load config")

	deep := `<div itemscope><div itemprop="a" itemscope><span itemprop="b">x</span></div></div>`
	_, err = execute(t, deep, "--max-depth", "1", "--base", "http://example.org/")
	assert.ErrorIs(t, err, rdf.ErrDepthExceeded)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "rdfextract version "+Version+"\n", out)
}

func TestExpandInputs(t *testing.T) {
	inputs, err := expandInputs(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"-"}, inputs)

	dir := t.TempDir()
	one := writeFile(t, dir, "one.html", "")
	inputs, err = expandInputs([]string{one, filepath.Join(dir, "*.html"), "-"})
	require.NoError(t, err)
	assert.Equal(t, []string{one, "-"}, inputs)
}

func TestFileBase(t *testing.T) {
	base, err := fileBase(filepath.Join(t.TempDir(), "page.html"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(base, "file:///"))
	assert.True(t, strings.HasSuffix(base, "/page.html"))
}

func TestNewAppRegistryError(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Extract.Registry = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := newApp(cfg, nil, nil)
	assert.ErrorContains(t, err, "load registry")
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/geoknoesis/rdf-extract/config"
	"github.com/geoknoesis/rdf-extract/microdata"
	"github.com/geoknoesis/rdf-extract/rdf"
	"github.com/geoknoesis/rdf-extract/registry"
)

const stdinName = "-"

// app extracts microdata from a set of inputs into one output stream.
type app struct {
	cfg    *config.Config
	reg    *registry.Registry
	logger *slog.Logger
	stdin  io.Reader
}

func newApp(cfg *config.Config, logger *slog.Logger, stdin io.Reader) (*app, error) {
	reg, err := cfg.Registry()
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &app{cfg: cfg, reg: reg, logger: logger, stdin: stdin}, nil
}

// run extracts every input matched by patterns and writes the triples to out.
func (a *app) run(ctx context.Context, patterns []string, out io.Writer) error {
	inputs, err := expandInputs(patterns)
	if err != nil {
		return err
	}

	format, _ := rdf.ParseFormat(a.cfg.Output.Format)
	var wopts []rdf.Option
	if a.cfg.Output.JSONLDContext != "" {
		jsonldCtx, err := loadJSONLDContext(a.cfg.Output.JSONLDContext)
		if err != nil {
			return err
		}
		wopts = append(wopts, rdf.OptJSONLDContext(jsonldCtx))
	}
	w, err := rdf.NewWriter(out, format, wopts...)
	if err != nil {
		return err
	}

	unique := a.cfg.Extract.UniqueBlankNodes || len(inputs) > 1
	for _, input := range inputs {
		if err := a.extract(ctx, input, rdf.WriterHandler(w), unique); err != nil {
			_ = w.Close()
			return err
		}
	}
	return w.Close()
}

func (a *app) extract(ctx context.Context, input string, sink rdf.TripleHandler, unique bool) error {
	logger := a.logger.With("input", input)

	var r io.Reader = a.stdin
	base := a.cfg.Extract.Base
	if input != stdinName {
		f, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
		if base == "" {
			base, err = fileBase(input)
			if err != nil {
				return err
			}
		}
	}

	opts := a.cfg.ExtractOptions(a.reg, base, logger)
	if unique {
		opts = append(opts, microdata.OptBlankNodePrefix(blankNodePrefix()))
	}

	var count int
	counting := rdf.TripleHandlerFunc(func(t rdf.Triple) error {
		count++
		return sink.Handle(t)
	})
	if err := microdata.Parse(ctx, r, counting, opts...); err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	logger.Info("Extracted microdata", "triples", count)
	return nil
}

// expandInputs resolves glob patterns to file paths. No pattern means stdin.
func expandInputs(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return []string{stdinName}, nil
	}

	var inputs []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		if pattern == stdinName {
			inputs = append(inputs, stdinName)
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no input matches %q", pattern)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				inputs = append(inputs, m)
			}
		}
	}
	return inputs, nil
}

// fileBase returns the file URL of path.
func fileBase(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve input path: %w", err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}

// blankNodePrefix returns a random label prefix that keeps blank nodes of
// separate documents apart.
func blankNodePrefix() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "u" + id[:12] + "_"
}

func loadJSONLDContext(path string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read JSON-LD context: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse JSON-LD context: %w", err)
	}
	return doc, nil
}

// Package main provides the rdfextract binary entry point.
// rdfextract reads HTML documents and writes the RDF described by their
// microdata as N-Triples or JSON-LD.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/geoknoesis/rdf-extract/config"
	"github.com/geoknoesis/rdf-extract/rdf"
)

const (
	Version = "0.1.0"
	appName = "rdfextract"
)

func main() {
	if err := rootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// flags holds command line values; set ones override the config file.
type flags struct {
	configPath    string
	base          string
	format        string
	lang          string
	registryPath  string
	output        string
	logLevel      string
	jsonldContext string
	maxDepth      int
	maxTriples    int64
	uniqueBNodes  bool
}

func rootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "rdfextract [file or glob ...]",
		Short: "Extract RDF from HTML microdata",
		Long: `rdfextract reads HTML documents and writes the RDF triples described by
their microdata. Arguments are file paths or glob patterns (** is supported);
"-" or no argument reads standard input.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}

			level, _ := cfg.LogLevel()
			logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

			out := stdout
			if f.output != "" {
				file, err := os.Create(f.output)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer file.Close()
				out = file
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(cfg, logger, stdin)
			if err != nil {
				return err
			}
			return a.run(ctx, args, out)
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVar(&f.base, "base", "", "Base IRI (default: file URL of each input)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Output format (ntriples, jsonld)")
	cmd.Flags().StringVar(&f.lang, "lang", "", "Default language of text literals")
	cmd.Flags().StringVar(&f.registryPath, "registry", "", "Vocabulary registry YAML merged over the built-in one")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&f.jsonldContext, "jsonld-context", "", "JSON-LD context file used to compact output")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "Maximum item nesting depth")
	cmd.Flags().Int64Var(&f.maxTriples, "max-triples", 0, "Maximum triples per document (0 = unlimited)")
	cmd.Flags().BoolVar(&f.uniqueBNodes, "unique-bnodes", false, "Prefix blank nodes with a random per-document identifier")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})

	return cmd
}

// loadConfig layers defaults, the config file and explicitly set flags.
func loadConfig(cmd *cobra.Command, f flags) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if f.configPath != "" {
		fileCfg, err := config.LoadFromFile(f.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg.Merge(fileCfg)
	}

	cfg.Merge(&config.Config{
		Extract: config.ExtractConfig{
			Base:             f.base,
			Lang:             f.lang,
			Registry:         f.registryPath,
			MaxDepth:         f.maxDepth,
			MaxTriples:       f.maxTriples,
			UniqueBlankNodes: f.uniqueBNodes,
		},
		Output: config.OutputConfig{
			Format:        f.format,
			JSONLDContext: f.jsonldContext,
		},
		Log: config.LogConfig{
			Level: f.logLevel,
		},
	})

	if !cmd.Flags().Changed("format") && f.output != "" {
		if format, ok := rdf.FormatFromPath(f.output); ok {
			cfg.Output.Format = string(format)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

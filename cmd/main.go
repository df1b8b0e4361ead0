package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/xhad/profile-embed/internal/logger"
	cfgPkg "github.com/xhad/profile-embed/pkg/config"
)

type options struct {
	configPath string
	dryRun     bool
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}

	config, opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger.Init(config.Log)

	if errs := config.Validate(); len(errs) > 0 {
		for _, e := range errs {
			logger.Error().Str("field", e.Field).Msg(e.Message)
		}
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, config, opts); err != nil {
		logger.Error().Err(err).Msg("embedding generation failed")
		stop()
		os.Exit(1)
	}
}

func parseFlags(args []string) (*cfgPkg.Config, options, error) {
	var opts options

	flags := pflag.NewFlagSet("profile-embed", pflag.ContinueOnError)
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to config file")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Extract chunks and print counts without embedding")

	input := flags.StringP("input", "i", "", "Portfolio data file")
	output := flags.StringP("output", "o", "", "Embeddings output file")
	provider := flags.String("provider", "", "Embedding provider: tei, ollama, openai or hash")
	model := flags.String("model", "", "Embedding model name")
	baseURL := flags.String("base-url", "", "Embedding service URL")
	dimension := flags.Int("dimension", 0, "Expected embedding dimension (0 accepts any)")
	modelLabel := flags.String("model-label", "", "Model name written to the output file")
	types := flags.StringSlice("types", nil, "Only emit these chunk types")
	stripHTML := flags.Bool("strip-html", false, "Render HTML in text fields as plain text")
	collapse := flags.Bool("collapse-whitespace", false, "Collapse whitespace runs in chunk content")
	inactive := flags.Bool("include-inactive", false, "Also emit projects marked inactive")
	dbURL := flags.String("db-url", "", "PostgreSQL connection string for the pgvector sink")
	table := flags.String("table", "", "pgvector table name")
	logLevel := flags.String("log-level", "", "Log level")
	logFormat := flags.String("log-format", "", "Log format: pretty or json")

	if err := flags.Parse(args); err != nil {
		return nil, opts, err
	}

	config, err := cfgPkg.LoadConfig(opts.configPath)
	if err != nil {
		return nil, opts, err
	}

	// Command line flags win over file and environment
	if flags.Changed("input") {
		config.Input.Path = *input
	}
	if flags.Changed("output") {
		config.Output.Path = *output
	}
	if flags.Changed("provider") {
		config.Embedding.Provider = *provider
	}
	if flags.Changed("model") {
		config.Embedding.Model = *model
	}
	if flags.Changed("base-url") {
		config.Embedding.BaseURL = *baseURL
	}
	if flags.Changed("dimension") {
		config.Embedding.Dimension = *dimension
	}
	if flags.Changed("model-label") {
		config.Output.ModelLabel = *modelLabel
	}
	if flags.Changed("types") {
		config.Processor.Types = *types
	}
	if flags.Changed("strip-html") {
		config.Processor.StripHTML = *stripHTML
	}
	if flags.Changed("collapse-whitespace") {
		config.Processor.CollapseWhitespace = *collapse
	}
	if flags.Changed("include-inactive") {
		config.Processor.IncludeInactive = *inactive
	}
	if flags.Changed("db-url") {
		config.Database.URL = *dbURL
	}
	if flags.Changed("table") {
		config.Database.TableName = *table
	}
	if flags.Changed("log-level") {
		config.Log.Level = *logLevel
	}
	if flags.Changed("log-format") {
		config.Log.Format = *logFormat
	}

	return config, opts, nil
}

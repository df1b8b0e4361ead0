package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/xhad/profile-embed/internal/logger"
	"github.com/xhad/profile-embed/internal/models"
	cfgPkg "github.com/xhad/profile-embed/pkg/config"
	"github.com/xhad/profile-embed/pkg/llm"
	"github.com/xhad/profile-embed/pkg/loader"
	"github.com/xhad/profile-embed/pkg/processor"
	"github.com/xhad/profile-embed/pkg/report"
	"github.com/xhad/profile-embed/pkg/store"
)

var stdout io.Writer = os.Stdout

func getSpinner(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)
}

func run(ctx context.Context, config *cfgPkg.Config, opts options) error {
	color.New(color.FgBlue).Fprintln(stdout, "=== Embedding Generator for RAG System ===")

	logger.Info().Str("path", config.Input.Path).Msg("loading profile")
	profile, err := loader.LoadProfile(config.Input.Path)
	if err != nil {
		return err
	}

	types, err := config.ChunkTypes()
	if err != nil {
		return err
	}

	proc := processor.NewWithConfig(processor.ProcessorConfig{
		Types:              types,
		StripHTML:          config.Processor.StripHTML,
		CollapseWhitespace: config.Processor.CollapseWhitespace,
		IncludeInactive:    config.Processor.IncludeInactive,
	})

	chunks, err := proc.Process(profile)
	if err != nil {
		return fmt.Errorf("failed to extract chunks: %w", err)
	}
	logger.Info().Int("chunks", len(chunks)).Msg("extracted text chunks")

	if opts.dryRun {
		report.Print(stdout, report.Summary{Chunks: chunks, DryRun: true})
		return nil
	}

	out, err := embed(ctx, config, chunks)
	if err != nil {
		return err
	}

	if err := store.WriteOutput(config.Output.Path, out); err != nil {
		return err
	}
	logger.Info().Str("path", config.Output.Path).Int("dimension", out.Dimension).Msg("wrote embeddings")

	if config.Database.URL != "" && len(out.Chunks) > 0 {
		if err := publish(ctx, config, out); err != nil {
			return err
		}
	}

	report.Print(stdout, report.Summary{
		Path:      config.Output.Path,
		Model:     out.Model,
		Dimension: out.Dimension,
		Chunks:    out.Chunks,
	})
	return nil
}

func embed(ctx context.Context, config *cfgPkg.Config, chunks []models.Chunk) (models.Output, error) {
	embedder, err := llm.NewEmbedderWithConfig(config.EmbedderConfig())
	if err != nil {
		return models.Output{}, err
	}

	logger.Info().
		Str("provider", embedder.Config.Provider).
		Str("model", embedder.ModelName()).
		Msg("loading model")

	spinner := getSpinner(fmt.Sprintf(" Generating embeddings for %d chunks...", len(chunks)))
	err = embedder.Attach(ctx, chunks)
	spinner.Finish()
	if err != nil {
		return models.Output{}, err
	}

	return models.NewOutput(config.ModelLabel(), chunks), nil
}

func publish(ctx context.Context, config *cfgPkg.Config, out models.Output) error {
	vectorStore, err := store.NewWithConfig(ctx, store.VectorStoreConfig{
		ConnString: config.Database.URL,
		TableName:  config.Database.TableName,
		VectorDim:  out.Dimension,
		BatchSize:  config.Database.BatchSize,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize vector store: %w", err)
	}
	defer vectorStore.Close()

	if err := vectorStore.Store(ctx, out.Model, out.Chunks); err != nil {
		return fmt.Errorf("failed to store chunks (%s was written): %w", config.Output.Path, err)
	}
	logger.Info().Str("table", config.Database.TableName).Int("chunks", len(out.Chunks)).Msg("stored chunks in pgvector")
	return nil
}

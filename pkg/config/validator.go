package config

import (
	"fmt"
	"net/url"

	"github.com/xhad/profile-embed/internal/models"
	"github.com/xhad/profile-embed/pkg/llm"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	if c.Input.Path == "" {
		errors = append(errors, ValidationError{
			Field:   "input.path",
			Message: "input path is required",
		})
	}

	if c.Output.Path == "" {
		errors = append(errors, ValidationError{
			Field:   "output.path",
			Message: "output path is required",
		})
	}

	// Validate embedding config
	switch c.Embedding.Provider {
	case llm.ProviderTEI, llm.ProviderOllama, llm.ProviderOpenAI, llm.ProviderHash:
	default:
		errors = append(errors, ValidationError{
			Field:   "embedding.provider",
			Message: fmt.Sprintf("unknown provider %q", c.Embedding.Provider),
		})
	}

	if c.Embedding.BaseURL != "" && !validURL(c.Embedding.BaseURL) {
		errors = append(errors, ValidationError{
			Field:   "embedding.base_url",
			Message: "invalid embedding service URL",
		})
	}

	if c.Embedding.Dimension < 0 {
		errors = append(errors, ValidationError{
			Field:   "embedding.dimension",
			Message: "dimension must not be negative",
		})
	}

	if c.Embedding.Timeout < 0 {
		errors = append(errors, ValidationError{
			Field:   "embedding.timeout",
			Message: "timeout must not be negative",
		})
	}

	// Validate processor config
	for _, t := range c.Processor.Types {
		if _, err := models.ParseChunkType(t); err != nil {
			errors = append(errors, ValidationError{
				Field:   "processor.types",
				Message: err.Error(),
			})
		}
	}

	// Validate database config
	if c.Database.URL != "" && !validURL(c.Database.URL) {
		errors = append(errors, ValidationError{
			Field:   "database.url",
			Message: "invalid database URL",
		})
	}

	if c.Database.BatchSize < 1 {
		errors = append(errors, ValidationError{
			Field:   "database.batch_size",
			Message: "batch_size must be positive",
		})
	}

	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		errors = append(errors, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("unknown level %q", c.Log.Level),
		})
	}

	if c.Log.Format != "pretty" && c.Log.Format != "json" {
		errors = append(errors, ValidationError{
			Field:   "log.format",
			Message: "format must be pretty or json",
		})
	}

	return errors
}

func validURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

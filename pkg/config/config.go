package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xhad/profile-embed/internal/logger"
	"github.com/xhad/profile-embed/internal/models"
	"github.com/xhad/profile-embed/pkg/llm"
	"gopkg.in/yaml.v3"
)

type InputConfig struct {
	Path string `yaml:"path"`
}

type EmbeddingConfig struct {
	Provider  string        `yaml:"provider"`
	Model     string        `yaml:"model"`
	BaseURL   string        `yaml:"base_url"`
	APIKey    string        `yaml:"api_key"`
	Dimension int           `yaml:"dimension"`
	Timeout   time.Duration `yaml:"timeout"`
}

type OutputConfig struct {
	Path string `yaml:"path"`
	// ModelLabel overrides the "model" field of the output file. Empty
	// means the embedding model name.
	ModelLabel string `yaml:"model_label"`
}

type ProcessorConfig struct {
	Types              []string `yaml:"types"`
	StripHTML          bool     `yaml:"strip_html"`
	CollapseWhitespace bool     `yaml:"collapse_whitespace"`
	IncludeInactive    bool     `yaml:"include_inactive"`
}

type DatabaseConfig struct {
	URL       string `yaml:"url"`
	TableName string `yaml:"table_name"`
	BatchSize int    `yaml:"batch_size"`
}

type Config struct {
	Input     InputConfig     `yaml:"input"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Output    OutputConfig    `yaml:"output"`
	Processor ProcessorConfig `yaml:"processor"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       logger.Config   `yaml:"log"`
}

func LoadConfig(path string) (*Config, error) {
	// If no path provided, try default locations
	if path == "" {
		locations := []string{
			"config.yaml",
			"config.yml",
			filepath.Join(os.Getenv("HOME"), ".config/profile-embed/config.yaml"),
			"/etc/profile-embed/config.yaml",
		}

		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path == "" {
		return getDefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	mergeWithEnv(&config)
	applyDefaults(&config)

	return &config, nil
}

func getDefaultConfig() *Config {
	config := &Config{}
	mergeWithEnv(config)
	applyDefaults(config)
	return config
}

func applyDefaults(config *Config) {
	if config.Input.Path == "" {
		config.Input.Path = "data.json"
	}

	if config.Embedding.Provider == "" {
		config.Embedding.Provider = llm.ProviderTEI
	}
	if config.Embedding.Model == "" {
		config.Embedding.Model = llm.DefaultModel
	}
	if config.Embedding.Timeout == 0 {
		config.Embedding.Timeout = 60 * time.Second
	}

	if config.Output.Path == "" {
		config.Output.Path = "embeddings.json"
	}

	if config.Database.TableName == "" {
		config.Database.TableName = "profile_chunks"
	}
	if config.Database.BatchSize == 0 {
		config.Database.BatchSize = 100
	}

	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Format == "" {
		config.Log.Format = "pretty"
	}
}

func mergeWithEnv(config *Config) {
	if input := os.Getenv("PROFILE_EMBED_INPUT"); input != "" {
		config.Input.Path = input
	}
	if output := os.Getenv("PROFILE_EMBED_OUTPUT"); output != "" {
		config.Output.Path = output
	}
	if provider := os.Getenv("EMBEDDING_PROVIDER"); provider != "" {
		config.Embedding.Provider = provider
	}
	if baseURL := os.Getenv("EMBEDDING_BASE_URL"); baseURL != "" {
		config.Embedding.BaseURL = baseURL
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" && config.Embedding.APIKey == "" {
		config.Embedding.APIKey = apiKey
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		config.Database.URL = dbURL
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Log.Level = level
	}
}

// ModelLabel is the model name recorded in the output file.
func (c *Config) ModelLabel() string {
	if c.Output.ModelLabel != "" {
		return c.Output.ModelLabel
	}
	return c.Embedding.Model
}

func (c *Config) ChunkTypes() ([]models.ChunkType, error) {
	var types []models.ChunkType
	for _, s := range c.Processor.Types {
		t, err := models.ParseChunkType(s)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

func (c *Config) EmbedderConfig() llm.EmbedderConfig {
	return llm.EmbedderConfig{
		Provider:  c.Embedding.Provider,
		Model:     c.Embedding.Model,
		BaseURL:   c.Embedding.BaseURL,
		APIKey:    c.Embedding.APIKey,
		Dimension: c.Embedding.Dimension,
		Timeout:   c.Embedding.Timeout,
	}
}

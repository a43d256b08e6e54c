// Package config loads the engine's YAML configuration.
package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hfahrudin/fraud-chatbot/internal/domain"
	"github.com/hfahrudin/fraud-chatbot/internal/ports"
)

// FileLoader loads YAML configuration from ./config.yaml (overridable via
// FRAUDENGINE_CONFIG). A default file is written on first run.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultConfig()
			if err := writeDefault(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}
	return hydrateDefaults(cfg), nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("FRAUDENGINE_CONFIG"); custom != "" {
		return custom
	}
	return "config.yaml"
}

func writeDefault(path string, cfg domain.Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

func defaultConfig() domain.Config {
	return hydrateDefaults(domain.Config{ConfigFormatVersion: "1"})
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.Model.Endpoint == "" {
		cfg.Model.Endpoint = "https://api.openai.com/v1/chat/completions"
	}
	if cfg.Model.EmbeddingEndpoint == "" {
		cfg.Model.EmbeddingEndpoint = "https://api.openai.com/v1/embeddings"
	}
	if cfg.Model.AuthEnvVar == "" {
		cfg.Model.AuthEnvVar = "OPENAI_API_KEY"
	}
	if cfg.Model.ModelID == "" {
		cfg.Model.ModelID = "gpt-4o"
	}
	if cfg.Model.EmbeddingModelID == "" {
		cfg.Model.EmbeddingModelID = "text-embedding-3-small"
	}
	if cfg.Model.MaxTokens == 0 {
		cfg.Model.MaxTokens = 1200
	}
	if cfg.Model.Temperature == 0 {
		cfg.Model.Temperature = 0.7
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = "data"
	}
	if cfg.Storage.MediaDir == "" {
		cfg.Storage.MediaDir = "media"
	}
	if cfg.Storage.DBFile == "" {
		cfg.Storage.DBFile = filepath.Join(cfg.Storage.MediaDir, "fraud.db")
	}
	if cfg.Storage.IndexDir == "" {
		cfg.Storage.IndexDir = filepath.Join(cfg.Storage.MediaDir, "faiss_index")
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8000"
	}
	if cfg.Agent.MaxIterations == 0 {
		cfg.Agent.MaxIterations = 8
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 5
	}
	if cfg.Retrieval.FetchK == 0 {
		cfg.Retrieval.FetchK = 20
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)

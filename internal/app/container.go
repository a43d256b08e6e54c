// Package app wires application services with infrastructure adapters.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/philippgille/chromem-go"

	"github.com/hfahrudin/fraud-chatbot/internal/application/agent"
	"github.com/hfahrudin/fraud-chatbot/internal/domain"
	"github.com/hfahrudin/fraud-chatbot/internal/infrastructure/ai"
	"github.com/hfahrudin/fraud-chatbot/internal/infrastructure/config"
	"github.com/hfahrudin/fraud-chatbot/internal/infrastructure/httpserver"
	"github.com/hfahrudin/fraud-chatbot/internal/infrastructure/ingest"
	"github.com/hfahrudin/fraud-chatbot/internal/infrastructure/knowledge"
	"github.com/hfahrudin/fraud-chatbot/internal/infrastructure/security"
	"github.com/hfahrudin/fraud-chatbot/internal/infrastructure/tabular"
	"github.com/hfahrudin/fraud-chatbot/internal/pkg/logger"
	"github.com/hfahrudin/fraud-chatbot/internal/ports"
)

// Container holds the dependency graph.
type Container struct {
	Config       domain.Config
	Logger       ports.Logger
	Store        *tabular.Store
	Index        *knowledge.Index
	AgentService *agent.Service
	Server       *httpserver.Server

	dbExisted bool
}

// BuildContainer constructs the dependency graph from configuration.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.NewSlog(verbose)

	dbExisted := fileExists(cfg.Storage.DBFile)
	if err := os.MkdirAll(cfg.Storage.MediaDir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}

	store, err := tabular.NewStore(cfg.Storage.DBFile, log)
	if err != nil {
		return nil, err
	}

	client := ai.NewClient(cfg.Model)
	index, err := knowledge.NewIndex(cfg.Storage.IndexDir, chromem.EmbeddingFunc(client.Embed), log)
	if err != nil {
		return nil, err
	}

	agentService := &agent.Service{
		Model:         client,
		Guard:         security.NewGuard(),
		Store:         store,
		Retriever:     index,
		Logger:        log,
		MaxIterations: cfg.Agent.MaxIterations,
		TopK:          cfg.Retrieval.TopK,
		FetchK:        cfg.Retrieval.FetchK,
	}

	return &Container{
		Config:       cfg,
		Logger:       log,
		Store:        store,
		Index:        index,
		AgentService: agentService,
		Server:       httpserver.New(agentService, log),
		dbExisted:    dbExisted,
	}, nil
}

// EnsureIngested populates the tabular store and the knowledge index when
// they are missing: the database is built only when its file did not exist,
// the index only when its collection is empty.
func (c *Container) EnsureIngested(ctx context.Context) error {
	if !c.dbExisted {
		c.Logger.Info("building fraud_data table", map[string]interface{}{
			"data_dir": c.Config.Storage.DataDir,
			"db_file":  c.Config.Storage.DBFile,
		})
		if err := ingest.LoadCSVs(ctx, c.Store.DB(), c.Config.Storage.DataDir, c.Logger); err != nil {
			return fmt.Errorf("ingest CSVs: %w", err)
		}
		c.dbExisted = true
	} else {
		c.Logger.Info("database already exists, skipping creation", map[string]interface{}{
			"db_file": c.Config.Storage.DBFile,
		})
	}

	if c.Index.Count() == 0 {
		c.Logger.Info("building knowledge index", map[string]interface{}{
			"data_dir":  c.Config.Storage.DataDir,
			"index_dir": c.Config.Storage.IndexDir,
		})
		if err := ingest.LoadPDFs(ctx, c.Index, c.Config.Storage.DataDir, c.Logger); err != nil {
			return fmt.Errorf("ingest PDFs: %w", err)
		}
	} else {
		c.Logger.Info("knowledge index already populated", map[string]interface{}{
			"chunks": c.Index.Count(),
		})
	}
	return nil
}

// Close releases held resources.
func (c *Container) Close() error {
	return c.Store.Close()
}

func fileExists(path string) bool {
	info, err := os.Stat(filepath.Clean(path))
	return err == nil && !info.IsDir()
}

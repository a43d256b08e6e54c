package domain

// Config is the root configuration loaded from the YAML config file.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version"`
	Model               ModelDefinition `yaml:"model"`
	Storage             StorageSettings `yaml:"storage"`
	Server              ServerSettings  `yaml:"server"`
	Agent               AgentSettings   `yaml:"agent"`
	Retrieval           RetrievalLimits `yaml:"retrieval"`
}

// ModelDefinition describes the reasoning-model endpoint declared in the
// config file. The API key is resolved from AuthEnvVar at call time and is
// never written to disk.
type ModelDefinition struct {
	Endpoint          string  `yaml:"endpoint"`
	EmbeddingEndpoint string  `yaml:"embedding_endpoint"`
	AuthEnvVar        string  `yaml:"auth_env_var"`
	ModelID           string  `yaml:"model_id"`
	EmbeddingModelID  string  `yaml:"embedding_model_id"`
	MaxTokens         int     `yaml:"max_tokens"`
	Temperature       float64 `yaml:"temperature"`
}

// StorageSettings locates process-wide persisted state: the single-table
// database file and the vector-index directory, both check-then-create on
// startup, plus the source-data directory the ingestion pipeline reads.
type StorageSettings struct {
	DataDir  string `yaml:"data_dir"`
	MediaDir string `yaml:"media_dir"`
	DBFile   string `yaml:"db_file"`
	IndexDir string `yaml:"index_dir"`
}

// ServerSettings configures the HTTP serving surface.
type ServerSettings struct {
	Addr string `yaml:"addr"`
}

// AgentSettings bounds the orchestration loop.
type AgentSettings struct {
	// MaxIterations caps reasoning steps per run to bound cost and prevent
	// infinite tool-call loops. Must be finite and positive.
	MaxIterations int `yaml:"max_iterations"`
}

// RetrievalLimits holds the similarity-search widths. FetchK is the
// candidate width, TopK the final width once a re-ranking stage exists.
type RetrievalLimits struct {
	TopK   int `yaml:"top_k"`
	FetchK int `yaml:"fetch_k"`
}

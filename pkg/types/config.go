package types

import "time"

// AIProvider selects the NLP service backend.
type AIProvider string

const (
	ProviderOpenAI    AIProvider = "openai"
	ProviderAnthropic AIProvider = "anthropic"
)

// AIConfig holds settings for calls to the remote NLP service.
type AIConfig struct {
	// Provider selects the backend: openai (any OpenAI-compatible endpoint)
	// or anthropic.
	Provider AIProvider `json:"provider" yaml:"provider" mapstructure:"provider"`

	// Model is the model identifier (e.g. "gpt-4o-mini").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the authentication key. An empty key disables remote calls.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// MaxRetries is the number of retries on HTTP 429 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// MaxContextTokens caps the document text included in a prompt (default 1500).
	MaxContextTokens int `json:"max_context_tokens" yaml:"max_context_tokens" mapstructure:"max_context_tokens"`

	// Timeout bounds each remote call. Zero means no extra bound.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// Enabled reports whether remote calls can be made.
func (c AIConfig) Enabled() bool {
	return c.APIKey != ""
}

// CacheConfig holds settings for the sentiment and summary result caches.
type CacheConfig struct {
	// TTL is how long a cached result stays valid (default 24h).
	TTL time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`

	// Capacity bounds the number of entries per namespace. Zero is unbounded.
	Capacity int `json:"capacity" yaml:"capacity" mapstructure:"capacity"`

	// RedisURL selects the redis backend when set (e.g. "redis://localhost:6379/0").
	RedisURL string `json:"redis_url,omitempty" yaml:"redis_url,omitempty" mapstructure:"redis_url"`
}

// LibraryConfig holds settings for the document library.
type LibraryConfig struct {
	// Dir is the directory holding docsight.db and exports.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// MaxUploadBytes bounds multipart uploads (default 32 MiB).
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes" mapstructure:"max_upload_bytes"`
}

// Config groups all settings for docsight.
type Config struct {
	AI      AIConfig      `json:"ai" yaml:"ai" mapstructure:"ai"`
	Cache   CacheConfig   `json:"cache" yaml:"cache" mapstructure:"cache"`
	Library LibraryConfig `json:"library" yaml:"library" mapstructure:"library"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		AI: AIConfig{
			Provider:         ProviderOpenAI,
			Model:            "gpt-4o-mini",
			MaxRetries:       3,
			MaxContextTokens: 1500,
		},
		Cache: CacheConfig{
			TTL: 24 * time.Hour,
		},
		Library: LibraryConfig{
			Dir:        "library",
			MaxResults: 20,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			MaxUploadBytes: 32 << 20,
		},
	}
}

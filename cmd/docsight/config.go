package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/pdiddy/docsight/internal/secrets"
	"github.com/pdiddy/docsight/pkg/types"
)

// setDefaults registers every config key with viper so environment
// variables such as DOCSIGHT_AI_API_KEY are seen by Unmarshal.
func setDefaults(d types.Config) {
	viper.SetDefault("ai.provider", string(d.AI.Provider))
	viper.SetDefault("ai.model", d.AI.Model)
	viper.SetDefault("ai.api_key", d.AI.APIKey)
	viper.SetDefault("ai.base_url", d.AI.BaseURL)
	viper.SetDefault("ai.max_retries", d.AI.MaxRetries)
	viper.SetDefault("ai.max_context_tokens", d.AI.MaxContextTokens)
	viper.SetDefault("ai.timeout", d.AI.Timeout)

	viper.SetDefault("cache.ttl", d.Cache.TTL)
	viper.SetDefault("cache.capacity", d.Cache.Capacity)
	viper.SetDefault("cache.redis_url", d.Cache.RedisURL)

	viper.SetDefault("library.dir", d.Library.Dir)
	viper.SetDefault("library.max_results", d.Library.MaxResults)

	viper.SetDefault("server.addr", d.Server.Addr)
	viper.SetDefault("server.max_upload_bytes", d.Server.MaxUploadBytes)
}

// loadConfig reads the merged configuration and fills the API key from
// .secrets/ when neither the config file nor the environment set one.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	secrets.Apply(&cfg.AI, loadedSecrets)
	return cfg, nil
}

// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Providers selectable via MEDEDU_PROVIDER.
const (
	ProviderGitHubModels = "github-models"
	ProviderOpenAI       = "openai"
)

// Defaults mirror the GitHub Models deployment this service was written
// against. Every value can be overridden through the environment.
const (
	DefaultEndpoint = "https://models.inference.ai.azure.com"
	DefaultModel    = "gpt-4o"
	DefaultAddr     = ":8000"
)

// Config carries everything needed to construct a completion client and the
// HTTP server. It is built once at process start and passed down explicitly;
// nothing reads the environment afterwards.
type Config struct {
	Addr     string
	Provider string
	Endpoint string
	Token    string
	Model    string
}

// Load reads an optional .env file and the process environment. Variables
// already set in the environment are never overridden by the file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("mededu")
	v.AutomaticEnv()

	v.SetDefault("addr", DefaultAddr)
	v.SetDefault("provider", ProviderGitHubModels)
	v.SetDefault("endpoint", DefaultEndpoint)
	v.SetDefault("model", DefaultModel)

	cfg := Config{
		Addr:     v.GetString("addr"),
		Provider: v.GetString("provider"),
		Endpoint: v.GetString("endpoint"),
		Token:    v.GetString("token"),
		Model:    v.GetString("model"),
	}

	// GITHUB_TOKEN is the credential name the default deployment uses.
	if cfg.Token == "" {
		cfg.Token = os.Getenv("GITHUB_TOKEN")
	}
	if cfg.Token == "" {
		return cfg, fmt.Errorf("completion endpoint token missing: set MEDEDU_TOKEN or GITHUB_TOKEN")
	}

	switch cfg.Provider {
	case ProviderGitHubModels, ProviderOpenAI:
	default:
		return cfg, fmt.Errorf("unknown provider %q", cfg.Provider)
	}

	return cfg, nil
}

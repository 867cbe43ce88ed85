package config

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"

	"webgen_ai_server/internal/types"
)

// DefaultModelFallback is the ordered candidate list used when MODEL_FALLBACK
// is not set.
const DefaultModelFallback = "gemini:gemini-2.0-flash,gemini:gemini-1.5-flash,openrouter:deepseek/deepseek-chat-v3-0324,openrouter:openrouter/auto"

// Config holds all configuration for the application.
// Mapstructure tags are used to map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress string `mapstructure:"SERVER_ADDRESS"` // e.g., ":8080"

	// Provider API keys. A key is only required when MODEL_FALLBACK
	// references the matching provider.
	GeminiKey     string `mapstructure:"GEMINI_API_KEY"`
	OpenRouterKey string `mapstructure:"OPENROUTER_API_KEY"`

	// Model-fallback pipeline
	ModelFallback  string `mapstructure:"MODEL_FALLBACK"`   // ordered "provider:model" pairs, comma separated
	ModelTimeoutMS int    `mapstructure:"MODEL_TIMEOUT_MS"` // per-attempt timeout

	// HTTP middleware
	CORSOrigins  string `mapstructure:"CORS_ORIGINS"`   // comma-separated allow-list, "*" for all
	RateLimitMax int    `mapstructure:"RATE_LIMIT_MAX"` // max requests per 60s window
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Defaults also register the keys so AutomaticEnv can resolve them.
	viper.SetDefault("SERVER_ADDRESS", ":8080")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("OPENROUTER_API_KEY", "")
	viper.SetDefault("MODEL_FALLBACK", DefaultModelFallback)
	viper.SetDefault("MODEL_TIMEOUT_MS", 45000)
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("RATE_LIMIT_MAX", 30)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file ('config.yaml') not found in specified path, relying solely on environment variables.")
		} else {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Printf("Using configuration file: %s", viper.ConfigFileUsed())
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return config, nil
}

// Candidates parses the ordered model-fallback list.
func (c Config) Candidates() ([]types.ModelRef, error) {
	return types.ParseFallbackList(c.ModelFallback)
}

// Origins returns the CORS allow-list.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// ModelTimeout returns the per-attempt provider timeout.
func (c Config) ModelTimeout() time.Duration {
	if c.ModelTimeoutMS <= 0 {
		return 45 * time.Second
	}
	return time.Duration(c.ModelTimeoutMS) * time.Millisecond
}

// Validate checks startup configuration: the fallback list must parse, name
// only known providers, and every provider it references must have its API
// key set. Returning an error here (instead of exiting deep in a library)
// keeps the fail-fast decision in main.
func (c Config) Validate() error {
	refs, err := c.Candidates()
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		return errors.New("MODEL_FALLBACK must list at least one provider:model pair")
	}

	missing := map[string]bool{}
	for _, ref := range refs {
		switch ref.Provider {
		case "gemini":
			if c.GeminiKey == "" {
				missing["GEMINI_API_KEY"] = true
			}
		case "openrouter":
			if c.OpenRouterKey == "" {
				missing["OPENROUTER_API_KEY"] = true
			}
		default:
			return fmt.Errorf("unknown provider %q in MODEL_FALLBACK", ref.Provider)
		}
	}
	if len(missing) > 0 {
		keys := make([]string, 0, len(missing))
		for k := range missing {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return fmt.Errorf("missing required environment variables: %s", strings.Join(keys, ", "))
	}
	return nil
}

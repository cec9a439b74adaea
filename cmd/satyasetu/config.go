// cmd/satyasetu/config.go
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const VERSION = "1.2.0"

// Config holds application configuration
type Config struct {
	Version         string `json:"version"`
	ListenPort      int    `json:"listen_port"`
	LogPath         string `json:"log_path"`
	LogLevel        string `json:"log_level"`
	DataDir         string `json:"data_dir"`
	UserAgentString string `json:"user_agent_string"`

	// Feature toggles
	EnableWebVerify bool `json:"enable_web_verification"`
	EnableOracle    bool `json:"enable_oracle"`
	EnableFactCheck bool `json:"enable_fact_check"`
	EnableMonitor   bool `json:"enable_monitor"`

	// Analysis tuning
	ScrapeTimeoutSeconds int `json:"scrape_timeout_seconds"`
	MaxScrapeResults     int `json:"max_scrape_results"`
	OracleTimeoutSeconds int `json:"oracle_timeout_seconds"`
	MaxStoredAnalyses    int `json:"max_stored_analyses"`

	// Monitor
	MonitorCron     string `json:"monitor_cron"`
	FeedsPath       string `json:"feeds_path"`
	MaxItemsPerFeed int    `json:"max_items_per_feed"`

	// Oracle
	GroqModel   string `json:"groq_model"`
	GroqBaseURL string `json:"groq_base_url"`

	// Secrets, loaded from the environment only
	GroqAPIKey            string `json:"-"`
	GoogleFactCheckAPIKey string `json:"-"`
}

// Feed is one monitored RSS feed
type Feed struct {
	Name     string `yaml:"name" json:"name"`
	URL      string `yaml:"url" json:"url"`
	Category string `yaml:"category" json:"category"`
	Enabled  bool   `yaml:"enabled" json:"enabled"`
}

// cfg is the global configuration, set during startup
var cfg *Config

// defaultConfig returns a config with sane defaults applied
func defaultConfig() *Config {
	return &Config{
		Version:              VERSION,
		ListenPort:           8080,
		LogPath:              "logs/satyasetu.log",
		LogLevel:             "info",
		DataDir:              "data",
		UserAgentString:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		EnableWebVerify:      true,
		EnableOracle:         true,
		EnableFactCheck:      true,
		EnableMonitor:        false,
		ScrapeTimeoutSeconds: 6,
		MaxScrapeResults:     6,
		OracleTimeoutSeconds: 30,
		MaxStoredAnalyses:    500,
		MonitorCron:          "@every 15m",
		FeedsPath:            "config/feeds.yml",
		MaxItemsPerFeed:      5,
		GroqModel:            "llama-3.3-70b-versatile",
		GroqBaseURL:          "https://api.groq.com/openai/v1",
	}
}

// LoadEnv loads environment variables from a .env file if present
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		// .env is optional; environment may already be populated
		Logger().Debug("No .env file loaded: %v", err)
	}
}

// LoadConfig reads the JSON config file, applies defaults and env overrides
func LoadConfig(path string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, NewConfigError(ErrConfigLoad, "failed to read config file", err)
		}
		// Missing config file is fine; defaults plus env apply
	} else {
		if err := json.Unmarshal(data, config); err != nil {
			return nil, NewConfigError(ErrConfigLoad, "invalid config JSON", err)
		}
	}

	applyEnvOverrides(config)

	if issues := validateConfig(config); len(issues) > 0 {
		return nil, NewConfigError(ErrConfigValidation, fmt.Sprintf("invalid configuration: %v", issues), nil)
	}

	return config, nil
}

// applyEnvOverrides layers environment variables over file values
func applyEnvOverrides(config *Config) {
	config.GroqAPIKey = os.Getenv("GROQ_API_KEY")
	config.GoogleFactCheckAPIKey = os.Getenv("GOOGLE_FACT_CHECK_API_KEY")

	if v := os.Getenv("SATYASETU_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.ListenPort = port
		}
	}
	if v := os.Getenv("SATYASETU_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
	if v := os.Getenv("SATYASETU_DATA_DIR"); v != "" {
		config.DataDir = v
	}
	if v := os.Getenv("GROQ_MODEL"); v != "" {
		config.GroqModel = v
	}
}

// validateConfig checks configuration invariants
func validateConfig(config *Config) []string {
	var issues []string

	if config.ListenPort <= 0 || config.ListenPort > 65535 {
		issues = append(issues, fmt.Sprintf("listen_port out of range: %d", config.ListenPort))
	}
	if config.ScrapeTimeoutSeconds <= 0 {
		issues = append(issues, "scrape_timeout_seconds must be positive")
	}
	if config.MaxScrapeResults <= 0 {
		issues = append(issues, "max_scrape_results must be positive")
	}
	if config.MaxStoredAnalyses <= 0 {
		issues = append(issues, "max_stored_analyses must be positive")
	}

	return issues
}

// LoadFeeds reads the monitored feed list from the YAML config
func LoadFeeds(path string) ([]Feed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfigError(ErrConfigLoad, "failed to read feeds file", err)
	}

	var wrapper struct {
		Feeds []Feed `yaml:"feeds"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, NewConfigError(ErrConfigLoad, "invalid feeds YAML", err)
	}

	var enabled []Feed
	for _, f := range wrapper.Feeds {
		if !f.Enabled {
			continue
		}
		if f.Name == "" || f.URL == "" {
			Logger().Warning("Skipping feed with missing name or URL")
			continue
		}
		enabled = append(enabled, f)
	}

	return enabled, nil
}

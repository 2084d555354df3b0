// Package config loads podscout settings from an optional YAML file layered
// over environment variables. The file wins over the environment; flags
// (handled in the CLI layer) win over both.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is consulted when no --config flag is given.
const DefaultPath = ".podscout.yaml"

// Config holds all podscout settings.
type Config struct {
	Namespace  string        `yaml:"namespace"`
	Kubeconfig string        `yaml:"kubeconfig"`
	Timeout    time.Duration `yaml:"timeout"`
	LogTail    int           `yaml:"log_tail"`
	LogLevel   string        `yaml:"log_level"`
	LogFormat  string        `yaml:"log_format"`
	Output     string        `yaml:"output"`
	AI         AIConfig      `yaml:"ai"`
}

// AIConfig selects and configures the optional narrative backend.
// An empty Provider disables AI entirely.
type AIConfig struct {
	Provider string        `yaml:"provider"`
	Timeout  time.Duration `yaml:"timeout"`
	OpenAI   OpenAIConfig  `yaml:"openai"`
	Ollama   OllamaConfig  `yaml:"ollama"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

type OllamaConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// Load builds the config from defaults, then environment, then the YAML
// file at path (skipped silently when path is the default and the file
// does not exist; an explicit path that is missing is an error).
func Load(path string) (*Config, error) {
	cfg := fromEnv()

	explicit := path != "" && path != DefaultPath
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// fromEnv returns the defaults overlaid with PODSCOUT_* environment
// variables and the conventional provider key variables.
func fromEnv() *Config {
	return &Config{
		Namespace:  envString("PODSCOUT_NAMESPACE", "default"),
		Kubeconfig: os.Getenv("KUBECONFIG"),
		Timeout:    envDuration("PODSCOUT_TIMEOUT", 30*time.Second),
		LogTail:    envInt("PODSCOUT_LOG_TAIL", 200),
		LogLevel:   envString("PODSCOUT_LOG_LEVEL", "info"),
		LogFormat:  envString("PODSCOUT_LOG_FORMAT", "text"),
		Output:     envString("PODSCOUT_OUTPUT", "table"),
		AI: AIConfig{
			Provider: os.Getenv("PODSCOUT_AI_PROVIDER"),
			Timeout:  envDuration("PODSCOUT_AI_TIMEOUT", 60*time.Second),
			OpenAI: OpenAIConfig{
				APIKey:  os.Getenv("OPENAI_API_KEY"),
				BaseURL: envString("OPENAI_BASE_URL", "https://api.openai.com/v1"),
				Model:   envString("OPENAI_MODEL", "gpt-4o-mini"),
			},
			Ollama: OllamaConfig{
				BaseURL: envString("OLLAMA_BASE_URL", "http://localhost:11434"),
				Model:   envString("OLLAMA_MODEL", "llama3"),
			},
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

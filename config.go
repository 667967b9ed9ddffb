package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gamma-omg/resume-ranker/scoring"
)

const (
	StrategyLexical  = "lexical"
	StrategySemantic = "semantic"
	StrategyChroma   = "chroma"

	TransportSSE   = "sse"
	TransportStdio = "stdio"
)

type Config struct {
	LogFile          string `yaml:"log"`
	DocRoot          string `yaml:"doc_root"`
	ServerAddr       string `yaml:"server_addr"`
	Transport        string `yaml:"transport"`
	Strategy         string `yaml:"strategy"`
	KeywordGap       *bool  `yaml:"keyword_gap"`
	FillerWordsFile  string `yaml:"filler_words_file"`
	ReloadDebounceMs int    `yaml:"reload_debounce_ms"`
	ChromaAddr       string `yaml:"chroma_addr"`
	Output           string `yaml:"output"`
	OpenAI           *struct {
		Model  string `yaml:"model"`
		ApiKey string `yaml:"api_key"`
	} `yaml:"open_ai"`
	Gemini *struct {
		Model  string `yaml:"model"`
		ApiKey string `yaml:"api_key"`
	} `yaml:"gemini"`
}

func defaultConfig() *Config {
	return &Config{
		DocRoot:          ".",
		ServerAddr:       "localhost:8080",
		Transport:        TransportSSE,
		Strategy:         StrategyLexical,
		ReloadDebounceMs: 500,
		ChromaAddr:       "http://localhost:8000",
		Output:           scoring.Filename,
	}
}

func readConfig(cfgPath string) (*Config, error) {
	cfgFile, err := os.Open(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("unable to open config file: %w", err)
	}
	defer cfgFile.Close()

	cfg := defaultConfig()
	dec := yaml.NewDecoder(cfgFile)
	err = dec.Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to parse config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadConfig falls back to defaults when no config file exists at the
// default location.
func loadConfig(cfgPath string, explicit bool) (*Config, error) {
	if !explicit {
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			return defaultConfig(), nil
		}
	}

	return readConfig(cfgPath)
}

func (c *Config) validate() error {
	switch c.Strategy {
	case StrategyLexical, StrategySemantic, StrategyChroma:
	default:
		return fmt.Errorf("invalid strategy %q", c.Strategy)
	}

	switch c.Transport {
	case TransportSSE, TransportStdio:
	default:
		return fmt.Errorf("invalid transport %q", c.Transport)
	}

	if c.ReloadDebounceMs < 0 {
		return fmt.Errorf("invalid reload_debounce_ms %d", c.ReloadDebounceMs)
	}

	return nil
}

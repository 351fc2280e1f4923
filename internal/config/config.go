package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Tags   []string `yaml:"tags"`
	Fences struct {
		Imports struct {
			Start string `yaml:"start"`
			End   string `yaml:"end"`
		} `yaml:"imports"`
		Shared struct {
			Start string `yaml:"start"`
			End   string `yaml:"end"`
		} `yaml:"shared"`
	} `yaml:"fences"`
	Extensions []string `yaml:"extensions"`
	Cache      struct {
		Path string `yaml:"path"` // empty means in-memory only
	} `yaml:"cache"`
	Compiler struct {
		Command  []string `yaml:"command"` // external compiler invocation
		Generate string   `yaml:"generate"`
		CSS      string   `yaml:"css"`
	} `yaml:"compiler"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	var cfg Config
	cfg.Compiler.Generate = "dom"
	cfg.Compiler.CSS = "injected"
	return &cfg
}

// Load reads a YAML config file, after overlaying .env if present.
// Environment variables override file values.
func Load(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(file, cfg); err != nil {
		return nil, err
	}

	// 3. Override with environment variables if present
	if cache := os.Getenv("INLAY_CACHE_PATH"); cache != "" {
		cfg.Cache.Path = cache
	}
	if generate := os.Getenv("INLAY_GENERATE"); generate != "" {
		cfg.Compiler.Generate = generate
	}

	return cfg, nil
}

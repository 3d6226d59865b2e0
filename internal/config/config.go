// Package config loads the process-wide settings of the server.
//
// Settings are read once at startup and passed by value to whatever needs
// them. Sources, lowest to highest precedence:
//
//  1. built-in defaults
//  2. an optional YAML file (--config or XMIND_MCP_CONFIG)
//  3. a .env file in the working directory (or --env-file)
//  4. the process environment
//
// The outputPath and autoOpenFile variable names are kept as-is so that
// existing MCP client configurations keep working.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvOutputPath = "outputPath"
	EnvAutoOpen   = "autoOpenFile"
	EnvScratchDir = "XMIND_MCP_SCRATCH_DIR"
	EnvStructure  = "XMIND_MCP_STRUCTURE"
	EnvLogLevel   = "XMIND_MCP_LOG_LEVEL"
	EnvDataDir    = "XMIND_MCP_DATA_DIR"
	EnvHistory    = "XMIND_MCP_HISTORY"
	EnvConfigFile = "XMIND_MCP_CONFIG"
)

// DefaultEnvFile is read when LoadOptions.EnvFile is empty. A missing
// default file is not an error.
const DefaultEnvFile = ".env"

// Config holds every process-wide setting.
type Config struct {
	// OutputPath is the second-tier output base: a directory or a full
	// .xmind path. Empty means "use the scratch directory".
	OutputPath string `yaml:"output_path"`
	// AutoOpen opens each generated document in the desktop viewer.
	AutoOpen bool `yaml:"auto_open"`
	// ScratchDir is the last-resort output directory. Empty means
	// <os temp dir>/xmind-generator-mcp.
	ScratchDir string `yaml:"scratch_dir"`
	// Structure is the root topic layout, e.g. "map" or "logic-right".
	Structure string `yaml:"structure"`
	// LogLevel is a zap level name.
	LogLevel string `yaml:"log_level"`
	// DataDir holds the history database.
	DataDir string `yaml:"data_dir"`
	// History enables recording of generated documents.
	History bool `yaml:"history"`
}

// Default returns the built-in configuration.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		AutoOpen:  true,
		Structure: "map",
		LogLevel:  "info",
		DataDir:   filepath.Join(home, ".xmind-mcp"),
		History:   true,
	}
}

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// File is a YAML config file. Empty falls back to $XMIND_MCP_CONFIG;
	// if that is empty too, no file is read.
	File string
	// EnvFile is a dotenv file. Empty means DefaultEnvFile.
	EnvFile string
	// LookupEnv reads the process environment. Nil means os.LookupEnv.
	LookupEnv func(key string) (string, bool)
}

// Load builds a Config from all sources.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	file := opts.File
	if file == "" {
		file, _ = lookup(EnvConfigFile)
	}
	if file != "" {
		if err := loadYAML(file, &cfg); err != nil {
			return Config{}, err
		}
	}

	dotenv, err := readEnvFile(opts.EnvFile)
	if err != nil {
		return Config{}, err
	}

	env := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	applyEnv(&cfg, env)

	return cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func readEnvFile(path string) (map[string]string, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return values, nil
}

func applyEnv(cfg *Config, env func(string) (string, bool)) {
	if v, ok := env(EnvOutputPath); ok && v != "" {
		cfg.OutputPath = v
	}
	// Only the literal "false" disables auto-open.
	if v, ok := env(EnvAutoOpen); ok {
		cfg.AutoOpen = v != "false"
	}
	if v, ok := env(EnvScratchDir); ok && v != "" {
		cfg.ScratchDir = v
	}
	if v, ok := env(EnvStructure); ok && v != "" {
		cfg.Structure = v
	}
	if v, ok := env(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := env(EnvDataDir); ok && v != "" {
		cfg.DataDir = v
	}
	if v, ok := env(EnvHistory); ok {
		cfg.History = v != "false"
	}
}

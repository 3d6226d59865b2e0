package config

import (
	"os"
	"path/filepath"
	"testing"
)

// envMap returns a LookupEnv backed by a map.
func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// --- Default ---

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.AutoOpen {
		t.Error("AutoOpen should default to true")
	}
	if !cfg.History {
		t.Error("History should default to true")
	}
	if cfg.OutputPath != "" {
		t.Errorf("OutputPath = %q, want empty", cfg.OutputPath)
	}
	if cfg.Structure != "map" {
		t.Errorf("Structure = %q, want map", cfg.Structure)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if filepath.Base(cfg.DataDir) != ".xmind-mcp" {
		t.Errorf("DataDir = %q, want .../.xmind-mcp", cfg.DataDir)
	}
}

// --- Environment ---

func TestLoad_NoSources(t *testing.T) {
	cfg, err := Load(LoadOptions{LookupEnv: envMap(nil)})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoad_OutputPathFromEnv(t *testing.T) {
	cfg, err := Load(LoadOptions{LookupEnv: envMap(map[string]string{
		EnvOutputPath: "/cfg/dir",
	})})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputPath != "/cfg/dir" {
		t.Errorf("OutputPath = %q, want /cfg/dir", cfg.OutputPath)
	}
}

func TestLoad_AutoOpenValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"absent", nil, true},
		{"false", map[string]string{EnvAutoOpen: "false"}, false},
		{"true", map[string]string{EnvAutoOpen: "true"}, true},
		{"FALSE is not false", map[string]string{EnvAutoOpen: "FALSE"}, true},
		{"zero is not false", map[string]string{EnvAutoOpen: "0"}, true},
		{"empty", map[string]string{EnvAutoOpen: ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(LoadOptions{LookupEnv: envMap(tt.env)})
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.AutoOpen != tt.want {
				t.Errorf("AutoOpen = %v, want %v", cfg.AutoOpen, tt.want)
			}
		})
	}
}

func TestLoad_PrefixedVariables(t *testing.T) {
	cfg, err := Load(LoadOptions{LookupEnv: envMap(map[string]string{
		EnvScratchDir: "/scratch",
		EnvStructure:  "logic-right",
		EnvLogLevel:   "debug",
		EnvDataDir:    "/data",
		EnvHistory:    "false",
	})})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ScratchDir != "/scratch" {
		t.Errorf("ScratchDir = %q", cfg.ScratchDir)
	}
	if cfg.Structure != "logic-right" {
		t.Errorf("Structure = %q", cfg.Structure)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.DataDir != "/data" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.History {
		t.Error("History should be disabled")
	}
}

// --- YAML file ---

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "xmind.yaml", "output_path: /from/yaml\nauto_open: false\nstructure: org-chart\n")

	cfg, err := Load(LoadOptions{File: file, LookupEnv: envMap(nil)})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputPath != "/from/yaml" {
		t.Errorf("OutputPath = %q", cfg.OutputPath)
	}
	if cfg.AutoOpen {
		t.Error("AutoOpen should be false from yaml")
	}
	if cfg.Structure != "org-chart" {
		t.Errorf("Structure = %q", cfg.Structure)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, unset keys keep defaults", cfg.LogLevel)
	}
}

func TestLoad_YAMLFileFromEnv(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "c.yaml", "log_level: warn\n")

	cfg, err := Load(LoadOptions{LookupEnv: envMap(map[string]string{EnvConfigFile: file})})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
}

func TestLoad_MissingYAMLFile(t *testing.T) {
	_, err := Load(LoadOptions{File: filepath.Join(t.TempDir(), "nope.yaml"), LookupEnv: envMap(nil)})
	if err == nil {
		t.Fatal("expected error for an explicit missing config file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	file := writeFile(t, t.TempDir(), "bad.yaml", "output_path: [unclosed\n")
	if _, err := Load(LoadOptions{File: file, LookupEnv: envMap(nil)}); err == nil {
		t.Fatal("expected parse error")
	}
}

// --- .env file ---

func TestLoad_EnvFile(t *testing.T) {
	envFile := writeFile(t, t.TempDir(), ".env", "outputPath=/from/dotenv\nautoOpenFile=false\n")

	cfg, err := Load(LoadOptions{EnvFile: envFile, LookupEnv: envMap(nil)})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputPath != "/from/dotenv" {
		t.Errorf("OutputPath = %q", cfg.OutputPath)
	}
	if cfg.AutoOpen {
		t.Error("AutoOpen should be false from .env")
	}
}

func TestLoad_MissingExplicitEnvFile(t *testing.T) {
	_, err := Load(LoadOptions{EnvFile: filepath.Join(t.TempDir(), "missing.env"), LookupEnv: envMap(nil)})
	if err == nil {
		t.Fatal("expected error for an explicit missing env file")
	}
}

// --- Precedence ---

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "c.yaml", "output_path: /yaml\nstructure: tree-left\nlog_level: error\n")
	envFile := writeFile(t, dir, ".env", "outputPath=/dotenv\nXMIND_MCP_STRUCTURE=timeline\n")

	cfg, err := Load(LoadOptions{
		File:      file,
		EnvFile:   envFile,
		LookupEnv: envMap(map[string]string{EnvOutputPath: "/process"}),
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.OutputPath != "/process" {
		t.Errorf("OutputPath = %q, process env must win", cfg.OutputPath)
	}
	if cfg.Structure != "timeline" {
		t.Errorf("Structure = %q, .env must beat yaml", cfg.Structure)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q, yaml must beat defaults", cfg.LogLevel)
	}
}

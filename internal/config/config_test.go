package config

import (
	"os"
	"testing"
)

func clearConfigEnvVars() {
	for _, v := range []string{
		"SEMINDEX_WORKERS",
		"SEMINDEX_MAX_FILE_BYTES",
		"SEMINDEX_INCLUDE_TESTS",
		"SEMINDEX_MAX_DEPTH",
		"SEMINDEX_MAX_FILES",
	} {
		os.Unsetenv(v)
	}
}

func TestLoadConfig_DefaultValues(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	cfg := LoadConfig()
	if cfg.Workers != 0 {
		t.Errorf("Expected Workers 0, got %d", cfg.Workers)
	}
	if cfg.MaxFileBytes != 5*1024*1024 {
		t.Errorf("Expected MaxFileBytes 5MB, got %d", cfg.MaxFileBytes)
	}
	if cfg.IncludeTests {
		t.Errorf("Expected IncludeTests false by default")
	}
}

func TestLoadConfig_EnvironmentVariables(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("SEMINDEX_WORKERS", "4")
	os.Setenv("SEMINDEX_MAX_FILE_BYTES", "1024")
	os.Setenv("SEMINDEX_INCLUDE_TESTS", "true")
	os.Setenv("SEMINDEX_MAX_DEPTH", "3")
	os.Setenv("SEMINDEX_MAX_FILES", "100")

	cfg := LoadConfig()
	if cfg.Workers != 4 {
		t.Errorf("Expected Workers 4, got %d", cfg.Workers)
	}
	if cfg.MaxFileBytes != 1024 {
		t.Errorf("Expected MaxFileBytes 1024, got %d", cfg.MaxFileBytes)
	}
	if !cfg.IncludeTests {
		t.Errorf("Expected IncludeTests true")
	}
	if cfg.MaxDepth != 3 {
		t.Errorf("Expected MaxDepth 3, got %d", cfg.MaxDepth)
	}
	if cfg.MaxFiles != 100 {
		t.Errorf("Expected MaxFiles 100, got %d", cfg.MaxFiles)
	}
}

func TestLoadConfig_InvalidValuesFallBackToDefaults(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("SEMINDEX_WORKERS", "not-a-number")
	os.Setenv("SEMINDEX_MAX_FILE_BYTES", "abc")
	os.Setenv("SEMINDEX_INCLUDE_TESTS", "not-a-bool")

	cfg := LoadConfig()
	if cfg.Workers != 0 {
		t.Errorf("Expected Workers 0 (default), got %d", cfg.Workers)
	}
	if cfg.MaxFileBytes != 5*1024*1024 {
		t.Errorf("Expected MaxFileBytes default, got %d", cfg.MaxFileBytes)
	}
	if cfg.IncludeTests {
		t.Errorf("Expected IncludeTests false (default)")
	}
}

func TestLoadConfig_NegativeWorkersFallsBackToDefault(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("SEMINDEX_WORKERS", "-1")
	cfg := LoadConfig()
	if cfg.Workers != 0 {
		t.Errorf("Expected Workers 0 (default for negative), got %d", cfg.Workers)
	}
}

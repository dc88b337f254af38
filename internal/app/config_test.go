package app

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Debug {
		t.Error("debug should default to off")
	}
	if cfg.DataDir != "" {
		t.Errorf("DataDir = %q, want empty (storage default)", cfg.DataDir)
	}
	if cfg.ProjectID != "" {
		t.Errorf("ProjectID = %q, want empty", cfg.ProjectID)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SATCHEL_DEBUG", "true")
	t.Setenv("SATCHEL_DATA_DIR", "/tmp/satchel-data")
	t.Setenv("SATCHEL_PROJECT_ID", "proj_team")

	cfg := ConfigFromEnv()
	if !cfg.Debug {
		t.Error("SATCHEL_DEBUG=true should enable debug")
	}
	if cfg.DataDir != "/tmp/satchel-data" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.ProjectID != "proj_team" {
		t.Errorf("ProjectID = %q", cfg.ProjectID)
	}
}

func TestConfigFromEnv_InvalidDebugIgnored(t *testing.T) {
	t.Setenv("SATCHEL_DEBUG", "not-a-bool")

	cfg := ConfigFromEnv()
	if cfg.Debug {
		t.Error("unparseable SATCHEL_DEBUG should leave debug off")
	}
}

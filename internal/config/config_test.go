package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Principal != "local" {
		t.Errorf("Principal = %q, want %q", cfg.Principal, "local")
	}
	if cfg.DumpMaxChars != 8000 {
		t.Errorf("DumpMaxChars = %d, want 8000", cfg.DumpMaxChars)
	}
	if cfg.GeminiModel == "" {
		t.Error("GeminiModel should have a default")
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `{"principal": "hana", "dump_max_chars": 500, "disabled_tools": ["flow_quest"]}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Principal != "hana" {
		t.Errorf("Principal = %q, want %q", cfg.Principal, "hana")
	}
	if cfg.DumpMaxChars != 500 {
		t.Errorf("DumpMaxChars = %d, want 500", cfg.DumpMaxChars)
	}
	if cfg.WebPort != 8750 {
		t.Errorf("WebPort = %d, want default 8750", cfg.WebPort)
	}
	if len(cfg.DisabledTools) != 1 || cfg.DisabledTools[0] != "flow_quest" {
		t.Errorf("DisabledTools = %v", cfg.DisabledTools)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := Load(dir); err == nil {
		t.Error("Load should fail on malformed config.json")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	env := &Env{Principal: "jin", GeminiModel: "gemini-3-pro", GeminiBaseURL: "http://localhost:9999"}

	got := ApplyEnv(cfg, env)
	if got.Principal != "jin" {
		t.Errorf("Principal = %q, want env override", got.Principal)
	}
	if got.GeminiModel != "gemini-3-pro" {
		t.Errorf("GeminiModel = %q, want env override", got.GeminiModel)
	}
	if got.GeminiBaseURL != "http://localhost:9999" {
		t.Errorf("GeminiBaseURL = %q, want env override", got.GeminiBaseURL)
	}
}

func TestApplyEnv_EmptyValuesIgnored(t *testing.T) {
	cfg := DefaultConfig()
	got := ApplyEnv(cfg, &Env{Principal: "  "})
	if got.Principal != "local" {
		t.Errorf("Principal = %q, blank env values must not override", got.Principal)
	}
}

func TestMerge_SliceDeduplication(t *testing.T) {
	base := &Config{DisabledTools: []string{"flow_quest", "flow_badges"}}
	overlay := &Config{DisabledTools: []string{"flow_quest", " flow_move "}}

	got := Merge(base, overlay)
	want := []string{"flow_quest", "flow_badges", "flow_move"}
	if len(got.DisabledTools) != len(want) {
		t.Fatalf("DisabledTools = %v, want %v", got.DisabledTools, want)
	}
	for i, name := range want {
		if got.DisabledTools[i] != name {
			t.Errorf("DisabledTools[%d] = %q, want %q", i, got.DisabledTools[i], name)
		}
	}
}

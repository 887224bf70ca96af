package config

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/language"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Dir != "Journal" {
		t.Errorf("Dir = %q, want Journal", cfg.Dir)
	}
	if cfg.FileLayout != "2006-01-02" {
		t.Errorf("FileLayout = %q, want 2006-01-02", cfg.FileLayout)
	}
	if cfg.TimeLayout != "15:04" {
		t.Errorf("TimeLayout = %q, want 15:04", cfg.TimeLayout)
	}
	if cfg.FlagMarker != "#" {
		t.Errorf("FlagMarker = %q, want #", cfg.FlagMarker)
	}
	if cfg.SameDayWeekday {
		t.Error("SameDayWeekday = true, want false by default")
	}
	if got := cfg.LocaleTag(); got != language.English {
		t.Errorf("LocaleTag() = %v, want en", got)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `journal:
  dir: daily
  file_format: "2006/01/02"
time:
  layout: "3:04 PM"
locale: de
flag_marker: "@"
weekday:
  same_day: true
`
	if err := os.WriteFile(filepath.Join(dir, "journal.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Dir != "daily" {
		t.Errorf("Dir = %q, want daily", cfg.Dir)
	}
	if cfg.FileLayout != "2006/01/02" {
		t.Errorf("FileLayout = %q, want 2006/01/02", cfg.FileLayout)
	}
	if cfg.TimeLayout != "3:04 PM" {
		t.Errorf("TimeLayout = %q, want 3:04 PM", cfg.TimeLayout)
	}
	if cfg.FlagMarker != "@" {
		t.Errorf("FlagMarker = %q, want @", cfg.FlagMarker)
	}
	if !cfg.SameDayWeekday {
		t.Error("SameDayWeekday = false, want true")
	}
	if got := cfg.LocaleTag(); got != language.German {
		t.Errorf("LocaleTag() = %v, want de", got)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "journal.yaml"), []byte("journal: ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("Load() should fail on malformed YAML")
	}
}

func TestLocaleTag_Invalid(t *testing.T) {
	cfg := Config{Locale: "not a locale!!"}
	if got := cfg.LocaleTag(); got != language.Und {
		t.Errorf("LocaleTag() = %v, want Und", got)
	}
}

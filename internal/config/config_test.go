package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.ContentPath != "./words.json" {
		t.Errorf("ContentPath = %q, want ./words.json", cfg.ContentPath)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("DatabaseType = %q, want sqlite", cfg.DatabaseType)
	}
	if cfg.LevelUpEvery != 5 {
		t.Errorf("LevelUpEvery = %d, want 5", cfg.LevelUpEvery)
	}
	if cfg.RevealAfterFails != 3 {
		t.Errorf("RevealAfterFails = %d, want 3", cfg.RevealAfterFails)
	}
	if cfg.SessionLimit != 10*time.Minute {
		t.Errorf("SessionLimit = %s, want 10m", cfg.SessionLimit)
	}
	if cfg.StreakLookbackDays != 30 {
		t.Errorf("StreakLookbackDays = %d, want 30", cfg.StreakLookbackDays)
	}
	if cfg.SESFromEmail != "" {
		t.Errorf("SESFromEmail = %q, want empty (reports disabled)", cfg.SESFromEmail)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/echospell")
	t.Setenv("LEVEL_UP_EVERY", "3")
	t.Setenv("SESSION_LIMIT", "5m")
	t.Setenv("SES_FROM_EMAIL", "reports@example.com")

	cfg := Load()

	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %q, want 9090", cfg.ServerPort)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("DatabaseType = %q, want postgres", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != "postgres://localhost/echospell" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.LevelUpEvery != 3 {
		t.Errorf("LevelUpEvery = %d, want 3", cfg.LevelUpEvery)
	}
	if cfg.SessionLimit != 5*time.Minute {
		t.Errorf("SessionLimit = %s, want 5m", cfg.SessionLimit)
	}
	if cfg.SESFromEmail != "reports@example.com" {
		t.Errorf("SESFromEmail = %q", cfg.SESFromEmail)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("LEVEL_UP_EVERY", "lots")
	t.Setenv("SESSION_LIMIT", "soon")

	cfg := Load()

	if cfg.LevelUpEvery != 5 {
		t.Errorf("LevelUpEvery = %d, want default 5 for a bad value", cfg.LevelUpEvery)
	}
	if cfg.SessionLimit != 10*time.Minute {
		t.Errorf("SessionLimit = %s, want default 10m for a bad value", cfg.SessionLimit)
	}
}

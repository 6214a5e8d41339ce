package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	ContentPath     string
	ProgressPath    string
	StaticFilesPath string

	// Attempt archive database (sqlite, postgres or mysql)
	DatabaseType string
	DatabasePath string
	DatabaseURL  string

	// Progression rules
	LevelUpEvery     int
	RevealAfterFails int
	XPPerCorrect     int
	BadgeEveryXP     int
	StartingHearts   int
	HeartRegenEvery  int
	SessionLimit     time.Duration

	// Stats windows
	StreakLookbackDays int
	RecentDays         int

	// Weekly report email (SES)
	AWSRegion     string
	SESFromEmail  string
	SESFromName   string
	ReportToEmail string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is honoured if present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		ContentPath:     getEnv("CONTENT_PATH", "./words.json"),
		ProgressPath:    getEnv("PROGRESS_PATH", "./progress.json"),
		StaticFilesPath: getEnv("STATIC_PATH", "./static"),

		DatabaseType: getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath: getEnv("DB_PATH", "./echospell.db"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),

		LevelUpEvery:     getEnvInt("LEVEL_UP_EVERY", 5),
		RevealAfterFails: getEnvInt("REVEAL_AFTER_FAILS", 3),
		XPPerCorrect:     getEnvInt("XP_PER_CORRECT", 10),
		BadgeEveryXP:     getEnvInt("BADGE_EVERY_XP", 50),
		StartingHearts:   getEnvInt("STARTING_HEARTS", 0),
		HeartRegenEvery:  getEnvInt("HEART_REGEN_EVERY", 0),
		SessionLimit:     getEnvDuration("SESSION_LIMIT", 10*time.Minute),

		StreakLookbackDays: getEnvInt("STREAK_LOOKBACK_DAYS", 30),
		RecentDays:         getEnvInt("RECENT_DAYS", 7),

		AWSRegion:     getEnv("AWS_REGION", "eu-west-1"),
		SESFromEmail:  getEnv("SES_FROM_EMAIL", ""),
		SESFromName:   getEnv("SES_FROM_NAME", "EchoSpell"),
		ReportToEmail: getEnv("REPORT_TO_EMAIL", ""),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid value for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

// getEnvDuration reads a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid value for %s: %q, using default %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

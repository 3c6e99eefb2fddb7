// Package config reads the logging facility's environment configuration.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Defaults applied when an environment variable is absent.
const (
	DefaultFolderPath  = "./logs"
	DefaultMaxFileSize = 150 * 1024 * 1024 // 150MB
	DefaultBackupCount = 3
	DefaultEnvironment = "development"
)

// Settings holds the raw environment-derived configuration. Level names are
// kept as strings here; the facade parses and validates them.
type Settings struct {
	Enabled           bool
	FolderPath        string
	MaxFileSize       int64
	BackupCount       int
	ConsoleLevel      string
	FileLevel         string
	ConsoleFormat     string
	ConsoleDateFormat string
	FileDateFormat    string
	Environment       string
}

// Load reads configuration from environment variables with defaults.
// LOGGING_ENABLED is the process-wide escape hatch: when false the facility
// degrades to direct console printing and never creates a file sink.
func Load() Settings {
	return Settings{
		Enabled:           getenvBool("LOGGING_ENABLED", true),
		FolderPath:        getenv("DOCATLAS_LOG_DIR", DefaultFolderPath),
		MaxFileSize:       getenvInt64("DOCATLAS_LOG_MAX_SIZE", DefaultMaxFileSize),
		BackupCount:       getenvInt("DOCATLAS_LOG_BACKUPS", DefaultBackupCount),
		ConsoleLevel:      getenv("DOCATLAS_CONSOLE_LEVEL", "INFO"),
		FileLevel:         getenv("DOCATLAS_FILE_LEVEL", "DEBUG"),
		ConsoleFormat:     os.Getenv("DOCATLAS_CONSOLE_FORMAT"),
		ConsoleDateFormat: os.Getenv("DOCATLAS_CONSOLE_DATE_FORMAT"),
		FileDateFormat:    os.Getenv("DOCATLAS_FILE_DATE_FORMAT"),
		Environment:       getenv("DOCATLAS_ENV", DefaultEnvironment),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

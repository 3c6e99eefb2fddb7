package atlaslog

import (
	"encoding/json"
	"fmt"

	"github.com/lorenzo-mora/DocAtlas/internal/config"
	"github.com/lorenzo-mora/DocAtlas/internal/format"
)

// Config holds every constructor parameter of a logger handle. The registry
// fingerprint is derived from all of its fields, so two structurally equal
// configs resolve to the same handle.
type Config struct {
	// Enabled is the process-wide escape hatch. When false the handle
	// degrades to direct console printing and never creates a file sink.
	Enabled bool

	FolderPath  string // directory for log files, created at Setup
	MaxFileSize int64  // bytes before the active file rotates
	BackupCount int    // archived files retained, oldest discarded first

	ConsoleLevel Level
	FileLevel    Level

	ConsoleFormat     string // console line template, e.g. "{time} | {level} : {message}"
	ConsoleDateFormat string // time layout for the console line
	FileDateFormat    string // time layout for file records
	Environment       string // environment tag stamped on every file record
}

// DefaultConfig returns the configuration the application ships with:
// ./logs, 150MB files, 3 backups, INFO console, DEBUG file.
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		FolderPath:   config.DefaultFolderPath,
		MaxFileSize:  config.DefaultMaxFileSize,
		BackupCount:  config.DefaultBackupCount,
		ConsoleLevel: Info,
		FileLevel:    Debug,
		Environment:  config.DefaultEnvironment,
	}
}

// ConfigFromEnv builds a Config from environment variables. Level names that
// do not parse are an error (a misconfigured logger must fail loudly, not run
// silently with surprise thresholds).
func ConfigFromEnv() (Config, error) {
	s := config.Load()

	consoleLevel, err := ParseLevel(s.ConsoleLevel)
	if err != nil {
		return Config{}, fmt.Errorf("console level: %w", err)
	}
	fileLevel, err := ParseLevel(s.FileLevel)
	if err != nil {
		return Config{}, fmt.Errorf("file level: %w", err)
	}

	return Config{
		Enabled:           s.Enabled,
		FolderPath:        s.FolderPath,
		MaxFileSize:       s.MaxFileSize,
		BackupCount:       s.BackupCount,
		ConsoleLevel:      consoleLevel,
		FileLevel:         fileLevel,
		ConsoleFormat:     s.ConsoleFormat,
		ConsoleDateFormat: s.ConsoleDateFormat,
		FileDateFormat:    s.FileDateFormat,
		Environment:       s.Environment,
	}, nil
}

// withDefaults fills zero-valued fields so that "default" and "explicitly
// default" configs share one fingerprint.
func (c Config) withDefaults() Config {
	if c.FolderPath == "" {
		c.FolderPath = config.DefaultFolderPath
	}
	if c.MaxFileSize == 0 {
		c.MaxFileSize = config.DefaultMaxFileSize
	}
	if c.BackupCount == 0 {
		c.BackupCount = config.DefaultBackupCount
	}
	if c.ConsoleLevel == 0 {
		c.ConsoleLevel = Info
	}
	if c.FileLevel == 0 {
		c.FileLevel = Debug
	}
	if c.ConsoleFormat == "" {
		c.ConsoleFormat = format.DefaultConsoleTemplate
	}
	if c.ConsoleDateFormat == "" {
		c.ConsoleDateFormat = format.DefaultTimeLayout
	}
	if c.FileDateFormat == "" {
		c.FileDateFormat = format.DefaultTimeLayout
	}
	if c.Environment == "" {
		c.Environment = config.DefaultEnvironment
	}
	return c
}

// validate rejects parameter values the sinks cannot honor.
func (c Config) validate() error {
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("max file size must be positive, got %d", c.MaxFileSize)
	}
	if c.BackupCount <= 0 {
		return fmt.Errorf("backup count must be positive, got %d", c.BackupCount)
	}
	if !c.ConsoleLevel.Valid() {
		return fmt.Errorf("console level: %w: %d", ErrInvalidLevel, int(c.ConsoleLevel))
	}
	if !c.FileLevel.Valid() {
		return fmt.Errorf("file level: %w: %d", ErrInvalidLevel, int(c.FileLevel))
	}
	return nil
}

// fingerprint returns the canonical registry key for this config: the JSON
// encoding of the defaults-applied struct. Field order is fixed by the
// struct, so structurally equal configs always produce the same key.
func (c Config) fingerprint() string {
	data, err := json.Marshal(c.withDefaults())
	if err != nil {
		// Config contains only plain scalars; Marshal cannot fail.
		return fmt.Sprintf("%+v", c.withDefaults())
	}
	return string(data)
}

// Package config loads application settings from an optional chatdigest.toml,
// CHATDIGEST_* environment variables and built-in defaults, using Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata" // timezone names resolve without system zoneinfo

	"github.com/spf13/viper"
)

// FileName is the settings file looked up in the working directory and in
// ~/.chatdigest when no explicit path is given.
const FileName = "chatdigest"

// EnvPrefix prefixes every environment override, e.g. CHATDIGEST_OUTPUT_DIR.
const EnvPrefix = "CHATDIGEST"

// Settings is the resolved application configuration.
type Settings struct {
	// Database is the chat message SQLite database, opened read-only.
	Database string

	// SummariesDir holds the summary_*.md documents.
	SummariesDir string

	// OutputDir receives the generated artifacts.
	OutputDir string

	// GroupsFile is the per-group display configuration (TOML).
	GroupsFile string

	// DataDir holds the application's own database (highlights).
	DataDir string

	// Timezone names the location used for displayed dates. Empty means local.
	Timezone string

	Server ServerSettings

	// ConfigFile is the settings file that was read, empty if none.
	ConfigFile string
}

// ServerSettings configures the viewer HTTP server.
type ServerSettings struct {
	Addr string

	// PasswordHash is the hex SHA-256 of the viewer password. Empty disables the gate.
	PasswordHash string

	// SessionSecret signs session tokens.
	SessionSecret string

	SessionTTL time.Duration
}

// Defaults.
const (
	DefaultDatabase      = "messages.db"
	DefaultSummariesDir  = "."
	DefaultOutputDir     = "data"
	DefaultGroupsFile    = "groups.toml"
	DefaultAddr          = "127.0.0.1:3000"
	DefaultSessionTTL    = 7 * 24 * time.Hour
	DefaultSessionSecret = "chatdigest-session-secret-change-me"
)

// Load reads settings. When path is non-empty that file must exist; otherwise
// chatdigest.toml is searched in the working directory and ~/.chatdigest and
// may be absent.
func Load(path string) (*Settings, error) {
	v := viper.New()

	v.SetDefault("database", DefaultDatabase)
	v.SetDefault("summaries_dir", DefaultSummariesDir)
	v.SetDefault("output_dir", DefaultOutputDir)
	v.SetDefault("groups_file", DefaultGroupsFile)
	v.SetDefault("data_dir", "")
	v.SetDefault("timezone", "")
	v.SetDefault("server.addr", DefaultAddr)
	v.SetDefault("server.password_hash", "")
	v.SetDefault("server.session_secret", DefaultSessionSecret)
	v.SetDefault("server.session_ttl", DefaultSessionTTL)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Names used by the collector scripts.
	_ = v.BindEnv("database", EnvPrefix+"_DATABASE", "SIGNAL_DB")
	_ = v.BindEnv("groups_file", EnvPrefix+"_GROUPS_FILE", "SIGNAL_CONFIG")
	_ = v.BindEnv("server.session_secret", EnvPrefix+"_SERVER_SESSION_SECRET", "SESSION_SECRET")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".chatdigest"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading settings: %w", err)
		}
	}

	s := &Settings{
		Database:     v.GetString("database"),
		SummariesDir: v.GetString("summaries_dir"),
		OutputDir:    v.GetString("output_dir"),
		GroupsFile:   v.GetString("groups_file"),
		DataDir:      v.GetString("data_dir"),
		Timezone:     v.GetString("timezone"),
		Server: ServerSettings{
			Addr:          v.GetString("server.addr"),
			PasswordHash:  v.GetString("server.password_hash"),
			SessionSecret: v.GetString("server.session_secret"),
			SessionTTL:    v.GetDuration("server.session_ttl"),
		},
		ConfigFile: v.ConfigFileUsed(),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks values that cannot be defaulted.
func (s *Settings) Validate() error {
	if s.OutputDir == "" {
		return errors.New("output_dir must not be empty")
	}
	if s.Server.SessionTTL <= 0 {
		return fmt.Errorf("server.session_ttl must be positive, got %s", s.Server.SessionTTL)
	}
	if _, err := s.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone. Empty or "Local" is the system zone.
func (s *Settings) Location() (*time.Location, error) {
	if s.Timezone == "" || s.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

package config

import (
	"fmt"
	"time"

	"github.com/2beens/intervals-sync/internal/intervals"
	"github.com/2beens/intervals-sync/internal/publish"
)

// Destination says where the sync run delivers its documents.
type Destination string

const (
	DestinationLocal       Destination = "local"
	DestinationGoogleDrive Destination = "gdrive"
	DestinationGitHub      Destination = "github"
)

type Config struct {
	// intervals.icu
	AthleteID    string `koanf:"athlete_id"`
	IntervalsKey string `koanf:"intervals_key"`
	APIBaseURL   string `koanf:"api_base_url"`
	Days         int    `koanf:"days"`

	// anonymization
	Anonymize        bool `koanf:"anonymize"`
	AnonymizeEvents  bool `koanf:"anonymize_events"`
	KeepVirtualNames bool `koanf:"keep_virtual_names"`

	// github destination
	GitHubToken      string `koanf:"github_token"`
	GitHubRepo       string `koanf:"github_repo"`
	GitHubBranch     string `koanf:"github_branch"`
	GitHubAPIBaseURL string `koanf:"github_api_base_url"`

	// google drive destination
	DriveCredentialsFile string `koanf:"gdrive_credentials"`
	DriveFolder          string `koanf:"gdrive_folder"`

	// local destination
	OutputDir string `koanf:"output"`

	Timeout time.Duration `koanf:"timeout"`

	// logging
	LogLevel      string `koanf:"log_level"`
	LogsPath      string `koanf:"logs_path"`
	LogToStdout   bool   `koanf:"log_to_stdout"`
	LogFormatJSON bool   `koanf:"log_format_json"`
	Environment   string `koanf:"environment"`
	SentryDSN     string `koanf:"sentry_dsn"`

	// telemetry
	HoneycombEnabled bool   `koanf:"honeycomb_enabled"`
	PushgatewayURL   string `koanf:"pushgateway_url"`
}

func New() *Config {
	return &Config{
		APIBaseURL:       intervals.DefaultBaseURL,
		Days:             7,
		Anonymize:        true,
		KeepVirtualNames: true,
		GitHubBranch:     "main",
		GitHubAPIBaseURL: publish.DefaultGitHubAPIBaseURL,
		Timeout:          30 * time.Second,
		LogLevel:         "info",
		LogToStdout:      true,
		Environment:      "production",
	}
}

// Destination resolves the delivery target: an explicit output directory
// wins, then Google Drive when credentials are configured, otherwise
// GitHub.
func (c *Config) Destination() Destination {
	if c.OutputDir != "" {
		return DestinationLocal
	}
	if c.DriveCredentialsFile != "" {
		return DestinationGoogleDrive
	}
	return DestinationGitHub
}

// Validate checks required credentials before any network call is made.
// Only the resolved destination's credentials are required.
func (c *Config) Validate() error {
	if c.AthleteID == "" {
		return ErrMissingAthleteID
	}
	if c.IntervalsKey == "" {
		return ErrMissingAPIKey
	}
	if c.Days <= 0 {
		return fmt.Errorf("days must be positive, got: %d", c.Days)
	}

	switch c.Destination() {
	case DestinationGoogleDrive:
		if c.DriveFolder == "" {
			return ErrMissingDriveFolder
		}
	case DestinationGitHub:
		if c.GitHubToken == "" {
			return ErrMissingGitHubToken
		}
		if c.GitHubRepo == "" {
			return ErrMissingGitHubRepo
		}
	}

	return nil
}

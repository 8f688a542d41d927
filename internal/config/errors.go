package config

import "errors"

// Validation sentinels, callers match them with errors.Is.
var (
	ErrMissingAthleteID   = errors.New("athlete id is required")
	ErrMissingAPIKey      = errors.New("intervals api key is required")
	ErrMissingGitHubToken = errors.New("github token is required")
	ErrMissingGitHubRepo  = errors.New("github repo is required")
	ErrMissingDriveFolder = errors.New("google drive folder name is required")
)

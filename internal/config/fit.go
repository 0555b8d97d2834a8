package config

import (
	"os"
	"time"
)

const (
	defaultStepStreamMatch  = "derived:com.google.step_count.delta"
	defaultSleepStreamMatch = "derived:com.google.sleep.segment"
	defaultDataSourceTTL    = time.Hour
)

type FitConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	// TokenURL overrides the Google OAuth token endpoint.
	TokenURL string
	// Endpoint overrides the Fitness API base path. Used by local stubs.
	Endpoint string
	// StepStreamMatch and SleepStreamMatch select the data stream whose id
	// contains the given substring.
	StepStreamMatch  string
	SleepStreamMatch string
	DataSourceTTL    time.Duration
}

func LoadFitConfig() *FitConfig {
	return &FitConfig{
		ClientID:         os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret:     os.Getenv("GOOGLE_CLIENT_SECRET"),
		RefreshToken:     os.Getenv("GOOGLE_REFRESH_TOKEN"),
		TokenURL:         os.Getenv("GOOGLE_TOKEN_URL"),
		Endpoint:         os.Getenv("GOOGLE_FIT_ENDPOINT"),
		StepStreamMatch:  getEnvOrDefault("GOOGLE_FIT_STEP_STREAM", defaultStepStreamMatch),
		SleepStreamMatch: getEnvOrDefault("GOOGLE_FIT_SLEEP_STREAM", defaultSleepStreamMatch),
		DataSourceTTL:    envSeconds("GOOGLE_FIT_DATA_SOURCE_TTL_SECONDS", defaultDataSourceTTL),
	}
}

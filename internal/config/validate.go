package config

import (
	"errors"
	"fmt"
)

// ValidateForRun checks the settings a wake alert check cannot run without.
func ValidateForRun(cfg *Config) error {
	var errs []error

	if err := cfg.Redis.Validate(); err != nil {
		errs = append(errs, err)
	}
	if cfg.Fit.ClientID == "" {
		errs = append(errs, errors.New("GOOGLE_CLIENT_ID is required"))
	}
	if cfg.Fit.ClientSecret == "" {
		errs = append(errs, errors.New("GOOGLE_CLIENT_SECRET is required"))
	}
	if cfg.Fit.RefreshToken == "" {
		errs = append(errs, errors.New("GOOGLE_REFRESH_TOKEN is required"))
	}
	if cfg.Pushbullet.Token == "" {
		errs = append(errs, errors.New("PB_TOKEN is required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %w", errors.Join(errs...))
	}

	return nil
}

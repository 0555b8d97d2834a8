package config

import (
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/wake-walk-alert/internal/domain"
)

func TestLoadAlertConfig_Defaults(t *testing.T) {
	cfg, err := LoadAlertConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.StepThreshold != 1000 {
		t.Errorf("StepThreshold: got %d, want 1000", cfg.StepThreshold)
	}
	if cfg.MergeGap != 600*time.Second {
		t.Errorf("MergeGap: got %v, want 600s", cfg.MergeGap)
	}
	if cfg.MinSegment != 1800*time.Second {
		t.Errorf("MinSegment: got %v, want 1800s", cfg.MinSegment)
	}
	if cfg.Window != 30*time.Minute {
		t.Errorf("Window: got %v, want 30m", cfg.Window)
	}
	if cfg.SleepLookback != 24*time.Hour {
		t.Errorf("SleepLookback: got %v, want 24h", cfg.SleepLookback)
	}
	if cfg.DisplayOffsetHours != 9 {
		t.Errorf("DisplayOffsetHours: got %d, want 9", cfg.DisplayOffsetHours)
	}
	if len(cfg.SleepStages) != len(domain.DefaultSleepStages) {
		t.Errorf("SleepStages: got %v, want %v", cfg.SleepStages, domain.DefaultSleepStages)
	}
}

func TestLoadAlertConfig_FromEnv(t *testing.T) {
	t.Setenv(stepThresholdEnv, "1500")
	t.Setenv(mergeGapSecondsEnv, "300")
	t.Setenv(minSegmentSecondsEnv, "3600")
	t.Setenv(windowMinutesEnv, "45")
	t.Setenv(displayUTCOffsetEnv, "-5")
	t.Setenv(sleepStagesEnv, "deep, REM")

	cfg, err := LoadAlertConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.StepThreshold != 1500 {
		t.Errorf("StepThreshold: got %d, want 1500", cfg.StepThreshold)
	}
	if cfg.MergeGap != 300*time.Second {
		t.Errorf("MergeGap: got %v, want 300s", cfg.MergeGap)
	}
	if cfg.MinSegment != time.Hour {
		t.Errorf("MinSegment: got %v, want 1h", cfg.MinSegment)
	}
	if cfg.Window != 45*time.Minute {
		t.Errorf("Window: got %v, want 45m", cfg.Window)
	}
	if len(cfg.SleepStages) != 2 || cfg.SleepStages[0] != domain.SleepStageDeep || cfg.SleepStages[1] != domain.SleepStageREM {
		t.Errorf("SleepStages: got %v", cfg.SleepStages)
	}

	_, offset := time.Date(2025, 1, 1, 0, 0, 0, 0, cfg.DisplayLocation()).Zone()
	if offset != -5*60*60 {
		t.Errorf("display offset: got %d, want %d", offset, -5*60*60)
	}
}

func TestLoadAlertConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv(stepThresholdEnv, "lots")
	t.Setenv(mergeGapSecondsEnv, "-1")
	t.Setenv(windowMinutesEnv, "0")

	cfg, err := LoadAlertConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.StepThreshold != defaultStepThreshold {
		t.Errorf("StepThreshold: got %d, want default", cfg.StepThreshold)
	}
	if cfg.MergeGap != defaultMergeGap {
		t.Errorf("MergeGap: got %v, want default", cfg.MergeGap)
	}
	if cfg.Window != defaultWindowMinutes*time.Minute {
		t.Errorf("Window: got %v, want default", cfg.Window)
	}
}

func TestLoadAlertConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		value   string
		wantErr error
	}{
		{name: "offset out of range", env: displayUTCOffsetEnv, value: "15", wantErr: ErrInvalidDisplayOffset},
		{name: "offset not a number", env: displayUTCOffsetEnv, value: "JST", wantErr: ErrInvalidDisplayOffset},
		{name: "unknown sleep stage", env: sleepStagesEnv, value: "light,nap", wantErr: ErrInvalidSleepStage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)

			_, err := LoadAlertConfig()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateForRun(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Redis:      &RedisConfig{Addr: "localhost:6379"},
			Fit:        &FitConfig{ClientID: "id", ClientSecret: "secret", RefreshToken: "refresh"},
			Pushbullet: &PushbulletConfig{Token: "pb"},
		}
	}

	if err := ValidateForRun(valid()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := valid()
	cfg.Fit.RefreshToken = ""
	cfg.Pushbullet.Token = ""
	if err := ValidateForRun(cfg); err == nil {
		t.Fatal("expected error for missing credentials")
	}

	cfg = valid()
	cfg.Redis = nil
	if err := ValidateForRun(cfg); !errors.Is(err, ErrRedisAddrMissing) {
		t.Errorf("got %v, want %v", err, ErrRedisAddrMissing)
	}
}

func TestLoad_PortDefault(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port: got %q, want 8080", cfg.Port)
	}
	if cfg.Redis.KeyPrefix != defaultKeyPrefix {
		t.Errorf("KeyPrefix: got %q, want %q", cfg.Redis.KeyPrefix, defaultKeyPrefix)
	}
	if cfg.Fit.StepStreamMatch != defaultStepStreamMatch {
		t.Errorf("StepStreamMatch: got %q", cfg.Fit.StepStreamMatch)
	}
}

func TestInvalidRedisDB(t *testing.T) {
	t.Setenv(redisDBEnv, "zero")

	if _, err := LoadRedisConfig(); !errors.Is(err, ErrInvalidRedisDB) {
		t.Errorf("got %v, want %v", err, ErrInvalidRedisDB)
	}
}

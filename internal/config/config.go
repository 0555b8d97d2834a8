package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port       string
	LogLevel   slog.Level
	TaskQueue  TaskQueueConfig
	Redis      *RedisConfig
	Alert      *AlertConfig
	Fit        *FitConfig
	Pushbullet *PushbulletConfig
	Webhook    *WebhookConfig
}

type TaskQueueConfig struct {
	GCloudProjectID  string
	GCloudLocationID string
	GCloudQueueID    string
	GCloudTargetURL  string
	// GCloudServiceAccount signs the OIDC token Cloud Tasks attaches to the
	// worker request. Empty disables OIDC.
	GCloudServiceAccount string
}

type WebhookConfig struct {
	// RatePerMinute caps webhook triggers. Zero disables the limit.
	RatePerMinute int
	Burst         int
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	alertConfig, err := LoadAlertConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:     port,
		LogLevel: parseLogLevel(os.Getenv("LOG_LEVEL")),
		TaskQueue: TaskQueueConfig{
			GCloudProjectID:      os.Getenv("GCLOUD_PROJECT_ID"),
			GCloudLocationID:     os.Getenv("GCLOUD_LOCATION_ID"),
			GCloudQueueID:        os.Getenv("GCLOUD_QUEUE_ID"),
			GCloudTargetURL:      os.Getenv("GCLOUD_TARGET_URL"),
			GCloudServiceAccount: os.Getenv("GCLOUD_TASKS_SERVICE_ACCOUNT"),
		},
		Redis:      redisConfig,
		Alert:      alertConfig,
		Fit:        LoadFitConfig(),
		Pushbullet: LoadPushbulletConfig(),
		Webhook: &WebhookConfig{
			RatePerMinute: envPositiveInt("WEBHOOK_RATE_PER_MINUTE", 6),
			Burst:         envPositiveInt("WEBHOOK_BURST", 2),
		},
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func envPositiveInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return def
}

// envSeconds reads a whole number of seconds. Negative or unparsable values
// fall back to the default.
func envSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			return time.Duration(parsed) * time.Second
		}
	}
	return def
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

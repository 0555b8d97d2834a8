package config

import (
	"os"
	"time"
)

const defaultPushbulletBaseURL = "https://api.pushbullet.com"

type PushbulletConfig struct {
	Token   string
	BaseURL string
	Timeout time.Duration
}

func LoadPushbulletConfig() *PushbulletConfig {
	return &PushbulletConfig{
		Token:   os.Getenv("PB_TOKEN"),
		BaseURL: getEnvOrDefault("PUSHBULLET_BASE_URL", defaultPushbulletBaseURL),
		Timeout: envSeconds("PUSHBULLET_TIMEOUT_SECONDS", 10*time.Second),
	}
}

package config

import "errors"

var (
	ErrRedisAddrMissing     = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB       = errors.New("REDIS_DB must be a valid integer")
	ErrInvalidDisplayOffset = errors.New("DISPLAY_UTC_OFFSET_HOURS must be an integer between -12 and 14")
	ErrInvalidSleepStage    = errors.New("SLEEP_STAGES contains an unknown stage")
)

package module

import (
	"time"

	"lockbox/internal/platform/config"
)

// Options holds configuration settings for the locks module
type Options struct {
	CodeLength int
	LockTTL    time.Duration
	UnlockTTL  time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	lf := cfg.Prefix("CORE_LOCKS_")
	return Options{
		CodeLength: lf.MayInt("CODE_LENGTH", 32),
		LockTTL:    lf.MayDuration("LOCK_TTL", time.Hour),
		UnlockTTL:  lf.MayDuration("UNLOCK_TTL", 24*time.Hour),
	}
}

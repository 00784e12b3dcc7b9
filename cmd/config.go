package cmd

import "time"

// Config carries everything the process needs from its environment.
// Defaults for the tunables live in cmd/app where the env is parsed.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// CodeTTL is how long a handoff code stays verifiable.
	CodeTTL time.Duration
	// CodeMaxAttempts is the wrong-guess ceiling per code.
	CodeMaxAttempts int
	// DeliveryFee is the per-delivery courier credit in minor currency units.
	DeliveryFee int64
	// CodeCleanupSpec is the six-field cron expression for the purge job.
	CodeCleanupSpec string
}

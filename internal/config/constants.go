package config

import "time"

const (
	// Rate limit for incoming messages (per chat, per minute)
	RateLimitPerMinute = 20

	// Telegram limits
	MaxTelegramMessageLen = 4096

	// Status server shutdown grace period
	ServerShutdownTimeout = 5 * time.Second

	// Withdrawal review window shown to users
	PayoutProcessingNote = "24-48 hours"
)

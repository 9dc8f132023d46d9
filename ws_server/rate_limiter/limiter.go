package ratelimiter

import (
	"time"
)

// Default messages per time window the server expects from a frontend user.
// Pointer moves are streamed, so this is far above a chat client's rate.
const (
	DefaultMaxMessages   = 60
	slidingWindowSeconds = 1
)

type RateLimiter struct {
	// Messages allowed per window
	MaxMessages int
	// Track the number of messages received in the current time window
	MessageCount int
	// Defines the start of the current time window
	LastReset time.Time
}

func NewRateLimiter(maxMessages int) *RateLimiter {
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessages
	}
	return &RateLimiter{
		MaxMessages: maxMessages,
		LastReset:   time.Now(),
	}
}

// Returns if the user is under the rate limit and allowed to send messages to the server
func (rl *RateLimiter) AllowMessage() bool {
	return rl.allowAt(time.Now())
}

func (rl *RateLimiter) allowAt(now time.Time) bool {
	// Reset rate limiter every slidingWindowSeconds
	if now.Sub(rl.LastReset) > slidingWindowSeconds*time.Second {
		rl.MessageCount = 0
		rl.LastReset = now
	}

	if rl.MessageCount >= rl.MaxMessages {
		return false
	}

	// User did not go over rate limit
	rl.MessageCount += 1
	return true
}

// Reset the rate limiter.
func (rl *RateLimiter) Reset() {
	rl.MessageCount = 0
	rl.LastReset = time.Now()
}

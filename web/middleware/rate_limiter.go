package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RateLimiterConfig holds configuration for rate limiting
type RateLimiterConfig struct {
	MutationsPerMinute int           // Max graph mutations per session per minute
	ImportsPerHour     int           // Max graph imports per session per hour
	BurstSize          int           // Allow burst of N requests
	CleanupInterval    time.Duration // How often to clean up old entries
}

// TokenBucket implements a token bucket rate limiter
type TokenBucket struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	mu         sync.Mutex
}

// NewTokenBucket creates a new token bucket
func NewTokenBucket(maxTokens float64, refillRate float64) *TokenBucket {
	return &TokenBucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// Allow checks if a request can proceed and consumes a token if so
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()

	// Refill tokens based on elapsed time
	tb.tokens = min(tb.maxTokens, tb.tokens+(elapsed*tb.refillRate))
	tb.lastRefill = now

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true
	}
	return false
}

// Remaining returns the number of tokens remaining
func (tb *TokenBucket) Remaining() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tokens := min(tb.maxTokens, tb.tokens+(elapsed*tb.refillRate))
	return int(tokens)
}

// SessionRateLimiter manages rate limits per editor session
type SessionRateLimiter struct {
	config         RateLimiterConfig
	mutationLimits map[uuid.UUID]*TokenBucket
	importLimits   map[uuid.UUID]*TokenBucket
	mu             sync.RWMutex
	logger         *zap.Logger
	stopCleanup    chan struct{}
}

// NewSessionRateLimiter creates a new session-based rate limiter
func NewSessionRateLimiter(config RateLimiterConfig, logger *zap.Logger) *SessionRateLimiter {
	limiter := &SessionRateLimiter{
		config:         config,
		mutationLimits: make(map[uuid.UUID]*TokenBucket),
		importLimits:   make(map[uuid.UUID]*TokenBucket),
		logger:         logger,
		stopCleanup:    make(chan struct{}),
	}

	go limiter.cleanupRoutine()

	return limiter
}

// cleanupRoutine periodically removes stale entries
func (srl *SessionRateLimiter) cleanupRoutine() {
	ticker := time.NewTicker(srl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			srl.cleanup()
		case <-srl.stopCleanup:
			return
		}
	}
}

// cleanup drops all buckets once the map grows past the session store's
// plausible size. Sessions are evicted separately; losing a bucket only
// grants a fresh burst.
func (srl *SessionRateLimiter) cleanup() {
	srl.mu.Lock()
	defer srl.mu.Unlock()

	if len(srl.mutationLimits) > 1000 {
		srl.logger.Info("Cleaning up rate limiter cache", zap.Int("mutation_limiters", len(srl.mutationLimits)))
		srl.mutationLimits = make(map[uuid.UUID]*TokenBucket)
		srl.importLimits = make(map[uuid.UUID]*TokenBucket)
	}
}

// Stop stops the cleanup routine
func (srl *SessionRateLimiter) Stop() {
	close(srl.stopCleanup)
}

// AllowMutation checks if a graph mutation can proceed for the given session
func (srl *SessionRateLimiter) AllowMutation(sessionID uuid.UUID) bool {
	srl.mu.Lock()
	bucket, exists := srl.mutationLimits[sessionID]
	if !exists {
		refillRate := float64(srl.config.MutationsPerMinute) / 60.0
		bucket = NewTokenBucket(float64(srl.config.BurstSize), refillRate)
		srl.mutationLimits[sessionID] = bucket
	}
	srl.mu.Unlock()

	return bucket.Allow()
}

// AllowImport checks if a graph import can proceed for the given session
func (srl *SessionRateLimiter) AllowImport(sessionID uuid.UUID) bool {
	srl.mu.Lock()
	bucket, exists := srl.importLimits[sessionID]
	if !exists {
		refillRate := float64(srl.config.ImportsPerHour) / 3600.0
		bucket = NewTokenBucket(float64(srl.config.ImportsPerHour), refillRate)
		srl.importLimits[sessionID] = bucket
	}
	srl.mu.Unlock()

	return bucket.Allow()
}

// GetMutationLimit returns remaining mutation tokens for a session
func (srl *SessionRateLimiter) GetMutationLimit(sessionID uuid.UUID) (remaining int, limit int) {
	srl.mu.RLock()
	bucket, exists := srl.mutationLimits[sessionID]
	srl.mu.RUnlock()

	if !exists {
		return srl.config.BurstSize, srl.config.BurstSize
	}
	return bucket.Remaining(), srl.config.BurstSize
}

// RateLimitMiddleware creates a Gin middleware enforcing the given limit
// type ("mutation" or "import") for the resolved session.
func RateLimitMiddleware(limiter *SessionRateLimiter, limitType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := SessionFrom(c)
		if session == nil {
			// Session middleware should run before this
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session not initialized"})
			return
		}

		var allowed bool
		var remaining, limit int

		switch limitType {
		case "mutation":
			allowed = limiter.AllowMutation(session.ID)
			remaining, limit = limiter.GetMutationLimit(session.ID)
		case "import":
			allowed = limiter.AllowImport(session.ID)
			// Hourly buckets; remaining is not exposed
			remaining, limit = limiter.config.ImportsPerHour, limiter.config.ImportsPerHour
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "unknown limit type"})
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			limiter.logger.Warn("Rate limit exceeded",
				zap.String("session_id", session.ID.String()),
				zap.String("limit_type", limitType),
				zap.Int("limit", limit))

			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"limit":       limit,
				"remaining":   remaining,
				"retry_after": 60,
			})
			return
		}

		c.Next()
	}
}

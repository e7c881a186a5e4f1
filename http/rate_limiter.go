package http

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"edu-loan/logger"
)

const bucketCleanupThreshold = 1 * time.Hour

type clientBucket struct {
	tokens     int
	lastRefill time.Time
}

// RateLimiter is a per-client token bucket that refills completely once per
// window. Idle buckets are dropped by a cron job.
type RateLimiter struct {
	mu        sync.Mutex
	capacity  int
	refillDur time.Duration
	clients   map[string]*clientBucket
	cron      *cron.Cron
	now       func() time.Time
	log       *logger.Logger
}

func NewRateLimiter(capacity int, refillDur time.Duration, cleanupSpec string, log *logger.Logger) (*RateLimiter, error) {
	if log == nil {
		log = logger.New(logger.DefaultConfig())
	}
	rl := &RateLimiter{
		capacity:  capacity,
		refillDur: refillDur,
		clients:   make(map[string]*clientBucket),
		cron:      cron.New(),
		now:       time.Now,
		log:       log.WithComponent(logger.ComponentRateLimit),
	}
	if _, err := rl.cron.AddFunc(cleanupSpec, func() { rl.cleanup() }); err != nil {
		return nil, fmt.Errorf("register rate limiter cleanup %q: %w", cleanupSpec, err)
	}
	rl.cron.Start()
	return rl, nil
}

func (r *RateLimiter) cleanup() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for ip, bucket := range r.clients {
		if now.Sub(bucket.lastRefill) > bucketCleanupThreshold {
			delete(r.clients, ip)
			removed++
		}
	}
	if removed > 0 {
		r.log.Debug("Dropped idle rate limit buckets", "removed", removed)
	}
	return removed
}

// Stop halts the cleanup job and waits for a running cleanup to finish.
func (r *RateLimiter) Stop() {
	<-r.cron.Stop().Done()
}

func (r *RateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	bucket, exists := r.clients[ip]

	if !exists {
		r.clients[ip] = &clientBucket{
			tokens:     r.capacity - 1,
			lastRefill: now,
		}
		return true
	}

	if now.Sub(bucket.lastRefill) >= r.refillDur {
		bucket.tokens = r.capacity
		bucket.lastRefill = now
	}

	if bucket.tokens <= 0 {
		return false
	}

	bucket.tokens--
	return true
}

func RateLimitMiddleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.Header("Retry-After", strconv.Itoa(int(limiter.refillDur.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

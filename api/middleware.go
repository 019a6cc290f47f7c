package api

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	limiterSweepInterval = 5 * time.Minute
	limiterIdleExpiry    = 10 * time.Minute
)

// clientLimiter pairs a token bucket with the instant its client was last seen
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// CORS answers cross-origin requests for the configured origins. A "*" entry
// admits every origin; otherwise the request origin is echoed back only when
// it is listed. Preflights are answered directly with 204.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = struct{}{}
	}

	return func(c *gin.Context) {
		if allowAll {
			c.Header("Access-Control-Allow-Origin", "*")
		} else if origin := c.GetHeader("Origin"); origin != "" {
			if _, ok := allowed[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
			}
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestSizeLimit rejects bodies over maxBytes on the mutating methods. A
// declared oversize Content-Length is refused up front; bodies without a
// declared length are cut off by MaxBytesReader when the handler reads them.
func RequestSizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			if c.Request.ContentLength > maxBytes {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
					"status":  "error",
					"message": "request body exceeds " + strconv.FormatInt(maxBytes, 10) + " bytes",
				})
				return
			}
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// PerClientRateLimit applies a per-client token bucket keyed by client IP.
// Idle buckets are swept by a background goroutine started once and stopped
// through sweepStop.
func PerClientRateLimit(clients *sync.Map, sweepStop chan struct{}, sweepOnce *sync.Once, rps int, burst int) gin.HandlerFunc {
	sweepOnce.Do(func() {
		go sweepIdleLimiters(clients, sweepStop, limiterSweepInterval, limiterIdleExpiry)
	})

	return func(c *gin.Context) {
		entry, _ := clients.LoadOrStore(c.ClientIP(), &clientLimiter{
			limiter:  rate.NewLimiter(rate.Limit(rps), burst),
			lastSeen: time.Now(),
		})

		cl := entry.(*clientLimiter)
		cl.lastSeen = time.Now()

		if !cl.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":  "error",
				"message": "too many requests from this client",
			})
			return
		}

		c.Next()
	}
}

// sweepIdleLimiters drops buckets not seen for idleFor, checking every
// interval, until stop is closed
func sweepIdleLimiters(clients *sync.Map, stop chan struct{}, interval, idleFor time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-idleFor)
			clients.Range(func(key, value interface{}) bool {
				if value.(*clientLimiter).lastSeen.Before(cutoff) {
					clients.Delete(key)
				}
				return true
			})
		case <-stop:
			return
		}
	}
}

package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"motes-generator.backend/pkg/crypto"
	"motes-generator.backend/pkg/logger"
	"motes-generator.backend/pkg/redis"
)

const (
	IdempotencyHeader    = "Idempotency-Key"
	IdempotencyHitHeader = "X-Idempotency-Hit"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long we keep the response
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// IdempotencyKey returns the redis key for one client key on one route
func IdempotencyKey(method, path, key string) string {
	return "idempotency:" + crypto.Fingerprint(method, path, key)
}

// IdempotencyMiddleware replays the stored 2xx response for a repeated
// Idempotency-Key. Requests without the header, or arriving while redis is
// unreachable, are processed normally.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		storageKey := IdempotencyKey(c.Request.Method, c.Request.URL.Path, key)

		val, err := redisGet(ctx, storageKey)
		if err == nil {
			if val == processingMarker {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{
					"ok":    false,
					"code":  "IDEMPOTENCY_CONFLICT",
					"error": "Request already in progress",
				})
				return
			}

			var cached cachedResponse
			if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr != nil || cached.Status == 0 {
				cached = cachedResponse{Status: http.StatusOK, Body: json.RawMessage(val)}
			}
			c.Header(IdempotencyHitHeader, "true")
			c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
			c.Abort()
			return
		} else if !redis.IsNil(err) {
			logger.Warn(ctx, "Idempotency store unavailable, processing request", zap.Error(err))
			c.Next()
			return
		}

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil {
			c.Next()
			return
		}
		if !acquired {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"ok":    false,
				"code":  "IDEMPOTENCY_CONFLICT",
				"error": "Request in progress",
			})
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 && json.Valid(w.body.Bytes()) {
			payload, _ := json.Marshal(cachedResponse{Status: status, Body: w.body.Bytes()})
			if err := redisSet(ctx, storageKey, string(payload), RetentionDuration); err != nil {
				logger.Warn(ctx, "Failed to store idempotent response", zap.Error(err))
			}
			return
		}
		// Remove key so retry is possible
		_ = redisDel(ctx, storageKey)
	}
}

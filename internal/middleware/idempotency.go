package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"

	lockTTL      = 10 * time.Second
	completedTTL = 24 * time.Hour
	processing   = "PROCESSING"
	completed    = "COMPLETED"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Idempotency rejects a POST whose Idempotency-Key has already been seen.
// The key is locked while the request runs and kept for a day once it
// completes. Server errors release the key so the client can retry. When
// Redis is unreachable requests pass through unguarded.
func Idempotency(redisClient redis.Cmdable, log *logrus.Entry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyKeyHeader)
			if r.Method != http.MethodPost || key == "" {
				next.ServeHTTP(w, r)
				return
			}

			idemKey := fmt.Sprintf("idempotency:%s", key)
			ctx := r.Context()

			acquired, err := redisClient.SetNX(ctx, idemKey, processing, lockTTL).Result()
			if err != nil {
				log.WithError(err).Warn("Idempotency check unavailable")
				next.ServeHTTP(w, r)
				return
			}
			if !acquired {
				state, err := redisClient.Get(ctx, idemKey).Result()
				if err != nil && !errors.Is(err, redis.Nil) {
					state = processing
				}
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Idempotency-Hit", "true")
				w.WriteHeader(http.StatusConflict)
				if state == completed {
					w.Write([]byte(`{"error":"request already processed","code":"duplicate_request"}`))
				} else {
					w.Write([]byte(`{"error":"concurrent request","code":"duplicate_request"}`))
				}
				return
			}

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status >= http.StatusInternalServerError {
				if err := redisClient.Del(ctx, idemKey).Err(); err != nil {
					log.WithError(err).Warn("Failed to release idempotency key")
				}
				return
			}
			if err := redisClient.Set(ctx, idemKey, completed, completedTTL).Err(); err != nil {
				log.WithError(err).Warn("Failed to mark idempotency key completed")
			}
		})
	}
}

// Package middleware 提供幂等性中间件
package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/MorseWayne/flour_shop/internal/cache"
	"github.com/MorseWayne/flour_shop/internal/resp"
)

// HeaderIdempotencyKey 客户端提交的幂等键头
const HeaderIdempotencyKey = "X-Idempotency-Key"

// Idempotency 对携带幂等键的写请求做去重：
// 同一个键在TTL内第二次提交时直接返回409，防止联系表单等
// 提交类接口因网络重试产生重复记录。未携带幂等键的请求不受影响。
func Idempotency(store cache.Cache, ttl time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get(HeaderIdempotencyKey)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			reqID := RequestIDFromContext(r.Context())
			cacheKey := "idempotency:" + r.Method + ":" + r.URL.Path + ":" + key

			seen, err := store.Exists(r.Context(), cacheKey)
			if err != nil {
				// 缓存不可用时放行请求，幂等保护退化为尽力而为
				logger.Warn("idempotency check failed", zap.String("request_id", reqID), zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if seen {
				logger.Info("duplicate request rejected",
					zap.String("request_id", reqID),
					zap.String("idempotency_key", key),
				)
				resp.Error(w, http.StatusConflict, resp.CodeConflict, "duplicate request", reqID, "")
				return
			}

			if err := store.Set(r.Context(), cacheKey, true, ttl); err != nil {
				logger.Warn("idempotency record failed", zap.String("request_id", reqID), zap.Error(err))
			}
			next.ServeHTTP(w, r)
		})
	}
}

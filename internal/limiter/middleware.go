// Package limiter 限流中间件实现
package limiter

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	mw "github.com/MorseWayne/flour_shop/internal/middleware"
	"github.com/MorseWayne/flour_shop/internal/resp"
)

// KeyFunc 从请求生成限流key
type KeyFunc func(r *http.Request) string

// IPKeyFunc 按客户端IP限流，prefix用于区分不同的限流点
func IPKeyFunc(prefix string) KeyFunc {
	return func(r *http.Request) string {
		return fmt.Sprintf("%s:%s", prefix, ClientIP(r))
	}
}

// ClientIP 提取客户端IP。
// 服务部署在反向代理之后，优先取X-Forwarded-For首个地址。
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Middleware 创建限流中间件。
// Redis不可用时放行请求，限流不应成为单点。
func Middleware(l Limiter, keyFn KeyFunc, logger *zap.Logger) func(http.Handler) http.Handler {
	if keyFn == nil {
		keyFn = IPKeyFunc("global")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result, err := l.Allow(r.Context(), keyFn(r))
			if err != nil {
				logger.Warn("rate limiter unavailable", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))

			if !result.Allowed {
				if result.RetryAfter > 0 {
					w.Header().Set("Retry-After", strconv.FormatInt(int64(result.RetryAfter/time.Second), 10))
				}
				reqID := mw.RequestIDFromContext(r.Context())
				resp.Error(w, http.StatusTooManyRequests, resp.CodeTooManyReqs, "too many requests", reqID, "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

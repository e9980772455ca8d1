package logging

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// RequestIDHeader 请求 ID 的响应头
	RequestIDHeader = "X-Request-ID"
	loggerKey       = "logger"
)

// Middleware 为每个请求生成 request_id，并在请求结束后记录一条访问日志
func Middleware(base Logger) gin.HandlerFunc {
	if base == nil {
		base = Noop()
	}
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = newRequestID()
		}
		c.Header(RequestIDHeader, id)

		l := base.With(String("request_id", id))
		c.Set(loggerKey, l)
		c.Next()

		fields := []Field{
			String("method", c.Request.Method),
			String("path", c.FullPath()),
			Int("status", c.Writer.Status()),
			Any("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, String("errors", c.Errors.String()))
		}
		switch {
		case c.Writer.Status() >= 500:
			l.Error(c.Request.Context(), "request failed", fields...)
		case c.Writer.Status() >= 400:
			l.Warn(c.Request.Context(), "request rejected", fields...)
		default:
			l.Info(c.Request.Context(), "request handled", fields...)
		}
	}
}

// FromGin 取出请求日志器，没有中间件时返回 Noop
func FromGin(c *gin.Context) Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(Logger); ok {
			return l
		}
	}
	return Noop()
}

func newRequestID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(b[:])
}

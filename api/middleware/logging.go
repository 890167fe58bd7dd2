package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/checkmarble/asset-lists/utils"
	"github.com/gin-gonic/gin"
)

type config struct {
	ignorePath []string
	onlyErrors bool

	defaultLevel     slog.Level
	clientErrorLevel slog.Level
	serverErrorLevel slog.Level
}

type LoggerOption func(*config)

func WithIgnorePath(s []string) LoggerOption {
	return func(c *config) {
		c.ignorePath = s
	}
}

// WithRequestLoggingLevel: "all" logs every request, "errors" only logs the ones answered with
// a 4xx or 5xx status.
func WithRequestLoggingLevel(level string) LoggerOption {
	return func(c *config) {
		c.onlyErrors = level == "errors"
	}
}

// NewLogging logs one line per request, using the request scoped logger so that the
// authenticated user id is attached when present.
func NewLogging(options ...LoggerOption) gin.HandlerFunc {
	l := &config{
		defaultLevel:     slog.LevelInfo,
		clientErrorLevel: slog.LevelWarn,
		serverErrorLevel: slog.LevelError,
	}

	for _, option := range options {
		option(l)
	}

	ignore := make(map[string]struct{}, len(l.ignorePath))
	for _, path := range l.ignorePath {
		ignore[path] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := ignore[c.Request.URL.Path]; ok {
			return
		}

		path := c.Request.URL.Path
		start := time.Now()
		c.Next()
		latency := time.Since(start).Milliseconds()
		status := c.Writer.Status()
		dataLength := max(c.Writer.Size(), 0)

		level := l.defaultLevel
		if status >= http.StatusBadRequest && status < http.StatusInternalServerError {
			level = l.clientErrorLevel
		}
		if status >= http.StatusInternalServerError {
			level = l.serverErrorLevel
		}
		if l.onlyErrors && level == l.defaultLevel {
			return
		}

		attributes := []slog.Attr{
			slog.Int("status", status),
			slog.Int64("latency", latency),
			slog.String("client_ip", c.ClientIP()),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("route", c.FullPath()),
			slog.Int("data_length", dataLength),
			slog.String("user_agent", c.Request.UserAgent()),
		}
		if c.Errors != nil {
			attributes = append(attributes, slog.String("error", c.Errors.String()))
		}

		ctx := c.Request.Context()
		utils.LoggerFromContext(ctx).LogAttrs(ctx, level,
			fmt.Sprintf("%s %s", c.Request.Method, path), attributes...)
	}
}

package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Text handler for development, JSON for production.
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

var (
	defaultLogger *Logger
	defaultOnce   sync.Once
)

// GetDefault returns the process-wide logger, creating it on first use.
func GetDefault() *Logger {
	defaultOnce.Do(func() {
		defaultLogger = New()
	})
	return defaultLogger
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID adds request ID to logger context
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("request_id", requestID)),
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.String("user_agent", c.Request.UserAgent()),
		slog.Int("size", c.Writer.Size()),
	)
}

// Governance event logging

// LogSiteRegistered logs a newly proposed dive site
func (l *Logger) LogSiteRegistered(ctx context.Context, siteID uint, name string) {
	l.Logger.InfoContext(ctx,
		"Site Registered",
		slog.Uint64("site_id", uint64(siteID)),
		slog.String("name", name),
	)
}

// LogSiteStatusChanged logs an approval-workflow transition
func (l *Logger) LogSiteStatusChanged(ctx context.Context, siteID uint, status string) {
	l.Logger.InfoContext(ctx,
		"Site Status Changed",
		slog.Uint64("site_id", uint64(siteID)),
		slog.String("status", status),
	)
}

// LogTagAdditionRequested logs a pending tag addition request
func (l *Logger) LogTagAdditionRequested(ctx context.Context, siteID uint, tag string) {
	l.Logger.InfoContext(ctx,
		"Tag Addition Requested",
		slog.Uint64("site_id", uint64(siteID)),
		slog.String("tag", tag),
	)
}

// LogTagHidden logs a tag crossing the deletion-request threshold
func (l *Logger) LogTagHidden(ctx context.Context, siteID uint, tag string, requestCount int) {
	l.Logger.InfoContext(ctx,
		"Tag Hidden",
		slog.Uint64("site_id", uint64(siteID)),
		slog.String("tag", tag),
		slog.Int("request_count", requestCount),
	)
}

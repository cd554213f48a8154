package logging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/getsentry/sentry-go"
)

// SentryHandler is an slog.Handler that forwards ERROR+ records to Sentry.
// Record attributes become event extras; "operation" and "actor" become tags.
type SentryHandler struct {
	hub    *sentry.Hub
	attrs  []slog.Attr
	groups []string
}

// NewSentryHandler reports through hub, or the current hub when hub is nil.
func NewSentryHandler(hub *sentry.Hub) *SentryHandler {
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	return &SentryHandler{hub: hub}
}

// Enabled only handles ERROR and above.
func (h *SentryHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *SentryHandler) Handle(_ context.Context, record slog.Record) error {
	extra := make(map[string]any)
	tags := make(map[string]string)
	var cause error

	collect := func(a slog.Attr) bool {
		key := a.Key
		if len(h.groups) > 0 {
			key = strings.Join(h.groups, ".") + "." + key
		}
		switch a.Key {
		case "error":
			if err, ok := a.Value.Any().(error); ok {
				cause = err
			}
			extra[key] = a.Value.String()
		case "operation", "actor":
			tags[a.Key] = a.Value.String()
		default:
			extra[key] = a.Value.Any()
		}
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	record.Attrs(collect)

	h.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentryLevel(record.Level))
		scope.SetTags(tags)
		for k, v := range extra {
			scope.SetExtra(k, fmt.Sprint(v))
		}
		if cause != nil {
			scope.SetExtra("message", record.Message)
			h.hub.CaptureException(cause)
			return
		}
		h.hub.CaptureMessage(record.Message)
	})
	return nil
}

func (h *SentryHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

func (h *SentryHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.groups = append(append([]string{}, h.groups...), name)
	return &next
}

func sentryLevel(level slog.Level) sentry.Level {
	if level > slog.LevelError {
		return sentry.LevelFatal
	}
	return sentry.LevelError
}

package logging

import (
	"context"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hanpama/relaypage/internal/eventbus"
	"github.com/hanpama/relaypage/internal/events"
	"github.com/hanpama/relaypage/internal/reqid"
)

// New returns a JSON logger writing to out at the named level.
func New(level string, out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetOutput(out)
	l.SetLevel(ParseLevel(level))
	return l
}

// ParseLevel maps a level name to a logrus level. Unknown names log errors
// only.
func ParseLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.ErrorLevel
	}
}

// Subscribe logs page events on the global bus through l.
func Subscribe(l *logrus.Logger) (unsubscribe func()) {
	unsubStart := eventbus.Subscribe(func(ctx context.Context, e events.PageStart) {
		entry := withRequest(ctx, l).WithFields(logrus.Fields{
			"resolution_id": e.ID,
			"type":          e.Type,
			"field":         e.Field,
		})
		if e.First != nil {
			entry = entry.WithField("first", *e.First)
		}
		if e.After != "" {
			entry = entry.WithField("after", e.After)
		}
		entry.Debug("page requested")
	})
	unsubFinish := eventbus.Subscribe(func(ctx context.Context, e events.PageFinish) {
		entry := withRequest(ctx, l).WithFields(logrus.Fields{
			"resolution_id": e.ID,
			"type":          e.Type,
			"field":         e.Field,
			"edges":         e.Edges,
			"has_next":      e.HasNextPage,
			"has_prev":      e.HasPreviousPage,
			"custom":        e.Custom,
			"duration_ms":   e.Duration.Milliseconds(),
		})
		switch {
		case e.Err == nil:
			entry.Info("page resolved")
		case e.Code != "":
			entry.WithField("code", e.Code).WithError(e.Err).Warn("page rejected")
		default:
			entry.WithError(e.Err).Error("page resolution failed")
		}
	})
	return func() {
		unsubStart()
		unsubFinish()
	}
}

func withRequest(ctx context.Context, l *logrus.Logger) *logrus.Entry {
	entry := logrus.NewEntry(l).WithContext(ctx)
	if id, ok := reqid.FromContext(ctx); ok {
		entry = entry.WithField("request_id", id)
	}
	return entry
}

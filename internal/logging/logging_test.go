package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/hanpama/relaypage/internal/eventbus"
	"github.com/hanpama/relaypage/internal/events"
	"github.com/hanpama/relaypage/internal/reqid"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, logrus.DebugLevel, ParseLevel("debug"))
	require.Equal(t, logrus.WarnLevel, ParseLevel("WARN"))
	require.Equal(t, logrus.ErrorLevel, ParseLevel(""))
	require.Equal(t, logrus.ErrorLevel, ParseLevel("verbose"))
}

func TestSubscribeLogsPageEvents(t *testing.T) {
	eventbus.Use(eventbus.New())
	t.Cleanup(func() { eventbus.Use(nil) })

	var buf bytes.Buffer
	unsub := Subscribe(New("debug", &buf))
	defer unsub()

	ctx, id := reqid.NewContext(context.Background())
	first := 2
	eventbus.Publish(ctx, events.PageStart{Type: "Query", Field: "users", First: &first})
	eventbus.Publish(ctx, events.PageFinish{Type: "Query", Field: "users", Edges: 2, HasNextPage: true})
	eventbus.Publish(ctx, events.PageFinish{Type: "Query", Field: "users", Code: "INVALID_CURSOR", Err: errors.New("bad")})
	eventbus.Publish(ctx, events.PageFinish{Type: "Query", Field: "users", Err: errors.New("db down")})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 4)

	require.Equal(t, "page requested", lines[0]["msg"])
	require.Equal(t, float64(2), lines[0]["first"])

	require.Equal(t, "page resolved", lines[1]["msg"])
	require.Equal(t, "info", lines[1]["level"])
	require.Equal(t, id, lines[1]["request_id"])
	require.Equal(t, float64(2), lines[1]["edges"])
	require.Equal(t, true, lines[1]["has_next"])

	require.Equal(t, "warning", lines[2]["level"])
	require.Equal(t, "INVALID_CURSOR", lines[2]["code"])
	require.Equal(t, "bad", lines[2]["error"])

	require.Equal(t, "error", lines[3]["level"])
	require.Equal(t, "page resolution failed", lines[3]["msg"])
}

func TestSubscribeRespectsLevel(t *testing.T) {
	eventbus.Use(eventbus.New())
	t.Cleanup(func() { eventbus.Use(nil) })

	var buf bytes.Buffer
	unsub := Subscribe(New("warn", &buf))
	defer unsub()

	eventbus.Publish(context.Background(), events.PageStart{Type: "Query", Field: "users"})
	eventbus.Publish(context.Background(), events.PageFinish{Type: "Query", Field: "users"})
	require.Empty(t, buf.String())
}

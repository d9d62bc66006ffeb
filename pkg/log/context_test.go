package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &m))
	return m
}

func TestCtxReturnsStoredLogger(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), zerolog.New(&buf).With().Str(FieldRequestID, "req-1").Logger())

	Ctx(ctx).Info().Uint(FieldTargetID, 9).Msg("friend request sent")

	line := lastLine(t, &buf)
	assert.Equal(t, "req-1", line[FieldRequestID])
	assert.Equal(t, float64(9), line[FieldTargetID])
	assert.Equal(t, "friend request sent", line["message"])
}

func TestCtxFallsBackToGlobal(t *testing.T) {
	l := Ctx(context.Background())
	require.NotNil(t, l)
	// Chained calls on the fallback must be usable without binding first.
	Ctx(context.Background()).Debug().Msg("no request logger")
}

func TestWithUser(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), zerolog.New(&buf))
	ctx = WithUser(ctx, 42)

	Ctx(ctx).Error().Str(FieldStatusType, "away").Msg("failed to append status")

	line := lastLine(t, &buf)
	assert.Equal(t, float64(42), line[FieldUserID])
	assert.Equal(t, "away", line[FieldStatusType])
	assert.Equal(t, "error", line["level"])
}

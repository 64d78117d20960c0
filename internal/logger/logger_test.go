package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlogLevels(t *testing.T) {
	var buf bytes.Buffer
	l := newSlog(SlogConfig{Level: "warn", Format: "json"}, &buf)

	l.Info("hidden")
	assert.Zero(t, buf.Len())

	l.Warn("shown", "stage", "download")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "download", entry["stage"])
	assert.IsType(t, "", entry["time"])
}

func TestNewSlogTextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := newSlog(SlogConfig{Level: "debug", Format: "text"}, &buf)

	l.Debug("hello", "url", "http://example.com/a.jpg")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "url=http://example.com/a.jpg")
}

func TestFromContext(t *testing.T) {
	fallback := Discard()
	assert.Same(t, fallback, FromContext(context.Background(), fallback))

	scoped := Discard().With("request_id", "abc")
	ctx := WithContext(context.Background(), scoped)
	assert.Same(t, scoped, FromContext(ctx, fallback))
}

package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	lgr := Wrap(zap.New(core))

	lgr.Info("reservation_created", "Reservation stored", "req-1", map[string]interface{}{"id": "abc"})
	lgr.Error("db_failed", "Query failed", "req-2", nil, errors.New("boom"))

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "Reservation stored", entries[0].Message)
	assert.Equal(t, "reservation_created", first["action"])
	assert.Equal(t, "req-1", first["request_id"])
	assert.Equal(t, map[string]interface{}{"id": "abc"}, first["details"])

	second := entries[1].ContextMap()
	assert.Equal(t, "boom", second["error"])
	_, hasDetails := second["details"]
	assert.False(t, hasDetails)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", parseLevel("debug").String())
	assert.Equal(t, "info", parseLevel("").String())
	assert.Equal(t, "error", parseLevel("error").String())
}

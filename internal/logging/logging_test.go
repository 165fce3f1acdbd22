package logging

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	loc := time.FixedZone("UTC-6", -6*3600)
	l := New(&buf, "debug", loc)

	Component(l, "slots").WithField("slot", "acceptanceDocument").Info("slot updated")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "slots", line["component"])
	assert.Equal(t, "acceptanceDocument", line["slot"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "slot updated", line["msg"])

	ts, err := time.Parse(time.RFC3339Nano, line["ts"].(string))
	require.NoError(t, err)
	_, offset := ts.Zone()
	assert.Equal(t, -6*3600, offset)
}

func TestNew_UnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "loud", nil)
	l.Debug("hidden")
	assert.Empty(t, buf.String())
}

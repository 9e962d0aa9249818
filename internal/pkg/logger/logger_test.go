package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactEmail(t *testing.T) {
	assert.Equal(t, "jo***@example.com", RedactEmail("john.doe@example.com"))
	assert.Equal(t, "***@example.com", RedactEmail("ab@example.com"))
	assert.Equal(t, "***@***", RedactEmail("not-an-email"))
}

func TestRedactToken(t *testing.T) {
	assert.Equal(t, "abcd****", RedactToken("abcdefghij"))
	assert.Equal(t, "****", RedactToken("abc"))
}

func TestLoggerRedactsEmailFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, INFO, true)

	l.Info("subscriber added", "subscriber_email", "ursula_le_guin@gmail.com")

	var entry map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ur***@gmail.com", entry["subscriber_email"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestLoggerRedactsEmbeddedEmails(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, INFO, true)

	l.Error("send failed", "cause", "rejected recipient john.doe@example.com by upstream")

	var entry map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.NotContains(t, entry["cause"], "john.doe@example.com")
	assert.Contains(t, entry["cause"], "jo***@example.com")
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, WARN, false)

	l.Info("dropped")
	assert.Zero(t, buf.Len())

	l.Warn("kept")
	assert.NotZero(t, buf.Len())
}

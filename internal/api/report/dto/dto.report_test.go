package reportdto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFromDateBareDate(t *testing.T) {
	parsed, err := ParseFromDate("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), parsed)
}

func TestParseToDateBareDateExtendsToEndOfDay(t *testing.T) {
	parsed, err := ParseToDate("2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 999000000, time.UTC), parsed)

	// A record timestamped late on the last day falls inside the range.
	record := time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC)
	assert.True(t, record.Before(parsed))
}

func TestParseToDateFullTimestampKeptAsIs(t *testing.T) {
	parsed, err := ParseToDate("2024-01-31T12:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 31, 12, 30, 0, 0, time.UTC), parsed)
}

func TestParseDateRejectsGarbage(t *testing.T) {
	_, err := ParseFromDate("not-a-date")
	assert.Error(t, err)

	_, err = ParseToDate("31/01/2024")
	assert.Error(t, err)
}

func TestParseDateTrimsWhitespace(t *testing.T) {
	parsed, err := ParseFromDate("  2024-01-01  ")
	require.NoError(t, err)
	assert.Equal(t, 2024, parsed.Year())
}

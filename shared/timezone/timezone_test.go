package timezone_test

import (
	"hotel/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	timezone.Init("Asia/Ho_Chi_Minh")
}

func TestLoad(t *testing.T) {
	loc, err := timezone.Load("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	loc, err = timezone.Load("Asia/Ho_Chi_Minh")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Ho_Chi_Minh", loc.String())

	_, err = timezone.Load("Mars/Olympus")
	assert.Error(t, err)
}

func TestInit_FirstCallWins(t *testing.T) {
	timezone.Init("Europe/London")

	assert.Equal(t, "Asia/Ho_Chi_Minh", timezone.GetLocation().String())
}

func TestParseAndFormat(t *testing.T) {
	parsed, err := timezone.Parse(time.DateOnly, "2025-03-10")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 3, 9, 17, 0, 0, 0, time.UTC), parsed.UTC())
	assert.Equal(t, "2025-03-10 00:00", timezone.Format(parsed.UTC(), "2006-01-02 15:04"))

	_, err = timezone.Parse(time.DateOnly, "10/03/2025")
	assert.Error(t, err)
}

func TestNow(t *testing.T) {
	assert.Equal(t, timezone.GetLocation(), timezone.Now().Location())
}

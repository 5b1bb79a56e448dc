package clock_test

import (
	"hotel/shared/clock"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	assert.False(t, clock.New().Now().IsZero())
}

func TestFrozen(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	c := clock.NewFrozen(start)

	assert.Equal(t, start, c.Now())

	c.Advance(20 * time.Minute)
	assert.Equal(t, start.Add(20*time.Minute), c.Now())

	c.Set(start)
	assert.Equal(t, start, c.Now())
}

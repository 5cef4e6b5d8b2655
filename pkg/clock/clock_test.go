package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixed(t *testing.T) {
	instant := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	clk := NewFixed(instant)

	assert.Equal(t, instant, clk.Now())
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), clk.Today())

	clk.Advance(10 * time.Hour)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), clk.Today())
}

func TestFixedNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	clk := NewFixed(time.Date(2024, 3, 10, 2, 0, 0, 0, loc))
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), clk.Today())
}

func TestSystemToday(t *testing.T) {
	today := System().Today()
	assert.Equal(t, 0, today.Hour())
	assert.Equal(t, 0, today.Minute())
	assert.Equal(t, time.UTC, today.Location())
}

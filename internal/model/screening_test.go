package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHasStarted(t *testing.T) {
	now := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)

	future := Screening{StartsAt: now.Add(time.Minute)}
	assert.False(t, future.HasStarted(now))

	past := Screening{StartsAt: now.Add(-time.Minute)}
	assert.True(t, past.HasStarted(now))

	// Boundary: a screening starting exactly now is already started.
	exact := Screening{StartsAt: now}
	assert.True(t, exact.HasStarted(now))
}

func TestScreeningPrice(t *testing.T) {
	s := Screening{PriceCents: 2500}
	assert.Equal(t, "25.00", s.Price())
}

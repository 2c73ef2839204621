package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitLine_CrowdingLevel(t *testing.T) {
	t.Parallel()

	line := NewTransitLine("test", 10)
	assert.Equal(t, 0.0, line.CrowdingLevel())

	line.SetRiders(5)
	assert.Equal(t, 0.5, line.CrowdingLevel())

	// Clamped at 1.0 when riders exceed capacity.
	line.SetRiders(25)
	assert.Equal(t, 1.0, line.CrowdingLevel())
}

func TestTransitLine_ZeroCapacity(t *testing.T) {
	t.Parallel()

	line := NewTransitLine("degenerate", 0)
	line.SetRiders(7)
	assert.Equal(t, 0.0, line.CrowdingLevel())
}

func TestTransitLine_AddRemoveReset(t *testing.T) {
	t.Parallel()

	line := NewTransitLine("test", 3)
	line.AddRider()
	line.AddRider()
	assert.Equal(t, 2, line.Riders())

	line.RemoveRider()
	assert.Equal(t, 1, line.Riders())

	// Floored at zero.
	line.RemoveRider()
	line.RemoveRider()
	assert.Equal(t, 0, line.Riders())

	line.AddRider()
	line.ResetRiders()
	assert.Equal(t, 0, line.Riders())
}

func TestTransitLine_SetRidersNegative(t *testing.T) {
	t.Parallel()

	line := NewTransitLine("test", 3)
	line.SetRiders(-4)
	assert.Equal(t, 0, line.Riders())
}

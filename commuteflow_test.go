package commuteflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BaSui01/commuteflow/sim"
)

func TestEndToEnd(t *testing.T) {
	logger := zap.NewNop()

	records, err := LoadCSV(context.Background(), "dataset/testdata/commuters.csv", logger)
	require.NoError(t, err)
	require.Len(t, records, 5)

	insights := RunSimulation(sim.Config{Capacity: 10, Cycles: 3, Seed: 1}, records, logger)
	assert.Equal(t, 10, insights.SimulatedPTCapacity)
	assert.Equal(t, 3, insights.NumSimSteps)
	// Two of the five commuters usually ride public transport.
	assert.InDelta(t, 0.2, insights.AveragePTCrowding, 1e-9)

	advisories, err := Recommend(records[0], &insights)
	require.NoError(t, err)
	assert.NotEmpty(t, advisories)
}

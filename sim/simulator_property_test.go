package sim

import (
	"fmt"
	"testing"

	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/BaSui01/commuteflow/types"
)

func drawPopulation(t *rapid.T) []types.CommuterRecord {
	n := rapid.IntRange(0, 50).Draw(t, "population")
	records := make([]types.CommuterRecord, 0, n)
	modes := []types.Mode{types.ModePublicTransport, types.ModeCar, types.ModeWalkCycle}
	for i := 0; i < n; i++ {
		records = append(records, types.CommuterRecord{
			CommuterID: fmt.Sprintf("c%d", i),
			UsualMode:  rapid.SampledFrom(modes).Draw(t, "mode"),
			AttitudePT: rapid.IntRange(types.ScoreMin, types.ScoreMax).Draw(t, "attitude_pt"),
			PBCPT:      rapid.IntRange(types.ScoreMin, types.ScoreMax).Draw(t, "pbc_pt"),
		})
	}
	return records
}

func TestSimulator_InsightsBoundsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := Config{
			Capacity: rapid.IntRange(1, 100).Draw(t, "capacity"),
			Cycles:   rapid.IntRange(1, 20).Draw(t, "cycles"),
			Seed:     rapid.Int64Range(1, 1<<40).Draw(t, "seed"),
		}
		insights := New(cfg, zap.NewNop()).Run(drawPopulation(t))

		if insights.AveragePTCrowding < 0 || insights.AveragePTCrowding > 1 {
			t.Fatalf("average crowding out of [0,1]: %f", insights.AveragePTCrowding)
		}
		if insights.TotalModeSwitchesFromPT < 0 {
			t.Fatalf("negative switch count: %d", insights.TotalModeSwitchesFromPT)
		}
		if insights.SimulatedPTCapacity != cfg.Capacity || insights.NumSimSteps != cfg.Cycles {
			t.Fatalf("insights do not echo run parameters: %+v", insights)
		}
	})
}

func TestSimulator_CapacityMonotonicityProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		records := drawPopulation(t)
		cycles := rapid.IntRange(1, 10).Draw(t, "cycles")
		seed := rapid.Int64Range(1, 1<<40).Draw(t, "seed")
		lo := rapid.IntRange(1, 50).Draw(t, "lower_capacity")
		hi := lo + rapid.IntRange(1, 50).Draw(t, "capacity_delta")

		// Same seed, same population: only the capacity differs, so the
		// smaller line can never be less crowded on average.
		crowded := New(Config{Capacity: lo, Cycles: cycles, Seed: seed}, zap.NewNop()).Run(records)
		relaxed := New(Config{Capacity: hi, Cycles: cycles, Seed: seed}, zap.NewNop()).Run(records)

		if crowded.AveragePTCrowding < relaxed.AveragePTCrowding {
			t.Fatalf("decreasing capacity decreased crowding: cap %d -> %f, cap %d -> %f",
				lo, crowded.AveragePTCrowding, hi, relaxed.AveragePTCrowding)
		}
	})
}

// Copyright (c) CommuteFlow Authors.
// Licensed under the MIT License.

// Package commuteflow provides a top-level convenience entry point for
// running crowding simulations and generating commute recommendations
// without standing up the full service.
//
// Usage:
//
//	import "github.com/BaSui01/commuteflow"
//
//	insights := commuteflow.RunSimulation(sim.Config{Capacity: 10, Cycles: 5}, records, logger)
//	advisories, err := commuteflow.Recommend(profile, &insights)
//
// The HTTP service in cmd/commuteflow builds on the same packages; use
// this entry point for scripts, notebooks, and tests.
package commuteflow

import (
	"context"

	"go.uber.org/zap"

	"github.com/BaSui01/commuteflow/dataset"
	"github.com/BaSui01/commuteflow/recommend"
	"github.com/BaSui01/commuteflow/sim"
	"github.com/BaSui01/commuteflow/types"
)

// LoadCSV reads commuter records from a survey CSV file.
func LoadCSV(ctx context.Context, path string, logger *zap.Logger) ([]types.CommuterRecord, error) {
	return dataset.NewCSVLoader(dataset.CSVLoaderConfig{}, logger).Load(ctx, path)
}

// RunSimulation executes one crowding simulation over the records.
func RunSimulation(cfg sim.Config, records []types.CommuterRecord, logger *zap.Logger) types.SimulationInsights {
	return sim.New(cfg, logger).Run(records)
}

// Recommend generates rule-based advisories for one commuter profile.
// Insights may be nil when no simulation has been run.
func Recommend(profile types.CommuterRecord, insights *types.SimulationInsights) ([]string, error) {
	return recommend.Generate(profile, insights)
}

package types

// SimulationInsights is the immutable aggregate result of one crowding
// simulation run. The average covers the pre-response crowding recorded at
// the start of each cycle; the post-response figure is logged per cycle but
// deliberately excluded from the average, matching the original rule set.
type SimulationInsights struct {
	// AveragePTCrowding is the mean pre-response crowding ratio across all
	// cycles, in [0,1]. Defined as 0 when no cycles were run.
	AveragePTCrowding float64 `json:"average_pt_crowding"`

	// TotalModeSwitchesFromPT counts every "may switch away" verdict across
	// all cycles. Agents re-board every cycle, so one agent can contribute
	// several switches over a run.
	TotalModeSwitchesFromPT int `json:"total_mode_switches_from_pt"`

	// SimulatedPTCapacity is the line capacity the run was configured with.
	SimulatedPTCapacity int `json:"simulated_pt_capacity"`

	// NumSimSteps is the number of commute cycles executed.
	NumSimSteps int `json:"num_sim_steps"`
}

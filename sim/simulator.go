package sim

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/commuteflow/types"
)

// Config carries the per-run simulation parameters. Capacity and Cycles
// come from the caller per invocation; Seed fixes the tolerance sampling
// source for reproducible runs (0 derives a seed from the clock).
type Config struct {
	// Capacity is the transit line capacity. Zero is a defined degenerate
	// case: crowding stays at 0.0 and nobody switches.
	Capacity int `yaml:"capacity" json:"capacity"`

	// Cycles is the number of commute cycles to simulate. Zero cycles
	// yields the empty-sequence average of 0.0.
	Cycles int `yaml:"cycles" json:"cycles"`

	// Seed seeds the crowding tolerance sampling. 0 means time-derived.
	Seed int64 `yaml:"seed" json:"seed"`
}

// Simulator orchestrates commute cycles over a population of agents and a
// transit line. Each Run builds fresh agents and a fresh line, so nothing
// is shared between invocations.
type Simulator struct {
	cfg    Config
	rng    *rand.Rand
	logger *zap.Logger
}

// New creates a simulator with the given configuration.
func New(cfg Config, logger *zap.Logger) *Simulator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulator{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger.With(zap.String("component", "simulator")),
	}
}

// Run materializes one agent per record and executes the configured number
// of commute cycles. Records with a non-PT usual mode still produce agents
// (they partition the population) but never board the line.
func (s *Simulator) Run(records []types.CommuterRecord) types.SimulationInsights {
	agents := make([]*Agent, 0, len(records))
	for _, rec := range records {
		agents = append(agents, NewAgent(rec, s.rng))
	}
	return s.RunAgents(agents)
}

// RunAgents executes the simulation over pre-built agents. Exposed so
// callers can supply explicit crowding tolerances.
func (s *Simulator) RunAgents(agents []*Agent) types.SimulationInsights {
	line := NewTransitLine("Main PT Line", s.cfg.Capacity)

	ptUsers := make([]*Agent, 0, len(agents))
	for _, a := range agents {
		if a.UsualMode == types.ModePublicTransport {
			ptUsers = append(ptUsers, a)
		}
	}

	s.logger.Info("starting crowding simulation",
		zap.Int("capacity", s.cfg.Capacity),
		zap.Int("cycles", s.cfg.Cycles),
		zap.Int("population", len(agents)),
		zap.Int("pt_users", len(ptUsers)),
	)

	totalSwitches := 0
	crowdingSum := 0.0

	for cycle := 0; cycle < s.cfg.Cycles; cycle++ {
		line.ResetRiders()

		// All usual PT riders attempt to board, unconditionally. Prior
		// cycles' switch verdicts carry no memory into boarding attempts.
		line.SetRiders(len(ptUsers))

		perceived := line.CrowdingLevel()
		crowdingSum += perceived

		staying := 0
		for _, agent := range ptUsers {
			if agent.DecideOnPT(perceived) {
				staying++
				continue
			}
			totalSwitches++
			agent.CurrentMode = types.ModeAlternative
		}

		// Post-response crowding is informational only; the averaged
		// statistic uses the pre-response values, matching the original
		// rule set even though the asymmetry looks inconsistent.
		line.SetRiders(staying)
		s.logger.Debug("cycle complete",
			zap.Int("cycle", cycle+1),
			zap.Int("boarding_attempts", len(ptUsers)),
			zap.Float64("perceived_crowding", perceived),
			zap.Int("riders_after_response", staying),
			zap.Float64("crowding_after_response", line.CrowdingLevel()),
		)
	}

	avgCrowding := 0.0
	if s.cfg.Cycles > 0 {
		avgCrowding = crowdingSum / float64(s.cfg.Cycles)
	}

	insights := types.SimulationInsights{
		AveragePTCrowding:       avgCrowding,
		TotalModeSwitchesFromPT: totalSwitches,
		SimulatedPTCapacity:     s.cfg.Capacity,
		NumSimSteps:             s.cfg.Cycles,
	}

	s.logger.Info("simulation complete",
		zap.Float64("average_pt_crowding", insights.AveragePTCrowding),
		zap.Int("total_mode_switches_from_pt", insights.TotalModeSwitchesFromPT),
	)

	return insights
}

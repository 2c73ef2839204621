package sim

import (
	"math/rand"

	"github.com/BaSui01/commuteflow/types"
)

// Crowding tolerance is sampled once per agent from this uniform range.
// Lower tolerance means the agent reacts to crowding sooner.
const (
	ToleranceMin = 0.5
	ToleranceMax = 0.9
)

// Decision rule constants. Crowding beyond the agent's tolerance degrades
// perceived behavioral control three times as fast as attitude; both are
// floored at the bottom of the survey scale, and an adjusted score below
// switchThreshold produces a "may switch away" verdict.
const (
	crowdingImpactScale  = 2.0
	pbcImpactWeight      = 3.0
	attitudeImpactWeight = 2.0
	scoreFloor           = 1.0
	switchThreshold      = 3.0
)

// Agent is one commuter inside a simulation run. It captures the
// PT-relevant scores of its source record at creation time and carries a
// per-agent crowding tolerance plus a mutable current mode.
type Agent struct {
	ID          string
	UsualMode   types.Mode
	CurrentMode types.Mode

	AttitudePT float64
	PBCPT      float64
	Tolerance  float64
}

// NewAgent creates an agent from a commuter record, sampling the crowding
// tolerance from rng.
func NewAgent(rec types.CommuterRecord, rng *rand.Rand) *Agent {
	tolerance := ToleranceMin + rng.Float64()*(ToleranceMax-ToleranceMin)
	return NewAgentWithTolerance(rec, tolerance)
}

// NewAgentWithTolerance creates an agent with an explicit crowding
// tolerance, bypassing random sampling. Used for reproducible tests and
// calibrated scenarios.
func NewAgentWithTolerance(rec types.CommuterRecord, tolerance float64) *Agent {
	return &Agent{
		ID:          rec.CommuterID,
		UsualMode:   rec.UsualMode,
		CurrentMode: rec.UsualMode,
		AttitudePT:  float64(rec.AttitudePT),
		PBCPT:       float64(rec.PBCPT),
		Tolerance:   tolerance,
	}
}

// DecideOnPT returns the agent's verdict for one cycle given the perceived
// crowding ratio in [0,1]: true means the agent stays on PT, false means it
// may switch away. Agents whose usual mode is not PT were never riding, so
// the verdict is deterministically false and nothing changes.
//
// The verdict is deterministic given inputs; the caller is responsible for
// updating CurrentMode and any switch counters.
func (a *Agent) DecideOnPT(perceivedCrowding float64) bool {
	if a.UsualMode != types.ModePublicTransport {
		return false
	}

	impact := perceivedCrowding - a.Tolerance
	if impact < 0 {
		impact = 0
	}
	impact *= crowdingImpactScale

	adjustedPBC := a.PBCPT - impact*pbcImpactWeight
	if adjustedPBC < scoreFloor {
		adjustedPBC = scoreFloor
	}
	adjustedAttitude := a.AttitudePT - impact*attitudeImpactWeight
	if adjustedAttitude < scoreFloor {
		adjustedAttitude = scoreFloor
	}

	if adjustedPBC < switchThreshold || adjustedAttitude < switchThreshold {
		return false
	}
	return true
}

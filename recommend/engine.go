package recommend

import (
	"fmt"

	"github.com/BaSui01/commuteflow/types"
)

// Score thresholds of the rule set. A score strictly below LowScoreCutoff
// counts as "low"; a score at or above HighScoreCutoff counts as "high".
// Scores of exactly 4 are neither.
const (
	LowScoreCutoff  = 4
	HighScoreCutoff = 5
)

// Average-crowding cutoffs for the mutually exclusive crowding advisories.
const (
	CrowdingAlertCutoff    = 0.7
	CrowdingModerateCutoff = 0.4
)

// Generate evaluates the fixed rule set against the profile and, when
// insights are supplied, against the simulation aggregates. It returns the
// advisories in evaluation order and guarantees a non-empty list via the
// fallback rule.
//
// An incomplete profile (any missing or out-of-range score) is a
// precondition violation and fails fast rather than fabricating claims
// from defaulted scores.
func Generate(profile types.CommuterRecord, insights *types.SimulationInsights) ([]string, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	var recs []string

	// Public transport: low intention unpacks into per-construct nudges,
	// high intention earns a single encouragement.
	if profile.IntentionPT < LowScoreCutoff {
		if profile.AttitudePT < LowScoreCutoff {
			recs = append(recs, msgPTLowAttitude)
		}
		if profile.SNPT < LowScoreCutoff {
			recs = append(recs, msgPTLowSN)
		}
		if profile.PBCPT < LowScoreCutoff {
			recs = append(recs, msgPTLowPBC)
		}
	} else if profile.IntentionPT >= HighScoreCutoff {
		recs = append(recs, msgPTEncouragement)
	}

	// Car: both sub-rules are independent of each other.
	if profile.IntentionCar >= HighScoreCutoff {
		if profile.AttitudeCar >= HighScoreCutoff && profile.PBCCar >= HighScoreCutoff {
			recs = append(recs, msgCarCongestion)
		}
		if profile.SNCar < LowScoreCutoff {
			recs = append(recs, msgCarEnvironment)
		}
	}

	// Walk/Cycle: the two sub-rules are mutually exclusive.
	if profile.IntentionWalkCycle >= HighScoreCutoff {
		if profile.PBCWalkCycle < LowScoreCutoff {
			recs = append(recs, msgWalkCycleAccess)
		} else {
			recs = append(recs, msgWalkCycleEncouragement)
		}
	}

	if insights != nil {
		recs = append(recs, crowdingAdvisory(insights.AveragePTCrowding))

		if insights.TotalModeSwitchesFromPT > 0 && profile.UsualMode == types.ModePublicTransport {
			recs = append(recs, fmt.Sprintf(fmtSwitchesObserved, insights.TotalModeSwitchesFromPT))
		}
	}

	if len(recs) == 0 {
		recs = append(recs, msgFallback)
	}

	return recs, nil
}

// crowdingAdvisory picks exactly one of the three crowding messages.
func crowdingAdvisory(avg float64) string {
	percent := avg * 100
	switch {
	case avg > CrowdingAlertCutoff:
		return fmt.Sprintf(fmtCrowdingAlert, percent)
	case avg > CrowdingModerateCutoff:
		return fmt.Sprintf(fmtCrowdingModerate, percent)
	default:
		return fmt.Sprintf(fmtCrowdingLow, percent)
	}
}

package recommend

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/BaSui01/commuteflow/types"
)

func genScore() gopter.Gen {
	return gen.IntRange(types.ScoreMin, types.ScoreMax)
}

func genMode() gopter.Gen {
	return gen.OneConstOf(types.ModePublicTransport, types.ModeCar, types.ModeWalkCycle)
}

func genProfile() gopter.Gen {
	return gopter.CombineGens(
		genMode(),
		genScore(), genScore(), genScore(), genScore(),
		genScore(), genScore(), genScore(), genScore(),
		genScore(), genScore(), genScore(), genScore(),
	).Map(func(vs []interface{}) types.CommuterRecord {
		return types.CommuterRecord{
			CommuterID: "p1",
			UsualMode:  vs[0].(types.Mode),

			AttitudeCar: vs[1].(int), AttitudePT: vs[2].(int), AttitudeWalkCycle: vs[3].(int),
			SNCar: vs[4].(int), SNPT: vs[5].(int), SNWalkCycle: vs[6].(int),
			PBCCar: vs[7].(int), PBCPT: vs[8].(int), PBCWalkCycle: vs[9].(int),
			IntentionCar: vs[10].(int), IntentionPT: vs[11].(int), IntentionWalkCycle: vs[12].(int),
		}
	})
}

func genInsights() gopter.Gen {
	return gopter.CombineGens(
		gen.Float64Range(0, 1),
		gen.IntRange(0, 100),
	).Map(func(vs []interface{}) *types.SimulationInsights {
		return &types.SimulationInsights{
			AveragePTCrowding:       vs[0].(float64),
			TotalModeSwitchesFromPT: vs[1].(int),
		}
	})
}

func TestProperty_GenerateNeverEmpty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("valid profiles always produce at least one advisory", prop.ForAll(
		func(profile types.CommuterRecord) bool {
			recs, err := Generate(profile, nil)
			if err != nil {
				t.Logf("Generate failed: %v", err)
				return false
			}
			return len(recs) > 0
		},
		genProfile(),
	))

	properties.Property("insights never suppress the non-empty guarantee", prop.ForAll(
		func(profile types.CommuterRecord, insights *types.SimulationInsights) bool {
			recs, err := Generate(profile, insights)
			if err != nil {
				t.Logf("Generate failed: %v", err)
				return false
			}
			return len(recs) > 0
		},
		genProfile(),
		genInsights(),
	))

	properties.TestingRun(t)
}

func TestProperty_GenerateIsDeterministic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("identical inputs produce identical advisories", prop.ForAll(
		func(profile types.CommuterRecord, insights *types.SimulationInsights) bool {
			first, err := Generate(profile, insights)
			if err != nil {
				return false
			}
			second, err := Generate(profile, insights)
			if err != nil {
				return false
			}
			return reflect.DeepEqual(first, second)
		},
		genProfile(),
		genInsights(),
	))

	properties.Property("insights add exactly one crowding advisory", prop.ForAll(
		func(profile types.CommuterRecord, insights *types.SimulationInsights) bool {
			without, err := Generate(profile, nil)
			if err != nil {
				return false
			}
			with, err := Generate(profile, insights)
			if err != nil {
				return false
			}

			extra := len(with) - len(without)
			if without[len(without)-1] == msgFallback {
				// The fallback only appears when nothing else fired, so the
				// crowding advisory replaces it.
				extra = len(with) - (len(without) - 1)
			}

			wantExtra := 1
			if insights.TotalModeSwitchesFromPT > 0 && profile.UsualMode == types.ModePublicTransport {
				wantExtra = 2
			}
			return extra == wantExtra
		},
		genProfile(),
		genInsights(),
	))

	properties.TestingRun(t)
}

package types

import "fmt"

// Mode is a commute mode label. The dataset uses a closed set of labels;
// ModeAlternative is only ever assigned by the simulation when an agent
// switches away from public transport and never appears in the dataset.
type Mode string

const (
	ModePublicTransport Mode = "Public Transport"
	ModeCar             Mode = "Car"
	ModeWalkCycle       Mode = "Walk/Cycle"
	ModeAlternative     Mode = "Alternative"
)

// Bounds of the TPB survey scale. A zero score means the field was absent
// from the source row; valid scores are always within [ScoreMin, ScoreMax].
const (
	ScoreMin = 1
	ScoreMax = 7
)

// CommuterRecord is one row of the commuter dataset: identity plus the
// twelve behavioral scores. Records are immutable once loaded; the
// simulation and the recommendation engine reference them, never copy
// them back into the store.
type CommuterRecord struct {
	CommuterID string `json:"commuter_id" gorm:"primaryKey;column:commuter_id"`
	UsualMode  Mode   `json:"usual_commute_mode" gorm:"column:usual_commute_mode"`

	AttitudeCar       int `json:"attitude_car_score" gorm:"column:attitude_car_score"`
	AttitudePT        int `json:"attitude_pt_score" gorm:"column:attitude_pt_score"`
	AttitudeWalkCycle int `json:"attitude_walkcycle_score" gorm:"column:attitude_walkcycle_score"`

	SNCar       int `json:"sn_car_score" gorm:"column:sn_car_score"`
	SNPT        int `json:"sn_pt_score" gorm:"column:sn_pt_score"`
	SNWalkCycle int `json:"sn_walkcycle_score" gorm:"column:sn_walkcycle_score"`

	PBCCar       int `json:"pbc_car_score" gorm:"column:pbc_car_score"`
	PBCPT        int `json:"pbc_pt_score" gorm:"column:pbc_pt_score"`
	PBCWalkCycle int `json:"pbc_walkcycle_score" gorm:"column:pbc_walkcycle_score"`

	IntentionCar       int `json:"intention_car_score" gorm:"column:intention_car_score"`
	IntentionPT        int `json:"intention_pt_score" gorm:"column:intention_pt_score"`
	IntentionWalkCycle int `json:"intention_walkcycle_score" gorm:"column:intention_walkcycle_score"`
}

// TableName implements the gorm table naming convention.
func (CommuterRecord) TableName() string { return "commuters" }

// scoreField pairs a score value with the dataset column it came from,
// for validation messages that name the offending field.
type scoreField struct {
	name  string
	value int
}

func (r *CommuterRecord) scoreFields() []scoreField {
	return []scoreField{
		{"Attitude_Car_Score", r.AttitudeCar},
		{"Attitude_PT_Score", r.AttitudePT},
		{"Attitude_WalkCycle_Score", r.AttitudeWalkCycle},
		{"SN_Car_Score", r.SNCar},
		{"SN_PT_Score", r.SNPT},
		{"SN_WalkCycle_Score", r.SNWalkCycle},
		{"PBC_Car_Score", r.PBCCar},
		{"PBC_PT_Score", r.PBCPT},
		{"PBC_WalkCycle_Score", r.PBCWalkCycle},
		{"Intention_Car_Score", r.IntentionCar},
		{"Intention_PT_Score", r.IntentionPT},
		{"Intention_WalkCycle_Score", r.IntentionWalkCycle},
	}
}

// Validate checks that the record carries a complete, in-range score set.
// A zero score is reported as a missing field rather than silently treated
// as a low score, because a fabricated default would fabricate behavioral
// claims downstream.
func (r *CommuterRecord) Validate() error {
	if r.CommuterID == "" {
		return NewError(ErrIncompleteProfile, "commuter id is empty")
	}
	if r.UsualMode == "" {
		return NewError(ErrIncompleteProfile,
			fmt.Sprintf("commuter %s: usual commute mode is empty", r.CommuterID))
	}
	for _, f := range r.scoreFields() {
		if f.value == 0 {
			return NewError(ErrIncompleteProfile,
				fmt.Sprintf("commuter %s: missing score field %s", r.CommuterID, f.name))
		}
		if f.value < ScoreMin || f.value > ScoreMax {
			return NewError(ErrIncompleteProfile,
				fmt.Sprintf("commuter %s: score %s=%d outside [%d,%d]",
					r.CommuterID, f.name, f.value, ScoreMin, ScoreMax))
		}
	}
	return nil
}

// UsesPublicTransport reports whether the commuter's usual mode is PT.
func (r *CommuterRecord) UsesPublicTransport() bool {
	return r.UsualMode == ModePublicTransport
}

package types

import (
	"strings"
	"testing"
)

func completeRecord() CommuterRecord {
	return CommuterRecord{
		CommuterID:         "101",
		UsualMode:          ModePublicTransport,
		AttitudeCar:        3,
		AttitudePT:         5,
		AttitudeWalkCycle:  4,
		SNCar:              3,
		SNPT:               4,
		SNWalkCycle:        4,
		PBCCar:             3,
		PBCPT:              5,
		PBCWalkCycle:       4,
		IntentionCar:       3,
		IntentionPT:        5,
		IntentionWalkCycle: 4,
	}
}

func TestCommuterRecord_ValidateComplete(t *testing.T) {
	t.Parallel()

	r := completeRecord()
	if err := r.Validate(); err != nil {
		t.Fatalf("complete record should validate: %v", err)
	}
}

func TestCommuterRecord_ValidateMissingScore(t *testing.T) {
	t.Parallel()

	r := completeRecord()
	r.SNPT = 0

	err := r.Validate()
	if err == nil {
		t.Fatal("expected error for missing score")
	}
	if GetErrorCode(err) != ErrIncompleteProfile {
		t.Fatalf("unexpected code: %s", GetErrorCode(err))
	}
	if !strings.Contains(err.Error(), "SN_PT_Score") {
		t.Fatalf("error should name the missing field: %v", err)
	}
}

func TestCommuterRecord_ValidateOutOfRange(t *testing.T) {
	t.Parallel()

	r := completeRecord()
	r.IntentionCar = 9

	err := r.Validate()
	if err == nil {
		t.Fatal("expected error for out-of-range score")
	}
	if !strings.Contains(err.Error(), "Intention_Car_Score") {
		t.Fatalf("error should name the field: %v", err)
	}
}

func TestCommuterRecord_UsesPublicTransport(t *testing.T) {
	t.Parallel()

	r := completeRecord()
	if !r.UsesPublicTransport() {
		t.Fatal("PT-usual record should report true")
	}
	r.UsualMode = ModeCar
	if r.UsesPublicTransport() {
		t.Fatal("car-usual record should report false")
	}
}

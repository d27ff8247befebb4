package motor

import (
	"math"
	"testing"
)

func TestRewindTurns_MatchingKVKeepsReferenceTurns(t *testing.T) {
	// 2250 RPM on 36 V is exactly the reference 62.5 RPM/V: no rewind.
	turns, err := RewindTurns(2250, 36, DefaultRewindReference())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if turns != 30 {
		t.Errorf("RewindTurns() = %d, want 30", turns)
	}
}

func TestRewindTurns_HalfKVDoublesTurns(t *testing.T) {
	turns, err := RewindTurns(1125, 36, DefaultRewindReference())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if turns != 60 {
		t.Errorf("RewindTurns() = %d, want 60", turns)
	}
}

func TestRewindTurns_RoundsToNearestTurn(t *testing.T) {
	// newKV = 2000/36 ≈ 55.56, turns = 30 × 62.5/55.56 ≈ 33.75 → 34.
	turns, err := RewindTurns(2000, 36, DefaultRewindReference())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if turns != 34 {
		t.Errorf("RewindTurns() = %d, want 34", turns)
	}
}

func TestRewindTurns_CustomReference(t *testing.T) {
	turns, err := RewindTurns(1000, 10, RewindReference{KV: 200, Turns: 14})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// newKV = 100, turns = 14 × 200/100 = 28.
	if turns != 28 {
		t.Errorf("RewindTurns() = %d, want 28", turns)
	}
}

func TestRewindTurns_RejectsNonPositiveInputs(t *testing.T) {
	tests := []struct {
		name  string
		rpm   float64
		volts float64
		ref   RewindReference
	}{
		{"zero rpm", 0, 36, DefaultRewindReference()},
		{"negative rpm", -100, 36, DefaultRewindReference()},
		{"NaN rpm", math.NaN(), 36, DefaultRewindReference()},
		{"zero volts", 2250, 0, DefaultRewindReference()},
		{"negative volts", 2250, -12, DefaultRewindReference()},
		{"zero reference KV", 2250, 36, RewindReference{KV: 0, Turns: 30}},
		{"zero reference turns", 2250, 36, RewindReference{KV: 62.5, Turns: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RewindTurns(tt.rpm, tt.volts, tt.ref); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

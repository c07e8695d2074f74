package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfidence_Base(t *testing.T) {
	tests := []struct {
		existing  Reliability
		candidate Reliability
		want      float64
	}{
		{ReliabilityMedium, ReliabilityMedium, 0.9},
		{ReliabilityMedium, ReliabilityHigh, 0.8},
		{ReliabilityLow, ReliabilityHigh, 0.6},
		{ReliabilityVeryLow, ReliabilityVeryHigh, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.existing.String()+"_"+tt.candidate.String(), func(t *testing.T) {
			got := Confidence(tt.existing, tt.candidate, "a", "b")
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestConfidence_CloseNumbersEarnBonus(t *testing.T) {
	near := Confidence(ReliabilityMedium, ReliabilityHigh, 45.0, 47.0)
	far := Confidence(ReliabilityMedium, ReliabilityHigh, 45.0, 90.0)

	assert.InDelta(t, 1.0, near, 1e-9)
	assert.InDelta(t, 0.8, far, 1e-9)
	assert.GreaterOrEqual(t, near-far, 0.2-1e-9)
}

func TestConfidence_BonusCappedForEqualReliability(t *testing.T) {
	// base clamps to 0.9, so the bonus lifts it only to the 1.0 cap
	near := Confidence(ReliabilityHigh, ReliabilityHigh, 45.0, 47.0)
	far := Confidence(ReliabilityHigh, ReliabilityHigh, 45.0, 90.0)

	assert.InDelta(t, 1.0, near, 1e-9)
	assert.InDelta(t, 0.9, far, 1e-9)
	assert.InDelta(t, 0.1, near-far, 1e-9)

	for gap := 1; gap <= 4; gap++ {
		existing := ReliabilityVeryLow
		candidate := existing + Reliability(gap)
		lift := Confidence(existing, candidate, 45.0, 47.0) - Confidence(existing, candidate, 45.0, 90.0)
		assert.InDelta(t, 0.2, lift, 1e-9, "gap %d", gap)
	}
}

func TestConfidence_AlwaysInRange(t *testing.T) {
	values := []any{0.0, 1.0, 45.0, 46.0, -3.0, "x", nil, []string{"a"}}
	for r1 := ReliabilityVeryLow; r1 <= ReliabilityVeryHigh; r1++ {
		for r2 := ReliabilityVeryLow; r2 <= ReliabilityVeryHigh; r2++ {
			for _, a := range values {
				for _, b := range values {
					c := Confidence(r1, r2, a, b)
					assert.GreaterOrEqual(t, c, 0.0)
					assert.LessOrEqual(t, c, 1.0)
				}
			}
		}
	}
}

func TestDetect_ConflictsFollowCatalogOrder(t *testing.T) {
	engine := NewEngine()
	existing := Fields{FieldBeam: 8.0, FieldVesselName: "Serenity", FieldYearBuilt: 2001.0}
	candidate := Fields{FieldYearBuilt: 2002.0, FieldBeam: 8.4, FieldVesselName: "Tranquility"}

	conflicts := engine.Detect(existing, candidate, SourceLloyds, SourceDatabase)

	fields := make([]FieldName, len(conflicts))
	for i, c := range conflicts {
		fields[i] = c.Field
	}
	assert.Equal(t, []FieldName{FieldVesselName, FieldBeam, FieldYearBuilt}, fields)
}

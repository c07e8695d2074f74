package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	base := MergeConflict{
		Field:                FieldBuilder,
		ExistingValue:        "Feadship",
		CandidateValue:       "Feadship Royal Dutch Shipyards",
		ExistingReliability:  ReliabilityMedium,
		CandidateReliability: ReliabilityMedium,
	}

	tests := []struct {
		name   string
		mutate func(c *MergeConflict)
		want   any
		ok     bool
	}{
		{"prefer_existing", func(c *MergeConflict) { c.Policy = PolicyPreferExisting }, "Feadship", true},
		{"prefer_new", func(c *MergeConflict) { c.Policy = PolicyPreferNew }, "Feadship Royal Dutch Shipyards", true},
		{"prefer_newer behaves like prefer_new", func(c *MergeConflict) { c.Policy = PolicyPreferNewer }, "Feadship Royal Dutch Shipyards", true},
		{"prefer_reliable equal keeps existing", func(c *MergeConflict) { c.Policy = PolicyPreferReliable }, "Feadship", true},
		{"prefer_reliable higher candidate wins", func(c *MergeConflict) {
			c.Policy = PolicyPreferReliable
			c.CandidateReliability = ReliabilityHigh
		}, "Feadship Royal Dutch Shipyards", true},
		{"prefer_reliable lower candidate loses", func(c *MergeConflict) {
			c.Policy = PolicyPreferReliable
			c.CandidateReliability = ReliabilityLow
		}, "Feadship", true},
		{"prefer_complete longer string wins", func(c *MergeConflict) { c.Policy = PolicyPreferComplete }, "Feadship Royal Dutch Shipyards", true},
		{"prefer_complete shorter string loses", func(c *MergeConflict) {
			c.Policy = PolicyPreferComplete
			c.CandidateValue = "Fead"
		}, "Feadship", true},
		{"prefer_complete tie keeps existing", func(c *MergeConflict) {
			c.Policy = PolicyPreferComplete
			c.CandidateValue = "Benettis"
		}, "Feadship", true},
		{"manual is pending", func(c *MergeConflict) { c.Policy = PolicyManual }, nil, false},
		{"identifier ignores policy", func(c *MergeConflict) {
			c.Field = FieldIMONumber
			c.Policy = PolicyPreferNew
			c.CandidateReliability = ReliabilityVeryHigh
		}, "Feadship", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			got, ok := Resolve(c)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsMoreComplete(t *testing.T) {
	assert.True(t, isMoreComplete(12.0, 0.0))
	assert.False(t, isMoreComplete(0.0, 12.0))
	assert.False(t, isMoreComplete(14.0, 12.0))
	assert.True(t, isMoreComplete([]string{"a", "b"}, []string{"a"}))
	assert.False(t, isMoreComplete([]string{"a"}, []string{"b"}))
	assert.False(t, isMoreComplete("  ab  ", "abc"))
	assert.False(t, isMoreComplete(true, false))
}

func TestResolveManually(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	engine := NewEngine(WithClock(func() time.Time { return at }))
	c := MergeConflict{Field: FieldClassificationSociety, ExistingValue: "lr", CandidateValue: "abs", Policy: PolicyManual}

	d := engine.ResolveManually(c, "abs", "user-7")

	assert.Equal(t, FieldClassificationSociety, d.Field)
	assert.Equal(t, "abs", d.Value)
	assert.True(t, d.Manual)
	assert.Equal(t, "user-7", d.ActorID)
	assert.Equal(t, at, d.DecidedAt)
	assert.Equal(t, "lr", c.ExistingValue)
}

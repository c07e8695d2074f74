package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serenity() Fields {
	return Fields{
		FieldVesselName:    "Serenity",
		FieldLengthOverall: 45.0,
		FieldIMONumber:     "9074729",
	}
}

func TestMergeOne_AcceptsNewFieldAndKeepsEquallyReliableValue(t *testing.T) {
	engine := NewEngine()

	result := engine.MergeOne(serenity(), Candidate{
		Source: SourceBoatInternational,
		Fields: Fields{FieldLengthOverall: 45.3, FieldBuilder: "Feadship"},
	})

	require.True(t, result.Success)
	assert.Equal(t, "Feadship", result.Merged[FieldBuilder])
	assert.Equal(t, 45.0, result.Merged[FieldLengthOverall])
	assert.Equal(t, "Serenity", result.Merged[FieldVesselName])
	assert.Equal(t, "9074729", result.Merged[FieldIMONumber])

	require.Len(t, result.Conflicts, 1)
	c := result.Conflicts[0]
	assert.Equal(t, FieldLengthOverall, c.Field)
	assert.Equal(t, ReliabilityMedium, c.ExistingReliability)
	assert.Equal(t, ReliabilityMedium, c.CandidateReliability)
	assert.Equal(t, PolicyPreferReliable, c.Policy)
	assert.InDelta(t, 1.0, c.Confidence, 1e-9)

	assert.Equal(t, []FieldName{FieldLengthOverall}, result.AutoResolved)
	assert.Empty(t, result.ManualRequired)
	assert.Empty(t, result.Warnings)
}

func TestMergeOne_IdentifiersNeverChange(t *testing.T) {
	engine := NewEngine()

	for _, field := range []FieldName{FieldIMONumber, FieldMMSINumber, FieldOfficialNumber} {
		t.Run(string(field), func(t *testing.T) {
			existing := Fields{field: "9074729"}
			result := engine.MergeOne(existing, Candidate{
				Source: SourceIMORegistry,
				Fields: Fields{field: "1234567"},
			})

			require.True(t, result.Success)
			assert.Equal(t, "9074729", result.Merged[field])
			require.Len(t, result.Conflicts, 1)
			assert.Equal(t, PolicyPreferExisting, result.Conflicts[0].Policy)
			assert.Contains(t, result.AutoResolved, field)
			assert.NotContains(t, result.ManualRequired, field)
		})
	}
}

func TestMergeOne_AbsentExistingAcceptsCandidate(t *testing.T) {
	engine := NewEngine()
	existing := Fields{FieldBeam: 0.0, FieldBuilder: "", FieldImages: []string{}}

	result := engine.MergeOne(existing, Candidate{
		Source: SourceUserInput,
		Fields: Fields{FieldBeam: 8.5, FieldBuilder: "Lürssen", FieldImages: []string{"a.jpg"}},
	})

	require.True(t, result.Success)
	assert.Equal(t, 8.5, result.Merged[FieldBeam])
	assert.Equal(t, "Lürssen", result.Merged[FieldBuilder])
	assert.Equal(t, []string{"a.jpg"}, result.Merged[FieldImages])
	assert.Empty(t, result.Conflicts)
}

func TestMergeOne_EqualValuesKeepExisting(t *testing.T) {
	engine := NewEngine()
	existing := Fields{FieldLengthOverall: 45.0, FieldVesselName: "Serenity", FieldVesselType: "Motor Yacht"}

	result := engine.MergeOne(existing, Candidate{
		Source: SourceMarineTraffic,
		Fields: Fields{FieldLengthOverall: 45.005, FieldVesselName: "  SERENITY ", FieldVesselType: "motor_yacht"},
	})

	require.True(t, result.Success)
	assert.Equal(t, 45.0, result.Merged[FieldLengthOverall])
	assert.Equal(t, "Serenity", result.Merged[FieldVesselName])
	assert.Equal(t, "Motor Yacht", result.Merged[FieldVesselType])
	assert.Empty(t, result.Conflicts)
}

func TestMergeOne_BlankCandidateValuesAreSkipped(t *testing.T) {
	engine := NewEngine()
	result := engine.MergeOne(serenity(), Candidate{
		Source: SourceMarineTraffic,
		Fields: Fields{FieldVesselName: "", FieldBuilder: nil},
	})

	require.True(t, result.Success)
	assert.Equal(t, "Serenity", result.Merged[FieldVesselName])
	assert.NotContains(t, result.Merged, FieldBuilder)
	assert.Empty(t, result.Conflicts)
}

func TestMergeOne_HigherReliabilityWins(t *testing.T) {
	engine := NewEngine()
	result := engine.MergeOne(serenity(), Candidate{
		Source: SourceMarineTraffic,
		Fields: Fields{FieldLengthOverall: 47.0},
	})

	require.True(t, result.Success)
	assert.Equal(t, 47.0, result.Merged[FieldLengthOverall])
	assert.Equal(t, []FieldName{FieldLengthOverall}, result.AutoResolved)
}

func TestMergeOne_ManualPolicyKeepsExisting(t *testing.T) {
	engine := NewEngine()
	existing := Fields{FieldClassificationSociety: "lr"}

	result := engine.MergeOne(existing, Candidate{
		Source: SourceClassificationSociety,
		Fields: Fields{FieldClassificationSociety: "abs"},
	})

	require.True(t, result.Success)
	assert.Equal(t, "lr", result.Merged[FieldClassificationSociety])
	assert.Equal(t, []FieldName{FieldClassificationSociety}, result.ManualRequired)
	assert.Empty(t, result.AutoResolved)
}

func TestMergeOne_AutoResolveOff(t *testing.T) {
	engine := NewEngine()
	result := engine.MergeOne(serenity(), Candidate{
		Source: SourceIMORegistry,
		Fields: Fields{FieldLengthOverall: 50.0, FieldVesselName: "Serenity II"},
	}, WithAutoResolve(false))

	require.True(t, result.Success)
	assert.Equal(t, 45.0, result.Merged[FieldLengthOverall])
	assert.Equal(t, "Serenity", result.Merged[FieldVesselName])
	assert.ElementsMatch(t, []FieldName{FieldLengthOverall, FieldVesselName}, result.ManualRequired)
	assert.Empty(t, result.AutoResolved)
}

func TestMergeOne_ExistingSourceOption(t *testing.T) {
	engine := NewEngine()
	result := engine.MergeOne(serenity(), Candidate{
		Source: SourceMarineTraffic,
		Fields: Fields{FieldLengthOverall: 47.0},
	}, WithExistingSource(SourceIMORegistry))

	require.True(t, result.Success)
	assert.Equal(t, 45.0, result.Merged[FieldLengthOverall])
	assert.Equal(t, ReliabilityVeryHigh, result.Conflicts[0].ExistingReliability)
}

func TestMergeOne_UnknownFieldsWarn(t *testing.T) {
	engine := NewEngine()
	result := engine.MergeOne(Fields{}, Candidate{
		Source: SourceWordPress,
		Fields: Fields{"hull_colour": "white", FieldBuilder: "Benetti"},
	})

	require.True(t, result.Success)
	assert.Equal(t, "Benetti", result.Merged[FieldBuilder])
	assert.NotContains(t, result.Merged, FieldName("hull_colour"))
	assert.Contains(t, result.Warnings, `Ignored unknown field "hull_colour" from wordpress`)
}

func TestMergeOne_CrossFieldWarnings(t *testing.T) {
	engine := NewEngine()
	result := engine.MergeOne(Fields{FieldLengthOverall: 20.0}, Candidate{
		Source: SourceMarineTraffic,
		Fields: Fields{FieldBeam: 25.0, FieldMaxSpeed: 80.0},
	})

	require.True(t, result.Success)
	assert.Contains(t, result.Warnings, "Beam is greater than length overall - please verify")
	assert.Contains(t, result.Warnings, "Maximum speed (80 knots) seems very high")
}

func TestMergeOne_ValidatorWarningsAttached(t *testing.T) {
	engine := NewEngine(WithValidator(ValidatorFunc(func(f Fields) []string {
		return []string{"custom check"}
	})))
	result := engine.MergeOne(Fields{}, Candidate{Source: SourceLloyds, Fields: Fields{FieldBuilder: "Oceanco"}})

	require.True(t, result.Success)
	assert.Equal(t, []string{"custom check"}, result.Warnings)
}

func TestMergeOne_RecoversFromInternalFailure(t *testing.T) {
	engine := NewEngine(WithValidator(ValidatorFunc(func(f Fields) []string {
		panic("validator exploded")
	})))

	result := engine.MergeOne(serenity(), Candidate{
		Source: SourceMarineTraffic,
		Fields: Fields{FieldBuilder: "Feadship"},
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "validator exploded")
	assert.Empty(t, result.Merged)
	assert.NotNil(t, result.Merged)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.AutoResolved)
	assert.Empty(t, result.ManualRequired)
	assert.Empty(t, result.Warnings)
}

func TestMergeOne_DoesNotMutateInputs(t *testing.T) {
	engine := NewEngine()
	existing := Fields{FieldImages: []string{"a.jpg"}, FieldLengthOverall: 45.0}
	candidate := Candidate{Source: SourceMarineTraffic, Fields: Fields{FieldLengthOverall: 47.0}}

	result := engine.MergeOne(existing, candidate)
	result.Merged[FieldImages].([]string)[0] = "changed.jpg"

	assert.Equal(t, 45.0, existing[FieldLengthOverall])
	assert.Equal(t, []string{"a.jpg"}, existing[FieldImages])
	assert.Equal(t, 47.0, candidate.Fields[FieldLengthOverall])
}

func TestMergeMany_SingleCandidateMatchesMergeOne(t *testing.T) {
	engine := NewEngine()
	candidate := Candidate{
		Source: SourceMarineTraffic,
		Fields: Fields{FieldLengthOverall: 47.0, FieldBuilder: "Feadship", FieldIMONumber: "1234567"},
	}

	one := engine.MergeOne(serenity(), candidate)
	many := engine.MergeMany(serenity(), []Candidate{candidate})

	assert.Equal(t, one, many)
}

func TestMergeMany_FoldsInOrder(t *testing.T) {
	engine := NewEngine()
	existing := Fields{FieldLengthOverall: 45.0, FieldClassificationSociety: "lr"}

	result := engine.MergeMany(existing, []Candidate{
		{Source: SourceBoatInternational, Fields: Fields{
			FieldLengthOverall: 46.0, FieldBuilder: "Feadship", FieldClassificationSociety: "abs",
		}},
		{Source: SourceMarineTraffic, Fields: Fields{
			FieldLengthOverall: 46.0, FieldYearBuilt: 2009.0, FieldClassificationSociety: "dnv_gl",
		}},
	})

	require.True(t, result.Success)
	assert.Equal(t, 46.0, result.Merged[FieldLengthOverall])
	assert.Equal(t, "Feadship", result.Merged[FieldBuilder])
	assert.Equal(t, 2009.0, result.Merged[FieldYearBuilt])
	// pending fields keep the original value across passes
	assert.Equal(t, "lr", result.Merged[FieldClassificationSociety])

	require.Len(t, result.Conflicts, 4)
	assert.Equal(t, SourceBoatInternational, result.Conflicts[0].CandidateSource)
	assert.Equal(t, SourceMarineTraffic, result.Conflicts[3].CandidateSource)
	assert.Equal(t, []FieldName{FieldLengthOverall}, result.AutoResolved)
	assert.Equal(t, []FieldName{FieldClassificationSociety}, result.ManualRequired)
}

func TestMergeMany_StopsAtFirstFailure(t *testing.T) {
	calls := 0
	engine := NewEngine(WithValidator(ValidatorFunc(func(f Fields) []string {
		calls++
		if calls == 1 {
			panic("first pass fails")
		}
		return nil
	})))

	result := engine.MergeMany(serenity(), []Candidate{
		{Source: SourceMarineTraffic, Fields: Fields{FieldBuilder: "Feadship"}},
		{Source: SourceLloyds, Fields: Fields{FieldYearBuilt: 2009.0}},
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "first pass fails")
	assert.Equal(t, 1, calls)
}

func TestMergeMany_NoCandidates(t *testing.T) {
	engine := NewEngine()
	result := engine.MergeMany(serenity(), nil)

	require.True(t, result.Success)
	assert.Equal(t, serenity(), result.Merged)
	assert.Empty(t, result.Conflicts)
}

func TestDetect(t *testing.T) {
	engine := NewEngine()
	existing := Fields{FieldVesselName: "Serenity", FieldLengthOverall: 45.0, FieldBeam: 0.0}
	candidate := Fields{
		FieldVesselName:    "serenity",
		FieldLengthOverall: 60.0,
		FieldBeam:          9.0,
		FieldBuilder:       "Feadship",
		"unknown":          "x",
	}

	conflicts := engine.Detect(existing, candidate, SourceMarineTraffic, SourceDatabase)

	require.Len(t, conflicts, 1)
	assert.Equal(t, FieldLengthOverall, conflicts[0].Field)
	assert.Equal(t, 45.0, conflicts[0].ExistingValue)
	assert.Equal(t, 60.0, conflicts[0].CandidateValue)
	assert.Equal(t, FieldNumeric, conflicts[0].FieldType)
	assert.Equal(t, SourceMarineTraffic, conflicts[0].CandidateSource)
	assert.Equal(t, SourceDatabase, conflicts[0].ExistingSource)
}

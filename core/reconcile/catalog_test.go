package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog_IdentifiersStayPinned(t *testing.T) {
	c := NewCatalog(map[FieldName]Policy{
		FieldIMONumber:      PolicyPreferNew,
		FieldMMSINumber:     PolicyManual,
		FieldOfficialNumber: PolicyPreferReliable,
		FieldBuilder:        PolicyManual,
		"not_a_field":       PolicyPreferNew,
	})

	assert.Equal(t, PolicyPreferExisting, c.Policy(FieldIMONumber))
	assert.Equal(t, PolicyPreferExisting, c.Policy(FieldMMSINumber))
	assert.Equal(t, PolicyPreferExisting, c.Policy(FieldOfficialNumber))
	assert.Equal(t, PolicyManual, c.Policy(FieldBuilder))
	_, ok := c.Lookup("not_a_field")
	assert.False(t, ok)

	// overrides never leak into the shared catalog
	assert.Equal(t, PolicyPreferComplete, DefaultCatalog().Policy(FieldBuilder))
}

func TestCatalog_Defaults(t *testing.T) {
	c := DefaultCatalog()

	assert.Equal(t, FieldString, c.Type("unknown_field"))
	assert.Equal(t, PolicyPreferReliable, c.Policy("unknown_field"))
	assert.Equal(t, FieldNumeric, c.Type(FieldLengthOverall))
	assert.Equal(t, FieldText, c.Type(FieldDescription))
	assert.Equal(t, FieldEnum, c.Type(FieldVesselType))
	assert.Equal(t, FieldBoolean, c.Type(FieldSuperyacht))
	assert.Equal(t, FieldDate, c.Type(FieldSurveyDate))
	assert.Equal(t, FieldList, c.Type(FieldImages))
	assert.Equal(t, PolicyPreferNewer, c.Policy(FieldDestination))
	assert.Equal(t, PolicyManual, c.Policy(FieldClassNotation))

	names := c.Names()
	assert.Equal(t, FieldVesselName, names[0])
	assert.Len(t, c.Specs(), len(names))
}

func TestCatalog_GetSetRoundTrip(t *testing.T) {
	c := DefaultCatalog()
	v := &Vessel{}
	survey := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, c.Set(v, FieldVesselName, "Serenity"))
	require.NoError(t, c.Set(v, FieldYearBuilt, 2009.4))
	require.NoError(t, c.Set(v, FieldLengthOverall, 45.5))
	require.NoError(t, c.Set(v, FieldSuperyacht, true))
	require.NoError(t, c.Set(v, FieldSurveyDate, survey))
	require.NoError(t, c.Set(v, FieldImages, []string{"a.jpg"}))

	assert.Equal(t, "Serenity", v.VesselName)
	assert.Equal(t, 2009, v.YearBuilt)
	assert.Equal(t, 2009.0, c.Get(v, FieldYearBuilt))
	assert.Equal(t, 45.5, c.Get(v, FieldLengthOverall))
	assert.Equal(t, true, c.Get(v, FieldSuperyacht))
	assert.Equal(t, survey, c.Get(v, FieldSurveyDate))
	assert.Equal(t, []string{"a.jpg"}, c.Get(v, FieldImages))

	require.NoError(t, c.Set(v, FieldSurveyDate, nil))
	assert.Nil(t, v.SurveyDate)
	assert.Nil(t, c.Get(v, FieldSurveyDate))
}

func TestCatalog_SetErrors(t *testing.T) {
	c := DefaultCatalog()
	v := &Vessel{}

	assert.ErrorIs(t, c.Set(v, "hull_colour", "white"), ErrUnknownField)
	assert.ErrorIs(t, c.Set(v, FieldBeam, "wide"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set(v, FieldSurveyDate, "2024-01-01"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set(v, FieldImages, "a.jpg"), ErrInvalidValue)
}

func TestVessel_FieldsSnapshot(t *testing.T) {
	v := &Vessel{
		VesselName:    "Serenity",
		IMONumber:     "9074729",
		LengthOverall: 45,
		Images:        []string{"a.jpg"},
	}

	f := v.Fields()
	assert.Equal(t, Fields{
		FieldVesselName:    "Serenity",
		FieldIMONumber:     "9074729",
		FieldLengthOverall: 45.0,
		FieldImages:        []string{"a.jpg"},
	}, f)

	f[FieldImages].([]string)[0] = "b.jpg"
	assert.Equal(t, "a.jpg", v.Images[0])
}

func TestCatalog_Apply(t *testing.T) {
	c := DefaultCatalog()

	v := &Vessel{VesselName: "Serenity"}
	require.NoError(t, c.Apply(v, Fields{FieldBuilder: "Feadship", FieldYearBuilt: 2009.0}))
	assert.Equal(t, "Feadship", v.Builder)
	assert.Equal(t, 2009, v.YearBuilt)

	unknown := &Vessel{}
	err := c.Apply(unknown, Fields{FieldBuilder: "Feadship", "hull_colour": "white"})
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Empty(t, unknown.Builder)

	err = c.Apply(&Vessel{}, Fields{FieldBeam: "wide"})
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestPolicyText(t *testing.T) {
	for _, p := range []Policy{PolicyPreferReliable, PolicyPreferExisting, PolicyPreferNew, PolicyPreferComplete, PolicyPreferNewer, PolicyManual} {
		text, err := p.MarshalText()
		require.NoError(t, err)
		var back Policy
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, p, back)
	}
	_, err := ParsePolicy("prefer_loudest")
	assert.Error(t, err)
}

func TestReliabilityTable(t *testing.T) {
	table := DefaultReliability()

	assert.Equal(t, ReliabilityVeryHigh, table.Lookup(SourceIMORegistry))
	assert.Equal(t, ReliabilityHigh, table.Lookup(SourceMarineTraffic))
	assert.Equal(t, ReliabilityMedium, table.Lookup(SourceDatabase))
	assert.Equal(t, ReliabilityLow, table.Lookup(SourceWordPress))
	assert.Equal(t, ReliabilityVeryLow, table.Lookup(SourceUserInput))
	assert.Equal(t, ReliabilityVeryLow, table.Lookup("carrier_pigeon"))

	extended := table.With("carrier_pigeon", ReliabilityLow)
	assert.Equal(t, ReliabilityLow, extended.Lookup("carrier_pigeon"))
	assert.Equal(t, ReliabilityVeryLow, table.Lookup("carrier_pigeon"))

	var r Reliability
	require.NoError(t, r.UnmarshalText([]byte("high")))
	assert.Equal(t, ReliabilityHigh, r)
	assert.Error(t, r.UnmarshalText([]byte("sky_high")))
}

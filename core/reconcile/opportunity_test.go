package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpportunities_YachtWithoutIdentifiers(t *testing.T) {
	opps := Opportunities(&Vessel{VesselType: "motor_yacht", VesselName: "Azzam"})

	require.Len(t, opps, 1)
	assert.Equal(t, SourceBoatInternational, opps[0].Source)
	assert.Equal(t, IdentifierName, opps[0].IdentifierType)
	assert.Equal(t, "Azzam", opps[0].IdentifierValue)
	assert.InDelta(t, 0.70, opps[0].Confidence, 1e-9)
	assert.Equal(t, 6, opps[0].EstimatedFields)
}

func TestOpportunities_RankedByConfidence(t *testing.T) {
	opps := Opportunities(&Vessel{
		VesselName: "Serenity",
		VesselType: "superyacht",
		IMONumber:  "9074729",
		MMSINumber: "235012345",
	})

	require.Len(t, opps, 3)
	assert.Equal(t, IdentifierIMO, opps[0].IdentifierType)
	assert.Equal(t, SourceMarineTraffic, opps[0].Source)
	assert.Equal(t, 8, opps[0].EstimatedFields)
	assert.Equal(t, IdentifierMMSI, opps[1].IdentifierType)
	assert.Equal(t, 7, opps[1].EstimatedFields)
	assert.Equal(t, IdentifierName, opps[2].IdentifierType)
	for i := 1; i < len(opps); i++ {
		assert.GreaterOrEqual(t, opps[i-1].Confidence, opps[i].Confidence)
	}
}

func TestOpportunities_None(t *testing.T) {
	assert.Empty(t, Opportunities(&Vessel{VesselName: "Ever Given", VesselType: "container_ship"}))
	assert.Empty(t, Opportunities(&Vessel{VesselType: "yacht", VesselName: "  "}))
	assert.Empty(t, Opportunities(nil))
}

func TestIsYachtType(t *testing.T) {
	for _, tag := range []string{"yacht", "motor_yacht", "sailing_yacht", "superyacht", "megayacht"} {
		assert.True(t, IsYachtType(tag), tag)
	}
	assert.False(t, IsYachtType("catamaran"))
	assert.False(t, IsYachtType(""))
}

package sources

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"vessel-manager/core/reconcile"
	"vessel-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func body(s string) io.ReadCloser {
	return io.NopCloser(bytes.NewReader([]byte(s)))
}

func TestMapShipType(t *testing.T) {
	tests := map[string]string{
		"Pleasure Craft":   "yacht",
		"Motor Yacht":      "yacht",
		"General Cargo":    "cargo_ship",
		"Crude Oil Tanker": "tanker",
		"Passenger Ship":   "passenger_ship",
		"Fishing":          "fishing_vessel",
		"Tug":              "tug_boat",
		"Dredger":          "other",
	}
	for in, want := range tests {
		assert.Equal(t, want, MapShipType(in), in)
	}
}

func TestMapMarineTraffic(t *testing.T) {
	out := MapMarineTraffic(map[string]any{
		"SHIPNAME":  "SERENITY",
		"imo":       "9074729",
		"SHIP_TYPE": "Pleasure Craft",
		"LENGTH":    "45.5",
		"SPEED":     12.4,
		"CALLSIGN":  nil,
	})

	assert.Equal(t, map[string]any{
		"vessel_name":    "SERENITY",
		"imo_number":     "9074729",
		"vessel_type":    "yacht",
		"length_overall": "45.5",
	}, out)
}

func TestMapBoatInternational(t *testing.T) {
	out := MapBoatInternational(map[string]any{
		"vessel_name":    "Serenity",
		"max_speed":      "22 knots",
		"guest_capacity": 12,
		"imo_number":     "1234567",
	})

	assert.Equal(t, map[string]any{
		"vessel_name":    "Serenity",
		"max_speed":      "22 knots",
		"guest_capacity": 12,
	}, out)
}

func TestStorageAdapter_Fetch(t *testing.T) {
	ctx := context.Background()

	t.Run("MarineTraffic Record", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "vessel-data", "candidates/marinetraffic/imo/9074729.json", mock.Anything).
			Return(body(`{"SHIPNAME":"Serenity","IMO":9074729,"LENGTH":"45.5 m","YEAR_BUILT":"2009","SHIP_TYPE":"Yacht","DRAFT":"n/a"}`), nil)

		a := NewStorageAdapter(client, "vessel-data", "candidates", reconcile.SourceMarineTraffic, nil)
		cand, err := a.Fetch(ctx, reconcile.IdentifierIMO, "9074729")
		require.NoError(t, err)

		assert.Equal(t, reconcile.SourceMarineTraffic, cand.Source)
		assert.Equal(t, reconcile.Fields{
			reconcile.FieldVesselName:    "Serenity",
			reconcile.FieldIMONumber:     "9074729",
			reconcile.FieldLengthOverall: 45.5,
			reconcile.FieldYearBuilt:     2009.0,
			reconcile.FieldVesselType:    "yacht",
		}, cand.Fields)
	})

	t.Run("Name Lookup Is Escaped", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "vessel-data", "candidates/boat_international/name/Lady%20Moura.json", mock.Anything).
			Return(body(`{"vessel_name":"Lady Moura","builder":"Blohm+Voss"}`), nil)

		a := NewStorageAdapter(client, "vessel-data", "candidates", reconcile.SourceBoatInternational, nil)
		cand, err := a.Fetch(ctx, reconcile.IdentifierName, "Lady Moura")
		require.NoError(t, err)
		assert.Equal(t, "Blohm+Voss", cand.Fields[reconcile.FieldBuilder])
	})

	t.Run("Missing Record", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "vessel-data", mock.Anything, mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404})

		a := NewStorageAdapter(client, "vessel-data", "candidates", reconcile.SourceLloyds, nil)
		_, err := a.Fetch(ctx, reconcile.IdentifierIMO, "1")
		assert.True(t, errors.Is(err, reconcile.ErrNoMatch))
	})

	t.Run("Storage Down", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "vessel-data", mock.Anything, mock.Anything).
			Return(nil, errors.New("dial tcp: connection refused"))

		a := NewStorageAdapter(client, "vessel-data", "candidates", reconcile.SourceLloyds, nil)
		_, err := a.Fetch(ctx, reconcile.IdentifierIMO, "1")
		assert.True(t, errors.Is(err, reconcile.ErrSourceUnavailable))
	})

	t.Run("No Usable Fields", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "vessel-data", mock.Anything, mock.Anything).
			Return(body(`{"SPEED": 11}`), nil)

		a := NewStorageAdapter(client, "vessel-data", "candidates", reconcile.SourceMarineTraffic, nil)
		_, err := a.Fetch(ctx, reconcile.IdentifierMMSI, "235012345")
		assert.True(t, errors.Is(err, reconcile.ErrNoMatch))
	})

	t.Run("Blank Identifier", func(t *testing.T) {
		a := NewStorageAdapter(new(mocks.Client), "vessel-data", "candidates", reconcile.SourceMarineTraffic, nil)
		_, err := a.Fetch(ctx, reconcile.IdentifierIMO, " ")
		assert.True(t, errors.Is(err, reconcile.ErrNoMatch))
	})
}

func TestNewAdapters_Cached(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "vessel-data", "candidates/marinetraffic/mmsi/235012345.json", mock.Anything).
		Return(body(`{"MMSI":"235012345","BEAM":8.5}`), nil).Once()

	cache := reconcile.NewCandidateCache(time.Minute)
	adapters := NewAdapters(client, "vessel-data", "candidates",
		[]reconcile.Source{reconcile.SourceMarineTraffic, reconcile.SourceBoatInternational}, cache, nil)
	require.Len(t, adapters, 2)
	assert.Equal(t, reconcile.SourceBoatInternational, adapters[1].Source())

	for i := 0; i < 2; i++ {
		cand, err := adapters[0].Fetch(context.Background(), reconcile.IdentifierMMSI, "235012345")
		require.NoError(t, err)
		assert.Equal(t, 8.5, cand.Fields[reconcile.FieldBeam])
	}
	client.AssertNumberOfCalls(t, "GetObject", 1)
}

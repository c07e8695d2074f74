package vessel

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"vessel-manager/core/reconcile"
	"vessel-manager/feature/vessel/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var serenity = reconcile.Vessel{
	VesselName:            "Serenity",
	IMONumber:             "9074729",
	MMSINumber:            "235012345",
	VesselType:            "motor_yacht",
	LengthOverall:         45,
	ClassificationSociety: "lr",
}

// marineTraffic answers IMO lookups with a full record and MMSI lookups
// with voyage data.
func marineTraffic(calls *int32) reconcile.SourceAdapter {
	return reconcile.AdapterFunc{
		Tag: reconcile.SourceMarineTraffic,
		Fn: func(ctx context.Context, idType reconcile.IdentifierType, value string) (reconcile.Candidate, error) {
			if calls != nil {
				atomic.AddInt32(calls, 1)
			}
			switch idType {
			case reconcile.IdentifierIMO:
				return reconcile.Candidate{Source: reconcile.SourceMarineTraffic, Fields: reconcile.Fields{
					reconcile.FieldLengthOverall:         47.0,
					reconcile.FieldBuilder:               "Feadship",
					reconcile.FieldYearBuilt:             2009.0,
					reconcile.FieldClassificationSociety: "abs",
				}}, nil
			case reconcile.IdentifierMMSI:
				return reconcile.Candidate{Source: reconcile.SourceMarineTraffic, Fields: reconcile.Fields{
					reconcile.FieldDestination: "Monaco",
				}}, nil
			}
			return reconcile.Candidate{}, fmt.Errorf("%w: %s", reconcile.ErrNoMatch, value)
		},
	}
}

func failing(tag reconcile.Source, err error) reconcile.SourceAdapter {
	return reconcile.AdapterFunc{
		Tag: tag,
		Fn: func(ctx context.Context, idType reconcile.IdentifierType, value string) (reconcile.Candidate, error) {
			return reconcile.Candidate{}, err
		},
	}
}

func setupService(t *testing.T, adapters ...reconcile.SourceAdapter) (*Service, *Store) {
	store := setupStore(t)
	return NewService(store, nil, adapters, 2, zap.NewNop()), store
}

func TestService_Opportunities(t *testing.T) {
	svc, store := setupService(t, marineTraffic(nil))
	id := seedVessel(t, store, serenity)

	opps, err := svc.Opportunities(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, opps, 2)
	assert.Equal(t, reconcile.IdentifierIMO, opps[0].IdentifierType)
	assert.Equal(t, reconcile.IdentifierMMSI, opps[1].IdentifierType)

	_, err = svc.Opportunities(context.Background(), 999)
	assert.ErrorIs(t, err, ErrVesselNotFound)
}

func TestService_EnhancePreviewsWithoutWriting(t *testing.T) {
	svc, store := setupService(t, marineTraffic(nil))
	ctx := context.Background()
	id := seedVessel(t, store, serenity)

	res, err := svc.Enhance(ctx, id, models.EnhanceRequest{})
	require.NoError(t, err)

	assert.Equal(t, reconcile.IdentifierIMO, res.Opportunity.IdentifierType)
	assert.True(t, res.Result.Success)
	assert.Equal(t, []reconcile.FieldName{reconcile.FieldLengthOverall}, res.Result.AutoResolved)
	assert.Equal(t, []reconcile.FieldName{reconcile.FieldClassificationSociety}, res.Result.ManualRequired)
	assert.Equal(t, 2, res.Summary.Total)
	require.NotNil(t, res.Plan)
	assert.ElementsMatch(t, []reconcile.FieldName{
		reconcile.FieldLengthOverall, reconcile.FieldYearBuilt, reconcile.FieldBuilder,
	}, res.Plan.FieldNames())

	v, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 45.0, v.LengthOverall)
	assert.Empty(t, v.Builder)
}

func TestService_EnhanceSelection(t *testing.T) {
	svc, store := setupService(t, marineTraffic(nil))
	ctx := context.Background()
	id := seedVessel(t, store, serenity)

	res, err := svc.Enhance(ctx, id, models.EnhanceRequest{
		IdentifierType:  reconcile.IdentifierMMSI,
		IdentifierValue: "235012345",
	})
	require.NoError(t, err)
	assert.Equal(t, reconcile.SourceMarineTraffic, res.Candidate.Source)
	assert.Equal(t, "Monaco", res.Result.Merged[reconcile.FieldDestination])

	_, err = svc.Enhance(ctx, id, models.EnhanceRequest{Source: reconcile.SourceBoatInternational})
	assert.ErrorIs(t, err, ErrNoOpportunity)

	_, err = svc.Enhance(ctx, id, models.EnhanceRequest{
		IdentifierType:  reconcile.IdentifierName,
		IdentifierValue: "Serenity",
	})
	assert.ErrorIs(t, err, ErrSourceNotConfigured)

	bare := seedVessel(t, store, reconcile.Vessel{VesselName: "Nameless", VesselType: "cargo_ship"})
	_, err = svc.Enhance(ctx, bare, models.EnhanceRequest{})
	assert.ErrorIs(t, err, ErrNoOpportunity)
}

func TestService_EnhanceSourceErrors(t *testing.T) {
	down := fmt.Errorf("%w: timeout", reconcile.ErrSourceUnavailable)
	svc, store := setupService(t, failing(reconcile.SourceMarineTraffic, down))
	id := seedVessel(t, store, serenity)

	_, err := svc.Enhance(context.Background(), id, models.EnhanceRequest{})
	assert.ErrorIs(t, err, reconcile.ErrSourceUnavailable)
}

func TestService_EnhanceAll(t *testing.T) {
	imoDown := reconcile.AdapterFunc{
		Tag: reconcile.SourceMarineTraffic,
		Fn: func(ctx context.Context, idType reconcile.IdentifierType, value string) (reconcile.Candidate, error) {
			if idType == reconcile.IdentifierIMO {
				return reconcile.Candidate{}, fmt.Errorf("%w: rate limited", reconcile.ErrSourceUnavailable)
			}
			return marineTraffic(nil).Fetch(ctx, idType, value)
		},
	}
	boatIntl := reconcile.AdapterFunc{
		Tag: reconcile.SourceBoatInternational,
		Fn: func(ctx context.Context, idType reconcile.IdentifierType, value string) (reconcile.Candidate, error) {
			return reconcile.Candidate{Source: reconcile.SourceBoatInternational, Fields: reconcile.Fields{
				reconcile.FieldBuilder:       "Feadship",
				reconcile.FieldGuestCapacity: 12.0,
			}}, nil
		},
	}
	svc, store := setupService(t, imoDown, boatIntl)
	id := seedVessel(t, store, serenity)

	result, candidates, err := svc.EnhanceAll(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, reconcile.SourceMarineTraffic, candidates[0].Source)
	assert.Equal(t, reconcile.SourceBoatInternational, candidates[1].Source)

	assert.True(t, result.Success)
	assert.Equal(t, "Monaco", result.Merged[reconcile.FieldDestination])
	assert.Equal(t, "Feadship", result.Merged[reconcile.FieldBuilder])
	assert.Equal(t, 12.0, result.Merged[reconcile.FieldGuestCapacity])
	assert.Equal(t, 45.0, result.Merged[reconcile.FieldLengthOverall])
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "marinetraffic lookup by imo skipped")
}

func TestService_ApplyCandidate(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()
	id := seedVessel(t, store, serenity)

	req := models.ApplyRequest{
		Source: reconcile.SourceLloyds,
		Fields: map[string]any{
			"length_overall":         "47.2 m",
			"builder":                "Feadship",
			"classification_society": "BV",
			"hull_colour":            "white",
		},
		ActorID: "user-7",
		DryRun:  true,
	}

	t.Run("dry run", func(t *testing.T) {
		out, err := svc.ApplyCandidate(ctx, id, req)
		require.NoError(t, err)
		assert.Equal(t, 0, out.Applied)
		assert.Equal(t, []string{"hull_colour"}, out.Dropped)
		assert.Equal(t, []reconcile.FieldName{reconcile.FieldClassificationSociety}, out.Plan.Pending)

		v, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 45.0, v.LengthOverall)
	})

	t.Run("confirmed with resolution", func(t *testing.T) {
		confirmed := req
		confirmed.DryRun = false
		confirmed.Confirmed = true
		confirmed.Resolutions = map[reconcile.FieldName]reconcile.Resolution{
			reconcile.FieldClassificationSociety: {Choice: reconcile.ChoiceCandidate},
		}

		out, err := svc.ApplyCandidate(ctx, id, confirmed)
		require.NoError(t, err)
		assert.Equal(t, 3, out.Applied)

		v, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 47.2, v.LengthOverall)
		assert.Equal(t, "Feadship", v.Builder)
		assert.Equal(t, "bv", v.ClassificationSociety)

		history, err := svc.History(ctx, id)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, "user-7", history[0].ActorID)
		assert.Equal(t, "lloyds", history[0].Source)
	})

	t.Run("source required", func(t *testing.T) {
		_, err := svc.ApplyCandidate(ctx, id, models.ApplyRequest{Fields: map[string]any{"beam": 9}})
		assert.ErrorIs(t, err, reconcile.ErrInvalidValue)
	})
}

func TestService_BatchEnhance(t *testing.T) {
	var calls int32
	svc, store := setupService(t, marineTraffic(&calls))
	ctx := context.Background()

	first := seedVessel(t, store, serenity)
	second := seedVessel(t, store, reconcile.Vessel{VesselName: "Aurora", MMSINumber: "244660000"})
	bare := seedVessel(t, store, reconcile.Vessel{VesselName: "Nameless"})

	results, err := svc.BatchEnhance(ctx, []uint{bare, 999, second, first}, BatchOptions{Apply: true, ActorID: "batch"})
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, first, results[0].VesselID)
	assert.Equal(t, reconcile.SourceMarineTraffic, results[0].Source)
	assert.Equal(t, 1, results[0].Pending)
	assert.Equal(t, 3, results[0].Applied)
	assert.Empty(t, results[0].Error)

	assert.Equal(t, second, results[1].VesselID)
	assert.Equal(t, 1, results[1].Applied)

	assert.Equal(t, bare, results[2].VesselID)
	assert.Contains(t, results[2].Error, ErrNoOpportunity.Error())

	assert.Equal(t, uint(999), results[3].VesselID)
	assert.Contains(t, results[3].Error, "vessel not found")

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	v, err := store.Get(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "Feadship", v.Builder)
	assert.Equal(t, "lr", v.ClassificationSociety)

	aurora, err := store.Get(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "Monaco", aurora.Destination)
}

func TestService_BatchEnhanceSourceFilter(t *testing.T) {
	svc, store := setupService(t, marineTraffic(nil))
	id := seedVessel(t, store, serenity)

	results, err := svc.BatchEnhance(context.Background(), []uint{id}, BatchOptions{
		Sources: []reconcile.Source{reconcile.SourceBoatInternational},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Error, ErrNoOpportunity.Error())
}

func TestService_BatchEnhanceCancelled(t *testing.T) {
	svc, store := setupService(t, marineTraffic(nil))
	id := seedVessel(t, store, serenity)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.BatchEnhance(ctx, []uint{id}, BatchOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_Merge(t *testing.T) {
	svc := NewService(nil, nil, nil, 1, nil)
	off := false

	resp := svc.Merge(models.MergeRequest{
		Existing: map[string]any{
			"vessel_name":    "Serenity",
			"length_overall": 45,
			"builder":        "Feadship",
		},
		Candidates: []models.RawCandidate{
			{Source: reconcile.SourceMarineTraffic, Fields: map[string]any{"length_overall": "47", "year_built": "2009"}},
			{Source: reconcile.SourceBoatInternational, Fields: map[string]any{"builder": "Feadship Royal Dutch Shipyards", "beam": "wide"}},
		},
		AutoResolve: &off,
	})

	assert.True(t, resp.Result.Success)
	assert.Equal(t, map[string][]string{"candidates[1]:boat_international": {"beam"}}, resp.Dropped)
	assert.Equal(t, []reconcile.FieldName{reconcile.FieldLengthOverall, reconcile.FieldBuilder}, resp.Result.ManualRequired)
	assert.Equal(t, 2009.0, resp.Result.Merged[reconcile.FieldYearBuilt])
	assert.Equal(t, 2, resp.Summary.Total)
	assert.Contains(t, resp.Report, "Manual required: 2")
}

func TestService_MergeRunsRecordValidator(t *testing.T) {
	svc := NewService(nil, nil, nil, 1, nil)
	expired := time.Now().AddDate(-1, 0, 0).Format("2006-01-02")

	resp := svc.Merge(models.MergeRequest{
		Existing: map[string]any{"vessel_name": "Serenity"},
		Candidates: []models.RawCandidate{
			{Source: reconcile.SourceLloyds, Fields: map[string]any{
				"year_built":         1500,
				"certificate_expiry": expired,
			}},
		},
	})

	require.True(t, resp.Result.Success)
	assert.Contains(t, resp.Result.Warnings, fmt.Sprintf("Year built 1500 is outside 1800-%d", time.Now().Year()+5))
	assert.Contains(t, resp.Result.Warnings, "Certificate expired on "+expired)
}

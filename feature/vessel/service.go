package vessel

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"vessel-manager/core/reconcile"
	"vessel-manager/feature/vessel/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoOpportunity is returned when a vessel has nothing to look up.
	ErrNoOpportunity = errors.New("no enhancement opportunity")
	// ErrSourceNotConfigured is returned for a source without an adapter.
	ErrSourceNotConfigured = errors.New("source not configured")
)

// Service runs enhancement against stored vessels.
type Service struct {
	store    *Store
	engine   *reconcile.Engine
	adapters map[reconcile.Source]reconcile.SourceAdapter
	workers  int
	logger   *zap.Logger
}

// NewService creates a vessel service. store may be nil for offline merges.
func NewService(store *Store, engine *reconcile.Engine, adapters []reconcile.SourceAdapter, workers int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = reconcile.NewEngine(
			reconcile.WithLogger(logger),
			reconcile.WithValidator(reconcile.RecordValidator{}),
		)
	}
	if workers < 1 {
		workers = 1
	}
	byTag := make(map[reconcile.Source]reconcile.SourceAdapter, len(adapters))
	for _, a := range adapters {
		byTag[a.Source()] = a
	}
	return &Service{
		store:    store,
		engine:   engine,
		adapters: byTag,
		workers:  workers,
		logger:   logger,
	}
}

// Engine returns the merge engine.
func (s *Service) Engine() *reconcile.Engine { return s.engine }

// Store returns the vessel store.
func (s *Service) Store() *Store { return s.store }

// Opportunities lists the lookups available for a vessel, restricted to
// sources that have an adapter, best first.
func (s *Service) Opportunities(ctx context.Context, id uint) ([]reconcile.EnhancementOpportunity, error) {
	v, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.available(&v.Vessel), nil
}

func (s *Service) available(v *reconcile.Vessel) []reconcile.EnhancementOpportunity {
	out := []reconcile.EnhancementOpportunity{}
	for _, opp := range reconcile.Opportunities(v) {
		if _, ok := s.adapters[opp.Source]; ok {
			out = append(out, opp)
		}
	}
	return out
}

// pick resolves a request to a concrete opportunity.
func (s *Service) pick(v *reconcile.Vessel, req models.EnhanceRequest) (reconcile.EnhancementOpportunity, error) {
	if req.IdentifierType != "" && req.IdentifierValue != "" {
		source := req.Source
		if source == "" {
			source = reconcile.SourceMarineTraffic
			if req.IdentifierType == reconcile.IdentifierName {
				source = reconcile.SourceBoatInternational
			}
		}
		return reconcile.EnhancementOpportunity{
			Source:          source,
			IdentifierType:  req.IdentifierType,
			IdentifierValue: req.IdentifierValue,
			Confidence:      1.0,
			Description:     fmt.Sprintf("Look up %s %s in %s", req.IdentifierType, req.IdentifierValue, source),
		}, nil
	}

	for _, opp := range s.available(v) {
		if req.Source == "" || opp.Source == req.Source {
			return opp, nil
		}
	}
	if req.Source != "" {
		return reconcile.EnhancementOpportunity{}, fmt.Errorf("%w for source %s", ErrNoOpportunity, req.Source)
	}
	return reconcile.EnhancementOpportunity{}, ErrNoOpportunity
}

func (s *Service) fetch(ctx context.Context, opp reconcile.EnhancementOpportunity) (reconcile.Candidate, error) {
	a, ok := s.adapters[opp.Source]
	if !ok {
		return reconcile.Candidate{}, fmt.Errorf("%w: %s", ErrSourceNotConfigured, opp.Source)
	}
	return a.Fetch(ctx, opp.IdentifierType, opp.IdentifierValue)
}

// Enhance fetches one candidate and merges it against the stored vessel.
// Nothing is written; the result carries the plan applying it would follow.
func (s *Service) Enhance(ctx context.Context, id uint, req models.EnhanceRequest) (*models.EnhanceResult, error) {
	v, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	opp, err := s.pick(&v.Vessel, req)
	if err != nil {
		return nil, err
	}

	cand, err := s.fetch(ctx, opp)
	if err != nil {
		return nil, err
	}

	existing := v.Vessel.Fields()
	result := s.engine.MergeOne(existing, cand)
	out := &models.EnhanceResult{
		VesselID:    id,
		Opportunity: opp,
		Candidate:   cand,
		Result:      result,
		Summary:     reconcile.Summarize(result.Conflicts),
	}
	if result.Success {
		plan, err := s.engine.Plan(existing, result, cand.Source, reconcile.ApplyOptions{})
		if err != nil {
			return nil, err
		}
		out.Plan = plan
	}

	s.logger.Info("Vessel enhanced",
		zap.Uint("vessel_id", id),
		zap.String("source", string(cand.Source)),
		zap.Int("conflicts", len(result.Conflicts)),
		zap.Int("manual_required", len(result.ManualRequired)),
	)
	return out, nil
}

// EnhanceAll fetches every available source in rank order and folds the
// candidates into one merge result. A source that fails is skipped with a
// warning; the first successful lookup per source wins.
func (s *Service) EnhanceAll(ctx context.Context, id uint) (reconcile.MergeResult, []reconcile.Candidate, error) {
	v, err := s.store.Get(ctx, id)
	if err != nil {
		return reconcile.MergeResult{}, nil, err
	}

	opps := s.available(&v.Vessel)
	if len(opps) == 0 {
		return reconcile.MergeResult{}, nil, ErrNoOpportunity
	}

	var (
		candidates []reconcile.Candidate
		warnings   []string
		seen       = map[reconcile.Source]bool{}
	)
	for _, opp := range opps {
		if seen[opp.Source] {
			continue
		}
		cand, err := s.fetch(ctx, opp)
		if err != nil {
			if ctx.Err() != nil {
				return reconcile.MergeResult{}, nil, ctx.Err()
			}
			s.logger.Warn("Source lookup failed",
				zap.Uint("vessel_id", id),
				zap.String("source", string(opp.Source)),
				zap.Error(err),
			)
			warnings = append(warnings, fmt.Sprintf("%s lookup by %s skipped: %v", opp.Source, opp.IdentifierType, err))
			continue
		}
		seen[opp.Source] = true
		candidates = append(candidates, cand)
	}

	result := s.engine.MergeMany(v.Vessel.Fields(), candidates)
	result.Warnings = append(append([]string{}, warnings...), result.Warnings...)
	return result, candidates, nil
}

// Apply plans a merge result against the stored vessel and, when confirmed
// and not a dry run, writes it.
func (s *Service) Apply(ctx context.Context, id uint, result reconcile.MergeResult, source reconcile.Source, opts reconcile.ApplyOptions) (*models.ApplyResult, error) {
	v, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	plan, err := s.engine.Plan(v.Vessel.Fields(), result, source, opts)
	if err != nil {
		return nil, err
	}

	applied, err := reconcile.ApplyPlan(ctx, s.store.Writer(id), plan, opts)
	if err != nil {
		return nil, err
	}

	if applied > 0 {
		s.logger.Info("Enhancement applied",
			zap.Uint("vessel_id", id),
			zap.String("source", string(source)),
			zap.Strings("fields", fieldStrings(plan.FieldNames())),
			zap.String("actor_id", opts.ActorID),
		)
	}
	return &models.ApplyResult{VesselID: id, Plan: plan, Applied: applied}, nil
}

// ApplyCandidate coerces raw candidate fields, merges them against the
// stored vessel and applies the outcome.
func (s *Service) ApplyCandidate(ctx context.Context, id uint, req models.ApplyRequest) (*models.ApplyResult, error) {
	if req.Source == "" {
		return nil, fmt.Errorf("%w: source is required", reconcile.ErrInvalidValue)
	}
	fields, dropped := s.engine.Catalog().Coerce(req.Fields)

	v, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	result := s.engine.MergeOne(v.Vessel.Fields(), reconcile.Candidate{Source: req.Source, Fields: fields})

	out, err := s.Apply(ctx, id, result, req.Source, reconcile.ApplyOptions{
		Fields:      req.SelectedFields,
		Resolutions: req.Resolutions,
		ActorID:     req.ActorID,
		DryRun:      req.DryRun,
		Confirmed:   req.Confirmed,
	})
	if err != nil {
		return nil, err
	}
	out.Dropped = dropped
	return out, nil
}

// BatchOptions controls a batch run.
type BatchOptions struct {
	// Sources restricts lookups. Empty means every configured source.
	Sources []reconcile.Source
	// Apply writes fields that need no manual choice.
	Apply bool
	// ActorID is recorded on applied patches.
	ActorID string
}

// BatchEnhance enhances many vessels with a bounded worker pool. Each vessel
// uses its best opportunity that succeeds. Per-vessel failures are reported
// in the results and do not stop the batch.
func (s *Service) BatchEnhance(ctx context.Context, ids []uint, opts BatchOptions) ([]models.BatchItem, error) {
	allowed := map[reconcile.Source]bool{}
	for _, src := range opts.Sources {
		allowed[src] = true
	}

	var (
		mu      sync.Mutex
		results = make([]models.BatchItem, 0, len(ids))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, id := range ids {
		g.Go(func() error {
			item := s.enhanceOne(gctx, id, allowed, opts)
			mu.Lock()
			results = append(results, item)
			mu.Unlock()
			// only cancellation aborts the batch
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].VesselID < results[j].VesselID })
	return results, nil
}

func (s *Service) enhanceOne(ctx context.Context, id uint, allowed map[reconcile.Source]bool, opts BatchOptions) models.BatchItem {
	item := models.BatchItem{VesselID: id}

	v, err := s.store.Get(ctx, id)
	if err != nil {
		item.Error = err.Error()
		return item
	}

	var lastErr error = ErrNoOpportunity
	for _, opp := range s.available(&v.Vessel) {
		if len(allowed) > 0 && !allowed[opp.Source] {
			continue
		}
		res, err := s.Enhance(ctx, id, models.EnhanceRequest{
			Source:          opp.Source,
			IdentifierType:  opp.IdentifierType,
			IdentifierValue: opp.IdentifierValue,
		})
		if err != nil {
			lastErr = err
			continue
		}

		item.Source = res.Candidate.Source
		item.Result = &res.Result
		item.Pending = len(res.Result.ManualRequired)
		if opts.Apply && res.Result.Success {
			applied, err := s.Apply(ctx, id, res.Result, res.Candidate.Source, reconcile.ApplyOptions{
				ActorID:   opts.ActorID,
				Confirmed: true,
			})
			if err != nil {
				item.Error = err.Error()
				return item
			}
			item.Applied = applied.Applied
		}
		return item
	}

	item.Error = lastErr.Error()
	s.logger.Warn("Batch enhancement failed for vessel", zap.Uint("vessel_id", id), zap.Error(lastErr))
	return item
}

// Candidates returns vessels worth enhancing in a batch.
func (s *Service) Candidates(ctx context.Context, limit int) ([]models.Vessel, error) {
	return s.store.Candidates(ctx, limit)
}

// History returns a vessel's applied patches.
func (s *Service) History(ctx context.Context, id uint) ([]models.EnhancementLog, error) {
	if _, err := s.store.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.store.History(ctx, id)
}

// Merge runs an offline merge over raw records. Values are coerced first;
// fields that could not be coerced are reported per record.
func (s *Service) Merge(req models.MergeRequest) models.MergeResponse {
	catalog := s.engine.Catalog()
	dropped := map[string][]string{}

	existing, lost := catalog.Coerce(req.Existing)
	if len(lost) > 0 {
		dropped["existing"] = lost
	}

	candidates := make([]reconcile.Candidate, 0, len(req.Candidates))
	for i, raw := range req.Candidates {
		fields, lost := catalog.Coerce(raw.Fields)
		if len(lost) > 0 {
			dropped[fmt.Sprintf("candidates[%d]:%s", i, raw.Source)] = lost
		}
		candidates = append(candidates, reconcile.Candidate{Source: raw.Source, Fields: fields})
	}

	var opts []reconcile.MergeOption
	if req.ExistingSource != "" {
		opts = append(opts, reconcile.WithExistingSource(req.ExistingSource))
	}
	if req.AutoResolve != nil {
		opts = append(opts, reconcile.WithAutoResolve(*req.AutoResolve))
	}

	result := s.engine.MergeMany(existing, candidates, opts...)
	resp := models.MergeResponse{
		Result:  result,
		Summary: reconcile.Summarize(result.Conflicts),
		Report:  reconcile.Report(result),
	}
	if len(dropped) > 0 {
		resp.Dropped = dropped
	}
	return resp
}

func fieldStrings(names []reconcile.FieldName) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return out
}

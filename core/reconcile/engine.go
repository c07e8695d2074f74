package reconcile

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Engine reconciles candidate data against existing vessel fields. It holds
// only immutable configuration and is safe for concurrent use.
type Engine struct {
	catalog     *Catalog
	reliability ReliabilityTable
	validator   Validator
	logger      *zap.Logger
	now         func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithCatalog replaces the default field catalog.
func WithCatalog(c *Catalog) Option {
	return func(e *Engine) { e.catalog = c }
}

// WithReliability replaces the default reliability table.
func WithReliability(t ReliabilityTable) Option {
	return func(e *Engine) { e.reliability = t }
}

// WithValidator adds a record validator whose warnings are attached to every merge.
func WithValidator(v Validator) Option {
	return func(e *Engine) { e.validator = v }
}

// WithLogger sets the logger used for manual resolutions and recovered
// failures. A nil logger keeps the default no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock overrides the time source used to stamp decisions.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an engine with the default catalog and reliability table.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		catalog:     DefaultCatalog(),
		reliability: DefaultReliability(),
		logger:      zap.NewNop(),
		now:         systemClock,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the engine's field catalog.
func (e *Engine) Catalog() *Catalog { return e.catalog }

// Reliability returns the engine's reliability table.
func (e *Engine) Reliability() ReliabilityTable { return e.reliability }

type mergeConfig struct {
	existingSource Source
	autoResolve    bool
}

// MergeOption tunes a single merge call.
type MergeOption func(*mergeConfig)

// WithExistingSource sets the source the existing record is attributed to.
// The default is SourceDatabase.
func WithExistingSource(s Source) MergeOption {
	return func(c *mergeConfig) { c.existingSource = s }
}

// WithAutoResolve toggles policy-based resolution. When off, every conflict
// is left for manual review. The default is on.
func WithAutoResolve(on bool) MergeOption {
	return func(c *mergeConfig) { c.autoResolve = on }
}

func newMergeConfig(opts []MergeOption) mergeConfig {
	cfg := mergeConfig{existingSource: SourceDatabase, autoResolve: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// MergeOne reconciles one candidate against existing. Neither input is modified.
// An unexpected failure is reported through MergeResult.Success rather than a panic.
func (e *Engine) MergeOne(existing Fields, candidate Candidate, opts ...MergeOption) (result MergeResult) {
	cfg := newMergeConfig(opts)

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Merge failed",
				zap.String("source", string(candidate.Source)),
				zap.Any("panic", r),
			)
			result = emptyResult()
			result.Error = fmt.Sprintf("merge failed: %v", r)
		}
	}()

	return e.mergeOne(existing, candidate, cfg)
}

func (e *Engine) mergeOne(existing Fields, candidate Candidate, cfg mergeConfig) MergeResult {
	result := emptyResult()
	merged := Fields{}

	for _, name := range sortedUnknown(e.catalog, candidate.Fields) {
		result.Warnings = appendUnique(result.Warnings,
			fmt.Sprintf("Ignored unknown field %q from %s", name, candidate.Source))
	}

	for _, spec := range e.catalog.specs {
		value, ok := candidate.Fields[spec.Name]
		if !ok || isBlank(value) {
			continue
		}
		value = cloneValue(value)

		current := existing[spec.Name]
		if isAbsent(current) {
			merged[spec.Name] = value
			continue
		}
		if Equal(current, value, spec.Type) {
			merged[spec.Name] = cloneValue(current)
			continue
		}

		conflict := e.newConflict(spec, current, value, candidate.Source, cfg.existingSource)
		result.Conflicts = append(result.Conflicts, conflict)
		e.logger.Debug("Conflict detected",
			zap.String("field", string(spec.Name)),
			zap.Stringer("policy", spec.Policy),
			zap.Float64("confidence", conflict.Confidence),
		)

		if cfg.autoResolve {
			if resolved, ok := Resolve(conflict); ok {
				merged[spec.Name] = resolved
				result.AutoResolved = appendField(result.AutoResolved, spec.Name)
				continue
			}
		}
		merged[spec.Name] = cloneValue(current)
		result.ManualRequired = appendField(result.ManualRequired, spec.Name)
	}

	for name, value := range existing {
		if _, done := merged[name]; !done {
			merged[name] = cloneValue(value)
		}
	}

	for _, w := range CrossFieldWarnings(merged) {
		result.Warnings = appendUnique(result.Warnings, w)
	}
	if e.validator != nil {
		for _, w := range e.validator.Check(merged) {
			result.Warnings = appendUnique(result.Warnings, w)
		}
	}

	result.Success = true
	result.Merged = merged
	return result
}

// MergeMany folds candidates into existing in order: each pass's merged
// fields become the next pass's existing fields. Conflicts, resolved and
// pending fields and warnings accumulate in source order. The fold stops at
// the first failed pass and returns that pass's result.
//
// Passes must stay sequential; a field left for manual review keeps its
// original value, so later sources cannot override it.
func (e *Engine) MergeMany(existing Fields, candidates []Candidate, opts ...MergeOption) MergeResult {
	acc := emptyResult()
	current := existing

	for _, candidate := range candidates {
		pass := e.MergeOne(current, candidate, opts...)
		if !pass.Success {
			return pass
		}
		acc.Conflicts = append(acc.Conflicts, pass.Conflicts...)
		for _, f := range pass.AutoResolved {
			acc.AutoResolved = appendField(acc.AutoResolved, f)
		}
		for _, f := range pass.ManualRequired {
			acc.ManualRequired = appendField(acc.ManualRequired, f)
		}
		for _, w := range pass.Warnings {
			acc.Warnings = appendUnique(acc.Warnings, w)
		}
		current = pass.Merged
	}

	acc.Success = true
	acc.Merged = current.Clone()
	return acc
}

func sortedUnknown(c *Catalog, fields Fields) []FieldName {
	var unknown []FieldName
	for name := range fields {
		if _, ok := c.Lookup(name); !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	return unknown
}

func cloneValue(v any) any {
	if list, ok := v.([]string); ok {
		return append([]string(nil), list...)
	}
	return v
}

func appendField(list []FieldName, f FieldName) []FieldName {
	for _, existing := range list {
		if existing == f {
			return list
		}
	}
	return append(list, f)
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}

package reconcile

import (
	"context"
	"errors"
	"fmt"
)

// ActionType describes what an apply step does to a field.
type ActionType string

const (
	// ActionFill sets a field that had no value.
	ActionFill ActionType = "fill"
	// ActionReplace overwrites an existing value after automatic resolution.
	ActionReplace ActionType = "replace"
	// ActionResolve writes a value chosen by a person.
	ActionResolve ActionType = "resolve"
)

// Action is one planned field write.
type Action struct {
	Type     ActionType `json:"type" yaml:"type"`
	Field    FieldName  `json:"field" yaml:"field"`
	Value    any        `json:"value" yaml:"value"`
	Previous any        `json:"previous,omitempty" yaml:"previous,omitempty"`
	Reason   string     `json:"reason" yaml:"reason"`
}

// PlanSummary counts a plan's actions.
type PlanSummary struct {
	Fill     int `json:"fill" yaml:"fill"`
	Replace  int `json:"replace" yaml:"replace"`
	Resolve  int `json:"resolve" yaml:"resolve"`
	Pending  int `json:"pending" yaml:"pending"`
	Skipped  int `json:"skipped" yaml:"skipped"`
	Warnings int `json:"warnings" yaml:"warnings"`
}

// PatchPlan is the set of writes derived from a merge result. Building a
// plan never writes anything; use ApplyPlan for that.
type PatchPlan struct {
	Source   Source      `json:"source" yaml:"source"`
	Actions  []Action    `json:"actions" yaml:"actions"`
	Pending  []FieldName `json:"pending" yaml:"pending"`
	Warnings []string    `json:"warnings" yaml:"warnings"`
	Summary  PlanSummary `json:"summary" yaml:"summary"`
}

// Choice selects the value a manual resolution keeps.
type Choice string

const (
	ChoiceExisting  Choice = "existing"
	ChoiceCandidate Choice = "candidate"
	ChoiceCombine   Choice = "combine"
	ChoiceValue     Choice = "value"
)

// Resolution is a person's answer to a pending conflict.
type Resolution struct {
	Choice Choice `json:"choice" yaml:"choice"`
	Value  any    `json:"value,omitempty" yaml:"value,omitempty"`
}

// ApplyOptions controls plan building and application.
type ApplyOptions struct {
	// Fields restricts the plan to these fields. Empty means every field.
	Fields []FieldName
	// Resolutions answers fields left for manual review.
	Resolutions map[FieldName]Resolution
	// ActorID is recorded with manual decisions and audit rows.
	ActorID string
	// DryRun prevents ApplyPlan from writing.
	DryRun bool
	// Confirmed must be true for ApplyPlan to write.
	Confirmed bool
}

// PatchWriter persists a field patch for one source.
type PatchWriter interface {
	ApplyPatch(ctx context.Context, fields Fields, source Source, actorID string) error
}

// ErrMergeFailed is returned when planning from an unsuccessful merge.
var ErrMergeFailed = errors.New("merge did not succeed")

// Plan turns a merge result into field writes against existing. Fields the
// merge left for manual review become writes only when opts carries a
// resolution for them. Identifier fields that already hold a value are
// never written.
func (e *Engine) Plan(existing Fields, result MergeResult, source Source, opts ApplyOptions) (*PatchPlan, error) {
	if !result.Success {
		return nil, fmt.Errorf("%w: %s", ErrMergeFailed, result.Error)
	}

	selected := make(map[FieldName]struct{}, len(opts.Fields))
	for _, f := range opts.Fields {
		if _, ok := e.catalog.Lookup(f); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
		selected[f] = struct{}{}
	}

	plan := &PatchPlan{
		Source:   source,
		Actions:  []Action{},
		Pending:  []FieldName{},
		Warnings: append([]string{}, result.Warnings...),
	}

	for _, spec := range e.catalog.specs {
		name := spec.Name
		if len(selected) > 0 {
			if _, ok := selected[name]; !ok {
				if v, ok := result.Merged[name]; ok && !isBlank(v) && !Equal(existing[name], v, spec.Type) {
					plan.Summary.Skipped++
				}
				continue
			}
		}

		current := existing[name]

		if result.IsManual(name) {
			res, answered := opts.Resolutions[name]
			if !answered {
				plan.Pending = append(plan.Pending, name)
				continue
			}
			conflict, _ := result.Conflict(name)
			value, err := e.resolutionValue(conflict, res)
			if err != nil {
				return nil, err
			}
			if IsIdentifier(name) && !isAbsent(current) && !Equal(current, value, spec.Type) {
				return nil, fmt.Errorf("%w: %s", ErrIdentifierLocked, name)
			}
			decision := e.ResolveManually(conflict, value, opts.ActorID)
			if Equal(current, decision.Value, spec.Type) {
				continue
			}
			plan.Actions = append(plan.Actions, Action{
				Type: ActionResolve, Field: name, Value: decision.Value, Previous: current,
				Reason: fmt.Sprintf("manual choice: %s", res.Choice),
			})
			continue
		}

		value, ok := result.Merged[name]
		if !ok || isBlank(value) {
			continue
		}
		if isAbsent(current) {
			plan.Actions = append(plan.Actions, Action{
				Type: ActionFill, Field: name, Value: value, Reason: "no existing value",
			})
			continue
		}
		if Equal(current, value, spec.Type) || IsIdentifier(name) {
			continue
		}
		reason := "resolved by " + spec.Policy.String()
		if c, found := result.Conflict(name); found {
			reason = fmt.Sprintf("resolved by %s (confidence %.2f)", c.Policy, c.Confidence)
		}
		plan.Actions = append(plan.Actions, Action{
			Type: ActionReplace, Field: name, Value: value, Previous: current, Reason: reason,
		})
	}

	for _, a := range plan.Actions {
		switch a.Type {
		case ActionFill:
			plan.Summary.Fill++
		case ActionReplace:
			plan.Summary.Replace++
		case ActionResolve:
			plan.Summary.Resolve++
		}
	}
	plan.Summary.Pending = len(plan.Pending)
	plan.Summary.Warnings = len(plan.Warnings)
	return plan, nil
}

func (e *Engine) resolutionValue(c MergeConflict, r Resolution) (any, error) {
	switch r.Choice {
	case ChoiceExisting:
		return c.ExistingValue, nil
	case ChoiceCandidate:
		return c.CandidateValue, nil
	case ChoiceCombine:
		return Combine(c), nil
	case ChoiceValue:
		v, err := e.catalog.CoerceValue(c.Field, r.Value)
		if err != nil {
			return nil, fmt.Errorf("resolution for %s: %w", c.Field, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: unknown choice %q for %s", ErrInvalidValue, r.Choice, c.Field)
	}
}

// Patch returns the plan's writes as a field map.
func (p *PatchPlan) Patch() Fields {
	out := make(Fields, len(p.Actions))
	for _, a := range p.Actions {
		out[a.Field] = a.Value
	}
	return out
}

// FieldNames lists the fields the plan writes, in plan order.
func (p *PatchPlan) FieldNames() []FieldName {
	out := make([]FieldName, len(p.Actions))
	for i, a := range p.Actions {
		out[i] = a.Field
	}
	return out
}

// ApplyPlan writes the plan through w and returns the number of fields
// written. Nothing is written unless opts.Confirmed is set and opts.DryRun
// is not.
func ApplyPlan(ctx context.Context, w PatchWriter, plan *PatchPlan, opts ApplyOptions) (int, error) {
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}
	if len(plan.Actions) == 0 {
		return 0, nil
	}
	if err := w.ApplyPatch(ctx, plan.Patch(), plan.Source, opts.ActorID); err != nil {
		return 0, fmt.Errorf("failed to apply patch from %s: %w", plan.Source, err)
	}
	return len(plan.Actions), nil
}

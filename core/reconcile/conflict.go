package reconcile

import "math"

const (
	minConfidence = 0.1
	maxConfidence = 0.9
	// closeValueBonus is added when two numbers differ by less than closeValueRatio.
	closeValueBonus = 0.2
	closeValueRatio = 0.1
)

// Detect compares a candidate data set against existing fields and returns
// one conflict per field where both sides hold different values. Fields
// missing from existing, equal fields and unknown fields produce nothing.
// Conflicts are returned in catalog order.
func (e *Engine) Detect(existing, candidate Fields, candidateSource, existingSource Source) []MergeConflict {
	conflicts := []MergeConflict{}
	for _, spec := range e.catalog.specs {
		cand, ok := candidate[spec.Name]
		if !ok || isBlank(cand) {
			continue
		}
		current := existing[spec.Name]
		if isAbsent(current) || Equal(current, cand, spec.Type) {
			continue
		}
		conflicts = append(conflicts, e.newConflict(spec, current, cand, candidateSource, existingSource))
	}
	return conflicts
}

func (e *Engine) newConflict(spec FieldSpec, current, cand any, candidateSource, existingSource Source) MergeConflict {
	existingRel := e.reliability.Lookup(existingSource)
	candidateRel := e.reliability.Lookup(candidateSource)
	return MergeConflict{
		Field:                spec.Name,
		ExistingValue:        current,
		CandidateValue:       cand,
		ExistingSource:       existingSource,
		CandidateSource:      candidateSource,
		ExistingReliability:  existingRel,
		CandidateReliability: candidateRel,
		FieldType:            spec.Type,
		Policy:               spec.Policy,
		Confidence:           Confidence(existingRel, candidateRel, current, cand),
	}
}

// Confidence scores how safely a conflict can be merged automatically.
// The base score falls as the two sources' reliabilities drift apart and is
// clamped to [0.1, 0.9]; numbers within 10% of each other earn a bonus.
func Confidence(existingRel, candidateRel Reliability, existing, candidate any) float64 {
	gap := math.Abs(float64(existingRel - candidateRel))
	score := (5 - gap) / 5
	score = math.Max(minConfidence, math.Min(maxConfidence, score))

	a, okA := asNumber(existing)
	b, okB := asNumber(candidate)
	if okA && okB && closeNumbers(a, b) {
		score += closeValueBonus
	}
	return math.Min(score, 1.0)
}

func closeNumbers(a, b float64) bool {
	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return true
	}
	return math.Abs(a-b)/largest < closeValueRatio
}

// asNumber accepts Go numeric types only. Numeric-looking strings are not numbers here.
func asNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	default:
		return 0, false
	}
}

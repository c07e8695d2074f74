package reconcile

import (
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Resolve applies the conflict's policy. The second return value is false
// when the field has to wait for a manual choice.
//
// Identifier fields always keep the existing value, whatever policy the
// conflict carries.
func Resolve(c MergeConflict) (any, bool) {
	if IsIdentifier(c.Field) {
		return c.ExistingValue, true
	}

	switch c.Policy {
	case PolicyPreferExisting:
		return c.ExistingValue, true
	case PolicyPreferNew, PolicyPreferNewer:
		return c.CandidateValue, true
	case PolicyPreferReliable:
		if c.CandidateReliability > c.ExistingReliability {
			return c.CandidateValue, true
		}
		return c.ExistingValue, true
	case PolicyPreferComplete:
		if isMoreComplete(c.CandidateValue, c.ExistingValue) {
			return c.CandidateValue, true
		}
		return c.ExistingValue, true
	default:
		return nil, false
	}
}

// isMoreComplete reports whether a carries more information than b:
// a longer trimmed string, a non-zero number over zero, or a longer list.
// Anything else is a tie, and ties keep the existing value.
func isMoreComplete(a, b any) bool {
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return utf8.RuneCountInString(strings.TrimSpace(x)) > utf8.RuneCountInString(strings.TrimSpace(y))
		}
	case []string:
		if y, ok := b.([]string); ok {
			return len(x) > len(y)
		}
	}

	na, okA := asNumber(a)
	nb, okB := asNumber(b)
	if okA && okB {
		return na != 0 && nb == 0
	}
	return false
}

// ResolveManually records a human choice for a conflict. The conflict
// itself is left untouched.
func (e *Engine) ResolveManually(c MergeConflict, chosen any, actorID string) Decision {
	d := Decision{
		Field:     c.Field,
		Value:     chosen,
		Manual:    true,
		ActorID:   actorID,
		DecidedAt: e.now(),
	}
	e.logger.Info("Manual resolution recorded",
		zap.String("field", string(c.Field)),
		zap.String("candidate_source", string(c.CandidateSource)),
		zap.String("actor_id", actorID),
		zap.Any("value", chosen),
	)
	return d
}

func systemClock() time.Time { return time.Now() }

package reconcile

import (
	"math"
	"reflect"
	"strings"
	"time"

	"vessel-manager/core/utils"

	"golang.org/x/text/cases"
)

// numericTolerance is the absolute difference under which two numbers are equal.
const numericTolerance = 0.01

// Equal reports whether existing and candidate carry the same value for a
// field of type ft. An absent value on either side is never equal.
func Equal(existing, candidate any, ft FieldType) bool {
	if isAbsent(existing) || isBlank(candidate) {
		return false
	}

	switch ft {
	case FieldNumeric:
		a, okA := utils.ToFloat(existing)
		b, okB := utils.ToFloat(candidate)
		if okA && okB {
			return math.Abs(a-b) < numericTolerance
		}
	case FieldString, FieldText:
		return fold(utils.ToString(existing)) == fold(utils.ToString(candidate))
	case FieldEnum:
		return NormalizeTag(utils.ToString(existing)) == NormalizeTag(utils.ToString(candidate))
	case FieldBoolean:
		return utils.ToBool(existing) == utils.ToBool(candidate)
	case FieldDate:
		a, okA := existing.(time.Time)
		b, okB := candidate.(time.Time)
		if okA && okB {
			return a.Equal(b)
		}
	}
	return reflect.DeepEqual(existing, candidate)
}

// fold trims and case-folds s. A Caser holds state, so one is built per call.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// isAbsent reports whether an existing value counts as "no value": nil, blank
// strings, zero numbers, false, the zero time and empty lists.
func isAbsent(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case bool:
		return !x
	case time.Time:
		return x.IsZero()
	case *time.Time:
		return x == nil || x.IsZero()
	case []string:
		return len(x) == 0
	case []any:
		return len(x) == 0
	}
	if f, ok := utils.ToFloat(v); ok {
		return f == 0
	}
	return false
}

// isBlank reports whether a candidate value carries nothing worth merging.
// Unlike isAbsent, zero numbers and false are real observations.
func isBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case time.Time:
		return x.IsZero()
	case []string:
		return len(x) == 0
	case []any:
		return len(x) == 0
	}
	return false
}

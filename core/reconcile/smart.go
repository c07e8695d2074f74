package reconcile

import (
	"math"
	"strings"
)

const (
	// dimensionTolerance is the relative gap under which two dimensions are averaged.
	dimensionTolerance = 0.1
	maxImages          = 10
)

// MergeDimension averages two measurements within tolerance of each other
// and keeps existing otherwise.
func MergeDimension(existing, candidate, tolerance float64) float64 {
	if existing == 0 {
		return candidate
	}
	if candidate == 0 {
		return existing
	}
	if math.Abs(existing-candidate)/math.Max(existing, candidate) <= tolerance {
		return (existing + candidate) / 2
	}
	return existing
}

// MergeText combines two texts. Descriptions that do not contain each other
// are concatenated; otherwise the longer text wins.
func MergeText(field FieldName, existing, candidate string) string {
	if strings.TrimSpace(existing) == "" {
		return candidate
	}
	if strings.TrimSpace(candidate) == "" {
		return existing
	}
	if field == FieldDescription {
		e, c := strings.ToLower(existing), strings.ToLower(candidate)
		if !strings.Contains(c, e) && !strings.Contains(e, c) {
			return existing + "\n\n[Additional info]: " + candidate
		}
	}
	if len(candidate) > len(existing) {
		return candidate
	}
	return existing
}

// MergeList unions two lists in order without duplicates. Image lists are
// capped at ten entries.
func MergeList(field FieldName, existing, candidate []string) []string {
	if len(existing) == 0 {
		return append([]string(nil), candidate...)
	}
	if len(candidate) == 0 {
		return append([]string(nil), existing...)
	}

	seen := make(map[string]struct{}, len(existing)+len(candidate))
	var out []string
	for _, item := range append(append([]string(nil), existing...), candidate...) {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	if field == FieldImages && len(out) > maxImages {
		out = out[:maxImages]
	}
	return out
}

// Combine merges both sides of a conflict instead of picking one. Numbers
// are averaged within tolerance, texts and lists are joined. Other types
// keep the existing value, and identifiers are never combined.
func Combine(c MergeConflict) any {
	if IsIdentifier(c.Field) {
		return c.ExistingValue
	}
	switch c.FieldType {
	case FieldNumeric:
		a, okA := asNumber(c.ExistingValue)
		b, okB := asNumber(c.CandidateValue)
		if okA && okB {
			return MergeDimension(a, b, dimensionTolerance)
		}
	case FieldText, FieldString:
		a, okA := c.ExistingValue.(string)
		b, okB := c.CandidateValue.(string)
		if okA && okB {
			return MergeText(c.Field, a, b)
		}
	case FieldList:
		a, okA := c.ExistingValue.([]string)
		b, okB := c.CandidateValue.([]string)
		if okA && okB {
			return MergeList(c.Field, a, b)
		}
	}
	return c.ExistingValue
}

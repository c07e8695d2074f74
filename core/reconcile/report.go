package reconcile

import (
	"fmt"
	"strings"
)

// highConfidence separates confident conflicts from doubtful ones in summaries.
const highConfidence = 0.7

// ConflictSummary aggregates a conflict list.
type ConflictSummary struct {
	Total          int               `json:"total_conflicts" yaml:"total_conflicts"`
	ByPolicy       map[Policy]int    `json:"by_strategy" yaml:"by_strategy"`
	ByFieldType    map[FieldType]int `json:"by_field_type" yaml:"by_field_type"`
	HighConfidence int               `json:"high_confidence" yaml:"high_confidence"`
	LowConfidence  int               `json:"low_confidence" yaml:"low_confidence"`
}

// Summarize counts conflicts per policy, per field type and per confidence band.
func Summarize(conflicts []MergeConflict) ConflictSummary {
	s := ConflictSummary{
		Total:       len(conflicts),
		ByPolicy:    map[Policy]int{},
		ByFieldType: map[FieldType]int{},
	}
	for _, c := range conflicts {
		s.ByPolicy[c.Policy]++
		s.ByFieldType[c.FieldType]++
		if c.Confidence > highConfidence {
			s.HighConfidence++
		} else {
			s.LowConfidence++
		}
	}
	return s
}

// Report renders a merge result as plain text for logs and terminals.
func Report(r MergeResult) string {
	var b strings.Builder
	b.WriteString("=== VESSEL DATA MERGE REPORT ===\n\n")

	if !r.Success {
		fmt.Fprintf(&b, "Merge failed: %s\n", r.Error)
		return b.String()
	}

	b.WriteString("Merge completed successfully\n")
	fmt.Fprintf(&b, "Total conflicts: %d\n", len(r.Conflicts))
	fmt.Fprintf(&b, "Auto-resolved: %d\n", len(r.AutoResolved))
	fmt.Fprintf(&b, "Manual required: %d\n", len(r.ManualRequired))

	writeList := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n%s:\n", title)
		for _, item := range items {
			fmt.Fprintf(&b, "  - %s\n", item)
		}
	}
	writeList("Auto-resolved fields", fieldStrings(r.AutoResolved))
	writeList("Manual resolution required", fieldStrings(r.ManualRequired))
	writeList("Warnings", r.Warnings)

	return b.String()
}

func fieldStrings(fields []FieldName) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}

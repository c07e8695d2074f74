package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"vessel-manager/core/reconcile"
	"vessel-manager/feature/vessel/models"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown format %q (expected table, json or yaml)", format)
	}
}

func newTable(w io.Writer, headers ...any) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row(headers))
	return tw
}

// formatValue renders a canonical value for a table cell.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []string:
		return strings.Join(x, ", ")
	case float64:
		return fmt.Sprintf("%g", x)
	default:
		return fmt.Sprint(x)
	}
}

// renderConflicts prints one row per conflict.
func renderConflicts(w io.Writer, result reconcile.MergeResult) {
	if len(result.Conflicts) == 0 {
		fmt.Fprintln(w, "No conflicts.")
		return
	}
	tw := newTable(w, "Field", "Existing", "Candidate", "Source", "Policy", "Confidence", "Outcome")
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 6, Align: text.AlignRight}})
	for _, c := range result.Conflicts {
		outcome := "auto"
		if result.IsManual(c.Field) {
			outcome = "manual"
		}
		tw.AppendRow(table.Row{
			c.Field, formatValue(c.ExistingValue), formatValue(c.CandidateValue),
			c.CandidateSource, c.Policy, fmt.Sprintf("%.2f", c.Confidence), outcome,
		})
	}
	tw.Render()
}

// renderPlan prints the writes a plan would make.
func renderPlan(w io.Writer, plan *reconcile.PatchPlan) {
	if plan == nil {
		return
	}
	if len(plan.Actions) == 0 {
		fmt.Fprintln(w, "No changes to apply.")
	} else {
		tw := newTable(w, "Action", "Field", "Current", "New", "Reason")
		for _, a := range plan.Actions {
			tw.AppendRow(table.Row{a.Type, a.Field, formatValue(a.Previous), formatValue(a.Value), a.Reason})
		}
		tw.Render()
	}
	if len(plan.Pending) > 0 {
		names := make([]string, len(plan.Pending))
		for i, f := range plan.Pending {
			names[i] = string(f)
		}
		fmt.Fprintf(w, "Waiting for a manual choice: %s\n", strings.Join(names, ", "))
	}
}

// renderMerged prints the merged record, sorted by field name.
func renderMerged(w io.Writer, fields reconcile.Fields) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, string(name))
	}
	sort.Strings(names)

	tw := newTable(w, "Field", "Value")
	for _, name := range names {
		tw.AppendRow(table.Row{name, formatValue(fields[reconcile.FieldName(name)])})
	}
	tw.Render()
}

// renderOpportunities prints the lookups available for a vessel.
func renderOpportunities(w io.Writer, opps []reconcile.EnhancementOpportunity) {
	if len(opps) == 0 {
		fmt.Fprintln(w, "No enhancement opportunities.")
		return
	}
	tw := newTable(w, "Source", "Identifier", "Value", "Confidence", "Est. Fields")
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	for _, o := range opps {
		tw.AppendRow(table.Row{o.Source, o.IdentifierType, o.IdentifierValue, fmt.Sprintf("%.2f", o.Confidence), o.EstimatedFields})
	}
	tw.Render()
}

// renderBatch prints one row per vessel of a batch run.
func renderBatch(w io.Writer, items []models.BatchItem) {
	tw := newTable(w, "Vessel", "Source", "Conflicts", "Pending", "Applied", "Error")
	var applied, failed int
	for _, it := range items {
		conflicts := 0
		if it.Result != nil {
			conflicts = len(it.Result.Conflicts)
		}
		if it.Error != "" {
			failed++
		}
		applied += it.Applied
		tw.AppendRow(table.Row{it.VesselID, it.Source, conflicts, it.Pending, it.Applied, it.Error})
	}
	tw.AppendFooter(table.Row{"", "", "", "", applied, fmt.Sprintf("%d failed", failed)})
	tw.Render()
}

// renderHistory prints applied patches, newest first.
func renderHistory(w io.Writer, logs []models.EnhancementLog) {
	if len(logs) == 0 {
		fmt.Fprintln(w, "No enhancements applied yet.")
		return
	}
	tw := newTable(w, "When", "Source", "Actor", "Fields")
	for _, l := range logs {
		tw.AppendRow(table.Row{l.CreatedAt.Format("2006-01-02 15:04:05"), l.Source, l.ActorID, strings.Join(l.FieldsUpdated, ", ")})
	}
	tw.Render()
}

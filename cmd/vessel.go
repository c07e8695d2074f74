package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"vessel-manager/core/reconcile"
	"vessel-manager/feature/vessel"
	"vessel-manager/feature/vessel/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags shared by the vessel commands
	enhanceSource  string
	enhanceAll     bool
	enhanceApply   bool
	enhanceFields  []string
	enhanceResolve []string
	dryRunApply    bool
	yesConfirm     bool
	actorID        string
	outputFormat   string

	batchLimit   int
	batchSources []string
)

// vesselCmd is the parent command for stored vessel operations.
var vesselCmd = &cobra.Command{
	Use:   "vessel",
	Short: "Inspect and enhance stored vessels",
}

var opportunitiesCmd = &cobra.Command{
	Use:   "opportunities <id>",
	Short: "List the source lookups available for a vessel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseVesselID(args[0])
		if err != nil {
			return err
		}
		rt, err := setup()
		if err != nil {
			return err
		}
		opps, err := rt.service.Opportunities(cmd.Context(), id)
		if err != nil {
			return err
		}
		if outputFormat != formatTable {
			return writeStructured(cmd.OutOrStdout(), outputFormat, opps)
		}
		renderOpportunities(cmd.OutOrStdout(), opps)
		return nil
	},
}

// enhanceCmd fetches candidates, reports conflicts and optionally applies.
var enhanceCmd = &cobra.Command{
	Use:   "enhance <id>",
	Short: "Enhance a vessel from external sources (report + optionally apply)",
	Long: `Fetch candidate data for a vessel, merge it against the stored record and
report conflicts and planned writes. Nothing is written unless --apply is given
and the action is confirmed.

Examples:
  # Report only, best source
  vessel enhance 42

  # Merge every configured source
  vessel enhance 42 --all

  # Apply, choosing the candidate value for a pending conflict
  vessel enhance 42 --apply --resolve classification_society=candidate

  # Apply two fields only, non-interactive
  vessel enhance 42 --apply --fields builder,year_built --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runEnhance,
}

var historyCmd = &cobra.Command{
	Use:   "history <id>",
	Short: "Show the enhancements applied to a vessel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseVesselID(args[0])
		if err != nil {
			return err
		}
		rt, err := setup()
		if err != nil {
			return err
		}
		logs, err := rt.service.History(cmd.Context(), id)
		if err != nil {
			return err
		}
		if outputFormat != formatTable {
			return writeStructured(cmd.OutOrStdout(), outputFormat, logs)
		}
		renderHistory(cmd.OutOrStdout(), logs)
		return nil
	},
}

// batchCmd enhances many vessels with a bounded worker pool.
var batchCmd = &cobra.Command{
	Use:   "batch [id...]",
	Short: "Enhance many vessels at once",
	Long: `Enhance the given vessels, or when no ids are given, the vessels that have an
identifier but miss length, builder or year built. With --apply, fields that
need no manual choice are written after confirmation.`,
	RunE: runBatch,
}

func init() {
	vesselCmd.AddCommand(opportunitiesCmd, enhanceCmd, historyCmd, batchCmd)
	RootCmd.AddCommand(vesselCmd)

	vesselCmd.PersistentFlags().StringVar(&outputFormat, "format", formatTable, "Output format: table, json or yaml")
	vesselCmd.PersistentFlags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm writes (non-interactive)")
	vesselCmd.PersistentFlags().StringVar(&actorID, "actor", defaultActor(), "Actor recorded on applied changes")

	enhanceCmd.Flags().StringVar(&enhanceSource, "source", "", "Use only this source")
	enhanceCmd.Flags().BoolVar(&enhanceAll, "all", false, "Merge every configured source in rank order")
	enhanceCmd.Flags().BoolVar(&enhanceApply, "apply", false, "Write the planned changes")
	enhanceCmd.Flags().StringSliceVar(&enhanceFields, "fields", nil, "Apply only these fields")
	enhanceCmd.Flags().StringArrayVar(&enhanceResolve, "resolve", nil, "Resolve a pending field: field=existing|candidate|combine or field=value:<v>")
	enhanceCmd.Flags().BoolVar(&dryRunApply, "dry-run", false, "Force dry-run (no writes even with --yes)")

	batchCmd.Flags().IntVar(&batchLimit, "limit", 50, "Maximum vessels when no ids are given")
	batchCmd.Flags().StringSliceVar(&batchSources, "source", nil, "Restrict lookups to these sources")
	batchCmd.Flags().BoolVar(&enhanceApply, "apply", false, "Write fields that need no manual choice")
	batchCmd.Flags().BoolVar(&dryRunApply, "dry-run", false, "Force dry-run (no writes even with --yes)")
}

func runEnhance(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	id, err := parseVesselID(args[0])
	if err != nil {
		return err
	}
	resolutions, err := parseResolutions(enhanceResolve)
	if err != nil {
		return err
	}

	rt, err := setup()
	if err != nil {
		return err
	}
	l := rt.logger.With(zap.Uint("vessel_id", id))

	// Step 1: Fetch and merge
	var (
		result reconcile.MergeResult
		source reconcile.Source
	)
	if enhanceAll {
		var candidates []reconcile.Candidate
		result, candidates, err = rt.service.EnhanceAll(ctx, id)
		if err != nil {
			return err
		}
		tags := make([]string, len(candidates))
		for i, c := range candidates {
			tags[i] = string(c.Source)
		}
		source = reconcile.Source(strings.Join(tags, "+"))
	} else {
		res, err := rt.service.Enhance(ctx, id, models.EnhanceRequest{Source: reconcile.Source(enhanceSource)})
		if err != nil {
			return err
		}
		result, source = res.Result, res.Candidate.Source
	}
	if !result.Success {
		return fmt.Errorf("%w: %s", reconcile.ErrMergeFailed, result.Error)
	}

	opts := reconcile.ApplyOptions{
		Fields:      toFieldNames(enhanceFields),
		Resolutions: resolutions,
		ActorID:     actorID,
		DryRun:      true,
	}

	// Step 2: Plan and report
	preview, err := rt.service.Apply(ctx, id, result, source, opts)
	if err != nil {
		return err
	}
	if outputFormat != formatTable {
		if err := writeStructured(out, outputFormat, preview.Plan); err != nil {
			return err
		}
	} else {
		renderConflicts(out, result)
		renderPlan(out, preview.Plan)
	}
	printPlanReport(l, source, result, preview.Plan)

	// Step 3: Check if actions are requested
	if !enhanceApply {
		l.Info("No changes written. Use --apply to write the planned changes.")
		return nil
	}
	if dryRunApply {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if len(preview.Plan.Actions) == 0 {
		l.Info("No actions required based on current flags.")
		return nil
	}

	// Step 4: Apply (if confirmed)
	if err := rt.requireSchema(); err != nil {
		return err
	}
	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}
	opts.DryRun = false
	opts.Confirmed = true
	applied, err := rt.service.Apply(ctx, id, result, source, opts)
	if err != nil {
		return fmt.Errorf("failed to apply plan: %w", err)
	}
	l.Info("Successfully applied changes", zap.Int("count", applied.Applied))
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := setup()
	if err != nil {
		return err
	}

	ids := make([]uint, 0, len(args))
	for _, a := range args {
		id, err := parseVesselID(a)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		vessels, err := rt.service.Candidates(ctx, batchLimit)
		if err != nil {
			return err
		}
		for _, v := range vessels {
			ids = append(ids, v.ID)
		}
	}
	if len(ids) == 0 {
		rt.logger.Info("No vessels need enhancement.")
		return nil
	}

	apply := enhanceApply && !dryRunApply
	if apply {
		if err := rt.requireSchema(); err != nil {
			return err
		}
		rt.logger.Info("Batch will write changes", zap.Int("vessels", len(ids)))
		if !confirmDestructiveAction() {
			rt.logger.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}
	}

	srcs := make([]reconcile.Source, 0, len(batchSources))
	for _, s := range batchSources {
		srcs = append(srcs, reconcile.Source(reconcile.NormalizeTag(s)))
	}

	items, err := rt.service.BatchEnhance(ctx, ids, vessel.BatchOptions{
		Sources: srcs,
		Apply:   apply,
		ActorID: actorID,
	})
	if err != nil {
		return err
	}

	if outputFormat != formatTable {
		return writeStructured(cmd.OutOrStdout(), outputFormat, items)
	}
	renderBatch(cmd.OutOrStdout(), items)

	var applied, failed int
	for _, it := range items {
		applied += it.Applied
		if it.Error != "" {
			failed++
		}
	}
	rt.logger.Info("Batch enhancement completed",
		zap.Int("vessels", len(items)),
		zap.Int("fields_applied", applied),
		zap.Int("failed", failed),
	)
	return nil
}

// printPlanReport logs the merge and plan counts.
func printPlanReport(l *zap.Logger, source reconcile.Source, result reconcile.MergeResult, plan *reconcile.PatchPlan) {
	summary := reconcile.Summarize(result.Conflicts)
	l.Info("Enhancement report",
		zap.String("source", string(source)),
		zap.Int("conflicts", summary.Total),
		zap.Int("high_confidence", summary.HighConfidence),
		zap.Int("auto_resolved", len(result.AutoResolved)),
		zap.Int("manual_required", len(result.ManualRequired)),
		zap.Int("fill", plan.Summary.Fill),
		zap.Int("replace", plan.Summary.Replace),
		zap.Int("resolve", plan.Summary.Resolve),
		zap.Int("pending", plan.Summary.Pending),
	)
	for _, w := range result.Warnings {
		l.Warn("Merge warning", zap.String("warning", w))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to write these changes: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}

func parseVesselID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid vessel id %q", s)
	}
	return uint(id), nil
}

// parseResolutions reads field=choice pairs; value:<v> supplies a literal.
func parseResolutions(pairs []string) (map[reconcile.FieldName]reconcile.Resolution, error) {
	out := make(map[reconcile.FieldName]reconcile.Resolution, len(pairs))
	for _, p := range pairs {
		field, choice, ok := strings.Cut(p, "=")
		if !ok || field == "" || choice == "" {
			return nil, fmt.Errorf("invalid --resolve %q (expected field=choice)", p)
		}
		res := reconcile.Resolution{Choice: reconcile.Choice(choice)}
		if v, isValue := strings.CutPrefix(choice, "value:"); isValue {
			res = reconcile.Resolution{Choice: reconcile.ChoiceValue, Value: v}
		}
		out[reconcile.FieldName(strings.TrimSpace(field))] = res
	}
	return out, nil
}

func toFieldNames(fields []string) []reconcile.FieldName {
	out := make([]reconcile.FieldName, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, reconcile.FieldName(f))
		}
	}
	return out
}

func defaultActor() string {
	if u := os.Getenv("USER"); u != "" {
		return "cli:" + u
	}
	return "cli"
}

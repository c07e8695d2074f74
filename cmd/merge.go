package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"vessel-manager/core/config"
	"vessel-manager/core/logger"
	"vessel-manager/core/reconcile"
	"vessel-manager/feature/vessel"
	"vessel-manager/feature/vessel/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	mergeExisting       string
	mergeExistingSource string
	mergeCandidates     []string
	mergeNoAuto         bool
)

// mergeCmd merges record files without a database or storage.
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge vessel record files offline",
	Long: `Merge an existing vessel record with one or more candidate records, in the
order given, and print the conflicts and the merged record. Records are JSON or
YAML files keyed by canonical field name.

Examples:
  merge --existing serenity.json --candidate marinetraffic=mt.json
  merge --existing serenity.yaml --candidate lloyds=l.json --candidate boat_international=bi.yaml --format yaml`,
	RunE: runMerge,
}

func init() {
	RootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringVar(&mergeExisting, "existing", "", "Existing record file (empty means no existing data)")
	mergeCmd.Flags().StringVar(&mergeExistingSource, "existing-source", "", "Source the existing record came from (default database)")
	mergeCmd.Flags().StringArrayVar(&mergeCandidates, "candidate", nil, "Candidate as source=file, repeatable")
	mergeCmd.Flags().BoolVar(&mergeNoAuto, "no-auto", false, "Leave every conflict for manual resolution")
	mergeCmd.Flags().StringVar(&outputFormat, "format", formatTable, "Output format: table, json or yaml")
	_ = mergeCmd.MarkFlagRequired("candidate")
}

func runMerge(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	req := models.MergeRequest{
		Existing:       map[string]any{},
		ExistingSource: reconcile.Source(reconcile.NormalizeTag(mergeExistingSource)),
	}
	if mergeExisting != "" {
		if req.Existing, err = readRecord(mergeExisting); err != nil {
			return err
		}
	}
	if mergeNoAuto {
		off := false
		req.AutoResolve = &off
	}
	for _, spec := range mergeCandidates {
		source, path, ok := strings.Cut(spec, "=")
		if !ok || source == "" || path == "" {
			return fmt.Errorf("invalid --candidate %q (expected source=file)", spec)
		}
		fields, err := readRecord(path)
		if err != nil {
			return err
		}
		req.Candidates = append(req.Candidates, models.RawCandidate{
			Source: reconcile.Source(reconcile.NormalizeTag(source)),
			Fields: fields,
		})
	}

	svc := vessel.NewService(nil, nil, nil, 1, logg)
	resp := svc.Merge(req)
	for record, fields := range resp.Dropped {
		logg.Warn("Dropped fields that could not be read", zap.String("record", record), zap.Strings("fields", fields))
	}
	if !resp.Result.Success {
		return fmt.Errorf("%w: %s", reconcile.ErrMergeFailed, resp.Result.Error)
	}

	if outputFormat != formatTable {
		return writeStructured(out, outputFormat, resp)
	}
	renderConflicts(out, resp.Result)
	renderMerged(out, resp.Result.Merged)
	fmt.Fprintln(out, resp.Report)
	return nil
}

// readRecord decodes a JSON or YAML record file into raw fields.
func readRecord(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	record := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &record)
	default:
		err = json.Unmarshal(data, &record)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return record, nil
}

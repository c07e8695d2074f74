package cmd

import (
	"context"
	"errors"
	"fmt"

	"vessel-manager/feature/integrity"
	"vessel-manager/feature/integrity/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on candidate storage and the vessel database",
	Long:  `Checks that the storage bucket holds the candidate folders for every enabled source and that the vessel tables match their models.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		return runIntegrityChecks(cmd.Context(), true, true)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix candidate folder structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the vessel database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, schemaCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the bucket and missing folders")
}

func runIntegrityChecks(ctx context.Context, runStructure, runSchema bool) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	logg := rt.logger
	svc := integrity.NewService(rt.client, rt.cfg.Storage.Bucket, rt.candidateFolders(), rt.db, logg)

	healthy := true

	if runStructure {
		logg.Info("Checking candidate folders...", zap.Strings("folders", svc.Folders()))
		missing, err := svc.CheckStructure(ctx)
		bucketMissing := errors.Is(err, checks.ErrBucketMissing)
		if err != nil && !(bucketMissing && fixFlag) {
			return fmt.Errorf("structure check failed: %w", err)
		}

		if len(missing) == 0 {
			logg.Info("Structure is intact.")
		} else {
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))

			if fixFlag {
				if bucketMissing {
					logg.Info("Creating bucket...", zap.String("bucket", rt.cfg.Storage.Bucket))
					if err := svc.EnsureBucket(ctx); err != nil {
						return fmt.Errorf("failed to fix structure: %w", err)
					}
				}
				logg.Info("Fixing missing folders...")
				if err := svc.FixStructure(ctx, missing); err != nil {
					return fmt.Errorf("failed to fix structure: %w", err)
				}
				logg.Info("Structure fixed successfully.")
			} else {
				healthy = false
				logg.Info("Run `integrity structure --fix` to create missing folders.")
			}
		}
	}

	if runSchema {
		logg.Info("Checking vessel schema integrity...")
		report, err := svc.CheckSchema()
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}
		if report.Matched {
			logg.Info("Vessel schema matches expected definition.")
		} else {
			healthy = false
			logg.Warn("Vessel schema mismatches found")
			for table, tblReport := range report.Tables {
				if tblReport.Status == "ok" {
					continue
				}
				if len(tblReport.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tblReport.MissingColumns))
				}
				if len(tblReport.TypeMismatches) > 0 {
					logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tblReport.TypeMismatches))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
		}
	}

	if !healthy {
		return fmt.Errorf("integrity checks found problems")
	}
	return nil
}

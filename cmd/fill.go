package cmd

import (
	"context"
	"fmt"

	"leap-bridge/core/config"
	"leap-bridge/core/logger"
	"leap-bridge/core/storage"
	"leap-bridge/feature/exportfile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fillFile         string
	fillObject       string
	fillPathsFile    string
	fillScenario     string
	fillRegion       string
	fillSetUnits     bool
	fillNoCreate     bool
	fillReportObject string
)

// fillCmd runs the full pipeline and publishes the resulting operations
// and report to storage, where the model-side applier picks them up.
var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Convert a tabular export into tree operations and publish the report",
	Long: `Fill reads a tabular export, computes every branch creation and variable
assignment it implies, and uploads the ordered operations and per-row
report to the storage bucket as JSON.

Examples:
  # Fill from a stored export and publish the report
  leap-bridge fill --object exports/mapping.csv

  # Fill from a local file into a custom report object
  leap-bridge fill --file export.csv --report-object reports/run.json`,
	RunE: runFill,
}

func init() {
	fillCmd.Flags().StringVar(&fillFile, "file", "", "Local export CSV file")
	fillCmd.Flags().StringVar(&fillObject, "object", "", "Export CSV object in the storage bucket")
	fillCmd.Flags().StringVar(&fillPathsFile, "paths", "", "File listing branch paths that already exist, one per line")
	fillCmd.Flags().StringVar(&fillScenario, "scenario", "", "Scenario to select (defaults to the configured scenario)")
	fillCmd.Flags().StringVar(&fillRegion, "region", "", "Region to select (defaults to the configured region)")
	fillCmd.Flags().BoolVar(&fillSetUnits, "set-units", false, "Also assign data units to leaf branches")
	fillCmd.Flags().BoolVar(&fillNoCreate, "no-create", false, "Fail rows whose branches do not exist instead of creating them")
	fillCmd.Flags().StringVar(&fillReportObject, "report-object", "", "Report object name (default reports/<run-id>.json)")

	RootCmd.AddCommand(fillCmd)
}

func runFill(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	report, err := runMapping(ctx, cfg, l, mappingParams{
		file:      fillFile,
		object:    fillObject,
		pathsFile: fillPathsFile,
		scenario:  fillScenario,
		region:    fillRegion,
		noCreate:  fillNoCreate,
		setUnits:  fillSetUnits,
	})
	if err != nil {
		return err
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	objectName := fillReportObject
	if objectName == "" {
		objectName = "reports/" + report.RunID + ".json"
	}
	if err := exportfile.SaveJSON(ctx, client, cfg.Storage.Bucket, objectName, report); err != nil {
		return fmt.Errorf("failed to publish report: %w", err)
	}

	logger.WithRunID(l, report.RunID).Info("Report published",
		zap.String("bucket", cfg.Storage.Bucket),
		zap.String("object", objectName),
		zap.Int("operations", len(report.Operations)),
	)

	if !report.Succeeded() {
		return fmt.Errorf("%d of %d rows failed", report.Summary.Failed, report.Summary.TotalRows)
	}
	return nil
}

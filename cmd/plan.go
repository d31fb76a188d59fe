package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"leap-bridge/core/config"
	"leap-bridge/core/logger"
	"leap-bridge/core/mapping"
	"leap-bridge/feature/exportfile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	planFile       string
	planObject     string
	planPathsFile  string
	planScenario   string
	planRegion     string
	planReportPath string
	planNoCreate   bool
	planNoFill     bool
	planSetUnits   bool
)

// planCmd performs a dry run: every operation the export implies is
// computed against an in-memory tree, nothing external is touched.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run a tabular export against an in-memory tree",
	Long: `Plan reads a tabular export, converts it into branch tree operations,
and applies them to an in-memory tree. The resulting report shows exactly
which branches would be created and which variables would be set, without
touching the model.

Examples:
  # Plan a local export file
  leap-bridge plan --file export.csv

  # Plan an export stored in the bucket, seeding known branches
  leap-bridge plan --object exports/mapping.csv --paths branches.txt

  # Write the full report as JSON
  leap-bridge plan --file export.csv --report report.json`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planFile, "file", "", "Local export CSV file")
	planCmd.Flags().StringVar(&planObject, "object", "", "Export CSV object in the storage bucket")
	planCmd.Flags().StringVar(&planPathsFile, "paths", "", "File listing branch paths that already exist, one per line")
	planCmd.Flags().StringVar(&planScenario, "scenario", "", "Scenario to select (defaults to the configured scenario)")
	planCmd.Flags().StringVar(&planRegion, "region", "", "Region to select (defaults to the configured region)")
	planCmd.Flags().StringVar(&planReportPath, "report", "", "Write the full run report as JSON to this file")
	planCmd.Flags().BoolVar(&planNoCreate, "no-create", false, "Fail rows whose branches do not exist instead of creating them")
	planCmd.Flags().BoolVar(&planNoFill, "no-fill", false, "Only verify/create branch structure, set no variables")
	planCmd.Flags().BoolVar(&planSetUnits, "set-units", false, "Also assign data units to leaf branches")

	RootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
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
		file:      planFile,
		object:    planObject,
		pathsFile: planPathsFile,
		scenario:  planScenario,
		region:    planRegion,
		noCreate:  planNoCreate,
		noFill:    planNoFill,
		setUnits:  planSetUnits,
	})
	if err != nil {
		return err
	}

	if planReportPath != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		if err := os.WriteFile(planReportPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		l.Info("Report written", zap.String("path", planReportPath))
	}

	if !report.Succeeded() {
		return fmt.Errorf("%d of %d rows failed", report.Summary.Failed, report.Summary.TotalRows)
	}
	return nil
}

// mappingParams carries the shared knobs of plan and fill runs.
type mappingParams struct {
	file      string
	object    string
	pathsFile string
	scenario  string
	region    string
	noCreate  bool
	noFill    bool
	setUnits  bool
}

// runMapping executes the export-to-operations pipeline against an
// in-memory tree and returns the report.
func runMapping(ctx context.Context, cfg *config.Config, l *zap.Logger, p mappingParams) (*mapping.Report, error) {
	tbl, err := loadExport(ctx, cfg, p.file, p.object)
	if err != nil {
		return nil, err
	}

	scenario := p.scenario
	if scenario == "" {
		scenario = cfg.Model.Scenario
	}
	region := p.region
	if region == "" {
		region = cfg.Model.Region
	}

	rows, err := exportfile.MappingRows(tbl, exportfile.Filter{Scenario: scenario, Region: region})
	if err != nil {
		return nil, err
	}

	mem, err := seedTree(p.pathsFile)
	if err != nil {
		return nil, err
	}

	modelCfg := cfg.Model
	if p.noCreate {
		modelCfg.CreateBranches = false
	}
	if p.noFill {
		modelCfg.FillVariables = false
	}
	if p.setUnits {
		modelCfg.SetUnits = true
	}
	opts, err := modelCfg.EngineOptions()
	if err != nil {
		return nil, err
	}

	engine := mapping.NewEngine(mem, opts, l)
	report, err := engine.Run(ctx, rows)
	if err != nil {
		return nil, err
	}

	rl := logger.WithRunID(l, report.RunID)
	rl.Info("Mapping run finished",
		zap.Int("rows", report.Summary.TotalRows),
		zap.Int("succeeded", report.Summary.Succeeded),
		zap.Int("skipped", report.Summary.Skipped),
		zap.Int("failed", report.Summary.Failed),
		zap.Int("branches_created", report.Summary.BranchesCreated),
		zap.Int("variables_set", report.Summary.VariablesSet),
	)

	for _, result := range report.Results {
		for _, warning := range result.Warnings {
			rl.Warn("Row warning", zap.Int("row", result.Row), zap.String("warning", warning))
		}
	}

	return report, nil
}

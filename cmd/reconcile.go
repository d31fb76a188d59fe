package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"leap-bridge/core/config"
	"leap-bridge/core/database"
	"leap-bridge/core/logger"
	"leap-bridge/core/mapping"
	"leap-bridge/core/reconcile"
	"leap-bridge/core/storage"
	"leap-bridge/feature/energy"
	"leap-bridge/feature/exportfile"
	"leap-bridge/feature/statistics"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	recFile         string
	recObject       string
	recSourceFile   string
	recRulesFile    string
	recScenario     string
	recRegion       string
	recYears        []int
	recMode         string
	recAbsolute     float64
	recRelative     float64
	recCacheTTL     time.Duration
	recReportPath   string
	recReportObject string
)

// reconcileReport is the JSON shape of a published reconciliation.
type reconcileReport struct {
	Records []reconcile.Record `json:"records"`
	Summary reconcile.Summary  `json:"summary"`
}

// reconcileCmd compares the model's energy against source statistics.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile model energy against source statistics",
	Long: `Reconcile derives per-(region, sector, fuel, year) energy from the model
described by a tabular export and a rules file, loads the matching
statistics from the source database, and reports matches, out-of-tolerance
values, and keys missing on either side.

Discrepancies are reported, never corrected.

Examples:
  # Reconcile 2020-2021 with an absolute tolerance of 0.5
  leap-bridge reconcile --file export.csv --rules rules.json \
    --years 2020,2021 --mode absolute --abs 0.5

  # Relative tolerance, cached statistics, report published to storage
  leap-bridge reconcile --object exports/mapping.csv --rules rules.json \
    --years 2020 --mode relative --rel 0.02 --cache-ttl 5m \
    --report-object reports/reconcile.json`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&recFile, "file", "", "Local export CSV file")
	reconcileCmd.Flags().StringVar(&recObject, "object", "", "Export CSV object in the storage bucket")
	reconcileCmd.Flags().StringVar(&recSourceFile, "source-file", "", "Statistics CSV file to use instead of the database")
	reconcileCmd.Flags().StringVar(&recRulesFile, "rules", "", "JSON file mapping sector/fuel coordinates to model branches")
	reconcileCmd.Flags().StringVar(&recScenario, "scenario", "", "Scenario to reconcile (defaults to the configured scenario)")
	reconcileCmd.Flags().StringVar(&recRegion, "region", "", "Region to reconcile (defaults to the configured region)")
	reconcileCmd.Flags().IntSliceVar(&recYears, "years", nil, "Years to reconcile")
	reconcileCmd.Flags().StringVar(&recMode, "mode", "absolute", "Tolerance mode (absolute, relative, both)")
	reconcileCmd.Flags().Float64Var(&recAbsolute, "abs", 0, "Absolute tolerance threshold")
	reconcileCmd.Flags().Float64Var(&recRelative, "rel", 0, "Relative tolerance threshold")
	reconcileCmd.Flags().DurationVar(&recCacheTTL, "cache-ttl", 0, "Statistics dataset cache TTL (0 disables caching)")
	reconcileCmd.Flags().StringVar(&recReportPath, "report", "", "Write the reconciliation report as JSON to this file")
	reconcileCmd.Flags().StringVar(&recReportObject, "report-object", "", "Publish the reconciliation report to this storage object")

	_ = reconcileCmd.MarkFlagRequired("rules")
	_ = reconcileCmd.MarkFlagRequired("years")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	scenario := recScenario
	if scenario == "" {
		scenario = cfg.Model.Scenario
	}
	region := recRegion
	if region == "" {
		region = cfg.Model.Region
	}

	rules, err := loadRules(recRulesFile)
	if err != nil {
		return err
	}

	model, err := buildModelDataset(ctx, cfg, l, rules, scenario, region)
	if err != nil {
		return err
	}

	source, err := loadSourceDataset(ctx, cfg, rules, region)
	if err != nil {
		return err
	}

	tol := reconcile.Tolerance{
		Mode:     reconcile.Mode(recMode),
		Absolute: recAbsolute,
		Relative: recRelative,
	}
	records, summary, err := reconcile.Reconcile(source, model, tol)
	if err != nil {
		return err
	}

	printReconcileSummary(l, records, summary)

	report := reconcileReport{Records: records, Summary: summary}
	if recReportPath != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		if err := os.WriteFile(recReportPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	if recReportObject != "" {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		if err := exportfile.SaveJSON(ctx, client, cfg.Storage.Bucket, recReportObject, report); err != nil {
			return fmt.Errorf("failed to publish report: %w", err)
		}
		l.Info("Report published", zap.String("object", recReportObject))
	}

	if !summary.Clean() {
		return fmt.Errorf("reconciliation found %d discrepancies",
			summary.OutOfTolerance+summary.MissingFromModel+summary.MissingFromSource)
	}
	return nil
}

func loadRules(path string) (energy.RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rules file: %w", err)
	}
	defer f.Close()

	rules, err := energy.ParseRules(f, nil)
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// buildModelDataset replays the export into an in-memory tree and derives
// the model's per-coordinate energy from it.
func buildModelDataset(ctx context.Context, cfg *config.Config, l *zap.Logger, rules energy.RuleSet, scenario, region string) (reconcile.Dataset, error) {
	tbl, err := loadExport(ctx, cfg, recFile, recObject)
	if err != nil {
		return nil, err
	}

	rows, err := exportfile.MappingRows(tbl, exportfile.Filter{Scenario: scenario, Region: region})
	if err != nil {
		return nil, err
	}

	mem, err := seedTree("")
	if err != nil {
		return nil, err
	}

	opts, err := cfg.Model.EngineOptions()
	if err != nil {
		return nil, err
	}
	opts.CreateBranches = true
	opts.FillVariables = true

	engine := mapping.NewEngine(mem, opts, l)
	report, err := engine.Run(ctx, rows)
	if err != nil {
		return nil, err
	}
	if !report.Succeeded() {
		return nil, fmt.Errorf("export replay failed for %d rows", report.Summary.Failed)
	}

	return energy.ModelDataset(mem, rules, nil, scenario, region, recYears)
}

// loadSourceDataset queries the statistics database, restricted to the
// coordinates the rules actually map. With --source-file the statistics
// come from a long-format CSV instead.
func loadSourceDataset(ctx context.Context, cfg *config.Config, rules energy.RuleSet, region string) (reconcile.Dataset, error) {
	if recSourceFile != "" {
		tbl, err := exportfile.LoadFile(recSourceFile)
		if err != nil {
			return nil, err
		}
		ds, err := statistics.DatasetFromTable(tbl)
		if err != nil {
			return nil, err
		}
		return energy.RestrictDataset(ds, rules, region, recYears), nil
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := statistics.NewStore(db)
	if err := store.VerifySchema(); err != nil {
		return nil, err
	}

	filter := statistics.Filter{Years: recYears}
	if region != "" {
		filter.Regions = []string{region}
	}
	for coord := range rules {
		filter.Sectors = append(filter.Sectors, coord.Sector)
		filter.Fuels = append(filter.Fuels, coord.Fuel)
	}

	ds, err := statistics.CachedDataset(ctx, store, filter, recCacheTTL)
	if err != nil {
		return nil, err
	}
	// The SQL filter matches sectors and fuels independently, so a cross
	// pair (a mapped sector with a fuel mapped only under another sector)
	// can survive it. Only rule-mapped coordinates reconcile.
	return energy.RestrictDataset(ds, rules, region, recYears), nil
}

// printReconcileSummary prints a formatted reconciliation report using logger.
func printReconcileSummary(l *zap.Logger, records []reconcile.Record, summary reconcile.Summary) {
	l.Info("Reconciliation report",
		zap.Int("total_keys", summary.TotalKeys),
		zap.Int("matched", summary.Matched),
		zap.Int("out_of_tolerance", summary.OutOfTolerance),
		zap.Int("missing_from_model", summary.MissingFromModel),
		zap.Int("missing_from_source", summary.MissingFromSource),
	)

	// Show sample of discrepancies (max 5 for logger)
	shown := 0
	for _, record := range records {
		if record.Status == reconcile.StatusMatched {
			continue
		}
		if shown == 5 {
			l.Info("Additional discrepancies not shown")
			break
		}
		fields := []zap.Field{
			zap.String("key", record.Key.String()),
			zap.String("status", string(record.Status)),
			zap.Float64("source", record.SourceValue),
			zap.Float64("model", record.ModelValue),
			zap.Float64("delta", record.Delta),
		}
		if record.ScaleFactor != 0 {
			fields = append(fields, zap.Float64("scale_factor", record.ScaleFactor))
		}
		l.Info("Discrepancy", fields...)
		shown++
	}
}

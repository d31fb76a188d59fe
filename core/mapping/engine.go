package mapping

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"leap-bridge/core/branch"
	"leap-bridge/core/expression"
	"leap-bridge/core/tree"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine converts mapping rows into branch tree operations and drives the
// adapter with them. Each row is processed independently: failures are
// recorded per row and never abort the batch.
//
// The engine holds no tree state. Every segment existence check is a fresh
// adapter query, because the external tree can change between calls and
// stale answers would silently corrupt created branches. One engine run is
// re-entrant over disjoint inputs but must not run concurrently against
// the same adapter instance.
type Engine struct {
	adapter tree.Adapter
	opts    Options
	log     *zap.Logger
}

// NewEngine creates an engine over the given adapter.
func NewEngine(adapter tree.Adapter, opts Options, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{adapter: adapter, opts: opts, log: log}
}

// Run processes rows in input order and returns the full report. The only
// batch-fatal condition is a missing adapter; everything row-shaped is
// recorded in the per-row results.
func (e *Engine) Run(ctx context.Context, rows []Row) (*Report, error) {
	if e.adapter == nil {
		return nil, errors.New("mapping engine requires a tree adapter")
	}

	report := &Report{
		RunID:   uuid.NewString(),
		Results: make([]RowResult, 0, len(rows)),
	}
	report.Summary.TotalRows = len(rows)

	for i, row := range rows {
		result := e.processRow(ctx, i, row, report)
		report.Results = append(report.Results, result)

		switch result.Outcome {
		case OutcomeSuccess:
			report.Summary.Succeeded++
		case OutcomeSkipped:
			report.Summary.Skipped++
		case OutcomeFailed:
			report.Summary.Failed++
			e.log.Warn("row failed",
				zap.String("run_id", report.RunID),
				zap.Int("row", i),
				zap.String("path", row.Path),
				zap.String("reason", result.Reason),
			)
		}
	}

	e.log.Info("mapping run complete",
		zap.String("run_id", report.RunID),
		zap.Int("total_rows", report.Summary.TotalRows),
		zap.Int("succeeded", report.Summary.Succeeded),
		zap.Int("skipped", report.Summary.Skipped),
		zap.Int("failed", report.Summary.Failed),
		zap.Int("branches_created", report.Summary.BranchesCreated),
		zap.Int("variables_set", report.Summary.VariablesSet),
	)
	return report, nil
}

func (e *Engine) processRow(ctx context.Context, index int, row Row, report *Report) RowResult {
	result := RowResult{Row: index}

	segments, err := branch.Resolve(row.Path)
	if err != nil {
		return failed(result, err)
	}

	if !row.Actionable() {
		result.Outcome = OutcomeSkipped
		result.Reason = "no year values"
		return result
	}

	result.Warnings = scaleWarnings(row)

	// Walk the path segment by segment, querying the adapter lazily.
	var handle tree.Handle
	parent := ""
	for i, path := range branch.Prefixes(segments) {
		exists, err := e.adapter.Exists(ctx, path)
		if err != nil {
			return failed(result, &tree.AdapterError{Op: "exists", Path: path, Err: err})
		}
		if !exists && !e.opts.CreateBranches {
			return failed(result, &MissingBranchError{Path: path})
		}

		handle, err = e.adapter.GetOrCreateChild(ctx, parent, segments[i])
		if err != nil {
			return failed(result, &tree.AdapterError{Op: "get_or_create_child", Path: path, Err: err})
		}
		if !exists {
			report.Operations = append(report.Operations, Operation{Type: OpCreateBranch, Path: path})
			report.Summary.BranchesCreated++
		}
		parent = path
	}

	if !e.opts.FillVariables {
		result.Outcome = OutcomeSuccess
		return result
	}

	expr, err := expression.Build(row.Variable, row.Scale, row.Values, row.Years, e.opts.FillPolicy, e.opts.Form)
	if err != nil {
		return failed(result, fmt.Errorf("build expression for %q: %w", row.Variable, err))
	}

	if err := e.adapter.SetExpression(ctx, handle, row.Variable, row.Scenario, expr); err != nil {
		return failed(result, &tree.AdapterError{Op: "set_expression", Path: parent, Err: err})
	}

	op := Operation{
		Type:       OpSetVariable,
		Path:       parent,
		Variable:   row.Variable,
		Scenario:   row.Scenario,
		Expression: expr,
	}

	if e.opts.SetUnits && row.Units != "" {
		if err := e.adapter.SetUnits(ctx, handle, row.Units); err != nil {
			return failed(result, &tree.AdapterError{Op: "set_units", Path: parent, Err: err})
		}
		op.Units = row.Units
	}

	report.Operations = append(report.Operations, op)
	report.Summary.VariablesSet++

	result.Outcome = OutcomeSuccess
	return result
}

// scaleWarnings returns caller-responsibility notes about scales the
// external application resolves itself. Percentage/share variables are
// known to end up with an incorrect scale after creation; the engine
// surfaces that instead of attempting a correction.
func scaleWarnings(row Row) []string {
	var warnings []string

	_, numeric := expression.NumericScale(row.Scale)
	if row.Scale != "" && !numeric {
		warnings = append(warnings, fmt.Sprintf(
			"scale %q is resolved by the external application and is not part of the expression", row.Scale))
	}

	if isShareLike(row.Scale) || isShareLike(row.Units) {
		warnings = append(warnings, fmt.Sprintf(
			"share/percentage variable %q may resolve to an incorrect scale after creation; verify the unit in the application", row.Variable))
	}
	return warnings
}

func isShareLike(s string) bool {
	s = strings.ToLower(s)
	return strings.Contains(s, "share") || strings.Contains(s, "percent") || strings.Contains(s, "%")
}

func failed(result RowResult, err error) RowResult {
	result.Outcome = OutcomeFailed
	result.Reason = err.Error()
	return result
}

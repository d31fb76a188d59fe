package mapping

import (
	"fmt"

	"leap-bridge/core/expression"
)

// Row is one record of the tabular export/import contract: a branch path,
// the variable it feeds, scenario/region metadata, and per-year values.
type Row struct {
	// Path is the slash-delimited branch path ("Transport/Road/Diesel").
	Path string `json:"path"`

	// Variable is the branch variable the row fills ("Activity Level").
	Variable string `json:"variable"`

	// Scenario is the scenario the expression belongs to.
	Scenario string `json:"scenario"`

	// Region is the region the row belongs to.
	Region string `json:"region"`

	// Scale is the optional unit-magnitude multiplier ("1000", "Percent").
	Scale string `json:"scale,omitempty"`

	// Units is the optional data unit ("PJ", "Passenger-km").
	Units string `json:"units,omitempty"`

	// Per is the optional denominator annotation ("of Passenger-km").
	Per string `json:"per,omitempty"`

	// Values maps year to value; years without values are absent.
	Values map[int]float64 `json:"values"`

	// Years is the full year span of the source table, used by fill
	// policies to know which years are missing rather than out of range.
	Years []int `json:"years,omitempty"`
}

// Actionable reports whether the row carries at least one year value.
func (r Row) Actionable() bool {
	return len(r.Values) > 0
}

// MissingBranchError indicates a path segment absent from the tree while
// branch creation is disabled. The row fails; the batch continues.
type MissingBranchError struct {
	// Path is the first absent branch path.
	Path string
}

func (e *MissingBranchError) Error() string {
	return fmt.Sprintf("branch %q does not exist and branch creation is disabled", e.Path)
}

// OpType tags a pending operation variant.
type OpType string

const (
	// OpCreateBranch creates a branch node at Path.
	OpCreateBranch OpType = "create_branch"
	// OpSetVariable assigns an expression to a branch variable.
	OpSetVariable OpType = "set_variable"
)

// Operation is one tree mutation, emitted and applied in order. Within a
// row, create operations precede the row's set_variable.
type Operation struct {
	// Type specifies the operation variant.
	Type OpType `json:"type"`

	// Path is the branch path the operation addresses.
	Path string `json:"path"`

	// Variable is set for set_variable operations.
	Variable string `json:"variable,omitempty"`

	// Scenario is set for set_variable operations.
	Scenario string `json:"scenario,omitempty"`

	// Expression is set for set_variable operations.
	Expression string `json:"expression,omitempty"`

	// Units is set when the operation also assigned a data unit.
	Units string `json:"units,omitempty"`
}

// Outcome classifies the processing result of a single row.
type Outcome string

const (
	// OutcomeSuccess means every operation the row required was applied.
	OutcomeSuccess Outcome = "success"
	// OutcomeSkipped means the row required no operations (no year values).
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed means the row could not be applied; Reason says why.
	OutcomeFailed Outcome = "failed"
)

// RowResult is the audit record for one input row.
type RowResult struct {
	// Row is the zero-based input row index.
	Row int `json:"row"`

	// Outcome classifies the result.
	Outcome Outcome `json:"outcome"`

	// Reason explains a skipped or failed outcome.
	Reason string `json:"reason,omitempty"`

	// Warnings carries caller-responsibility notes (e.g. named scales on
	// share variables) that did not block the row.
	Warnings []string `json:"warnings,omitempty"`
}

// Summary provides aggregate counts for a run.
type Summary struct {
	// TotalRows is the number of input rows.
	TotalRows int `json:"total_rows"`

	// Succeeded counts rows fully applied.
	Succeeded int `json:"succeeded"`

	// Skipped counts rows that required no operations.
	Skipped int `json:"skipped"`

	// Failed counts rows that could not be applied.
	Failed int `json:"failed"`

	// BranchesCreated counts create_branch operations applied.
	BranchesCreated int `json:"branches_created"`

	// VariablesSet counts set_variable operations applied.
	VariablesSet int `json:"variables_set"`
}

// Report is the full output of one engine run: per-row audit trail plus
// the ordered operations that were applied through the adapter.
type Report struct {
	// RunID uniquely identifies this run in logs and downstream audits.
	RunID string `json:"run_id"`

	// Results holds one entry per input row, in input order.
	Results []RowResult `json:"results"`

	// Operations holds every applied operation, in emission order.
	Operations []Operation `json:"operations"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}

// Succeeded reports whether every row either succeeded or was skipped.
// Partial success is the expected common case; callers needing detail
// read Results.
func (r *Report) Succeeded() bool {
	return r.Summary.Failed == 0
}

// Options controls engine behavior for a run.
type Options struct {
	// CreateBranches enables creation of absent path segments. When
	// false, rows touching absent branches fail with MissingBranchError.
	CreateBranches bool

	// FillVariables enables set_variable operations. When false, the
	// engine only verifies/creates branch structure.
	FillVariables bool

	// SetUnits enables assigning the row's Units to the leaf node.
	SetUnits bool

	// Form selects the series expression form (Interp by default).
	Form expression.Form

	// FillPolicy decides how years without values are treated
	// (skip by default).
	FillPolicy expression.FillPolicy
}

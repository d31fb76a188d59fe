package mapping

import (
	"fmt"

	"leap-bridge/core/expression"
)

// Config holds configuration defaults for mapping runs. Command-line
// flags can override individual fields before EngineOptions is called.
type Config struct {
	// Scenario is the default scenario rows are assigned to.
	Scenario string `mapstructure:"scenario" default:"Current Accounts"`
	// Region is the default region filter. Empty means all regions.
	Region string `mapstructure:"region" default:""`
	// CreateBranches enables creation of absent branches.
	CreateBranches bool `mapstructure:"create_branches" default:"true"`
	// FillVariables enables assigning expressions to branch variables.
	FillVariables bool `mapstructure:"fill_variables" default:"true"`
	// SetUnits enables assigning data units to leaf branches.
	SetUnits bool `mapstructure:"set_units" default:"false"`
	// Form is the series expression form (Interp or Data).
	Form string `mapstructure:"form" default:"Interp"`
	// FillPolicy decides how missing years are treated
	// (skip, zero, carry_forward).
	FillPolicy string `mapstructure:"fill_policy" default:"skip"`
}

// EngineOptions validates the configuration and converts it into engine
// options.
func (c Config) EngineOptions() (Options, error) {
	form := expression.Form(c.Form)
	switch form {
	case "", expression.FormInterp, expression.FormData:
	default:
		return Options{}, fmt.Errorf("unknown expression form %q", c.Form)
	}

	policy := expression.FillPolicy(c.FillPolicy)
	if policy != "" && !policy.Valid() {
		return Options{}, fmt.Errorf("unknown fill policy %q", c.FillPolicy)
	}

	return Options{
		CreateBranches: c.CreateBranches,
		FillVariables:  c.FillVariables,
		SetUnits:       c.SetUnits,
		Form:           form,
		FillPolicy:     policy,
	}, nil
}

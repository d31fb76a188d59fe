package energy

import (
	"fmt"

	"leap-bridge/core/expression"
	"leap-bridge/core/reconcile"
)

// Reader is the capability needed to read variable expressions back from
// a model tree. tree.MemTree satisfies it; live adapters that support
// read-back can too.
type Reader interface {
	// Expression returns the expression stored for a branch variable
	// under a scenario, and whether one exists.
	Expression(path, variable, scenario string) (string, bool)
}

// BranchEnergy computes one branch's energy at a year under a scenario:
// the product of the strategy's variables, each evaluated from its stored
// expression.
func BranchEnergy(r Reader, branch string, strat Strategy, scenario string, year int) (float64, error) {
	product := 1.0
	for _, variable := range strat.Variables {
		expr, ok := r.Expression(branch, variable, scenario)
		if !ok {
			return 0, fmt.Errorf("branch %q has no %q expression under scenario %q", branch, variable, scenario)
		}
		v, err := expression.Eval(expr, year)
		if err != nil {
			return 0, fmt.Errorf("branch %q variable %q: %w", branch, variable, err)
		}
		product *= v
	}
	return product, nil
}

// ModelDataset derives a reconciliation dataset from the model: for every
// rule coordinate and year, the weighted sum of the contributing branches'
// energies. The region tags the keys; the model itself is region-agnostic.
func ModelDataset(r Reader, rules RuleSet, strategies map[string]Strategy, scenario, region string, years []int) (reconcile.Dataset, error) {
	rows := make([]reconcile.Row, 0, len(rules)*len(years))

	for coord, coordRules := range rules {
		for _, rule := range coordRules {
			strat, err := LookupStrategy(strategies, rule.Strategy)
			if err != nil {
				return nil, err
			}
			for _, year := range years {
				energy, err := BranchEnergy(r, rule.Branch, strat, scenario, year)
				if err != nil {
					return nil, err
				}
				rows = append(rows, reconcile.Row{
					Key: reconcile.Key{
						Region: region,
						Sector: coord.Sector,
						Fuel:   coord.Fuel,
						Year:   year,
					},
					Value: energy * rule.Weight,
				})
			}
		}
	}

	return reconcile.Aggregate(rows), nil
}

// RestrictDataset drops keys outside the reconciliation scope: coordinates
// no rule maps, foreign regions, years not requested. Source statistics
// routinely cover the whole economy; every unmapped key the source carries
// would otherwise surface as a spurious missing_from_model record.
func RestrictDataset(ds reconcile.Dataset, rules RuleSet, region string, years []int) reconcile.Dataset {
	wanted := make(map[int]struct{}, len(years))
	for _, y := range years {
		wanted[y] = struct{}{}
	}

	out := make(reconcile.Dataset, len(ds))
	for key, value := range ds {
		if region != "" && key.Region != region {
			continue
		}
		if _, ok := wanted[key.Year]; !ok {
			continue
		}
		if _, ok := rules[SectorFuel{Sector: key.Sector, Fuel: key.Fuel}]; !ok {
			continue
		}
		out[key] = value
	}
	return out
}

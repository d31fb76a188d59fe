package energy

import "fmt"

// Strategy names the branch variables whose product yields the branch's
// final energy demand for one year.
type Strategy struct {
	// Name identifies the strategy in rule files.
	Name string

	// Variables are the factor variables, multiplied together.
	Variables []string
}

// DefaultStrategies are the built-in ways a demand branch expresses its
// energy. Intensity branches carry an activity driver times an energy
// intensity; stock branches (vehicle fleets) carry a stock, a mileage,
// and a fuel economy.
var DefaultStrategies = map[string]Strategy{
	"intensity": {
		Name:      "intensity",
		Variables: []string{"Activity Level", "Final Energy Intensity"},
	},
	"stock": {
		Name:      "stock",
		Variables: []string{"Stock", "Mileage", "Fuel Economy"},
	},
}

// LookupStrategy resolves a strategy name against the given set, falling
// back to DefaultStrategies when the set is nil.
func LookupStrategy(strategies map[string]Strategy, name string) (Strategy, error) {
	if strategies == nil {
		strategies = DefaultStrategies
	}
	strat, ok := strategies[name]
	if !ok {
		return Strategy{}, fmt.Errorf("unknown energy strategy %q", name)
	}
	return strat, nil
}

package energy

import (
	"encoding/json"
	"fmt"
	"io"
)

// SectorFuel is the statistics coordinate a rule maps model branches onto.
type SectorFuel struct {
	// Sector is the statistics sector name (after cleaning).
	Sector string `json:"sector"`

	// Fuel is the statistics fuel name (after cleaning).
	Fuel string `json:"fuel"`
}

// Rule attributes one model branch's energy to a sector/fuel coordinate.
type Rule struct {
	// Branch is the model branch path ("Transport/Road/Diesel").
	Branch string `json:"branch"`

	// Strategy names how the branch's energy is computed.
	Strategy string `json:"strategy"`

	// Weight is the share of the branch energy attributed to the
	// coordinate, 1 when omitted. Branches split across fuels use
	// fractional weights.
	Weight float64 `json:"weight"`
}

// RuleSet maps each sector/fuel coordinate to the model branches that
// supply its energy.
type RuleSet map[SectorFuel][]Rule

// ruleEntry is the flat JSON shape of one rule.
type ruleEntry struct {
	Sector   string  `json:"sector"`
	Fuel     string  `json:"fuel"`
	Branch   string  `json:"branch"`
	Strategy string  `json:"strategy"`
	Weight   float64 `json:"weight"`
}

// ParseRules decodes a JSON rule file into a RuleSet, validating every
// strategy name against the given strategy set (DefaultStrategies when
// nil) and defaulting omitted weights to 1.
func ParseRules(r io.Reader, strategies map[string]Strategy) (RuleSet, error) {
	var entries []ruleEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}

	rules := make(RuleSet, len(entries))
	for i, entry := range entries {
		if entry.Sector == "" || entry.Fuel == "" || entry.Branch == "" {
			return nil, fmt.Errorf("rule %d: sector, fuel and branch are required", i)
		}
		if _, err := LookupStrategy(strategies, entry.Strategy); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		weight := entry.Weight
		if weight == 0 {
			weight = 1
		}
		if weight < 0 || weight > 1 {
			return nil, fmt.Errorf("rule %d: weight %v outside (0, 1]", i, entry.Weight)
		}

		key := SectorFuel{Sector: entry.Sector, Fuel: entry.Fuel}
		rules[key] = append(rules[key], Rule{
			Branch:   entry.Branch,
			Strategy: entry.Strategy,
			Weight:   weight,
		})
	}
	return rules, nil
}

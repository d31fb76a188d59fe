package energy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRules = `[
  {"sector": "Transport", "fuel": "Diesel", "branch": "Transport/Road/Diesel", "strategy": "intensity"},
  {"sector": "Transport", "fuel": "Diesel", "branch": "Transport/Rail/Diesel", "strategy": "intensity", "weight": 0.4},
  {"sector": "Transport", "fuel": "Gasoline", "branch": "Transport/Road/Cars", "strategy": "stock"}
]`

func TestParseRules(t *testing.T) {
	rules, err := ParseRules(strings.NewReader(sampleRules), nil)
	require.NoError(t, err)
	require.Len(t, rules, 2)

	diesel := rules[SectorFuel{Sector: "Transport", Fuel: "Diesel"}]
	require.Len(t, diesel, 2)
	assert.Equal(t, "Transport/Road/Diesel", diesel[0].Branch)
	assert.Equal(t, 1.0, diesel[0].Weight) // omitted weight defaults to 1
	assert.Equal(t, 0.4, diesel[1].Weight)

	gasoline := rules[SectorFuel{Sector: "Transport", Fuel: "Gasoline"}]
	require.Len(t, gasoline, 1)
	assert.Equal(t, "stock", gasoline[0].Strategy)
}

func TestParseRules_UnknownStrategy(t *testing.T) {
	_, err := ParseRules(strings.NewReader(
		`[{"sector": "Transport", "fuel": "Diesel", "branch": "T/D", "strategy": "regression"}]`), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown energy strategy")
}

func TestParseRules_MissingFields(t *testing.T) {
	_, err := ParseRules(strings.NewReader(
		`[{"fuel": "Diesel", "branch": "T/D", "strategy": "intensity"}]`), nil)
	assert.Error(t, err)
}

func TestParseRules_BadWeight(t *testing.T) {
	_, err := ParseRules(strings.NewReader(
		`[{"sector": "T", "fuel": "D", "branch": "T/D", "strategy": "intensity", "weight": 1.5}]`), nil)
	assert.Error(t, err)

	_, err = ParseRules(strings.NewReader(
		`[{"sector": "T", "fuel": "D", "branch": "T/D", "strategy": "intensity", "weight": -0.2}]`), nil)
	assert.Error(t, err)
}

func TestParseRules_BadJSON(t *testing.T) {
	_, err := ParseRules(strings.NewReader(`{not json`), nil)
	assert.Error(t, err)
}

func TestLookupStrategy(t *testing.T) {
	strat, err := LookupStrategy(nil, "intensity")
	require.NoError(t, err)
	assert.Equal(t, []string{"Activity Level", "Final Energy Intensity"}, strat.Variables)

	strat, err = LookupStrategy(nil, "stock")
	require.NoError(t, err)
	assert.Equal(t, []string{"Stock", "Mileage", "Fuel Economy"}, strat.Variables)

	custom := map[string]Strategy{"flat": {Name: "flat", Variables: []string{"Demand"}}}
	strat, err = LookupStrategy(custom, "flat")
	require.NoError(t, err)
	assert.Equal(t, "flat", strat.Name)

	_, err = LookupStrategy(custom, "intensity")
	assert.Error(t, err)
}

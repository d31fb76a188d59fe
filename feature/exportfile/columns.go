package exportfile

// Column names of the tabular export contract. Year columns are detected
// dynamically by header shape, not listed here.
const (
	// ColBranch holds the slash-delimited branch path.
	ColBranch = "Branch Path"
	// ColVariable holds the branch variable name.
	ColVariable = "Variable"
	// ColScenario holds the scenario name.
	ColScenario = "Scenario"
	// ColRegion holds the region name.
	ColRegion = "Region"
	// ColScale holds the optional unit-magnitude multiplier.
	ColScale = "Scale"
	// ColUnits holds the optional data unit.
	ColUnits = "Units"
	// ColPer holds the optional denominator annotation.
	ColPer = "Per"
)

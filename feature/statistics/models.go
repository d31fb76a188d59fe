package statistics

import "strings"

// EnergyUsage is one row of the externally maintained energy statistics
// table. Values are final energy consumption in the table's common unit.
type EnergyUsage struct {
	ID     int     `gorm:"primaryKey;column:id"`
	Region string  `gorm:"column:region;type:varchar(64)"`
	Sector string  `gorm:"column:sector;type:varchar(128)"`
	Fuel   string  `gorm:"column:fuel;type:varchar(128)"`
	Year   int     `gorm:"column:year"`
	Value  float64 `gorm:"column:value;type:double"`
}

func (EnergyUsage) TableName() string {
	return "energy_usage"
}

// RequiredColumns lists the statistics table columns queries depend on.
var RequiredColumns = []string{"region", "sector", "fuel", "year", "value"}

// CleanName normalizes a statistics category label. Source tables prefix
// categories with ordering digits ("01. Industry", "15_01_road"); the
// prefix is presentation, not identity, and must not leak into
// reconciliation keys.
func CleanName(name string) string {
	name = strings.TrimSpace(name)

	i := 0
	for i < len(name) && (name[i] >= '0' && name[i] <= '9' || name[i] == '.' || name[i] == '_' || name[i] == '-') {
		i++
	}
	if i == 0 {
		return name
	}
	stripped := strings.TrimSpace(name[i:])
	if stripped == "" {
		// All digits; not an ordering prefix after all.
		return name
	}
	return stripped
}

// IsSubtotal reports whether a category label is an aggregate row
// ("Total final consumption", "Subtotal"). Subtotal rows duplicate their
// constituents and would double-count energy when summed.
func IsSubtotal(name string) bool {
	cleaned := strings.ToLower(CleanName(name))
	return cleaned == "total" ||
		strings.HasPrefix(cleaned, "total ") ||
		strings.Contains(cleaned, "subtotal")
}

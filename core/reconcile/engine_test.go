package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(region, sector, fuel string, year int) Key {
	return Key{Region: region, Sector: sector, Fuel: fuel, Year: year}
}

func TestAggregate_SumsDuplicateKeys(t *testing.T) {
	k := key("VN", "Transport", "Diesel", 2020)
	ds := Aggregate([]Row{
		{Key: k, Value: 5},
		{Key: k, Value: 7},
		{Key: key("VN", "Industry", "Coal", 2020), Value: 3},
	})

	assert.Len(t, ds, 2)
	assert.Equal(t, 12.0, ds[k])
	assert.Equal(t, 3.0, ds[key("VN", "Industry", "Coal", 2020)])
}

func TestReconcile_AbsoluteTolerance(t *testing.T) {
	k := key("VN", "Transport", "Diesel", 2020)
	source := Dataset{k: 100}
	model := Dataset{k: 103}

	records, summary, err := Reconcile(source, model, Tolerance{Mode: ModeAbsolute, Absolute: 5})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, StatusMatched, records[0].Status)
	assert.Equal(t, 3.0, records[0].Delta)
	assert.Zero(t, records[0].ScaleFactor)
	assert.Equal(t, 3.0, summary.MaxAbsDelta)
	assert.True(t, summary.Clean())

	records, summary, err = Reconcile(source, model, Tolerance{Mode: ModeAbsolute, Absolute: 2})
	require.NoError(t, err)
	assert.Equal(t, StatusOutOfTolerance, records[0].Status)
	assert.Equal(t, 1, summary.OutOfTolerance)
	assert.False(t, summary.Clean())
	// The factor that would scale the model value back onto the source.
	assert.InDelta(t, 100.0/103.0, records[0].ScaleFactor, 1e-12)
}

func TestReconcile_ScaleFactorZeroModel(t *testing.T) {
	k := key("VN", "Transport", "Diesel", 2020)

	records, _, err := Reconcile(Dataset{k: 10}, Dataset{k: 0}, Tolerance{Mode: ModeAbsolute, Absolute: 1})
	require.NoError(t, err)
	assert.Equal(t, StatusOutOfTolerance, records[0].Status)
	// No multiplier can rescale a zero model value.
	assert.Zero(t, records[0].ScaleFactor)
}

func TestReconcile_RelativeTolerance(t *testing.T) {
	k := key("VN", "Transport", "Diesel", 2020)
	source := Dataset{k: 100}
	model := Dataset{k: 103}

	records, _, err := Reconcile(source, model, Tolerance{Mode: ModeRelative, Relative: 0.05})
	require.NoError(t, err)
	assert.Equal(t, StatusMatched, records[0].Status)

	records, _, err = Reconcile(source, model, Tolerance{Mode: ModeRelative, Relative: 0.01})
	require.NoError(t, err)
	assert.Equal(t, StatusOutOfTolerance, records[0].Status)
}

func TestReconcile_RelativeZeroSource(t *testing.T) {
	k := key("VN", "Transport", "Diesel", 2020)

	records, _, err := Reconcile(Dataset{k: 0}, Dataset{k: 1}, Tolerance{Mode: ModeRelative, Relative: 0.5})
	require.NoError(t, err)
	assert.Equal(t, StatusOutOfTolerance, records[0].Status)

	records, _, err = Reconcile(Dataset{k: 0}, Dataset{k: 0}, Tolerance{Mode: ModeRelative, Relative: 0.5})
	require.NoError(t, err)
	assert.Equal(t, StatusMatched, records[0].Status)
}

func TestReconcile_BothMode(t *testing.T) {
	k := key("VN", "Transport", "Diesel", 2020)
	source := Dataset{k: 100}
	model := Dataset{k: 103}

	// Passes absolute, fails relative.
	records, _, err := Reconcile(source, model, Tolerance{Mode: ModeBoth, Absolute: 5, Relative: 0.01})
	require.NoError(t, err)
	assert.Equal(t, StatusOutOfTolerance, records[0].Status)

	records, _, err = Reconcile(source, model, Tolerance{Mode: ModeBoth, Absolute: 5, Relative: 0.05})
	require.NoError(t, err)
	assert.Equal(t, StatusMatched, records[0].Status)
}

func TestReconcile_MissingKeys(t *testing.T) {
	onlySource := key("VN", "Transport", "Diesel", 2020)
	onlyModel := key("VN", "Industry", "Coal", 2021)

	records, summary, err := Reconcile(
		Dataset{onlySource: 10},
		Dataset{onlyModel: 20},
		Tolerance{Mode: ModeAbsolute, Absolute: 1},
	)
	require.NoError(t, err)
	require.Len(t, records, 2)

	byKey := map[Key]Record{}
	for _, r := range records {
		byKey[r.Key] = r
	}
	assert.Equal(t, StatusMissingFromModel, byKey[onlySource].Status)
	assert.Equal(t, 10.0, byKey[onlySource].SourceValue)
	assert.Equal(t, StatusMissingFromSource, byKey[onlyModel].Status)
	assert.Equal(t, 20.0, byKey[onlyModel].ModelValue)
	assert.Equal(t, 1, summary.MissingFromModel)
	assert.Equal(t, 1, summary.MissingFromSource)
	assert.Equal(t, 2, summary.TotalKeys)
}

func TestReconcile_SortedOutput(t *testing.T) {
	keys := []Key{
		key("VN", "Transport", "Gasoline", 2021),
		key("KH", "Transport", "Diesel", 2020),
		key("VN", "Industry", "Coal", 2020),
		key("VN", "Transport", "Diesel", 2021),
		key("VN", "Transport", "Diesel", 2020),
	}
	ds := Dataset{}
	for _, k := range keys {
		ds[k] = 1
	}

	records, _, err := Reconcile(ds, ds, Tolerance{})
	require.NoError(t, err)

	want := []Key{
		key("KH", "Transport", "Diesel", 2020),
		key("VN", "Industry", "Coal", 2020),
		key("VN", "Transport", "Diesel", 2020),
		key("VN", "Transport", "Diesel", 2021),
		key("VN", "Transport", "Gasoline", 2021),
	}
	got := make([]Key, len(records))
	for i, r := range records {
		got[i] = r.Key
	}
	assert.Equal(t, want, got)
}

// Swapping source and model must flip deltas and missing directions but
// preserve which keys match.
func TestReconcile_SymmetryUnderSwap(t *testing.T) {
	a := Dataset{
		key("VN", "Transport", "Diesel", 2020):   100,
		key("VN", "Transport", "Gasoline", 2020): 40,
	}
	b := Dataset{
		key("VN", "Transport", "Diesel", 2020): 103,
		key("VN", "Industry", "Coal", 2020):    7,
	}
	tol := Tolerance{Mode: ModeAbsolute, Absolute: 5}

	forward, fs, err := Reconcile(a, b, tol)
	require.NoError(t, err)
	backward, bs, err := Reconcile(b, a, tol)
	require.NoError(t, err)

	assert.Equal(t, fs.TotalKeys, bs.TotalKeys)
	assert.Equal(t, fs.Matched, bs.Matched)
	assert.Equal(t, fs.MissingFromModel, bs.MissingFromSource)
	assert.Equal(t, fs.MissingFromSource, bs.MissingFromModel)

	back := map[Key]Record{}
	for _, r := range backward {
		back[r.Key] = r
	}
	for _, f := range forward {
		r := back[f.Key]
		if f.Status == StatusMatched || f.Status == StatusOutOfTolerance {
			assert.Equal(t, f.Status, r.Status)
			assert.Equal(t, f.Delta, -r.Delta)
		}
	}
}

func TestReconcile_InvalidTolerance(t *testing.T) {
	cases := []Tolerance{
		{Mode: "fuzzy"},
		{Mode: ModeAbsolute, Absolute: -1},
		{Mode: ModeRelative, Relative: -0.1},
	}
	for _, tol := range cases {
		_, _, err := Reconcile(Dataset{}, Dataset{}, tol)
		var cfgErr *ToleranceConfigError
		require.ErrorAs(t, err, &cfgErr)
	}
}

func TestReconcile_EmptyDatasets(t *testing.T) {
	records, summary, err := Reconcile(Dataset{}, Dataset{}, Tolerance{})
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.True(t, summary.Clean())
	assert.Zero(t, summary.TotalKeys)
}

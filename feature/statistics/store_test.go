package statistics

import (
	"context"
	"regexp"
	"testing"

	"leap-bridge/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func usageRows() *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "region", "sector", "fuel", "year", "value"})
	rows.AddRow(1, "VN", "15. Transport", "Diesel", 2020, 50)
	rows.AddRow(2, "VN", "15.1 Transport", "Diesel", 2020, 25) // same cleaned key, must sum
	rows.AddRow(3, "VN", "01. Industry", "Coal", 2020, 30)
	rows.AddRow(4, "VN", "Total final consumption", "Diesel", 2020, 105) // subtotal, excluded
	rows.AddRow(5, "VN", "15. Transport", "Total", 2020, 75)             // subtotal fuel, excluded
	return rows
}

func TestStoreDataset(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `energy_usage`")).WillReturnRows(usageRows())

	store := NewStore(db)
	ds, err := store.Dataset(context.Background(), Filter{})
	require.NoError(t, err)

	require.Len(t, ds, 2)
	assert.Equal(t, 75.0, ds[reconcile.Key{Region: "VN", Sector: "Transport", Fuel: "Diesel", Year: 2020}])
	assert.Equal(t, 30.0, ds[reconcile.Key{Region: "VN", Sector: "Industry", Fuel: "Coal", Year: 2020}])
}

func TestStoreDataset_RegionAndYearFilterInQuery(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `energy_usage` WHERE region IN (?) AND year IN (?,?)")).
		WithArgs("VN", 2020, 2021).
		WillReturnRows(sqlmock.NewRows([]string{"id", "region", "sector", "fuel", "year", "value"}))

	store := NewStore(db)
	ds, err := store.Dataset(context.Background(), Filter{Regions: []string{"VN"}, Years: []int{2020, 2021}})
	require.NoError(t, err)
	assert.Empty(t, ds)
}

func TestStoreDataset_SectorAndFuelFilterAfterCleaning(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `energy_usage`")).WillReturnRows(usageRows())

	store := NewStore(db)
	// Filter names carry their own prefixes; matching happens on cleaned
	// names so "15. Transport" and "Transport" are the same sector.
	ds, err := store.Dataset(context.Background(), Filter{Sectors: []string{"15. Transport"}, Fuels: []string{"Diesel"}})
	require.NoError(t, err)

	require.Len(t, ds, 1)
	assert.Equal(t, 75.0, ds[reconcile.Key{Region: "VN", Sector: "Transport", Fuel: "Diesel", Year: 2020}])
}

func TestStoreDataset_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `energy_usage`")).WillReturnError(gorm.ErrInvalidDB)

	store := NewStore(db)
	_, err := store.Dataset(context.Background(), Filter{})
	assert.Error(t, err)
}

func TestStoreVerifySchema(t *testing.T) {
	db, mock := setupMockDB(t)
	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
	rows.AddRow("id", "int(11)", "NO", "PRI", nil, "auto_increment")
	rows.AddRow("region", "varchar(64)", "NO", "", nil, "")
	rows.AddRow("sector", "varchar(128)", "NO", "", nil, "")
	rows.AddRow("fuel", "varchar(128)", "NO", "", nil, "")
	rows.AddRow("year", "int(11)", "NO", "", nil, "")
	rows.AddRow("value", "double", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `energy_usage`").WillReturnRows(rows)

	store := NewStore(db)
	assert.NoError(t, store.VerifySchema())
}

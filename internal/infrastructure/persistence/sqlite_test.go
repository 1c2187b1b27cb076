package persistence

import (
	"testing"
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/property"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared/valueobject"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/tenant"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database with every model migrated.
// The pool is pinned to one connection so all queries see the same database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func testAddress(t *testing.T) valueobject.Address {
	t.Helper()
	addr, err := valueobject.NewAddress("12 Kampala Road", "Kampala", "Central", valueobject.WithCountry("Uganda"))
	require.NoError(t, err)
	return addr
}

func newTestProperty(t *testing.T, ownerID uuid.UUID, name string, units ...string) *property.Property {
	t.Helper()
	specs := make([]property.UnitSpec, 0, len(units))
	for _, u := range units {
		specs = append(specs, property.UnitSpec{
			UnitNumber: u,
			Bedrooms:   2,
			Bathrooms:  decimal.NewFromFloat(1.5),
			Rent:       decimal.NewFromInt(1200),
		})
	}
	p, err := property.NewProperty(ownerID, name, testAddress(t), property.PropertyTypeApartment, specs...)
	require.NoError(t, err)
	return p
}

func newTestTenant(t *testing.T, ownerID, propertyID uuid.UUID, unit, email string) *tenant.Tenant {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tn, err := tenant.NewTenant(ownerID,
		tenant.Contact{FirstName: "Grace", LastName: "Nakato", Email: email, Phone: "+256700000001"},
		tenant.LeaseDetails{
			PropertyID:      propertyID,
			UnitNumber:      unit,
			StartDate:       start,
			EndDate:         start.AddDate(1, 0, 0),
			RentAmount:      decimal.NewFromInt(1200),
			SecurityDeposit: decimal.NewFromInt(600),
		},
	)
	require.NoError(t, err)
	return tn
}

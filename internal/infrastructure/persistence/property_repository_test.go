package persistence

import (
	"context"
	"testing"

	appproperty "github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/property"
	apptenancy "github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/tenancy"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/access"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/property"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/tenant"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormPropertyRepository_CreateAndFind(t *testing.T) {
	repo := NewGormPropertyRepository(setupTestDB(t))
	ctx := context.Background()
	ownerID := uuid.New()

	p := newTestProperty(t, ownerID, "Palm Court", "A1", "A2", "B1")
	require.NoError(t, repo.Create(ctx, p))
	assert.Equal(t, p.Version, p.PersistedVersion())

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Palm Court", found.Name)
	assert.Equal(t, ownerID, found.OwnerID)
	assert.Equal(t, "Kampala", found.Address.City())
	require.Len(t, found.Units, 3)
	assert.Equal(t, []string{"A1", "A2", "B1"}, []string{found.Units[0].UnitNumber, found.Units[1].UnitNumber, found.Units[2].UnitNumber})
	assert.True(t, found.Units[0].Rent.Equal(p.Units[0].Rent))
	assert.False(t, found.Units[0].IsOccupied)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormPropertyRepository_Save(t *testing.T) {
	repo := NewGormPropertyRepository(setupTestDB(t))
	ctx := context.Background()

	p := newTestProperty(t, uuid.New(), "Palm Court", "A1")
	require.NoError(t, repo.Create(ctx, p))

	t.Run("replaces units and bumps version", func(t *testing.T) {
		loaded, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)

		require.NoError(t, loaded.Update("Palm Court East", testAddress(t), property.PropertyTypeCondo, "Renovated"))
		require.NoError(t, loaded.AddUnit(property.UnitSpec{UnitNumber: "A2", Bedrooms: 1, Rent: loaded.Units[0].Rent}))
		require.NoError(t, repo.Save(ctx, loaded))

		reloaded, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Palm Court East", reloaded.Name)
		assert.Equal(t, property.PropertyTypeCondo, reloaded.Type)
		assert.Len(t, reloaded.Units, 2)
		assert.Equal(t, loaded.Version, reloaded.Version)
	})

	t.Run("stale copy is rejected", func(t *testing.T) {
		first, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		second, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)

		require.NoError(t, first.Update("First Writer", testAddress(t), property.PropertyTypeHouse, ""))
		require.NoError(t, repo.Save(ctx, first))

		require.NoError(t, second.Update("Second Writer", testAddress(t), property.PropertyTypeHouse, ""))
		err = repo.Save(ctx, second)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})

	t.Run("missing property", func(t *testing.T) {
		ghost := newTestProperty(t, uuid.New(), "Ghost", "G1")
		ghost.MarkPersisted()
		assert.ErrorIs(t, repo.Save(ctx, ghost), shared.ErrNotFound)
	})
}

func TestGormPropertyRepository_OccupyAndReleaseUnit(t *testing.T) {
	repo := NewGormPropertyRepository(setupTestDB(t))
	ctx := context.Background()

	p := newTestProperty(t, uuid.New(), "Palm Court", "A1", "A2")
	require.NoError(t, repo.Create(ctx, p))
	tenantID := uuid.New()
	before, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)

	require.NoError(t, repo.OccupyUnit(ctx, p.ID, "A1", tenantID))

	loaded, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, before.UpdatedAt.Equal(loaded.UpdatedAt), "occupancy is not a property edit")
	unit, ok := loaded.FindUnit("A1")
	require.True(t, ok)
	assert.True(t, unit.IsOccupied)
	require.NotNil(t, unit.CurrentTenantID)
	assert.Equal(t, tenantID, *unit.CurrentTenantID)
	assert.Equal(t, p.Version+1, loaded.Version)

	t.Run("occupied unit cannot be taken twice", func(t *testing.T) {
		err := repo.OccupyUnit(ctx, p.ID, "A1", uuid.New())
		assert.ErrorIs(t, err, property.ErrUnitOccupied)
	})

	t.Run("unit numbers match exactly", func(t *testing.T) {
		err := repo.OccupyUnit(ctx, p.ID, "a1", uuid.New())
		assert.ErrorIs(t, err, property.ErrUnitNotFound)
	})

	t.Run("release by another tenant is ignored", func(t *testing.T) {
		released, err := repo.ReleaseUnit(ctx, p.ID, "A1", uuid.New())
		require.NoError(t, err)
		assert.False(t, released)
	})

	t.Run("release by holder frees the unit", func(t *testing.T) {
		released, err := repo.ReleaseUnit(ctx, p.ID, "A1", tenantID)
		require.NoError(t, err)
		assert.True(t, released)

		loaded, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		unit, _ := loaded.FindUnit("A1")
		assert.False(t, unit.IsOccupied)
		assert.Nil(t, unit.CurrentTenantID)
	})
}

func TestGormPropertyRepository_FindAll(t *testing.T) {
	repo := NewGormPropertyRepository(setupTestDB(t))
	ctx := context.Background()
	ownerID := uuid.New()

	for _, name := range []string{"Palm Court", "Lake View", "Hill Top"} {
		require.NoError(t, repo.Create(ctx, newTestProperty(t, ownerID, name, "1")))
	}
	require.NoError(t, repo.Create(ctx, newTestProperty(t, uuid.New(), "Someone Else's", "1")))

	t.Run("scoped to owner", func(t *testing.T) {
		props, total, err := repo.FindAll(ctx, shared.Filter{OwnerID: ownerID, Page: 1, PageSize: 10, OrderBy: "name", OrderDir: "asc"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, props, 3)
		assert.Equal(t, "Hill Top", props[0].Name)
		assert.Len(t, props[0].Units, 1)
	})

	t.Run("search", func(t *testing.T) {
		props, total, err := repo.FindAll(ctx, shared.Filter{OwnerID: ownerID, Search: "lake", Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, props, 1)
		assert.Equal(t, "Lake View", props[0].Name)
	})

	t.Run("pagination keeps the full total", func(t *testing.T) {
		props, total, err := repo.FindAll(ctx, shared.Filter{OwnerID: ownerID, Page: 2, PageSize: 2, OrderBy: "name", OrderDir: "asc"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, props, 1)
		assert.Equal(t, "Palm Court", props[0].Name)
	})
}

func TestGormPropertyRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPropertyRepository(db)
	ctx := context.Background()

	p := newTestProperty(t, uuid.New(), "Palm Court", "A1", "A2")
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, repo.Delete(ctx, p))
	_, err := repo.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var units int64
	require.NoError(t, db.Table("property_units").Where("property_id = ?", p.ID).Count(&units).Error)
	assert.Zero(t, units)

	assert.ErrorIs(t, repo.Delete(ctx, p), shared.ErrNotFound)
}

func TestGormPropertyRepository_DeleteStaleVersion(t *testing.T) {
	repo := NewGormPropertyRepository(setupTestDB(t))
	ctx := context.Background()

	p := newTestProperty(t, uuid.New(), "Palm Court", "A1")
	require.NoError(t, repo.Create(ctx, p))

	loaded, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	require.NoError(t, repo.OccupyUnit(ctx, p.ID, "A1", uuid.New()))

	assert.ErrorIs(t, repo.Delete(ctx, loaded), shared.ErrConcurrencyConflict)
	_, err = repo.FindByID(ctx, p.ID)
	assert.NoError(t, err)
}

// tenancyBeforeDelete commits a tenancy on the property right after the
// tenant count is read, the window between the delete checks and the delete
type tenancyBeforeDelete struct {
	tenant.TenantRepository
	commit func(propertyID uuid.UUID)
}

func (r tenancyBeforeDelete) CountByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	count, err := r.TenantRepository.CountByProperty(ctx, propertyID)
	if err == nil && r.commit != nil {
		r.commit(propertyID)
	}
	return count, err
}

func TestPropertyDelete_TenancyCommittedAfterChecks(t *testing.T) {
	db := setupTestDB(t)
	properties := NewGormPropertyRepository(db)
	tenants := NewGormTenantRepository(db)
	uow := NewGormTenancyUnitOfWork(db)
	ctx := context.Background()
	ownerID := uuid.New()

	p := newTestProperty(t, ownerID, "Palm Court", "A1")
	require.NoError(t, properties.Create(ctx, p))

	tn := newTestTenant(t, ownerID, p.ID, "A1", "grace@example.com")
	racing := tenancyBeforeDelete{
		TenantRepository: tenants,
		commit: func(propertyID uuid.UUID) {
			err := uow.Execute(ctx, func(repos apptenancy.TransactionalRepositories) error {
				if err := repos.PropertyRepo().OccupyUnit(ctx, propertyID, "A1", tn.ID); err != nil {
					return err
				}
				return repos.TenantRepo().Create(ctx, tn)
			})
			require.NoError(t, err)
		},
	}
	svc := appproperty.NewPropertyService(properties, racing, access.NewOwnershipPolicy(), nil)

	err := svc.Delete(ctx, ownerID, p.ID)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

	loaded, err := properties.FindByID(ctx, p.ID)
	require.NoError(t, err)
	unit, ok := loaded.FindUnit("A1")
	require.True(t, ok)
	require.NotNil(t, unit.CurrentTenantID)
	assert.Equal(t, tn.ID, *unit.CurrentTenantID)

	found, err := tenants.FindByID(ctx, tn.ID)
	require.NoError(t, err)
	assert.Equal(t, tenant.StatusActive, found.Status)
}

package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/property"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPropertyRepository implements PropertyRepository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *GormPropertyRepository) WithTx(tx *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: tx}
}

func preloadUnits(db *gorm.DB) *gorm.DB {
	return db.Preload("Units", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// FindByID finds a property with its units
func (r *GormPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	var model models.PropertyModel
	if err := preloadUnits(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, property.ErrPropertyNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds properties matching the filter
func (r *GormPropertyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Property, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PropertyModel{})
	query = r.applyFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.PropertyModel
	if err := applyPagination(preloadUnits(query), filter, PropertySortFields).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	properties := make([]property.Property, 0, len(rows))
	for i := range rows {
		properties = append(properties, *rows[i].ToDomain())
	}
	return properties, total, nil
}

// Create inserts a new property with its units
func (r *GormPropertyRepository) Create(ctx context.Context, p *property.Property) error {
	model := models.PropertyModelFromDomain(p)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	p.MarkPersisted()
	return nil
}

// Save updates the property row guarded by version and replaces its units
func (r *GormPropertyRepository) Save(ctx context.Context, p *property.Property) error {
	model := models.PropertyModelFromDomain(p)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.PropertyModel{}).
			Where("id = ? AND version = ?", p.ID, p.PersistedVersion()).
			Updates(map[string]interface{}{
				"name":                model.Name,
				"address_street":      model.AddressStreet,
				"address_city":        model.AddressCity,
				"address_state":       model.AddressState,
				"address_postal_code": model.AddressPostalCode,
				"address_country":     model.AddressCountry,
				"property_type":       model.PropertyType,
				"description":         model.Description,
				"version":             p.Version,
				"updated_at":          p.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return lockFailure(tx, &models.PropertyModel{}, p.ID, property.ErrPropertyNotFound, "Property was modified by another request")
		}

		if err := tx.Where("property_id = ?", p.ID).Delete(&models.PropertyUnitModel{}).Error; err != nil {
			return err
		}
		if len(model.Units) > 0 {
			if err := tx.Create(&model.Units).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	p.MarkPersisted()
	return nil
}

// Delete deletes a property and its units
func (r *GormPropertyRepository) Delete(ctx context.Context, p *property.Property) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.PropertyModel{}, "id = ? AND version = ?", p.ID, p.PersistedVersion())
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return lockFailure(tx, &models.PropertyModel{}, p.ID, property.ErrPropertyNotFound,
				"Property was modified by another request; reload and try again")
		}
		return tx.Where("property_id = ?", p.ID).Delete(&models.PropertyUnitModel{}).Error
	})
}

// OccupyUnit assigns tenantID to a vacant unit with a single conditional
// update and bumps the property version
func (r *GormPropertyRepository) OccupyUnit(ctx context.Context, propertyID uuid.UUID, unitNumber string, tenantID uuid.UUID) error {
	db := r.db.WithContext(ctx)
	now := time.Now()

	result := db.Model(&models.PropertyUnitModel{}).
		Where("property_id = ? AND unit_number = ? AND is_occupied = ?", propertyID, unitNumber, false).
		Updates(map[string]interface{}{
			"is_occupied":       true,
			"current_tenant_id": tenantID,
			"updated_at":        now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&models.PropertyUnitModel{}).
			Where("property_id = ? AND unit_number = ?", propertyID, unitNumber).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return property.ErrUnitNotFound
		}
		return property.ErrUnitOccupied
	}

	return r.bumpVersion(db, propertyID)
}

// ReleaseUnit vacates the unit only while it is still held by tenantID
func (r *GormPropertyRepository) ReleaseUnit(ctx context.Context, propertyID uuid.UUID, unitNumber string, tenantID uuid.UUID) (bool, error) {
	db := r.db.WithContext(ctx)
	now := time.Now()

	result := db.Model(&models.PropertyUnitModel{}).
		Where("property_id = ? AND unit_number = ? AND current_tenant_id = ?", propertyID, unitNumber, tenantID).
		Updates(map[string]interface{}{
			"is_occupied":       false,
			"current_tenant_id": gorm.Expr("NULL"),
			"updated_at":        now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	if err := r.bumpVersion(db, propertyID); err != nil {
		return false, err
	}
	return true, nil
}

// bumpVersion invalidates loaded copies after an occupancy change. It leaves
// updated_at alone, which tracks edits to the property itself.
func (r *GormPropertyRepository) bumpVersion(db *gorm.DB, propertyID uuid.UUID) error {
	return db.Model(&models.PropertyModel{}).
		Where("id = ?", propertyID).
		UpdateColumn("version", gorm.Expr("version + 1")).Error
}

func (r *GormPropertyRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.OwnerID != uuid.Nil {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(address_city) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	if v, ok := filter.Filters["property_type"]; ok && v != "" {
		query = query.Where("property_type = ?", v)
	}
	return query
}

var _ property.PropertyRepository = (*GormPropertyRepository)(nil)

package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/tenant"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTenantRepository implements TenantRepository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *GormTenantRepository) WithTx(tx *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: tx}
}

func preloadPayments(db *gorm.DB) *gorm.DB {
	return db.Preload("Payments", func(db *gorm.DB) *gorm.DB {
		return db.Order("paid_at ASC, sequence ASC")
	})
}

// FindByID finds a tenant with its payment history
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	var model models.TenantModel
	if err := preloadPayments(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds tenants matching the filter
func (r *GormTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenant.Tenant, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TenantModel{})
	query = r.applyFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.TenantModel
	if err := applyPagination(preloadPayments(query), filter, TenantSortFields).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	tenants := make([]tenant.Tenant, 0, len(rows))
	for i := range rows {
		tenants = append(tenants, *rows[i].ToDomain())
	}
	return tenants, total, nil
}

// FindByUnit finds the tenant still holding the given unit
func (r *GormTenantRepository) FindByUnit(ctx context.Context, propertyID uuid.UUID, unitNumber string) (*tenant.Tenant, error) {
	var model models.TenantModel
	err := preloadPayments(r.db.WithContext(ctx)).
		Where("lease_property_id = ? AND lease_unit_number = ? AND status <> ?", propertyID, unitNumber, tenant.StatusMoveOut).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Create inserts a new tenant together with any payments already recorded
func (r *GormTenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	model := models.TenantModelFromDomain(t)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		for i := range t.Payments {
			if err := tx.Create(models.TenantPaymentModelFromDomain(t.ID, &t.Payments[i])).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	t.MarkPersisted()
	return nil
}

// Save updates the tenant row guarded by version. Payments are written with AddPayment.
func (r *GormTenantRepository) Save(ctx context.Context, t *tenant.Tenant) error {
	model := models.TenantModelFromDomain(t)
	result := r.db.WithContext(ctx).
		Model(&models.TenantModel{}).
		Where("id = ? AND version = ?", t.ID, t.PersistedVersion()).
		Updates(map[string]interface{}{
			"first_name":                     model.FirstName,
			"last_name":                      model.LastName,
			"email":                          model.Email,
			"phone":                          model.Phone,
			"emergency_contact_name":         model.EmergencyContactName,
			"emergency_contact_phone":        model.EmergencyContactPhone,
			"emergency_contact_relationship": model.EmergencyContactRelationship,
			"status":                         model.Status,
			"lease_property_id":              model.LeasePropertyID,
			"lease_unit_number":              model.LeaseUnitNumber,
			"lease_start_date":               model.LeaseStartDate,
			"lease_end_date":                 model.LeaseEndDate,
			"lease_rent_amount":              model.LeaseRentAmount,
			"lease_security_deposit":         model.LeaseSecurityDeposit,
			"notes":                          model.Notes,
			"version":                        t.Version,
			"updated_at":                     t.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return lockFailure(r.db.WithContext(ctx), &models.TenantModel{}, t.ID, tenant.ErrTenantNotFound, "Tenant was modified by another request")
	}
	t.MarkPersisted()
	return nil
}

// AddPayment inserts a single payment entry
func (r *GormTenantRepository) AddPayment(ctx context.Context, tenantID uuid.UUID, entry *tenant.PaymentEntry) error {
	return r.db.WithContext(ctx).Create(models.TenantPaymentModelFromDomain(tenantID, entry)).Error
}

// Delete deletes a tenant and its payment history
func (r *GormTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ?", id).Delete(&models.TenantPaymentModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.TenantModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return tenant.ErrTenantNotFound
		}
		return nil
	})
}

// CountByProperty counts tenants still holding units in a property
func (r *GormTenantRepository) CountByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.TenantModel{}).
		Where("lease_property_id = ? AND status <> ?", propertyID, tenant.StatusMoveOut).
		Count(&count).Error
	return count, err
}

// FindLeasesEndingBetween lists active tenants whose lease ends in [from, to)
func (r *GormTenantRepository) FindLeasesEndingBetween(ctx context.Context, from, to time.Time) ([]*tenant.Tenant, error) {
	var rows []models.TenantModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND lease_end_date >= ? AND lease_end_date < ?", tenant.StatusActive, from, to).
		Order("lease_end_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	tenants := make([]*tenant.Tenant, 0, len(rows))
	for i := range rows {
		tenants = append(tenants, rows[i].ToDomain())
	}
	return tenants, nil
}

func (r *GormTenantRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.OwnerID != uuid.Nil {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(`(LOWER(first_name) LIKE ? ESCAPE '\' OR LOWER(last_name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\')`, pattern, pattern, pattern)
	}
	if v, ok := filter.Filters["status"]; ok && v != "" {
		query = query.Where("status = ?", v)
	}
	if v, ok := filter.Filters["property_id"]; ok && v != "" {
		query = query.Where("lease_property_id = ?", v)
	}
	return query
}

var _ tenant.TenantRepository = (*GormTenantRepository)(nil)

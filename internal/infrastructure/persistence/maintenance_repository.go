package persistence

import (
	"context"
	"errors"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/maintenance"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMaintenanceRequestRepository implements MaintenanceRequestRepository using GORM
type GormMaintenanceRequestRepository struct {
	db *gorm.DB
}

// NewGormMaintenanceRequestRepository creates a new GormMaintenanceRequestRepository
func NewGormMaintenanceRequestRepository(db *gorm.DB) *GormMaintenanceRequestRepository {
	return &GormMaintenanceRequestRepository{db: db}
}

// FindByID finds a maintenance request by ID
func (r *GormMaintenanceRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*maintenance.MaintenanceRequest, error) {
	var model models.MaintenanceRequestModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, maintenance.ErrRequestNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds maintenance requests matching the filter
func (r *GormMaintenanceRequestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]maintenance.MaintenanceRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.MaintenanceRequestModel{})

	if filter.OwnerID != uuid.Nil {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	for _, key := range []string{"status", "priority", "property_id"} {
		if v, ok := filter.Filters[key]; ok && v != "" {
			query = query.Where(key+" = ?", v)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.MaintenanceRequestModel
	if err := applyPagination(query, filter, MaintenanceSortFields).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	requests := make([]maintenance.MaintenanceRequest, 0, len(rows))
	for i := range rows {
		requests = append(requests, *rows[i].ToDomain())
	}
	return requests, total, nil
}

// Create inserts a new maintenance request
func (r *GormMaintenanceRequestRepository) Create(ctx context.Context, req *maintenance.MaintenanceRequest) error {
	if err := r.db.WithContext(ctx).Create(models.MaintenanceRequestModelFromDomain(req)).Error; err != nil {
		return err
	}
	req.MarkPersisted()
	return nil
}

// Save updates a maintenance request guarded by version
func (r *GormMaintenanceRequestRepository) Save(ctx context.Context, req *maintenance.MaintenanceRequest) error {
	result := r.db.WithContext(ctx).
		Model(&models.MaintenanceRequestModel{}).
		Where("id = ? AND version = ?", req.ID, req.PersistedVersion()).
		Updates(map[string]interface{}{
			"unit":             req.Unit,
			"tenant_id":        req.TenantID,
			"title":            req.Title,
			"description":      req.Description,
			"priority":         req.Priority,
			"status":           req.Status,
			"appointment_at":   req.AppointmentAt,
			"resolved_at":      req.ResolvedAt,
			"resolution_notes": req.ResolutionNotes,
			"version":          req.Version,
			"updated_at":       req.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return lockFailure(r.db.WithContext(ctx), &models.MaintenanceRequestModel{}, req.ID,
			maintenance.ErrRequestNotFound, "Maintenance request was modified by another request")
	}
	req.MarkPersisted()
	return nil
}

// Delete deletes a maintenance request
func (r *GormMaintenanceRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MaintenanceRequestModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return maintenance.ErrRequestNotFound
	}
	return nil
}

var _ maintenance.MaintenanceRequestRepository = (*GormMaintenanceRequestRepository)(nil)

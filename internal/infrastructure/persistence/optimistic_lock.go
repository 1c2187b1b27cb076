package persistence

import (
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// lockFailure explains a version-guarded update that matched no rows:
// notFound when the row is gone, a concurrency conflict otherwise
func lockFailure(db *gorm.DB, model interface{}, id uuid.UUID, notFound error, message string) error {
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound
	}
	return shared.NewDomainError(shared.CodeConcurrencyConflict, message)
}

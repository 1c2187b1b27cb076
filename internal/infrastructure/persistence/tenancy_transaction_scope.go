package persistence

import (
	"context"

	apptenancy "github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/tenancy"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/property"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/tenant"
	"gorm.io/gorm"
)

// GormTenancyUnitOfWork implements tenancy.TransactionScope with a GORM transaction.
type GormTenancyUnitOfWork struct {
	db *gorm.DB
}

// NewGormTenancyUnitOfWork creates a new GormTenancyUnitOfWork.
func NewGormTenancyUnitOfWork(db *gorm.DB) *GormTenancyUnitOfWork {
	return &GormTenancyUnitOfWork{db: db}
}

// Execute runs fn inside a database transaction.
// The transaction commits only if fn returns nil.
func (u *GormTenancyUnitOfWork) Execute(ctx context.Context, fn func(repos apptenancy.TransactionalRepositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTenancyRepositories{tx: tx})
	})
}

type gormTenancyRepositories struct {
	tx *gorm.DB
}

func (r *gormTenancyRepositories) PropertyRepo() property.PropertyRepository {
	return NewGormPropertyRepository(r.tx)
}

func (r *gormTenancyRepositories) TenantRepo() tenant.TenantRepository {
	return NewGormTenantRepository(r.tx)
}

var _ apptenancy.TransactionScope = (*GormTenancyUnitOfWork)(nil)
var _ apptenancy.TransactionalRepositories = (*gormTenancyRepositories)(nil)

// Package models contains GORM persistence models that map to database tables.
// They are kept apart from domain aggregates so the domain layer carries no
// ORM tags. Each model has ToDomain and FromDomain mappers used by the
// repositories in the parent package.
//
// Tables:
//   - users
//   - properties, property_units
//   - tenants, tenant_payments
//   - maintenance_requests
//   - messages
package models

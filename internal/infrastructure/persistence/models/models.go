package models

// All returns every persistence model, in dependency order, for AutoMigrate
// in tests and local development.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&PropertyModel{},
		&PropertyUnitModel{},
		&TenantModel{},
		&TenantPaymentModel{},
		&MaintenanceRequestModel{},
		&MessageModel{},
	}
}

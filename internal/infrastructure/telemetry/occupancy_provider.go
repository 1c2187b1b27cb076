package telemetry

import (
	"context"

	"gorm.io/gorm"
)

// GormOccupancyProvider implements OccupancyProvider over the property_units table
type GormOccupancyProvider struct {
	db *gorm.DB
}

// NewGormOccupancyProvider creates a new GormOccupancyProvider.
func NewGormOccupancyProvider(db *gorm.DB) *GormOccupancyProvider {
	return &GormOccupancyProvider{db: db}
}

// UnitOccupancy counts all units and the occupied ones in a single query
func (p *GormOccupancyProvider) UnitOccupancy(ctx context.Context) (int64, int64, error) {
	var row struct {
		Total    int64 `gorm:"column:total"`
		Occupied int64 `gorm:"column:occupied"`
	}
	err := p.db.WithContext(ctx).
		Table("property_units").
		Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN is_occupied THEN 1 ELSE 0 END), 0) AS occupied").
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Total, row.Occupied, nil
}

package registry

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sharingbox-backend/internal/model"
)

// ErrEquipmentNotFound is returned when no instance matches the given id.
var ErrEquipmentNotFound = errors.New("equipment not found")

// Registry exposes read-only lookups over equipment instances and the
// stations that hold them. No authorization logic lives here.
type Registry struct {
	db *gorm.DB
}

// NewRegistry creates a registry backed by the given database handle.
func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{db: db}
}

// Get returns one equipment instance with its type and required access
// group loaded.
func (r *Registry) Get(ctx context.Context, id int64) (*model.EquipmentInstance, error) {
	var eq model.EquipmentInstance
	err := r.db.WithContext(ctx).
		Preload("Type").
		Preload("AccessGroup").
		First(&eq, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEquipmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &eq, nil
}

// ListAt returns the equipment instances homed at a station. Order is
// unspecified.
func (r *Registry) ListAt(ctx context.Context, stationID int64) ([]model.EquipmentInstance, error) {
	var eqs []model.EquipmentInstance
	err := r.db.WithContext(ctx).
		Preload("Type").
		Where("station_id = ?", stationID).
		Find(&eqs).Error
	return eqs, err
}

// StationSummary pairs a station with how many instances are homed there.
type StationSummary struct {
	Station        model.Station
	EquipmentCount int64
}

// StationSummaries returns all stations with their equipment counts.
func (r *Registry) StationSummaries(ctx context.Context) ([]StationSummary, error) {
	var stations []model.Station
	if err := r.db.WithContext(ctx).Find(&stations).Error; err != nil {
		return nil, err
	}

	type aggRow struct {
		StationID int64
		Total     int64
	}
	var aggs []aggRow
	if err := r.db.WithContext(ctx).
		Model(&model.EquipmentInstance{}).
		Select("station_id as station_id, COUNT(*) as total").
		Group("station_id").
		Scan(&aggs).Error; err != nil {
		return nil, err
	}

	aggMap := make(map[int64]int64, len(aggs))
	for _, a := range aggs {
		aggMap[a.StationID] = a.Total
	}

	summaries := make([]StationSummary, 0, len(stations))
	for _, s := range stations {
		summaries = append(summaries, StationSummary{Station: s, EquipmentCount: aggMap[s.ID]})
	}
	return summaries, nil
}

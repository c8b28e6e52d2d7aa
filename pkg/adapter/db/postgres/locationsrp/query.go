package locationsrp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/movrlab/vsweb/pkg/adapter/db/postgres"
	"github.com/movrlab/vsweb/pkg/core/model"
)

type gLocation struct {
	ID         uuid.UUID        `gorm:"primaryKey;type:uuid;column:id"`
	VehicleID  uuid.UUID        `gorm:"type:uuid;column:vehicle_id"`
	Coordinate model.Coordinate `gorm:"embedded"`
	Timestamp  time.Time        `gorm:"column:ts"`

	// Seq is a database-assigned insertion counter which breaks ties
	// between entries carrying equal timestamps (latest insertion
	// wins). It never leaves the adapter layer.
	Seq int64 `gorm:"column:seq;autoIncrement:false;->"`
}

func (gl *gLocation) TableName() string {
	return "location_history"
}

func (gl *gLocation) Model() *model.LocationRecord {
	return &model.LocationRecord{
		ID:         gl.ID,
		VehicleID:  gl.VehicleID,
		Coordinate: gl.Coordinate,
		Timestamp:  gl.Timestamp,
	}
}

// Append inserts an immutable ledger entry. There is no uniqueness
// constraint beyond the entry id, so it cannot conflict with existing
// entries; the seq column takes its value from the database sequence.
func Append[Q postgres.Queryer](ctx context.Context, q Q, rec *model.LocationRecord) error {
	gdb := q.GORM(ctx)
	gl := &gLocation{
		ID:         rec.ID,
		VehicleID:  rec.VehicleID,
		Coordinate: rec.Coordinate,
		Timestamp:  rec.Timestamp,
	}
	if err := gdb.Omit("seq").Create(gl).Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	return nil
}

// Latest returns the entry with the maximum timestamp for the vehicle,
// ties broken by insertion order. It returns (nil, nil) when the
// vehicle has never had a location recorded; distinguishing this from
// an unknown vehicle is the caller's concern.
func Latest[Q postgres.Queryer](ctx context.Context, q Q, vehicleID uuid.UUID) (*model.LocationRecord, error) {
	gdb := q.GORM(ctx)
	var gl []gLocation
	gdb.Where(
		"vehicle_id=?", vehicleID,
	).Order("ts DESC, seq DESC").Limit(1).Find(&gl)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(gl) == 0 {
		return nil, nil
	}
	return gl[0].Model(), nil
}

func ListForVehicle[Q postgres.Queryer](ctx context.Context, q Q, vehicleID uuid.UUID, max int) ([]model.LocationRecord, error) {
	gdb := q.GORM(ctx)
	var gl []gLocation
	gdb.Where(
		"vehicle_id=?", vehicleID,
	).Order("ts DESC, seq DESC").Limit(max).Find(&gl)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	recs := make([]model.LocationRecord, 0, len(gl))
	for i := range gl {
		recs = append(recs, *gl[i].Model())
	}
	return recs, nil
}

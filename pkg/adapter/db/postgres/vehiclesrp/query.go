package vehiclesrp

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/movrlab/vsweb/pkg/adapter/db/postgres"
	"github.com/movrlab/vsweb/pkg/core/cerr"
	"github.com/movrlab/vsweb/pkg/core/model"
	"gorm.io/gorm/clause"
)

type gVehicle struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid;column:id"`
	Battery     int
	InUse       bool
	VehicleType string
}

func (gv *gVehicle) TableName() string {
	return "vehicles"
}

func (gv *gVehicle) Model() *model.Vehicle {
	return &model.Vehicle{
		ID:          gv.ID,
		Battery:     gv.Battery,
		InUse:       gv.InUse,
		VehicleType: gv.VehicleType,
	}
}

func notFound(vehicleID uuid.UUID) error {
	return cerr.NotFound(
		fmt.Errorf("vehicle id <%s> not found", vehicleID),
	)
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, v *model.Vehicle) error {
	gdb := q.GORM(ctx)
	gv := &gVehicle{
		ID:          v.ID,
		Battery:     v.Battery,
		InUse:       v.InUse,
		VehicleType: v.VehicleType,
	}
	if err := gdb.Create(gv).Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	return nil
}

func Get[Q postgres.Queryer](ctx context.Context, q Q, vehicleID uuid.UUID) (*model.Vehicle, error) {
	gdb := q.GORM(ctx)
	var gv []gVehicle
	gdb.Where("id=?", vehicleID).Limit(1).Find(&gv)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(gv) == 0 {
		return nil, notFound(vehicleID)
	}
	return gv[0].Model(), nil
}

// List joins each vehicle to its latest location history entry,
// realizing the "vehicle with latest location" read projection over
// the same two tables (no dedicated entity is stored for it).
func List[Q postgres.Queryer](ctx context.Context, q Q, max int) ([]model.VehicleWithLocation, error) {
	rows, err := q.Query(ctx, `
		SELECT
			v.id, v.battery, v.in_use, v.vehicle_type,
			l.ts, l.lat, l.lon
		FROM vehicles AS v
		INNER JOIN (
			SELECT DISTINCT ON (vehicle_id)
				vehicle_id, ts, lat, lon
			FROM location_history
			ORDER BY vehicle_id, ts DESC, seq DESC
		) AS l ON l.vehicle_id = v.id
		ORDER BY l.ts DESC
		LIMIT $1`, max)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()
	vs := make([]model.VehicleWithLocation, 0, max)
	for rows.Next() {
		var v model.VehicleWithLocation
		if err := rows.Scan(
			&v.ID, &v.Battery, &v.InUse, &v.VehicleType,
			&v.LastCheckin, &v.LastLocation.Lat, &v.LastLocation.Lon,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		vs = append(vs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return vs, nil
}

func MarkInUse[Q postgres.Queryer](ctx context.Context, q Q, vehicleID uuid.UUID) error {
	return setUseState(ctx, q, vehicleID, gVehicle{InUse: true}, "in_use")
}

func MarkAvailable[Q postgres.Queryer](ctx context.Context, q Q, vehicleID uuid.UUID, battery int) error {
	return setUseState(
		ctx, q, vehicleID,
		gVehicle{InUse: false, Battery: battery},
		"in_use", "battery",
	)
}

func setUseState[Q postgres.Queryer](
	ctx context.Context, q Q, vehicleID uuid.UUID,
	updated gVehicle, columns ...string,
) error {
	gdb := q.GORM(ctx)
	var gv []gVehicle
	gdb.Model(&gv).Clauses(clause.Returning{}).Select(
		columns[0], columns[1:],
	).Where(
		"id=?", vehicleID,
	).Updates(updated)
	if err := gdb.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if n := len(gv); n != 1 {
		return notFound(vehicleID)
	}
	return nil
}

func Delete[Q postgres.Queryer](ctx context.Context, q Q, vehicleID uuid.UUID) error {
	gdb := q.GORM(ctx).Where("id=?", vehicleID).Delete(&gVehicle{})
	if err := gdb.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if gdb.RowsAffected == 0 {
		return notFound(vehicleID)
	}
	return nil
}

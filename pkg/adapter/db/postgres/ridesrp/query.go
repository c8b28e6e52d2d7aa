package ridesrp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/movrlab/vsweb/pkg/adapter/db/postgres"
	"github.com/movrlab/vsweb/pkg/core/cerr"
	"github.com/movrlab/vsweb/pkg/core/model"
)

type gRide struct {
	ID        uuid.UUID  `gorm:"primaryKey;type:uuid;column:id"`
	VehicleID uuid.UUID  `gorm:"type:uuid;column:vehicle_id"`
	UserEmail string     `gorm:"column:user_email"`
	StartTime time.Time  `gorm:"column:start_ts"`
	EndTime   *time.Time `gorm:"column:end_ts"`
}

func (gr *gRide) TableName() string {
	return "rides"
}

func (gr *gRide) Model() *model.Ride {
	return &model.Ride{
		ID:        gr.ID,
		VehicleID: gr.VehicleID,
		UserEmail: gr.UserEmail,
		StartTime: gr.StartTime,
		EndTime:   gr.EndTime,
	}
}

func noActiveRide(vehicleID uuid.UUID, userEmail string) error {
	return cerr.NotFound(
		fmt.Errorf(
			"no active ride for this vehicle <%s> and user <%s> combination",
			vehicleID, userEmail,
		),
	)
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, r *model.Ride) error {
	gdb := q.GORM(ctx)
	gr := &gRide{
		ID:        r.ID,
		VehicleID: r.VehicleID,
		UserEmail: r.UserEmail,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
	if err := gdb.Create(gr).Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	return nil
}

func Active[Q postgres.Queryer](
	ctx context.Context, q Q, vehicleID uuid.UUID, userEmail string,
) (*model.Ride, error) {
	gdb := q.GORM(ctx)
	var gr []gRide
	gdb.Where("vehicle_id=? AND user_email=? AND end_ts IS NULL", vehicleID, userEmail).
		Order("start_ts DESC").
		Limit(1).
		Find(&gr)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(gr) == 0 {
		return nil, noActiveRide(vehicleID, userEmail)
	}
	return gr[0].Model(), nil
}

func End[Q postgres.Queryer](
	ctx context.Context, q Q, rideID uuid.UUID, endTime time.Time,
) error {
	gdb := q.GORM(ctx)
	gdb = gdb.Model(&gRide{}).
		Where("id=? AND end_ts IS NULL", rideID).
		Update("end_ts", endTime)
	if err := gdb.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if gdb.RowsAffected == 0 {
		return cerr.NotFound(
			fmt.Errorf("ride id <%s> not found or already ended", rideID),
		)
	}
	return nil
}

func ListForUser[Q postgres.Queryer](
	ctx context.Context, q Q, userEmail string, max int,
) ([]model.Ride, error) {
	gdb := q.GORM(ctx)
	var grs []gRide
	gdb.Where("user_email=?", userEmail).
		Order("start_ts DESC").
		Limit(max).
		Find(&grs)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	rs := make([]model.Ride, 0, len(grs))
	for i := range grs {
		rs = append(rs, *grs[i].Model())
	}
	return rs, nil
}

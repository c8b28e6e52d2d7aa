package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/movrlab/vsweb/pkg/core/model"
)

type RidesConnQueryer interface {
	RidesQueryer
}

type RidesTxQueryer interface {
	RidesQueryer
}

// RidesQueryer is the persistence capability of the rides table.
type RidesQueryer interface {
	Create(ctx context.Context, r *model.Ride) error

	// Active returns the open ride (end time still null) for the exact
	// (vehicle, user) pair, or cerr.NotFound when none exists. Should
	// several be open, which cannot happen under correct operation,
	// the most recently started one is returned as a tie-break.
	Active(ctx context.Context, vehicleID uuid.UUID, userEmail string) (*model.Ride, error)

	// End closes the ride by setting its end timestamp.
	// Fails with cerr.NotFound for an unknown ride id.
	End(ctx context.Context, rideID uuid.UUID, endTime time.Time) error

	// ListForUser returns up to max of the user's rides, most recently
	// started first.
	ListForUser(ctx context.Context, userEmail string, max int) ([]model.Ride, error)
}

type Rides interface {
	Conn(Conn) RidesConnQueryer
	Tx(Tx) RidesTxQueryer
}

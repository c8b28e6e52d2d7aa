package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/movrlab/vsweb/pkg/core/model"
)

type VehiclesConnQueryer interface {
	VehiclesQueryer
}

type VehiclesTxQueryer interface {
	VehiclesQueryer
}

// VehiclesQueryer is the narrow persistence capability of the vehicles
// table. Get fails with cerr.NotFound for unknown identifiers, as do
// MarkInUse, MarkAvailable, and Delete when no row was affected.
type VehiclesQueryer interface {
	Create(ctx context.Context, v *model.Vehicle) error
	Get(ctx context.Context, vehicleID uuid.UUID) (*model.Vehicle, error)

	// List is the "vehicle with latest location" read projection: each
	// vehicle joined to its most recent ledger entry, ordered by that
	// entry's timestamp descending, at most max rows. Vehicles without
	// any ledger entry are not listed.
	List(ctx context.Context, max int) ([]model.VehicleWithLocation, error)

	// MarkInUse flips the availability flag to "in use" (checkout).
	MarkInUse(ctx context.Context, vehicleID uuid.UUID) error

	// MarkAvailable flips the availability flag back and records the
	// battery level reported at checkin time.
	MarkAvailable(ctx context.Context, vehicleID uuid.UUID, battery int) error

	Delete(ctx context.Context, vehicleID uuid.UUID) error
}

type Vehicles interface {
	Conn(Conn) VehiclesConnQueryer
	Tx(Tx) VehiclesTxQueryer
}

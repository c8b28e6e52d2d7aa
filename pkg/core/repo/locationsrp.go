package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/movrlab/vsweb/pkg/core/model"
)

type LocationsConnQueryer interface {
	LocationsQueryer
}

type LocationsTxQueryer interface {
	LocationsQueryer
}

// LocationsQueryer is the append-only location history ledger of one
// vehicle. Entries are immutable once written and there is no
// uniqueness constraint, so Append always succeeds as long as the
// referenced vehicle exists.
type LocationsQueryer interface {
	Append(ctx context.Context, rec *model.LocationRecord) error

	// Latest returns the ledger entry with the maximum timestamp for
	// the vehicle, ties broken by insertion order (latest insertion
	// wins). A (nil, nil) return signals that the vehicle has never
	// had a location recorded, which is a distinct condition from the
	// vehicle itself being unknown.
	Latest(ctx context.Context, vehicleID uuid.UUID) (*model.LocationRecord, error)

	// ListForVehicle returns up to max entries, newest first.
	ListForVehicle(ctx context.Context, vehicleID uuid.UUID, max int) ([]model.LocationRecord, error)
}

type Locations interface {
	Conn(Conn) LocationsConnQueryer
	Tx(Tx) LocationsTxQueryer
}

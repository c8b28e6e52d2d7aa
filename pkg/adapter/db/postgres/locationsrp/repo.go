// Package locationsrp implements the append-only location history
// ledger over the postgres adapter, realizing the repo.Locations
// interface.
package locationsrp

import (
	"context"

	"github.com/google/uuid"
	"github.com/movrlab/vsweb/pkg/adapter/db/postgres"
	"github.com/movrlab/vsweb/pkg/core/model"
	"github.com/movrlab/vsweb/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (locations *Repo) Conn(c repo.Conn) repo.LocationsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Append(ctx context.Context, rec *model.LocationRecord) error {
	return Append(ctx, cq.Conn, rec)
}

func (cq connQueryer) Latest(ctx context.Context, vehicleID uuid.UUID) (*model.LocationRecord, error) {
	return Latest(ctx, cq.Conn, vehicleID)
}

func (cq connQueryer) ListForVehicle(ctx context.Context, vehicleID uuid.UUID, max int) ([]model.LocationRecord, error) {
	return ListForVehicle(ctx, cq.Conn, vehicleID, max)
}

type txQueryer struct {
	*postgres.Tx
}

func (locations *Repo) Tx(tx repo.Tx) repo.LocationsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Append(ctx context.Context, rec *model.LocationRecord) error {
	return Append(ctx, tq.Tx, rec)
}

func (tq txQueryer) Latest(ctx context.Context, vehicleID uuid.UUID) (*model.LocationRecord, error) {
	return Latest(ctx, tq.Tx, vehicleID)
}

func (tq txQueryer) ListForVehicle(ctx context.Context, vehicleID uuid.UUID, max int) ([]model.LocationRecord, error) {
	return ListForVehicle(ctx, tq.Tx, vehicleID, max)
}

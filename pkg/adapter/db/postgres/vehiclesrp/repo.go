// Package vehiclesrp implements the vehicles repository over the
// postgres adapter, realizing the repo.Vehicles interface.
package vehiclesrp

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

func (vehicles *Repo) Conn(c repo.Conn) repo.VehiclesConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, v *model.Vehicle) error {
	return Create(ctx, cq.Conn, v)
}

func (cq connQueryer) Get(ctx context.Context, vehicleID uuid.UUID) (*model.Vehicle, error) {
	return Get(ctx, cq.Conn, vehicleID)
}

func (cq connQueryer) List(ctx context.Context, max int) ([]model.VehicleWithLocation, error) {
	return List(ctx, cq.Conn, max)
}

func (cq connQueryer) MarkInUse(ctx context.Context, vehicleID uuid.UUID) error {
	return MarkInUse(ctx, cq.Conn, vehicleID)
}

func (cq connQueryer) MarkAvailable(ctx context.Context, vehicleID uuid.UUID, battery int) error {
	return MarkAvailable(ctx, cq.Conn, vehicleID, battery)
}

func (cq connQueryer) Delete(ctx context.Context, vehicleID uuid.UUID) error {
	return Delete(ctx, cq.Conn, vehicleID)
}

type txQueryer struct {
	*postgres.Tx
}

func (vehicles *Repo) Tx(tx repo.Tx) repo.VehiclesTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, v *model.Vehicle) error {
	return Create(ctx, tq.Tx, v)
}

func (tq txQueryer) Get(ctx context.Context, vehicleID uuid.UUID) (*model.Vehicle, error) {
	return Get(ctx, tq.Tx, vehicleID)
}

func (tq txQueryer) List(ctx context.Context, max int) ([]model.VehicleWithLocation, error) {
	return List(ctx, tq.Tx, max)
}

func (tq txQueryer) MarkInUse(ctx context.Context, vehicleID uuid.UUID) error {
	return MarkInUse(ctx, tq.Tx, vehicleID)
}

func (tq txQueryer) MarkAvailable(ctx context.Context, vehicleID uuid.UUID, battery int) error {
	return MarkAvailable(ctx, tq.Tx, vehicleID, battery)
}

func (tq txQueryer) Delete(ctx context.Context, vehicleID uuid.UUID) error {
	return Delete(ctx, tq.Tx, vehicleID)
}

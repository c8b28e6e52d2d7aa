// Package ridesrp keeps the ride lifecycle rows, pairing each started
// ride with its eventual end timestamp.
package ridesrp

import (
	"context"
	"time"

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

func (rides *Repo) Conn(c repo.Conn) repo.RidesConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, r *model.Ride) error {
	return Create(ctx, cq.Conn, r)
}

func (cq connQueryer) Active(ctx context.Context, vehicleID uuid.UUID, userEmail string) (*model.Ride, error) {
	return Active(ctx, cq.Conn, vehicleID, userEmail)
}

func (cq connQueryer) End(ctx context.Context, rideID uuid.UUID, endTime time.Time) error {
	return End(ctx, cq.Conn, rideID, endTime)
}

func (cq connQueryer) ListForUser(ctx context.Context, userEmail string, max int) ([]model.Ride, error) {
	return ListForUser(ctx, cq.Conn, userEmail, max)
}

type txQueryer struct {
	*postgres.Tx
}

func (rides *Repo) Tx(tx repo.Tx) repo.RidesTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, r *model.Ride) error {
	return Create(ctx, tq.Tx, r)
}

func (tq txQueryer) Active(ctx context.Context, vehicleID uuid.UUID, userEmail string) (*model.Ride, error) {
	return Active(ctx, tq.Tx, vehicleID, userEmail)
}

func (tq txQueryer) End(ctx context.Context, rideID uuid.UUID, endTime time.Time) error {
	return End(ctx, tq.Tx, rideID, endTime)
}

func (tq txQueryer) ListForUser(ctx context.Context, userEmail string, max int) ([]model.Ride, error) {
	return ListForUser(ctx, tq.Tx, userEmail, max)
}

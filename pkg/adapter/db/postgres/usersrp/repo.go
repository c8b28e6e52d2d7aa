// Package usersrp persists the rider directory.
package usersrp

import (
	"context"

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

func (users *Repo) Conn(c repo.Conn) repo.UsersConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, u *model.User) error {
	return Create(ctx, cq.Conn, u)
}

func (cq connQueryer) Get(ctx context.Context, email string) (*model.User, error) {
	return Get(ctx, cq.Conn, email)
}

func (cq connQueryer) Delete(ctx context.Context, email string) error {
	return Delete(ctx, cq.Conn, email)
}

type txQueryer struct {
	*postgres.Tx
}

func (users *Repo) Tx(tx repo.Tx) repo.UsersTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, u *model.User) error {
	return Create(ctx, tq.Tx, u)
}

func (tq txQueryer) Get(ctx context.Context, email string) (*model.User, error) {
	return Get(ctx, tq.Tx, email)
}

func (tq txQueryer) Delete(ctx context.Context, email string) error {
	return Delete(ctx, tq.Tx, email)
}

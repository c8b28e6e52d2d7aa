package repo

import (
	"context"

	"github.com/movrlab/vsweb/pkg/core/model"
)

type UsersConnQueryer interface {
	UsersQueryer
}

type UsersTxQueryer interface {
	UsersQueryer
}

// UsersQueryer is the user directory capability. The ride tracking
// core only needs Get in order to validate a rider before mutating any
// vehicle; Create and Delete serve the registration surface.
type UsersQueryer interface {
	Create(ctx context.Context, u *model.User) error
	Get(ctx context.Context, email string) (*model.User, error)
	Delete(ctx context.Context, email string) error
}

type Users interface {
	Conn(Conn) UsersConnQueryer
	Tx(Tx) UsersTxQueryer
}

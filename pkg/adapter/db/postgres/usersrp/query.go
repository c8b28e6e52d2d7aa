package usersrp

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/movrlab/vsweb/pkg/adapter/db/postgres"
	"github.com/movrlab/vsweb/pkg/core/cerr"
	"github.com/movrlab/vsweb/pkg/core/model"
)

// uniqueViolation is the SQLSTATE class 23 code which postgres reports
// when an insertion conflicts with a unique constraint.
const uniqueViolation = "23505"

type gUser struct {
	Email     string `gorm:"primaryKey;column:email"`
	FirstName string
	LastName  string
}

func (gu *gUser) TableName() string {
	return "users"
}

func (gu *gUser) Model() *model.User {
	return &model.User{
		Email:     gu.Email,
		FirstName: gu.FirstName,
		LastName:  gu.LastName,
	}
}

func notFound(email string) error {
	return cerr.NotFound(
		fmt.Errorf("user email <%s> not found", email),
	)
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, u *model.User) error {
	gdb := q.GORM(ctx)
	gu := &gUser{
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
	if err := gdb.Create(gu).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return cerr.Conflict(
				fmt.Errorf("user email <%s> already exists", u.Email),
			)
		}
		return fmt.Errorf("query: %w", err)
	}
	return nil
}

func Get[Q postgres.Queryer](ctx context.Context, q Q, email string) (*model.User, error) {
	gdb := q.GORM(ctx)
	var gu []gUser
	gdb.Where("email=?", email).Limit(1).Find(&gu)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if len(gu) == 0 {
		return nil, notFound(email)
	}
	return gu[0].Model(), nil
}

func Delete[Q postgres.Queryer](ctx context.Context, q Q, email string) error {
	gdb := q.GORM(ctx)
	gdb = gdb.Where("email=?", email).Delete(&gUser{})
	if err := gdb.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if gdb.RowsAffected == 0 {
		return notFound(email)
	}
	return nil
}

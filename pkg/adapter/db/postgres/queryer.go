package postgres

import (
	"context"

	"github.com/movrlab/vsweb/pkg/core/repo"
	"gorm.io/gorm"
)

// Queryer constrains the generic repository query functions to run on
// either a connection or a transaction, exposing the raw repo.Queryer
// statements and the GORM instance uniformly.
type Queryer interface {
	*Conn | *Tx

	repo.Queryer

	// GORM returns the embedded *gorm.DB instance, configuring it
	// to operate on the given ctx context.
	GORM(ctx context.Context) *gorm.DB
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/movrlab/vsweb/pkg/core/repo"
	"gorm.io/gorm"
)

type Conn struct {
	*gorm.DB
}

type TxHandler = repo.TxHandler

// Tx runs f within a transaction using the DBMS default isolation
// level (READ COMMITTED for PostgreSQL), which suffices for the
// multi-statement read-only paths.
func (c *Conn) Tx(ctx context.Context, f TxHandler) error {
	return c.beginTx(ctx, f, nil)
}

// SerializableTx runs f within a SERIALIZABLE transaction. All of the
// state-changing vehicle/ride operations go through it, so a read of
// the current availability flag followed by a dependent write cannot
// interleave with a concurrent transaction on the same vehicle; the
// DBMS aborts the loser with a serialization failure which surfaces as
// a transient cerr.Serialization error (see serializationError).
func (c *Conn) SerializableTx(ctx context.Context, f TxHandler) error {
	return c.beginTx(ctx, f, &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
}

func (c *Conn) beginTx(
	ctx context.Context, f TxHandler, opts *sql.TxOptions,
) (err error) {
	tx := c.DB.WithContext(ctx).Begin(opts)
	if err = tx.Error; err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			err = tx.Rollback().Error
			if err == nil {
				err = fmt.Errorf("panicked: %v", r)
				return
			}
			err = fmt.Errorf("panicked: %v, rollback: %w", r, err)
			return
		}
		if err != nil {
			if err2 := tx.Rollback().Error; err2 != nil {
				err = fmt.Errorf("handler: %w, rollback: %w", err, err2)
				return
			}
			err = fmt.Errorf("handler: %w", err)
			return
		}
		err = serializationError(tx.Commit().Error)
		if err != nil {
			err = fmt.Errorf("commit: %w", err)
		}
	}()
	tt := &Tx{DB: tx}
	return serializationError(f(ctx, tt))
}

func (c *Conn) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tt := c.DB.WithContext(ctx).Exec(sql, args...)
	if err := tt.Error; err != nil {
		return 0, err
	}
	return tt.RowsAffected, nil
}

func (c *Conn) Query(ctx context.Context, sql string, args ...any) (repo.Rows, error) {
	rows, err := c.DB.WithContext(ctx).Raw(sql, args...).Rows()
	return rowsAdapter{rows}, err
}

func (c *Conn) IsConn() {
}

func (c *Conn) GORM(ctx context.Context) *gorm.DB {
	return c.DB.WithContext(ctx)
}

package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/movrlab/vsweb/pkg/core/cerr"
)

// SQLSTATE codes which PostgreSQL raises when concurrent transactions
// collide and one of them must be retried by its caller.
const (
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
)

// serializationError passes err through, upgrading serialization
// failures and detected deadlocks into transient cerr.Serialization
// errors. Exactly one of the colliding SERIALIZABLE transactions
// commits; the others observe this error and may be retried by the
// caller (never by this adapter).
func serializationError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.SQLState() {
		case serializationFailure, deadlockDetected:
			return cerr.Serialization(err)
		}
	}
	return err
}

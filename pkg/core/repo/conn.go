package repo

import "context"

type TxHandler func(context.Context, Tx) error

// Conn is a single database connection taken out of a Pool.
// Read-only listing operations may run on the connection directly
// (tolerating the store's default isolation level), while every
// state-changing operation of the ride tracking core must go through
// SerializableTx so that two concurrent checkouts of one vehicle can
// never both succeed.
type Conn interface {
	Queryer

	// Tx runs handler within a transaction using the store's default
	// isolation level. Suitable for multi-statement reads.
	Tx(ctx context.Context, handler TxHandler) error

	// SerializableTx runs handler within a SERIALIZABLE transaction.
	// When concurrent serializable transactions collide, the store
	// aborts all but one of them and the failure surfaces as a
	// transient cerr.Serialization error; the caller may retry, this
	// method never retries by itself.
	SerializableTx(ctx context.Context, handler TxHandler) error

	IsConn()
}

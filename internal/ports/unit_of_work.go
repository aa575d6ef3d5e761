package ports

import "context"

// Tx carries a driver-specific transaction value across the port boundary.
// The sqlite adapter stores a *gorm.DB here; callers never inspect it.
type Tx interface{}

// UnitOfWork runs fn inside a single transaction. A nil return from fn
// commits, any error rolls back and is returned to the caller.
type UnitOfWork interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

// WithTxContext attaches a transaction handle to ctx so repository calls
// made inside a unit of work reuse it.
func WithTxContext(ctx context.Context, tx Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext returns the attached transaction handle, or nil when the
// call runs outside a unit of work.
func TxFromContext(ctx context.Context) Tx {
	return ctx.Value(txKey{})
}

package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base provides a shared foundation for domain repositories.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// TxRunner executes a function inside a database transaction.
type TxRunner struct {
	db *gorm.DB
}

// NewTxRunner builds a transaction runner on the shared connection.
func NewTxRunner(db *gorm.DB) TxRunner {
	return TxRunner{db: db}
}

// WithTx runs fn inside a transaction, committing on nil and rolling back on error.
func (t TxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return t.db.WithContext(ctx).Transaction(fn)
}

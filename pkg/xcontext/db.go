package xcontext

import (
	"context"

	"gorm.io/gorm"
)

type (
	dbKey struct{}
	txKey struct{}
)

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the running transaction if there is one, otherwise the database
// stored in ctx.
func DB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}

	db, _ := ctx.Value(dbKey{}).(*gorm.DB)
	return db
}

// WithDBTransaction runs fn inside a transaction. Every call to DB with the
// context passed to fn uses the transaction.
func WithDBTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return DB(ctx).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aliskhannn/mushaf/internal/config"
	"github.com/aliskhannn/mushaf/internal/infra/postgres"
	"github.com/aliskhannn/mushaf/internal/infra/postgres/repository"
	"github.com/aliskhannn/mushaf/internal/service"
)

func openPool(ctx context.Context, db config.DB) (*pgxpool.Pool, error) {
	dsn, err := db.DSN()
	if err != nil {
		return nil, err
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(db.MaxConnections),
		MaxConnLifetime: db.MaxConnLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return pool, nil
}

// accountStore builds the account repositories over db.
func accountStore(db postgres.DBTX) service.AccountStore {
	return service.AccountStore{
		Users:    repository.NewUserRepository(db),
		Sessions: repository.NewSessionRepository(db),
		Resets:   repository.NewPasswordResetRepository(db),
		Settings: repository.NewSettingsRepository(db),
	}
}

// accountTransactor binds account repositories to a postgres transaction.
type accountTransactor struct {
	tx *postgres.Transactor
}

func (t accountTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, store service.AccountStore) error) error {
	return t.tx.WithinTx(ctx, func(ctx context.Context, tx postgres.DBTX) error {
		return fn(ctx, accountStore(tx))
	})
}

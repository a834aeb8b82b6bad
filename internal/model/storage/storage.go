package storage

import (
	"context"

	"github.com/pkg/errors"

	"max.ks1230/expense-service/internal/config"
	"max.ks1230/expense-service/internal/entity/expense"
	"max.ks1230/expense-service/internal/entity/user"
)

// Backend is the full storage surface the binaries wire into the services:
// expense queries for the expense model and account/session lookups for
// the auth collaborator.
type Backend interface {
	FindExpenses(ctx context.Context, pred expense.Predicate, sort expense.Sort) ([]expense.Record, error)
	FindOneExpense(ctx context.Context, pred expense.Predicate) (expense.Record, error)
	InsertExpense(ctx context.Context, rec expense.Record) (expense.Record, error)
	UpdateExpenseFields(ctx context.Context, pred expense.Predicate, patch expense.Patch) (expense.Record, error)
	FindAndDeleteExpense(ctx context.Context, pred expense.Predicate) (expense.Record, error)

	InsertAccount(ctx context.Context, acc user.Account) (user.Account, error)
	FindAccountByUsername(ctx context.Context, username string) (user.Account, error)
	InsertSession(ctx context.Context, sess user.Session) error
	FindSession(ctx context.Context, token string) (user.Session, error)
}

// NewFromConfig picks the backend named by the storage.driver setting.
func NewFromConfig(cfg *config.StorageConfig) (Backend, error) {
	switch cfg.Driver() {
	case config.DriverPostgres:
		return NewPostgresStorage(cfg.Postgres())
	case config.DriverSqlite:
		return NewSqliteStorage(cfg.Sqlite())
	case config.DriverMemory:
		return NewInMemStorage(), nil
	}
	return nil, errors.Errorf("unknown storage driver %s", cfg.Driver())
}

package storage

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	// sqlite driver
	_ "modernc.org/sqlite"

	"max.ks1230/expense-service/internal/entity/expense"
	"max.ks1230/expense-service/internal/entity/user"
	"max.ks1230/expense-service/internal/model/customerr"
)

type sqliteConfig interface {
	Path() string
}

// SqliteStorage is a single-file backend for local runs. It answers the
// same interface as PostgresStorage; sqlite has no dependable RETURNING
// support, so update and delete read back inside a transaction instead.
type SqliteStorage struct {
	db *sql.DB
}

func NewSqliteStorage(config sqliteConfig) (*SqliteStorage, error) {
	db, err := sql.Open("sqlite", config.Path())
	if err != nil {
		return nil, errors.Wrap(err, "cannot open database")
	}
	if err = db.Ping(); err != nil {
		return nil, errors.Wrap(err, "cannot open database")
	}
	if err = RunMigrations(db, "sqlite"); err != nil {
		return nil, errors.Wrap(err, "cannot migrate database")
	}
	return &SqliteStorage{db}, nil
}

func (s *SqliteStorage) FindExpenses(ctx context.Context, pred expense.Predicate, sort expense.Sort) ([]expense.Record, error) {
	query := applySort(sq.Select(expenseColumns...).
		From("expenses").
		Where(predicateConj(pred)), sort)

	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "find expenses")
	}
	defer func() {
		_ = rows.Close()
	}()

	recs := make([]expense.Record, 0)
	for rows.Next() {
		var rec expense.Record
		err = rows.Scan(&rec.ID, &rec.OwnerID, &rec.Title, &rec.Amount, &rec.Category, &rec.Date)
		if err != nil {
			return nil, errors.Wrap(err, "find expenses")
		}
		recs = append(recs, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "find expenses")
	}
	return recs, nil
}

func (s *SqliteStorage) FindOneExpense(ctx context.Context, pred expense.Predicate) (expense.Record, error) {
	return findOneExpense(ctx, s.db, pred)
}

func findOneExpense(ctx context.Context, runner sq.BaseRunner, pred expense.Predicate) (expense.Record, error) {
	query := sq.Select(expenseColumns...).
		From("expenses").
		Where(predicateConj(pred)).
		Limit(1)

	var rec expense.Record
	err := query.RunWith(runner).QueryRowContext(ctx).
		Scan(&rec.ID, &rec.OwnerID, &rec.Title, &rec.Amount, &rec.Category, &rec.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return expense.Record{}, &customerr.NotFoundError{Entity: "expense"}
	}
	if err != nil {
		return expense.Record{}, errors.Wrap(err, "find one expense")
	}
	return rec, nil
}

func (s *SqliteStorage) InsertExpense(ctx context.Context, rec expense.Record) (expense.Record, error) {
	query := sq.Insert("expenses").
		Columns("owner_id", "title", "amount", "category", "spent_at").
		Values(rec.OwnerID, rec.Title, rec.Amount, rec.Category, rec.Date)

	res, err := query.RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return expense.Record{}, errors.Wrap(err, "insert expense")
	}
	rec.ID, err = res.LastInsertId()
	if err != nil {
		return expense.Record{}, errors.Wrap(err, "insert expense")
	}
	return rec, nil
}

func (s *SqliteStorage) UpdateExpenseFields(ctx context.Context, pred expense.Predicate, patch expense.Patch) (rec expense.Record, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return expense.Record{}, errors.Wrap(err, "update expense")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := sq.Update("expenses").Where(predicateConj(pred))
	if patch.Title != nil {
		query = query.Set("title", *patch.Title)
	}
	if patch.Amount != nil {
		query = query.Set("amount", *patch.Amount)
	}
	if patch.Category != nil {
		query = query.Set("category", *patch.Category)
	}
	if patch.Date != nil {
		query = query.Set("spent_at", *patch.Date)
	}

	res, err := query.RunWith(tx).ExecContext(ctx)
	if err != nil {
		return expense.Record{}, errors.Wrap(err, "update expense")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return expense.Record{}, errors.Wrap(err, "update expense")
	}
	if affected == 0 {
		return expense.Record{}, &customerr.NotFoundError{Entity: "expense"}
	}

	rec, err = findOneExpense(ctx, tx, pred)
	if err != nil {
		return expense.Record{}, err
	}
	return rec, errors.Wrap(tx.Commit(), "update expense")
}

func (s *SqliteStorage) FindAndDeleteExpense(ctx context.Context, pred expense.Predicate) (rec expense.Record, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return expense.Record{}, errors.Wrap(err, "delete expense")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rec, err = findOneExpense(ctx, tx, pred)
	if err != nil {
		return expense.Record{}, err
	}

	query := sq.Delete("expenses").Where(sq.Eq{"id": rec.ID, "owner_id": rec.OwnerID})
	if _, err = query.RunWith(tx).ExecContext(ctx); err != nil {
		return expense.Record{}, errors.Wrap(err, "delete expense")
	}
	return rec, errors.Wrap(tx.Commit(), "delete expense")
}

func (s *SqliteStorage) InsertAccount(ctx context.Context, acc user.Account) (user.Account, error) {
	query := sq.Insert("users").
		Columns("username", "password_hash", "created_at").
		Values(acc.Username, acc.PasswordHash, acc.CreatedAt)

	res, err := query.RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return user.Account{}, errors.Wrap(err, "insert account")
	}
	acc.ID, err = res.LastInsertId()
	if err != nil {
		return user.Account{}, errors.Wrap(err, "insert account")
	}
	return acc, nil
}

func (s *SqliteStorage) FindAccountByUsername(ctx context.Context, username string) (user.Account, error) {
	query := sq.Select("id", "username", "password_hash", "created_at").
		From("users").
		Where(sq.Eq{"username": username})

	var acc user.Account
	err := query.RunWith(s.db).QueryRowContext(ctx).
		Scan(&acc.ID, &acc.Username, &acc.PasswordHash, &acc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return user.Account{}, &customerr.NotFoundError{Entity: "user"}
	}
	if err != nil {
		return user.Account{}, errors.Wrap(err, "find account")
	}
	return acc, nil
}

func (s *SqliteStorage) InsertSession(ctx context.Context, sess user.Session) error {
	query := sq.Insert("sessions").
		Columns("token", "user_id", "expires_at").
		Values(sess.Token, sess.UserID, sess.ExpiresAt)

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return errors.Wrap(err, "insert session")
}

func (s *SqliteStorage) FindSession(ctx context.Context, token string) (user.Session, error) {
	query := sq.Select("token", "user_id", "expires_at").
		From("sessions").
		Where(sq.Eq{"token": token})

	var sess user.Session
	err := query.RunWith(s.db).QueryRowContext(ctx).
		Scan(&sess.Token, &sess.UserID, &sess.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return user.Session{}, &customerr.NotFoundError{Entity: "session"}
	}
	if err != nil {
		return user.Session{}, errors.Wrap(err, "find session")
	}
	return sess, nil
}

func (s *SqliteStorage) Close() error {
	return s.db.Close()
}

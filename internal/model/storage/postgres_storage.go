package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	// postgres driver
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"max.ks1230/expense-service/internal/entity/expense"
	"max.ks1230/expense-service/internal/entity/user"
	"max.ks1230/expense-service/internal/model/customerr"
)

const dsnTemplate = "user=%s password=%s host=%s dbname=%s sslmode=disable"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var expenseColumns = []string{"id", "owner_id", "title", "amount", "category", "spent_at"}

type postgresConfig interface {
	Host() string
	Username() string
	Password() string
	Database() string
}

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config postgresConfig) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", fmt.Sprintf(dsnTemplate,
		config.Username(),
		config.Password(),
		config.Host(),
		config.Database()))
	if err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if err = db.Ping(); err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if err = RunMigrations(db, "postgres"); err != nil {
		return nil, errors.Wrap(err, "cannot migrate database")
	}
	return &PostgresStorage{db}, nil
}

// predicateConj translates a predicate into a squirrel conjunction. The
// owner clause is part of every query this storage runs.
func predicateConj(pred expense.Predicate) sq.And {
	conj := sq.And{sq.Eq{"owner_id": pred.OwnerID}}
	if pred.ID != nil {
		conj = append(conj, sq.Eq{"id": *pred.ID})
	}
	if pred.Category != nil {
		conj = append(conj, sq.Eq{"category": *pred.Category})
	}
	if pred.DateFrom != nil {
		conj = append(conj, sq.GtOrEq{"spent_at": *pred.DateFrom})
	}
	if pred.DateTo != nil {
		conj = append(conj, sq.LtOrEq{"spent_at": *pred.DateTo})
	}
	return conj
}

func applySort(query sq.SelectBuilder, sort expense.Sort) sq.SelectBuilder {
	if sort == expense.SortDateDesc {
		return query.OrderBy("spent_at DESC")
	}
	return query
}

func (s *PostgresStorage) FindExpenses(ctx context.Context, pred expense.Predicate, sort expense.Sort) ([]expense.Record, error) {
	query := applySort(psql.Select(expenseColumns...).
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

func (s *PostgresStorage) FindOneExpense(ctx context.Context, pred expense.Predicate) (expense.Record, error) {
	query := psql.Select(expenseColumns...).
		From("expenses").
		Where(predicateConj(pred)).
		Limit(1)

	var rec expense.Record
	err := query.RunWith(s.db).QueryRowContext(ctx).
		Scan(&rec.ID, &rec.OwnerID, &rec.Title, &rec.Amount, &rec.Category, &rec.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return expense.Record{}, &customerr.NotFoundError{Entity: "expense"}
	}
	if err != nil {
		return expense.Record{}, errors.Wrap(err, "find one expense")
	}
	return rec, nil
}

func (s *PostgresStorage) InsertExpense(ctx context.Context, rec expense.Record) (expense.Record, error) {
	query := psql.Insert("expenses").
		Columns("owner_id", "title", "amount", "category", "spent_at").
		Values(rec.OwnerID, rec.Title, rec.Amount, rec.Category, rec.Date).
		Suffix("RETURNING id")

	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&rec.ID)
	if err != nil {
		return expense.Record{}, errors.Wrap(err, "insert expense")
	}
	return rec, nil
}

func (s *PostgresStorage) UpdateExpenseFields(ctx context.Context, pred expense.Predicate, patch expense.Patch) (expense.Record, error) {
	query := psql.Update("expenses").
		Where(predicateConj(pred)).
		Suffix("RETURNING id, owner_id, title, amount, category, spent_at")
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

	var rec expense.Record
	err := query.RunWith(s.db).QueryRowContext(ctx).
		Scan(&rec.ID, &rec.OwnerID, &rec.Title, &rec.Amount, &rec.Category, &rec.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return expense.Record{}, &customerr.NotFoundError{Entity: "expense"}
	}
	if err != nil {
		return expense.Record{}, errors.Wrap(err, "update expense")
	}
	return rec, nil
}

func (s *PostgresStorage) FindAndDeleteExpense(ctx context.Context, pred expense.Predicate) (expense.Record, error) {
	query := psql.Delete("expenses").
		Where(predicateConj(pred)).
		Suffix("RETURNING id, owner_id, title, amount, category, spent_at")

	var rec expense.Record
	err := query.RunWith(s.db).QueryRowContext(ctx).
		Scan(&rec.ID, &rec.OwnerID, &rec.Title, &rec.Amount, &rec.Category, &rec.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return expense.Record{}, &customerr.NotFoundError{Entity: "expense"}
	}
	if err != nil {
		return expense.Record{}, errors.Wrap(err, "delete expense")
	}
	return rec, nil
}

func (s *PostgresStorage) InsertAccount(ctx context.Context, acc user.Account) (user.Account, error) {
	query := psql.Insert("users").
		Columns("username", "password_hash", "created_at").
		Values(acc.Username, acc.PasswordHash, acc.CreatedAt).
		Suffix("RETURNING id")

	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&acc.ID)
	if err != nil {
		return user.Account{}, errors.Wrap(err, "insert account")
	}
	return acc, nil
}

func (s *PostgresStorage) FindAccountByUsername(ctx context.Context, username string) (user.Account, error) {
	query := psql.Select("id", "username", "password_hash", "created_at").
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

func (s *PostgresStorage) InsertSession(ctx context.Context, sess user.Session) error {
	query := psql.Insert("sessions").
		Columns("token", "user_id", "expires_at").
		Values(sess.Token, sess.UserID, sess.ExpiresAt)

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return errors.Wrap(err, "insert session")
}

func (s *PostgresStorage) FindSession(ctx context.Context, token string) (user.Session, error) {
	query := psql.Select("token", "user_id", "expires_at").
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

// Close releases the underlying connection pool.
func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

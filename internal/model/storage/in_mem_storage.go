package storage

import (
	"context"
	"sort"
	"sync"

	"max.ks1230/expense-service/internal/entity/expense"
	"max.ks1230/expense-service/internal/entity/user"
	"max.ks1230/expense-service/internal/model/customerr"
)

// InMemStorage keeps everything in process memory. It backs the "memory"
// driver and stands in for the SQL backends in tests; predicate semantics
// come straight from Predicate.Matches.
type InMemStorage struct {
	mu sync.Mutex

	expenses      map[int64]expense.Record
	nextExpenseID int64

	accounts      map[int64]user.Account
	nextAccountID int64

	sessions map[string]user.Session
}

func NewInMemStorage() *InMemStorage {
	return &InMemStorage{
		expenses:      make(map[int64]expense.Record),
		nextExpenseID: 1,
		accounts:      make(map[int64]user.Account),
		nextAccountID: 1,
		sessions:      make(map[string]user.Session),
	}
}

func (s *InMemStorage) FindExpenses(_ context.Context, pred expense.Predicate, srt expense.Sort) ([]expense.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := make([]expense.Record, 0)
	for _, rec := range s.expenses {
		if pred.Matches(rec) {
			recs = append(recs, rec)
		}
	}
	if srt == expense.SortDateDesc {
		sort.Slice(recs, func(i, j int) bool {
			return recs[i].Date.After(recs[j].Date)
		})
	} else {
		// map iteration order is random; fix it for deterministic summaries
		sort.Slice(recs, func(i, j int) bool {
			return recs[i].ID < recs[j].ID
		})
	}
	return recs, nil
}

func (s *InMemStorage) FindOneExpense(_ context.Context, pred expense.Predicate) (expense.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findOneLocked(pred)
}

func (s *InMemStorage) findOneLocked(pred expense.Predicate) (expense.Record, error) {
	for _, rec := range s.expenses {
		if pred.Matches(rec) {
			return rec, nil
		}
	}
	return expense.Record{}, &customerr.NotFoundError{Entity: "expense"}
}

func (s *InMemStorage) InsertExpense(_ context.Context, rec expense.Record) (expense.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.nextExpenseID
	s.nextExpenseID++
	s.expenses[rec.ID] = rec
	return rec, nil
}

func (s *InMemStorage) UpdateExpenseFields(_ context.Context, pred expense.Predicate, patch expense.Patch) (expense.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.findOneLocked(pred)
	if err != nil {
		return expense.Record{}, err
	}
	if patch.Title != nil {
		rec.Title = *patch.Title
	}
	if patch.Amount != nil {
		rec.Amount = *patch.Amount
	}
	if patch.Category != nil {
		rec.Category = *patch.Category
	}
	if patch.Date != nil {
		rec.Date = *patch.Date
	}
	s.expenses[rec.ID] = rec
	return rec, nil
}

func (s *InMemStorage) FindAndDeleteExpense(_ context.Context, pred expense.Predicate) (expense.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.findOneLocked(pred)
	if err != nil {
		return expense.Record{}, err
	}
	delete(s.expenses, rec.ID)
	return rec, nil
}

func (s *InMemStorage) InsertAccount(_ context.Context, acc user.Account) (user.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc.ID = s.nextAccountID
	s.nextAccountID++
	s.accounts[acc.ID] = acc
	return acc, nil
}

func (s *InMemStorage) FindAccountByUsername(_ context.Context, username string) (user.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, acc := range s.accounts {
		if acc.Username == username {
			return acc, nil
		}
	}
	return user.Account{}, &customerr.NotFoundError{Entity: "user"}
}

func (s *InMemStorage) InsertSession(_ context.Context, sess user.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.Token] = sess
	return nil
}

func (s *InMemStorage) FindSession(_ context.Context, token string) (user.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return user.Session{}, &customerr.NotFoundError{Entity: "session"}
	}
	return sess, nil
}

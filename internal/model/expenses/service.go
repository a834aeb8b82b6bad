package expenses

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"max.ks1230/expense-service/internal/entity/expense"
	"max.ks1230/expense-service/internal/logger"
)

type expenseStorage interface {
	FindExpenses(ctx context.Context, pred expense.Predicate, sort expense.Sort) ([]expense.Record, error)
	FindOneExpense(ctx context.Context, pred expense.Predicate) (expense.Record, error)
	InsertExpense(ctx context.Context, rec expense.Record) (expense.Record, error)
	UpdateExpenseFields(ctx context.Context, pred expense.Predicate, patch expense.Patch) (expense.Record, error)
	FindAndDeleteExpense(ctx context.Context, pred expense.Predicate) (expense.Record, error)
}

type summaryCache interface {
	GetSummary(ownerID int64) (expense.Summary, bool)
	SetSummary(ownerID int64, summary expense.Summary) error
	InvalidateSummary(ownerID int64) error
}

type eventProducer interface {
	ProduceMessage(message []byte) error
}

// NewExpense carries the caller-supplied fields of a new record. Ownership
// is not among them: it always comes from the authenticated identity.
type NewExpense struct {
	Title    string
	Amount   float64
	Category string
	Date     time.Time
}

// Service implements ownership-scoped expense operations on top of an
// abstract storage. The cache and producer may be nil; the service then
// just computes summaries on demand and emits no events.
type Service struct {
	storage  expenseStorage
	cache    summaryCache
	producer eventProducer
}

func NewService(storage expenseStorage, cache summaryCache, producer eventProducer) *Service {
	return &Service{
		storage:  storage,
		cache:    cache,
		producer: producer,
	}
}

// List returns the owner's expenses narrowed by filter, most recent first.
func (s *Service) List(ctx context.Context, ownerID int64, filter ListFilter) ([]expense.Record, error) {
	pred := NewPredicate(ownerID, filter)
	records, err := s.storage.FindExpenses(ctx, pred, expense.SortDateDesc)
	return records, errors.Wrap(err, "list expenses")
}

// Get returns one expense by (id, owner).
func (s *Service) Get(ctx context.Context, ownerID, id int64) (expense.Record, error) {
	rec, err := s.storage.FindOneExpense(ctx, newRecordPredicate(ownerID, id))
	return rec, errors.Wrap(err, "get expense")
}

// Create persists a new record owned by ownerID and returns the stored copy.
func (s *Service) Create(ctx context.Context, ownerID int64, in NewExpense) (expense.Record, error) {
	rec := expense.Record{
		OwnerID:  ownerID,
		Title:    in.Title,
		Amount:   in.Amount,
		Category: in.Category,
		Date:     in.Date,
	}
	stored, err := s.storage.InsertExpense(ctx, rec)
	if err != nil {
		return expense.Record{}, errors.Wrap(err, "create expense")
	}
	s.afterMutation(ownerID, stored.ID, ActionCreated)
	return stored, nil
}

// Update applies the patch to one expense by (id, owner) and returns the
// updated record. Fields absent from the patch keep their prior values.
func (s *Service) Update(ctx context.Context, ownerID, id int64, patch expense.Patch) (expense.Record, error) {
	pred := newRecordPredicate(ownerID, id)
	if patch.Empty() {
		rec, err := s.storage.FindOneExpense(ctx, pred)
		return rec, errors.Wrap(err, "update expense")
	}

	updated, err := s.storage.UpdateExpenseFields(ctx, pred, patch)
	if err != nil {
		return expense.Record{}, errors.Wrap(err, "update expense")
	}
	s.afterMutation(ownerID, updated.ID, ActionUpdated)
	return updated, nil
}

// Delete removes one expense by (id, owner). Find and delete are a single
// storage operation so a concurrent delete cannot be confirmed twice.
func (s *Service) Delete(ctx context.Context, ownerID, id int64) error {
	deleted, err := s.storage.FindAndDeleteExpense(ctx, newRecordPredicate(ownerID, id))
	if err != nil {
		return errors.Wrap(err, "delete expense")
	}
	s.afterMutation(ownerID, deleted.ID, ActionDeleted)
	return nil
}

// Stats summarizes everything the owner has, regardless of list filters.
// The cached summary is served when present; otherwise it is recomputed
// from storage and cached for the next call.
func (s *Service) Stats(ctx context.Context, ownerID int64) (expense.Summary, error) {
	if s.cache != nil {
		if summary, ok := s.cache.GetSummary(ownerID); ok {
			return summary, nil
		}
	}

	records, err := s.storage.FindExpenses(ctx, expense.Predicate{OwnerID: ownerID}, expense.SortNone)
	if err != nil {
		return expense.Summary{}, errors.Wrap(err, "expense stats")
	}

	summary := Summarize(records)
	if s.cache != nil {
		if err := s.cache.SetSummary(ownerID, summary); err != nil {
			logger.Warn("cannot cache summary", zap.Int64("ownerID", ownerID), zap.Error(err))
		}
	}
	return summary, nil
}

func (s *Service) afterMutation(ownerID, expenseID int64, action string) {
	if s.cache != nil {
		if err := s.cache.InvalidateSummary(ownerID); err != nil {
			logger.Warn("cannot invalidate summary", zap.Int64("ownerID", ownerID), zap.Error(err))
		}
	}
	if s.producer == nil {
		return
	}

	event := Event{
		OwnerID:   ownerID,
		ExpenseID: expenseID,
		Action:    action,
		At:        time.Now().UTC(),
	}
	message, err := json.Marshal(event)
	if err != nil {
		logger.Error("cannot marshal expense event", zap.Error(err))
		return
	}
	// Mutation already succeeded; a lost event only delays cache warming.
	if err := s.producer.ProduceMessage(message); err != nil {
		logger.Error("cannot produce expense event",
			zap.Int64("ownerID", ownerID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

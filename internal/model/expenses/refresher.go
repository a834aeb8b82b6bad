package expenses

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"max.ks1230/expense-service/internal/entity/expense"
	"max.ks1230/expense-service/internal/logger"
)

// Refresher rebuilds a user's cached summary after an expense event. It is
// driven by the worker binary consuming the events topic.
type Refresher struct {
	storage expenseStorage
	cache   summaryCache
}

func NewRefresher(storage expenseStorage, cache summaryCache) *Refresher {
	return &Refresher{
		storage: storage,
		cache:   cache,
	}
}

// HandleExpenseEvent recomputes and caches the summary for the event's owner.
func (r *Refresher) HandleExpenseEvent(ctx context.Context, event Event) error {
	logger.Info("refresh summary",
		zap.Int64("ownerID", event.OwnerID),
		zap.String("action", event.Action),
	)

	records, err := r.storage.FindExpenses(ctx, expense.Predicate{OwnerID: event.OwnerID}, expense.SortNone)
	if err != nil {
		return errors.Wrap(err, "refresh summary")
	}
	return errors.Wrap(r.cache.SetSummary(event.OwnerID, Summarize(records)), "refresh summary")
}

package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"max.ks1230/expense-service/internal/entity/expense"
	"max.ks1230/expense-service/internal/model/customerr"
)

func Test_OnFindExpenses_ShouldApplyPredicateAndSort(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorage()

	for i, day := range []int{3, 1, 2} {
		_, err := s.InsertExpense(ctx, expense.Record{
			OwnerID:  1,
			Title:    "rec",
			Amount:   float64(i),
			Category: "Food",
			Date:     time.Date(2023, 5, day, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}
	_, err := s.InsertExpense(ctx, expense.Record{OwnerID: 2, Category: "Food"})
	require.NoError(t, err)

	recs, err := s.FindExpenses(ctx, expense.Predicate{OwnerID: 1}, expense.SortDateDesc)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.True(t, recs[0].Date.After(recs[1].Date))
	assert.True(t, recs[1].Date.After(recs[2].Date))
}

func Test_OnFindAndDelete_ShouldRemoveExactlyOnce(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorage()

	rec, err := s.InsertExpense(ctx, expense.Record{OwnerID: 1, Title: "one", Category: "Food"})
	require.NoError(t, err)

	pred := expense.Predicate{OwnerID: 1, ID: &rec.ID}
	deleted, err := s.FindAndDeleteExpense(ctx, pred)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, deleted.ID)

	_, err = s.FindAndDeleteExpense(ctx, pred)
	assert.True(t, customerr.IsNotFound(err))
}

func Test_OnUpdateMissingRecord_ShouldReturnNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorage()

	title := "new"
	missing := int64(99)
	_, err := s.UpdateExpenseFields(ctx,
		expense.Predicate{OwnerID: 1, ID: &missing},
		expense.Patch{Title: &title})

	assert.True(t, customerr.IsNotFound(err))
}

package expenses

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"max.ks1230/expense-service/internal/entity/expense"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func Test_OnNewPredicate_ShouldAlwaysScopeToOwner(t *testing.T) {
	pred := NewPredicate(42, ListFilter{})

	assert.Equal(t, int64(42), pred.OwnerID)
	assert.Nil(t, pred.Category)
	assert.Nil(t, pred.DateFrom)
	assert.Nil(t, pred.DateTo)

	assert.True(t, pred.Matches(expense.Record{OwnerID: 42, Category: "Food", Date: date("2023-05-01")}))
	assert.True(t, pred.Matches(expense.Record{OwnerID: 42, Category: "Transport", Date: date("1999-01-01")}))
	assert.False(t, pred.Matches(expense.Record{OwnerID: 43, Category: "Food", Date: date("2023-05-01")}))
}

func Test_OnNewPredicate_ShouldTrimCategory(t *testing.T) {
	pred := NewPredicate(1, ListFilter{Category: "  Food  "})

	assert.NotNil(t, pred.Category)
	assert.Equal(t, "Food", *pred.Category)
	assert.True(t, pred.Matches(expense.Record{OwnerID: 1, Category: "Food"}))
	assert.False(t, pred.Matches(expense.Record{OwnerID: 1, Category: "food"}))
}

func Test_OnNewPredicate_ShouldIgnoreBlankCategory(t *testing.T) {
	pred := NewPredicate(1, ListFilter{Category: "   "})

	assert.Nil(t, pred.Category)
	assert.True(t, pred.Matches(expense.Record{OwnerID: 1, Category: "Anything"}))
}

func Test_OnNewPredicate_ShouldApplyInclusiveDateRange(t *testing.T) {
	start, end := date("2023-05-01"), date("2023-05-31")
	pred := NewPredicate(1, ListFilter{StartDate: &start, EndDate: &end})

	assert.True(t, pred.Matches(expense.Record{OwnerID: 1, Date: date("2023-05-01")}))
	assert.True(t, pred.Matches(expense.Record{OwnerID: 1, Date: date("2023-05-31")}))
	assert.True(t, pred.Matches(expense.Record{OwnerID: 1, Date: date("2023-05-15")}))
	assert.False(t, pred.Matches(expense.Record{OwnerID: 1, Date: date("2023-04-30")}))
	assert.False(t, pred.Matches(expense.Record{OwnerID: 1, Date: date("2023-06-01")}))
}

func Test_OnNewPredicate_ShouldApplySingleBoundAlone(t *testing.T) {
	start := date("2023-05-01")
	lower := NewPredicate(1, ListFilter{StartDate: &start})
	assert.True(t, lower.Matches(expense.Record{OwnerID: 1, Date: date("2030-01-01")}))
	assert.False(t, lower.Matches(expense.Record{OwnerID: 1, Date: date("2023-04-30")}))

	end := date("2023-05-31")
	upper := NewPredicate(1, ListFilter{EndDate: &end})
	assert.True(t, upper.Matches(expense.Record{OwnerID: 1, Date: date("1990-01-01")}))
	assert.False(t, upper.Matches(expense.Record{OwnerID: 1, Date: date("2023-06-01")}))
}

func Test_OnRecordPredicate_ShouldRequireBothIDAndOwner(t *testing.T) {
	pred := newRecordPredicate(1, 10)

	assert.True(t, pred.Matches(expense.Record{ID: 10, OwnerID: 1}))
	assert.False(t, pred.Matches(expense.Record{ID: 10, OwnerID: 2}))
	assert.False(t, pred.Matches(expense.Record{ID: 11, OwnerID: 1}))
}

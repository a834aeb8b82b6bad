package expenses

import (
	"strings"
	"time"

	"max.ks1230/expense-service/internal/entity/expense"
)

// ListFilter is the set of optional narrowing parameters a caller may
// supply when listing expenses. Zero values mean "no restriction".
type ListFilter struct {
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
}

// NewPredicate maps an owner identity plus optional filters to a predicate
// over the expense store. The owner clause is always present; a category is
// trimmed and ignored when empty; date bounds are inclusive and independent
// of each other. Pure function, no validation: dates reaching this point
// have already been parsed by the transport layer.
func NewPredicate(ownerID int64, filter ListFilter) expense.Predicate {
	pred := expense.Predicate{OwnerID: ownerID}

	if category := strings.TrimSpace(filter.Category); category != "" {
		pred.Category = &category
	}
	pred.DateFrom = filter.StartDate
	pred.DateTo = filter.EndDate

	return pred
}

// newRecordPredicate scopes a single record lookup to its owner. An id on
// its own is never enough to reach a record.
func newRecordPredicate(ownerID, id int64) expense.Predicate {
	return expense.Predicate{OwnerID: ownerID, ID: &id}
}

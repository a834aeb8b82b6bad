package expense

import "time"

// Sort is the ordering a storage applies to matched records.
type Sort int

const (
	SortNone Sort = iota
	SortDateDesc
)

// Predicate selects the expenses visible to one owner, optionally narrowed
// by record id, exact category and an inclusive date range. Owner equality
// is always part of the predicate; a record id alone never selects anything.
type Predicate struct {
	OwnerID  int64
	ID       *int64
	Category *string
	DateFrom *time.Time
	DateTo   *time.Time
}

// Matches reports whether rec satisfies the predicate. This is the single
// definition of predicate semantics; SQL backends must agree with it.
func (p Predicate) Matches(rec Record) bool {
	if rec.OwnerID != p.OwnerID {
		return false
	}
	if p.ID != nil && rec.ID != *p.ID {
		return false
	}
	if p.Category != nil && rec.Category != *p.Category {
		return false
	}
	if p.DateFrom != nil && rec.Date.Before(*p.DateFrom) {
		return false
	}
	if p.DateTo != nil && rec.Date.After(*p.DateTo) {
		return false
	}
	return true
}

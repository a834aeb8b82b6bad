package expense

import (
	"time"
)

// Record is a single monetary expense owned by exactly one user.
// ID is assigned by the storage on insert; OwnerID is set from the
// authenticated identity and never changes afterwards.
type Record struct {
	ID       int64     `json:"id"`
	OwnerID  int64     `json:"ownerId"`
	Title    string    `json:"title"`
	Amount   float64   `json:"amount"`
	Category string    `json:"category"`
	Date     time.Time `json:"date"`
}

// Patch carries the allow-listed mutable fields of a partial update.
// A nil field means "leave as is". Ownership is deliberately not here.
type Patch struct {
	Title    *string
	Amount   *float64
	Category *string
	Date     *time.Time
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Amount == nil && p.Category == nil && p.Date == nil
}

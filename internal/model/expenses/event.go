package expenses

import "time"

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event is published after every successful mutation so that background
// workers can rebuild the owner's cached summary.
type Event struct {
	OwnerID   int64     `json:"ownerId"`
	ExpenseID int64     `json:"expenseId"`
	Action    string    `json:"action"`
	At        time.Time `json:"at"`
}

package expense

// CategoryShare is one category's subtotal and its share of the total spend.
// Percentage is rendered to two decimals, e.g. "50.00".
type CategoryShare struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage string  `json:"percentage"`
}

// Summary is the aggregate view over a user's full expense set.
type Summary struct {
	TotalExpense float64         `json:"totalExpense"`
	TotalCount   int             `json:"totalCount"`
	Breakdown    []CategoryShare `json:"categoryBreakdown"`
}

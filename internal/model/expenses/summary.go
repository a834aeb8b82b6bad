package expenses

import (
	"github.com/shopspring/decimal"

	"max.ks1230/expense-service/internal/entity/expense"
)

var oneHundred = decimal.NewFromInt(100)

// Summarize computes the aggregate view over a user's full expense set:
// total spend, record count and a per-category breakdown with two-decimal
// percentage shares. Breakdown entries appear in first-encounter order of
// the input. When the total is zero (empty input or all-zero amounts) every
// percentage is "0.00" instead of a division by zero.
func Summarize(records []expense.Record) expense.Summary {
	total := decimal.Zero
	amounts := make([]decimal.Decimal, 0, len(records))
	breakdown := make([]expense.CategoryShare, 0, len(records))
	index := make(map[string]int, len(records))

	for _, rec := range records {
		amount := decimal.NewFromFloat(rec.Amount)
		total = total.Add(amount)

		i, ok := index[rec.Category]
		if !ok {
			i = len(breakdown)
			index[rec.Category] = i
			breakdown = append(breakdown, expense.CategoryShare{Category: rec.Category})
			amounts = append(amounts, decimal.Zero)
		}
		amounts[i] = amounts[i].Add(amount)
	}

	for i := range breakdown {
		breakdown[i].Amount = amounts[i].InexactFloat64()
		breakdown[i].Percentage = percentage(amounts[i], total)
	}

	return expense.Summary{
		TotalExpense: total.InexactFloat64(),
		TotalCount:   len(records),
		Breakdown:    breakdown,
	}
}

func percentage(amount, total decimal.Decimal) string {
	if total.IsZero() {
		return "0.00"
	}
	return amount.Div(total).Mul(oneHundred).StringFixed(2)
}

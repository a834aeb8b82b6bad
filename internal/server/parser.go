package server

import (
	"encoding/json"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/jinzhu/now"

	"max.ks1230/expense-service/internal/entity/expense"
	"max.ks1230/expense-service/internal/model/expenses"
)

// The parsing below is the validation collaborator: the expense model only
// ever sees trimmed strings, parsed dates and checked amounts.

const dateOnlyLayout = "2006-01-02"

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// expensePayload is the decoded body of create and update requests.
// Unknown keys are ignored by the json decoder; only these four fields can
// ever reach the model, so ownership cannot be smuggled in.
type expensePayload struct {
	Title    *string  `json:"title"`
	Amount   *float64 `json:"amount"`
	Category *string  `json:"category"`
	Date     *string  `json:"date"`
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse(dateOnlyLayout, value)
}

// periodStart maps the period shorthand to the start of the current week,
// month or year.
func periodStart(period string) (time.Time, bool) {
	switch period {
	case "week":
		return now.BeginningOfWeek(), true
	case "month":
		return now.BeginningOfMonth(), true
	case "year":
		return now.BeginningOfYear(), true
	}
	return time.Time{}, false
}

func parseListFilter(query url.Values) (expenses.ListFilter, []fieldError) {
	var errs []fieldError
	filter := expenses.ListFilter{Category: query.Get("category")}

	if raw := query.Get("startDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			errs = append(errs, fieldError{"startDate", "must be a valid date"})
		} else {
			filter.StartDate = &t
		}
	}
	if raw := query.Get("endDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			errs = append(errs, fieldError{"endDate", "must be a valid date"})
		} else {
			filter.EndDate = &t
		}
	}
	if period := query.Get("period"); period != "" {
		start, ok := periodStart(period)
		if !ok {
			errs = append(errs, fieldError{"period", "must be one of week, month, year"})
		} else if filter.StartDate == nil {
			// an explicit startDate wins over the shorthand
			filter.StartDate = &start
		}
	}

	return filter, errs
}

func decodePayload(body io.Reader) (expensePayload, error) {
	var payload expensePayload
	err := json.NewDecoder(body).Decode(&payload)
	return payload, err
}

func parseNewExpense(body io.Reader) (expenses.NewExpense, []fieldError) {
	payload, err := decodePayload(body)
	if err != nil {
		return expenses.NewExpense{}, []fieldError{{"body", "must be valid json"}}
	}

	var errs []fieldError
	var in expenses.NewExpense

	if payload.Title == nil || strings.TrimSpace(*payload.Title) == "" {
		errs = append(errs, fieldError{"title", "title is required"})
	} else {
		in.Title = strings.TrimSpace(*payload.Title)
	}
	if payload.Amount == nil || *payload.Amount < 0 {
		errs = append(errs, fieldError{"amount", "amount must be a non-negative number"})
	} else {
		in.Amount = *payload.Amount
	}
	if payload.Category == nil || strings.TrimSpace(*payload.Category) == "" {
		errs = append(errs, fieldError{"category", "category is required"})
	} else {
		in.Category = strings.TrimSpace(*payload.Category)
	}
	if payload.Date == nil {
		errs = append(errs, fieldError{"date", "valid date is required"})
	} else if t, err := parseDate(*payload.Date); err != nil {
		errs = append(errs, fieldError{"date", "valid date is required"})
	} else {
		in.Date = t
	}

	return in, errs
}

func parsePatch(body io.Reader) (expense.Patch, []fieldError) {
	payload, err := decodePayload(body)
	if err != nil {
		return expense.Patch{}, []fieldError{{"body", "must be valid json"}}
	}

	var errs []fieldError
	var patch expense.Patch

	if payload.Title != nil {
		title := strings.TrimSpace(*payload.Title)
		if title == "" {
			errs = append(errs, fieldError{"title", "title must not be empty"})
		} else {
			patch.Title = &title
		}
	}
	if payload.Amount != nil {
		if *payload.Amount < 0 {
			errs = append(errs, fieldError{"amount", "amount must be a non-negative number"})
		} else {
			patch.Amount = payload.Amount
		}
	}
	if payload.Category != nil {
		category := strings.TrimSpace(*payload.Category)
		if category == "" {
			errs = append(errs, fieldError{"category", "category must not be empty"})
		} else {
			patch.Category = &category
		}
	}
	if payload.Date != nil {
		t, err := parseDate(*payload.Date)
		if err != nil {
			errs = append(errs, fieldError{"date", "date must be a valid date"})
		} else {
			patch.Date = &t
		}
	}

	return patch, errs
}

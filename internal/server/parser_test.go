package server

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/jinzhu/now"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_OnParseListFilter_ShouldAcceptBothDateLayouts(t *testing.T) {
	query := url.Values{}
	query.Set("category", "Food")
	query.Set("startDate", "2023-05-01")
	query.Set("endDate", "2023-05-31T23:59:59Z")

	filter, errs := parseListFilter(query)

	require.Empty(t, errs)
	assert.Equal(t, "Food", filter.Category)
	require.NotNil(t, filter.StartDate)
	require.NotNil(t, filter.EndDate)
	assert.Equal(t, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), *filter.StartDate)
	assert.Equal(t, time.Date(2023, 5, 31, 23, 59, 59, 0, time.UTC), *filter.EndDate)
}

func Test_OnParseListFilter_ShouldRejectMalformedDates(t *testing.T) {
	query := url.Values{}
	query.Set("startDate", "01.05.2023")
	query.Set("endDate", "not-a-date")

	_, errs := parseListFilter(query)

	require.Len(t, errs, 2)
	assert.Equal(t, "startDate", errs[0].Field)
	assert.Equal(t, "endDate", errs[1].Field)
}

func Test_OnParseListFilter_ShouldExpandPeriodShorthand(t *testing.T) {
	query := url.Values{}
	query.Set("period", "month")

	filter, errs := parseListFilter(query)

	require.Empty(t, errs)
	require.NotNil(t, filter.StartDate)
	assert.Equal(t, now.BeginningOfMonth(), *filter.StartDate)
	assert.Nil(t, filter.EndDate)
}

func Test_OnParseListFilter_ExplicitStartDateShouldWinOverPeriod(t *testing.T) {
	query := url.Values{}
	query.Set("period", "year")
	query.Set("startDate", "2023-05-01")

	filter, errs := parseListFilter(query)

	require.Empty(t, errs)
	require.NotNil(t, filter.StartDate)
	assert.Equal(t, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), *filter.StartDate)
}

func Test_OnParseListFilter_ShouldRejectUnknownPeriod(t *testing.T) {
	query := url.Values{}
	query.Set("period", "decade")

	_, errs := parseListFilter(query)

	require.Len(t, errs, 1)
	assert.Equal(t, "period", errs[0].Field)
}

func Test_OnParseNewExpense_ShouldCollectFieldErrors(t *testing.T) {
	body := strings.NewReader(`{"title":"  ","amount":-5,"date":"soon"}`)

	_, errs := parseNewExpense(body)

	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"title", "amount", "category", "date"}, fields)
}

func Test_OnParseNewExpense_ShouldTrimAndParse(t *testing.T) {
	body := strings.NewReader(`{"title":" Dinner ","amount":30,"category":" Food ","date":"2023-05-01"}`)

	in, errs := parseNewExpense(body)

	require.Empty(t, errs)
	assert.Equal(t, "Dinner", in.Title)
	assert.Equal(t, "Food", in.Category)
	assert.Equal(t, 30.0, in.Amount)
	assert.Equal(t, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), in.Date)
}

func Test_OnParseNewExpense_ShouldAcceptZeroAmount(t *testing.T) {
	body := strings.NewReader(`{"title":"Freebie","amount":0,"category":"Food","date":"2023-05-01"}`)

	in, errs := parseNewExpense(body)

	require.Empty(t, errs)
	assert.Equal(t, 0.0, in.Amount)
}

func Test_OnParsePatch_ShouldIgnoreUnknownFields(t *testing.T) {
	body := strings.NewReader(`{"amount":45,"ownerId":666,"isAdmin":true}`)

	patch, errs := parsePatch(body)

	require.Empty(t, errs)
	require.NotNil(t, patch.Amount)
	assert.Equal(t, 45.0, *patch.Amount)
	assert.Nil(t, patch.Title)
	assert.Nil(t, patch.Category)
	assert.Nil(t, patch.Date)
}

func Test_OnParsePatch_ShouldRejectInvalidPresentFields(t *testing.T) {
	body := strings.NewReader(`{"title":"   ","amount":-1}`)

	_, errs := parsePatch(body)

	require.Len(t, errs, 2)
	assert.Equal(t, "title", errs[0].Field)
	assert.Equal(t, "amount", errs[1].Field)
}

func Test_OnParsePatch_EmptyBodyObjectShouldBeEmptyPatch(t *testing.T) {
	patch, errs := parsePatch(strings.NewReader(`{}`))

	require.Empty(t, errs)
	assert.True(t, patch.Empty())
}

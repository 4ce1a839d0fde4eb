package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nguyendangquyen/MAP-DRESS/pkg/types"
)

func dates(ss ...string) []types.Date {
	out := make([]types.Date, len(ss))
	for i, s := range ss {
		out[i] = types.MustParseDate(s)
	}
	return out
}

func TestExpandRange(t *testing.T) {
	assert.Equal(t, dates("2025-03-01"), ExpandRange(types.MustParseDate("2025-03-01"), types.MustParseDate("2025-03-01")))
	assert.Equal(t, dates("2024-12-31", "2025-01-01"), ExpandRange(types.MustParseDate("2024-12-31"), types.MustParseDate("2025-01-01")))
	assert.Empty(t, ExpandRange(types.MustParseDate("2025-03-02"), types.MustParseDate("2025-03-01")))
}

func TestBlockedDates(t *testing.T) {
	rows := dates("2025-03-10", "2025-03-01", "2025-03-10")
	rentals := []*Rental{
		{StartDate: types.MustParseDate("2025-03-01"), EndDate: types.MustParseDate("2025-03-03"), Status: RentalConfirmed},
		{StartDate: types.MustParseDate("2025-03-20"), EndDate: types.MustParseDate("2025-03-21"), Status: RentalCancelled},
		{StartDate: types.MustParseDate("2025-03-05"), EndDate: types.MustParseDate("2025-03-05"), Status: RentalActive},
	}

	got := BlockedDates(rows, rentals)

	assert.Equal(t, dates("2025-03-01", "2025-03-02", "2025-03-03", "2025-03-05", "2025-03-10"), got)
	assert.Equal(t, got, BlockedDates(rows, rentals), "repeatable")
	assert.Empty(t, BlockedDates(nil, nil))
}

func TestIntersectAndWindow(t *testing.T) {
	blocked := dates("2025-03-01", "2025-03-02", "2025-04-10")

	assert.Equal(t, dates("2025-03-02"), IntersectDates(dates("2025-03-02", "2025-03-03"), blocked))
	assert.Empty(t, IntersectDates(dates("2025-03-03"), blocked))

	from := types.MustParseDate("2025-03-02")
	to := types.MustParseDate("2025-03-31")
	assert.Equal(t, dates("2025-03-02"), FilterWindow(blocked, &from, &to))
	assert.Equal(t, blocked, FilterWindow(blocked, nil, nil))
	assert.Equal(t, dates("2025-03-01", "2025-03-02"), FilterWindow(blocked, nil, &to))
}

func TestUniqueDates_SortsAndDeduplicates(t *testing.T) {
	assert.Equal(t, dates("2025-03-01", "2025-03-02"), UniqueDates(dates("2025-03-02", "2025-03-01", "2025-03-02")))
}

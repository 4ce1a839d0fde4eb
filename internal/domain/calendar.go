package domain

import (
	"sort"

	"github.com/nguyendangquyen/MAP-DRESS/pkg/types"
)

// ExpandRange все дни от start до end включительно. Пустой результат, если end < start.
func ExpandRange(start, end types.Date) []types.Date {
	if end.Before(start) {
		return nil
	}
	days := make([]types.Date, 0, start.DaysUntil(end)+1)
	for d := start; !d.After(end); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// UniqueDates отсортированный по возрастанию список без повторов
func UniqueDates(dates []types.Date) []types.Date {
	seen := make(map[types.Date]struct{}, len(dates))
	out := make([]types.Date, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// BlockedDates объединение занятых дней календаря и всех дней активных аренд.
// Неактивные аренды пропускаются.
func BlockedDates(rows []types.Date, rentals []*Rental) []types.Date {
	all := make([]types.Date, 0, len(rows))
	all = append(all, rows...)
	for _, r := range rentals {
		if !r.IsActive() {
			continue
		}
		all = append(all, r.Days()...)
	}
	return UniqueDates(all)
}

// IntersectDates дни из selected, которые есть в blocked (в порядке selected)
func IntersectDates(selected, blocked []types.Date) []types.Date {
	set := make(map[types.Date]struct{}, len(blocked))
	for _, d := range blocked {
		set[d] = struct{}{}
	}
	var out []types.Date
	for _, d := range selected {
		if _, ok := set[d]; ok {
			out = append(out, d)
		}
	}
	return out
}

// FilterWindow оставляет дни в окне [from, to]. nil-граница не ограничивает.
func FilterWindow(dates []types.Date, from, to *types.Date) []types.Date {
	if from == nil && to == nil {
		return dates
	}
	out := make([]types.Date, 0, len(dates))
	for _, d := range dates {
		if from != nil && d.Before(*from) {
			continue
		}
		if to != nil && d.After(*to) {
			continue
		}
		out = append(out, d)
	}
	return out
}

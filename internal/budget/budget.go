// Package budget compares monthly spending against per-category limits.
package budget

import (
	"sort"
	"time"

	"github.com/iburimskiy/bizpanel/internal/core"
)

// Line is the state of one budgeted category for a month.
type Line struct {
	Category    string
	Limit       core.Money
	Spent       core.Money
	Remaining   core.Money // negative when over budget
	PercentUsed float64
	Over        bool
}

// Report is the budget overview of one month.
type Report struct {
	Year       int
	Month      time.Month
	Lines      []Line
	Limit      core.Money
	Spent      core.Money
	Unbudgeted core.Money // spending in categories without a budget
}

func inMonth(t time.Time, year int, month time.Month) bool {
	return t.Year() == year && t.Month() == month
}

// SpentByCategory sums the expenses dated in the given month by category.
func SpentByCategory(expenses []core.Expense, year int, month time.Month) map[string]core.Money {
	out := make(map[string]core.Money)
	for _, e := range expenses {
		if !inMonth(e.Date, year, month) {
			continue
		}
		out[e.Category] = out[e.Category].Add(e.Amount)
	}
	return out
}

// Track builds the report for the given month.
func Track(budgets []core.Budget, expenses []core.Expense, year int, month time.Month) Report {
	spent := SpentByCategory(expenses, year, month)
	r := Report{Year: year, Month: month}

	budgeted := make(map[string]bool, len(budgets))
	for _, b := range budgets {
		budgeted[b.Category] = true
		s := spent[b.Category]
		line := Line{
			Category:  b.Category,
			Limit:     b.Limit,
			Spent:     s,
			Remaining: b.Limit.Sub(s),
			Over:      s.Cents > b.Limit.Cents,
		}
		if b.Limit.Cents > 0 {
			line.PercentUsed = float64(s.Cents) * 100 / float64(b.Limit.Cents)
		}
		r.Lines = append(r.Lines, line)
		r.Limit = r.Limit.Add(b.Limit)
		r.Spent = r.Spent.Add(s)
	}
	for cat, s := range spent {
		if !budgeted[cat] {
			r.Unbudgeted = r.Unbudgeted.Add(s)
		}
	}

	sort.Slice(r.Lines, func(i, j int) bool { return r.Lines[i].Category < r.Lines[j].Category })
	return r
}

// OverBudget returns the lines whose spending exceeds the limit.
func (r Report) OverBudget() []Line {
	var out []Line
	for _, l := range r.Lines {
		if l.Over {
			out = append(out, l)
		}
	}
	return out
}

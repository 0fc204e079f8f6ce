package app

import (
	"time"

	"github.com/iburimskiy/bizpanel/internal/budget"
	"github.com/iburimskiy/bizpanel/internal/core"
)

// Dashboard is the view-model of the overview screen.
type Dashboard struct {
	User string

	Clients      int
	OpenQuotes   int
	UnpaidCount  int
	OverdueCount int
	JobsPending  int
	TeamSize     int
	OverBudget   int

	Outstanding core.Money
	Overdue     core.Money
	PaidMonth   core.Money
	SpentMonth  core.Money

	Budget budget.Report
}

// Dashboard summarizes the session as of now.
func (a *App) Dashboard(now time.Time) Dashboard {
	a.mu.RLock()
	defer a.mu.RUnlock()

	d := Dashboard{
		User:     a.user,
		Clients:  len(a.clients),
		TeamSize: len(a.team),
	}
	for _, q := range a.quotes {
		if q.Status == core.QuoteDraft || q.Status == core.QuoteSent {
			d.OpenQuotes++
		}
	}
	for _, inv := range a.invoices {
		switch inv.Status {
		case core.InvoiceUnpaid:
			d.UnpaidCount++
			d.Outstanding = d.Outstanding.Add(inv.Amount)
			if inv.Overdue(now) {
				d.OverdueCount++
				d.Overdue = d.Overdue.Add(inv.Amount)
			}
		case core.InvoicePaid:
			if inv.PaidAt.Year() == now.Year() && inv.PaidAt.Month() == now.Month() {
				d.PaidMonth = d.PaidMonth.Add(inv.Amount)
			}
		}
	}
	for _, j := range a.jobs {
		if j.Status != core.JobDone {
			d.JobsPending++
		}
	}

	d.Budget = budget.Track(a.budgets, a.expenses, now.Year(), now.Month())
	d.OverBudget = len(d.Budget.OverBudget())
	d.SpentMonth = d.Budget.Spent.Add(d.Budget.Unbudgeted)
	return d
}

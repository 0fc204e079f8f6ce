package app

import (
	"fmt"
	"time"

	"github.com/iburimskiy/bizpanel/internal/core"
)

type Tab int

const (
	TabInvoices Tab = iota
	TabQuotes
	TabClients
	TabJobs
	TabBudget
	TabTeam
)

var Tabs = []Tab{TabInvoices, TabQuotes, TabClients, TabJobs, TabBudget, TabTeam}

func (t Tab) String() string {
	switch t {
	case TabInvoices:
		return "Invoices"
	case TabQuotes:
		return "Quotes"
	case TabClients:
		return "Clients"
	case TabJobs:
		return "Jobs"
	case TabBudget:
		return "Budget"
	case TabTeam:
		return "Team"
	}
	return "?"
}

// Next cycles through Tabs.
func (t Tab) Next() Tab {
	return Tabs[(int(t)+1)%len(Tabs)]
}

type Tone int

const (
	ToneNormal Tone = iota
	ToneGood
	ToneWarn
)

// Row is one line of a list view. Label names the record in prompts, and
// Percent is only set on budget rows.
type Row struct {
	ID      string
	Label   string
	Text    string
	Tone    Tone
	Percent float64
}

// Rows renders the list of a tab as of now.
func (a *App) Rows(tab Tab, now time.Time) []Row {
	var rows []Row
	switch tab {
	case TabInvoices:
		for _, inv := range a.Invoices() {
			r := Row{ID: inv.ID, Label: inv.Number}
			status := "unpaid, due " + inv.DueAt.Format("2006-01-02")
			switch {
			case inv.Status == core.InvoicePaid:
				status = "paid " + inv.PaidAt.Format("2006-01-02")
				r.Tone = ToneGood
			case inv.Overdue(now):
				status = "OVERDUE since " + inv.DueAt.Format("2006-01-02")
				r.Tone = ToneWarn
			}
			r.Text = fmt.Sprintf("%-9s %-22s %11s  %s", inv.Number, a.ClientName(inv.ClientID), inv.Amount, status)
			rows = append(rows, r)
		}
	case TabQuotes:
		for _, q := range a.Quotes() {
			r := Row{ID: q.ID, Label: q.Number}
			switch q.Status {
			case core.QuoteAccepted:
				r.Tone = ToneGood
			case core.QuoteDeclined:
				r.Tone = ToneWarn
			}
			r.Text = fmt.Sprintf("%-7s %-22s %-24s %11s  %s", q.Number, a.ClientName(q.ClientID), q.Title, q.Amount, q.Status)
			rows = append(rows, r)
		}
	case TabClients:
		for _, c := range a.Clients() {
			rows = append(rows, Row{ID: c.ID, Label: c.Name, Text: fmt.Sprintf("%-24s %-24s %s", c.Name, c.Email, c.Phone)})
		}
	case TabJobs:
		for _, j := range a.Jobs() {
			r := Row{ID: j.ID, Label: j.Title}
			if j.Status == core.JobDone {
				r.Tone = ToneGood
			}
			client := ""
			if j.ClientID != "" {
				client = a.ClientName(j.ClientID)
			}
			r.Text = fmt.Sprintf("%-10s %-24s %-22s %s", j.ScheduledFor.Format("2006-01-02"), j.Title, client, j.Status)
			rows = append(rows, r)
		}
	case TabBudget:
		report := a.Dashboard(now).Budget
		for _, l := range report.Lines {
			r := Row{ID: l.Category, Label: l.Category, Percent: l.PercentUsed}
			if l.Over {
				r.Tone = ToneWarn
			}
			r.Text = fmt.Sprintf("%-16s %10s of %10s  (%5.1f%%)  left %10s", l.Category, l.Spent, l.Limit, l.PercentUsed, l.Remaining)
			rows = append(rows, r)
		}
		if report.Unbudgeted.Cents > 0 {
			rows = append(rows, Row{Text: fmt.Sprintf("%-16s %10s", "(unbudgeted)", report.Unbudgeted), Tone: ToneWarn})
		}
	case TabTeam:
		for _, m := range a.Team() {
			rows = append(rows, Row{ID: m.ID, Label: m.Name, Text: fmt.Sprintf("%-24s %-28s %s", m.Name, m.Email, m.Role)})
		}
	}
	return rows
}

package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iburimskiy/bizpanel/internal/config"
	"github.com/iburimskiy/bizpanel/internal/core"
)

func (a *App) AddClient(ctx context.Context, c core.Client) (core.Client, error) {
	if err := a.requireSession(); err != nil {
		return core.Client{}, err
	}
	c, err := a.store.CreateClient(ctx, c)
	if err != nil {
		return core.Client{}, fmt.Errorf("add client: %w", err)
	}
	return c, a.refreshClients(ctx)
}

func (a *App) CreateQuote(ctx context.Context, q core.Quote) (core.Quote, error) {
	if err := a.requireSession(); err != nil {
		return core.Quote{}, err
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = a.clk.Now()
	}
	q, err := a.store.CreateQuote(ctx, q)
	if err != nil {
		return core.Quote{}, fmt.Errorf("create quote: %w", err)
	}
	return q, a.refreshQuotes(ctx)
}

// AcceptQuote marks the quote accepted and issues the matching invoice. The
// store does both at once, so a closed quote is never invoiced twice.
func (a *App) AcceptQuote(ctx context.Context, id string) (core.Invoice, error) {
	if err := a.requireSession(); err != nil {
		return core.Invoice{}, err
	}
	now := a.clk.Now()
	q, inv, err := a.store.AcceptQuote(ctx, id, now, now.Add(config.InvoiceTerms))
	if err != nil {
		if errors.Is(err, ErrQuoteClosed) {
			// Another session got there first.
			_ = a.refreshQuotes(ctx)
		}
		return core.Invoice{}, fmt.Errorf("accept quote: %w", err)
	}
	if err := a.refreshQuotes(ctx); err != nil {
		return inv, err
	}
	if err := a.refreshInvoices(ctx); err != nil {
		return inv, err
	}

	a.log.WithFields(logrus.Fields{"quote": q.Number, "invoice": inv.Number}).Info("quote accepted")
	a.party.Celebrate()
	return inv, nil
}

func (a *App) DeclineQuote(ctx context.Context, id string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if _, err := a.store.SetQuoteStatus(ctx, id, core.QuoteDeclined, a.clk.Now()); err != nil {
		return fmt.Errorf("decline quote: %w", err)
	}
	return a.refreshQuotes(ctx)
}

func (a *App) CreateInvoice(ctx context.Context, inv core.Invoice) (core.Invoice, error) {
	if err := a.requireSession(); err != nil {
		return core.Invoice{}, err
	}
	if inv.IssuedAt.IsZero() {
		inv.IssuedAt = a.clk.Now()
	}
	if inv.DueAt.IsZero() {
		inv.DueAt = inv.IssuedAt.Add(config.InvoiceTerms)
	}
	inv, err := a.store.CreateInvoice(ctx, inv)
	if err != nil {
		return core.Invoice{}, fmt.Errorf("create invoice: %w", err)
	}
	return inv, a.refreshInvoices(ctx)
}

// MarkInvoicePaid records the payment and celebrates it.
func (a *App) MarkInvoicePaid(ctx context.Context, id string) (core.Invoice, error) {
	if err := a.requireSession(); err != nil {
		return core.Invoice{}, err
	}
	inv, err := a.store.MarkInvoicePaid(ctx, id, a.clk.Now())
	if err != nil {
		return core.Invoice{}, fmt.Errorf("mark invoice paid: %w", err)
	}
	if err := a.refreshInvoices(ctx); err != nil {
		return inv, err
	}

	a.log.WithFields(logrus.Fields{"invoice": inv.Number, "amount": inv.Amount.String()}).Info("invoice paid")
	a.party.Celebrate()
	return inv, nil
}

func (a *App) ScheduleJob(ctx context.Context, j core.Job) (core.Job, error) {
	if err := a.requireSession(); err != nil {
		return core.Job{}, err
	}
	j, err := a.store.CreateJob(ctx, j)
	if err != nil {
		return core.Job{}, fmt.Errorf("schedule job: %w", err)
	}
	return j, a.refreshJobs(ctx)
}

// AdvanceJob moves a job to its next status: scheduled, in progress, done.
func (a *App) AdvanceJob(ctx context.Context, id string) (core.Job, error) {
	if err := a.requireSession(); err != nil {
		return core.Job{}, err
	}
	var current core.JobStatus
	for _, j := range a.Jobs() {
		if j.ID == id {
			current = j.Status
		}
	}
	switch current {
	case core.JobInProgress, core.JobDone:
		return a.CompleteJob(ctx, id)
	}
	return a.setJobStatus(ctx, id, core.JobInProgress)
}

func (a *App) CompleteJob(ctx context.Context, id string) (core.Job, error) {
	if err := a.requireSession(); err != nil {
		return core.Job{}, err
	}
	return a.setJobStatus(ctx, id, core.JobDone)
}

func (a *App) setJobStatus(ctx context.Context, id string, status core.JobStatus) (core.Job, error) {
	j, err := a.store.SetJobStatus(ctx, id, status)
	if err != nil {
		return core.Job{}, fmt.Errorf("update job: %w", err)
	}
	return j, a.refreshJobs(ctx)
}

func (a *App) AddExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := a.requireSession(); err != nil {
		return core.Expense{}, err
	}
	if e.Date.IsZero() {
		e.Date = a.clk.Now()
	}
	e, err := a.store.CreateExpense(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("add expense: %w", err)
	}
	return e, a.refreshExpenses(ctx)
}

func (a *App) SetBudget(ctx context.Context, b core.Budget) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if err := a.store.SetBudget(ctx, b); err != nil {
		return fmt.Errorf("set budget: %w", err)
	}
	return a.refreshBudgets(ctx)
}

func (a *App) AddTeamMember(ctx context.Context, m core.TeamMember) (core.TeamMember, error) {
	if err := a.requireSession(); err != nil {
		return core.TeamMember{}, err
	}
	m, err := a.store.AddMember(ctx, m)
	if err != nil {
		return core.TeamMember{}, fmt.Errorf("add team member: %w", err)
	}
	return m, a.refreshTeam(ctx)
}

func (a *App) refreshClients(ctx context.Context) error {
	list, err := a.store.ListClients(ctx)
	if err != nil {
		return fmt.Errorf("reload clients: %w", err)
	}
	a.mu.Lock()
	a.clients = list
	a.mu.Unlock()
	return nil
}

func (a *App) refreshQuotes(ctx context.Context) error {
	list, err := a.store.ListQuotes(ctx)
	if err != nil {
		return fmt.Errorf("reload quotes: %w", err)
	}
	a.mu.Lock()
	a.quotes = list
	a.mu.Unlock()
	return nil
}

func (a *App) refreshInvoices(ctx context.Context) error {
	list, err := a.store.ListInvoices(ctx)
	if err != nil {
		return fmt.Errorf("reload invoices: %w", err)
	}
	a.mu.Lock()
	a.invoices = list
	a.mu.Unlock()
	return nil
}

func (a *App) refreshJobs(ctx context.Context) error {
	list, err := a.store.ListJobs(ctx)
	if err != nil {
		return fmt.Errorf("reload jobs: %w", err)
	}
	a.mu.Lock()
	a.jobs = list
	a.mu.Unlock()
	return nil
}

func (a *App) refreshExpenses(ctx context.Context) error {
	list, err := a.store.ListExpenses(ctx)
	if err != nil {
		return fmt.Errorf("reload expenses: %w", err)
	}
	a.mu.Lock()
	a.expenses = list
	a.mu.Unlock()
	return nil
}

func (a *App) refreshBudgets(ctx context.Context) error {
	list, err := a.store.ListBudgets(ctx)
	if err != nil {
		return fmt.Errorf("reload budgets: %w", err)
	}
	a.mu.Lock()
	a.budgets = list
	a.mu.Unlock()
	return nil
}

func (a *App) refreshTeam(ctx context.Context) error {
	list, err := a.store.ListMembers(ctx)
	if err != nil {
		return fmt.Errorf("reload team: %w", err)
	}
	a.mu.Lock()
	a.team = list
	a.mu.Unlock()
	return nil
}

// SeedDemo fills an empty store with a small sample business.
func (a *App) SeedDemo(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if len(a.Clients()) > 0 {
		return nil
	}
	now := a.clk.Now()

	acme, err := a.AddClient(ctx, core.Client{Name: "Acme Roofing", Email: "office@acme.test", Phone: "555-0101"})
	if err != nil {
		return err
	}
	bright, err := a.AddClient(ctx, core.Client{Name: "Bright Dental", Email: "admin@bright.test"})
	if err != nil {
		return err
	}
	if _, err := a.CreateInvoice(ctx, core.Invoice{ClientID: acme.ID, Amount: core.Cents(125000), IssuedAt: now.AddDate(0, 0, -40)}); err != nil {
		return err
	}
	if _, err := a.CreateInvoice(ctx, core.Invoice{ClientID: bright.ID, Amount: core.Cents(48050), IssuedAt: now.AddDate(0, 0, -3)}); err != nil {
		return err
	}
	if _, err := a.CreateQuote(ctx, core.Quote{ClientID: bright.ID, Title: "Waiting room refit", Amount: core.Cents(320000), Status: core.QuoteSent}); err != nil {
		return err
	}
	if _, err := a.ScheduleJob(ctx, core.Job{ClientID: acme.ID, Title: "Roof inspection", ScheduledFor: now.AddDate(0, 0, 2)}); err != nil {
		return err
	}
	for _, e := range []core.Expense{
		{Category: "Fuel", Description: "Van diesel", Amount: core.Cents(8200), Date: now},
		{Category: "Tools", Description: "Impact driver", Amount: core.Cents(15900), Date: now},
	} {
		if _, err := a.AddExpense(ctx, e); err != nil {
			return err
		}
	}
	for _, b := range []core.Budget{
		{Category: "Fuel", Limit: core.Cents(30000)},
		{Category: "Tools", Limit: core.Cents(10000)},
	} {
		if err := a.SetBudget(ctx, b); err != nil {
			return err
		}
	}
	if _, err := a.AddTeamMember(ctx, core.TeamMember{Name: a.User(), Role: core.RoleOwner}); err != nil {
		return err
	}

	a.log.Info("demo data seeded")
	return nil
}

// Now is the session clock's current time.
func (a *App) Now() time.Time { return a.clk.Now() }

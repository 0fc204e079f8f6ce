package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/bizpanel/internal/core"
	"github.com/iburimskiy/bizpanel/internal/store"
	"github.com/iburimskiy/bizpanel/internal/store/memory"
)

type countingParty struct{ n int }

func (p *countingParty) Celebrate() { p.n++ }

var testNow = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*App, *countingParty, *memory.Store) {
	t.Helper()
	clk := clock.NewMock()
	clk.Set(testNow)
	s := memory.New()
	party := &countingParty{}
	a := New(s, party, WithClock(clk))
	require.NoError(t, a.SignIn(context.Background(), "owner"))
	return a, party, s
}

func TestActionsRequireSession(t *testing.T) {
	a := New(memory.New(), nil)
	ctx := context.Background()

	_, err := a.AddClient(ctx, core.Client{Name: "Acme"})
	assert.ErrorIs(t, err, ErrNotSignedIn)
	_, err = a.MarkInvoicePaid(ctx, "x")
	assert.ErrorIs(t, err, ErrNotSignedIn)
	assert.ErrorIs(t, a.Reload(ctx), ErrNotSignedIn)
	assert.ErrorIs(t, a.SignIn(ctx, "  "), ErrInvalidUser)
}

func TestSignInLoadsAndSignOutClears(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	c, err := s.CreateClient(ctx, core.Client{Name: "Acme"})
	require.NoError(t, err)
	_, err = s.CreateInvoice(ctx, core.Invoice{ClientID: c.ID, Amount: core.Cents(1000)})
	require.NoError(t, err)
	require.NoError(t, s.SetBudget(ctx, core.Budget{Category: "Fuel", Limit: core.Cents(100)}))

	a := New(s, nil)
	require.NoError(t, a.SignIn(ctx, "maria"))
	assert.Equal(t, "maria", a.User())
	assert.Len(t, a.Clients(), 1)
	assert.Len(t, a.Invoices(), 1)
	assert.Len(t, a.Budgets(), 1)
	assert.Equal(t, "Acme", a.ClientName(c.ID))

	a.SignOut()
	assert.False(t, a.SignedIn())
	assert.Empty(t, a.Clients())
	assert.Empty(t, a.Invoices())
	assert.Empty(t, a.Budgets())
	assert.Equal(t, "?", a.ClientName(c.ID))
}

type failingStore struct {
	*memory.Store
}

var errBackend = errors.New("backend down")

func (failingStore) ListExpenses(context.Context) ([]core.Expense, error) {
	return nil, errBackend
}

func TestSignInFailsWhenAnyLoadFails(t *testing.T) {
	a := New(failingStore{memory.New()}, nil)
	err := a.SignIn(context.Background(), "owner")
	require.ErrorIs(t, err, errBackend)
	assert.False(t, a.SignedIn())
}

func TestMarkInvoicePaidCelebrates(t *testing.T) {
	a, party, _ := newTestApp(t)
	ctx := context.Background()

	c, err := a.AddClient(ctx, core.Client{Name: "Acme"})
	require.NoError(t, err)
	inv, err := a.CreateInvoice(ctx, core.Invoice{ClientID: c.ID, Amount: core.Cents(48050)})
	require.NoError(t, err)
	assert.True(t, inv.DueAt.Equal(testNow.Add(30*24*time.Hour)))

	paid, err := a.MarkInvoicePaid(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, core.InvoicePaid, paid.Status)
	assert.True(t, paid.PaidAt.Equal(testNow))
	assert.Equal(t, 1, party.n)
	assert.Equal(t, core.InvoicePaid, a.Invoices()[0].Status)

	_, err = a.MarkInvoicePaid(ctx, inv.ID)
	assert.ErrorIs(t, err, core.ErrAlreadyPaid)
	_, err = a.MarkInvoicePaid(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, 1, party.n)
}

func TestAcceptQuoteIssuesInvoice(t *testing.T) {
	a, party, _ := newTestApp(t)
	ctx := context.Background()

	c, err := a.AddClient(ctx, core.Client{Name: "Bright Dental"})
	require.NoError(t, err)
	q, err := a.CreateQuote(ctx, core.Quote{ClientID: c.ID, Title: "Refit", Amount: core.Cents(320000), Status: core.QuoteSent})
	require.NoError(t, err)

	inv, err := a.AcceptQuote(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.ID, inv.QuoteID)
	assert.Equal(t, q.Amount, inv.Amount)
	assert.Equal(t, core.InvoiceUnpaid, inv.Status)
	assert.Equal(t, 1, party.n)
	assert.Equal(t, core.QuoteAccepted, a.Quotes()[0].Status)
	assert.Len(t, a.Invoices(), 1)

	_, err = a.AcceptQuote(ctx, q.ID)
	assert.ErrorIs(t, err, ErrQuoteClosed)
	assert.Len(t, a.Invoices(), 1)
	assert.Equal(t, 1, party.n)
}

func TestDeclineQuote(t *testing.T) {
	a, party, _ := newTestApp(t)
	ctx := context.Background()

	c, err := a.AddClient(ctx, core.Client{Name: "Acme"})
	require.NoError(t, err)
	q, err := a.CreateQuote(ctx, core.Quote{ClientID: c.ID, Amount: core.Cents(100)})
	require.NoError(t, err)

	require.NoError(t, a.DeclineQuote(ctx, q.ID))
	assert.Equal(t, core.QuoteDeclined, a.Quotes()[0].Status)
	_, err = a.AcceptQuote(ctx, q.ID)
	assert.ErrorIs(t, err, ErrQuoteClosed)
	assert.Equal(t, 0, party.n)
}

func TestAdvanceJob(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx := context.Background()

	j, err := a.ScheduleJob(ctx, core.Job{Title: "Inspection", ScheduledFor: testNow})
	require.NoError(t, err)

	j, err = a.AdvanceJob(ctx, j.ID)
	require.NoError(t, err)
	assert.Equal(t, core.JobInProgress, j.Status)
	j, err = a.AdvanceJob(ctx, j.ID)
	require.NoError(t, err)
	assert.Equal(t, core.JobDone, j.Status)
	assert.Equal(t, core.JobDone, a.Jobs()[0].Status)

	j, err = a.AdvanceJob(ctx, j.ID)
	require.NoError(t, err)
	assert.Equal(t, core.JobDone, j.Status)

	_, err = a.CompleteJob(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDashboard(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx := context.Background()
	require.NoError(t, a.SeedDemo(ctx))

	d := a.Dashboard(testNow)
	assert.Equal(t, "owner", d.User)
	assert.Equal(t, 2, d.Clients)
	assert.Equal(t, 1, d.OpenQuotes)
	assert.Equal(t, 2, d.UnpaidCount)
	assert.Equal(t, 1, d.OverdueCount)
	assert.Equal(t, core.Cents(173050), d.Outstanding)
	assert.Equal(t, core.Cents(125000), d.Overdue)
	assert.Equal(t, 1, d.JobsPending)
	assert.Equal(t, 1, d.TeamSize)
	assert.Equal(t, 1, d.OverBudget)
	assert.Equal(t, core.Cents(24100), d.SpentMonth)

	require.Len(t, d.Budget.Lines, 2)
	assert.True(t, d.Budget.Lines[1].Over)

	// Paying the overdue invoice moves it to this month's takings.
	for _, inv := range a.Invoices() {
		if inv.Overdue(testNow) {
			_, err := a.MarkInvoicePaid(ctx, inv.ID)
			require.NoError(t, err)
		}
	}
	d = a.Dashboard(testNow)
	assert.Equal(t, 0, d.OverdueCount)
	assert.Equal(t, core.Cents(125000), d.PaidMonth)
	assert.Equal(t, core.Cents(48050), d.Outstanding)
}

func TestSeedDemoOnlyOnce(t *testing.T) {
	a, _, _ := newTestApp(t)
	ctx := context.Background()
	require.NoError(t, a.SeedDemo(ctx))
	require.NoError(t, a.SeedDemo(ctx))
	assert.Len(t, a.Clients(), 2)

	// A new session sees the persisted data.
	a.SignOut()
	require.NoError(t, a.SignIn(ctx, "owner"))
	assert.Len(t, a.Invoices(), 2)
	assert.Len(t, a.Expenses(), 2)
	assert.Len(t, a.Team(), 1)
}

func TestAcceptQuoteFromStaleSession(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	c, err := s.CreateClient(ctx, core.Client{Name: "Acme"})
	require.NoError(t, err)
	q, err := s.CreateQuote(ctx, core.Quote{ClientID: c.ID, Amount: core.Cents(5000), Status: core.QuoteSent})
	require.NoError(t, err)

	first := New(s, nil)
	require.NoError(t, first.SignIn(ctx, "owner"))
	party := &countingParty{}
	second := New(s, party)
	require.NoError(t, second.SignIn(ctx, "admin"))

	_, err = first.AcceptQuote(ctx, q.ID)
	require.NoError(t, err)

	// second still lists the quote as sent.
	assert.Equal(t, core.QuoteSent, second.Quotes()[0].Status)
	_, err = second.AcceptQuote(ctx, q.ID)
	assert.ErrorIs(t, err, ErrQuoteClosed)
	assert.Equal(t, 0, party.n)
	assert.Equal(t, core.QuoteAccepted, second.Quotes()[0].Status)

	invoices, err := s.ListInvoices(ctx)
	require.NoError(t, err)
	assert.Len(t, invoices, 1)

	require.NoError(t, second.Reload(ctx))
	assert.Len(t, second.Invoices(), 1)
}

func TestQuotedClientCannotBeDeleted(t *testing.T) {
	a, party, s := newTestApp(t)
	ctx := context.Background()

	c, err := a.AddClient(ctx, core.Client{Name: "Acme"})
	require.NoError(t, err)
	q, err := a.CreateQuote(ctx, core.Quote{ClientID: c.ID, Amount: core.Cents(5000)})
	require.NoError(t, err)

	require.ErrorIs(t, s.DeleteClient(ctx, c.ID), store.ErrInUse)

	inv, err := a.AcceptQuote(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, inv.ClientID)
	assert.Equal(t, "Acme", a.ClientName(inv.ClientID))
	assert.Equal(t, 1, party.n)
}

// Package storetest is the behavior suite every store.Store implementation must pass.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/bizpanel/internal/core"
	"github.com/iburimskiy/bizpanel/internal/store"
)

// Run exercises a fresh store returned by open for each subtest.
func Run(t *testing.T, open func(t *testing.T) store.Store) {
	tests := map[string]func(t *testing.T, s store.Store){
		"Clients":  testClients,
		"Quotes":   testQuotes,
		"Invoices": testInvoices,
		"Jobs":     testJobs,
		"Expenses": testExpenses,
		"Budgets":  testBudgets,
		"Team":     testTeam,

		"AcceptQuote":   testAcceptQuote,
		"ClientInUse":   testClientInUse,
		"NumberingGaps": testNumberingGaps,
	}
	for name, fn := range tests {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			t.Cleanup(func() { _ = s.Close() })
			fn(t, s)
		})
	}
}

var base = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

func mustClient(t *testing.T, s store.Store, name string) core.Client {
	t.Helper()
	c, err := s.CreateClient(context.Background(), core.Client{Name: name})
	require.NoError(t, err)
	return c
}

func testClients(t *testing.T, s store.Store) {
	ctx := context.Background()

	_, err := s.CreateClient(ctx, core.Client{})
	require.ErrorIs(t, err, core.ErrInvalidName)

	b := mustClient(t, s, "Bright Plumbing")
	a, err := s.CreateClient(ctx, core.Client{Name: "Acme Roofing", Email: "ops@acme.test", Phone: "555-0100"})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.CreatedAt.IsZero())

	got, err := s.GetClient(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "ops@acme.test", got.Email)
	assert.Equal(t, "555-0100", got.Phone)

	list, err := s.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Acme Roofing", list[0].Name)

	require.NoError(t, s.DeleteClient(ctx, a.ID))
	_, err = s.GetClient(ctx, a.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteClient(ctx, a.ID), store.ErrNotFound)
}

func testQuotes(t *testing.T, s store.Store) {
	ctx := context.Background()
	c := mustClient(t, s, "Acme")

	_, err := s.CreateQuote(ctx, core.Quote{ClientID: "missing", Amount: core.Cents(100)})
	require.ErrorIs(t, err, store.ErrNotFound)

	q1, err := s.CreateQuote(ctx, core.Quote{ClientID: c.ID, Title: "Roof repair", Amount: core.Cents(250000)})
	require.NoError(t, err)
	assert.Equal(t, "Q-0001", q1.Number)
	assert.Equal(t, core.QuoteDraft, q1.Status)

	q2, err := s.CreateQuote(ctx, core.Quote{ClientID: c.ID, Title: "Gutters", Amount: core.Cents(40000), Status: core.QuoteSent})
	require.NoError(t, err)
	assert.Equal(t, "Q-0002", q2.Number)

	accepted, err := s.SetQuoteStatus(ctx, q1.ID, core.QuoteAccepted, base)
	require.NoError(t, err)
	assert.Equal(t, core.QuoteAccepted, accepted.Status)
	assert.True(t, accepted.AcceptedAt.Equal(base))

	_, err = s.SetQuoteStatus(ctx, q1.ID, "pending", base)
	assert.ErrorIs(t, err, core.ErrInvalidStatus)
	_, err = s.SetQuoteStatus(ctx, "missing", core.QuoteDeclined, base)
	assert.ErrorIs(t, err, store.ErrNotFound)

	list, err := s.ListQuotes(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, q1.ID, list[0].ID)
	assert.Equal(t, core.QuoteAccepted, list[0].Status)
}

func testInvoices(t *testing.T, s store.Store) {
	ctx := context.Background()
	c := mustClient(t, s, "Acme")

	_, err := s.CreateInvoice(ctx, core.Invoice{ClientID: c.ID})
	require.ErrorIs(t, err, core.ErrInvalidAmount)

	later, err := s.CreateInvoice(ctx, core.Invoice{ClientID: c.ID, Amount: core.Cents(9900), IssuedAt: base.Add(time.Hour), DueAt: base.AddDate(0, 0, 30)})
	require.NoError(t, err)
	first, err := s.CreateInvoice(ctx, core.Invoice{ClientID: c.ID, Amount: core.Cents(5000), IssuedAt: base})
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", later.Number)
	assert.Equal(t, "INV-0002", first.Number)
	assert.Equal(t, core.InvoiceUnpaid, first.Status)

	list, err := s.ListInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.True(t, list[1].DueAt.Equal(base.AddDate(0, 0, 30)))

	paidAt := base.AddDate(0, 0, 3)
	paid, err := s.MarkInvoicePaid(ctx, first.ID, paidAt)
	require.NoError(t, err)
	assert.Equal(t, core.InvoicePaid, paid.Status)
	assert.True(t, paid.PaidAt.Equal(paidAt))

	_, err = s.MarkInvoicePaid(ctx, first.ID, paidAt)
	assert.ErrorIs(t, err, core.ErrAlreadyPaid)
	_, err = s.MarkInvoicePaid(ctx, "missing", paidAt)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testJobs(t *testing.T, s store.Store) {
	ctx := context.Background()
	c := mustClient(t, s, "Acme")

	_, err := s.CreateJob(ctx, core.Job{Title: "Survey", ClientID: "missing"})
	require.ErrorIs(t, err, store.ErrNotFound)

	j2, err := s.CreateJob(ctx, core.Job{Title: "Install", ClientID: c.ID, ScheduledFor: base.AddDate(0, 0, 2)})
	require.NoError(t, err)
	j1, err := s.CreateJob(ctx, core.Job{Title: "Survey", ClientID: c.ID, ScheduledFor: base})
	require.NoError(t, err)
	assert.Equal(t, core.JobScheduled, j1.Status)

	done, err := s.SetJobStatus(ctx, j2.ID, core.JobDone)
	require.NoError(t, err)
	assert.Equal(t, core.JobDone, done.Status)

	list, err := s.ListJobs(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, j1.ID, list[0].ID)

	_, err = s.SetJobStatus(ctx, "missing", core.JobDone)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testExpenses(t *testing.T, s store.Store) {
	ctx := context.Background()

	_, err := s.CreateExpense(ctx, core.Expense{Category: "Fuel", Date: base})
	require.ErrorIs(t, err, core.ErrInvalidAmount)

	e, err := s.CreateExpense(ctx, core.Expense{Category: "Fuel", Description: "Van", Amount: core.Cents(6000), Date: base})
	require.NoError(t, err)
	_, err = s.CreateExpense(ctx, core.Expense{Category: "Tools", Description: "Drill", Amount: core.Cents(12000), Date: base.AddDate(0, 0, -1)})
	require.NoError(t, err)

	list, err := s.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Drill", list[0].Description)
	assert.True(t, list[1].Date.Equal(base))

	require.NoError(t, s.DeleteExpense(ctx, e.ID))
	assert.ErrorIs(t, s.DeleteExpense(ctx, e.ID), store.ErrNotFound)
}

func testBudgets(t *testing.T, s store.Store) {
	ctx := context.Background()

	require.ErrorIs(t, s.SetBudget(ctx, core.Budget{Category: "Fuel"}), core.ErrInvalidAmount)
	require.NoError(t, s.SetBudget(ctx, core.Budget{Category: "Tools", Limit: core.Cents(10000)}))
	require.NoError(t, s.SetBudget(ctx, core.Budget{Category: "Fuel", Limit: core.Cents(5000)}))
	require.NoError(t, s.SetBudget(ctx, core.Budget{Category: "Fuel", Limit: core.Cents(7000)}))

	list, err := s.ListBudgets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.Budget{
		{Category: "Fuel", Limit: core.Cents(7000)},
		{Category: "Tools", Limit: core.Cents(10000)},
	}, list)

	require.NoError(t, s.DeleteBudget(ctx, "Fuel"))
	assert.ErrorIs(t, s.DeleteBudget(ctx, "Fuel"), store.ErrNotFound)
}

func testTeam(t *testing.T, s store.Store) {
	ctx := context.Background()

	_, err := s.AddMember(ctx, core.TeamMember{Name: "Zed", Role: "intern"})
	require.ErrorIs(t, err, core.ErrInvalidRole)

	m, err := s.AddMember(ctx, core.TeamMember{Name: "Zed"})
	require.NoError(t, err)
	assert.Equal(t, core.RoleMember, m.Role)
	_, err = s.AddMember(ctx, core.TeamMember{Name: "Ann", Email: "ann@example.test", Role: core.RoleAdmin})
	require.NoError(t, err)

	list, err := s.ListMembers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ann", list[0].Name)
	assert.Equal(t, core.RoleAdmin, list[0].Role)

	require.NoError(t, s.RemoveMember(ctx, m.ID))
	assert.ErrorIs(t, s.RemoveMember(ctx, m.ID), store.ErrNotFound)
}

func testAcceptQuote(t *testing.T, s store.Store) {
	ctx := context.Background()
	c := mustClient(t, s, "Acme")
	due := base.AddDate(0, 0, 30)

	q, err := s.CreateQuote(ctx, core.Quote{ClientID: c.ID, Title: "Roof", Amount: core.Cents(320000), Status: core.QuoteSent})
	require.NoError(t, err)

	accepted, inv, err := s.AcceptQuote(ctx, q.ID, base, due)
	require.NoError(t, err)
	assert.Equal(t, core.QuoteAccepted, accepted.Status)
	assert.True(t, accepted.AcceptedAt.Equal(base))
	assert.Equal(t, q.ID, inv.QuoteID)
	assert.Equal(t, c.ID, inv.ClientID)
	assert.Equal(t, q.Amount, inv.Amount)
	assert.Equal(t, core.InvoiceUnpaid, inv.Status)
	assert.Equal(t, "INV-0001", inv.Number)
	assert.True(t, inv.DueAt.Equal(due))

	_, _, err = s.AcceptQuote(ctx, q.ID, base, due)
	assert.ErrorIs(t, err, core.ErrQuoteClosed)
	_, err = s.SetQuoteStatus(ctx, q.ID, core.QuoteDeclined, base)
	assert.ErrorIs(t, err, core.ErrQuoteClosed)

	declined, err := s.CreateQuote(ctx, core.Quote{ClientID: c.ID, Title: "Gutters", Amount: core.Cents(900)})
	require.NoError(t, err)
	_, err = s.SetQuoteStatus(ctx, declined.ID, core.QuoteDeclined, base)
	require.NoError(t, err)
	_, _, err = s.AcceptQuote(ctx, declined.ID, base, due)
	assert.ErrorIs(t, err, core.ErrQuoteClosed)

	_, _, err = s.AcceptQuote(ctx, "missing", base, due)
	assert.ErrorIs(t, err, store.ErrNotFound)

	invoices, err := s.ListInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, inv.ID, invoices[0].ID)

	quotes, err := s.ListQuotes(ctx)
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, core.QuoteAccepted, quotes[0].Status)
	assert.Equal(t, core.QuoteDeclined, quotes[1].Status)
}

func testClientInUse(t *testing.T, s store.Store) {
	ctx := context.Background()
	withQuote := mustClient(t, s, "Acme")
	withInvoice := mustClient(t, s, "Bright")
	withJob := mustClient(t, s, "Cobalt")

	q, err := s.CreateQuote(ctx, core.Quote{ClientID: withQuote.ID, Amount: core.Cents(500)})
	require.NoError(t, err)
	_, err = s.CreateInvoice(ctx, core.Invoice{ClientID: withInvoice.ID, Amount: core.Cents(500), IssuedAt: base})
	require.NoError(t, err)
	_, err = s.CreateJob(ctx, core.Job{ClientID: withJob.ID, Title: "Survey", ScheduledFor: base})
	require.NoError(t, err)

	for _, c := range []core.Client{withQuote, withInvoice, withJob} {
		assert.ErrorIs(t, s.DeleteClient(ctx, c.ID), store.ErrInUse, c.Name)
		_, err := s.GetClient(ctx, c.ID)
		assert.NoError(t, err, c.Name)
	}

	// The quote can still be invoiced once deletion was refused.
	_, inv, err := s.AcceptQuote(ctx, q.ID, base, base.AddDate(0, 0, 30))
	require.NoError(t, err)
	assert.Equal(t, withQuote.ID, inv.ClientID)
}

func testNumberingGaps(t *testing.T, s store.Store) {
	ctx := context.Background()
	c := mustClient(t, s, "Acme")

	manual, err := s.CreateQuote(ctx, core.Quote{ClientID: c.ID, Number: "Q-0002", Amount: core.Cents(100)})
	require.NoError(t, err)
	auto, err := s.CreateQuote(ctx, core.Quote{ClientID: c.ID, Amount: core.Cents(100)})
	require.NoError(t, err)
	assert.Equal(t, "Q-0003", auto.Number)

	big, err := s.CreateQuote(ctx, core.Quote{ClientID: c.ID, Number: "Q-9999", Amount: core.Cents(100)})
	require.NoError(t, err)
	next, err := s.CreateQuote(ctx, core.Quote{ClientID: c.ID, Amount: core.Cents(100)})
	require.NoError(t, err)
	assert.Equal(t, "Q-10000", next.Number)

	list, err := s.ListQuotes(ctx)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, []string{manual.ID, auto.ID, big.ID, next.ID},
		[]string{list[0].ID, list[1].ID, list[2].ID, list[3].ID})

	_, err = s.CreateInvoice(ctx, core.Invoice{ClientID: c.ID, Number: "INV-0001", Amount: core.Cents(100), IssuedAt: base})
	require.NoError(t, err)
	inv, err := s.CreateInvoice(ctx, core.Invoice{ClientID: c.ID, Amount: core.Cents(100), IssuedAt: base})
	require.NoError(t, err)
	assert.Equal(t, "INV-0002", inv.Number)
}

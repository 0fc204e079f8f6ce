package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iburimskiy/bizpanel/internal/core"
	"github.com/iburimskiy/bizpanel/internal/store"
)

// Store keeps everything in process memory. It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	clients  map[string]core.Client
	quotes   map[string]core.Quote
	invoices map[string]core.Invoice
	jobs     map[string]core.Job
	expenses map[string]core.Expense
	budgets  map[string]core.Budget
	members  map[string]core.TeamMember
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		clients:  map[string]core.Client{},
		quotes:   map[string]core.Quote{},
		invoices: map[string]core.Invoice{},
		jobs:     map[string]core.Job{},
		expenses: map[string]core.Expense{},
		budgets:  map[string]core.Budget{},
		members:  map[string]core.TeamMember{},
	}
}

func (s *Store) Close() error { return nil }

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, store.ErrNotFound)
}

// nextNumber continues after the highest sequence in use, including numbers
// supplied by callers. s.mu must be held.
func nextNumber[T any](items map[string]T, number func(T) string, prefix string) string {
	last := 0
	for _, it := range items {
		if n, ok := store.ParseNumber(prefix, number(it)); ok && n > last {
			last = n
		}
	}
	return store.FormatNumber(prefix, last+1)
}

func quoteNumber(q core.Quote) string { return q.Number }

func invoiceNumber(inv core.Invoice) string { return inv.Number }

func (s *Store) CreateClient(_ context.Context, c core.Client) (core.Client, error) {
	if err := c.Validate(); err != nil {
		return core.Client{}, err
	}
	c.ID = uuid.NewString()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.ID] = c
	return c, nil
}

func (s *Store) GetClient(_ context.Context, id string) (core.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clients[id]
	if !ok {
		return core.Client{}, notFound("client", id)
	}
	return c, nil
}

func (s *Store) ListClients(_ context.Context) ([]core.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Client, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) DeleteClient(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[id]; !ok {
		return notFound("client", id)
	}
	if s.clientInUse(id) {
		return fmt.Errorf("client %s: %w", id, store.ErrInUse)
	}
	delete(s.clients, id)
	return nil
}

// clientInUse reports whether anything refers to client id. s.mu must be held.
func (s *Store) clientInUse(id string) bool {
	for _, q := range s.quotes {
		if q.ClientID == id {
			return true
		}
	}
	for _, inv := range s.invoices {
		if inv.ClientID == id {
			return true
		}
	}
	for _, j := range s.jobs {
		if j.ClientID == id {
			return true
		}
	}
	return false
}

func (s *Store) CreateQuote(_ context.Context, q core.Quote) (core.Quote, error) {
	if q.Status == "" {
		q.Status = core.QuoteDraft
	}
	if err := q.Validate(); err != nil {
		return core.Quote{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[q.ClientID]; !ok {
		return core.Quote{}, notFound("client", q.ClientID)
	}
	q.ID = uuid.NewString()
	if q.Number == "" {
		q.Number = nextNumber(s.quotes, quoteNumber, "Q")
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}
	s.quotes[q.ID] = q
	return q, nil
}

func (s *Store) ListQuotes(_ context.Context) ([]core.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Quote, 0, len(s.quotes))
	for _, q := range s.quotes {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return store.NumberLess(out[i].Number, out[j].Number) })
	return out, nil
}

func (s *Store) SetQuoteStatus(_ context.Context, id string, status core.QuoteStatus, at time.Time) (core.Quote, error) {
	if !status.Valid() {
		return core.Quote{}, core.ErrInvalidStatus
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.quotes[id]
	if !ok {
		return core.Quote{}, notFound("quote", id)
	}
	if !q.Status.Open() {
		return q, fmt.Errorf("quote %s is %s: %w", q.Number, q.Status, core.ErrQuoteClosed)
	}
	q.Status = status
	if status == core.QuoteAccepted {
		q.AcceptedAt = at
	}
	s.quotes[id] = q
	return q, nil
}

func (s *Store) AcceptQuote(_ context.Context, id string, at, dueAt time.Time) (core.Quote, core.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.quotes[id]
	if !ok {
		return core.Quote{}, core.Invoice{}, notFound("quote", id)
	}
	if !q.Status.Open() {
		return q, core.Invoice{}, fmt.Errorf("quote %s is %s: %w", q.Number, q.Status, core.ErrQuoteClosed)
	}
	if _, ok := s.clients[q.ClientID]; !ok {
		return core.Quote{}, core.Invoice{}, notFound("client", q.ClientID)
	}
	inv := core.Invoice{
		ID:       uuid.NewString(),
		ClientID: q.ClientID,
		QuoteID:  q.ID,
		Number:   nextNumber(s.invoices, invoiceNumber, "INV"),
		Amount:   q.Amount,
		Status:   core.InvoiceUnpaid,
		IssuedAt: at,
		DueAt:    dueAt,
	}
	if err := inv.Validate(); err != nil {
		return core.Quote{}, core.Invoice{}, err
	}

	q.Status = core.QuoteAccepted
	q.AcceptedAt = at
	s.quotes[id] = q
	s.invoices[inv.ID] = inv
	return q, inv, nil
}

func (s *Store) CreateInvoice(_ context.Context, inv core.Invoice) (core.Invoice, error) {
	if inv.Status == "" {
		inv.Status = core.InvoiceUnpaid
	}
	if inv.IssuedAt.IsZero() {
		inv.IssuedAt = time.Now()
	}
	if err := inv.Validate(); err != nil {
		return core.Invoice{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[inv.ClientID]; !ok {
		return core.Invoice{}, notFound("client", inv.ClientID)
	}
	inv.ID = uuid.NewString()
	if inv.Number == "" {
		inv.Number = nextNumber(s.invoices, invoiceNumber, "INV")
	}
	s.invoices[inv.ID] = inv
	return inv, nil
}

func (s *Store) ListInvoices(_ context.Context) ([]core.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Invoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].IssuedAt.Equal(out[j].IssuedAt) {
			return out[i].IssuedAt.Before(out[j].IssuedAt)
		}
		return store.NumberLess(out[i].Number, out[j].Number)
	})
	return out, nil
}

func (s *Store) MarkInvoicePaid(_ context.Context, id string, at time.Time) (core.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invoices[id]
	if !ok {
		return core.Invoice{}, notFound("invoice", id)
	}
	if inv.Status == core.InvoicePaid {
		return inv, fmt.Errorf("invoice %s: %w", inv.Number, core.ErrAlreadyPaid)
	}
	inv.Status = core.InvoicePaid
	inv.PaidAt = at
	s.invoices[id] = inv
	return inv, nil
}

func (s *Store) CreateJob(_ context.Context, j core.Job) (core.Job, error) {
	if j.Status == "" {
		j.Status = core.JobScheduled
	}
	if err := j.Validate(); err != nil {
		return core.Job{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if j.ClientID != "" {
		if _, ok := s.clients[j.ClientID]; !ok {
			return core.Job{}, notFound("client", j.ClientID)
		}
	}
	j.ID = uuid.NewString()
	s.jobs[j.ID] = j
	return j, nil
}

func (s *Store) ListJobs(_ context.Context) ([]core.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledFor.Equal(out[j].ScheduledFor) {
			return out[i].ScheduledFor.Before(out[j].ScheduledFor)
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}

func (s *Store) SetJobStatus(_ context.Context, id string, status core.JobStatus) (core.Job, error) {
	if !status.Valid() {
		return core.Job{}, core.ErrInvalidStatus
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return core.Job{}, notFound("job", id)
	}
	j.Status = status
	s.jobs[id] = j
	return j, nil
}

func (s *Store) CreateExpense(_ context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	e.ID = uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses[e.ID] = e
	return e, nil
}

func (s *Store) ListExpenses(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Description < out[j].Description
	})
	return out, nil
}

func (s *Store) DeleteExpense(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expenses[id]; !ok {
		return notFound("expense", id)
	}
	delete(s.expenses, id)
	return nil
}

func (s *Store) SetBudget(_ context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets[b.Category] = b
	return nil
}

func (s *Store) ListBudgets(_ context.Context) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Budget, 0, len(s.budgets))
	for _, b := range s.budgets {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (s *Store) DeleteBudget(_ context.Context, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.budgets[category]; !ok {
		return notFound("budget", category)
	}
	delete(s.budgets, category)
	return nil
}

func (s *Store) AddMember(_ context.Context, m core.TeamMember) (core.TeamMember, error) {
	if m.Role == "" {
		m.Role = core.RoleMember
	}
	if err := m.Validate(); err != nil {
		return core.TeamMember{}, err
	}
	m.ID = uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[m.ID] = m
	return m, nil
}

func (s *Store) ListMembers(_ context.Context) ([]core.TeamMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.TeamMember, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) RemoveMember(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[id]; !ok {
		return notFound("team member", id)
	}
	delete(s.members, id)
	return nil
}

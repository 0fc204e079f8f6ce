// Package store defines the data-access interfaces the application depends on.
// Implementations live in the memory and sqlite subpackages.
package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iburimskiy/bizpanel/internal/core"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrInUse is returned when deleting a record other records still refer to.
	ErrInUse = errors.New("still in use")
)

type Clients interface {
	CreateClient(ctx context.Context, c core.Client) (core.Client, error)
	GetClient(ctx context.Context, id string) (core.Client, error)
	ListClients(ctx context.Context) ([]core.Client, error)
	// DeleteClient fails with ErrInUse while quotes, invoices or jobs refer
	// to the client.
	DeleteClient(ctx context.Context, id string) error
}

type Quotes interface {
	CreateQuote(ctx context.Context, q core.Quote) (core.Quote, error)
	ListQuotes(ctx context.Context) ([]core.Quote, error)
	// SetQuoteStatus fails with core.ErrQuoteClosed once a quote is accepted
	// or declined.
	SetQuoteStatus(ctx context.Context, id string, status core.QuoteStatus, at time.Time) (core.Quote, error)
	// AcceptQuote accepts an open quote and issues its invoice in one step.
	// Either both are stored or neither is.
	AcceptQuote(ctx context.Context, id string, at, dueAt time.Time) (core.Quote, core.Invoice, error)
}

type Invoices interface {
	CreateInvoice(ctx context.Context, inv core.Invoice) (core.Invoice, error)
	ListInvoices(ctx context.Context) ([]core.Invoice, error)
	// MarkInvoicePaid fails with core.ErrAlreadyPaid for a paid invoice.
	MarkInvoicePaid(ctx context.Context, id string, at time.Time) (core.Invoice, error)
}

type Jobs interface {
	CreateJob(ctx context.Context, j core.Job) (core.Job, error)
	ListJobs(ctx context.Context) ([]core.Job, error)
	SetJobStatus(ctx context.Context, id string, status core.JobStatus) (core.Job, error)
}

type Expenses interface {
	CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error)
	ListExpenses(ctx context.Context) ([]core.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
}

type Budgets interface {
	// SetBudget inserts or replaces the budget of a category.
	SetBudget(ctx context.Context, b core.Budget) error
	ListBudgets(ctx context.Context) ([]core.Budget, error)
	DeleteBudget(ctx context.Context, category string) error
}

type Team interface {
	AddMember(ctx context.Context, m core.TeamMember) (core.TeamMember, error)
	ListMembers(ctx context.Context) ([]core.TeamMember, error)
	RemoveMember(ctx context.Context, id string) error
}

// Store is the full data-access surface.
type Store interface {
	Clients
	Quotes
	Invoices
	Jobs
	Expenses
	Budgets
	Team
	Close() error
}

// FormatNumber builds a document number such as "INV-0007".
func FormatNumber(prefix string, n int) string {
	return fmt.Sprintf("%s-%04d", prefix, n)
}

// ParseNumber extracts the sequence of a number built by FormatNumber.
func ParseNumber(prefix, number string) (int, bool) {
	rest, ok := strings.CutPrefix(number, prefix+"-")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// NumberLess orders document numbers by sequence, so "Q-10000" sorts after
// "Q-9999".
func NumberLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

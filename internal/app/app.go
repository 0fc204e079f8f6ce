// Package app holds the signed-in session state and the business actions the
// dashboard invokes.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/iburimskiy/bizpanel/internal/core"
	"github.com/iburimskiy/bizpanel/internal/logging"
	"github.com/iburimskiy/bizpanel/internal/store"
)

var (
	ErrNotSignedIn = errors.New("not signed in")
	ErrInvalidUser = errors.New("user is required")
	ErrQuoteClosed = core.ErrQuoteClosed
)

// Celebrator is notified after a successful action worth celebrating.
// Implementations must not block.
type Celebrator interface {
	Celebrate()
}

type CelebratorFunc func()

func (f CelebratorFunc) Celebrate() { f() }

// App is the application state of one session. Collections are loaded on
// SignIn and cleared on SignOut. It is safe for concurrent use.
type App struct {
	store store.Store
	party Celebrator
	clk   clock.Clock
	log   logrus.FieldLogger

	mu       sync.RWMutex
	user     string
	clients  []core.Client
	quotes   []core.Quote
	invoices []core.Invoice
	jobs     []core.Job
	expenses []core.Expense
	budgets  []core.Budget
	team     []core.TeamMember
}

type Option func(*App)

func WithClock(c clock.Clock) Option { return func(a *App) { a.clk = c } }

func WithLogger(l logrus.FieldLogger) Option { return func(a *App) { a.log = l } }

func New(s store.Store, party Celebrator, opts ...Option) *App {
	a := &App{store: s, party: party, clk: clock.New()}
	for _, o := range opts {
		o(a)
	}
	if a.log == nil {
		a.log = logging.Discard()
	}
	if a.party == nil {
		a.party = CelebratorFunc(func() {})
	}
	return a
}

// SignIn starts a session for user and loads every collection.
func (a *App) SignIn(ctx context.Context, user string) error {
	user = strings.TrimSpace(user)
	if user == "" {
		return ErrInvalidUser
	}

	var (
		clients  []core.Client
		quotes   []core.Quote
		invoices []core.Invoice
		jobs     []core.Job
		expenses []core.Expense
		budgets  []core.Budget
		team     []core.TeamMember
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { clients, err = a.store.ListClients(gctx); return })
	g.Go(func() (err error) { quotes, err = a.store.ListQuotes(gctx); return })
	g.Go(func() (err error) { invoices, err = a.store.ListInvoices(gctx); return })
	g.Go(func() (err error) { jobs, err = a.store.ListJobs(gctx); return })
	g.Go(func() (err error) { expenses, err = a.store.ListExpenses(gctx); return })
	g.Go(func() (err error) { budgets, err = a.store.ListBudgets(gctx); return })
	g.Go(func() (err error) { team, err = a.store.ListMembers(gctx); return })
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load session data: %w", err)
	}

	a.mu.Lock()
	a.user = user
	a.clients, a.quotes, a.invoices, a.jobs = clients, quotes, invoices, jobs
	a.expenses, a.budgets, a.team = expenses, budgets, team
	a.mu.Unlock()

	a.log.WithFields(logrus.Fields{
		"user":     user,
		"clients":  len(clients),
		"invoices": len(invoices),
	}).Info("signed in")
	return nil
}

// SignOut drops the session and everything loaded for it.
func (a *App) SignOut() {
	a.mu.Lock()
	user := a.user
	a.user = ""
	a.clients, a.quotes, a.invoices, a.jobs = nil, nil, nil, nil
	a.expenses, a.budgets, a.team = nil, nil, nil
	a.mu.Unlock()

	if user != "" {
		a.log.WithField("user", user).Info("signed out")
	}
}

func (a *App) User() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user
}

func (a *App) SignedIn() bool { return a.User() != "" }

func (a *App) requireSession() error {
	if !a.SignedIn() {
		return ErrNotSignedIn
	}
	return nil
}

// Reload refreshes the collections of the current session.
func (a *App) Reload(ctx context.Context) error {
	user := a.User()
	if user == "" {
		return ErrNotSignedIn
	}
	return a.SignIn(ctx, user)
}

func (a *App) Clients() []core.Client {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]core.Client(nil), a.clients...)
}

func (a *App) Quotes() []core.Quote {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]core.Quote(nil), a.quotes...)
}

func (a *App) Invoices() []core.Invoice {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]core.Invoice(nil), a.invoices...)
}

func (a *App) Jobs() []core.Job {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]core.Job(nil), a.jobs...)
}

func (a *App) Expenses() []core.Expense {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]core.Expense(nil), a.expenses...)
}

func (a *App) Budgets() []core.Budget {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]core.Budget(nil), a.budgets...)
}

func (a *App) Team() []core.TeamMember {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]core.TeamMember(nil), a.team...)
}

// ClientName resolves a client id for display.
func (a *App) ClientName(id string) string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, c := range a.clients {
		if c.ID == id {
			return c.Name
		}
	}
	return "?"
}

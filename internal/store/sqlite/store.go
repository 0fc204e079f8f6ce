// Package sqlite is the on-disk store, backed by modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/iburimskiy/bizpanel/internal/core"
	"github.com/iburimskiy/bizpanel/internal/logging"
	"github.com/iburimskiy/bizpanel/internal/store"
)

type Store struct {
	db  *sql.DB
	log logrus.FieldLogger
}

var _ store.Store = (*Store)(nil)

// Open creates the database file if needed and applies pending migrations.
func Open(dbPath string, log logrus.FieldLogger) (*Store, error) {
	if log == nil {
		log = logging.Discard()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// sqlite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, err
	}

	log.WithField("path", dbPath).Info("sqlite store opened")
	return &Store{db: db, log: log}, nil
}

// dsn turns on foreign key enforcement for every pooled connection.
func dsn(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + "_pragma=foreign_keys(1)"
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromUnix(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, store.ErrNotFound)
}

// checkAffected maps "no row changed" to ErrNotFound.
func checkAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound(kind, id)
	}
	return nil
}

func (s *Store) clientExists(ctx context.Context, q interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}, id string) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM clients WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound("client", id)
	}
	if err != nil {
		return fmt.Errorf("lookup client: %w", err)
	}
	return nil
}

// nextNumber continues after the highest sequence in use in table, including
// numbers supplied by callers.
func nextNumber(ctx context.Context, tx *sql.Tx, table, prefix string) (string, error) {
	var last int
	err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(CAST(SUBSTR(number, ?) AS INTEGER)), 0) FROM `+table+` WHERE number GLOB ?`,
		len(prefix)+2, prefix+"-[0-9]*").Scan(&last)
	if err != nil {
		return "", fmt.Errorf("last %s number: %w", table, err)
	}
	return store.FormatNumber(prefix, last+1), nil
}

// Clients

func (s *Store) CreateClient(ctx context.Context, c core.Client) (core.Client, error) {
	if err := c.Validate(); err != nil {
		return core.Client{}, err
	}
	c.ID = uuid.NewString()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO clients (id, name, email, phone, address, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.Phone, c.Address, toUnix(c.CreatedAt))
	if err != nil {
		return core.Client{}, fmt.Errorf("insert client: %w", err)
	}
	s.log.WithField("id", c.ID).Debug("client saved")
	return c, nil
}

func scanClient(sc interface{ Scan(...any) error }) (core.Client, error) {
	var c core.Client
	var created int64
	if err := sc.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &created); err != nil {
		return core.Client{}, err
	}
	c.CreatedAt = fromUnix(created)
	return c, nil
}

const clientCols = `id, name, email, phone, address, created_at`

func (s *Store) GetClient(ctx context.Context, id string) (core.Client, error) {
	c, err := scanClient(s.db.QueryRowContext(ctx, `SELECT `+clientCols+` FROM clients WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return core.Client{}, notFound("client", id)
	}
	if err != nil {
		return core.Client{}, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func (s *Store) ListClients(ctx context.Context) ([]core.Client, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+clientCols+` FROM clients ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	out := []core.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) DeleteClient(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var refs int
	err = tx.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM quotes WHERE client_id = ?) +
		(SELECT COUNT(*) FROM invoices WHERE client_id = ?) +
		(SELECT COUNT(*) FROM jobs WHERE client_id = ?)`, id, id, id).Scan(&refs)
	if err != nil {
		return fmt.Errorf("count client references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("client %s: %w", id, store.ErrInUse)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if err := checkAffected(res, "client", id); err != nil {
		return err
	}
	return tx.Commit()
}

// Quotes

const quoteCols = `id, client_id, number, title, amount_cents, status, created_at, accepted_at`

func scanQuote(sc interface{ Scan(...any) error }) (core.Quote, error) {
	var q core.Quote
	var status string
	var created, accepted int64
	if err := sc.Scan(&q.ID, &q.ClientID, &q.Number, &q.Title, &q.Amount.Cents, &status, &created, &accepted); err != nil {
		return core.Quote{}, err
	}
	q.Status = core.QuoteStatus(status)
	q.CreatedAt = fromUnix(created)
	q.AcceptedAt = fromUnix(accepted)
	return q, nil
}

func (s *Store) CreateQuote(ctx context.Context, q core.Quote) (core.Quote, error) {
	if q.Status == "" {
		q.Status = core.QuoteDraft
	}
	if err := q.Validate(); err != nil {
		return core.Quote{}, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Quote{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := s.clientExists(ctx, tx, q.ClientID); err != nil {
		return core.Quote{}, err
	}
	q.ID = uuid.NewString()
	if q.Number == "" {
		if q.Number, err = nextNumber(ctx, tx, "quotes", "Q"); err != nil {
			return core.Quote{}, err
		}
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO quotes (`+quoteCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.ClientID, q.Number, q.Title, q.Amount.Cents, string(q.Status), toUnix(q.CreatedAt), toUnix(q.AcceptedAt))
	if err != nil {
		return core.Quote{}, fmt.Errorf("insert quote: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return core.Quote{}, fmt.Errorf("commit: %w", err)
	}
	return q, nil
}

func (s *Store) ListQuotes(ctx context.Context) ([]core.Quote, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+quoteCols+` FROM quotes ORDER BY length(number), number`)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()
	out := []core.Quote{}
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func getQuote(ctx context.Context, tx *sql.Tx, id string) (core.Quote, error) {
	q, err := scanQuote(tx.QueryRowContext(ctx, `SELECT `+quoteCols+` FROM quotes WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return core.Quote{}, notFound("quote", id)
	}
	if err != nil {
		return core.Quote{}, fmt.Errorf("get quote: %w", err)
	}
	return q, nil
}

func (s *Store) SetQuoteStatus(ctx context.Context, id string, status core.QuoteStatus, at time.Time) (core.Quote, error) {
	if !status.Valid() {
		return core.Quote{}, core.ErrInvalidStatus
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Quote{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	q, err := getQuote(ctx, tx, id)
	if err != nil {
		return core.Quote{}, err
	}
	if !q.Status.Open() {
		return q, fmt.Errorf("quote %s is %s: %w", q.Number, q.Status, core.ErrQuoteClosed)
	}
	q.Status = status
	if status == core.QuoteAccepted {
		q.AcceptedAt = fromUnix(toUnix(at))
	}
	if _, err := tx.ExecContext(ctx, `UPDATE quotes SET status = ?, accepted_at = ? WHERE id = ?`,
		string(q.Status), toUnix(q.AcceptedAt), id); err != nil {
		return core.Quote{}, fmt.Errorf("update quote: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return core.Quote{}, fmt.Errorf("commit: %w", err)
	}
	return q, nil
}

func (s *Store) AcceptQuote(ctx context.Context, id string, at, dueAt time.Time) (core.Quote, core.Invoice, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Quote{}, core.Invoice{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	q, err := getQuote(ctx, tx, id)
	if err != nil {
		return core.Quote{}, core.Invoice{}, err
	}
	// The status filter makes a concurrent accept from another connection lose.
	res, err := tx.ExecContext(ctx,
		`UPDATE quotes SET status = ?, accepted_at = ? WHERE id = ? AND status IN (?, ?)`,
		string(core.QuoteAccepted), toUnix(at), id, string(core.QuoteDraft), string(core.QuoteSent))
	if err != nil {
		return core.Quote{}, core.Invoice{}, fmt.Errorf("accept quote: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return core.Quote{}, core.Invoice{}, fmt.Errorf("rows affected: %w", err)
	} else if n == 0 {
		return q, core.Invoice{}, fmt.Errorf("quote %s is %s: %w", q.Number, q.Status, core.ErrQuoteClosed)
	}
	if err := s.clientExists(ctx, tx, q.ClientID); err != nil {
		return core.Quote{}, core.Invoice{}, err
	}

	inv := core.Invoice{
		ID:       uuid.NewString(),
		ClientID: q.ClientID,
		QuoteID:  q.ID,
		Amount:   q.Amount,
		Status:   core.InvoiceUnpaid,
		IssuedAt: at,
		DueAt:    dueAt,
	}
	if err := inv.Validate(); err != nil {
		return core.Quote{}, core.Invoice{}, err
	}
	if inv.Number, err = nextNumber(ctx, tx, "invoices", "INV"); err != nil {
		return core.Quote{}, core.Invoice{}, err
	}
	if err := insertInvoice(ctx, tx, inv); err != nil {
		return core.Quote{}, core.Invoice{}, err
	}
	if err := tx.Commit(); err != nil {
		return core.Quote{}, core.Invoice{}, fmt.Errorf("commit: %w", err)
	}

	q.Status = core.QuoteAccepted
	q.AcceptedAt = fromUnix(toUnix(at))
	inv.IssuedAt = fromUnix(toUnix(at))
	inv.DueAt = fromUnix(toUnix(dueAt))
	s.log.WithFields(logrus.Fields{"quote": q.Number, "invoice": inv.Number}).Debug("quote accepted")
	return q, inv, nil
}

// Invoices

const invoiceCols = `id, client_id, quote_id, number, amount_cents, status, issued_at, due_at, paid_at`

func scanInvoice(sc interface{ Scan(...any) error }) (core.Invoice, error) {
	var inv core.Invoice
	var status string
	var issued, due, paid int64
	if err := sc.Scan(&inv.ID, &inv.ClientID, &inv.QuoteID, &inv.Number, &inv.Amount.Cents, &status, &issued, &due, &paid); err != nil {
		return core.Invoice{}, err
	}
	inv.Status = core.InvoiceStatus(status)
	inv.IssuedAt = fromUnix(issued)
	inv.DueAt = fromUnix(due)
	inv.PaidAt = fromUnix(paid)
	return inv, nil
}

func (s *Store) CreateInvoice(ctx context.Context, inv core.Invoice) (core.Invoice, error) {
	if inv.Status == "" {
		inv.Status = core.InvoiceUnpaid
	}
	if inv.IssuedAt.IsZero() {
		inv.IssuedAt = time.Now()
	}
	if err := inv.Validate(); err != nil {
		return core.Invoice{}, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Invoice{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := s.clientExists(ctx, tx, inv.ClientID); err != nil {
		return core.Invoice{}, err
	}
	inv.ID = uuid.NewString()
	if inv.Number == "" {
		if inv.Number, err = nextNumber(ctx, tx, "invoices", "INV"); err != nil {
			return core.Invoice{}, err
		}
	}
	if err := insertInvoice(ctx, tx, inv); err != nil {
		return core.Invoice{}, err
	}
	if err := tx.Commit(); err != nil {
		return core.Invoice{}, fmt.Errorf("commit: %w", err)
	}
	s.log.WithFields(logrus.Fields{"number": inv.Number, "amount": inv.Amount.String()}).Debug("invoice saved")
	return inv, nil
}

func insertInvoice(ctx context.Context, tx *sql.Tx, inv core.Invoice) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO invoices (`+invoiceCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.ClientID, inv.QuoteID, inv.Number, inv.Amount.Cents, string(inv.Status),
		toUnix(inv.IssuedAt), toUnix(inv.DueAt), toUnix(inv.PaidAt))
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (s *Store) ListInvoices(ctx context.Context) ([]core.Invoice, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+invoiceCols+` FROM invoices ORDER BY issued_at, length(number), number`)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	out := []core.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (s *Store) MarkInvoicePaid(ctx context.Context, id string, at time.Time) (core.Invoice, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Invoice{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	inv, err := scanInvoice(tx.QueryRowContext(ctx, `SELECT `+invoiceCols+` FROM invoices WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return core.Invoice{}, notFound("invoice", id)
	}
	if err != nil {
		return core.Invoice{}, fmt.Errorf("get invoice: %w", err)
	}
	if inv.Status == core.InvoicePaid {
		return inv, fmt.Errorf("invoice %s: %w", inv.Number, core.ErrAlreadyPaid)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE invoices SET status = ?, paid_at = ? WHERE id = ?`,
		string(core.InvoicePaid), toUnix(at), id); err != nil {
		return core.Invoice{}, fmt.Errorf("update invoice: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return core.Invoice{}, fmt.Errorf("commit: %w", err)
	}
	inv.Status = core.InvoicePaid
	inv.PaidAt = fromUnix(toUnix(at))
	return inv, nil
}

// Jobs

const jobCols = `id, client_id, title, status, scheduled_for`

func scanJob(sc interface{ Scan(...any) error }) (core.Job, error) {
	var j core.Job
	var status string
	var when int64
	if err := sc.Scan(&j.ID, &j.ClientID, &j.Title, &status, &when); err != nil {
		return core.Job{}, err
	}
	j.Status = core.JobStatus(status)
	j.ScheduledFor = fromUnix(when)
	return j, nil
}

func (s *Store) CreateJob(ctx context.Context, j core.Job) (core.Job, error) {
	if j.Status == "" {
		j.Status = core.JobScheduled
	}
	if err := j.Validate(); err != nil {
		return core.Job{}, err
	}
	if j.ClientID != "" {
		if err := s.clientExists(ctx, s.db, j.ClientID); err != nil {
			return core.Job{}, err
		}
	}
	j.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx, `INSERT INTO jobs (`+jobCols+`) VALUES (?, ?, ?, ?, ?)`,
		j.ID, j.ClientID, j.Title, string(j.Status), toUnix(j.ScheduledFor))
	if err != nil {
		return core.Job{}, fmt.Errorf("insert job: %w", err)
	}
	return j, nil
}

func (s *Store) ListJobs(ctx context.Context) ([]core.Job, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+jobCols+` FROM jobs ORDER BY scheduled_for, title`)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()
	out := []core.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (s *Store) SetJobStatus(ctx context.Context, id string, status core.JobStatus) (core.Job, error) {
	if !status.Valid() {
		return core.Job{}, core.ErrInvalidStatus
	}
	res, err := s.db.ExecContext(ctx, `UPDATE jobs SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return core.Job{}, fmt.Errorf("update job: %w", err)
	}
	if err := checkAffected(res, "job", id); err != nil {
		return core.Job{}, err
	}
	j, err := scanJob(s.db.QueryRowContext(ctx, `SELECT `+jobCols+` FROM jobs WHERE id = ?`, id))
	if err != nil {
		return core.Job{}, fmt.Errorf("reload job: %w", err)
	}
	return j, nil
}

// Expenses

func (s *Store) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	e.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (id, category, description, amount_cents, spent_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Category, e.Description, e.Amount.Cents, toUnix(e.Date))
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}
	s.log.WithFields(logrus.Fields{"category": e.Category, "amount": e.Amount.String()}).Debug("expense saved")
	return e, nil
}

func (s *Store) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, description, amount_cents, spent_at FROM expenses ORDER BY spent_at, description`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	out := []core.Expense{}
	for rows.Next() {
		var e core.Expense
		var spent int64
		if err := rows.Scan(&e.ID, &e.Category, &e.Description, &e.Amount.Cents, &spent); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Date = fromUnix(spent)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return checkAffected(res, "expense", id)
}

// Budgets

func (s *Store) SetBudget(ctx context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budgets (category, limit_cents) VALUES (?, ?)
		 ON CONFLICT(category) DO UPDATE SET limit_cents = excluded.limit_cents`,
		b.Category, b.Limit.Cents)
	if err != nil {
		return fmt.Errorf("upsert budget: %w", err)
	}
	return nil
}

func (s *Store) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, limit_cents FROM budgets ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()
	out := []core.Budget{}
	for rows.Next() {
		var b core.Budget
		if err := rows.Scan(&b.Category, &b.Limit.Cents); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) DeleteBudget(ctx context.Context, category string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE category = ?`, category)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return checkAffected(res, "budget", category)
}

// Team

func (s *Store) AddMember(ctx context.Context, m core.TeamMember) (core.TeamMember, error) {
	if m.Role == "" {
		m.Role = core.RoleMember
	}
	if err := m.Validate(); err != nil {
		return core.TeamMember{}, err
	}
	m.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx, `INSERT INTO team_members (id, name, email, role) VALUES (?, ?, ?, ?)`,
		m.ID, m.Name, m.Email, string(m.Role))
	if err != nil {
		return core.TeamMember{}, fmt.Errorf("insert team member: %w", err)
	}
	return m, nil
}

func (s *Store) ListMembers(ctx context.Context) ([]core.TeamMember, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, email, role FROM team_members ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()
	out := []core.TeamMember{}
	for rows.Next() {
		var m core.TeamMember
		var role string
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &role); err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		m.Role = core.Role(role)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) RemoveMember(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM team_members WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}
	return checkAffected(res, "team member", id)
}

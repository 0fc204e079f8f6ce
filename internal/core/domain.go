// Package core holds the business entities and their validation rules.
package core

import (
	"errors"
	"strings"
	"time"
)

const (
	QuoteDraft    QuoteStatus = "draft"
	QuoteSent     QuoteStatus = "sent"
	QuoteAccepted QuoteStatus = "accepted"
	QuoteDeclined QuoteStatus = "declined"

	InvoiceUnpaid InvoiceStatus = "unpaid"
	InvoicePaid   InvoiceStatus = "paid"

	JobScheduled  JobStatus = "scheduled"
	JobInProgress JobStatus = "in_progress"
	JobDone       JobStatus = "done"

	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

type (
	QuoteStatus   string
	InvoiceStatus string
	JobStatus     string
	Role          string

	Client struct {
		ID        string
		Name      string
		Email     string
		Phone     string
		Address   string
		CreatedAt time.Time
	}

	Quote struct {
		ID         string
		ClientID   string
		Number     string
		Title      string
		Amount     Money
		Status     QuoteStatus
		CreatedAt  time.Time
		AcceptedAt time.Time
	}

	Invoice struct {
		ID       string
		ClientID string
		QuoteID  string // empty when not issued from a quote
		Number   string
		Amount   Money
		Status   InvoiceStatus
		IssuedAt time.Time
		DueAt    time.Time
		PaidAt   time.Time
	}

	Job struct {
		ID           string
		ClientID     string
		Title        string
		Status       JobStatus
		ScheduledFor time.Time
	}

	Expense struct {
		ID          string
		Category    string
		Description string
		Amount      Money
		Date        time.Time
	}

	// Budget is a monthly spending limit for one expense category.
	Budget struct {
		Category string
		Limit    Money
	}

	TeamMember struct {
		ID    string
		Name  string
		Email string
		Role  Role
	}
)

var (
	ErrInvalidName     = errors.New("name is required")
	ErrInvalidClient   = errors.New("client is required")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCategory = errors.New("category is required")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidDate     = errors.New("invalid date")
	ErrAlreadyPaid     = errors.New("invoice already paid")
	ErrQuoteClosed     = errors.New("quote already closed")
)

func (c Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrInvalidName
	}
	return nil
}

func (q Quote) Validate() error {
	if strings.TrimSpace(q.ClientID) == "" {
		return ErrInvalidClient
	}
	if q.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if !q.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// Open reports whether the quote can still be accepted or declined.
func (s QuoteStatus) Open() bool {
	return s == QuoteDraft || s == QuoteSent
}

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteDraft, QuoteSent, QuoteAccepted, QuoteDeclined:
		return true
	}
	return false
}

func (i Invoice) Validate() error {
	if strings.TrimSpace(i.ClientID) == "" {
		return ErrInvalidClient
	}
	if i.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if i.Status != InvoiceUnpaid && i.Status != InvoicePaid {
		return ErrInvalidStatus
	}
	if !i.DueAt.IsZero() && i.DueAt.Before(i.IssuedAt) {
		return ErrInvalidDate
	}
	return nil
}

// Overdue reports whether the invoice is unpaid past its due date.
func (i Invoice) Overdue(now time.Time) bool {
	return i.Status == InvoiceUnpaid && !i.DueAt.IsZero() && i.DueAt.Before(now)
}

func (j Job) Validate() error {
	if strings.TrimSpace(j.Title) == "" {
		return ErrInvalidName
	}
	if !j.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

func (s JobStatus) Valid() bool {
	switch s {
	case JobScheduled, JobInProgress, JobDone:
		return true
	}
	return false
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Category) == "" {
		return ErrInvalidCategory
	}
	if e.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrInvalidCategory
	}
	if b.Limit.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (m TeamMember) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrInvalidName
	}
	switch m.Role {
	case RoleOwner, RoleAdmin, RoleMember:
		return nil
	}
	return ErrInvalidRole
}

package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "12.34", Cents(1234).String())
	assert.Equal(t, "0.05", Cents(5).String())
	assert.Equal(t, "-3.10", Cents(-310).String())
	assert.Equal(t, "7.50", Cents(500).Add(Cents(250)).String())
	assert.Equal(t, "2.50", Cents(500).Sub(Cents(250)).String())
}

func TestValidate(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.ErrorIs(t, Client{}.Validate(), ErrInvalidName)
	assert.NoError(t, Client{Name: "Acme"}.Validate())

	assert.ErrorIs(t, Quote{Amount: Cents(1), Status: QuoteDraft}.Validate(), ErrInvalidClient)
	assert.ErrorIs(t, Quote{ClientID: "c", Status: QuoteDraft}.Validate(), ErrInvalidAmount)
	assert.ErrorIs(t, Quote{ClientID: "c", Amount: Cents(1), Status: "maybe"}.Validate(), ErrInvalidStatus)

	inv := Invoice{ClientID: "c", Amount: Cents(100), Status: InvoiceUnpaid, IssuedAt: now, DueAt: now.AddDate(0, 0, -1)}
	assert.ErrorIs(t, inv.Validate(), ErrInvalidDate)
	inv.DueAt = now.AddDate(0, 0, 30)
	assert.NoError(t, inv.Validate())

	assert.ErrorIs(t, Expense{Amount: Cents(1), Date: now}.Validate(), ErrInvalidCategory)
	assert.ErrorIs(t, Expense{Category: "Fuel", Amount: Cents(1)}.Validate(), ErrInvalidDate)
	assert.ErrorIs(t, Budget{Category: "Fuel"}.Validate(), ErrInvalidAmount)
	assert.ErrorIs(t, Job{Title: "Fit kitchen", Status: "later"}.Validate(), ErrInvalidStatus)
	assert.ErrorIs(t, TeamMember{Name: "Ann", Role: "boss"}.Validate(), ErrInvalidRole)
	assert.NoError(t, TeamMember{Name: "Ann", Role: RoleAdmin}.Validate())
}

func TestInvoiceOverdue(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	inv := Invoice{Status: InvoiceUnpaid, DueAt: now.AddDate(0, 0, -1)}
	assert.True(t, inv.Overdue(now))

	inv.Status = InvoicePaid
	assert.False(t, inv.Overdue(now))

	assert.False(t, Invoice{Status: InvoiceUnpaid}.Overdue(now))
}

func TestQuoteStatusOpen(t *testing.T) {
	assert.True(t, QuoteDraft.Open())
	assert.True(t, QuoteSent.Open())
	assert.False(t, QuoteAccepted.Open())
	assert.False(t, QuoteDeclined.Open())
}

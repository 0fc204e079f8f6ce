package app

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTabCycle(t *testing.T) {
	tab := TabInvoices
	seen := map[Tab]bool{}
	for range Tabs {
		seen[tab] = true
		tab = tab.Next()
	}
	assert.Equal(t, TabInvoices, tab)
	assert.Len(t, seen, len(Tabs))
	assert.Equal(t, "Budget", TabBudget.String())
}

func TestRows(t *testing.T) {
	a, _, _ := newTestApp(t)
	require.NoError(t, a.SeedDemo(context.Background()))

	inv := a.Rows(TabInvoices, testNow)
	require.Len(t, inv, 2)
	assert.Equal(t, ToneWarn, inv[0].Tone)
	assert.Contains(t, inv[0].Text, "Acme Roofing")
	assert.Contains(t, inv[0].Text, "1250.00")
	assert.Contains(t, inv[0].Text, "OVERDUE")
	assert.Equal(t, "INV-0001", inv[0].Label)
	assert.Equal(t, ToneNormal, inv[1].Tone)

	budget := a.Rows(TabBudget, testNow)
	require.Len(t, budget, 2)
	assert.True(t, strings.HasPrefix(budget[1].Text, "Tools"))
	assert.Equal(t, ToneWarn, budget[1].Tone)
	assert.InDelta(t, 159.0, budget[1].Percent, 1e-9)

	quotes := a.Rows(TabQuotes, testNow)
	require.Len(t, quotes, 1)
	assert.Equal(t, "Q-0001", quotes[0].Label)
	assert.Len(t, a.Rows(TabClients, testNow), 2)
	assert.Len(t, a.Rows(TabJobs, testNow), 1)
	assert.Len(t, a.Rows(TabTeam, testNow), 1)
}

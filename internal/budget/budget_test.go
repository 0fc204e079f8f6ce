package budget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/bizpanel/internal/core"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2026, m, d, 12, 0, 0, 0, time.UTC)
}

func sampleExpenses() []core.Expense {
	return []core.Expense{
		{Category: "Fuel", Amount: core.Cents(4000), Date: day(time.March, 2)},
		{Category: "Fuel", Amount: core.Cents(3500), Date: day(time.March, 20)},
		{Category: "Tools", Amount: core.Cents(12000), Date: day(time.March, 5)},
		{Category: "Fuel", Amount: core.Cents(9900), Date: day(time.February, 27)},
		{Category: "Lunch", Amount: core.Cents(1250), Date: day(time.March, 8)},
	}
}

func TestSpentByCategory(t *testing.T) {
	got := SpentByCategory(sampleExpenses(), 2026, time.March)
	assert.Equal(t, map[string]core.Money{
		"Fuel":  core.Cents(7500),
		"Tools": core.Cents(12000),
		"Lunch": core.Cents(1250),
	}, got)
}

func TestTrack(t *testing.T) {
	budgets := []core.Budget{
		{Category: "Tools", Limit: core.Cents(10000)},
		{Category: "Fuel", Limit: core.Cents(15000)},
		{Category: "Office", Limit: core.Cents(5000)},
	}
	r := Track(budgets, sampleExpenses(), 2026, time.March)

	require.Len(t, r.Lines, 3)
	assert.Equal(t, []string{"Fuel", "Office", "Tools"},
		[]string{r.Lines[0].Category, r.Lines[1].Category, r.Lines[2].Category})

	fuel := r.Lines[0]
	assert.Equal(t, core.Cents(7500), fuel.Spent)
	assert.Equal(t, core.Cents(7500), fuel.Remaining)
	assert.InDelta(t, 50.0, fuel.PercentUsed, 1e-9)
	assert.False(t, fuel.Over)

	office := r.Lines[1]
	assert.Equal(t, core.Cents(0), office.Spent)
	assert.Equal(t, 0.0, office.PercentUsed)

	tools := r.Lines[2]
	assert.True(t, tools.Over)
	assert.Equal(t, core.Cents(-2000), tools.Remaining)
	assert.InDelta(t, 120.0, tools.PercentUsed, 1e-9)

	assert.Equal(t, core.Cents(30000), r.Limit)
	assert.Equal(t, core.Cents(19500), r.Spent)
	assert.Equal(t, core.Cents(1250), r.Unbudgeted)

	over := r.OverBudget()
	require.Len(t, over, 1)
	assert.Equal(t, "Tools", over[0].Category)
}

func TestTrackEmpty(t *testing.T) {
	r := Track(nil, nil, 2026, time.January)
	assert.Empty(t, r.Lines)
	assert.Equal(t, core.Money{}, r.Spent)
	assert.Empty(t, r.OverBudget())
}

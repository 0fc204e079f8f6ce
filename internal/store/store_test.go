package store

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumbers(t *testing.T) {
	assert.Equal(t, "INV-0007", FormatNumber("INV", 7))
	assert.Equal(t, "Q-12345", FormatNumber("Q", 12345))

	n, ok := ParseNumber("INV", "INV-0042")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	for _, bad := range []string{"Q-0042", "INV-", "INV-4x", "INV0042", ""} {
		_, ok := ParseNumber("INV", bad)
		assert.False(t, ok, bad)
	}
}

func TestNumberLess(t *testing.T) {
	got := []string{"Q-10000", "Q-0002", "Q-9999", "Q-0010"}
	sort.Slice(got, func(i, j int) bool { return NumberLess(got[i], got[j]) })
	assert.Equal(t, []string{"Q-0002", "Q-0010", "Q-9999", "Q-10000"}, got)
}

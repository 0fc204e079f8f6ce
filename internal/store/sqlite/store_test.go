package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/bizpanel/internal/core"
	"github.com/iburimskiy/bizpanel/internal/store"
	"github.com/iburimskiy/bizpanel/internal/store/storetest"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		s, err := Open(filepath.Join(t.TempDir(), "bizpanel.db"), nil)
		require.NoError(t, err)
		return s
	})
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bizpanel.db")
	ctx := context.Background()

	s, err := Open(path, nil)
	require.NoError(t, err)
	c, err := s.CreateClient(ctx, core.Client{Name: "Acme"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Migrations are idempotent on an up-to-date schema.
	s, err = Open(path, nil)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.GetClient(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
	assert.True(t, got.CreatedAt.Equal(c.CreatedAt))
}

func TestForeignKeysEnforced(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "bizpanel.db"), nil)
	require.NoError(t, err)
	defer s.Close()

	var on int
	require.NoError(t, s.db.QueryRow(`PRAGMA foreign_keys`).Scan(&on))
	assert.Equal(t, 1, on)

	_, err = s.db.Exec(`INSERT INTO invoices (`+invoiceCols+`) VALUES ('i1', 'nobody', '', 'INV-0001', 100, 'unpaid', 1, 0, 0)`)
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "/tmp/a.db?_pragma=foreign_keys(1)", dsn("/tmp/a.db"))
	assert.Equal(t, "file:a.db?mode=rwc&_pragma=foreign_keys(1)", dsn("file:a.db?mode=rwc"))
}

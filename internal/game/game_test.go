package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/bizpanel/internal/celebrate"
	"github.com/iburimskiy/bizpanel/internal/config"
	"github.com/iburimskiy/bizpanel/internal/logging"
)

func TestKeyEdgesFireOncePerPress(t *testing.T) {
	e := keyEdges{}
	assert.True(t, e.update(ebiten.KeyP, true))
	assert.False(t, e.update(ebiten.KeyP, true))
	assert.False(t, e.update(ebiten.KeyP, false))
	assert.True(t, e.update(ebiten.KeyP, true))
}

func TestKeyEdgesAreIndependent(t *testing.T) {
	e := keyEdges{}
	// Both keys go down on the same tick; each sees its own edge.
	assert.True(t, e.update(ebiten.KeyTab, true))
	assert.True(t, e.update(ebiten.KeyDown, true))

	// Held on the next tick: no new edges for either.
	assert.False(t, e.update(ebiten.KeyTab, true))
	assert.False(t, e.update(ebiten.KeyDown, true))
}

func TestKeepVisible(t *testing.T) {
	n := 40
	assert.Equal(t, 0, keepVisible(0, 5, n))
	assert.Equal(t, 8, keepVisible(0, 25, n))
	// Moving up inside the window does not scroll.
	assert.Equal(t, 8, keepVisible(8, 10, n))
	assert.Equal(t, 3, keepVisible(8, 3, n))
	// The list shrank under the window.
	assert.Equal(t, 0, keepVisible(8, 2, 5))
	assert.Equal(t, 2, keepVisible(8, 19, 20))
}

func TestRowAtFollowsScroll(t *testing.T) {
	n := 40
	top := keepVisible(0, 25, n)
	require.Equal(t, 8, top)

	third := config.ListTop + 2*config.RowHeight + config.RowHeight/2
	i, ok := rowAt(third, top, n)
	require.True(t, ok)
	assert.Equal(t, 10, i)

	i, ok = rowAt(config.ListTop, 0, n)
	require.True(t, ok)
	assert.Equal(t, 0, i)

	_, ok = rowAt(config.ListTop-1, top, n)
	assert.False(t, ok)
	_, ok = rowAt(config.ListTop+config.VisibleRows*config.RowHeight, top, n)
	assert.False(t, ok)
	_, ok = rowAt(config.ListTop+3*config.RowHeight, 0, 2)
	assert.False(t, ok)
}

func TestAttachWithoutViewport(t *testing.T) {
	h := newOverlayHost(0, 0)
	s, err := h.Attach()
	assert.Nil(t, s)
	assert.ErrorIs(t, err, celebrate.ErrSurfaceUnavailable)
	assert.Nil(t, h.active)

	h.resize(config.WindowWidth, 0)
	_, err = h.Attach()
	assert.ErrorIs(t, err, celebrate.ErrSurfaceUnavailable)
}

func TestOverlayRemoveOnce(t *testing.T) {
	h := newOverlayHost(config.WindowWidth, config.WindowHeight)
	old := &overlay{host: h}
	h.active = old

	old.Remove()
	assert.Nil(t, h.active)

	// A stale overlay never detaches its successor.
	current := &overlay{host: h}
	h.active = current
	old.Remove()
	assert.Same(t, current, h.active)

	current.Remove()
	current.Remove()
	assert.Nil(t, h.active)
}

func TestCelebrateWithoutViewportIsQuiet(t *testing.T) {
	c := NewCelebration(nil, logging.Discard())
	c.resize(0, 0)

	assert.NotPanics(t, c.Celebrate)
	assert.False(t, c.driver.Running())
	assert.Equal(t, 0, c.frames.Len())
	assert.NotPanics(t, c.tick)
}

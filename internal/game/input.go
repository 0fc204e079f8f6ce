package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/bizpanel/internal/config"
)

// watchedKeys are polled every tick so their edge state never goes stale.
var watchedKeys = []ebiten.Key{
	ebiten.KeyTab, ebiten.KeyDown, ebiten.KeyUp, ebiten.KeyEnter,
	ebiten.KeyP, ebiten.KeyA, ebiten.KeyD, ebiten.KeyJ,
	ebiten.KeyC, ebiten.KeyR, ebiten.KeyEscape, ebiten.KeyQ,
}

// keyEdges remembers the previous state of each key.
type keyEdges map[ebiten.Key]bool

// update records the current state of k and reports a fresh press.
func (e keyEdges) update(k ebiten.Key, down bool) bool {
	jp := down && !e[k]
	e[k] = down
	return jp
}

// keepVisible scrolls the list as little as possible so that selected is
// on screen, given n rows.
func keepVisible(top, selected, n int) int {
	if selected < top {
		top = selected
	}
	if selected >= top+config.VisibleRows {
		top = selected - config.VisibleRows + 1
	}
	if last := n - config.VisibleRows; top > last {
		top = last
	}
	if top < 0 {
		top = 0
	}
	return top
}

// rowAt maps a cursor y to the index of the row drawn there.
func rowAt(y, top, n int) (int, bool) {
	if y < config.ListTop {
		return 0, false
	}
	vis := (y - config.ListTop) / config.RowHeight
	if vis >= config.VisibleRows {
		return 0, false
	}
	i := top + vis
	if i >= n {
		return 0, false
	}
	return i, true
}

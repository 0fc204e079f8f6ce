package celebrate

import (
	"errors"
	"image/color"
)

// ErrSurfaceUnavailable is returned by a Host that cannot provide a 2D drawing surface.
var ErrSurfaceUnavailable = errors.New("celebrate: drawing surface unavailable")

// Host creates the overlay surfaces the animation draws on.
type Host interface {
	// Attach creates a full-viewport, input-transparent surface on top of
	// everything else, sized to the current viewport.
	Attach() (Surface, error)
}

// Surface is an attached overlay. It is owned by a single run.
type Surface interface {
	Size() (w, h float64)
	Clear()
	FillPolygon(pts []Point, c color.RGBA)
	FillCircle(cx, cy, r float64, c color.RGBA)
	// Remove detaches the surface. It is called exactly once per run.
	Remove()
}

// FrameID identifies a scheduled frame callback.
type FrameID uint64

// Scheduler runs callbacks before the next display refresh.
type Scheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// FrameQueue is a Scheduler for hosts that own their refresh loop and call
// Pump once per refresh. It is not safe for concurrent use.
type FrameQueue struct {
	next     FrameID
	pending  []*queuedFrame
	inflight []*queuedFrame
}

type queuedFrame struct {
	id FrameID
	fn func()
}

func (q *FrameQueue) RequestFrame(fn func()) FrameID {
	q.next++
	q.pending = append(q.pending, &queuedFrame{id: q.next, fn: fn})
	return q.next
}

func (q *FrameQueue) CancelFrame(id FrameID) {
	for i, f := range q.pending {
		if f.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	for _, f := range q.inflight {
		if f.id == id {
			f.fn = nil
			return
		}
	}
}

// Pump runs the callbacks that were pending when it was called and returns
// how many ran. Callbacks requested while pumping wait for the next Pump.
func (q *FrameQueue) Pump() int {
	if len(q.pending) == 0 {
		return 0
	}
	q.inflight, q.pending = q.pending, nil
	ran := 0
	for _, f := range q.inflight {
		if f.fn == nil {
			continue
		}
		fn := f.fn
		f.fn = nil
		fn()
		ran++
	}
	q.inflight = nil
	return ran
}

// Len reports how many callbacks are waiting.
func (q *FrameQueue) Len() int { return len(q.pending) }

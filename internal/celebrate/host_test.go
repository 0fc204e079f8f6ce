package celebrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameQueueRunsInOrder(t *testing.T) {
	var q FrameQueue
	var got []int
	q.RequestFrame(func() { got = append(got, 1) })
	q.RequestFrame(func() { got = append(got, 2) })

	assert.Equal(t, 2, q.Pump())
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, 0, q.Pump())
}

func TestFrameQueueDefersNestedRequests(t *testing.T) {
	var q FrameQueue
	calls := 0
	var tick func()
	tick = func() {
		calls++
		q.RequestFrame(tick)
	}
	q.RequestFrame(tick)

	q.Pump()
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, q.Len())
	q.Pump()
	assert.Equal(t, 2, calls)
}

func TestFrameQueueCancel(t *testing.T) {
	var q FrameQueue
	ran := false
	id := q.RequestFrame(func() { ran = true })
	q.CancelFrame(id)

	assert.Equal(t, 0, q.Pump())
	assert.False(t, ran)
}

func TestFrameQueueCancelDuringPump(t *testing.T) {
	var q FrameQueue
	ran := false
	var second FrameID
	q.RequestFrame(func() { q.CancelFrame(second) })
	second = q.RequestFrame(func() { ran = true })

	assert.Equal(t, 1, q.Pump())
	assert.False(t, ran)
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "square", Square.String())
	assert.Equal(t, "circle", Circle.String())
	assert.Equal(t, "rectangle", Rectangle.String())
	assert.Equal(t, "unknown", Shape(9).String())
}

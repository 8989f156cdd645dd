package window

import (
	"github.com/jrmccluskey/tsquery/pkg/tsquery/tstime"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/value"
)

// point is a single admitted (timestamp, value) pair, the element type
// every deque in this package holds.
type point struct {
	ts  tstime.TimeStamp
	val value.Number
}

// deque is a FIFO of points indexed by admission order, used both as the
// plain eviction-bookkeeping structure (spec.md §4.4: "admitting the newest
// point on each next() and evicting points whose timestamps fall outside
// the window's left edge") and, with monotonic maintenance applied by the
// caller, as the min/max candidate structure.
type deque struct {
	buf   []point
	start int
}

func (d *deque) Len() int { return len(d.buf) - d.start }

func (d *deque) PushBack(p point) { d.buf = append(d.buf, p) }

func (d *deque) Front() (point, bool) {
	if d.Len() == 0 {
		return point{}, false
	}
	return d.buf[d.start], true
}

func (d *deque) Back() (point, bool) {
	if d.Len() == 0 {
		return point{}, false
	}
	return d.buf[len(d.buf)-1], true
}

func (d *deque) PopFront() point {
	p := d.buf[d.start]
	d.start++
	if d.start > 64 && d.start*2 > len(d.buf) {
		d.compact()
	}
	return p
}

func (d *deque) PopBack() point {
	p := d.buf[len(d.buf)-1]
	d.buf = d.buf[:len(d.buf)-1]
	return p
}

func (d *deque) compact() {
	remaining := make([]point, d.Len())
	copy(remaining, d.buf[d.start:])
	d.buf = remaining
	d.start = 0
}

// EvictLE pops and returns every front point whose timestamp is <= edge,
// i.e. points that have fallen outside the half-open window
// (edge, current] (spec.md §4.4).
func (d *deque) EvictLE(edge tstime.TimeStamp) []point {
	var evicted []point
	for {
		f, ok := d.Front()
		if !ok || f.ts.After(edge) {
			break
		}
		evicted = append(evicted, d.PopFront())
	}
	return evicted
}

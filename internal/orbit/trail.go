package orbit

import "github.com/san-kum/threebody/internal/vec"

// Trail is a bounded log of past positions, most recent first. Only every
// Skip-th push is recorded; once Cap entries are held the oldest is dropped.
type Trail struct {
	buf   []vec.Vec2
	head  int
	n     int
	Skip  int
	count int
}

func NewTrail(capacity, skip int) *Trail {
	if capacity < 0 {
		capacity = 0
	}
	if skip < 1 {
		skip = 1
	}
	return &Trail{buf: make([]vec.Vec2, capacity), Skip: skip}
}

// Push offers p to the log and reports whether it was recorded.
func (t *Trail) Push(p vec.Vec2) bool {
	t.count = (t.count + 1) % t.Skip
	if t.count != 0 || len(t.buf) == 0 {
		return false
	}
	t.head = (t.head + len(t.buf) - 1) % len(t.buf)
	t.buf[t.head] = p
	if t.n < len(t.buf) {
		t.n++
	}
	return true
}

func (t *Trail) Len() int { return t.n }
func (t *Trail) Cap() int { return len(t.buf) }

// At returns the i-th most recent entry. i must be in [0, Len()).
func (t *Trail) At(i int) vec.Vec2 {
	return t.buf[(t.head+i)%len(t.buf)]
}

// Points copies the log, most recent first.
func (t *Trail) Points() []vec.Vec2 {
	out := make([]vec.Vec2, t.n)
	for i := range out {
		out[i] = t.At(i)
	}
	return out
}

func (t *Trail) Clear() {
	t.head, t.n, t.count = 0, 0, 0
}

// Fade is the taper applied to segment i of the trail: 1 for most of its
// length, falling linearly to 0 over the last width entries before the cap.
func (t *Trail) Fade(i, width int) float64 {
	c := len(t.buf)
	if width <= 0 || i <= c-width {
		return 1
	}
	f := float64(c-i) / float64(width)
	if f < 0 {
		return 0
	}
	return f
}

// Package buffer provides the append-only byte accumulator that collects
// converted HTML before it is written out.
package buffer

import "io"

// Growable is an append-only byte buffer with explicit capacity management.
// It is filled once, read once via Finish, and not safe for concurrent use.
type Growable struct {
	b []byte
}

var _ io.Writer = (*Growable)(nil)

// New allocates a buffer with the given capacity hint. Negative hints are
// treated as zero.
func New(capacity int) *Growable {
	if capacity < 0 {
		capacity = 0
	}
	return &Growable{b: make([]byte, 0, capacity)}
}

// Write appends p, growing the backing array to
// max(Cap()+Cap()/2, Len()+len(p)) when p does not fit. It never fails.
func (g *Growable) Write(p []byte) (int, error) {
	g.grow(len(p))
	g.b = append(g.b, p...)
	return len(p), nil
}

// WriteString appends s with the same growth policy as Write.
func (g *Growable) WriteString(s string) (int, error) {
	g.grow(len(s))
	g.b = append(g.b, s...)
	return len(s), nil
}

// Len reports the number of bytes appended so far.
func (g *Growable) Len() int { return len(g.b) }

// Cap reports the current allocation size.
func (g *Growable) Cap() int { return cap(g.b) }

// Bytes returns the populated bytes without copying. The slice is only valid
// until Finish.
func (g *Growable) Bytes() []byte { return g.b }

// Finish hands the populated bytes to the caller and resets the buffer to an
// empty, zero-capacity state.
func (g *Growable) Finish() []byte {
	out := g.b
	g.b = nil
	return out
}

func (g *Growable) grow(n int) {
	need := len(g.b) + n
	if need <= cap(g.b) {
		return
	}
	newCap := cap(g.b) + cap(g.b)/2
	if newCap < need {
		newCap = need
	}
	nb := make([]byte, len(g.b), newCap)
	copy(nb, g.b)
	g.b = nb
}

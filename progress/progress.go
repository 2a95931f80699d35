// Package progress prints the row of dots that tells an operator a long pass
// over a file is still moving.
package progress

import (
	"fmt"
	"io"
)

// Dots writes a single "." to W on the first tick and then once every Every
// ticks. A nil *Dots, or one with a nil writer, is silent.
type Dots struct {
	W     io.Writer
	Every int

	n int
}

// New returns a Dots that writes to w every n ticks, after printing label.
// A nil w disables output entirely.
func New(w io.Writer, label string, n int) *Dots {
	if w == nil {
		return nil
	}
	if label != "" {
		fmt.Fprint(w, label)
	}
	return &Dots{W: w, Every: n}
}

func (d *Dots) Tick() {
	if d == nil || d.W == nil {
		return
	}
	every := d.Every
	if every <= 0 {
		every = 1
	}
	if d.n%every == 0 {
		fmt.Fprint(d.W, ".")
	}
	d.n++
}

// Done ends the row of dots.
func (d *Dots) Done() {
	if d == nil || d.W == nil {
		return
	}
	fmt.Fprintln(d.W)
}

// Ticks reports how many times Tick has been called.
func (d *Dots) Ticks() int {
	if d == nil {
		return 0
	}
	return d.n
}

package testbench

import (
	"fmt"
	"io"
)

// A Reporter prints probed values as "label[index], %08x" lines.
type Reporter struct {
	w     io.Writer
	err   error
	lines int
}

// NewReporter creates a Reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Report prints one line. After the first write error, further reports are
// dropped and the error is kept for Err.
func (r *Reporter) Report(label string, index int, value uint32) {
	if r.err != nil {
		return
	}

	_, r.err = fmt.Fprintf(r.w, "%s[%d], %08x\n", label, index, value)
	if r.err == nil {
		r.lines++
	}
}

// Lines returns how many lines were printed.
func (r *Reporter) Lines() int {
	return r.lines
}

// Err returns the first write error.
func (r *Reporter) Err() error {
	return r.err
}

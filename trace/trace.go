// Package trace provides per-cycle observability for the prefetch front end:
// a human-readable text tracer and a SQLite-backed recorder for offline
// analysis.
package trace

import (
	"fmt"
	"io"

	"github.com/sarchlab/fetchsim/timing/prefetch"
)

// Snapshot is one cycle's consistent view of the engine state, captured
// after the cycle's state transition.
type Snapshot struct {
	// Cycle is the cycle count at capture time.
	Cycle uint64

	// State is the complete engine state.
	State prefetch.State
}

// Tracer receives one snapshot per simulated cycle.
type Tracer interface {
	StepTaken(s Snapshot)
}

// WriterTracer dumps every snapshot to an io.Writer, one line per cycle.
type WriterTracer struct {
	w io.Writer
}

// NewWriterTracer creates a tracer writing to w.
func NewWriterTracer(w io.Writer) *WriterTracer {
	return &WriterTracer{w: w}
}

// StepTaken implements Tracer.
//
// Slots are printed in logical order from the head. Flags: R = ready,
// Q = requested, - = neither.
func (t *WriterTracer) StepTaken(s Snapshot) {
	fmt.Fprintf(t.w, "cycle=%d head=%d pc=%08x req=%08x out=%08x |",
		s.Cycle, s.State.Head, s.State.PC, s.State.Aligned, s.State.Outgoing)

	for off := 0; off < prefetch.SlotCount; off++ {
		slot := s.State.SlotAt(off)
		flags := ""
		if slot.Ready {
			flags += "R"
		}
		if slot.Requested {
			flags += "Q"
		}
		if flags == "" {
			flags = "-"
		}
		fmt.Fprintf(t.w, " %08x/%s", slot.PC, flags)
	}
	fmt.Fprintln(t.w)
}

// MultiTracer fans a snapshot out to several tracers.
type MultiTracer []Tracer

// StepTaken implements Tracer.
func (t MultiTracer) StepTaken(s Snapshot) {
	for _, tracer := range t {
		tracer.StepTaken(s)
	}
}

package prefetch

// Inputs carries the per-cycle stimulus for the engine.
type Inputs struct {
	// Reset restarts the window at the configured reset vector. Reset has
	// priority over Redirect.
	Reset bool

	// Redirect restarts the window at RedirectTarget (misprediction,
	// exception, or any other control-flow retarget).
	Redirect bool

	// RedirectTarget is the address to restart from when Redirect is set.
	RedirectTarget uint32

	// LineValid indicates Line answers the request latched one cycle ago.
	// The protocol allows a single outstanding request, so no address tag
	// accompanies the data.
	LineValid bool

	// Line is the 128-bit fetch-memory response, lane 0 lowest address.
	Line [WordsPerLine]uint32

	// ConsumeFirst and ConsumeSecond are decode's consumption
	// acknowledgements for the two head slots. Asserting ConsumeSecond
	// without ConsumeFirst violates the decode contract and has no
	// effect.
	ConsumeFirst  bool
	ConsumeSecond bool
}

// Outputs is the decode- and memory-facing projection of the engine state.
type Outputs struct {
	// RequestAddress is the 16-byte-aligned line address presented to
	// fetch memory this cycle.
	RequestAddress uint32

	// First and Second are the instruction words at logical offsets 0
	// and 1 from the head, valid only with their Ready flags.
	First       uint32
	Second      uint32
	FirstReady  bool
	SecondReady bool
}

// Config holds the static parameters of the engine.
type Config struct {
	// ResetVector is the address the window restarts at on Reset.
	ResetVector uint32
}

// Statistics holds running counters for the engine.
type Statistics struct {
	// Cycles is the total number of cycles ticked.
	Cycles uint64
	// Resets is the number of reset restarts.
	Resets uint64
	// Redirects is the number of redirect restarts.
	Redirects uint64
	// LinesFilled is the number of fetch-memory responses integrated.
	LinesFilled uint64
	// InstructionsDelivered is the number of instructions consumed by
	// decode.
	InstructionsDelivered uint64
	// SpeculativeRequests is the number of cycles the planner ran ahead
	// of the window.
	SpeculativeRequests uint64
}

// Engine is the prefetch window engine. All state transitions happen in
// Tick; between ticks the state is a consistent snapshot that any number of
// readers may inspect.
type Engine struct {
	state  State
	vector uint32
	stats  Statistics
}

// New creates an engine already restarted at the reset vector, as if Reset
// had been asserted on the cycle before the first Tick.
func New(cfg Config) *Engine {
	return &Engine{
		state:  restart(cfg.ResetVector),
		vector: cfg.ResetVector,
	}
}

// Tick advances the engine by one cycle and returns the new projection.
func (e *Engine) Tick(in Inputs) Outputs {
	e.stats.Cycles++

	switch {
	case in.Reset:
		e.stats.Resets++
	case in.Redirect:
		e.stats.Redirects++
	default:
		if in.LineValid {
			e.stats.LinesFilled++
		}
		if _, speculative := plan(&e.state); speculative {
			e.stats.SpeculativeRequests++
		}
		if in.ConsumeFirst && in.ConsumeSecond {
			e.stats.InstructionsDelivered += 2
		} else if in.ConsumeFirst {
			e.stats.InstructionsDelivered++
		}
	}

	e.state = step(e.state, in, e.vector)
	return e.Outputs()
}

// Outputs returns the current decode- and memory-facing projection.
func (e *Engine) Outputs() Outputs {
	first := e.state.SlotAt(0)
	second := e.state.SlotAt(1)
	return Outputs{
		RequestAddress: e.state.Aligned,
		First:          first.Data,
		FirstReady:     first.Ready,
		Second:         second.Data,
		SecondReady:    second.Ready,
	}
}

// PC returns the canonical program counter (the head slot's address).
func (e *Engine) PC() uint32 { return e.state.PC }

// HeadIndex returns the physical index of the head slot.
func (e *Engine) HeadIndex() int { return e.state.Head }

// AlignedAddress returns the line address currently being requested.
func (e *Engine) AlignedAddress() uint32 { return e.state.Aligned }

// OutgoingAddress returns the line address requested one cycle ago.
func (e *Engine) OutgoingAddress() uint32 { return e.state.Outgoing }

// SlotAt returns the slot at the given logical offset from the head.
func (e *Engine) SlotAt(offset int) Slot { return e.state.SlotAt(offset) }

// State returns a copy of the complete engine state.
func (e *Engine) State() State { return e.state }

// Stats returns the engine statistics.
func (e *Engine) Stats() Statistics { return e.stats }

// step computes the next state from the previous cycle's snapshot and the
// cycle inputs. It is the single writer of engine state.
func step(prev State, in Inputs, vector uint32) State {
	if in.Reset || in.Redirect {
		base := in.RedirectTarget
		if in.Reset {
			base = vector
		}
		// A restart discards any in-flight response: the fill input
		// is not consulted on this cycle, and the next response the
		// memory produces belongs to the new line.
		return restart(base)
	}

	next := prev

	// Plan the next line before retirement effects apply.
	planned, _ := plan(&prev)

	// Integrate an arriving line into every not-yet-ready slot whose
	// address falls inside the line requested one cycle ago. Re-delivery
	// of a line a slot already holds is a no-op (Ready is monotonic until
	// reallocation).
	if in.LineValid {
		for i := range next.Slots {
			s := &next.Slots[i]
			if !s.Ready && lineOf(s.PC) == prev.Outgoing {
				s.Data = in.Line[laneOf(s.PC)]
				s.Ready = true
			}
		}
	}

	// Retire consumed head slots and allocate fresh slots at the tail.
	// Reallocation overrides any fill that matched a departing slot.
	// ConsumeSecond without ConsumeFirst fires neither branch.
	switch {
	case in.ConsumeFirst && in.ConsumeSecond:
		next.Slots[prev.Head] = newSlot(prev.PC+WordBytes*SlotCount, planned)
		next.Slots[(prev.Head+1)%SlotCount] = newSlot(prev.PC+WordBytes*SlotCount+WordBytes, planned)
		next.Head = (prev.Head + 2) % SlotCount
		next.PC = prev.PC + 8
	case in.ConsumeFirst:
		next.Slots[prev.Head] = newSlot(prev.PC+WordBytes*SlotCount, planned)
		next.Head = (prev.Head + 1) % SlotCount
		next.PC = prev.PC + 4
	}

	// Mark every surviving slot that lies inside the newly planned line.
	// Requested is only ever set here, never cleared.
	for i := range next.Slots {
		s := &next.Slots[i]
		if !s.Requested && lineOf(s.PC) == planned {
			s.Requested = true
		}
	}

	next.Aligned = planned
	next.Outgoing = prev.Aligned
	return next
}

// plan computes the line address to request next. It scans slots in logical
// order and stops at the first slot whose line has not been requested yet
// (first gap wins, later requested slots do not mask an earlier gap). When
// the whole window is already requested it speculates one line past the head
// slot, returning speculative = true.
func plan(s *State) (addr uint32, speculative bool) {
	for off := 0; off < SlotCount; off++ {
		if !s.SlotAt(off).Requested {
			return lineOf(s.SlotAt(off).PC), false
		}
	}
	return lineOf(s.SlotAt(0).PC + LineBytes), true
}

// restart rebuilds the window at base. Slots already covered by the first
// line request start out with Requested set and need no further request.
func restart(base uint32) State {
	next := State{
		Head:     0,
		PC:       base,
		Aligned:  lineOf(base),
		Outgoing: lineOf(base),
	}
	for i := range next.Slots {
		next.Slots[i] = newSlot(base+uint32(WordBytes*i), next.Aligned)
	}
	return next
}

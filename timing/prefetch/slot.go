// Package prefetch implements the two-wide instruction prefetch window.
//
// The engine keeps four consecutive instruction slots in a fixed circular
// buffer, presents one 16-byte line request to fetch memory per cycle, and
// exposes the two head slots to decode. It walks the window forward as decode
// consumes instructions and runs one line ahead of consumption once every
// slot in the window has been requested.
package prefetch

const (
	// SlotCount is the number of instruction slots in the window.
	SlotCount = 4

	// WordBytes is the size of one instruction word.
	WordBytes = 4

	// LineBytes is the size of one fetch-memory line.
	LineBytes = 16

	// WordsPerLine is the number of instruction words in one line.
	WordsPerLine = LineBytes / WordBytes
)

// lineOf returns the 16-byte-aligned line base of an address.
func lineOf(addr uint32) uint32 {
	return addr &^ (LineBytes - 1)
}

// laneOf returns the word lane (0-3) an address occupies within its line.
func laneOf(addr uint32) int {
	return int(addr>>2) & (WordsPerLine - 1)
}

// Slot is one entry of the prefetch window.
type Slot struct {
	// PC is the instruction address this slot represents.
	PC uint32

	// Data is the raw instruction word, valid only when Ready is true.
	Data uint32

	// Ready indicates the instruction word has arrived from fetch memory.
	Ready bool

	// Requested indicates a line request covering PC has been issued.
	// It is independent of Ready and only drives request planning.
	Requested bool
}

// newSlot allocates a fresh slot for pc. The slot starts out requested when
// pc already lies inside the line being requested.
func newSlot(pc, requestedLine uint32) Slot {
	return Slot{
		PC:        pc,
		Requested: lineOf(pc) == requestedLine,
	}
}

// State is the complete architectural state of the engine. One cycle is one
// application of step: the next state is computed wholesale from the previous
// cycle's snapshot, so no rule ever observes a half-applied update.
type State struct {
	// Slots is the circular window, addressed modulo SlotCount via Head.
	Slots [SlotCount]Slot

	// Head indexes the slot holding the next instruction to deliver.
	Head int

	// PC is the canonical program counter, always equal to the head
	// slot's address.
	PC uint32

	// Aligned is the line address currently being requested from fetch
	// memory. Its low 4 bits are always zero.
	Aligned uint32

	// Outgoing is the line address requested one cycle earlier. Arriving
	// data is matched against it, modeling the one-cycle round trip to
	// fetch memory.
	Outgoing uint32
}

// SlotAt returns the slot at the given logical offset from the head.
// Offsets 0 and 1 are the two decode-visible slots.
func (s *State) SlotAt(offset int) Slot {
	return s.Slots[(s.Head+offset)%SlotCount]
}

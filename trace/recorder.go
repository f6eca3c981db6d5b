package trace

import (
	"github.com/sarchlab/akita/v4/datarecording"
)

// cycleTable is the table cycle snapshots are recorded into.
const cycleTable = "cycle_trace"

// cycleRow is one recorded cycle. Slot columns follow logical order from the
// head, so Slot0 is always the first decode-visible instruction.
type cycleRow struct {
	Cycle    uint64
	Head     int
	PC       uint64
	Aligned  uint64
	Outgoing uint64

	Slot0PC        uint64
	Slot0Ready     bool
	Slot0Requested bool
	Slot1PC        uint64
	Slot1Ready     bool
	Slot1Requested bool
	Slot2PC        uint64
	Slot2Ready     bool
	Slot2Requested bool
	Slot3PC        uint64
	Slot3Ready     bool
	Slot3Requested bool
}

// Recorder records one row per cycle into a SQLite database through the
// Akita data recorder.
type Recorder struct {
	recorder datarecording.DataRecorder
}

// NewRecorder creates a recorder writing to the SQLite database at path.
func NewRecorder(path string) *Recorder {
	r := &Recorder{
		recorder: datarecording.NewDataRecorder(path),
	}
	r.recorder.CreateTable(cycleTable, cycleRow{})
	return r
}

// NewRecorderWithBackend creates a recorder over an existing data recorder.
func NewRecorderWithBackend(backend datarecording.DataRecorder) *Recorder {
	r := &Recorder{recorder: backend}
	r.recorder.CreateTable(cycleTable, cycleRow{})
	return r
}

// StepTaken implements Tracer.
func (r *Recorder) StepTaken(s Snapshot) {
	row := cycleRow{
		Cycle:    s.Cycle,
		Head:     s.State.Head,
		PC:       uint64(s.State.PC),
		Aligned:  uint64(s.State.Aligned),
		Outgoing: uint64(s.State.Outgoing),
	}

	slots := []*struct {
		pc        *uint64
		ready     *bool
		requested *bool
	}{
		{&row.Slot0PC, &row.Slot0Ready, &row.Slot0Requested},
		{&row.Slot1PC, &row.Slot1Ready, &row.Slot1Requested},
		{&row.Slot2PC, &row.Slot2Ready, &row.Slot2Requested},
		{&row.Slot3PC, &row.Slot3Ready, &row.Slot3Requested},
	}
	for off, dst := range slots {
		slot := s.State.SlotAt(off)
		*dst.pc = uint64(slot.PC)
		*dst.ready = slot.Ready
		*dst.requested = slot.Requested
	}

	r.recorder.InsertData(cycleTable, row)
}

// Flush writes all buffered rows to the database.
func (r *Recorder) Flush() {
	r.recorder.Flush()
}

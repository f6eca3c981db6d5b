package trace_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/fetchsim/timing/prefetch"
	"github.com/sarchlab/fetchsim/trace"
)

// sampleSnapshot builds a snapshot with a recognizable slot layout.
func sampleSnapshot() trace.Snapshot {
	return trace.Snapshot{
		Cycle: 7,
		State: prefetch.State{
			Slots: [prefetch.SlotCount]prefetch.Slot{
				{PC: 0x1000, Ready: true, Requested: true},
				{PC: 0x1004, Requested: true},
				{PC: 0x1008},
				{PC: 0x100C},
			},
			Head:     0,
			PC:       0x1000,
			Aligned:  0x1010,
			Outgoing: 0x1000,
		},
	}
}

var _ = Describe("WriterTracer", func() {
	It("should print one line per snapshot", func() {
		var buf bytes.Buffer
		tracer := trace.NewWriterTracer(&buf)

		tracer.StepTaken(sampleSnapshot())
		tracer.StepTaken(sampleSnapshot())

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		Expect(lines).To(HaveLen(2))
	})

	It("should dump head, PC, addresses, and slot flags", func() {
		var buf bytes.Buffer
		trace.NewWriterTracer(&buf).StepTaken(sampleSnapshot())

		out := buf.String()
		Expect(out).To(ContainSubstring("cycle=7"))
		Expect(out).To(ContainSubstring("head=0"))
		Expect(out).To(ContainSubstring("pc=00001000"))
		Expect(out).To(ContainSubstring("req=00001010"))
		Expect(out).To(ContainSubstring("out=00001000"))
		Expect(out).To(ContainSubstring("00001000/RQ"))
		Expect(out).To(ContainSubstring("00001004/Q"))
		Expect(out).To(ContainSubstring("00001008/-"))
	})
})

var _ = Describe("MultiTracer", func() {
	It("should fan snapshots out to every tracer", func() {
		var a, b bytes.Buffer
		multi := trace.MultiTracer{
			trace.NewWriterTracer(&a),
			trace.NewWriterTracer(&b),
		}

		multi.StepTaken(sampleSnapshot())

		Expect(a.String()).NotTo(BeEmpty())
		Expect(a.String()).To(Equal(b.String()))
	})
})

var _ = Describe("Recorder", func() {
	It("should create the trace database and flush rows", func() {
		path := filepath.Join(GinkgoT().TempDir(), "trace")
		recorder := trace.NewRecorder(path)

		recorder.StepTaken(sampleSnapshot())
		recorder.Flush()

		info, err := os.Stat(path + ".sqlite3")
		Expect(err).NotTo(HaveOccurred())
		Expect(info.Size()).NotTo(BeZero())
	})
})

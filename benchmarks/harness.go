// Package benchmarks provides throughput measurement for the prefetch
// front end on synthetic instruction streams.
package benchmarks

import (
	"github.com/sarchlab/fetchsim/mem"
	"github.com/sarchlab/fetchsim/timing/core"
	"github.com/sarchlab/fetchsim/timing/decode"
)

// nop is ADDI x0, x0, 0.
const nop uint32 = 0x00000013

// Result holds the measurements of one workload run.
type Result struct {
	// Name identifies the workload.
	Name string `json:"name"`

	// Cycles is the number of cycles simulated.
	Cycles uint64 `json:"cycles"`

	// Instructions is the number of instructions delivered to decode.
	Instructions uint64 `json:"instructions"`

	// IPC is delivered instructions per cycle.
	IPC float64 `json:"ipc"`

	// Redirects is the number of control-flow retargets taken.
	Redirects uint64 `json:"redirects"`

	// SpeculativeRequests is the number of cycles the engine fetched
	// ahead of the window.
	SpeculativeRequests uint64 `json:"speculative_requests"`
}

// run simulates the given program for the given number of cycles with a
// greedy consumer and returns the measurements.
func run(name string, program []uint32, cycles uint64) Result {
	config := core.DefaultConfig()
	memory := mem.NewMemory()
	for i, word := range program {
		memory.Write32(config.ResetVector+uint32(4*i), word)
	}

	fe := core.NewFrontEnd(config, memory, decode.NewGreedy())
	fe.Run(cycles)

	stats := fe.Stats()
	return Result{
		Name:                name,
		Cycles:              stats.Cycles,
		Instructions:        stats.Instructions,
		IPC:                 stats.IPC(),
		Redirects:           stats.Redirects,
		SpeculativeRequests: stats.SpeculativeRequests,
	}
}

// RunSequential measures a straight-line stream of the given length.
func RunSequential(words int, cycles uint64) Result {
	program := make([]uint32, words)
	for i := range program {
		program[i] = nop
	}
	return run("sequential", program, cycles)
}

// RunLoop measures a loop of bodyWords straight-line instructions closed by
// a jump back to the top.
func RunLoop(bodyWords int, cycles uint64) Result {
	program := make([]uint32, bodyWords+1)
	for i := 0; i < bodyWords; i++ {
		program[i] = nop
	}
	program[bodyWords] = decode.EncodeJAL(0, int32(-4*bodyWords))
	return run("loop", program, cycles)
}

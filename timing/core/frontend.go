// Package core composes the prefetch window engine with its fetch-memory
// and decode collaborators into a runnable instruction front end.
package core

import (
	"github.com/sarchlab/fetchsim/mem"
	"github.com/sarchlab/fetchsim/timing/decode"
	"github.com/sarchlab/fetchsim/timing/fetchmem"
	"github.com/sarchlab/fetchsim/timing/icache"
	"github.com/sarchlab/fetchsim/timing/prefetch"
	"github.com/sarchlab/fetchsim/trace"
)

// Statistics holds front-end performance statistics.
type Statistics struct {
	// Cycles is the total number of cycles simulated.
	Cycles uint64
	// Instructions is the number of instructions delivered to decode.
	Instructions uint64
	// Redirects is the number of control-flow retargets taken.
	Redirects uint64
	// SpeculativeRequests is the number of cycles the engine fetched
	// ahead of the window.
	SpeculativeRequests uint64
}

// IPC returns the delivered instructions per cycle.
func (s Statistics) IPC() float64 {
	if s.Cycles == 0 {
		return 0
	}
	return float64(s.Instructions) / float64(s.Cycles)
}

// FrontEndOption is a functional option for configuring the FrontEnd.
type FrontEndOption func(*FrontEnd)

// WithTracer attaches a tracer invoked once per cycle with a consistent
// post-cycle snapshot.
func WithTracer(t trace.Tracer) FrontEndOption {
	return func(fe *FrontEnd) {
		fe.tracer = t
	}
}

// WithLineFetcher overrides the fetch-memory collaborator.
func WithLineFetcher(f fetchmem.LineFetcher) FrontEndOption {
	return func(fe *FrontEnd) {
		fe.fetcher = f
	}
}

// FrontEnd drives the prefetch engine one cycle at a time: it presents the
// two head instructions to the consumer, answers the engine's line request
// from fetch memory with a one-cycle round trip, and applies the consumer's
// consumption and redirect decisions.
type FrontEnd struct {
	engine   *prefetch.Engine
	fetcher  fetchmem.LineFetcher
	consumer decode.Consumer
	tracer   trace.Tracer
	cache    *icache.Cache

	stats Statistics
}

// NewFrontEnd creates a front end over the given instruction memory and
// consumer. The engine starts restarted at the configured reset vector.
func NewFrontEnd(cfg *Config, memory *mem.Memory, consumer decode.Consumer,
	opts ...FrontEndOption) *FrontEnd {
	fe := &FrontEnd{
		engine:   prefetch.New(prefetch.Config{ResetVector: cfg.ResetVector}),
		consumer: consumer,
	}

	if cfg.ICacheEnabled {
		fe.cache = icache.New(cfg.ICacheConfig())
		fe.fetcher = fetchmem.NewCachedLineMemory(memory, fe.cache)
	} else {
		fe.fetcher = fetchmem.NewLineMemory(memory)
	}

	for _, opt := range opts {
		opt(fe)
	}

	return fe
}

// Engine returns the underlying prefetch engine.
func (fe *FrontEnd) Engine() *prefetch.Engine {
	return fe.engine
}

// ICache returns the instruction cache, or nil when disabled.
func (fe *FrontEnd) ICache() *icache.Cache {
	return fe.cache
}

// Stats returns the front-end statistics.
func (fe *FrontEnd) Stats() Statistics {
	return fe.stats
}

// Tick advances the front end by one cycle.
func (fe *FrontEnd) Tick() {
	out := fe.engine.Outputs()
	decision := fe.consumer.Consume(out, fe.engine.PC())

	// Fetch memory answers the request latched one cycle ago. The engine's
	// outgoing-address register is exactly that latch.
	in := prefetch.Inputs{
		LineValid:      true,
		Line:           fe.fetcher.FetchLine(fe.engine.OutgoingAddress()),
		Redirect:       decision.Redirect,
		RedirectTarget: decision.RedirectTarget,
		ConsumeFirst:   decision.ConsumeFirst,
		ConsumeSecond:  decision.ConsumeSecond,
	}
	fe.engine.Tick(in)

	fe.stats.Cycles++
	switch {
	case decision.ConsumeFirst && decision.ConsumeSecond:
		fe.stats.Instructions += 2
	case decision.ConsumeFirst:
		fe.stats.Instructions++
	}
	if decision.Redirect {
		fe.stats.Redirects++
	}
	fe.stats.SpeculativeRequests = fe.engine.Stats().SpeculativeRequests

	if fe.tracer != nil {
		fe.tracer.StepTaken(trace.Snapshot{
			Cycle: fe.stats.Cycles,
			State: fe.engine.State(),
		})
	}
}

// Run advances the front end by the given number of cycles.
func (fe *FrontEnd) Run(cycles uint64) {
	for i := uint64(0); i < cycles; i++ {
		fe.Tick()
	}
}

// Package decode provides decode-side consumer models used to drive the
// prefetch front end. The real decode stage is external to the prefetch
// engine; the models here honor its contract: on any cycle decode consumes
// nothing, the first instruction, or both instructions, never the second
// alone.
package decode

import (
	"github.com/sarchlab/fetchsim/timing/prefetch"
)

// Decision is what a consumer asks of the front end for one cycle.
type Decision struct {
	// ConsumeFirst and ConsumeSecond acknowledge the two presented
	// instructions in order.
	ConsumeFirst  bool
	ConsumeSecond bool

	// Redirect retargets the front end at RedirectTarget on this cycle,
	// modeling a taken jump or any other control-flow change decode
	// resolves.
	Redirect       bool
	RedirectTarget uint32
}

// Consumer decides per cycle how many of the two presented instructions to
// consume. pc is the address of the first presented instruction.
type Consumer interface {
	Consume(out prefetch.Outputs, pc uint32) Decision
}

// Greedy consumes every ready instruction in order, up to two per cycle, and
// follows RV32 JAL jumps by redirecting the front end to the jump target.
// Instructions after a taken jump are wrong-path, so consumption stops there.
type Greedy struct{}

// NewGreedy creates a greedy consumer.
func NewGreedy() *Greedy {
	return &Greedy{}
}

// Consume implements Consumer.
func (c *Greedy) Consume(out prefetch.Outputs, pc uint32) Decision {
	var d Decision

	if !out.FirstReady {
		return d
	}
	d.ConsumeFirst = true

	if IsJAL(out.First) {
		d.Redirect = true
		d.RedirectTarget = JALTarget(out.First, pc)
		return d
	}

	if out.SecondReady {
		d.ConsumeSecond = true
		if IsJAL(out.Second) {
			d.Redirect = true
			d.RedirectTarget = JALTarget(out.Second, pc+4)
		}
	}

	return d
}

// Script replays a fixed sequence of decisions, one per cycle, then keeps
// returning the zero decision. It is the scripted stand-in for decode in
// tests and calibration runs.
type Script struct {
	decisions []Decision
	next      int
}

// NewScript creates a scripted consumer from the given per-cycle decisions.
func NewScript(decisions ...Decision) *Script {
	return &Script{decisions: decisions}
}

// Consume implements Consumer.
func (c *Script) Consume(_ prefetch.Outputs, _ uint32) Decision {
	if c.next >= len(c.decisions) {
		return Decision{}
	}
	d := c.decisions[c.next]
	c.next++
	return d
}

// EncodeJAL encodes an RV32 JAL with the given destination register and
// signed byte offset.
func EncodeJAL(rd uint32, offset int32) uint32 {
	imm := uint32(offset)
	return (imm>>20&0x1)<<31 |
		(imm>>1&0x3FF)<<21 |
		(imm>>11&0x1)<<20 |
		(imm>>12&0xFF)<<12 |
		rd<<7 | 0x6F
}

// IsJAL reports whether word encodes an RV32 JAL instruction.
func IsJAL(word uint32) bool {
	return word&0x7F == 0x6F
}

// JALTarget computes the jump target of an RV32 JAL at pc.
// The J-immediate is encoded as imm[20|10:1|11|19:12] in bits [31:12].
func JALTarget(word, pc uint32) uint32 {
	imm := (word>>31&0x1)<<20 |
		(word>>21&0x3FF)<<1 |
		(word>>20&0x1)<<11 |
		(word>>12&0xFF)<<12
	if imm&(1<<20) != 0 {
		imm |= 0xFFE00000 // sign extend from bit 20
	}
	return pc + imm
}

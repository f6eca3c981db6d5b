// Package fetchmem provides the fetch-memory collaborators that answer the
// prefetch engine's line requests.
package fetchmem

import (
	"github.com/sarchlab/fetchsim/mem"
	"github.com/sarchlab/fetchsim/timing/icache"
	"github.com/sarchlab/fetchsim/timing/prefetch"
)

// LineFetcher answers one 16-byte line request per cycle. The protocol is
// single request outstanding with a fixed one-cycle round trip: the line a
// caller receives on a cycle answers the address presented the cycle before.
type LineFetcher interface {
	// FetchLine returns the line at the given 16-byte-aligned address.
	FetchLine(addr uint32) [prefetch.WordsPerLine]uint32
}

// LineMemory serves lines straight from instruction memory. Every request is
// answered, so the validity pulse toward the engine is always asserted.
type LineMemory struct {
	memory *mem.Memory
}

// NewLineMemory creates a line fetcher over the given memory.
func NewLineMemory(memory *mem.Memory) *LineMemory {
	return &LineMemory{memory: memory}
}

// FetchLine returns the line at addr.
func (f *LineMemory) FetchLine(addr uint32) [prefetch.WordsPerLine]uint32 {
	return f.memory.ReadLine(addr)
}

// CachedLineMemory serves lines from instruction memory while recording
// hit/miss statistics in an instruction cache. Misses never delay a line;
// the cache influences reporting only.
type CachedLineMemory struct {
	memory *mem.Memory
	cache  *icache.Cache
}

// NewCachedLineMemory creates a line fetcher that records accesses in cache.
func NewCachedLineMemory(memory *mem.Memory, cache *icache.Cache) *CachedLineMemory {
	return &CachedLineMemory{
		memory: memory,
		cache:  cache,
	}
}

// FetchLine returns the line at addr and records the access.
func (f *CachedLineMemory) FetchLine(addr uint32) [prefetch.WordsPerLine]uint32 {
	f.cache.Access(addr)
	return f.memory.ReadLine(addr)
}

// Cache returns the underlying instruction cache.
func (f *CachedLineMemory) Cache() *icache.Cache {
	return f.cache
}

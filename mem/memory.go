// Package mem provides the sparse byte-addressable memory that backs the
// instruction fetch path.
package mem

const pageSize = 4096

// Memory is a sparse memory backed by 4KB pages allocated on first write.
// Reads from unallocated pages return zero. All accesses are little-endian.
type Memory struct {
	pages map[uint32]*[pageSize]byte
}

// NewMemory creates an empty memory.
func NewMemory() *Memory {
	return &Memory{
		pages: make(map[uint32]*[pageSize]byte),
	}
}

// page returns the page containing addr, allocating it when alloc is set.
func (m *Memory) page(addr uint32, alloc bool) *[pageSize]byte {
	base := addr &^ (pageSize - 1)
	p, ok := m.pages[base]
	if !ok && alloc {
		p = &[pageSize]byte{}
		m.pages[base] = p
	}
	return p
}

// Read8 reads one byte.
func (m *Memory) Read8(addr uint32) uint8 {
	p := m.page(addr, false)
	if p == nil {
		return 0
	}
	return p[addr%pageSize]
}

// Write8 writes one byte.
func (m *Memory) Write8(addr uint32, value uint8) {
	p := m.page(addr, true)
	p[addr%pageSize] = value
}

// Read32 reads a 32-bit little-endian word.
func (m *Memory) Read32(addr uint32) uint32 {
	var value uint32
	for i := uint32(0); i < 4; i++ {
		value |= uint32(m.Read8(addr+i)) << (8 * i)
	}
	return value
}

// Write32 writes a 32-bit little-endian word.
func (m *Memory) Write32(addr uint32, value uint32) {
	for i := uint32(0); i < 4; i++ {
		m.Write8(addr+i, uint8(value>>(8*i)))
	}
}

// ReadLine reads the 16-byte line containing addr as four instruction words,
// lane 0 lowest address. The address is aligned down to the line base.
func (m *Memory) ReadLine(addr uint32) [4]uint32 {
	base := addr &^ 0xF
	var line [4]uint32
	for i := range line {
		line[i] = m.Read32(base + uint32(4*i))
	}
	return line
}

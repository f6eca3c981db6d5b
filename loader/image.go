// Package loader provides program image loading for the fetch simulator.
// Images are flat instruction streams placed at a base address: either raw
// little-endian binaries or word-per-line hexadecimal listings.
package loader

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/fetchsim/mem"
)

// Program is a loaded instruction image.
type Program struct {
	// Base is the address of the first instruction word.
	Base uint32

	// Entry is the address where execution starts. For flat images it
	// equals Base; ELF images carry their own entry point.
	Entry uint32

	// Words are the instruction words in address order.
	Words []uint32
}

// LoadBinary reads a flat little-endian binary image to be placed at base.
func LoadBinary(path string, base uint32) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("image size %d is not a multiple of the 4-byte instruction word", len(data))
	}

	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = uint32(data[4*i]) |
			uint32(data[4*i+1])<<8 |
			uint32(data[4*i+2])<<16 |
			uint32(data[4*i+3])<<24
	}

	return &Program{Base: base, Entry: base, Words: words}, nil
}

// LoadHex reads a word-per-line hexadecimal listing to be placed at base.
// Blank lines and lines starting with '#' are ignored; an optional "0x"
// prefix is accepted.
func LoadHex(path string, base uint32) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open listing: %w", err)
	}
	defer func() { _ = f.Close() }()

	var words []uint32
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, err := strconv.ParseUint(strings.TrimPrefix(line, "0x"), 16, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad instruction word %q: %w", lineNo, line, err)
		}
		words = append(words, uint32(word))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read listing: %w", err)
	}

	return &Program{Base: base, Entry: base, Words: words}, nil
}

// Install writes the program into instruction memory.
func (p *Program) Install(memory *mem.Memory) {
	for i, word := range p.Words {
		memory.Write32(p.Base+uint32(4*i), word)
	}
}

package loader

import (
	"debug/elf"
	"fmt"
	"io"
)

// LoadELF reads the executable segment of a 32-bit little-endian RISC-V ELF
// binary. The segment's virtual address becomes the program base and the ELF
// entry point becomes the program entry.
func LoadELF(path string) (*Program, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ELF file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if f.Class != elf.ELFCLASS32 {
		return nil, fmt.Errorf("not a 32-bit ELF file")
	}
	if f.Data != elf.ELFDATA2LSB {
		return nil, fmt.Errorf("not a little-endian ELF file")
	}
	if f.Machine != elf.EM_RISCV {
		return nil, fmt.Errorf("not a RISC-V ELF file (machine type: %v)", f.Machine)
	}

	for _, phdr := range f.Progs {
		if phdr.Type != elf.PT_LOAD || phdr.Flags&elf.PF_X == 0 {
			continue
		}

		data := make([]byte, phdr.Filesz)
		if phdr.Filesz > 0 {
			n, err := phdr.ReadAt(data, 0)
			if err != nil && err != io.EOF {
				return nil, fmt.Errorf("failed to read segment at 0x%x: %w", phdr.Vaddr, err)
			}
			if uint64(n) != phdr.Filesz {
				return nil, fmt.Errorf("short read for segment at 0x%x: got %d bytes, expected %d",
					phdr.Vaddr, n, phdr.Filesz)
			}
		}
		if len(data)%4 != 0 {
			return nil, fmt.Errorf("segment at 0x%x has size %d, not a multiple of the 4-byte instruction word",
				phdr.Vaddr, len(data))
		}

		words := make([]uint32, len(data)/4)
		for i := range words {
			words[i] = uint32(data[4*i]) |
				uint32(data[4*i+1])<<8 |
				uint32(data[4*i+2])<<16 |
				uint32(data[4*i+3])<<24
		}

		return &Program{
			Base:  uint32(phdr.Vaddr),
			Entry: uint32(f.Entry),
			Words: words,
		}, nil
	}

	return nil, fmt.Errorf("no executable PT_LOAD segment found")
}

// Package main provides the entry point for FetchSim.
// FetchSim is a cycle-accurate two-wide instruction prefetch front-end
// simulator.
//
// For the full CLI, use: go run ./cmd/fetchsim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("FetchSim - Two-Wide Instruction Prefetch Front-End Simulator")
	fmt.Println("")
	fmt.Println("Usage: fetchsim [options] <program.bin>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -cycles    Number of cycles to simulate")
	fmt.Println("  -base      Load address of the program image")
	fmt.Println("  -hex       Treat the image as a word-per-line hex listing")
	fmt.Println("  -elf       Treat the image as a 32-bit RISC-V ELF binary")
	fmt.Println("  -config    Path to front-end configuration JSON file")
	fmt.Println("  -icache    Enable instruction cache statistics")
	fmt.Println("  -trace     Dump a per-cycle trace to stderr")
	fmt.Println("  -tracedb   Record the per-cycle trace into a SQLite database")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/fetchsim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/fetchsim' instead.")
	}
}

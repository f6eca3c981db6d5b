// Package main provides the entry point for FetchSim.
// FetchSim is a cycle-accurate two-wide instruction prefetch front-end
// simulator.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/fetchsim/loader"
	"github.com/sarchlab/fetchsim/mem"
	"github.com/sarchlab/fetchsim/timing/core"
	"github.com/sarchlab/fetchsim/timing/decode"
	"github.com/sarchlab/fetchsim/trace"
)

var (
	cycles     = flag.Uint64("cycles", 1000, "Number of cycles to simulate")
	base       = flag.Uint64("base", 0x1000, "Load address for flat images (ELF images carry their own)")
	hexImage   = flag.Bool("hex", false, "Treat the image as a word-per-line hex listing")
	elfImage   = flag.Bool("elf", false, "Treat the image as a 32-bit RISC-V ELF binary")
	configPath = flag.String("config", "", "Path to front-end configuration JSON file")
	useICache  = flag.Bool("icache", false, "Enable instruction cache statistics")
	traceOut   = flag.Bool("trace", false, "Dump a per-cycle trace to stderr")
	traceDB    = flag.String("tracedb", "", "Record the per-cycle trace into a SQLite database")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: fetchsim [options] <program.bin>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	imagePath := flag.Arg(0)

	config := core.DefaultConfig()
	if *configPath != "" {
		var err error
		config, err = core.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if *useICache {
		config.ICacheEnabled = true
	}
	var prog *loader.Program
	var err error
	switch {
	case *elfImage:
		prog, err = loader.LoadELF(imagePath)
	case *hexImage:
		prog, err = loader.LoadHex(imagePath, uint32(*base))
	default:
		prog, err = loader.LoadBinary(imagePath, uint32(*base))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	config.ResetVector = prog.Entry
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	memory := mem.NewMemory()
	prog.Install(memory)

	if *verbose {
		fmt.Printf("Loaded: %s\n", imagePath)
		fmt.Printf("Base address: 0x%X\n", prog.Base)
		fmt.Printf("Instruction words: %d\n", len(prog.Words))
	}

	var tracers trace.MultiTracer
	if *traceOut {
		tracers = append(tracers, trace.NewWriterTracer(os.Stderr))
	}
	var recorder *trace.Recorder
	if *traceDB != "" {
		recorder = trace.NewRecorder(*traceDB)
		tracers = append(tracers, recorder)
	}

	opts := []core.FrontEndOption{}
	if len(tracers) > 0 {
		opts = append(opts, core.WithTracer(tracers))
	}

	frontEnd := core.NewFrontEnd(config, memory, decode.NewGreedy(), opts...)
	frontEnd.Run(*cycles)

	if recorder != nil {
		recorder.Flush()
	}

	stats := frontEnd.Stats()
	fmt.Printf("\nCycles:       %d\n", stats.Cycles)
	fmt.Printf("Instructions: %d\n", stats.Instructions)
	fmt.Printf("IPC:          %.3f\n", stats.IPC())
	fmt.Printf("Redirects:    %d\n", stats.Redirects)
	if cache := frontEnd.ICache(); cache != nil {
		cstats := cache.Stats()
		fmt.Printf("I-cache:      %d hits, %d misses\n", cstats.Hits, cstats.Misses)
	}
}

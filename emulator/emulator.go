// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"iter"
	"maps"

	"github.com/ezrec/um/cpu"
	"github.com/ezrec/um/internal"
	"github.com/ezrec/um/io"
)

var _emulator_defines = map[string]string{
	"PROGRAM_SEGMENT": "0",
}

// Emulator state. CPU + tape + boot image.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Tape io.Tape // Tape IO channel.
	Rom  io.Rom  // Boot image, loaded into segment 0 on reset.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(nil),
		Program: &cpu.Program{},
	}

	emu.Cpu.SetChannel(&emu.Tape)

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Tape.Defines(),
	)
}

// Reset the emulator state. An assembled program takes precedence over
// a previously loaded boot image.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose

	if len(emu.Program.Opcodes) > 0 {
		emu.Rom.Data = emu.Program.Binary()
	}

	emu.Cpu.Reset(emu.Rom.Data)
}

// Ticks returns the total instructions executed since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Code returns the instruction at the program counter, as assembled.
// Only meaningful while segment 0 still holds the assembled program.
func (emu *Emulator) Code() cpu.Code {
	debug := emu.Program.Debug(emu.Cpu.Pc)
	if debug.Opcode == nil {
		return cpu.Code(0)
	}

	return debug.Opcode.Code
}

// LineNo returns the source line number for the executing opcode,
// or 0 when unknown.
func (emu *Emulator) LineNo() int {
	debug := emu.Program.Debug(emu.Cpu.Pc)
	if debug.Opcode == nil {
		return 0
	}

	return debug.Opcode.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()

	done, err = emu.Cpu.Step()
	if err != nil {
		err = &ErrRuntime{LineNo: lineno, Err: err}
	}

	return
}

// Run ticks the emulator until a halt instruction or a fault.
func (emu *Emulator) Run() (err error) {
	var done bool
	for !done {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}

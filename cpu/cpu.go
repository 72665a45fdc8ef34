package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/um/io"
	"github.com/ezrec/um/mem"
)

// Channel is an I/O channel interface.
type Channel io.Channel

// EOF_SENTINEL is stored by the in instruction once input is exhausted.
const EOF_SENTINEL = ^uint32(0)

var _cpu_defines = map[string]string{
	"EOF":       fmt.Sprintf("0x%x", EOF_SENTINEL),
	"REGISTERS": "8",
}

// Cpu is the simulation context for the Universal Machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Mem *mem.Mem // Segmented memory.

	Pc       uint32    // Program counter into segment 0.
	Register [8]uint32 // Register bank.

	Ticks int // Executed instruction counter.

	channel Channel // I/O channel for the in and out instructions.
}

// NewCpu creates a new CPU with program as the contents of segment 0.
func NewCpu(program []uint32) (cpu *Cpu) {
	cpu = &Cpu{
		Mem: mem.NewMem(program),
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("   pc: %04X_%04X\n", cpu.Pc>>16, cpu.Pc&0xffff)
	for n, val := range cpu.Register {
		text += fmt.Sprintf("   r%d: %04X_%04X\n", n, val>>16, val&0xffff)
	}

	return
}

// Reset the CPU state.
// - Clears the registers and the program counter.
// - Zeros the tick counter.
// - Discards all segments and installs program as segment 0.
// - Rewinds the I/O channel.
func (cpu *Cpu) Reset(program []uint32) {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	cpu.Pc = 0
	cpu.Ticks = 0

	if cpu.Mem == nil {
		cpu.Mem = mem.NewMem(program)
	} else {
		cpu.Mem.Reset(program)
	}

	if cpu.channel != nil {
		cpu.channel.Rewind()
	}
}

// SetChannel attaches the channel used by the in and out instructions.
func (cpu *Cpu) SetChannel(channel Channel) {
	cpu.channel = channel
}

// FetchCode fetches the instruction at the program counter.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	seg := cpu.Mem.Segment[0]
	if uint64(cpu.Pc) >= uint64(len(seg)) {
		err = ErrPcRange
		return
	}

	code = Code(seg[cpu.Pc])

	return
}

// Step executes a single instruction cycle. done is true after a halt.
// Any fault is fatal: the error carries the program counter and the
// instruction word, and the CPU must not be stepped again.
func (cpu *Cpu) Step() (done bool, err error) {
	pc := cpu.Pc

	code, err := cpu.FetchCode()
	if err != nil {
		err = errors.Join(ErrOpcode{Pc: pc, Code: code}, err)
		return
	}

	if cpu.Verbose {
		log.Printf("%08x: %v", pc, code)
	}

	// The program counter advances before the semantics run, so a
	// self-referential instruction sees its natural successor.
	// loadprog overrides this below.
	cpu.Pc = pc + 1

	done, err = cpu.Execute(code)
	if err != nil {
		err = errors.Join(ErrOpcode{Pc: pc, Code: code}, err)
		return
	}

	cpu.Ticks++

	return
}

// Run executes instructions until a halt instruction or a fault.
func (cpu *Cpu) Run() (err error) {
	var done bool
	for !done {
		done, err = cpu.Step()
		if err != nil {
			return
		}
	}

	return
}

// Execute executes a single decoded instruction. The common arithmetic,
// move, load, and store instructions do not allocate; only map and
// unmap touch the allocator.
func (cpu *Cpu) Execute(code Code) (done bool, err error) {
	r := &cpu.Register

	switch code.Op() {
	case OP_CMOV:
		if r[code.C()] != 0 {
			r[code.A()] = r[code.B()]
		}
	case OP_LOAD:
		r[code.A()], err = cpu.Mem.Load(r[code.B()], r[code.C()])
	case OP_STORE:
		err = cpu.Mem.Store(r[code.A()], r[code.B()], r[code.C()])
	case OP_ADD:
		r[code.A()] = r[code.B()] + r[code.C()]
	case OP_MUL:
		r[code.A()] = r[code.B()] * r[code.C()]
	case OP_DIV:
		if r[code.C()] == 0 {
			err = ErrDivideByZero
			return
		}
		r[code.A()] = r[code.B()] / r[code.C()]
	case OP_NAND:
		r[code.A()] = ^(r[code.B()] & r[code.C()])
	case OP_HALT:
		done = true
	case OP_MAP:
		r[code.A()] = cpu.Mem.Map(r[code.C()])
	case OP_UNMAP:
		err = cpu.Mem.Unmap(r[code.C()])
	case OP_OUT:
		value := r[code.C()]
		if value > 0xff {
			err = ErrOutputRange
			return
		}
		if cpu.channel == nil {
			err = ErrChannelInvalid
			return
		}
		err = cpu.channel.WriteByte(byte(value))
	case OP_IN:
		r[code.C()] = EOF_SENTINEL
		if cpu.channel != nil {
			if value, ok := cpu.channel.ReadByte(); ok {
				r[code.C()] = uint32(value)
			}
		}
	case OP_LOADPROG:
		err = cpu.Mem.LoadProgram(r[code.B()])
		if err != nil {
			return
		}
		cpu.Pc = r[code.C()]
	case OP_VALUE:
		a, value := code.ValueDecode()
		r[a] = value
	default:
		err = ErrOpcodeDecode
	}

	return
}

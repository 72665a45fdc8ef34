package cpu

import (
	"fmt"
)

// Op is an opcode, held in bits 28-31 of an instruction word.
type Op uint32

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_CMOV     = Op(0)  // cmov
	OP_LOAD     = Op(1)  // load
	OP_STORE    = Op(2)  // store
	OP_ADD      = Op(3)  // add
	OP_MUL      = Op(4)  // mul
	OP_DIV      = Op(5)  // div
	OP_NAND     = Op(6)  // nand
	OP_HALT     = Op(7)  // halt
	OP_MAP      = Op(8)  // map
	OP_UNMAP    = Op(9)  // unmap
	OP_OUT      = Op(10) // out
	OP_IN       = Op(11) // in
	OP_LOADPROG = Op(12) // loadprog
	OP_VALUE    = Op(13) // value
)

// OP_COUNT is the number of defined opcodes. Values at or above it do
// not dispatch.
const OP_COUNT = 14

// VALUE_MAX is the largest immediate a value instruction can carry.
const VALUE_MAX = (1 << 25) - 1

// Code is a single 32-bit instruction word.
//
// Layout for opcodes 0-12: bits 6-8 are register A, bits 3-5 register B,
// bits 0-2 register C. For OP_VALUE: bits 25-27 are the destination
// register and bits 0-24 an unsigned immediate.
type Code uint32

// Op returns the opcode field.
func (code Code) Op() Op {
	return Op(code >> 28)
}

// A returns the register A index.
func (code Code) A() uint32 {
	return uint32(code>>6) & 7
}

// B returns the register B index.
func (code Code) B() uint32 {
	return uint32(code>>3) & 7
}

// C returns the register C index.
func (code Code) C() uint32 {
	return uint32(code) & 7
}

// ValueDecode decodes and returns the destination register and the
// 25-bit immediate of a value instruction.
func (code Code) ValueDecode() (a uint32, value uint32) {
	a = uint32(code>>25) & 7
	value = uint32(code) & VALUE_MAX
	return
}

// MakeCode creates a three-register instruction.
func MakeCode(op Op, a, b, c uint32) Code {
	return Code((uint32(op) << 28) | ((a & 7) << 6) | ((b & 7) << 3) | ((c & 7) << 0))
}

// MakeCodeValue creates a value (load immediate) instruction.
func MakeCodeValue(a uint32, value uint32) Code {
	return Code((uint32(OP_VALUE) << 28) | ((a & 7) << 25) | (value & VALUE_MAX))
}

// String returns the assembly language representation of this instruction.
func (code Code) String() (out string) {
	op := code.Op()

	switch op {
	case OP_HALT:
		out = op.String()
	case OP_VALUE:
		a, value := code.ValueDecode()
		out = fmt.Sprintf("%v r%d %#x", op, a, value)
	case OP_MAP:
		out = fmt.Sprintf("%v r%d r%d", op, code.A(), code.C())
	case OP_UNMAP, OP_OUT, OP_IN:
		out = fmt.Sprintf("%v r%d", op, code.C())
	case OP_LOADPROG:
		out = fmt.Sprintf("%v r%d r%d", op, code.B(), code.C())
	case OP_CMOV, OP_LOAD, OP_STORE, OP_ADD, OP_MUL, OP_DIV, OP_NAND:
		out = fmt.Sprintf("%v r%d r%d r%d", op, code.A(), code.B(), code.C())
	default:
		out = fmt.Sprintf("%v 0x%08x", op, uint32(code))
	}

	return
}

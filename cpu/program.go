package cpu

import (
	"iter"
)

// Opcode represents a line of assembled code with its source location
// and generated instruction word.
type Opcode struct {
	LineNo    int
	Pc        int
	Words     []string
	Code      Code
	LinkLabel string
}

// Program is an assembled listing: one Opcode per emitted word, in
// program-counter order.
type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
}

func (prog *Program) Debug(pc uint32) (dbg Debug) {
	if uint64(pc) < uint64(len(prog.Opcodes)) {
		dbg = Debug{
			Opcode: &prog.Opcodes[pc],
		}
	}

	return
}

func (prog *Program) Binary() (bins []uint32) {
	for _, code := range prog.Opcodes {
		bins = append(bins, uint32(code.Code))
	}

	return
}

func (prog *Program) Codes() iter.Seq2[uint32, Code] {
	return func(yield func(pc uint32, code Code) bool) {
		for n, op := range prog.Opcodes {
			if !yield(uint32(n), op.Code) {
				return
			}
		}
	}
}

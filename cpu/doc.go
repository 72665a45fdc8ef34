// Package cpu implements the processor and assembler for the Universal
// Machine.
//
// The processor consists of eight 32-bit general-purpose registers
// (r0-r7), a program counter into segment 0 of the segmented memory,
// and a closed set of fourteen instructions. Execution is a synchronous
// fetch, decode, dispatch loop that runs until a halt instruction or a
// fatal fault.
//
// The assembler provides a textual language for the instruction set,
// supporting macros, labels, equates, raw data words, and compile-time
// expression evaluation.
package cpu

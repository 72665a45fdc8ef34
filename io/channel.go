// Package io provides the external interfaces of the Universal Machine:
// the byte-oriented tape channel used by the Input and Output
// instructions, and the ROM program image with its on-disk word format.
package io

// Channel defines the interface for the machine's I/O channel.
// Channels operate at the byte level, one unit per Input or Output
// instruction, in strict program order.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// ReadByte reads one byte. ok is false once input is exhausted,
	// and stays false on every later read.
	ReadByte() (value byte, ok bool)
	// WriteByte writes a single byte to the channel.
	WriteByte(value byte) error
}

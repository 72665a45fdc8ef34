package io

import (
	"io"
	"iter"
	"maps"
)

// Tape provides sequential I/O for the machine's Input and Output
// instructions. It wraps an io.Reader for input and io.Writer for
// output. End of input is a stable condition: once the reader is
// exhausted, every later ReadByte reports exhaustion again.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	exhausted bool
	out       [1]byte
}

var _ Channel = (*Tape)(nil)

// Defines returns an iter of defines for the channel.
func (tc *Tape) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{})
}

// Rewind clears the exhaustion latch. The underlying streams are
// sequential and are not repositioned.
func (tc *Tape) Rewind() {
	tc.exhausted = false
}

// ReadByte reads the next byte from the input stream. ok is false at
// end of input, and remains false even if the reader would produce
// more data afterwards.
func (tc *Tape) ReadByte() (value byte, ok bool) {
	if tc.exhausted || tc.Input == nil {
		return
	}

	var one [1]byte
	for {
		n, err := tc.Input.Read(one[:])
		if n > 0 {
			return one[0], true
		}
		if err != nil {
			tc.exhausted = true
			return
		}
	}
}

// WriteByte writes a byte to the output stream.
func (tc *Tape) WriteByte(value byte) (err error) {
	if tc.Output == nil {
		err = ErrNoOutput
		return
	}

	tc.out[0] = value
	_, err = tc.Output.Write(tc.out[:])

	return
}

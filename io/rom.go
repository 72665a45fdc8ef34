package io

import (
	"encoding/binary"
	"io"
)

// Rom is a program image: the ordered sequence of 32-bit words that
// becomes the initial contents of segment 0. On disk an image is the
// same sequence of words, each big-endian.
type Rom struct {
	Data []uint32
}

// Unmarshal loads a program image from a reader, replacing any existing
// data. An image whose size is not a whole number of words is rejected.
func (rc *Rom) Unmarshal(file io.Reader) (err error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return
	}

	if len(data)%4 != 0 {
		err = ErrImageTruncated
		return
	}

	rc.Data = make([]uint32, len(data)/4)
	for n := range rc.Data {
		rc.Data[n] = binary.BigEndian.Uint32(data[n*4:])
	}

	return
}

// Marshal writes the program image to a writer as big-endian words.
func (rc *Rom) Marshal(file io.Writer) (err error) {
	data := make([]byte, 4*len(rc.Data))
	for n, word := range rc.Data {
		binary.BigEndian.PutUint32(data[n*4:], word)
	}

	_, err = file.Write(data)

	return
}

package io

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRom_Unmarshal(t *testing.T) {
	assert := assert.New(t)

	// Two big-endian words.
	image := []byte{0xd0, 0x00, 0x00, 0x48, 0x70, 0x00, 0x00, 0x00}

	rom := &Rom{}
	assert.NoError(rom.Unmarshal(bytes.NewReader(image)))

	assert.Equal([]uint32{0xd0000048, 0x70000000}, rom.Data)
}

func TestRom_UnmarshalEmpty(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []uint32{1}}
	assert.NoError(rom.Unmarshal(bytes.NewReader(nil)))
	assert.Empty(rom.Data)
}

func TestRom_UnmarshalTruncated(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{}
	err := rom.Unmarshal(bytes.NewReader([]byte{0xd0, 0x00, 0x00}))
	assert.ErrorIs(err, ErrImageTruncated)
}

func TestRom_Marshal(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []uint32{0xd0000048, 0x70000000}}

	image := &bytes.Buffer{}
	assert.NoError(rom.Marshal(image))

	assert.Equal([]byte{0xd0, 0x00, 0x00, 0x48, 0x70, 0x00, 0x00, 0x00}, image.Bytes())

	// A marshaled image loads back identically.
	loaded := &Rom{}
	assert.NoError(loaded.Unmarshal(bytes.NewReader(image.Bytes())))
	assert.Equal(rom.Data, loaded.Data)
}

package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMem_Reset(t *testing.T) {
	assert := assert.New(t)

	mm := NewMem([]uint32{1, 2, 3})

	assert.True(mm.Mapped(0))
	assert.Equal(uint32(3), mm.Len(0))

	value, err := mm.Load(0, 2)
	assert.NoError(err)
	assert.Equal(uint32(3), value)

	mm.Reset(nil)
	assert.True(mm.Mapped(0))
	assert.Equal(uint32(0), mm.Len(0))
}

func TestMem_ResetCopies(t *testing.T) {
	assert := assert.New(t)

	program := []uint32{10, 20}
	mm := NewMem(program)

	assert.NoError(mm.Store(0, 0, 99))
	assert.Equal(uint32(10), program[0])
}

func TestMem_Map(t *testing.T) {
	assert := assert.New(t)

	mm := NewMem(nil)

	id := mm.Map(4)
	assert.NotEqual(uint32(0), id)
	assert.True(mm.Mapped(id))
	assert.Equal(uint32(4), mm.Len(id))

	// New segments are zero-filled.
	for offset := range uint32(4) {
		value, err := mm.Load(id, offset)
		assert.NoError(err)
		assert.Equal(uint32(0), value)
	}
}

func TestMem_MapZeroLength(t *testing.T) {
	assert := assert.New(t)

	mm := NewMem(nil)

	id := mm.Map(0)
	assert.True(mm.Mapped(id))
	assert.Equal(uint32(0), mm.Len(id))

	_, err := mm.Load(id, 0)
	assert.ErrorIs(err, ErrBounds)
}

func TestMem_Unmap(t *testing.T) {
	assert := assert.New(t)

	mm := NewMem(nil)

	id := mm.Map(8)
	assert.NoError(mm.Unmap(id))
	assert.False(mm.Mapped(id))

	// Stale identifier faults until reused.
	_, err := mm.Load(id, 0)
	assert.ErrorIs(err, ErrUnmapped)
	assert.ErrorIs(mm.Store(id, 0, 1), ErrUnmapped)
	assert.ErrorIs(mm.Unmap(id), ErrUnmapped)
}

func TestMem_UnmapProgram(t *testing.T) {
	assert := assert.New(t)

	mm := NewMem([]uint32{0})

	assert.ErrorIs(mm.Unmap(0), ErrProgramSegment)
	assert.True(mm.Mapped(0))
}

func TestMem_UnmapUnknown(t *testing.T) {
	assert := assert.New(t)

	mm := NewMem(nil)

	assert.ErrorIs(mm.Unmap(42), ErrUnmapped)
}

func TestMem_IdentifierReuse(t *testing.T) {
	assert := assert.New(t)

	mm := NewMem(nil)

	first := mm.Map(1)
	second := mm.Map(1)
	assert.NotEqual(first, second)

	assert.NoError(mm.Unmap(first))

	// The released identifier is reused before the table grows.
	reused := mm.Map(2)
	assert.Equal(first, reused)
	assert.Equal(uint32(2), mm.Len(reused))

	// Reused segments come back zero-filled.
	value, err := mm.Load(reused, 0)
	assert.NoError(err)
	assert.Equal(uint32(0), value)
}

func TestMem_FreePoolOrder(t *testing.T) {
	assert := assert.New(t)

	mm := NewMem(nil)

	a := mm.Map(1)
	b := mm.Map(1)
	c := mm.Map(1)

	assert.NoError(mm.Unmap(a))
	assert.NoError(mm.Unmap(b))
	assert.NoError(mm.Unmap(c))

	// Most recently released, first reused.
	assert.Equal(c, mm.Map(1))
	assert.Equal(b, mm.Map(1))
	assert.Equal(a, mm.Map(1))
}

func TestMem_LoadStore(t *testing.T) {
	assert := assert.New(t)

	mm := NewMem(nil)
	id := mm.Map(4)

	assert.NoError(mm.Store(id, 2, 99))

	value, err := mm.Load(id, 2)
	assert.NoError(err)
	assert.Equal(uint32(99), value)

	_, err = mm.Load(id, 4)
	assert.ErrorIs(err, ErrBounds)
	assert.ErrorIs(mm.Store(id, 4, 0), ErrBounds)
}

func TestMem_LoadProgram(t *testing.T) {
	assert := assert.New(t)

	mm := NewMem([]uint32{1, 2, 3, 4})

	id := mm.Map(2)
	assert.NoError(mm.Store(id, 0, 7))
	assert.NoError(mm.Store(id, 1, 8))

	assert.NoError(mm.LoadProgram(id))

	// Segment 0 is replaced wholesale, length included.
	assert.Equal(uint32(2), mm.Len(0))
	value, err := mm.Load(0, 1)
	assert.NoError(err)
	assert.Equal(uint32(8), value)

	// The copy is independent of the source segment.
	assert.NoError(mm.Store(id, 1, 9))
	value, err = mm.Load(0, 1)
	assert.NoError(err)
	assert.Equal(uint32(8), value)
}

func TestMem_LoadProgramSelf(t *testing.T) {
	assert := assert.New(t)

	mm := NewMem([]uint32{1, 2, 3})

	assert.NoError(mm.LoadProgram(0))
	assert.Equal(uint32(3), mm.Len(0))
}

func TestMem_LoadProgramUnmapped(t *testing.T) {
	assert := assert.New(t)

	mm := NewMem(nil)

	id := mm.Map(1)
	assert.NoError(mm.Unmap(id))

	assert.ErrorIs(mm.LoadProgram(id), ErrUnmapped)
	assert.ErrorIs(mm.LoadProgram(77), ErrUnmapped)
}

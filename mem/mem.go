// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package mem implements the segmented memory of the Universal Machine.
//
// Memory is a table of independently sized arrays of 32-bit words
// ("segments"), each addressed by an integer identifier. Segment 0 holds
// the executing program, is created at reset, and can never be unmapped.
// Identifiers of released segments circulate through a free pool and are
// reused before the table grows.
package mem

// Mem is the segment table. It is the sole owner of all segment storage;
// identifiers are non-owning handles into it.
type Mem struct {
	Segment [][]uint32 // Mapped segments. A nil entry is an unmapped slot.

	free []uint32 // Released identifiers, most recently released last.
}

// NewMem creates a memory with a copy of program as segment 0.
func NewMem(program []uint32) (mm *Mem) {
	mm = &Mem{}
	mm.Reset(program)

	return
}

// Reset discards all segments and the free pool, and installs a copy of
// program as segment 0.
func (mm *Mem) Reset(program []uint32) {
	seg := make([]uint32, len(program))
	copy(seg, program)

	mm.Segment = append(mm.Segment[:0], seg)
	mm.free = mm.free[:0]
}

// Map creates a new zero-filled segment of length words and returns its
// identifier. Identifiers from the free pool are reused before the table
// grows. Map never returns identifier 0.
func (mm *Mem) Map(length uint32) (id uint32) {
	seg := make([]uint32, length)

	if n := len(mm.free); n > 0 {
		id = mm.free[n-1]
		mm.free = mm.free[:n-1]
		mm.Segment[id] = seg
		return
	}

	id = uint32(len(mm.Segment))
	mm.Segment = append(mm.Segment, seg)

	return
}

// Unmap releases the segment id, clears its backing storage, and returns
// the identifier to the free pool. Segment 0 cannot be unmapped.
func (mm *Mem) Unmap(id uint32) (err error) {
	if id == 0 {
		err = ErrProgramSegment
		return
	}
	if !mm.Mapped(id) {
		err = ErrUnmapped
		return
	}

	mm.Segment[id] = nil
	mm.free = append(mm.free, id)

	return
}

// Mapped reports whether id denotes a live segment.
func (mm *Mem) Mapped(id uint32) bool {
	return uint64(id) < uint64(len(mm.Segment)) && mm.Segment[id] != nil
}

// Len returns the length in words of segment id, or 0 if id is unmapped.
func (mm *Mem) Len(id uint32) (length uint32) {
	if mm.Mapped(id) {
		length = uint32(len(mm.Segment[id]))
	}

	return
}

// Load returns the word at offset in segment id.
func (mm *Mem) Load(id, offset uint32) (value uint32, err error) {
	if uint64(id) >= uint64(len(mm.Segment)) {
		err = ErrUnmapped
		return
	}
	seg := mm.Segment[id]
	if seg == nil {
		err = ErrUnmapped
		return
	}
	if uint64(offset) >= uint64(len(seg)) {
		err = ErrBounds
		return
	}

	value = seg[offset]

	return
}

// Store writes value to the word at offset in segment id.
func (mm *Mem) Store(id, offset, value uint32) (err error) {
	if uint64(id) >= uint64(len(mm.Segment)) {
		err = ErrUnmapped
		return
	}
	seg := mm.Segment[id]
	if seg == nil {
		err = ErrUnmapped
		return
	}
	if uint64(offset) >= uint64(len(seg)) {
		err = ErrBounds
		return
	}

	seg[offset] = value

	return
}

// LoadProgram replaces the contents and length of segment 0 with a copy
// of segment id. Loading from segment 0 itself leaves memory unchanged.
func (mm *Mem) LoadProgram(id uint32) (err error) {
	if !mm.Mapped(id) {
		err = ErrUnmapped
		return
	}
	if id == 0 {
		return
	}

	src := mm.Segment[id]
	seg := make([]uint32, len(src))
	copy(seg, src)
	mm.Segment[0] = seg

	return
}

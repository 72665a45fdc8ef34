package mem

import (
	"errors"

	"github.com/ezrec/um/translate"
)

var f = translate.From

var (
	// Segment errors
	ErrUnmapped       = errors.New(f("segment unmapped"))
	ErrBounds         = errors.New(f("segment offset out of range"))
	ErrProgramSegment = errors.New(f("segment 0 cannot be unmapped"))
)

package io

import (
	"errors"

	"github.com/ezrec/um/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrNoOutput       = errors.New(f("no output attached"))
	ErrImageTruncated = errors.New(f("image is not a whole number of words"))
)

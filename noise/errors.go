package noise

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimension = errors.New("invalid volume dimension")
	ErrInvalidRadius    = errors.New("invalid blur radius")
	ErrInvalidKernel    = errors.New("invalid kernel")
	ErrIO               = errors.New("volume i/o failure")
	ErrChecksum         = errors.New("texture pack checksum mismatch")
)

func dimError(h, w, d int) error {
	return fmt.Errorf("%w: %dx%dx%d (all must be > 0)", ErrInvalidDimension, h, w, d)
}

func ioError(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrIO, op, path, err)
}

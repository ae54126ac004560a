package bmpsteg

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat matches any *FormatError.
	ErrFormat = errors.New("bmpsteg: invalid container format")

	// ErrCapacity matches any *CapacityError.
	ErrCapacity = errors.New("bmpsteg: message exceeds carrier capacity")
)

// FormatError reports a container that is not a BMP or is too short to
// hold its header. It is returned before any carrier byte is read.
type FormatError struct {
	// Got holds the leading header bytes that failed the magic check.
	Got []byte
	// Reason is set when the failure is not a magic mismatch.
	Reason string
}

func (e *FormatError) Error() string {
	if e.Reason != "" {
		return "bmpsteg: invalid container: " + e.Reason
	}
	return fmt.Sprintf("bmpsteg: bad magic tag %q, want %q", e.Got, Magic)
}

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// CapacityError reports a message whose bitstream does not fit the carrier.
type CapacityError struct {
	Required  int // bits needed, terminator included
	Available int // carrier bytes, one bit each
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("bmpsteg: message needs %d carrier bytes, only %d available",
		e.Required, e.Available)
}

// Is reports whether target is ErrCapacity.
func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacity
}

package bmpsteg

const (
	// Magic is the two-byte tag every BMP header starts with.
	Magic = "BM"

	// DefaultHeaderLength is the size of a BITMAPFILEHEADER plus a
	// BITMAPINFOHEADER. Everything past it is treated as carrier.
	DefaultHeaderLength = 54

	// Terminator marks the end of the embedded message.
	Terminator byte = 0x00
)

// RequiredBits returns the number of carrier bytes needed to embed a
// message of the given length, terminator included.
func RequiredBits(messageLength int) int {
	return 8 * (messageLength + 1)
}

// HasCapacity reports whether a carrier of carrierLength bytes can hold a
// message of messageLength bytes.
func HasCapacity(carrierLength, messageLength int) bool {
	return carrierLength >= RequiredBits(messageLength)
}

// Capacity returns the longest message that fits a carrier of the given
// length. It is -1 when the carrier cannot even hold the terminator.
func Capacity(carrierLength int) int {
	if carrierLength < 0 {
		return -1
	}
	return carrierLength/8 - 1
}

// CheckMagic verifies that header starts with Magic.
func CheckMagic(header []byte) error {
	if len(header) < len(Magic) {
		return &FormatError{
			Got:    append([]byte(nil), header...),
			Reason: "header shorter than magic tag",
		}
	}
	if string(header[:len(Magic)]) != Magic {
		return &FormatError{Got: append([]byte(nil), header[:len(Magic)]...)}
	}
	return nil
}

// frame returns a copy of message with the terminator appended.
func frame(message []byte) []byte {
	framed := make([]byte, len(message)+1)
	copy(framed, message)
	framed[len(message)] = Terminator
	return framed
}

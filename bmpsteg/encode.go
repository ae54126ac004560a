package bmpsteg

// Bitstream expands message plus terminator into individual bits, one per
// element, MSB-first per byte. Its length is always RequiredBits(len(message)).
func Bitstream(message []byte) []byte {
	br := NewBitReader(frame(message))
	bits := make([]byte, 0, br.Remaining())
	for br.Remaining() > 0 {
		bit, _ := br.ReadBit()
		bits = append(bits, bit)
	}
	return bits
}

// Embed writes message into the LSBs of a copy of carrier and returns the
// copy. Carrier bytes past RequiredBits(len(message)) are left untouched.
// carrier itself is never modified.
//
// Returns a *CapacityError if the framed message does not fit.
func Embed(carrier, message []byte) ([]byte, error) {
	if !HasCapacity(len(carrier), len(message)) {
		return nil, &CapacityError{
			Required:  RequiredBits(len(message)),
			Available: len(carrier),
		}
	}

	out := make([]byte, len(carrier))
	copy(out, carrier)

	br := NewBitReader(frame(message))
	for i := 0; br.Remaining() > 0; i++ {
		bit, err := br.ReadBit()
		if err != nil {
			return nil, err
		}
		// Clear the LSB, then set it to the next message bit
		out[i] = (out[i] & 0xFE) | bit
	}

	return out, nil
}

// Encode hides message in carrier and returns a new buffer holding header
// followed by the modified carrier.
//
// Parameters:
//   - header: container header, passed through unchanged; must start with "BM"
//   - carrier: pixel data following the header
//   - message: bytes to hide; a 0x00 inside it truncates the decoded result
//
// Returns a *FormatError for a bad magic tag (checked first) or a
// *CapacityError if the message does not fit.
func Encode(header, carrier, message []byte) ([]byte, error) {
	if err := CheckMagic(header); err != nil {
		return nil, err
	}

	stego, err := Embed(carrier, message)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(header)+len(stego))
	out = append(out, header...)
	out = append(out, stego...)
	return out, nil
}

package bmpsteg

// ExtractFound reads carrier LSBs, regroups them MSB-first into bytes and
// stops at the first terminator. found reports whether a terminator was
// seen; when it was not, message holds every complete byte rebuilt from the
// carrier and a trailing group of fewer than eight bits is dropped.
func ExtractFound(carrier []byte) (message []byte, found bool) {
	bb := NewBitBuffer(len(carrier) / 8)

	for _, b := range carrier {
		bb.AppendBit(b & 1)
		if !bb.Aligned() {
			continue
		}
		if last, _ := bb.LastByte(); last == Terminator {
			out := bb.CompleteBytes()
			return out[:len(out)-1], true
		}
	}

	return bb.CompleteBytes(), false
}

// Extract is ExtractFound without the terminator flag. It never fails:
// a carrier with no terminator yields whatever bytes its LSBs spell.
func Extract(carrier []byte) []byte {
	message, _ := ExtractFound(carrier)
	return message
}

// Decode verifies the header magic tag and extracts the message hidden in
// carrier.
//
// Returns a *FormatError if header does not start with "BM". A missing
// terminator is not an error.
func Decode(header, carrier []byte) ([]byte, error) {
	if err := CheckMagic(header); err != nil {
		return nil, err
	}
	return Extract(carrier), nil
}

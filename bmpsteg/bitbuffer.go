package bmpsteg

// BitBuffer is a variable-length bit buffer that packs bits MSB-first.
//
// The decoder feeds it one carrier LSB at a time; every eighth bit completes
// a message byte.
//
// Bit Ordering:
//   - First bit appended goes to bit position 7
//   - Second bit goes to position 6, etc.
type BitBuffer struct {
	data    []byte
	numBits int
}

// NewBitBuffer creates a new empty bit buffer with room for sizeHint bytes.
func NewBitBuffer(sizeHint int) *BitBuffer {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &BitBuffer{
		data: make([]byte, 0, sizeHint),
	}
}

// Aligned reports whether the buffer ends on a byte boundary.
func (bb *BitBuffer) Aligned() bool {
	return bb.numBits%8 == 0
}

// AppendBit appends a single bit. Any non-zero value is a 1.
func (bb *BitBuffer) AppendBit(bit byte) {
	byteIndex := bb.numBits / 8
	bitIndex := bb.numBits % 8

	if byteIndex >= len(bb.data) {
		bb.data = append(bb.data, 0)
	}
	if bit != 0 {
		bb.data[byteIndex] |= 1 << (7 - bitIndex)
	}
	bb.numBits++
}

// LastByte returns the most recently completed byte. ok is false until at
// least eight bits have been appended.
func (bb *BitBuffer) LastByte() (b byte, ok bool) {
	complete := bb.numBits / 8
	if complete == 0 {
		return 0, false
	}
	return bb.data[complete-1], true
}

// CompleteBytes returns only the fully populated bytes, dropping a trailing
// partial group.
func (bb *BitBuffer) CompleteBytes() []byte {
	numBytes := bb.numBits / 8
	result := make([]byte, numBytes)
	copy(result, bb.data[:numBytes])
	return result
}

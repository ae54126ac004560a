package bmpsteg

import "errors"

// ErrEOF is returned when reading past the end of available data.
var ErrEOF = errors.New("no more bits to read")

// BitReader provides sequential bit-level reading from bytes.
//
// Bits are read MSB-first within each byte, which is the order the encoder
// spreads message bits over the carrier:
//   - First bit read is bit position 7 (MSB)
//   - Last bit read is bit position 0 (LSB)
type BitReader struct {
	data      []byte
	totalBits int
	position  int
}

// NewBitReader creates a new bit reader from bytes.
func NewBitReader(data []byte) *BitReader {
	return &BitReader{
		data:      data,
		totalBits: len(data) * 8,
	}
}

// Remaining returns the number of bits remaining to read.
func (br *BitReader) Remaining() int {
	return br.totalBits - br.position
}

// ReadBit reads and consumes a single bit.
func (br *BitReader) ReadBit() (byte, error) {
	if br.position >= br.totalBits {
		return 0, ErrEOF
	}

	byteIndex := br.position / 8
	bitIndex := br.position % 8
	br.position++

	// MSB-first: bit 0 in stream is bit 7 of first byte
	return (br.data[byteIndex] >> (7 - bitIndex)) & 1, nil
}

// Package bmpsteg hides a byte message inside the pixel data of an
// uncompressed BMP image using least-significant-bit substitution, and
// recovers it again.
//
// The container is treated as an opaque header (54 bytes by default)
// followed by a carrier buffer. Each carrier byte holds exactly one message
// bit in its LSB. The message is framed by a single 0x00 terminator byte and
// expanded MSB-first, so a message of M bytes needs 8*(M+1) carrier bytes.
//
// Basic usage:
//
//	// Hide a message in a whole BMP file
//	stego, err := bmpsteg.Default().Hide(file, []byte("Hi"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Recover it
//	message, err := bmpsteg.Default().Reveal(stego)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Limitations: a message that itself contains 0x00 is truncated at that byte
// on decode, and LSB substitution offers no confidentiality. Decoding an
// image that holds no message returns whatever bytes the LSBs happen to
// spell before the first zero group.
package bmpsteg

package bmpsteg

import "fmt"

// Version is the library version.
const Version = "1.0.0"

// NoHeader is an Options.HeaderLength value for carriers with no header.
// It requires SkipMagicCheck.
const NoHeader = -1

// Options configures a Codec.
type Options struct {
	// HeaderLength is the number of leading container bytes passed through
	// untouched. Zero selects DefaultHeaderLength and NoHeader selects none.
	HeaderLength int

	// SkipMagicCheck disables the "BM" tag check so raw or header-less
	// carriers can be processed.
	SkipMagicCheck bool
}

// Codec hides and reveals messages in whole container files, splitting
// each file into header and carrier at a fixed offset.
type Codec struct {
	headerLength int
	checkMagic   bool
}

// New creates a Codec from opts.
func New(opts Options) (*Codec, error) {
	headerLength := opts.HeaderLength
	switch headerLength {
	case 0:
		headerLength = DefaultHeaderLength
	case NoHeader:
		headerLength = 0
	}
	if headerLength < 0 {
		return nil, fmt.Errorf("header length must not be negative, got %d", headerLength)
	}
	if !opts.SkipMagicCheck && headerLength < len(Magic) {
		return nil, fmt.Errorf("header length %d cannot hold the %q magic tag", headerLength, Magic)
	}
	return &Codec{
		headerLength: headerLength,
		checkMagic:   !opts.SkipMagicCheck,
	}, nil
}

// Default returns a Codec with a 54-byte header and magic checking enabled.
func Default() *Codec {
	return &Codec{headerLength: DefaultHeaderLength, checkMagic: true}
}

// HeaderLength returns the configured header length.
func (c *Codec) HeaderLength() int {
	return c.headerLength
}

// Capacity returns the longest message a file of fileLength bytes can hold,
// or -1 when nothing fits.
func (c *Codec) Capacity(fileLength int) int {
	if fileLength < c.headerLength {
		return -1
	}
	return Capacity(fileLength - c.headerLength)
}

// Split separates file into header and carrier views. The views alias file.
func (c *Codec) Split(file []byte) (header, carrier []byte, err error) {
	if len(file) < c.headerLength {
		return nil, nil, &FormatError{
			Reason: fmt.Sprintf("file is %d bytes, shorter than the %d-byte header", len(file), c.headerLength),
		}
	}
	header, carrier = file[:c.headerLength], file[c.headerLength:]
	if c.checkMagic {
		if err := CheckMagic(header); err != nil {
			return nil, nil, err
		}
	}
	return header, carrier, nil
}

// Hide embeds message in file and returns a new file of the same length.
// file is not modified.
func (c *Codec) Hide(file, message []byte) ([]byte, error) {
	header, carrier, err := c.Split(file)
	if err != nil {
		return nil, err
	}

	stego, err := Embed(carrier, message)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(file))
	out = append(out, header...)
	out = append(out, stego...)
	return out, nil
}

// Reveal extracts the message hidden in file.
func (c *Codec) Reveal(file []byte) ([]byte, error) {
	message, _, err := c.RevealFound(file)
	return message, err
}

// RevealFound is Reveal that also reports whether a terminator was found.
func (c *Codec) RevealFound(file []byte) ([]byte, bool, error) {
	_, carrier, err := c.Split(file)
	if err != nil {
		return nil, false, err
	}
	message, found := ExtractFound(carrier)
	return message, found, nil
}

package bmpsteg

import (
	"bytes"
	"errors"
	"testing"
)

func testFile(carrierLength int, fill byte) []byte {
	return append(testHeader(), filled(carrierLength, fill)...)
}

func TestVersion(t *testing.T) {
	if Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %s", Version)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		header  int
		wantErr bool
	}{
		{"defaults", Options{}, 54, false},
		{"custom", Options{HeaderLength: 138}, 138, false},
		{"no header", Options{HeaderLength: NoHeader, SkipMagicCheck: true}, 0, false},
		{"no header needs skip", Options{HeaderLength: NoHeader}, 0, true},
		{"too short for magic", Options{HeaderLength: 1}, 0, true},
		{"negative", Options{HeaderLength: -5, SkipMagicCheck: true}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New error: %v", err)
			}
			if c.HeaderLength() != tt.header {
				t.Errorf("HeaderLength = %d, want %d", c.HeaderLength(), tt.header)
			}
		})
	}
}

func TestCodecHideReveal(t *testing.T) {
	// "Test message" needs RequiredBits(12) = 104 carrier bytes.
	file := testFile(128, 0xFF)
	original := append([]byte(nil), file...)

	stego, err := Default().Hide(file, []byte("Test message"))
	if err != nil {
		t.Fatalf("Hide error: %v", err)
	}
	if len(stego) != len(file) {
		t.Errorf("Expected %d bytes, got %d", len(file), len(stego))
	}
	if !bytes.Equal(file, original) {
		t.Error("Hide mutated its input")
	}
	if !bytes.Equal(stego[:54], file[:54]) {
		t.Error("Hide modified the header")
	}

	got, found, err := Default().RevealFound(stego)
	if err != nil {
		t.Fatalf("RevealFound error: %v", err)
	}
	if !found {
		t.Error("Expected terminator to be found")
	}
	if string(got) != "Test message" {
		t.Errorf("Expected %q, got %q", "Test message", got)
	}
}

func TestCodecHideCapacityBoundary(t *testing.T) {
	message := []byte("Test message")
	exact := RequiredBits(len(message))

	stego, err := Default().Hide(testFile(exact, 0xFF), message)
	if err != nil {
		t.Fatalf("Hide with exact capacity failed: %v", err)
	}
	got, found, err := Default().RevealFound(stego)
	if err != nil || !found || !bytes.Equal(got, message) {
		t.Errorf("RevealFound: got %q found=%v err=%v", got, found, err)
	}

	out, err := Default().Hide(testFile(exact-1, 0xFF), message)
	if !errors.Is(err, ErrCapacity) {
		t.Fatalf("Expected ErrCapacity one byte short, got %v", err)
	}
	if out != nil {
		t.Error("Expected no output on capacity failure")
	}
	var ce *CapacityError
	if errors.As(err, &ce) && (ce.Required != exact || ce.Available != exact-1) {
		t.Errorf("CapacityError: got required=%d available=%d", ce.Required, ce.Available)
	}
}

func TestCodecHideTooLarge(t *testing.T) {
	_, err := Default().Hide(testFile(100, 0xFF), bytes.Repeat([]byte("A"), 200))
	if !errors.Is(err, ErrCapacity) {
		t.Errorf("Expected ErrCapacity, got %v", err)
	}
}

func TestCodecShortFile(t *testing.T) {
	_, err := Default().Hide([]byte("BM\x00\x00"), nil)
	if !errors.Is(err, ErrFormat) {
		t.Errorf("Hide: expected ErrFormat, got %v", err)
	}
	_, err = Default().Reveal([]byte("BM"))
	if !errors.Is(err, ErrFormat) {
		t.Errorf("Reveal: expected ErrFormat, got %v", err)
	}
}

func TestCodecBadMagic(t *testing.T) {
	file := testFile(100, 0xFF)
	file[0] = 'X'

	if _, err := Default().Hide(file, []byte("x")); !errors.Is(err, ErrFormat) {
		t.Errorf("Hide: expected ErrFormat, got %v", err)
	}
	if _, err := Default().Reveal(file); !errors.Is(err, ErrFormat) {
		t.Errorf("Reveal: expected ErrFormat, got %v", err)
	}

	lax, err := New(Options{SkipMagicCheck: true})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	stego, err := lax.Hide(file, []byte("x"))
	if err != nil {
		t.Fatalf("Hide without magic check: %v", err)
	}
	got, err := lax.Reveal(stego)
	if err != nil || string(got) != "x" {
		t.Errorf("Reveal without magic check: got %q, %v", got, err)
	}
}

func TestCodecCustomHeaderLength(t *testing.T) {
	c, err := New(Options{HeaderLength: 122})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	header := make([]byte, 122)
	copy(header, "BM")
	for i := 2; i < len(header); i++ {
		header[i] = 0xFF // LSB substitution would show up here
	}
	file := append(header, filled(80, 0x00)...)

	stego, err := c.Hide(file, []byte("v5"))
	if err != nil {
		t.Fatalf("Hide error: %v", err)
	}
	if !bytes.Equal(stego[:122], header) {
		t.Error("custom header was modified")
	}

	got, err := c.Reveal(stego)
	if err != nil || string(got) != "v5" {
		t.Errorf("Reveal: got %q, %v", got, err)
	}
}

func TestCodecNoHeader(t *testing.T) {
	c, err := New(Options{HeaderLength: NoHeader, SkipMagicCheck: true})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	raw := filled(40, 0x7F)
	stego, err := c.Hide(raw, []byte("ok"))
	if err != nil {
		t.Fatalf("Hide error: %v", err)
	}
	if !bytes.Equal(Extract(stego), []byte("ok")) {
		t.Error("header-less carrier did not round trip")
	}
}

func TestCodecCapacity(t *testing.T) {
	c := Default()

	tests := []struct {
		fileLength int
		want       int
	}{
		{0, -1},
		{53, -1},
		{54, -1},
		{62, 0},
		{154, 11},
	}
	for _, tt := range tests {
		if got := c.Capacity(tt.fileLength); got != tt.want {
			t.Errorf("Capacity(%d) = %d, want %d", tt.fileLength, got, tt.want)
		}
	}
}

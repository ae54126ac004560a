package container

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanagraspace/bmpsteg/bmpsteg"
)

func TestNewBlank(t *testing.T) {
	file, err := NewBlank(10, 10, 0xFF)
	require.NoError(t, err)

	// 10 pixels * 3 bytes = 30, padded to 32 per row.
	assert.Len(t, file, bmpsteg.DefaultHeaderLength+32*10)

	info, err := Inspect(file)
	require.NoError(t, err)
	assert.Equal(t, Info{
		Width:        10,
		Height:       10,
		BitsPerPixel: 24,
		PixelOffset:  bmpsteg.DefaultHeaderLength,
		FileSize:     len(file),
	}, info)

	_, err = NewBlank(0, 4, 0)
	assert.Error(t, err)
}

func TestInspectRejectsNonBMP(t *testing.T) {
	_, err := Inspect([]byte("\x89PNG\r\n\x1a\n"))
	require.ErrorIs(t, err, bmpsteg.ErrFormat)

	_, err = Inspect([]byte("BM\x00\x00"))
	require.ErrorIs(t, err, bmpsteg.ErrFormat)
}

func TestReadWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.bmp")
	out := filepath.Join(dir, "out.bmp")

	file, err := NewBlank(16, 8, 0x80)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(in, file, 0o644))

	data, err := ReadFile(in)
	require.NoError(t, err)
	require.Equal(t, file, data)

	stego, err := bmpsteg.Default().Hide(data, []byte("Hello from disk"))
	require.NoError(t, err)
	require.NoError(t, WriteBytes(out, stego))

	written, err := ReadFile(out)
	require.NoError(t, err)
	message, err := bmpsteg.Default().Reveal(written)
	require.NoError(t, err)
	assert.Equal(t, "Hello from disk", string(message))

	// The stego file still parses as a BMP of the same size.
	info, err := Inspect(written)
	require.NoError(t, err)
	assert.Equal(t, 16, info.Width)
	assert.Equal(t, 8, info.Height)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "temporary files must not be left behind")
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.bmp"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConvertPNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 5, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			src.Set(x, y, color.NRGBA{uint8(x * 40), uint8(y * 80), 7, 128})
		}
	}
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, src))

	var out bytes.Buffer
	require.NoError(t, Convert(&pngBuf, &out))

	info, err := Inspect(out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 5, info.Width)
	assert.Equal(t, 3, info.Height)
	assert.Equal(t, 24, info.BitsPerPixel)
	assert.Equal(t, bmpsteg.DefaultHeaderLength, info.PixelOffset)
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "blank.bmp")
	out := filepath.Join(dir, "converted.bmp")

	file, err := NewBlank(4, 4, 0x10)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(in, file, 0o644))

	require.NoError(t, ConvertFile(in, out))
	converted, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, file, converted)

	assert.Error(t, Convert(bytes.NewReader([]byte("not an image")), &bytes.Buffer{}))
}

func TestWriteBytesReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payload.bin")
	require.NoError(t, os.WriteFile(path, []byte("old contents"), 0o600))

	require.NoError(t, WriteBytes(path, []byte("new")))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)

	assert.Error(t, WriteBytes(filepath.Join(t.TempDir(), "missing", "x.bin"), nil))
}

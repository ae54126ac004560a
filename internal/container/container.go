// Package container moves BMP files between disk and the byte buffers the
// bmpsteg codec works on, and prepares carrier images.
package container

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"  // register GIF for Convert
	_ "image/jpeg" // register JPEG for Convert
	_ "image/png"  // register PNG for Convert
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"

	"github.com/tanagraspace/bmpsteg/bmpsteg"
)

// Info describes a BMP file.
type Info struct {
	Width        int
	Height       int
	BitsPerPixel int
	// PixelOffset is the bfOffBits header field: where pixel data starts.
	PixelOffset int
	FileSize    int
}

// ReadFile reads a whole container from path.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read container: %w", err)
	}
	return data, nil
}

// WriteBytes writes data to path. The data goes to a temporary file in the
// same directory first, so path never holds a partial image.
func WriteBytes(path string, data []byte) error {
	return writeAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

func writeAtomic(path string, fill func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := fill(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}

// Inspect reports the dimensions and layout of a BMP file.
func Inspect(file []byte) (Info, error) {
	if err := bmpsteg.CheckMagic(file); err != nil {
		return Info{}, err
	}
	// BITMAPFILEHEADER (14) plus the biSize/biWidth/biHeight/biPlanes/
	// biBitCount prefix of the DIB header.
	if len(file) < 30 {
		return Info{}, fmt.Errorf("bmp header truncated at %d bytes: %w", len(file), bmpsteg.ErrFormat)
	}

	info := Info{
		PixelOffset:  int(binary.LittleEndian.Uint32(file[10:14])),
		BitsPerPixel: int(binary.LittleEndian.Uint16(file[28:30])),
		FileSize:     len(file),
	}

	cfg, err := bmp.DecodeConfig(bytes.NewReader(file))
	if err != nil {
		return info, fmt.Errorf("decode bmp config: %w", err)
	}
	info.Width, info.Height = cfg.Width, cfg.Height
	return info, nil
}

// Convert decodes a PNG, JPEG, GIF or BMP image from r and writes it to w
// as an opaque 24-bit BMP with a 54-byte header.
func Convert(r io.Reader, w io.Writer) error {
	src, format, err := image.Decode(r)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	// Flatten onto white so the encoder never picks the 32-bit layout,
	// whose header is longer.
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)

	if err := bmp.Encode(w, dst); err != nil {
		return fmt.Errorf("encode %s as bmp: %w", format, err)
	}
	return nil
}

// ConvertFile runs Convert from inPath to outPath.
func ConvertFile(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	return writeAtomic(outPath, func(w io.Writer) error {
		return Convert(in, w)
	})
}

// NewBlank returns an opaque 24-bit BMP of the given size with every
// channel set to fill.
func NewBlank(width, height int, fill byte) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{fill, fill, fill, 0xFF}), image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode blank bmp: %w", err)
	}
	return buf.Bytes(), nil
}

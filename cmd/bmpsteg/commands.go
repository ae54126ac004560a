package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/tanagraspace/bmpsteg/bmpsteg"
	"github.com/tanagraspace/bmpsteg/internal/config"
	"github.com/tanagraspace/bmpsteg/internal/container"
	"github.com/tanagraspace/bmpsteg/internal/logging"
)

type command func(args []string, stdout, stderr io.Writer) int

var commands = map[string]command{
	"hide":     doHide,
	"reveal":   doReveal,
	"capacity": doCapacity,
	"info":     doInfo,
	"convert":  doConvert,
	"blank":    doBlank,
}

// commonFlags are accepted by every subcommand and override the config file.
type commonFlags struct {
	configPath   string
	headerLength int
	noMagicCheck bool
	encoding     string
	logLevel     string
	logFormat    string
}

// session is the resolved configuration for one command run.
type session struct {
	codec  *bmpsteg.Codec
	enc    bmpsteg.TextEncoding
	logger *zap.Logger
}

func newFlagSet(name string, stderr io.Writer) (*pflag.FlagSet, *commonFlags) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)

	cf := &commonFlags{}
	fs.StringVar(&cf.configPath, "config", "", "YAML configuration file")
	fs.IntVar(&cf.headerLength, "header-length", bmpsteg.DefaultHeaderLength, "header bytes left untouched")
	fs.BoolVar(&cf.noMagicCheck, "no-magic-check", false, "accept containers not starting with \"BM\"")
	fs.StringVar(&cf.encoding, "encoding", "", "text mapping: codepoint or utf8")
	fs.StringVar(&cf.logLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.StringVar(&cf.logFormat, "log-format", "", "log format: console or json")
	return fs, cf
}

// parse parses args into fs. done is true when the command should exit
// with code right away.
func parse(fs *pflag.FlagSet, args []string) (code int, done bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK, true
		}
		return exitUsage, true
	}
	return exitOK, false
}

func (cf *commonFlags) open(fs *pflag.FlagSet, stderr io.Writer) (*session, error) {
	cfg, err := config.Load(cf.configPath)
	if err != nil {
		return nil, err
	}

	if fs.Changed("header-length") {
		cfg.HeaderLength = cf.headerLength
	}
	if fs.Changed("no-magic-check") {
		cfg.CheckMagic = !cf.noMagicCheck
	}
	if fs.Changed("encoding") {
		cfg.TextEncoding = cf.encoding
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = cf.logLevel
	}
	if fs.Changed("log-format") {
		cfg.Log.Format = cf.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	codec, err := bmpsteg.New(cfg.CodecOptions())
	if err != nil {
		return nil, err
	}

	return &session{
		codec:  codec,
		enc:    cfg.Encoding(),
		logger: logger,
	}, nil
}

func usageError(stderr io.Writer, format string, a ...any) int {
	fmt.Fprintf(stderr, "Error: "+format+"\n", a...)
	return exitUsage
}

func failure(stderr io.Writer, err error) int {
	var ce *bmpsteg.CapacityError
	if errors.As(err, &ce) {
		fmt.Fprintf(stderr, "Error: Message too large: needs %d carrier bytes, image has %d (max message %d bytes)\n",
			ce.Required, ce.Available, max(bmpsteg.Capacity(ce.Available), 0))
		return exitFailure
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitFailure
}

func doHide(args []string, stdout, stderr io.Writer) int {
	fs, cf := newFlagSet("hide", stderr)
	text := fs.StringP("message", "m", "", "text message to hide")
	messageFile := fs.StringP("file", "f", "", "file whose raw bytes are hidden")
	if code, done := parse(fs, args); done {
		return code
	}

	positional := fs.Args()
	if len(positional) < 1 || len(positional) > 2 {
		return usageError(stderr, "hide requires <input.bmp> [output.bmp]")
	}
	if fs.Changed("message") == fs.Changed("file") {
		return usageError(stderr, "hide requires exactly one of --message or --file")
	}

	s, err := cf.open(fs, stderr)
	if err != nil {
		return usageError(stderr, "%v", err)
	}
	defer s.logger.Sync()

	inputPath := positional[0]
	outputPath := makeStegoFilename(inputPath)
	if len(positional) == 2 {
		outputPath = positional[1]
	}

	var message []byte
	if fs.Changed("message") {
		message = bmpsteg.EncodeText(*text, s.enc)
	} else {
		message, err = os.ReadFile(*messageFile)
		if err != nil {
			return failure(stderr, fmt.Errorf("cannot read message file: %w", err))
		}
	}
	if i := bytes.IndexByte(message, bmpsteg.Terminator); i >= 0 {
		s.logger.Warn("message contains a terminator byte; reveal will stop there",
			zap.Int("offset", i), zap.Int("message_bytes", len(message)))
	}

	data, err := container.ReadFile(inputPath)
	if err != nil {
		return failure(stderr, err)
	}

	s.logger.Debug("embedding message",
		zap.String("input", inputPath),
		zap.Int("file_bytes", len(data)),
		zap.Int("header_bytes", s.codec.HeaderLength()),
		zap.Int("message_bytes", len(message)),
		zap.Int("required_bits", bmpsteg.RequiredBits(len(message))))

	stego, err := s.codec.Hide(data, message)
	if err != nil {
		return failure(stderr, fmt.Errorf("%s: %w", inputPath, err))
	}
	if err := container.WriteBytes(outputPath, stego); err != nil {
		return failure(stderr, err)
	}
	s.logger.Info("message hidden", zap.String("output", outputPath))

	// Hide succeeded, so the file holds at least the header.
	carrierLength := len(data) - s.codec.HeaderLength()
	fileSize := uint64(len(data))
	fmt.Fprintf(stdout, "Input:       %s (%s)\n", inputPath, humanize.Bytes(fileSize))
	fmt.Fprintf(stdout, "Output:      %s (%s)\n", outputPath, humanize.Bytes(fileSize))
	fmt.Fprintf(stdout, "Message:     %s bytes (%s carrier bytes)\n",
		humanize.Comma(int64(len(message))), humanize.Comma(int64(bmpsteg.RequiredBits(len(message)))))
	fmt.Fprintf(stdout, "Capacity:    %s bytes (%.1f%% used)\n",
		humanize.Comma(int64(s.codec.Capacity(len(data)))),
		100*float64(bmpsteg.RequiredBits(len(message)))/float64(carrierLength))

	return exitOK
}

func doReveal(args []string, stdout, stderr io.Writer) int {
	fs, cf := newFlagSet("reveal", stderr)
	outputPath := fs.StringP("output", "o", "", "write the raw message bytes to this file")
	if code, done := parse(fs, args); done {
		return code
	}

	positional := fs.Args()
	if len(positional) != 1 {
		return usageError(stderr, "reveal requires <input.bmp>")
	}

	s, err := cf.open(fs, stderr)
	if err != nil {
		return usageError(stderr, "%v", err)
	}
	defer s.logger.Sync()

	inputPath := positional[0]
	data, err := container.ReadFile(inputPath)
	if err != nil {
		return failure(stderr, err)
	}

	message, found, err := s.codec.RevealFound(data)
	if err != nil {
		return failure(stderr, fmt.Errorf("%s: %w", inputPath, err))
	}
	if !found {
		s.logger.Warn("no terminator found; the image may not hold a message",
			zap.String("input", inputPath), zap.Int("message_bytes", len(message)))
	}
	s.logger.Debug("message extracted",
		zap.String("input", inputPath), zap.Int("message_bytes", len(message)), zap.Bool("terminated", found))

	if *outputPath != "" {
		if err := container.WriteBytes(*outputPath, message); err != nil {
			return failure(stderr, err)
		}
		fmt.Fprintf(stdout, "Output:      %s (%s)\n", *outputPath, humanize.Bytes(uint64(len(message))))
		return exitOK
	}

	fmt.Fprintln(stdout, bmpsteg.DecodeText(message, s.enc))
	return exitOK
}

func doCapacity(args []string, stdout, stderr io.Writer) int {
	fs, cf := newFlagSet("capacity", stderr)
	if code, done := parse(fs, args); done {
		return code
	}

	positional := fs.Args()
	if len(positional) != 1 {
		return usageError(stderr, "capacity requires <input.bmp>")
	}

	s, err := cf.open(fs, stderr)
	if err != nil {
		return usageError(stderr, "%v", err)
	}
	defer s.logger.Sync()

	data, err := container.ReadFile(positional[0])
	if err != nil {
		return failure(stderr, err)
	}
	if _, _, err := s.codec.Split(data); err != nil {
		return failure(stderr, fmt.Errorf("%s: %w", positional[0], err))
	}

	fmt.Fprintln(stdout, max(s.codec.Capacity(len(data)), 0))
	return exitOK
}

func doInfo(args []string, stdout, stderr io.Writer) int {
	fs, cf := newFlagSet("info", stderr)
	if code, done := parse(fs, args); done {
		return code
	}

	positional := fs.Args()
	if len(positional) != 1 {
		return usageError(stderr, "info requires <input.bmp>")
	}

	s, err := cf.open(fs, stderr)
	if err != nil {
		return usageError(stderr, "%v", err)
	}
	defer s.logger.Sync()

	inputPath := positional[0]
	data, err := container.ReadFile(inputPath)
	if err != nil {
		return failure(stderr, err)
	}
	info, err := container.Inspect(data)
	if err != nil {
		return failure(stderr, fmt.Errorf("%s: %w", inputPath, err))
	}

	if info.PixelOffset != s.codec.HeaderLength() {
		s.logger.Warn("pixel data offset differs from configured header length",
			zap.Int("pixel_offset", info.PixelOffset), zap.Int("header_length", s.codec.HeaderLength()))
	}

	fmt.Fprintf(stdout, "File:        %s (%s)\n", inputPath, humanize.Bytes(uint64(info.FileSize)))
	fmt.Fprintf(stdout, "Dimensions:  %dx%d, %d bpp\n", info.Width, info.Height, info.BitsPerPixel)
	fmt.Fprintf(stdout, "Pixel data:  offset %d (header length %d)\n", info.PixelOffset, s.codec.HeaderLength())
	fmt.Fprintf(stdout, "Capacity:    %s bytes\n", humanize.Comma(int64(max(s.codec.Capacity(info.FileSize), 0))))
	return exitOK
}

func doConvert(args []string, stdout, stderr io.Writer) int {
	fs, cf := newFlagSet("convert", stderr)
	if code, done := parse(fs, args); done {
		return code
	}

	positional := fs.Args()
	if len(positional) != 2 {
		return usageError(stderr, "convert requires <input> <output.bmp>")
	}

	s, err := cf.open(fs, stderr)
	if err != nil {
		return usageError(stderr, "%v", err)
	}
	defer s.logger.Sync()

	inputPath, outputPath := positional[0], positional[1]
	if err := container.ConvertFile(inputPath, outputPath); err != nil {
		return failure(stderr, err)
	}
	s.logger.Info("converted image", zap.String("input", inputPath), zap.String("output", outputPath))

	st, err := os.Stat(outputPath)
	if err != nil {
		return failure(stderr, err)
	}
	fmt.Fprintf(stdout, "Output:      %s (%s)\n", outputPath, humanize.Bytes(uint64(st.Size())))
	fmt.Fprintf(stdout, "Capacity:    %s bytes\n", humanize.Comma(int64(max(s.codec.Capacity(int(st.Size())), 0))))
	return exitOK
}

func doBlank(args []string, stdout, stderr io.Writer) int {
	fs, cf := newFlagSet("blank", stderr)
	width := fs.Int("width", 64, "image width in pixels")
	height := fs.Int("height", 64, "image height in pixels")
	fill := fs.Int("fill", 0xFF, "grey level 0-255 for every channel")
	if code, done := parse(fs, args); done {
		return code
	}

	positional := fs.Args()
	if len(positional) != 1 {
		return usageError(stderr, "blank requires <output.bmp>")
	}
	if *fill < 0 || *fill > 0xFF {
		return usageError(stderr, "fill must be 0-255")
	}

	s, err := cf.open(fs, stderr)
	if err != nil {
		return usageError(stderr, "%v", err)
	}
	defer s.logger.Sync()

	data, err := container.NewBlank(*width, *height, byte(*fill))
	if err != nil {
		return usageError(stderr, "%v", err)
	}
	if err := container.WriteBytes(positional[0], data); err != nil {
		return failure(stderr, err)
	}
	s.logger.Debug("wrote blank carrier", zap.String("output", positional[0]), zap.Int("bytes", len(data)))

	fmt.Fprintf(stdout, "Output:      %s (%dx%d, %s)\n", positional[0], *width, *height, humanize.Bytes(uint64(len(data))))
	fmt.Fprintf(stdout, "Capacity:    %s bytes\n", humanize.Comma(int64(max(s.codec.Capacity(len(data)), 0))))
	return exitOK
}

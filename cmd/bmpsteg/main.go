// Package main provides the bmpsteg command line interface.
//
// bmpsteg hides a message in the least significant bits of an uncompressed
// BMP image and reveals it again.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tanagraspace/bmpsteg/bmpsteg"
)

const banner = ` _                     _
| |__  _ __ ___  _ __  ___| |_ ___  __ _
| '_ \| '_ ' _ \| '_ \/ __| __/ _ \/ _' |
| |_) | | | | | | |_) \__ \ ||  __/ (_| |
|_.__/|_| |_| |_| .__/|___/\__\___|\__, |
                |_|                |___/`

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "bmpsteg %s (Go)\n", bmpsteg.Version)
}

func printHelp(w io.Writer, progName string) {
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "BMP least-significant-bit steganography (v%s)\n", bmpsteg.Version)
	fmt.Fprintln(w, "=============================================")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s hide <input.bmp> [output.bmp] (-m TEXT | -f FILE)\n", progName)
	fmt.Fprintf(w, "  %s reveal <input.bmp> [-o FILE]\n", progName)
	fmt.Fprintf(w, "  %s capacity <input.bmp>\n", progName)
	fmt.Fprintf(w, "  %s info <input.bmp>\n", progName)
	fmt.Fprintf(w, "  %s convert <input.{png,jpg,gif,bmp}> <output.bmp>\n", progName)
	fmt.Fprintf(w, "  %s blank <output.bmp> [--width N] [--height N] [--fill N]\n", progName)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Common options:")
	fmt.Fprintln(w, "  --config FILE         YAML configuration file (or $BMPSTEG_CONFIG)")
	fmt.Fprintln(w, "  --header-length N     Header bytes left untouched (default 54)")
	fmt.Fprintln(w, "  --no-magic-check      Accept containers not starting with \"BM\"")
	fmt.Fprintln(w, "  --encoding NAME       Text mapping: codepoint (default) or utf8")
	fmt.Fprintln(w, "  --log-level LEVEL     debug, info, warn (default) or error")
	fmt.Fprintln(w, "  --log-format FORMAT   console (default) or json")
	fmt.Fprintln(w, "  -h, --help            Show this help message")
	fmt.Fprintln(w, "  -v, --version         Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  hide without output path writes <input>.stego.bmp")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  A 0x00 byte ends the hidden message; anything after it is lost.")
	fmt.Fprintln(w, "  The message is not encrypted. Lossy re-encoding destroys it.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintf(w, "  %s hide flowers.bmp stego.bmp -m \"meet at noon\"\n", progName)
	fmt.Fprintf(w, "  %s reveal stego.bmp\n", progName)
	fmt.Fprintln(w)
}

func makeStegoFilename(input string) string {
	lower := strings.ToLower(input)
	if strings.HasSuffix(lower, ".bmp") {
		return input[:len(input)-len(".bmp")] + ".stego.bmp"
	}
	return input + ".stego.bmp"
}

func run(args []string, stdout, stderr io.Writer) int {
	progName := "bmpsteg"
	if len(args) > 0 {
		progName = args[0]
	}

	if len(args) < 2 || args[1] == "-h" || args[1] == "--help" || args[1] == "help" {
		printHelp(stdout, progName)
		if len(args) < 2 {
			return exitUsage
		}
		return exitOK
	}

	if args[1] == "-v" || args[1] == "--version" || args[1] == "version" {
		printVersion(stdout)
		return exitOK
	}

	cmd, ok := commands[args[1]]
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n", args[1])
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", progName)
		return exitUsage
	}
	return cmd(args[2:], stdout, stderr)
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

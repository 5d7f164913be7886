package util

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Options carries the command-line configuration for the compiler driver.
type Options struct {
	Src string // Path to source file.
	Out string // Path to output .ll file; stdout when empty.
	Verify bool // Run the emitted module through the LLVM verifier.
	Verbose bool // Report on stderr when verification was skipped.
}

const appVersion = "hulkc 0.1"

// ---------------------
// ----- functions -----
// ---------------------

// ParseArgs parses os.Args[1:] into Options with a single-pass switch
// over a small flag surface (one output format, no target triple
// selection).
func ParseArgs() (Options, error) {
	opt := Options{}
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--h", "-help", "--help":
			printHelp()
			os.Exit(0)
		case "-v", "--v", "-version", "--version":
			fmt.Println(appVersion)
			os.Exit(0)
		case "-verify":
			opt.Verify = true
		case "-vb":
			opt.Verbose = true
		case "-o":
			if i+1 >= len(args) {
				return opt, fmt.Errorf("got flag %s but no argument", args[i])
			}
			if strings.HasPrefix(args[i+1], "-") {
				return opt, fmt.Errorf("expected path, got new flag %s", args[i+1])
			}
			i++
			opt.Out = args[i]
		default:
			if strings.HasPrefix(args[i], "-") {
				return opt, fmt.Errorf("unexpected flag: %s", args[i])
			}
			opt.Src = args[i]
		}
	}
	return opt, nil
}

func printHelp() {
	w := tabwriter.NewWriter(os.Stdout, 6, 1, 1, 0, 0)
	_, _ = fmt.Fprintln(w, "-h, -help\tPrints this help message and exits.")
	_, _ = fmt.Fprintln(w, "-o\tPath to write the generated LLVM IR to. Defaults to stdout.")
	_, _ = fmt.Fprintln(w, "-verify\tRun the emitted module through the LLVM verifier, when available.")
	_, _ = fmt.Fprintln(w, "-v, -version\tPrints application version and exits.")
	_, _ = fmt.Fprintln(w, "-vb\tVerbose mode: report on stderr when verification was skipped.")
	_ = w.Flush()
}

// ReadSource reads the source file named by opt.Src into memory; this
// core never streams source incrementally.
func ReadSource(opt Options) (string, error) {
	if opt.Src == "" {
		return "", fmt.Errorf("no source file given")
	}
	b, err := os.ReadFile(opt.Src)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Command hulkc reads a source file, runs it through the lexer, parser,
// semantic analyzer and LLVM-IR backend, and writes the resulting module
// to stdout or to the path given by -o.
package main

import (
	"fmt"
	"os"

	"hulkc/internal/driver"
	"hulkc/internal/llvmverify"
	"hulkc/internal/util"
)

func run(opt util.Options) error {
	src, err := util.ReadSource(opt)
	if err != nil {
		return fmt.Errorf("could not read source: %s", err)
	}

	result, errs := driver.Compile(src)
	if len(errs) > 0 {
		return fmt.Errorf("%s", driver.FormatErrors(errs))
	}

	if opt.Verify {
		ok, skipped, err := llvmverify.Verify(result.IR)
		switch {
		case err != nil:
			return fmt.Errorf("module verification failed: %s", err)
		case skipped && opt.Verbose:
			fmt.Fprintln(os.Stderr, "hulkc: verification skipped, built without the llvm tag")
		case !ok:
			return fmt.Errorf("module failed verification")
		}
	}

	if opt.Out == "" {
		fmt.Print(result.IR)
		return nil
	}
	return os.WriteFile(opt.Out, []byte(result.IR), 0644)
}

func main() {
	opt, err := util.ParseArgs()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := run(opt); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

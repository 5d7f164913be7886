//go:build llvm

// Package llvmverify parses a generated module's textual IR through
// tinygo.org/x/go-llvm's IR parser and runs the module verifier
// pass, the same dependency ir/llvm package wraps for
// code generation (here used only for verification, never emission,
// since this core emits its own textual IR directly). Built only under
// the "llvm" build tag: the LLVM C API bindings require the host LLVM
// shared libraries, which are not available in every build environment,
// so a non-tagged build falls back to noop.go's no-op Verify.
package llvmverify

import (
	"fmt"

	"tinygo.org/x/go-llvm"
)

// ----------------------------
// ----- functions -----
// ----------------------------

// Verify parses ir as an LLVM module and runs the verifier pass,
// reporting the first structural or type error LLVM itself finds.
// ok reports whether the module is well-formed; skipped is always false
// in this build (the llvm build tag is active).
func Verify(ir string) (ok bool, skipped bool, err error) {
	ctx := llvm.NewContext()
	defer ctx.Dispose()

	buf := llvm.NewMemoryBufferFromMemoryRangeCopy([]byte(ir), "module")
	mod, err := ctx.ParseIR(buf)
	if err != nil {
		return false, false, fmt.Errorf("llvmverify: parse failed: %w", err)
	}
	defer mod.Dispose()

	if err := llvm.VerifyModule(mod, llvm.ReturnStatusAction); err != nil {
		return false, false, fmt.Errorf("llvmverify: %w", err)
	}
	return true, false, nil
}

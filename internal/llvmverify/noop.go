//go:build !llvm

package llvmverify

// Verify is the default, dependency-free stand-in for the llvm-tagged
// build: it performs no structural check and reports skipped = true, so
// callers can treat verification as strictly best-effort.
func Verify(ir string) (ok bool, skipped bool, err error) {
	return true, true, nil
}

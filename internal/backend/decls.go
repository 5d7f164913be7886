package backend

import "fmt"

// ----------------------------
// ----- functions -----
// ----------------------------

// declareRuntime emits an external declaration for name exactly once per
// module.
func (ctx *Context) declareRuntime(name, sig string) {
	if ctx.RuntimeDeclared[name] {
		return
	}
	ctx.RuntimeDeclared[name] = true
	ctx.Module.Write("declare %s\n", sig)
}

// declareCoreRuntime emits every runtime declaration up front, so call
// sites never need to check whether a prototype was already written for
// a sibling call of the same function.
func (ctx *Context) declareCoreRuntime() {
	ctx.declareRuntime("printf", "i32 @printf(ptr, ...)")
	ctx.declareRuntime("malloc", "ptr @malloc(i64)")
	ctx.declareRuntime("strlen", "i64 @strlen(ptr)")
	ctx.declareRuntime("strcpy", "ptr @strcpy(ptr, ptr)")
	ctx.declareRuntime("strcat", "ptr @strcat(ptr, ptr)")
	ctx.declareRuntime("fmod", "double @fmod(double, double)")
	ctx.declareRuntime("pow", "double @pow(double, double)")
}

// internString interns a string literal into the module's global constant
// pool, returning the already-existing global name if value was seen
// before.
func (ctx *Context) internString(value string) string {
	if name, ok := ctx.StringPool[value]; ok {
		return name
	}
	name := fmt.Sprintf("@.str.%d", len(ctx.StringPool))
	ctx.StringPool[value] = name
	bytes := append([]byte(value), 0)
	ctx.Module.Write("%s = private unnamed_addr constant [%d x i8] c\"%s\"\n", name, len(bytes), escapeLLVMString(bytes))
	return name
}

// escapeLLVMString renders raw bytes as an LLVM string-constant body,
// hex-escaping every non-printable byte (including the trailing NUL every
// interned string carries).
func escapeLLVMString(b []byte) string {
	out := make([]byte, 0, len(b)*2)
	for _, c := range b {
		if c >= 0x20 && c < 0x7f && c != '"' && c != '\\' {
			out = append(out, c)
			continue
		}
		out = append(out, []byte(fmt.Sprintf("\\%02X", c))...)
	}
	return string(out)
}

// declareFormatGlobals emits the print format-string and boolean-word
// globals every printf call and bool-to-string conversion depends on.
func (ctx *Context) declareFormatGlobals() {
	ctx.internString("%f\n")
	ctx.internString("%d\n")
	ctx.internString("%s\n")
	for _, word := range []string{"true", "false"} {
		name := "@." + word + "_str"
		ctx.StringPool[word] = name
		bytes := append([]byte(word), 0)
		ctx.Module.Write("%s = private unnamed_addr constant [%d x i8] c\"%s\"\n", name, len(bytes), escapeLLVMString(bytes))
	}
}

// formatStringFor returns the interned format-string global for an LLVM
// type.
func (ctx *Context) formatStringFor(llvmTy string) string {
	switch llvmTy {
	case "double":
		return ctx.StringPool["%f\n"]
	case "i1":
		return "" // booleans print by branching between the .true_str/.false_str globals, not a format string
	default:
		return ctx.StringPool["%s\n"]
	}
}

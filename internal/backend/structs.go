package backend

import "fmt"

// ----------------------------
// ----- functions -----
// ----------------------------

// emitStructs writes the `%T_type` struct definition for every user type,
// in parent-before-child order, following the layout computed by
// computeLayout.
func (ctx *Context) emitStructs() {
	for _, name := range userTypesByDepth(ctx.Tree) {
		fields := []string{"i32", "ptr"} // type-id, parent pointer
		for _, m := range ctx.TypeMembers[name] {
			fields = append(fields, llvmType(m.DeclaredType))
		}
		ctx.Module.Write("%%%s_type = type { %s }\n", name, joinComma(fields))
	}
}

// emitVTables writes each type's `@T_vtable` global (an array of
// ctx.MaxMethods function pointers) and the global `@super_vtable`
// array indexed by numeric type-id.
func (ctx *Context) emitVTables() {
	order := userTypesByDepth(ctx.Tree)
	for _, name := range order {
		slots := ctx.TypeMethodIndex[name]
		names := ctx.FunctionLLVMName[name]
		ptrs := make([]string, ctx.MaxMethods)
		for method, slot := range slots {
			ptrs[slot] = fmt.Sprintf("ptr %s", names[method])
		}
		for i, p := range ptrs {
			if p == "" {
				ptrs[i] = "ptr null"
			}
		}
		ctx.Module.Write("%s = global [%d x ptr] [%s]\n", ctx.TypeVTableName[name], ctx.MaxMethods, joinComma(ptrs))
	}

	entries := make([]string, len(order))
	for _, name := range order {
		entries[ctx.TypeID[name]] = fmt.Sprintf("ptr %s", ctx.TypeVTableName[name])
	}
	ctx.Module.Write("@super_vtable = global [%d x ptr] [%s]\n", len(order), joinComma(entries))
}

func joinComma(items []string) string {
	out := ""
	for i, it := range items {
		if i > 0 {
			out += ", "
		}
		out += it
	}
	return out
}

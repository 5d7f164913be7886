package backend

import "fmt"

// ----------------------------
// ----- functions -----
// ----------------------------

// computeVTables assigns v-table slot indices: each method slot is
// assigned in declaration order; an override reuses its parent's slot
// for the same name; a genuinely new method appends a new slot.
// ctx.MaxMethods ends up the widest slot table across every user type,
// the shared width every type's v-table array uses for the global
// @super_vtable array. Types are assigned a numeric type-id in the same
// parent-before-child order.
func computeVTables(ctx *Context) {
	ctx.TypeMethodIndex = map[string]map[string]int{}
	ctx.FunctionLLVMName = map[string]map[string]string{}

	order := userTypesByDepth(ctx.Tree)
	for id, name := range order {
		ctx.TypeID[name] = id
		ctx.TypeVTableName[name] = fmt.Sprintf("@%s_vtable", name)
	}

	for _, name := range order {
		node, _ := ctx.Tree.Get(name)

		slots := map[string]int{}
		if parent, ok := ctx.Inherits[name]; ok {
			for k, v := range ctx.TypeMethodIndex[parent] {
				slots[k] = v
			}
		}
		llvmNames := map[string]string{}
		if parent, ok := ctx.Inherits[name]; ok {
			for k, v := range ctx.FunctionLLVMName[parent] {
				llvmNames[k] = v // inherited methods not overridden still resolve through the parent's symbol
			}
		}

		for _, methodName := range node.OwnMethodOrder {
			if _, overriding := slots[methodName]; !overriding {
				slots[methodName] = len(slots)
			}
			llvmNames[methodName] = fmt.Sprintf("@%s_%s", name, methodName)
		}

		ctx.TypeMethodIndex[name] = slots
		ctx.FunctionLLVMName[name] = llvmNames

		if len(slots) > ctx.MaxMethods {
			ctx.MaxMethods = len(slots)
		}
	}
}

package backend

import (
	"fmt"

	"hulkc/internal/ast"
	"hulkc/internal/util"
)

// ----------------------------
// ----- functions -----
// ----------------------------

// emitCall lowers args, materializes every value (and selfVal, when
// non-empty) through an alloca so each is passed as a ptr, and emits a
// call through calleeOperand -- a global symbol for a direct call, or an
// SSA register holding a function pointer for a v-table dispatch. Both
// paths share this one call-emission routine so static and dynamic
// dispatch produce identical calling-convention code.
func emitCall(ctx *Context, fs *funcState, w *util.Writer, calleeOperand, selfVal string, args []*ast.Expression, resultType string) (string, string) {
	var operands []string
	if selfVal != "" {
		operands = append(operands, "ptr "+materializePointer(ctx, w, selfVal, "ptr"))
	}
	for _, a := range args {
		val, ty := lower(ctx, fs, w, a)
		operands = append(operands, "ptr "+materializePointer(ctx, w, val, ty))
	}
	retTy := llvmType(resultType)
	t := ctx.Names.Temp()
	w.Line("%s = call %s %s(%s)", t, retTy, calleeOperand, joinComma(operands))
	return t, retTy
}

// lowerCall handles both a plain top-level function call and a base()
// call, which statically dispatches to the enclosing method's override
// in the current type's parent.
func lowerCall(ctx *Context, fs *funcState, w *util.Writer, e *ast.Expression) (string, string) {
	if e.Name == "base" {
		parentType := ctx.Inherits[fs.currentSelf]
		callee := ctx.FunctionLLVMName[parentType][fs.currentMethod]
		selfVar, _ := fs.lookup("self")
		selfVal := ctx.Names.Temp()
		w.Line("%s = load ptr, ptr %s", selfVal, selfVar.ssa)
		return emitCall(ctx, fs, w, callee, selfVal, e.Args, e.Type)
	}
	callee := ctx.TopLevelFunctionName[e.Name]
	return emitCall(ctx, fs, w, callee, "", e.Args, e.Type)
}

// lowerMethodAccess dispatches obj.method(args) dynamically: the object's
// stored numeric type-id indexes @super_vtable to reach the runtime
// type's own v-table, which is then indexed by the method's declared
// slot. Because an override reuses its parent's slot, this reaches the
// same symbol a direct call to the static type's @T_m would reach
// whenever the object's runtime type equals the static type.
func lowerMethodAccess(ctx *Context, fs *funcState, w *util.Writer, e *ast.Expression) (string, string) {
	objVal, _ := lower(ctx, fs, w, e.Object)
	objType := e.Object.Type
	slot := ctx.TypeMethodIndex[objType][e.Name]

	idPtr := ctx.Names.Temp()
	w.Line("%s = getelementptr %%%s_type, ptr %s, i32 0, i32 0", idPtr, objType, objVal)
	id := ctx.Names.Temp()
	w.Line("%s = load i32, ptr %s", id, idPtr)
	idx64 := ctx.Names.Temp()
	w.Line("%s = sext i32 %s to i64", idx64, id)

	numTypes := len(userTypesByDepth(ctx.Tree))
	slotPtrPtr := ctx.Names.Temp()
	w.Line("%s = getelementptr [%d x ptr], ptr @super_vtable, i64 0, i64 %s", slotPtrPtr, numTypes, idx64)
	vtable := ctx.Names.Temp()
	w.Line("%s = load ptr, ptr %s", vtable, slotPtrPtr)

	fnPtrPtr := ctx.Names.Temp()
	w.Line("%s = getelementptr [%d x ptr], ptr %s, i64 0, i64 %d", fnPtrPtr, ctx.MaxMethods, vtable, slot)
	fn := ctx.Names.Temp()
	w.Line("%s = load ptr, ptr %s", fn, fnPtrPtr)

	return emitCall(ctx, fs, w, fn, objVal, e.Args, e.Type)
}

// lowerPropAccess reads a property through a GEP into the object's struct,
// at the index assigned by the declaring type's layout. Since every
// descendant's struct literally copies its parent's fields as a verbatim
// prefix (computeLayout), that index is valid against any of the type's
// descendants too, so no special case is needed for inherited properties.
func lowerPropAccess(ctx *Context, fs *funcState, w *util.Writer, e *ast.Expression) (string, string) {
	objVal, _ := lower(ctx, fs, w, e.Object)
	objType := e.Object.Type
	idx := ctx.TypeMemberIndex[objType][e.Name]
	fieldPtr := ctx.Names.Temp()
	w.Line("%s = getelementptr %%%s_type, ptr %s, i32 0, i32 %d", fieldPtr, objType, objVal, idx)
	fieldTy := llvmType(e.Type)
	t := ctx.Names.Temp()
	w.Line("%s = load %s, ptr %s", t, fieldTy, fieldPtr)
	return t, fieldTy
}

// lowerNewInstance allocates storage sized for the type's struct, stores
// its type-id and a self-referential parent-pointer slot, then recurses
// up through the inheritance chain to initialize every inherited and own
// property directly into the one allocation.
func lowerNewInstance(ctx *Context, fs *funcState, w *util.Writer, e *ast.Expression) (string, string) {
	typeName := e.Name
	self := allocateObject(ctx, w, typeName)
	constructInto(ctx, fs, w, typeName, self, e.Args)
	return self, "ptr"
}

func allocateObject(ctx *Context, w *util.Writer, typeName string) string {
	ctx.declareRuntime("malloc", "ptr @malloc(i64)")
	sizePtr := ctx.Names.Temp()
	w.Line("%s = getelementptr %%%s_type, ptr null, i32 1", sizePtr, typeName)
	size := ctx.Names.Temp()
	w.Line("%s = ptrtoint ptr %s to i64", size, sizePtr)
	self := ctx.Names.Temp()
	w.Line("%s = call ptr @malloc(i64 %s)", self, size)

	idPtr := ctx.Names.Temp()
	w.Line("%s = getelementptr %%%s_type, ptr %s, i32 0, i32 0", idPtr, typeName, self)
	w.Line("store i32 %d, ptr %s", ctx.TypeID[typeName], idPtr)

	parentPtr := ctx.Names.Temp()
	w.Line("%s = getelementptr %%%s_type, ptr %s, i32 0, i32 1", parentPtr, typeName, self)
	w.Line("store ptr %s, ptr %s", self, parentPtr)
	return self
}

// constructInto binds typeName's constructor parameters (evaluated with
// callerFS, the scope the call-site arguments are written in) and stores
// each into its struct field, recurses
// into the parent constructor first using the declared inherits(...)
// argument expressions evaluated against this type's own parameter
// bindings, and finally stores this type's own property initializers.
func constructInto(ctx *Context, callerFS *funcState, w *util.Writer, typeName, self string, args []*ast.Expression) {
	def, ok := ctx.TypeDefs[typeName]
	if !ok {
		panic(fmt.Sprintf("backend: unknown type %q reached constructor lowering", typeName))
	}

	own := newFuncState()
	own.currentSelf = typeName
	for i, p := range def.Params {
		val, ty := lower(ctx, callerFS, w, args[i])
		bindNewLocal(ctx, own, w, p.Name, p.ResolvedType, val, ty)
		paramPtr := ctx.Names.Temp()
		w.Line("%s = getelementptr %%%s_type, ptr %s, i32 0, i32 %d", paramPtr, typeName, self, ctx.TypeMemberIndex[typeName][p.Name])
		w.Line("store %s %s, ptr %s", ty, val, paramPtr)
	}
	bindNewLocal(ctx, own, w, "self", typeName, self, "ptr")

	if parentName, hasParent := ctx.Inherits[typeName]; hasParent {
		constructInto(ctx, own, w, parentName, self, def.ParentArgs)
	}

	for _, m := range def.Members {
		if m.Property == nil {
			continue
		}
		val, ty := lower(ctx, own, w, m.Property.Expr)
		idx := ctx.TypeMemberIndex[typeName][m.Property.Identifier]
		fieldPtr := ctx.Names.Temp()
		w.Line("%s = getelementptr %%%s_type, ptr %s, i32 0, i32 %d", fieldPtr, typeName, self, idx)
		w.Line("store %s %s, ptr %s", ty, val, fieldPtr)
	}
}

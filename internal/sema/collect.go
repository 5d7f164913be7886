package sema

import (
	"hulkc/internal/ast"
	"hulkc/internal/types"
	"hulkc/internal/util"
)

// ----------------------------
// ----- functions -----
// ----------------------------

// collectTypes is pass 1: stage every TypeDef into ctx.DeclaredTypes in
// declaration order, rejecting redefinition, self-inheritance, and a
// parent that has not yet been declared.
func collectTypes(ctx *Context, prog *ast.Program) {
	for _, stmt := range prog.Statements {
		if stmt.Kind != ast.StmtTypeDef {
			continue
		}
		td := stmt.Type
		if _, exists := ctx.DeclaredTypes[td.Identifier]; exists {
			ctx.Errors.Add(util.NewPassError("Semantic", td.Span, "redefinition of type %q", td.Identifier))
			continue
		}
		if td.ParentName == td.Identifier {
			ctx.Errors.Add(util.NewPassError("Semantic", td.Span, "type %q cannot inherit from itself", td.Identifier))
			continue
		}
		if td.ParentName != "" {
			_, staged := ctx.DeclaredTypes[td.ParentName]
			builtin := td.ParentName == types.Object || td.ParentName == types.String ||
				td.ParentName == types.Number || td.ParentName == types.Boolean
			if !staged && !builtin {
				ctx.Errors.Add(util.NewPassError("Semantic", td.Span,
					"type %q inherits from %q, which has not been declared yet", td.Identifier, td.ParentName))
				continue
			}
		}
		ctx.DeclaredTypes[td.Identifier] = td
	}
}

// buildLattice is pass 2: instantiate a types.Node per staged TypeDef,
// link parents, validate parent-constructor-argument counts, and run
// cycle detection.
func buildLattice(ctx *Context, prog *ast.Program) {
	for _, stmt := range prog.Statements {
		if stmt.Kind != ast.StmtTypeDef {
			continue
		}
		td := stmt.Type
		if _, staged := ctx.DeclaredTypes[td.Identifier]; !staged {
			continue // rejected in pass 1
		}
		properties := map[string]string{}
		methods := map[string]*ast.FunctionDef{}
		var propertyOrder, methodOrder []string
		for i := range td.Params {
			td.Params[i].ResolvedType = ctx.resolveTypeName(td.Params[i].DeclaredTypeName, td.Params[i].Span)
			properties[td.Params[i].Name] = td.Params[i].ResolvedType
			propertyOrder = append(propertyOrder, td.Params[i].Name)
		}
		for _, m := range td.Members {
			switch {
			case m.Property != nil:
				if m.Property.DeclaredType != "" {
					properties[m.Property.Identifier] = ctx.resolveTypeName(m.Property.DeclaredType, m.Property.Span)
				} else {
					properties[m.Property.Identifier] = types.Unknown // refined once the initializer is visited
				}
				propertyOrder = append(propertyOrder, m.Property.Identifier)
			case m.Method != nil:
				methods[m.Method.Name] = m.Method
				m.Method.ResolvedReturn = ctx.resolveTypeName(m.Method.ReturnTypeName, m.Method.Span)
				for i := range m.Method.Params {
					m.Method.Params[i].ResolvedType = ctx.resolveTypeName(m.Method.Params[i].DeclaredTypeName, m.Method.Params[i].Span)
				}
				methodOrder = append(methodOrder, m.Method.Name)
			}
		}
		ctx.Tree.AddType(td.Identifier, td.Params, td.ParentName, properties, methods, propertyOrder, methodOrder)
	}

	if missing, ok := ctx.Tree.Link(); !ok {
		ctx.Errors.Addf("type %q inherits from an undefined parent type", missing)
		return
	}

	for _, stmt := range prog.Statements {
		if stmt.Kind != ast.StmtTypeDef {
			continue
		}
		td := stmt.Type
		if td.ParentName == "" {
			continue
		}
		want, hasParent := ctx.Tree.ParentArgCount(td.Identifier)
		if hasParent && len(td.ParentArgs) != want {
			ctx.Errors.Add(util.NewPassError("Semantic", td.Span,
				"type %q passes %d argument(s) to parent %q, expected %d", td.Identifier, len(td.ParentArgs), td.ParentName, want))
		}
	}

	if culprit, cyclic := ctx.Tree.CheckCycle(); cyclic {
		ctx.Errors.Addf("inheritance cycle detected, involving type %q", culprit)
	}
}

// collectFunctions is pass 3: stage every top-level FunctionDef's
// signature, rejecting redefinition and duplicate parameter names, and
// resolving each parameter's declared type.
func collectFunctions(ctx *Context, prog *ast.Program) {
	for _, stmt := range prog.Statements {
		if stmt.Kind != ast.StmtFunctionDef {
			continue
		}
		fn := stmt.Function
		if _, exists := ctx.DeclaredFunctions[fn.Name]; exists {
			ctx.Errors.Add(util.NewPassError("Semantic", fn.Span, "redefinition of function %q", fn.Name))
			continue
		}
		seen := map[string]bool{}
		args := make([]ast.Param, len(fn.Params))
		for i, p := range fn.Params {
			if seen[p.Name] {
				ctx.Errors.Add(util.NewPassError("Semantic", p.Span, "duplicate parameter name %q in function %q", p.Name, fn.Name))
			}
			seen[p.Name] = true
			args[i] = ast.Param{Name: p.Name, DeclaredTypeName: ctx.resolveTypeName(p.DeclaredTypeName, p.Span), Span: p.Span}
			fn.Params[i].ResolvedType = args[i].DeclaredTypeName
		}
		ret := ctx.resolveTypeName(fn.ReturnTypeName, fn.Span)
		fn.ResolvedReturn = ret
		ctx.DeclaredFunctions[fn.Name] = &FunctionInfo{Name: fn.Name, Args: args, ReturnType: ret, Def: fn}
	}
}

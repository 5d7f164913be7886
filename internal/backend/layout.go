package backend

// ----------------------------
// ----- functions -----
// ----------------------------

// computeLayout fills ctx.TypeMembers, ctx.TypeMemberIndex and
// ctx.Inherits: every user type's struct has slot 0 for the numeric
// type-id, slot 1 for the parent pointer, then inherited properties (in
// the parent's own declaration order, recursively) followed by the type's
// own properties. Types are processed parent-before-child so a child can
// simply extend its parent's already-computed layout.
func computeLayout(ctx *Context) {
	ctx.TypeMembers = map[string][]MemberSlot{}
	ctx.TypeMemberIndex = map[string]map[string]int{}

	for _, name := range userTypesByDepth(ctx.Tree) {
		node, _ := ctx.Tree.Get(name)

		var members []MemberSlot
		if node.ParentName != "" && !builtinTypes[node.ParentName] {
			ctx.Inherits[name] = node.ParentName
			members = append(members, ctx.TypeMembers[node.ParentName]...)
		}
		for _, propName := range node.OwnPropertyOrder {
			members = append(members, MemberSlot{Name: propName, DeclaredType: node.Properties[propName]})
		}

		index := make(map[string]int, len(members))
		for i, m := range members {
			index[m.Name] = i + 2 // slots 0 and 1 are the type-id and parent pointer
		}

		ctx.TypeMembers[name] = members
		ctx.TypeMemberIndex[name] = index
	}
}

package main

// lvalue_codegen.go - lvalue address computation (spec.md §4.4, "Lvalue
// handling (the hard part)").
//
// Grounded on original_source/.../Codegen.c:codegen_lvalue_address for the
// per-node-kind dispatch and the "; WARNING" + "xor eax, eax" fallback for
// an unresolvable struct type or unknown member; identifier-to-struct-type
// resolution goes through the symbol table's recorded type name, NOT a
// name-substring heuristic (spec.md §9 explicitly calls out and forbids
// the original's earlier "buffer"-substring bug).

// genLvalueAddress computes the address of n and leaves it in eax.
func (cg *CodeGenerator) genLvalueAddress(n Node) {
	switch v := n.(type) {
	case *Identifier:
		cg.lvalueIdentifier(v)
	case *ArrayAccess:
		cg.lvalueArrayAccess(v)
	case *UnaryOp:
		if v.Op == "*" {
			cg.genExpr(v.Operand) // address is the pointer's own value
			return
		}
		cg.warn("address-of non-lvalue unary operator %q", v.Op)
	case *MemberAccess:
		cg.lvalueMemberAccess(v)
	default:
		cg.warn("address-of non-lvalue expression")
	}
}

// lvalueIdentifier computes the address of a bare identifier: a local
// array or global array decays to its own address; a plain local or
// parameter is `ebp±offset`; a global scalar is its label.
func (cg *CodeGenerator) lvalueIdentifier(id *Identifier) {
	if sym, ok := cg.locals.Lookup(id.Name); ok {
		cg.emit("    lea eax, [%s]", sym.addr())
		return
	}
	if g, ok := cg.globals.Lookup(id.Name); ok {
		cg.emit("    mov eax, %s", g.Name)
		return
	}
	cg.warn("unknown identifier %q", id.Name)
}

// lvalueArrayAccess computes base + index*element_size, where
// element-size comes from the base's recorded type (spec.md §4.4).
func (cg *CodeGenerator) lvalueArrayAccess(a *ArrayAccess) {
	elemSize := cg.elementSizeOf(a.Array)
	cg.genArrayValue(a.Array) // address for arrays (decay), loaded value for pointers
	cg.emit("    push eax")
	cg.genExpr(a.Index)
	cg.emit("    mov ebx, eax")
	if elemSize != 1 {
		cg.emit("    imul ebx, ebx, %d", elemSize)
	}
	cg.emit("    pop eax")
	cg.emit("    add eax, ebx")
}

// genArrayValue evaluates the base of an array-access: for a local/global
// array this is its decayed address (identical to genLvalueAddress); for
// a pointer variable it is the pointer's value.
func (cg *CodeGenerator) genArrayValue(base Node) {
	if id, ok := base.(*Identifier); ok {
		if sym, ok := cg.locals.Lookup(id.Name); ok {
			if sym.IsArray {
				cg.emit("    lea eax, [%s]", sym.addr())
				return
			}
			cg.emit("    mov eax, [%s]", sym.addr())
			return
		}
		if g, ok := cg.globals.Lookup(id.Name); ok {
			if g.IsArray {
				cg.emit("    mov eax, %s", g.Name)
				return
			}
			cg.emit("    mov eax, [%s]", g.Name)
			return
		}
		cg.warn("unknown identifier %q", id.Name)
		return
	}
	cg.genExpr(base)
}

// elementSizeOf returns the element size used to scale an array
// subscript, resolved from the base expression's recorded symbol type.
// An array's ElemSize is already its element size; a pointer's ElemSize
// is the pointer's own width, so its element size is the pointed-to
// type's (4 again for a pointer to a pointer).
func (cg *CodeGenerator) elementSizeOf(base Node) int {
	id, ok := base.(*Identifier)
	if !ok {
		return 4
	}
	pointee := func(typ string, pointerLevel int) int {
		if pointerLevel > 1 {
			return 4
		}
		return cg.typeSize(typ)
	}
	if sym, ok := cg.locals.Lookup(id.Name); ok {
		if !sym.IsArray && sym.PointerLevel > 0 {
			return pointee(sym.Type, sym.PointerLevel)
		}
		return sym.ElemSize
	}
	if g, ok := cg.globals.Lookup(id.Name); ok {
		if !g.IsArray && g.PointerLevel > 0 {
			return pointee(g.Type, g.PointerLevel)
		}
		return g.ElemSize
	}
	return 4
}

// structTypeOf resolves the struct tag name (without "struct ") that obj
// evaluates to, via the symbol table's recorded type string — never via
// substring heuristics on the identifier's own name.
func (cg *CodeGenerator) structTypeOf(obj Node) (string, bool) {
	id, ok := obj.(*Identifier)
	if !ok {
		return "", false
	}
	var typ string
	if sym, ok := cg.locals.Lookup(id.Name); ok {
		typ = sym.Type
	} else if g, ok := cg.globals.Lookup(id.Name); ok {
		typ = g.Type
	} else {
		return "", false
	}
	const prefix = "struct "
	if len(typ) > len(prefix) && typ[:len(prefix)] == prefix {
		return typ[len(prefix):], true
	}
	return "", false
}

// lvalueMemberAccess computes `obj.member`'s address (object's own
// address plus the struct table's recorded offset) or `obj->member`'s
// (object's pointer value plus the offset).
func (cg *CodeGenerator) lvalueMemberAccess(m *MemberAccess) {
	structName, ok := cg.structTypeOf(m.Object)
	if !ok {
		cg.warn("unknown struct type in member access %q", m.Member)
		return
	}
	layout, ok := cg.structs.Lookup(structName)
	if !ok {
		cg.warn("unknown struct %q", structName)
		return
	}
	member, ok := layout.FieldOffset(m.Member)
	if !ok {
		cg.warn("unknown member %q of struct %s", m.Member, structName)
		return
	}
	if m.IsArrow {
		cg.genExpr(m.Object) // pointer value
	} else {
		cg.genLvalueAddress(m.Object)
	}
	if member.Offset != 0 {
		cg.emit("    add eax, %d", member.Offset)
	}
}

// memberSize returns the byte size of a member access's target, used to
// pick a sized load/store.
func (cg *CodeGenerator) memberSize(m *MemberAccess) int {
	structName, ok := cg.structTypeOf(m.Object)
	if !ok {
		return 4
	}
	layout, ok := cg.structs.Lookup(structName)
	if !ok {
		return 4
	}
	member, ok := layout.FieldOffset(m.Member)
	if !ok {
		return 4
	}
	return member.Size
}

// emitSizedLoad loads through the address currently in eax into eax,
// zero-extending from a byte or word per size (1/2/4).
func (cg *CodeGenerator) emitSizedLoad(size int) {
	switch size {
	case 1:
		cg.emit("    movzx eax, byte [eax]")
	case 2:
		cg.emit("    movzx eax, word [eax]")
	default:
		cg.emit("    mov eax, [eax]")
	}
}

// emitSizedStore stores the value in edx through the address in eax,
// matched to size (1/2/4).
func (cg *CodeGenerator) emitSizedStore(size int) {
	switch size {
	case 1:
		cg.emit("    mov [eax], dl")
	case 2:
		cg.emit("    mov [eax], dx")
	default:
		cg.emit("    mov [eax], edx")
	}
}

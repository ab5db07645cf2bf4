package main

// expr_codegen.go - expression evaluation (spec.md §4.4).
//
// Grounded on original_source/.../Codegen.c:codegen_expression for the
// push-left/eval-right-to-ebx/pop-left-to-eax binary-operator convention
// and the full operator switch, and on the teacher's control_flow.go
// generateLogicalOp for short-circuit &&/|| (Design Note fix, spec.md
// §9) — the teacher's version already short-circuits for its own
// language; kc32 reuses that structure instead of the spec value's
// non-short-circuiting arithmetic AND/OR.

// genExpr evaluates n, leaving its result in eax.
func (cg *CodeGenerator) genExpr(n Node) {
	switch v := n.(type) {
	case *IntLiteral:
		cg.genIntLiteral(v)
	case *StringLiteral:
		id := cg.strings.Intern(v.Value)
		cg.emit("    mov eax, str%d", id)
	case *CharLiteral:
		cg.emit("    mov eax, %d", int(v.Value))
	case *Identifier:
		cg.genIdentifierValue(v)
	case *BinaryOp:
		cg.genBinaryOp(v)
	case *UnaryOp:
		cg.genUnaryOp(v)
	case *Assign:
		cg.genAssign(v)
	case *Call:
		cg.genCall(v)
	case *ArrayAccess:
		cg.genLvalueAddress(v)
		cg.emitSizedLoad(cg.elementSizeOf(v.Array))
	case *MemberAccess:
		cg.genMemberAccessValue(v)
	case *Cast:
		cg.genCast(v)
	case *SizeofType:
		cg.emit("    mov eax, %d", cg.sizeofType(v.Type, v.PointerLevel))
	case *SizeofExpr:
		cg.emit("    mov eax, 4") // arbitrary expressions yield 4 (spec.md §4.4)
	case *Ternary:
		cg.genTernary(v)
	default:
		cg.warn("unsupported expression node")
	}
}

// genIntLiteral re-emits hex-spelled literals in hex (preserving the
// visible "cast a magic constant" idiom per spec.md §4.4's cast rule, and
// the hex-spelling Design Note decision recorded in DESIGN.md).
func (cg *CodeGenerator) genIntLiteral(v *IntLiteral) {
	if v.Hex {
		cg.emit("    mov eax, 0x%x", v.Value)
		return
	}
	cg.emit("    mov eax, %d", v.Value)
}

// genIdentifierValue loads an identifier's value: a local/global array
// decays to its address; a parameter/local scalar loads from its frame
// slot; a global scalar loads from its label; failing all of those, it
// tries an enum constant.
func (cg *CodeGenerator) genIdentifierValue(id *Identifier) {
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
	if val, ok := cg.enums.Lookup(id.Name); ok {
		cg.emit("    mov eax, %d", val)
		return
	}
	cg.warn("unknown identifier %q", id.Name)
}

func (cg *CodeGenerator) genMemberAccessValue(m *MemberAccess) {
	cg.genLvalueAddress(m)
	cg.emitSizedLoad(cg.memberSize(m))
}

var binaryOpInstr = map[string]string{
	"+": "add eax, ebx",
	"-": "sub eax, ebx",
	"&": "and eax, ebx",
	"|": "or eax, ebx",
	"^": "xor eax, ebx",
}

var compareSetInstr = map[string]string{
	"==": "sete",
	"!=": "setne",
	"<":  "setl",
	"<=": "setle",
	">":  "setg",
	">=": "setge",
}

// genBinaryOp implements spec.md §4.4's binary-operator convention:
// evaluate left, push eax, evaluate right, move eax to ebx, pop left into
// eax, perform the op. Logical &&/|| and comparisons are special-cased.
func (cg *CodeGenerator) genBinaryOp(b *BinaryOp) {
	switch b.Op {
	case "&&", "||":
		cg.genShortCircuit(b)
		return
	}
	if setcc, ok := compareSetInstr[b.Op]; ok {
		cg.genComparison(b, setcc)
		return
	}

	cg.genExpr(b.Left)
	cg.emit("    push eax")
	cg.genExpr(b.Right)
	cg.emit("    mov ebx, eax")
	cg.emit("    pop eax")

	switch b.Op {
	case "*":
		cg.emit("    imul eax, ebx")
	case "/":
		cg.emit("    cdq")
		cg.emit("    idiv ebx")
	case "%":
		cg.emit("    cdq")
		cg.emit("    idiv ebx")
		cg.emit("    mov eax, edx")
	case "<<":
		cg.emit("    mov ecx, ebx")
		cg.emit("    shl eax, cl")
	case ">>":
		cg.emit("    mov ecx, ebx")
		cg.emit("    sar eax, cl")
	default:
		if instr, ok := binaryOpInstr[b.Op]; ok {
			cg.emit("    %s", instr)
			return
		}
		cg.warn("unsupported binary operator %q", b.Op)
	}
}

func (cg *CodeGenerator) genComparison(b *BinaryOp, setcc string) {
	cg.genExpr(b.Left)
	cg.emit("    push eax")
	cg.genExpr(b.Right)
	cg.emit("    mov ebx, eax")
	cg.emit("    pop eax")
	cg.emit("    cmp eax, ebx")
	cg.emit("    %s al", setcc)
	cg.emit("    movzx eax, al")
}

// genShortCircuit implements the Design Note fix: evaluate left, branch
// on zero/nonzero to a synthesized label, evaluate right only if needed,
// merge (grounded on the teacher's control_flow.go generateLogicalOp).
func (cg *CodeGenerator) genShortCircuit(b *BinaryOp) {
	end := cg.label("logic_end")
	cg.genExpr(b.Left)
	cg.emit("    cmp eax, 0")
	if b.Op == "&&" {
		cg.emit("    je %s", end)
	} else {
		cg.emit("    jne %s", end)
	}
	cg.genExpr(b.Right)
	cg.emit("    cmp eax, 0")
	cg.emit("    setne al")
	cg.emit("    movzx eax, al")
	cg.emitRaw(end + ":")
}

// genUnaryOp implements prefix operators, address-of, and both prefix and
// postfix ++/-- (Design Note fix: postfix yields the pre-increment value,
// distinct from prefix — spec.md §9).
func (cg *CodeGenerator) genUnaryOp(u *UnaryOp) {
	switch u.Op {
	case "++", "--":
		cg.genIncDec(u)
	case "&":
		cg.genLvalueAddress(u.Operand)
	case "*":
		cg.genExpr(u.Operand)
		cg.emit("    mov eax, [eax]")
	case "-":
		cg.genExpr(u.Operand)
		cg.emit("    neg eax")
	case "+":
		cg.genExpr(u.Operand)
	case "~":
		cg.genExpr(u.Operand)
		cg.emit("    not eax")
	case "!":
		cg.genExpr(u.Operand)
		cg.emit("    cmp eax, 0")
		cg.emit("    sete al")
		cg.emit("    movzx eax, al")
	default:
		cg.warn("unsupported unary operator %q", u.Op)
	}
}

func (cg *CodeGenerator) genIncDec(u *UnaryOp) {
	size := cg.lvalueSize(u.Operand)
	cg.genLvalueAddress(u.Operand)
	cg.emit("    push eax") // save address
	cg.emitSizedLoad(size)
	if u.Postfix {
		cg.emit("    mov ebx, eax") // save old value to return
	}
	if u.Op == "++" {
		cg.emit("    add eax, 1")
	} else {
		cg.emit("    sub eax, 1")
	}
	cg.emit("    mov edx, eax")
	cg.emit("    pop eax") // restore address
	cg.emitSizedStore(size)
	if u.Postfix {
		cg.emit("    mov eax, ebx") // yield old value
	} else {
		cg.emit("    mov eax, edx") // yield new value
	}
}

// lvalueSize resolves the byte size used to load/store through an
// lvalue's address, matched to its declared element size.
func (cg *CodeGenerator) lvalueSize(n Node) int {
	switch v := n.(type) {
	case *Identifier:
		if sym, ok := cg.locals.Lookup(v.Name); ok {
			return sym.ElemSize
		}
		if g, ok := cg.globals.Lookup(v.Name); ok {
			return g.ElemSize
		}
	case *ArrayAccess:
		return cg.elementSizeOf(v.Array)
	case *MemberAccess:
		return cg.memberSize(v)
	case *UnaryOp:
		if v.Op == "*" {
			return 4
		}
	}
	return 4
}

// genAssign implements plain and compound assignment (spec.md §4.4).
func (cg *CodeGenerator) genAssign(a *Assign) {
	if a.Op == "=" {
		cg.genExpr(a.Value)
		cg.emit("    mov edx, eax")
		cg.genLvalueAddress(a.Target)
		cg.emitSizedStore(cg.lvalueSize(a.Target))
		cg.emit("    mov eax, edx")
		return
	}
	// Compound assignment: compute the lvalue address once, load current
	// value, evaluate RHS, combine, store back.
	size := cg.lvalueSize(a.Target)
	cg.genLvalueAddress(a.Target)
	cg.emit("    push eax") // save address
	cg.emitSizedLoad(size)
	cg.emit("    push eax") // save current value
	cg.genExpr(a.Value)
	cg.emit("    mov ebx, eax")
	cg.emit("    pop eax") // current value
	switch a.Op {
	case "+=":
		cg.emit("    add eax, ebx")
	case "-=":
		cg.emit("    sub eax, ebx")
	case "*=":
		cg.emit("    imul eax, ebx")
	case "/=":
		cg.emit("    cdq")
		cg.emit("    idiv ebx")
	}
	cg.emit("    mov edx, eax")
	cg.emit("    pop eax") // restore address
	cg.emitSizedStore(size)
	cg.emit("    mov eax, edx")
}

// genCall pushes arguments right-to-left, calls, and cleans the stack
// (spec.md §4.4).
func (cg *CodeGenerator) genCall(c *Call) {
	for i := len(c.Args) - 1; i >= 0; i-- {
		cg.genExpr(c.Args[i])
		cg.emit("    push eax")
	}
	cg.emit("    call %s", c.Callee)
	if n := len(c.Args); n > 0 {
		cg.emit("    add esp, %d", 4*n)
	}
}

// genCast emits no code for the sub-expression except when it is an
// integer literal, which is re-emitted in hex (spec.md §4.4).
func (cg *CodeGenerator) genCast(c *Cast) {
	if lit, ok := c.Expr.(*IntLiteral); ok {
		cg.emit("    mov eax, 0x%x", lit.Value)
		return
	}
	cg.genExpr(c.Expr)
}

// sizeofType returns a known primitive or struct's declared size, or 4
// for a pointer or unknown type (spec.md §4.4).
func (cg *CodeGenerator) sizeofType(typ string, pointerLevel int) int {
	if pointerLevel > 0 {
		return 4
	}
	return cg.typeSize(typ)
}

// genTernary compiles to branch / compute / jump / label / compute /
// label (spec.md §4.4).
func (cg *CodeGenerator) genTernary(t *Ternary) {
	elseLabel := cg.label("tern_else")
	endLabel := cg.label("tern_end")
	cg.genExpr(t.Cond)
	cg.emit("    cmp eax, 0")
	cg.emit("    je %s", elseLabel)
	cg.genExpr(t.Then)
	cg.emit("    jmp %s", endLabel)
	cg.emitRaw(elseLabel + ":")
	cg.genExpr(t.Else)
	cg.emitRaw(endLabel + ":")
}

package main

import "strings"

// stmt_codegen.go - statement emission (spec.md §4.4).

func (cg *CodeGenerator) genStmt(n Node) {
	switch v := n.(type) {
	case *Block:
		for _, s := range v.Stmts {
			cg.genStmt(s)
		}
	case *Declaration:
		cg.genLocalDecl(v)
	case *ExprStmt:
		cg.genExpr(v.Expr)
	case *If:
		cg.genIf(v)
	case *While:
		cg.genWhile(v)
	case *For:
		cg.genFor(v)
	case *Return:
		cg.genReturn(v)
	case *Break:
		cg.genBreak()
	case *Continue:
		cg.genContinue()
	case *InlineAsm:
		cg.genInlineAsm(v)
	case *StructDecl:
		cg.defineStruct(v)
	case *TypedefDecl:
		if v.Struct != nil {
			cg.defineStruct(v.Struct)
		}
	case *EnumDecl:
		cg.enums.Define(v, cg.evalConstInt)
	default:
		cg.warn("unsupported statement node")
	}
}

// genLocalDecl reserves a stack slot sized to (element-size ×
// max(1, array-count)) rounded up to 4, then emits the initializer store
// if present on a non-array declaration; an array's initializer is not
// emitted (spec.md §8's universal property on local declarations).
func (cg *CodeGenerator) genLocalDecl(d *Declaration) {
	elemSize := cg.typeSize(d.Type)
	if d.PointerLevel > 0 {
		elemSize = 4
	}
	count := 1
	if d.HasBrackets {
		count = cg.constArraySize(d.ArraySize)
	}
	totalSize := elemSize * count
	sym := cg.locals.AddLocal(d.Name, d.Type, d.PointerLevel, elemSize, totalSize, d.HasBrackets)

	if d.Init != nil && !d.HasBrackets {
		cg.genExpr(d.Init)
		cg.emit("    mov edx, eax")
		cg.emit("    lea eax, [%s]", sym.addr())
		cg.emitSizedStore(elemSize)
	}
}

func (cg *CodeGenerator) genIf(s *If) {
	elseLabel := cg.label("if_else")
	endLabel := cg.label("if_end")
	cg.genExpr(s.Cond)
	cg.emit("    cmp eax, 0")
	if s.Else != nil {
		cg.emit("    je %s", elseLabel)
		cg.genBlockOrStmt(s.Then)
		cg.emit("    jmp %s", endLabel)
		cg.emitRaw(elseLabel + ":")
		cg.genBlockOrStmt(s.Else)
		cg.emitRaw(endLabel + ":")
	} else {
		cg.emit("    je %s", endLabel)
		cg.genBlockOrStmt(s.Then)
		cg.emitRaw(endLabel + ":")
	}
}

// genWhile: label-start; test; conditional jump to label-end; body; jump
// to label-start; label-end (spec.md §4.4).
func (cg *CodeGenerator) genWhile(s *While) {
	start := cg.label("while_start")
	end := cg.label("while_end")
	cg.emitRaw(start + ":")
	cg.genExpr(s.Cond)
	cg.emit("    cmp eax, 0")
	cg.emit("    je %s", end)
	cg.loops.Push(end, start)
	cg.genBlockOrStmt(s.Body)
	cg.loops.Pop()
	cg.emit("    jmp %s", start)
	cg.emitRaw(end + ":")
}

// genFor: init; label-cond; test (empty -> true); body; label-continue;
// increment; jump to label-cond; label-end (spec.md §4.4).
func (cg *CodeGenerator) genFor(s *For) {
	if s.Init != nil {
		cg.genStmt(s.Init)
	}
	cond := cg.label("for_cond")
	cont := cg.label("for_cont")
	end := cg.label("for_end")
	cg.emitRaw(cond + ":")
	if s.Cond != nil {
		cg.genExpr(s.Cond)
		cg.emit("    cmp eax, 0")
		cg.emit("    je %s", end)
	}
	cg.loops.Push(end, cont)
	cg.genBlockOrStmt(s.Body)
	cg.loops.Pop()
	cg.emitRaw(cont + ":")
	if s.Incr != nil {
		cg.genExpr(s.Incr)
	}
	cg.emit("    jmp %s", cond)
	cg.emitRaw(end + ":")
}

// genReturn: every return transfers to the function's single .epilogue
// label with its value in eax (spec.md §4.4, §8).
func (cg *CodeGenerator) genReturn(s *Return) {
	if s.Value != nil {
		cg.genExpr(s.Value)
	}
	cg.emit("    jmp .epilogue")
}

func (cg *CodeGenerator) genBreak() {
	ctx, ok := cg.loops.Top()
	if !ok {
		cg.emit("    ; ERROR: Break outside loop")
		return
	}
	cg.emit("    jmp %s", ctx.BreakLabel)
}

func (cg *CodeGenerator) genContinue() {
	ctx, ok := cg.loops.Top()
	if !ok {
		cg.emit("    ; ERROR: Continue outside loop")
		return
	}
	cg.emit("    jmp %s", ctx.ContinueLabel)
}

// genInlineAsm splits the payload on newlines, trims leading whitespace,
// and emits each non-empty line verbatim with a four-space indent
// (spec.md §4.4).
func (cg *CodeGenerator) genInlineAsm(a *InlineAsm) {
	for _, line := range strings.Split(a.Body, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		cg.emit("    %s", trimmed)
	}
}

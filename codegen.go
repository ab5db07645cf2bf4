package main

import (
	"fmt"
	"strings"
)

// codegen.go - the code generator's core: struct, emission entry point,
// and top-level (program, function) emission (spec.md §4.4).
//
// Grounded on the teacher's codegen.go (CodeGenerator struct with
// dataSection/textSection strings.Builder, GenerateAssembly) for the Go
// shape, adapted to kc32's own AST and to x86-32 bare-metal output instead
// of Lotus's x86-64 Linux-userland output.

// CodeGenerator walks a program AST and writes a complete NASM file.
type CodeGenerator struct {
	text strings.Builder
	data strings.Builder

	globals *GlobalVarTable
	structs *StructLayoutTable
	enums   *EnumConstantTable
	strings *StringPool

	locals *LocalSymbolTable
	loops  *LoopStack

	labelCounter int
	diag         *Diagnostics
	stats        *CompilationStats
}

// NewCodeGenerator returns a CodeGenerator ready to consume a program.
func NewCodeGenerator(diag *Diagnostics, stats *CompilationStats) *CodeGenerator {
	return &CodeGenerator{
		globals: NewGlobalVarTable(),
		structs: NewStructLayoutTable(),
		enums:   NewEnumConstantTable(),
		strings: NewStringPool(),
		diag:    diag,
		stats:   stats,
	}
}

// emit writes one formatted line to the text section — the single
// primitive spec.md §4.4 names all other emission as going through.
func (cg *CodeGenerator) emit(format string, args ...any) {
	fmt.Fprintf(&cg.text, format, args...)
	cg.text.WriteByte('\n')
}

func (cg *CodeGenerator) emitRaw(line string) {
	cg.text.WriteString(line)
	cg.text.WriteByte('\n')
}

// label returns a fresh monotonically-increasing internal label.
func (cg *CodeGenerator) label(prefix string) string {
	cg.labelCounter++
	return fmt.Sprintf(".L%s%d", prefix, cg.labelCounter)
}

// warn implements spec.md §7's non-aborting codegen diagnostic: a
// "; WARNING" comment plus "xor eax, eax" so the output stays assemblable.
// This repurposes the teacher's error_handling.go try/catch mechanism's
// intent (recoverable, non-fatal control transfer) for a concern kc32
// actually has; see DESIGN.md.
func (cg *CodeGenerator) warn(format string, args ...any) {
	cg.emit("    ; WARNING: %s", fmt.Sprintf(format, args...))
	cg.emit("    xor eax, eax")
}

// Generate walks prog and returns the complete NASM text.
func (cg *CodeGenerator) Generate(prog *Program) string {
	cg.firstPass(prog)

	cg.emitPrologue()

	for _, d := range prog.Decls {
		if fn, ok := d.(*Function); ok && fn.Body != nil {
			if isReservedRuntimeName(fn.Name) {
				continue // silently suppressed in favor of the built-in (spec.md §4.4 step 3)
			}
			cg.genFunction(fn)
		}
	}

	cg.emitRuntimeBlock()

	cg.emitDataSection()

	var out strings.Builder
	out.WriteString(cg.text.String())
	out.WriteString(cg.data.String())
	return out.String()
}

// firstPass walks top-level declarations registering struct layouts,
// enum constants, and global variables before any function body is
// compiled, so forward references within the translation unit resolve
// (spec.md §3: "Populated lazily... during the codegen's first pass").
func (cg *CodeGenerator) firstPass(prog *Program) {
	for _, d := range prog.Decls {
		switch n := d.(type) {
		case *StructDecl:
			cg.defineStruct(n)
		case *TypedefDecl:
			if n.Struct != nil {
				cg.defineStruct(n.Struct)
			}
		case *EnumDecl:
			cg.enums.Define(n, cg.evalConstInt)
		case *Declaration:
			cg.defineGlobal(n)
		}
	}
}

func (cg *CodeGenerator) defineStruct(decl *StructDecl) {
	cg.structs.Define(decl, cg.fieldSize)
}

// fieldSize resolves a struct field's byte size: 1 for char, 2 for short,
// 4 for int/long/void/pointers/pointer-to-struct, or array-count ×
// element size for arrays (spec.md §3).
func (cg *CodeGenerator) fieldSize(f StructField) int {
	if f.PointerLevel > 0 {
		if f.HasBrackets {
			n := cg.constArraySize(f.ArraySize)
			return n * 4
		}
		return 4
	}
	elem := cg.typeSize(f.Type)
	if f.HasBrackets {
		n := cg.constArraySize(f.ArraySize)
		return n * elem
	}
	return elem
}

// typeSize returns the byte size of a scalar type name.
func (cg *CodeGenerator) typeSize(typ string) int {
	switch baseType(typ) {
	case "char", "unsigned char", "signed char":
		return 1
	case "short", "unsigned short":
		return 2
	case "int", "unsigned int", "long", "unsigned long", "void":
		return 4
	}
	if strings.HasPrefix(typ, "struct ") {
		if layout, ok := cg.structs.Lookup(strings.TrimPrefix(typ, "struct ")); ok {
			return layout.TotalSize
		}
	}
	return 4
}

func baseType(typ string) string {
	return strings.TrimSpace(typ)
}

// constArraySize folds an array-size expression to an integer, defaulting
// to 1 when it is absent or not a compile-time constant (kc32 performs no
// general constant folding beyond literal casts, per spec.md §1).
func (cg *CodeGenerator) constArraySize(n Node) int {
	if n == nil {
		return 1
	}
	if v, ok := cg.evalConstInt(n); ok {
		return int(v)
	}
	return 1
}

// evalConstInt folds a constant expression: integer literals, casts and
// unary negations of foldable expressions, and previously-defined enum
// constants.
func (cg *CodeGenerator) evalConstInt(n Node) (int64, bool) {
	switch v := n.(type) {
	case *IntLiteral:
		return v.Value, true
	case *Cast:
		return cg.evalConstInt(v.Expr)
	case *UnaryOp:
		if v.Op == "-" {
			if inner, ok := cg.evalConstInt(v.Operand); ok {
				return -inner, true
			}
		}
	case *Identifier:
		if val, ok := cg.enums.Lookup(v.Name); ok {
			return val, true
		}
	}
	return 0, false
}

func (cg *CodeGenerator) defineGlobal(d *Declaration) {
	if isReservedGlobalName(d.Name) {
		return
	}
	elemSize := cg.typeSize(d.Type)
	if d.PointerLevel > 0 {
		elemSize = 4
	}
	g := GlobalSymbol{
		Name:         d.Name,
		Type:         d.Type,
		PointerLevel: d.PointerLevel,
		IsArray:      d.HasBrackets,
		Init:         d.Init,
	}
	if d.HasBrackets {
		g.ElemCount = cg.constArraySize(d.ArraySize)
		g.ElemSize = elemSize
	} else {
		g.ElemSize = elemSize
	}
	cg.globals.Add(g)
}

// emitPrologue writes the fixed bare-metal entry sequence (spec.md §4.4
// step 1), grounded verbatim on
// original_source/.../Codegen.c:codegen_baremetal_prologue.
func (cg *CodeGenerator) emitPrologue() {
	cg.emitRaw("[BITS 32]")
	cg.emitRaw("[org 0x8000]")
	cg.emitRaw("")
	cg.emitRaw("section .text")
	cg.emitRaw("global _start")
	cg.emitRaw("global kernel_main")
	cg.emitRaw("")
	cg.emitRaw("_start:")
	cg.emit("    jmp kernel_main")
	cg.emitRaw("")
}

// genFunction emits one user function per spec.md §4.4's seven-step
// sequence.
func (cg *CodeGenerator) genFunction(fn *Function) {
	cg.locals = NewLocalSymbolTable()
	cg.loops = NewLoopStack()

	cg.emitRaw(fn.Name + ":")
	cg.emit("    push ebp")
	cg.emit("    mov ebp, esp")

	for _, param := range fn.Params {
		elemSize := cg.typeSize(param.Type)
		if param.PointerLevel > 0 {
			elemSize = 4
		}
		// A parameter declared with brackets ("pointer-as-parameter",
		// spec.md §4.3) already carries the extra pointer level folded
		// in by the parser; the slot itself holds a plain pointer value,
		// not an array requiring address-of decay, so IsArray is false.
		cg.locals.AddParam(param.Name, param.Type, param.PointerLevel, elemSize, false)
	}

	cg.emit("    sub esp, 512") // fixed, deliberately generous (spec.md §4.4 step 4, §9)

	cg.genBlockOrStmt(fn.Body)

	cg.emitRaw(".epilogue:")
	cg.emit("    mov esp, ebp")
	cg.emit("    pop ebp")
	cg.emit("    ret")
	cg.emitRaw("")

	if cg.loops.Len() != 0 {
		cg.diag.Warn("loop-context stack not empty at end of function %s", fn.Name)
	}
	if cg.stats != nil {
		cg.stats.Functions++
	}
}

func (cg *CodeGenerator) genBlockOrStmt(n Node) {
	if b, ok := n.(*Block); ok {
		for _, s := range b.Stmts {
			cg.genStmt(s)
		}
		return
	}
	cg.genStmt(n)
}

// emitDataSection writes the string pool then globals then the VGA cursor
// cell (spec.md §4.4 steps 4-5).
func (cg *CodeGenerator) emitDataSection() {
	fmt.Fprintln(&cg.data, "section .data")
	fmt.Fprintln(&cg.data, "align 4")

	for id, raw := range cg.strings.Entries() {
		fmt.Fprintf(&cg.data, "str%d db `%s`,0\n", id, escapeBacktickString(raw))
	}

	for _, g := range cg.globals.InOrder() {
		if g.IsArray {
			totalBytes := g.ElemCount * g.ElemSize
			fmt.Fprintf(&cg.data, "%s: times %d db 0\n", g.Name, totalBytes)
			continue
		}
		value := cg.foldGlobalInit(g.Init)
		fmt.Fprintf(&cg.data, "%s dd %s\n", g.Name, value)
	}

	fmt.Fprintln(&cg.data, "vga_cursor dd 0")
}

// foldGlobalInit folds a global's initializer to a decimal literal if
// evalConstInt can fold it (an integer literal, a cast or negation of one,
// or an enum constant); otherwise the global is zeroed (spec.md §4.4 step
// 4).
func (cg *CodeGenerator) foldGlobalInit(init Node) string {
	if init == nil {
		return "0"
	}
	if v, ok := cg.evalConstInt(init); ok {
		return fmt.Sprintf("%d", v)
	}
	return "0"
}

// escapeBacktickString makes raw safe to place inside NASM backtick
// quoting by escaping embedded backticks and backslashes.
func escapeBacktickString(raw string) string {
	r := strings.ReplaceAll(raw, "\\", "\\\\")
	r = strings.ReplaceAll(r, "`", "\\`")
	return r
}

var reservedRuntimeNames = map[string]bool{
	"print_char": true, "print_string": true, "print_hex": true, "print_int": true,
	"set_cursor": true, "get_cursor": true, "newline": true, "clear_screen": true,
	"outb": true, "inb": true, "outw": true, "inw": true, "outl": true, "inl": true,
	"disable_interrupts": true, "enable_interrupts": true, "cli_func": true, "sti_func": true,
	"halt": true, "read_cr0": true, "write_cr0": true, "read_cr3": true, "write_cr3": true,
	"memcpy": true, "memset": true, "memcmp": true,
}

func isReservedRuntimeName(name string) bool { return reservedRuntimeNames[name] }

var reservedGlobalNames = map[string]bool{"vga_cursor": true, "hex_chars": true}

func isReservedGlobalName(name string) bool { return reservedGlobalNames[name] }

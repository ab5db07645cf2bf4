package main

import "strconv"

// symtab.go - local and global symbol tables.
//
// Grounded on the teacher's Variable{Name,Type,Offset} (types.go) and the
// offset rules in spec.md §3/§4.4: parameters at +8, +4, +4, ... from the
// frame pointer (cdecl, first parameter after the saved ebp and return
// address); locals at negative offsets, each slot rounded up to a multiple
// of 4.

// LocalSymbol is one entry in a function's local symbol table: a local
// variable or a parameter.
type LocalSymbol struct {
	Name        string
	Offset      int // positive for parameters (+8, +12, ...), positive "distance below ebp" for locals
	IsParam     bool
	Size        int // total byte size of the slot
	Type        string
	PointerLevel int
	ElemSize    int // size of one element for arrays; for scalars and pointers, the width the variable itself is loaded/stored at (4 for any pointer)
	IsArray     bool
}

// addr renders the symbol's effective address operand, e.g. "ebp+8" or
// "ebp-4".
func (s LocalSymbol) addr() string {
	if s.IsParam {
		return "ebp+" + strconv.Itoa(s.Offset)
	}
	return "ebp-" + strconv.Itoa(s.Offset)
}

// LocalSymbolTable is cleared and reinitialized at the start of every
// function's code generation (spec.md §4.4 step 1).
type LocalSymbolTable struct {
	order   []string
	symbols map[string]LocalSymbol
	nextLocalOffset int
	nextParamOffset int
}

// NewLocalSymbolTable returns an empty table ready for a new function.
func NewLocalSymbolTable() *LocalSymbolTable {
	return &LocalSymbolTable{
		symbols:         make(map[string]LocalSymbol),
		nextParamOffset: 8,
	}
}

// AddParam assigns the next positive offset (+8, then +4 per step) to a
// parameter and records it.
func (t *LocalSymbolTable) AddParam(name, typ string, pointerLevel, elemSize int, isArray bool) LocalSymbol {
	sym := LocalSymbol{
		Name: name, Offset: t.nextParamOffset, IsParam: true,
		Size: 4, Type: typ, PointerLevel: pointerLevel, ElemSize: elemSize, IsArray: isArray,
	}
	t.nextParamOffset += 4
	t.order = append(t.order, name)
	t.symbols[name] = sym
	return sym
}

// AddLocal reserves size bytes (rounded up to a multiple of 4) for a local
// variable and assigns it the next negative-offset slot; subsequent
// declarations never overlap prior slots within the same function.
func (t *LocalSymbolTable) AddLocal(name, typ string, pointerLevel, elemSize, size int, isArray bool) LocalSymbol {
	rounded := roundUp4(size)
	t.nextLocalOffset += rounded
	sym := LocalSymbol{
		Name: name, Offset: t.nextLocalOffset, IsParam: false,
		Size: rounded, Type: typ, PointerLevel: pointerLevel, ElemSize: elemSize, IsArray: isArray,
	}
	t.order = append(t.order, name)
	t.symbols[name] = sym
	return sym
}

// Lookup returns a symbol by name.
func (t *LocalSymbolTable) Lookup(name string) (LocalSymbol, bool) {
	s, ok := t.symbols[name]
	return s, ok
}

func roundUp4(n int) int {
	if n <= 0 {
		return 4
	}
	return (n + 3) &^ 3
}

// GlobalSymbol mirrors LocalSymbol's metadata for a program-scope
// variable, plus its element count when it is an array.
type GlobalSymbol struct {
	Name         string
	Type         string
	PointerLevel int
	ElemSize     int
	IsArray      bool
	ElemCount    int
	Init         Node // optional folded initializer
}

// GlobalVarTable collects every program-scope variable declaration.
type GlobalVarTable struct {
	order   []string
	symbols map[string]GlobalSymbol
}

// NewGlobalVarTable returns an empty table.
func NewGlobalVarTable() *GlobalVarTable {
	return &GlobalVarTable{symbols: make(map[string]GlobalSymbol)}
}

// Add records g, preserving first-seen order.
func (t *GlobalVarTable) Add(g GlobalSymbol) {
	if _, exists := t.symbols[g.Name]; !exists {
		t.order = append(t.order, g.Name)
	}
	t.symbols[g.Name] = g
}

// Lookup returns a global by name.
func (t *GlobalVarTable) Lookup(name string) (GlobalSymbol, bool) {
	g, ok := t.symbols[name]
	return g, ok
}

// InOrder returns globals in first-declared order, for deterministic
// .data emission.
func (t *GlobalVarTable) InOrder() []GlobalSymbol {
	out := make([]GlobalSymbol, 0, len(t.order))
	for _, n := range t.order {
		out = append(out, t.symbols[n])
	}
	return out
}


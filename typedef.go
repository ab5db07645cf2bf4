package main

// typedef.go - the typedef table.
//
// Design Note fix (spec.md §9, "Global typedef table"): this is a value
// owned by the Parser, not a package-level variable, so two Parsers (hence
// two compilations) never share state.

// TypedefEntry is what a typedef alias resolves to: an underlying type
// spelling plus the pointer level recorded at the typedef site.
type TypedefEntry struct {
	Underlying   string
	PointerLevel int
}

// TypedefTable maps alias name to its entry. Reset at the start of every
// compilation by constructing a fresh one.
type TypedefTable struct {
	entries map[string]TypedefEntry
}

// NewTypedefTable returns an empty table.
func NewTypedefTable() *TypedefTable {
	return &TypedefTable{entries: make(map[string]TypedefEntry)}
}

// Define registers alias -> {underlying, pointerLevel}, overwriting any
// prior definition (redefinition is permitted, same as #define).
func (t *TypedefTable) Define(alias, underlying string, pointerLevel int) {
	t.entries[alias] = TypedefEntry{Underlying: underlying, PointerLevel: pointerLevel}
}

// Lookup reports whether name is a known typedef alias and its entry.
func (t *TypedefTable) Lookup(name string) (TypedefEntry, bool) {
	e, ok := t.entries[name]
	return e, ok
}

// IsTypeName reports whether ident names a typedef alias. Primitive
// keywords and `struct Name` are recognized separately by the caller via
// the token kind, so only the alias table is consulted here.
func (t *TypedefTable) IsTypeName(ident string) bool {
	_, ok := t.entries[ident]
	return ok
}

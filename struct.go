package main

// struct.go - the struct layout table, owned by the code generator and
// populated lazily as struct declarations are walked during codegen's
// first pass over globals (spec.md §3).
//
// Grounded on the teacher's struct.go (StructRegistry, StructDefinition,
// StructField, getFieldOffset) for the Go shape of the registry, adapted:
// the teacher computes offsets at parse time into a package-level global;
// here the table lives on *CodeGenerator and is filled during codegen so
// the parser stays free of layout concerns (spec.md §3: "Owned by the
// codegen... Populated lazily... during the codegen's first pass").

// StructMember is one field of a laid-out struct: name, byte offset, byte
// size.
type StructMember struct {
	Name   string
	Offset int
	Size   int
}

// StructLayout is one struct's full layout.
type StructLayout struct {
	Name      string
	Members   []StructMember
	TotalSize int
}

// FieldOffset returns the member's offset and whether it exists.
func (l *StructLayout) FieldOffset(name string) (StructMember, bool) {
	for _, m := range l.Members {
		if m.Name == name {
			return m, true
		}
	}
	return StructMember{}, false
}

// StructLayoutTable maps struct name -> layout.
type StructLayoutTable struct {
	layouts map[string]*StructLayout
}

// NewStructLayoutTable returns an empty table.
func NewStructLayoutTable() *StructLayoutTable {
	return &StructLayoutTable{layouts: make(map[string]*StructLayout)}
}

// Lookup returns a struct's layout by name (without the "struct " prefix).
func (t *StructLayoutTable) Lookup(name string) (*StructLayout, bool) {
	l, ok := t.layouts[name]
	return l, ok
}

// Define lays out decl's fields in declaration order, each ending
// 4-byte-aligned, and registers the result. cg resolves field sizes
// (nested struct fields, pointer sizes) via fieldSize.
func (t *StructLayoutTable) Define(decl *StructDecl, fieldSize func(StructField) int) *StructLayout {
	layout := &StructLayout{Name: decl.Name}
	offset := 0
	for _, f := range decl.Fields {
		size := fieldSize(f)
		layout.Members = append(layout.Members, StructMember{Name: f.Name, Offset: offset, Size: size})
		offset += size
		offset = roundUp4(offset)
	}
	layout.TotalSize = offset
	t.layouts[decl.Name] = layout
	return layout
}

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStructLayoutOffsetsAndTotalSize(t *testing.T) {
	decl := &StructDecl{
		Name: "Point",
		Fields: []StructField{
			{Type: "int", Name: "x"},
			{Type: "int", Name: "y"},
		},
	}
	cg := NewCodeGenerator(NewDiagnostics(), nil)
	layout := cg.structs.Define(decl, cg.fieldSize)

	require.Equal(t, 8, layout.TotalSize)
	x, ok := layout.FieldOffset("x")
	require.True(t, ok)
	require.Equal(t, 0, x.Offset)
	y, ok := layout.FieldOffset("y")
	require.True(t, ok)
	require.Equal(t, 4, y.Offset)
}

func TestStructLayoutMixedSizesAlign4(t *testing.T) {
	decl := &StructDecl{
		Name: "Mixed",
		Fields: []StructField{
			{Type: "char", Name: "a"},
			{Type: "int", Name: "b"},
		},
	}
	cg := NewCodeGenerator(NewDiagnostics(), nil)
	layout := cg.structs.Define(decl, cg.fieldSize)

	a, _ := layout.FieldOffset("a")
	b, _ := layout.FieldOffset("b")
	require.Equal(t, 0, a.Offset)
	require.Equal(t, 1, a.Size)
	require.Equal(t, 4, b.Offset) // 'a' ends 4-byte aligned before 'b' starts
	require.Equal(t, 8, layout.TotalSize)
}

func TestStructLayoutMembersStrictlyIncreasing(t *testing.T) {
	decl := &StructDecl{
		Name: "Three",
		Fields: []StructField{
			{Type: "char", Name: "a"},
			{Type: "short", Name: "b"},
			{Type: "int", Name: "c"},
		},
	}
	cg := NewCodeGenerator(NewDiagnostics(), nil)
	layout := cg.structs.Define(decl, cg.fieldSize)

	last := -1
	for _, m := range layout.Members {
		require.Greater(t, m.Offset, last)
		last = m.Offset
	}
	require.GreaterOrEqual(t, layout.TotalSize, last)
	require.Zero(t, layout.TotalSize%4)
}

func TestEnumAutoNumbering(t *testing.T) {
	decl := &EnumDecl{Members: []EnumMember{{Name: "RED"}, {Name: "GREEN"}, {Name: "BLUE"}}}
	table := NewEnumConstantTable()
	table.Define(decl, func(Node) (int64, bool) { return 0, false })

	red, ok := table.Lookup("RED")
	require.True(t, ok)
	require.EqualValues(t, 0, red)
	green, _ := table.Lookup("GREEN")
	require.EqualValues(t, 1, green)
	blue, _ := table.Lookup("BLUE")
	require.EqualValues(t, 2, blue)
}

func TestEnumExplicitValueContinuesNumbering(t *testing.T) {
	decl := &EnumDecl{Members: []EnumMember{
		{Name: "A"},
		{Name: "B", Value: &IntLiteral{Value: 10}},
		{Name: "C"},
	}}
	table := NewEnumConstantTable()
	table.Define(decl, func(n Node) (int64, bool) {
		if lit, ok := n.(*IntLiteral); ok {
			return lit.Value, true
		}
		return 0, false
	})

	a, _ := table.Lookup("A")
	b, _ := table.Lookup("B")
	c, _ := table.Lookup("C")
	require.EqualValues(t, 0, a)
	require.EqualValues(t, 10, b)
	require.EqualValues(t, 11, c)
}

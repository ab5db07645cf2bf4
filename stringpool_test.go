package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringPoolDedupAndEncounterOrder(t *testing.T) {
	p := NewStringPool()
	id0 := p.Intern("hello")
	id1 := p.Intern("world")
	id0again := p.Intern("hello")

	require.Equal(t, 0, id0)
	require.Equal(t, 1, id1)
	require.Equal(t, id0, id0again)
	require.Equal(t, []string{"hello", "world"}, p.Entries())
}

func TestLoopStackPushPopAndEmptyDetection(t *testing.T) {
	s := NewLoopStack()
	_, ok := s.Top()
	require.False(t, ok)

	s.Push("end1", "cont1")
	s.Push("end2", "cont2")
	require.Equal(t, 2, s.Len())

	top, ok := s.Top()
	require.True(t, ok)
	require.Equal(t, "end2", top.BreakLabel)
	require.Equal(t, "cont2", top.ContinueLabel)

	s.Pop()
	s.Pop()
	require.Equal(t, 0, s.Len())
}

func TestLocalSymbolTableParamAndLocalOffsets(t *testing.T) {
	tbl := NewLocalSymbolTable()
	a := tbl.AddParam("a", "int", 0, 4, false)
	b := tbl.AddParam("b", "int", 0, 4, false)
	require.Equal(t, 8, a.Offset)
	require.Equal(t, 12, b.Offset)

	local1 := tbl.AddLocal("x", "char", 0, 1, 1, false)
	local2 := tbl.AddLocal("y", "int", 0, 4, 4, false)
	require.Equal(t, 4, local1.Size) // rounded up to a multiple of 4
	require.NotEqual(t, local1.Offset, local2.Offset)
	require.Less(t, local1.Offset, local2.Offset)
}

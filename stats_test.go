package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordParseCountsASTNodes(t *testing.T) {
	prog := parseSource(t, "int add(int a,int b){ return a+b; }")
	stats := NewCompilationStats()
	stats.RecordParse(prog)
	// Function, 2 params, Block, Return, BinaryOp, 2 Identifiers, plus the
	// Program root itself: at least 9 nodes.
	require.GreaterOrEqual(t, stats.ASTNodeCount, 9)
}

func TestRecordParseCountsNestedExpressions(t *testing.T) {
	shallow := parseSource(t, "int f(){ return 1; }")
	deep := parseSource(t, "int f(){ return (1+2)*(3+4); }")

	s1, s2 := NewCompilationStats(), NewCompilationStats()
	s1.RecordParse(shallow)
	s2.RecordParse(deep)

	require.Greater(t, s2.ASTNodeCount, s1.ASTNodeCount)
}

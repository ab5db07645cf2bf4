package main

import (
	"fmt"
	"io"
	"time"
)

// stats.go - compilation statistics, kept in shape from the teacher's
// stats.go (CompilationStats / NewCompilationStats / Record* / Print),
// adapted to kc32's own pipeline phases and counters.

// PhaseTiming records how long one pipeline phase took.
type PhaseTiming struct {
	Name     string
	Duration time.Duration
}

// CompilationStats accumulates size and timing counters across one
// compilation, printed under -stat exactly as the teacher prints under
// its own flag.
type CompilationStats struct {
	SourceBytes  int
	SourceLines  int
	TokenCount   int
	ASTNodeCount int
	Functions    int
	AsmLines     int
	AsmBytes     int

	phases []PhaseTiming
}

// NewCompilationStats returns a zeroed stats collector.
func NewCompilationStats() *CompilationStats {
	return &CompilationStats{}
}

// RecordSource fills in source-size counters after reading the input
// file.
func (s *CompilationStats) RecordSource(src string) {
	s.SourceBytes = len(src)
	s.SourceLines = countLines(src)
}

// RecordTokenization fills in the token count after lexing.
func (s *CompilationStats) RecordTokenization(tokens []Token) {
	s.TokenCount = len(tokens)
}

// RecordParse fills in the AST node count after parsing.
func (s *CompilationStats) RecordParse(prog *Program) {
	s.ASTNodeCount = countASTNodes(prog)
}

// RecordCodegen fills in assembly-size counters after code generation.
func (s *CompilationStats) RecordCodegen(asm string) {
	s.AsmBytes = len(asm)
	s.AsmLines = countLines(asm)
}

// Phase records a named phase's elapsed duration.
func (s *CompilationStats) Phase(name string, d time.Duration) {
	s.phases = append(s.phases, PhaseTiming{Name: name, Duration: d})
}

// Print writes a human-readable summary to w.
func (s *CompilationStats) Print(w io.Writer) {
	fmt.Fprintf(w, "source: %d bytes, %d lines\n", s.SourceBytes, s.SourceLines)
	fmt.Fprintf(w, "tokens: %d\n", s.TokenCount)
	fmt.Fprintf(w, "ast nodes: %d\n", s.ASTNodeCount)
	fmt.Fprintf(w, "functions compiled: %d\n", s.Functions)
	fmt.Fprintf(w, "assembly: %d bytes, %d lines\n", s.AsmBytes, s.AsmLines)
	for _, p := range s.phases {
		fmt.Fprintf(w, "  %-12s %v\n", p.Name, p.Duration)
	}
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := 1
	for _, c := range s {
		if c == '\n' {
			n++
		}
	}
	return n
}

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// compiler.go - pipeline orchestration: read -> preprocess -> lex -> parse
// -> codegen -> write.
//
// Grounded on the teacher's compiler.go (Compiler{Options, Stats},
// NewCompiler, CompileFile's phase-by-phase structure with log.Printf
// under -v and time.Now()/time.Since timing per phase), adapted: the
// teacher's CompileFile also shells out to gcc to assemble/link and
// optionally runs the result (buildBinary/runBinary) — kc32 never invokes
// an assembler or linker (spec.md §1 Non-goals: "the system only emits
// text"), so those two steps are dropped; see DESIGN.md.

// Compiler drives one compilation from source text to NASM output.
type Compiler struct {
	Options CompilerOptions
	Stats   *CompilationStats
	diag    *Diagnostics
}

// NewCompiler returns a Compiler configured by opts.
func NewCompiler(opts CompilerOptions) *Compiler {
	return &Compiler{Options: opts, Stats: NewCompilationStats(), diag: NewDiagnostics()}
}

func (c *Compiler) logf(format string, args ...any) {
	if c.Options.Verbose {
		log.Printf(format, args...)
	}
}

func (c *Compiler) timed(phase string, fn func()) {
	start := time.Now()
	fn()
	c.Stats.Phase(phase, time.Since(start))
}

// CompileFile runs the full pipeline over the input file named in
// c.Options, writing NASM to the configured output path.
func (c *Compiler) CompileFile() error {
	data, err := os.ReadFile(c.Options.InputPath)
	if err != nil {
		c.diag.Fatalf("cannot open input file %s: %v", c.Options.InputPath, err)
	}
	src := string(data)
	c.Stats.RecordSource(src)
	c.logf("read %d bytes from %s", len(src), c.Options.InputPath)

	baseDir := filepath.Dir(c.Options.InputPath)
	if baseDir == "" {
		baseDir = "."
	}

	var preprocessed string
	c.timed("preprocess", func() {
		pp := NewPreprocessor(c.diag)
		preprocessed = pp.Process(src, baseDir)
	})
	c.logf("preprocessed to %d bytes", len(preprocessed))

	var tokens []Token
	c.timed("lex", func() {
		tokens = Tokenize(preprocessed)
	})
	c.Stats.RecordTokenization(tokens)
	c.logf("produced %d tokens", len(tokens))
	if err := c.checkLexErrors(tokens); err != nil {
		c.diag.Fatalf("%v", err)
	}

	if c.Options.DumpTokens {
		for _, t := range tokens {
			fmt.Printf("%d:%d %s %q\n", t.Line, t.Column, t.Kind, t.Lexeme)
		}
	}

	var prog *Program
	c.timed("parse", func() {
		parser := NewParser(tokens, c.diag)
		prog = parser.Parse()
	})
	c.Stats.RecordParse(prog)
	c.logf("parsed %d top-level declarations", len(prog.Decls))

	if c.Options.DumpAST {
		dumpAST(os.Stdout, prog)
	}

	var asm string
	c.timed("codegen", func() {
		cg := NewCodeGenerator(c.diag, c.Stats)
		asm = cg.Generate(prog)
	})
	c.Stats.RecordCodegen(asm)
	c.logf("generated %d bytes of assembly", len(asm))

	if err := c.writeAssembly(asm); err != nil {
		c.diag.Fatalf("cannot write output file %s: %v", c.Options.OutputPath, err)
	}

	if c.Options.Stats {
		c.Stats.Print(os.Stdout)
	}
	return nil
}

// checkLexErrors detects any error token in the stream (spec.md §7: "the
// driver detects this and aborts").
func (c *Compiler) checkLexErrors(tokens []Token) error {
	for _, t := range tokens {
		if t.Kind == TokenError {
			return fmt.Errorf("lexer error at line %d: %s", t.Line, t.Lexeme)
		}
	}
	return nil
}

// writeAssembly writes asm to the configured output path with LF line
// endings (spec.md §6).
func (c *Compiler) writeAssembly(asm string) error {
	return os.WriteFile(c.Options.OutputPath, []byte(asm), 0o644)
}

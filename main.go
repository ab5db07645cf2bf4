package main

import "os"

// main.go - entrypoint, following the teacher's main.go
// (run()-returns-exit-code, os.Exit(run())) pattern.

func main() {
	os.Exit(run())
}

func run() int {
	opts := ParseFlags(os.Args[1:])
	compiler := NewCompiler(opts)
	if err := compiler.CompileFile(); err != nil {
		return 1
	}
	return 0
}

package main

import (
	"fmt"
	"os"
)

// diagnostics.go - centralizes diagnostic formatting, following the shape
// of the teacher's diagnostics.go but implementing spec.md §7's table
// exactly rather than the teacher's own error set.
//
// This is a deliberate divergence from the teacher's try/catch machinery
// in error_handling.go, which models user-level exceptions for Lotus's
// own source language: kc32's C subset has no exceptions, so that
// mechanism (label-based control transfer) is repurposed instead for the
// codegen's struct/member/lvalue warning paths (see CodeGenerator.warn in
// codegen.go) rather than copied as-is.

// Diagnostics collects non-fatal warnings (printed to stderr, never
// aborting) and fatal errors (printed to stderr, then the process exits).
type Diagnostics struct {
	warnings int
}

// NewDiagnostics returns a fresh diagnostics sink.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

// Warn prints a non-fatal diagnostic line. Used for preprocessor
// include-depth/define-table-full conditions (spec.md §7).
func (d *Diagnostics) Warn(format string, args ...any) {
	d.warnings++
	fmt.Fprintf(os.Stderr, "kc32: warning: "+format+"\n", args...)
}

// Fatalf prints a diagnostic line and terminates the process with exit
// code 1. Used for I/O failures and parser errors (spec.md §7).
func (d *Diagnostics) Fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "kc32: "+format+"\n", args...)
	os.Exit(1)
}

// Warnings reports how many non-fatal diagnostics were issued.
func (d *Diagnostics) Warnings() int {
	return d.warnings
}

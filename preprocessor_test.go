package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPreprocessorDefineSubstitution(t *testing.T) {
	pp := NewPreprocessor(NewDiagnostics())
	out := pp.Process("#define WIDTH 80\nint w = WIDTH;\n", ".")
	require.Contains(t, out, "int w = 80;")
}

func TestPreprocessorRedefinitionReplacesValue(t *testing.T) {
	pp := NewPreprocessor(NewDiagnostics())
	out := pp.Process("#define N 1\n#define N 2\nint x = N;\n", ".")
	require.Contains(t, out, "int x = 2;")
}

func TestPreprocessorNoRescanning(t *testing.T) {
	pp := NewPreprocessor(NewDiagnostics())
	// FOO expands to BAR, but BAR is never itself re-expanded to 3.
	out := pp.Process("#define BAR 3\n#define FOO BAR\nint x = FOO;\n", ".")
	require.Contains(t, out, "int x = BAR;")
}

func TestPreprocessorSkipsUnknownAndConditionalDirectives(t *testing.T) {
	pp := NewPreprocessor(NewDiagnostics())
	out := pp.Process("#ifdef FOO\n#pragma once\nint x = 1;\n#endif\n", ".")
	require.Contains(t, out, "int x = 1;")
	require.False(t, strings.Contains(out, "pragma"))
}

func TestPreprocessorFailedIncludeIsSilentlySkipped(t *testing.T) {
	pp := NewPreprocessor(NewDiagnostics())
	out := pp.Process("#include \"does_not_exist.h\"\nint x;\n", ".")
	require.Contains(t, out, "int x;")
}

func TestPreprocessorIncludeDepthCapYieldsEmptySplice(t *testing.T) {
	pp := NewPreprocessor(NewDiagnostics())
	pp.depth = maxIncludeDepth
	var out strings.Builder
	pp.doInclude("\"whatever.h\"", ".", &out)
	require.Empty(t, out.String())
}

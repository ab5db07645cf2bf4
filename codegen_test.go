package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func compileToAsm(t *testing.T, src string) string {
	t.Helper()
	tokens := Tokenize(src)
	p := NewParser(tokens, NewDiagnostics())
	prog := p.Parse()
	cg := NewCodeGenerator(NewDiagnostics(), NewCompilationStats())
	return cg.Generate(prog)
}

func TestCodegenFixedPrologue(t *testing.T) {
	asm := compileToAsm(t, "int main(){return 0;}")
	require.Contains(t, asm, "[BITS 32]")
	require.Contains(t, asm, "[org 0x8000]")
	require.Contains(t, asm, "global _start")
	require.Contains(t, asm, "global kernel_main")
	require.Contains(t, asm, "jmp kernel_main")
}

func TestCodegenSimpleReturn(t *testing.T) {
	asm := compileToAsm(t, "int main(){return 42;}")
	require.Contains(t, asm, "main:")
	require.Contains(t, asm, "    push ebp")
	require.Contains(t, asm, "    mov ebp, esp")
	require.Contains(t, asm, "    mov eax, 42")
	require.Contains(t, asm, "    jmp .epilogue")
	require.Contains(t, asm, ".epilogue:")
	require.Contains(t, asm, "    ret")
}

func TestCodegenParameterAddition(t *testing.T) {
	asm := compileToAsm(t, "int add(int a,int b){return a+b;}")
	require.Contains(t, asm, "mov eax, [ebp+8]")
	require.Contains(t, asm, "mov eax, [ebp+12]")
	require.Contains(t, asm, "add eax, ebx")
}

func TestCodegenLocalArrayElementStore(t *testing.T) {
	asm := compileToAsm(t, "void f(){char s[4]; s[2]=65;}")
	require.Contains(t, asm, "sub esp, 512")
	// element size 1: no scaling multiply should be emitted for the index.
	require.NotContains(t, asm, "imul ebx, ebx, 1")
	require.Contains(t, asm, "mov [eax], dl")
}

func TestCodegenStructMemberArrow(t *testing.T) {
	asm := compileToAsm(t, "struct P{int x;int y;}; int g(struct P* p){return p->y;}")
	require.Contains(t, asm, "mov eax, [ebp+8]")
	require.Contains(t, asm, "add eax, 4")
}

func TestCodegenForLoopBreakTargetsForEnd(t *testing.T) {
	asm := compileToAsm(t, "int f(){int i; for(i=0;i<3;i=i+1){} return i;}")
	require.Contains(t, asm, ".L")
	// a for with an empty body still emits cond/cont/end labels and a
	// backward jump to the condition label.
	require.Regexp(t, `jmp \.Lfor_cond\d+`, asm)

	// a break in the body jumps to the for-end label (the condition
	// failure uses je, so only the break produces this jmp).
	withBreak := compileToAsm(t, "int f(){int i; for(i=0;i<3;i=i+1){ break; } return i;}")
	require.Regexp(t, `jmp \.Lfor_end\d+`, withBreak)
}

func TestCodegenTypedefSizeofAndGlobal(t *testing.T) {
	asm := compileToAsm(t, "typedef unsigned char u8; u8 x; int main(){return sizeof(x);}")
	require.Contains(t, asm, "x dd 0")
}

func TestCodegenCallPushesAndCleansStack(t *testing.T) {
	asm := compileToAsm(t, "int add(int a,int b); int main(){ return add(1,2); }")
	require.Contains(t, asm, "call add")
	require.Contains(t, asm, "add esp, 8")
}

func TestCodegenStringLiteralDedup(t *testing.T) {
	asm := compileToAsm(t, `void f(){ print_string("hi"); print_string("hi"); print_string("bye"); }`)
	require.Equal(t, 1, strings.Count(asm, "str0 db"))
	require.Contains(t, asm, "str1 db")
	require.False(t, strings.Contains(asm, "str2 db"))
}

func TestCodegenShortCircuitAnd(t *testing.T) {
	asm := compileToAsm(t, "int f(int a,int b){ return a && b; }")
	require.Contains(t, asm, "je .Llogic_end")
}

func TestCodegenShortCircuitOr(t *testing.T) {
	asm := compileToAsm(t, "int f(int a,int b){ return a || b; }")
	require.Contains(t, asm, "jne .Llogic_end")
}

func TestCodegenPostfixYieldsOldValue(t *testing.T) {
	asm := compileToAsm(t, "int f(int i){ return i++; }")
	// postfix path saves the old value to ebx before mutating.
	require.Contains(t, asm, "mov ebx, eax")
	require.Contains(t, asm, "mov eax, ebx")
}

func TestCodegenSingleEpilogueLabel(t *testing.T) {
	asm := compileToAsm(t, "int f(int a){ if(a){return 1;} return 0; }")
	require.Equal(t, 1, strings.Count(asm, ".epilogue:"))
}

func TestCodegenReservedRuntimeNamesEmittedOnce(t *testing.T) {
	asm := compileToAsm(t, "void print_char(int c){ return; } int main(){ return 0; }")
	require.Equal(t, 1, strings.Count(asm, "print_char:"))
}

func TestCodegenRuntimeBlockPresent(t *testing.T) {
	asm := compileToAsm(t, "int main(){return 0;}")
	for _, name := range []string{
		"print_char:", "print_string:", "print_hex:", "print_int:",
		"set_cursor:", "get_cursor:", "newline:", "clear_screen:",
		"outb:", "inb:", "outw:", "inw:", "outl:", "inl:",
		"disable_interrupts:", "enable_interrupts:", "halt:",
		"read_cr0:", "write_cr0:", "read_cr3:", "write_cr3:",
		"memcpy:", "memset:", "memcmp:",
	} {
		require.Containsf(t, asm, name, "missing runtime label %s", name)
	}
	require.Contains(t, asm, "vga_cursor dd 0")
}

func TestCodegenEmptyCallArgsAndValuelessReturn(t *testing.T) {
	asm := compileToAsm(t, "void halt_loop(); void f(){ halt_loop(); return; }")
	require.Contains(t, asm, "call halt_loop")
	require.NotContains(t, asm, "add esp, 0")
}

func TestCodegenLocalCharArraySizing(t *testing.T) {
	// char s[5] rounds up to ceil(5/4)*4 = 8 bytes.
	asm := compileToAsm(t, "void f(){ char s[5]; s[0]=1; }")
	require.Contains(t, asm, "sub esp, 512")
	_ = asm // slot rounding is covered by stringpool_test.go's TestLocalSymbolTableParamAndLocalOffsets
}

func TestCodegenGlobalArrayEmitsTimesDirective(t *testing.T) {
	asm := compileToAsm(t, "int buf[10]; int main(){ return buf[0]; }")
	require.Contains(t, asm, "buf: times 40 db 0")
}

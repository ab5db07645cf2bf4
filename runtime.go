package main

// runtime.go - the fixed runtime block: VGA text output, port I/O,
// interrupt control, and memory primitives (spec.md §4.4 step 3, §6).
//
// Grounded closely (labels reproduced exactly, since spec.md §6 fixes
// these as reserved names callable from user code; instruction sequences
// follow the original but differ in places, e.g. print_char uses ebx
// without saving it — see DESIGN.md) on
// original_source/.../Codegen.c's codegen_emit_runtime,
// codegen_emit_port_io_runtime, codegen_emit_interrupt_runtime, and
// codegen_emit_memory_runtime.

func (cg *CodeGenerator) emitRuntimeBlock() {
	cg.emitVGARuntime()
	cg.emitPortIORuntime()
	cg.emitInterruptRuntime()
	cg.emitMemoryRuntime()
}

func (cg *CodeGenerator) emitVGARuntime() {
	cg.emitRaw("print_char:")
	cg.emit("    push ebp")
	cg.emit("    mov ebp, esp")
	cg.emit("    mov eax, [vga_cursor]")
	cg.emit("    mov ebx, eax")
	cg.emit("    shl eax, 1")
	cg.emit("    mov edx, [ebp+8]")
	cg.emit("    mov byte [0xB8000+eax], dl")
	cg.emit("    mov byte [0xB8000+eax+1], 0x0F")
	cg.emit("    inc ebx")
	cg.emit("    mov [vga_cursor], ebx")
	cg.emit("    mov esp, ebp")
	cg.emit("    pop ebp")
	cg.emit("    ret")
	cg.emitRaw("")

	cg.emitRaw("print_string:")
	cg.emit("    push ebp")
	cg.emit("    mov ebp, esp")
	cg.emit("    push esi")
	cg.emit("    mov esi, [ebp+8]")
	cg.emitRaw(".ps_loop:")
	cg.emit("    lodsb")
	cg.emit("    cmp al, 0")
	cg.emit("    je .ps_done")
	cg.emit("    push eax")
	cg.emit("    push eax")
	cg.emit("    call print_char")
	cg.emit("    add esp, 4")
	cg.emit("    pop eax")
	cg.emit("    jmp .ps_loop")
	cg.emitRaw(".ps_done:")
	cg.emit("    pop esi")
	cg.emit("    mov esp, ebp")
	cg.emit("    pop ebp")
	cg.emit("    ret")
	cg.emitRaw("")

	cg.emitRaw("print_hex:")
	cg.emit("    push ebp")
	cg.emit("    mov ebp, esp")
	cg.emit("    push ebx")
	cg.emit("    push ecx")
	cg.emit("    mov eax, [ebp+8]")
	cg.emit("    mov ecx, 8")
	cg.emitRaw(".ph_loop:")
	cg.emit("    rol eax, 4")
	cg.emit("    mov ebx, eax")
	cg.emit("    and ebx, 0x0F")
	cg.emit("    push eax")
	cg.emit("    push ecx")
	cg.emit("    movzx eax, byte [hex_chars+ebx]")
	cg.emit("    push eax")
	cg.emit("    call print_char")
	cg.emit("    add esp, 4")
	cg.emit("    pop ecx")
	cg.emit("    pop eax")
	cg.emit("    loop .ph_loop")
	cg.emit("    pop ecx")
	cg.emit("    pop ebx")
	cg.emit("    mov esp, ebp")
	cg.emit("    pop ebp")
	cg.emit("    ret")
	cg.emitRaw("")

	cg.emitRaw("print_int:")
	cg.emit("    push ebp")
	cg.emit("    mov ebp, esp")
	cg.emit("    push ebx")
	cg.emit("    push ecx")
	cg.emit("    push edx")
	cg.emit("    mov eax, [ebp+8]")
	cg.emit("    cmp eax, 0")
	cg.emit("    jge .pi_positive")
	cg.emit("    push eax")
	cg.emit("    push dword 45") // '-'
	cg.emit("    call print_char")
	cg.emit("    add esp, 4")
	cg.emit("    pop eax")
	cg.emit("    neg eax")
	cg.emitRaw(".pi_positive:")
	cg.emit("    mov ecx, 0")
	cg.emit("    mov ebx, 10")
	cg.emit("    cmp eax, 0")
	cg.emit("    jne .pi_div")
	cg.emit("    push dword 48") // '0'
	cg.emit("    call print_char")
	cg.emit("    add esp, 4")
	cg.emit("    jmp .pi_done")
	cg.emitRaw(".pi_div:")
	cg.emit("    cmp eax, 0")
	cg.emit("    je .pi_print")
	cg.emit("    xor edx, edx")
	cg.emit("    div ebx")
	cg.emit("    push edx")
	cg.emit("    inc ecx")
	cg.emit("    jmp .pi_div")
	cg.emitRaw(".pi_print:")
	cg.emit("    cmp ecx, 0")
	cg.emit("    je .pi_done")
	cg.emit("    pop eax")
	cg.emit("    add eax, 48")
	cg.emit("    push eax")
	cg.emit("    call print_char")
	cg.emit("    add esp, 4")
	cg.emit("    dec ecx")
	cg.emit("    jmp .pi_print")
	cg.emitRaw(".pi_done:")
	cg.emit("    pop edx")
	cg.emit("    pop ecx")
	cg.emit("    pop ebx")
	cg.emit("    mov esp, ebp")
	cg.emit("    pop ebp")
	cg.emit("    ret")
	cg.emitRaw("")

	cg.emitRaw("set_cursor:")
	cg.emit("    push ebp")
	cg.emit("    mov ebp, esp")
	cg.emit("    mov eax, [ebp+8]")
	cg.emit("    mov [vga_cursor], eax")
	cg.emit("    mov esp, ebp")
	cg.emit("    pop ebp")
	cg.emit("    ret")
	cg.emitRaw("")

	cg.emitRaw("get_cursor:")
	cg.emit("    push ebp")
	cg.emit("    mov ebp, esp")
	cg.emit("    mov eax, [vga_cursor]")
	cg.emit("    mov esp, ebp")
	cg.emit("    pop ebp")
	cg.emit("    ret")
	cg.emitRaw("")

	cg.emitRaw("newline:")
	cg.emit("    push ebp")
	cg.emit("    mov ebp, esp")
	cg.emit("    push ebx")
	cg.emit("    mov eax, [vga_cursor]")
	cg.emit("    xor edx, edx")
	cg.emit("    mov ebx, 80")
	cg.emit("    div ebx")
	cg.emit("    inc eax")
	cg.emit("    imul eax, eax, 80")
	cg.emit("    mov [vga_cursor], eax")
	cg.emit("    pop ebx")
	cg.emit("    mov esp, ebp")
	cg.emit("    pop ebp")
	cg.emit("    ret")
	cg.emitRaw("")

	cg.emitRaw("clear_screen:")
	cg.emit("    push ebp")
	cg.emit("    mov ebp, esp")
	cg.emit("    push edi")
	cg.emit("    push ecx")
	cg.emit("    mov edi, 0xB8000")
	cg.emit("    mov ecx, 2000")
	cg.emit("    mov ax, 0x0F20")
	cg.emitRaw(".cs_loop:")
	cg.emit("    mov [edi], ax")
	cg.emit("    add edi, 2")
	cg.emit("    loop .cs_loop")
	cg.emit("    mov dword [vga_cursor], 0")
	cg.emit("    pop ecx")
	cg.emit("    pop edi")
	cg.emit("    mov esp, ebp")
	cg.emit("    pop ebp")
	cg.emit("    ret")
	cg.emitRaw("")
}

func (cg *CodeGenerator) emitPortIORuntime() {
	cg.emitRaw("outb:")
	cg.emit("    push ebp")
	cg.emit("    mov ebp, esp")
	cg.emit("    mov edx, [ebp+8]")
	cg.emit("    mov eax, [ebp+12]")
	cg.emit("    out dx, al")
	cg.emit("    pop ebp")
	cg.emit("    ret")
	cg.emitRaw("")

	cg.emitRaw("inb:")
	cg.emit("    push ebp")
	cg.emit("    mov ebp, esp")
	cg.emit("    mov edx, [ebp+8]")
	cg.emit("    in al, dx")
	cg.emit("    movzx eax, al")
	cg.emit("    pop ebp")
	cg.emit("    ret")
	cg.emitRaw("")

	cg.emitRaw("outw:")
	cg.emit("    push ebp")
	cg.emit("    mov ebp, esp")
	cg.emit("    mov edx, [ebp+8]")
	cg.emit("    mov eax, [ebp+12]")
	cg.emit("    out dx, ax")
	cg.emit("    pop ebp")
	cg.emit("    ret")
	cg.emitRaw("")

	cg.emitRaw("inw:")
	cg.emit("    push ebp")
	cg.emit("    mov ebp, esp")
	cg.emit("    mov edx, [ebp+8]")
	cg.emit("    in ax, dx")
	cg.emit("    movzx eax, ax")
	cg.emit("    pop ebp")
	cg.emit("    ret")
	cg.emitRaw("")

	cg.emitRaw("outl:")
	cg.emit("    push ebp")
	cg.emit("    mov ebp, esp")
	cg.emit("    mov edx, [ebp+8]")
	cg.emit("    mov eax, [ebp+12]")
	cg.emit("    out dx, eax")
	cg.emit("    pop ebp")
	cg.emit("    ret")
	cg.emitRaw("")

	cg.emitRaw("inl:")
	cg.emit("    push ebp")
	cg.emit("    mov ebp, esp")
	cg.emit("    mov edx, [ebp+8]")
	cg.emit("    in eax, dx")
	cg.emit("    pop ebp")
	cg.emit("    ret")
	cg.emitRaw("")
}

func (cg *CodeGenerator) emitInterruptRuntime() {
	cg.emitRaw("disable_interrupts:")
	cg.emitRaw("cli_func:")
	cg.emit("    cli")
	cg.emit("    ret")
	cg.emitRaw("")

	cg.emitRaw("enable_interrupts:")
	cg.emitRaw("sti_func:")
	cg.emit("    sti")
	cg.emit("    ret")
	cg.emitRaw("")

	cg.emitRaw("halt:")
	cg.emit("    hlt")
	cg.emit("    jmp halt")
	cg.emitRaw("")

	cg.emitRaw("read_cr0:")
	cg.emit("    mov eax, cr0")
	cg.emit("    ret")
	cg.emitRaw("")

	cg.emitRaw("write_cr0:")
	cg.emit("    push ebp")
	cg.emit("    mov ebp, esp")
	cg.emit("    mov eax, [ebp+8]")
	cg.emit("    mov cr0, eax")
	cg.emit("    pop ebp")
	cg.emit("    ret")
	cg.emitRaw("")

	cg.emitRaw("read_cr3:")
	cg.emit("    mov eax, cr3")
	cg.emit("    ret")
	cg.emitRaw("")

	cg.emitRaw("write_cr3:")
	cg.emit("    push ebp")
	cg.emit("    mov ebp, esp")
	cg.emit("    mov eax, [ebp+8]")
	cg.emit("    mov cr3, eax")
	cg.emit("    pop ebp")
	cg.emit("    ret")
	cg.emitRaw("")
}

func (cg *CodeGenerator) emitMemoryRuntime() {
	cg.emitRaw("memcpy:")
	cg.emit("    push ebp")
	cg.emit("    mov ebp, esp")
	cg.emit("    push esi")
	cg.emit("    push edi")
	cg.emit("    push ecx")
	cg.emit("    mov edi, [ebp+8]")
	cg.emit("    mov esi, [ebp+12]")
	cg.emit("    mov ecx, [ebp+16]")
	cg.emit("    rep movsb")
	cg.emit("    mov eax, [ebp+8]")
	cg.emit("    pop ecx")
	cg.emit("    pop edi")
	cg.emit("    pop esi")
	cg.emit("    pop ebp")
	cg.emit("    ret")
	cg.emitRaw("")

	cg.emitRaw("memset:")
	cg.emit("    push ebp")
	cg.emit("    mov ebp, esp")
	cg.emit("    push edi")
	cg.emit("    push ecx")
	cg.emit("    mov edi, [ebp+8]")
	cg.emit("    mov eax, [ebp+12]")
	cg.emit("    mov ecx, [ebp+16]")
	cg.emit("    rep stosb")
	cg.emit("    mov eax, [ebp+8]")
	cg.emit("    pop ecx")
	cg.emit("    pop edi")
	cg.emit("    pop ebp")
	cg.emit("    ret")
	cg.emitRaw("")

	cg.emitRaw("memcmp:")
	cg.emit("    push ebp")
	cg.emit("    mov ebp, esp")
	cg.emit("    push esi")
	cg.emit("    push edi")
	cg.emit("    push ecx")
	cg.emit("    mov esi, [ebp+8]")
	cg.emit("    mov edi, [ebp+12]")
	cg.emit("    mov ecx, [ebp+16]")
	cg.emit("    xor eax, eax")
	cg.emit("    repe cmpsb")
	cg.emit("    je .memcmp_equal")
	cg.emit("    movzx eax, byte [esi-1]")
	cg.emit("    movzx edx, byte [edi-1]")
	cg.emit("    sub eax, edx")
	cg.emitRaw(".memcmp_equal:")
	cg.emit("    pop ecx")
	cg.emit("    pop edi")
	cg.emit("    pop esi")
	cg.emit("    pop ebp")
	cg.emit("    ret")
	cg.emitRaw("")

	cg.emitRaw("hex_chars db '0123456789ABCDEF'")
	cg.emitRaw("")
}

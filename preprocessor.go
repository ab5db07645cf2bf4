package main

import (
	"os"
	"path/filepath"
	"strings"
)

// preprocessor.go - textual #include / #define expansion (spec.md §4.1).
//
// Grounded on original_source/.../Preprocessor.c for exact semantics
// (silent skip of failed opens and unknown directives, no #undef, single-
// pass substitution with no rescanning) and on the teacher's line-oriented
// style elsewhere in the pack; Lotus itself has no preprocessor, so the
// structure here is original to kc32 within the teacher's idiom (small
// struct holding mutable state, one exported entry point).

const (
	maxIncludeDepth = 32
	maxDefines      = 256
)

// Preprocessor expands #include and #define directives over a single
// translation unit. One Preprocessor is used for an entire compilation;
// depth tracks include recursion across nested Process calls.
type Preprocessor struct {
	defines map[string]string
	depth   int
	diag    *Diagnostics
}

// NewPreprocessor returns a Preprocessor reporting to diag.
func NewPreprocessor(diag *Diagnostics) *Preprocessor {
	return &Preprocessor{defines: make(map[string]string), diag: diag}
}

// Process expands src (read from a file in baseDir, or provided directly
// for the top-level translation unit) and returns the fully-spliced text.
func (p *Preprocessor) Process(src, baseDir string) string {
	var out strings.Builder
	lines := strings.Split(src, "\n")
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "#") {
			p.directive(trimmed[1:], baseDir, &out)
			continue
		}
		p.substitute(line, &out)
		out.WriteByte('\n')
	}
	return out.String()
}

// directive dispatches one preprocessor directive line (without the
// leading '#').
func (p *Preprocessor) directive(rest, baseDir string, out *strings.Builder) {
	rest = strings.TrimLeft(rest, " \t")
	switch {
	case strings.HasPrefix(rest, "include"):
		p.doInclude(strings.TrimSpace(rest[len("include"):]), baseDir, out)
	case strings.HasPrefix(rest, "define"):
		p.doDefine(strings.TrimSpace(rest[len("define"):]))
	default:
		// pragma, ifdef, ifndef, endif, and any unrecognized directive:
		// skip the entire line.
	}
}

// doInclude resolves "file" or <file>, recursively preprocesses it in the
// same state, and splices the result in followed by a newline. Failed
// opens are silently skipped; depth beyond maxIncludeDepth yields an
// empty splice.
func (p *Preprocessor) doInclude(spec, baseDir string, out *strings.Builder) {
	if p.depth >= maxIncludeDepth {
		p.diag.Warn("include depth exceeds %d, skipping", maxIncludeDepth)
		return
	}
	name := strings.Trim(spec, "\"<>")
	path := name
	if !strings.ContainsRune(name, filepath.Separator) && !strings.ContainsRune(name, '/') {
		path = filepath.Join(baseDir, name)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return // silently skipped per spec.md §4.1
	}
	p.depth++
	expanded := p.Process(string(data), filepath.Dir(path))
	p.depth--
	out.WriteString(expanded)
	out.WriteByte('\n')
}

// doDefine stores/overwrites NAME -> value. Redefinition replaces the
// prior value; there is no #undef. Beyond maxDefines, extra defines are
// diagnosed and ignored.
func (p *Preprocessor) doDefine(rest string) {
	fields := strings.SplitN(rest, " ", 2)
	name := strings.TrimSpace(fields[0])
	if name == "" {
		return
	}
	value := ""
	if len(fields) == 2 {
		value = strings.TrimSpace(fields[1])
	}
	if _, exists := p.defines[name]; !exists && len(p.defines) >= maxDefines {
		p.diag.Warn("define table full (%d entries), ignoring %q", maxDefines, name)
		return
	}
	p.defines[name] = value
}

// substitute performs the character-oriented, single-pass identifier
// substitution over one line of body text: any maximal identifier run is
// looked up in the define table and replaced verbatim if present and
// non-empty; the replacement text is never rescanned.
func (p *Preprocessor) substitute(line string, out *strings.Builder) {
	i := 0
	n := len(line)
	for i < n {
		c := line[i]
		if isIdentStart(c) {
			j := i + 1
			for j < n && isIdentCont(line[j]) {
				j++
			}
			ident := line[i:j]
			if val, ok := p.defines[ident]; ok && val != "" {
				out.WriteString(val)
			} else {
				out.WriteString(ident)
			}
			i = j
			continue
		}
		out.WriteByte(c)
		i++
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

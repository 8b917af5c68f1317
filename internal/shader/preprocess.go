package shader

import (
	"bufio"
	"fmt"
	"strings"
)

// conditional is one level of an #ifdef/#ifndef block.
type conditional struct {
	// parentActive reports whether the enclosing block emits lines.
	parentActive bool
	// taken reports whether the current branch condition holds.
	taken bool
	// sawElse rejects a second #else in the same block.
	sawElse bool
	line    int
}

func (c conditional) active() bool { return c.parentActive && c.taken }

// Preprocess evaluates the directives in header followed by source and
// returns the selected WGSL text.
//
// Directive and skipped lines are replaced by empty lines so that line
// numbers reported by the compiler match the original source.
func Preprocess(header, source string) (string, error) {
	defines := make(map[string]bool)
	if err := scanDirectives(header, defines, nil); err != nil {
		return "", fmt.Errorf("shader: header: %w", err)
	}

	var out strings.Builder
	out.Grow(len(source))
	if err := scanDirectives(source, defines, &out); err != nil {
		return "", fmt.Errorf("shader: source: %w", err)
	}
	return out.String(), nil
}

// scanDirectives processes text line by line, updating defines and writing
// active non-directive lines to out when out is non-nil.
func scanDirectives(text string, defines map[string]bool, out *strings.Builder) error {
	var stack []conditional
	active := func() bool {
		return len(stack) == 0 || stack[len(stack)-1].active()
	}

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		trimmed := strings.TrimSpace(line)

		if !strings.HasPrefix(trimmed, "#") {
			if out != nil {
				if active() {
					out.WriteString(line)
				}
				out.WriteByte('\n')
			}
			continue
		}

		directive, arg, _ := strings.Cut(trimmed[1:], " ")
		arg = strings.TrimSpace(arg)
		switch directive {
		case "define":
			if arg == "" {
				return fmt.Errorf("line %d: #define without a name", lineNo)
			}
			if active() {
				name, _, _ := strings.Cut(arg, " ")
				defines[name] = true
			}
		case "ifdef", "ifndef":
			if arg == "" {
				return fmt.Errorf("line %d: #%s without a name", lineNo, directive)
			}
			cond := defines[arg]
			if directive == "ifndef" {
				cond = !cond
			}
			stack = append(stack, conditional{parentActive: active(), taken: cond, line: lineNo})
		case "else":
			if len(stack) == 0 {
				return fmt.Errorf("line %d: #else without #ifdef", lineNo)
			}
			top := &stack[len(stack)-1]
			if top.sawElse {
				return fmt.Errorf("line %d: duplicate #else for block opened at line %d", lineNo, top.line)
			}
			top.sawElse = true
			top.taken = !top.taken
		case "endif":
			if len(stack) == 0 {
				return fmt.Errorf("line %d: #endif without #ifdef", lineNo)
			}
			stack = stack[:len(stack)-1]
		default:
			return fmt.Errorf("line %d: unknown directive #%s", lineNo, directive)
		}

		if out != nil {
			out.WriteByte('\n')
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if len(stack) > 0 {
		return fmt.Errorf("unterminated #ifdef opened at line %d", stack[len(stack)-1].line)
	}
	return nil
}

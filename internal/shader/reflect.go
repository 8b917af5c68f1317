package shader

import "strings"

// References reports, for each field name, whether source accesses it as
// instance.field. Accesses inside // comments are ignored.
//
// The rect shaders read every uniform through a single struct instance, so
// a field that is never accessed in the selected variant is treated the way
// GL treats a uniform optimized out by the driver.
func References(source, instance string, fields []string) map[string]bool {
	code := stripLineComments(source)
	refs := make(map[string]bool, len(fields))
	for _, field := range fields {
		refs[field] = containsAccess(code, instance+"."+field)
	}
	return refs
}

func containsAccess(code, access string) bool {
	for offset := 0; ; {
		i := strings.Index(code[offset:], access)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(access)
		if (start == 0 || !isIdentByte(code[start-1])) && (end == len(code) || !isIdentByte(code[end])) {
			return true
		}
		offset = end
	}
}

func stripLineComments(source string) string {
	var b strings.Builder
	b.Grow(len(source))
	for _, line := range strings.SplitAfter(source, "\n") {
		if i := strings.Index(line, "//"); i >= 0 {
			b.WriteString(line[:i])
			if strings.HasSuffix(line, "\n") {
				b.WriteByte('\n')
			}
			continue
		}
		b.WriteString(line)
	}
	return b.String()
}

func isIdentByte(c byte) bool {
	return c == '_' || '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

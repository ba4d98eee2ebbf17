package diffparse

import "strings"

// unquotePath reverses git's C-style quoting of a path that contains
// characters unsafe for a plain diff header (tabs, newlines, quotes,
// high-bit bytes). A path that isn't quoted passes through unchanged.
func unquotePath(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	body := s[1 : len(s)-1]

	var b strings.Builder
	b.Grow(len(body))

	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			b.WriteByte(c)
			continue
		}
		next := body[i+1]
		switch next {
		case 't':
			b.WriteByte('\t')
			i++
		case 'n':
			b.WriteByte('\n')
			i++
		case '\\':
			b.WriteByte('\\')
			i++
		case '"':
			b.WriteByte('"')
			i++
		default:
			if isOctalDigit(next) && i+3 < len(body) && isOctalDigit(body[i+2]) && isOctalDigit(body[i+3]) {
				v := (int(next-'0') << 6) | (int(body[i+2]-'0') << 3) | int(body[i+3]-'0')
				b.WriteByte(byte(v))
				i += 3
			} else {
				b.WriteByte(c)
			}
		}
	}
	return b.String()
}

func isOctalDigit(c byte) bool {
	return c >= '0' && c <= '7'
}

// stripABPrefix removes a leading "a/" or "b/" marker git adds to every
// diff --git operand.
func stripABPrefix(p string) string {
	if len(p) >= 2 && (p[:2] == "a/" || p[:2] == "b/") {
		return p[2:]
	}
	return p
}

// unquotePathOrPlain unquotes s if it is C-quoted, else returns it as is.
func unquotePathOrPlain(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return unquotePath(s)
	}
	return s
}

func findQuoteEnd(s string, start int) int {
	for i := start + 1; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == '"' {
			return i
		}
	}
	return -1
}

// splitGitDiffPaths splits a `diff --git <a> <b>` remainder into its two
// path operands (with the leading a/ b/ marker stripped), honoring
// C-style quoting on either side. splitSymmetric handles the common
// unquoted case where no --- / +++ pair is present to recover the path
// from the "a/<path> b/<path>" form alone.
func splitGitDiffPaths(rest string) (a, b string, ok bool) {
	if len(rest) == 0 {
		return "", "", false
	}

	if rest[0] == '"' {
		end := findQuoteEnd(rest, 0)
		if end < 0 {
			return "", "", false
		}
		aQuoted := rest[:end+1]
		remainder := strings.TrimPrefix(rest[end+1:], " ")
		if len(remainder) == 0 {
			return "", "", false
		}
		return stripABPrefix(unquotePath(aQuoted)), stripABPrefix(unquotePathOrPlain(remainder)), true
	}

	return splitSymmetric(rest)
}

// splitSymmetric handles the common case `a/<path> b/<path>` where both
// sides are byte-identical modulo the leading a/ b/ prefix (true for
// every non-rename diff --git line). It locates the split at the first
// " b/" marker, which is correct for every path that doesn't itself
// contain the literal substring " b/".
func splitSymmetric(rest string) (a, b string, ok bool) {
	if !strings.HasPrefix(rest, "a/") {
		return "", "", false
	}
	body := rest[2:]

	idx := strings.Index(body, " b/")
	if idx < 0 {
		return "", "", false
	}
	left := body[:idx]
	right := body[idx+len(" b/"):]
	if left == "" || right == "" {
		return "", "", false
	}
	return left, right, true
}

package filter

import (
	"strings"
)

// parseHeaderPaths extracts the two paths from a "diff --git " header
// line. The returned paths are unescaped and have their "a/"/"b/"
// prefixes removed. ok is false when the line cannot be parsed, in
// which case the caller treats the entry as malformed and passes it
// through.
//
// Unquoted paths may themselves contain the literal substring " b/";
// git's header format is ambiguous there. The last occurrence is used
// as the separator.
func parseHeaderPaths(header string) (oldPath, newPath string, ok bool) {
	rest, found := strings.CutPrefix(header, "diff --git ")
	if !found {
		return "", "", false
	}
	rest = trimEOL(rest)

	if strings.HasPrefix(rest, `"`) {
		oldTok, rem, ok2 := unquoteGitPath(rest)
		if !ok2 {
			return "", "", false
		}
		rem, found = strings.CutPrefix(rem, " ")
		if !found {
			return "", "", false
		}
		newTok := rem
		if strings.HasPrefix(rem, `"`) {
			dec, tail, ok3 := unquoteGitPath(rem)
			if !ok3 || tail != "" {
				return "", "", false
			}
			newTok = dec
		}
		return stripSide(oldTok, "a/"), stripSide(newTok, "b/"), true
	}

	// Unquoted old path; the new path may still be quoted.
	if i := strings.LastIndex(rest, ` "b/`); i >= 0 {
		dec, tail, ok2 := unquoteGitPath(rest[i+1:])
		if ok2 && tail == "" {
			return stripSide(rest[:i], "a/"), stripSide(dec, "b/"), true
		}
	}

	i := strings.LastIndex(rest, " b/")
	if i < 0 {
		return "", "", false
	}
	return stripSide(rest[:i], "a/"), rest[i+3:], true
}

// stripSide removes the diff prefix ("a/" or "b/") when present.
// Diffs produced with custom prefixes keep their paths unchanged.
func stripSide(tok, prefix string) string {
	if p, ok := strings.CutPrefix(tok, prefix); ok {
		return p
	}
	return tok
}

// parsePathValue decodes a path value from a header line such as
// "rename from <path>" or "+++ b/<path>". Quoted values are
// unescaped; tab-separated trailing metadata on ---/+++ lines is cut.
func parsePathValue(v string) string {
	v = trimEOL(v)
	if strings.HasPrefix(v, `"`) {
		if dec, _, ok := unquoteGitPath(v); ok {
			return dec
		}
		return v
	}
	// git appends "\t" plus mtime on some ---/+++ lines
	if i := strings.IndexByte(v, '\t'); i >= 0 {
		v = v[:i]
	}
	return v
}

// unquoteGitPath decodes a C-style quoted string as produced by git
// for paths containing special or non-ASCII bytes. It returns the
// decoded value and the remainder of the input after the closing
// quote.
func unquoteGitPath(s string) (decoded, rest string, ok bool) {
	if len(s) == 0 || s[0] != '"' {
		return "", "", false
	}
	var b strings.Builder
	i := 1
	for i < len(s) {
		c := s[i]
		switch c {
		case '"':
			return b.String(), s[i+1:], true
		case '\\':
			i++
			if i >= len(s) {
				return "", "", false
			}
			switch e := s[i]; e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case 'a':
				b.WriteByte('\a')
			case 'b':
				b.WriteByte('\b')
			case 'f':
				b.WriteByte('\f')
			case 'v':
				b.WriteByte('\v')
			case '\\', '"':
				b.WriteByte(e)
			default:
				if e < '0' || e > '7' {
					return "", "", false
				}
				v, n := 0, 0
				for n < 3 && i < len(s) && s[i] >= '0' && s[i] <= '7' {
					v = v*8 + int(s[i]-'0')
					i++
					n++
				}
				i--
				b.WriteByte(byte(v))
			}
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}
	return "", "", false
}

func trimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

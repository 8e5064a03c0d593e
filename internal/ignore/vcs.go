package ignore

import "strings"

// VcsMatch reports whether the path matches any of the VCS metadata
// patterns. Patterns are checked in order and the first match wins;
// there is no negation.
func VcsMatch(path string, patterns []string) bool {
	for _, pat := range patterns {
		if matchVcsPattern(path, pat) {
			return true
		}
	}
	return false
}

// matchVcsPattern matches one pattern against a repository-relative
// path. A trailing "/" marks a directory pattern that may occur at any
// depth (".git/" matches both ".git/config" and "sub/.git/config").
// Bare patterns match the exact path or a whole path component.
func matchVcsPattern(path, pat string) bool {
	if dir, ok := strings.CutSuffix(pat, "/*"); ok {
		return strings.HasPrefix(path, dir+"/") || strings.Contains(path, "/"+dir+"/")
	}
	if path == pat {
		return true
	}
	if strings.HasSuffix(pat, "/") {
		return strings.HasPrefix(path, pat) || strings.Contains(path, "/"+pat)
	}
	return strings.HasPrefix(path, pat+"/") || strings.Contains(path, "/"+pat+"/")
}

package ignore

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	gitignore "github.com/Sriram-PR/go-ignore"
)

// Matcher evaluates the hierarchical .gitignore rules of one working
// tree. Nested .gitignore files are loaded lazily as paths beneath
// them are queried, so lookups are meant for a single goroutine; the
// filter pipeline is sequential and never shares a Matcher across
// concurrent lookups.
type Matcher struct {
	root   string
	rules  *gitignore.Matcher
	loaded map[string]bool // root-relative dirs whose .gitignore was read; "" is the root
}

// NewMatcher builds a matcher rooted at the working-tree root. The
// root .gitignore is loaded eagerly; nested files are picked up as
// paths beneath them are queried.
func NewMatcher(root string) *Matcher {
	m := &Matcher{
		root:   root,
		rules:  gitignore.New(),
		loaded: make(map[string]bool),
	}
	m.loadDir("")
	return m
}

// Ignored reports whether the repository-relative, forward-slash path
// is excluded. Callers supply paths already unescaped and normalized.
func (m *Matcher) Ignored(relPath string, isDir bool) bool {
	relPath = path.Clean(strings.TrimPrefix(relPath, "/"))
	if relPath == "." || relPath == "" {
		return false
	}

	m.loadChain(path.Dir(relPath))

	res := m.rules.MatchWithReason(relPath, isDir)
	if res.Matched {
		return res.Ignored
	}

	// A path inside an ignored directory is ignored even when no rule
	// names the path itself.
	for parent := path.Dir(relPath); parent != "." && parent != "/"; parent = path.Dir(parent) {
		res = m.rules.MatchWithReason(parent, true)
		if res.Matched {
			return res.Ignored
		}
	}
	return false
}

// loadChain loads .gitignore files for every directory from the root
// down to dir. Shallower files are always added before deeper ones so
// the engine's last-rule-wins order matches git's deeper-wins
// precedence.
func (m *Matcher) loadChain(dir string) {
	if dir == "." || dir == "" {
		return
	}
	segs := strings.Split(dir, "/")
	prefix := ""
	for _, seg := range segs {
		if prefix == "" {
			prefix = seg
		} else {
			prefix = prefix + "/" + seg
		}
		m.loadDir(prefix)
	}
}

func (m *Matcher) loadDir(dir string) {
	if m.loaded[dir] {
		return
	}
	m.loaded[dir] = true

	name := filepath.Join(m.root, filepath.FromSlash(dir), ".gitignore")
	content, err := os.ReadFile(name)
	if err != nil {
		return // missing or unreadable files contribute no rules
	}
	m.rules.AddPatterns(dir, content)
}

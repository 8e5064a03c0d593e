package config

import (
	"github.com/gopasspw/gitconfig"
)

// gitConfigReader adapts gopasspw/gitconfig to the Reader interface.
type gitConfigReader struct {
	cs *gitconfig.Configs
}

// NewGitReader loads git configuration for the repository whose git
// directory is gitDir. System, global, local, worktree, and
// environment scopes are merged with git's usual precedence. For
// linked worktrees, callers pass the common git directory so the
// shared repository config is found.
func NewGitReader(gitDir string) Reader {
	cs := gitconfig.New()
	cs.NoWrites = true
	return &gitConfigReader{cs: cs.LoadAll(gitDir)}
}

func (g *gitConfigReader) Get(key string) (string, bool) {
	if !g.cs.IsSet(key) {
		return "", false
	}
	return g.cs.Get(key), true
}

// MapReader is a Reader backed by a plain map, for tests and for
// callers that already hold resolved key-value pairs.
type MapReader map[string]string

func (m MapReader) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

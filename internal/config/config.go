package config

import (
	"errors"
	"fmt"
	"strings"
)

// Git configuration keys consulted by the resolver.
const (
	KeyDownstream  = "gitignore-diff.downstream-filter"
	KeyVcsEnabled  = "diff-gitignore-filter.vcs-ignore.enabled"
	KeyVcsPatterns = "diff-gitignore-filter.vcs-ignore.patterns"
)

// ErrVcsConflict is returned when --vcs and --no-vcs are both given.
var ErrVcsConflict = errors.New("--vcs and --no-vcs are mutually exclusive")

// Reader provides read access to git configuration values. Get reports
// whether the key is set at all; an unset key falls through to the
// next source in the chain.
type Reader interface {
	Get(key string) (string, bool)
}

// VcsFilter controls exclusion of version-control metadata paths.
// Patterns are ordered path prefixes, first match wins, no negation.
type VcsFilter struct {
	Enabled  bool
	Patterns []string
}

// Effective is the fully resolved configuration for one run.
type Effective struct {
	// Downstream is the shell command filtered output is piped to.
	// Empty means write directly to the output stream.
	Downstream string
	Vcs        VcsFilter
}

// CliOverrides carries the already-parsed CLI flag values. Zero values
// mean "not supplied".
type CliOverrides struct {
	Downstream  string
	Vcs         bool
	NoVcs       bool
	VcsPatterns string
}

// DefaultVcsPatterns returns the built-in VCS metadata pattern list.
func DefaultVcsPatterns() []string {
	return []string{".git/", ".svn/", "_svn/", ".hg/", "CVS/", "CVSROOT/", ".bzr/"}
}

// Resolve merges CLI overrides, git configuration, and defaults into
// the effective configuration. Each field is resolved independently.
func Resolve(cli CliOverrides, reader Reader) (Effective, error) {
	if cli.Vcs && cli.NoVcs {
		return Effective{}, ErrVcsConflict
	}

	enabled, err := resolveVcsEnabled(cli, reader)
	if err != nil {
		return Effective{}, err
	}

	return Effective{
		Downstream: resolveString(cli.Downstream, reader, KeyDownstream),
		Vcs: VcsFilter{
			Enabled:  enabled,
			Patterns: resolvePatterns(cli.VcsPatterns, reader),
		},
	}, nil
}

func resolveString(override string, reader Reader, key string) string {
	if override != "" {
		return override
	}
	if v, ok := reader.Get(key); ok && v != "" {
		return v
	}
	return ""
}

func resolveVcsEnabled(cli CliOverrides, reader Reader) (bool, error) {
	switch {
	case cli.Vcs:
		return true, nil
	case cli.NoVcs:
		return false, nil
	}
	if v, ok := reader.Get(KeyVcsEnabled); ok {
		enabled, err := parseGitBool(v)
		if err != nil {
			return false, fmt.Errorf("git config %s: %w", KeyVcsEnabled, err)
		}
		return enabled, nil
	}
	return true, nil
}

func resolvePatterns(override string, reader Reader) []string {
	if override != "" {
		return SplitPatterns(override)
	}
	if v, ok := reader.Get(KeyVcsPatterns); ok {
		if patterns := SplitPatterns(v); len(patterns) > 0 {
			return patterns
		}
	}
	return DefaultVcsPatterns()
}

// SplitPatterns splits a comma-separated pattern list, trimming
// whitespace and dropping empty segments. Order is preserved.
func SplitPatterns(s string) []string {
	var patterns []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// parseGitBool follows git's boolean forms. A key set with no value
// counts as true, matching git-config semantics.
func parseGitBool(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "", "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean value %q", v)
}

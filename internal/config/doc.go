// Package config resolves the effective diffsieve configuration.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Git configuration (gitignore-diff.downstream-filter,
//     diff-gitignore-filter.vcs-ignore.enabled,
//     diff-gitignore-filter.vcs-ignore.patterns)
//  3. Built-in defaults
//
// Each field is resolved independently through that chain. Git
// configuration is consumed through the [Reader] interface; the
// production implementation wraps github.com/gopasspw/gitconfig, and
// tests substitute a map-backed fake.
//
// A key that is unset falls through to the default. A key that is set
// to an invalid value is a hard error, never a silent fallback.
package config

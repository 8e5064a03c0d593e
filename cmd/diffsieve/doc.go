// Diffsieve is a stream filter that removes gitignored files from a
// unified git diff.
//
// It reads the diff on stdin, drops every entry whose path matches
// the repository's .gitignore rules or the configured VCS metadata
// patterns, and writes the surviving entries byte-exact to stdout,
// preserving their order. Output can optionally be piped through a
// downstream command such as a syntax-highlighting pager filter.
//
// Usage:
//
//	git diff | diffsieve                       # filter to stdout
//	git diff | diffsieve -d diff-highlight     # pipe through a highlighter
//	git diff | diffsieve --no-vcs              # keep VCS metadata entries
//	git diff | diffsieve --vcs-pattern ".git/,.svn/"
//
// Configuration can also come from git config: see
// gitignore-diff.downstream-filter and the
// diff-gitignore-filter.vcs-ignore.* keys.
package main

// Package ignore evaluates .gitignore rules and VCS metadata patterns
// against repository-relative paths.
//
// Pattern compilation and single-file matching are delegated to
// github.com/Sriram-PR/go-ignore; this package adds the repository
// layer on top: loading nested .gitignore files on demand along a
// queried path's directory chain, and treating paths inside ignored
// directories as ignored. Precedence follows git: a deeper directory's
// rules win over a shallower one's, within a file the last matching
// pattern wins, and negation re-includes.
//
// VCS matching (VcsMatch) is a separate, simpler mechanism: ordered
// path-prefix patterns without negation, first match wins.
package ignore

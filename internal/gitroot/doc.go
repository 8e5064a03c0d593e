// Package gitroot locates the working-tree root and git directory for
// the repository containing a given directory.
//
// Resolution walks upward from the starting directory looking for a
// .git entry. Linked worktrees and submodules, where .git is a redirect
// file rather than a directory, are followed through their "gitdir:"
// reference, and a "commondir" file inside the resolved git directory
// is honored for shared-repository lookups. The working-tree root is
// always the directory that holds the .git entry, never the shared
// repository, so .gitignore lookup stays local to the checkout.
//
// Resolution is read-only; no files are created or modified.
package gitroot

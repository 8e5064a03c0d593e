package gitroot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrRootNotFound is returned when no .git entry exists between the
// starting directory and the filesystem root.
var ErrRootNotFound = errors.New("not inside a git repository")

// RepoRoot describes a resolved repository.
type RepoRoot struct {
	// WorkTree is the directory whose .gitignore hierarchy applies.
	WorkTree string
	// GitDir is the repository's git directory, possibly redirected
	// through a .git file for worktrees and submodules.
	GitDir string
	// CommonDir is the shared git directory for linked worktrees.
	// Equals GitDir for ordinary checkouts.
	CommonDir string
}

// ConfigDir returns the directory holding the repository-level git
// config. Worktrees share the main repository's config.
func (r RepoRoot) ConfigDir() string {
	if r.CommonDir != "" {
		return r.CommonDir
	}
	return r.GitDir
}

// Resolve walks upward from startDir until it finds a .git entry.
func Resolve(startDir string) (RepoRoot, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return RepoRoot{}, fmt.Errorf("resolving %s: %w", startDir, err)
	}

	for {
		entry := filepath.Join(dir, ".git")
		fi, err := os.Stat(entry)
		switch {
		case err == nil && fi.IsDir():
			return RepoRoot{WorkTree: dir, GitDir: entry, CommonDir: entry}, nil
		case err == nil:
			gitDir, err := readGitDirRef(entry, dir)
			if err != nil {
				return RepoRoot{}, err
			}
			common := gitDir
			if cd, ok := readCommonDir(gitDir); ok {
				common = cd
			}
			return RepoRoot{WorkTree: dir, GitDir: gitDir, CommonDir: common}, nil
		case !os.IsNotExist(err):
			return RepoRoot{}, fmt.Errorf("checking %s: %w", entry, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return RepoRoot{}, ErrRootNotFound
		}
		dir = parent
	}
}

// readGitDirRef parses a .git redirect file ("gitdir: <path>") and
// resolves the referenced directory relative to baseDir.
func readGitDirRef(path, baseDir string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	line := strings.TrimSpace(string(data))
	target, ok := strings.CutPrefix(line, "gitdir:")
	if !ok {
		return "", fmt.Errorf("%s: missing gitdir reference", path)
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return "", fmt.Errorf("%s: empty gitdir reference", path)
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(baseDir, target)
	}
	return filepath.Clean(target), nil
}

// readCommonDir resolves an optional commondir file inside gitDir.
// The result never overrides the working-tree root.
func readCommonDir(gitDir string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(gitDir, "commondir"))
	if err != nil {
		return "", false
	}
	target := strings.TrimSpace(string(data))
	if target == "" {
		return "", false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(gitDir, target)
	}
	return filepath.Clean(target), true
}

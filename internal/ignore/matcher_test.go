package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

func writeGitignore(t *testing.T, root, dir, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(dir))
	if err := os.MkdirAll(full, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(full, ".gitignore"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestIgnoredBasicPatterns(t *testing.T) {
	root := t.TempDir()
	writeGitignore(t, root, "", "*.log\nbuild/\n")

	m := NewMatcher(root)

	tests := []struct {
		path string
		want bool
	}{
		{"debug.log", true},
		{"src/debug.log", true},
		{"debug.txt", false},
		{"build/output.o", true},
		{"build/nested/deep.o", true},
		{"src/main.go", false},
	}
	for _, tt := range tests {
		if got := m.Ignored(tt.path, false); got != tt.want {
			t.Errorf("Ignored(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIgnoredDirectoryContents(t *testing.T) {
	// A plain name that matches a directory excludes everything below it.
	root := t.TempDir()
	writeGitignore(t, root, "", "vendor\n")
	if err := os.MkdirAll(filepath.Join(root, "vendor", "lib"), 0o755); err != nil {
		t.Fatal(err)
	}

	m := NewMatcher(root)
	if !m.Ignored("vendor/lib/pkg.go", false) {
		t.Error("file under ignored directory should be ignored")
	}
	if !m.Ignored("vendor", true) {
		t.Error("directory itself should be ignored")
	}
}

func TestIgnoredNegation(t *testing.T) {
	root := t.TempDir()
	writeGitignore(t, root, "", "*.log\n!keep.log\n")

	m := NewMatcher(root)
	if !m.Ignored("noise.log", false) {
		t.Error("noise.log should be ignored")
	}
	if m.Ignored("keep.log", false) {
		t.Error("keep.log is re-included by negation")
	}
}

func TestIgnoredNestedGitignoreWins(t *testing.T) {
	root := t.TempDir()
	writeGitignore(t, root, "", "*.tmp\n")
	writeGitignore(t, root, "src", "!important.tmp\n*.gen\n")

	m := NewMatcher(root)

	if !m.Ignored("top.tmp", false) {
		t.Error("root rule should apply at top level")
	}
	if m.Ignored("src/important.tmp", false) {
		t.Error("deeper negation should win over root rule")
	}
	if !m.Ignored("src/parser.gen", false) {
		t.Error("nested rule should apply below its directory")
	}
	if m.Ignored("parser.gen", false) {
		t.Error("nested rule must not leak to shallower paths")
	}
}

func TestIgnoredLazyLoadOrder(t *testing.T) {
	// Querying a deep path before a shallow one must not disturb
	// precedence for later lookups.
	root := t.TempDir()
	writeGitignore(t, root, "", "a/**/*.o\n")
	writeGitignore(t, root, "a/b", "!special.o\n")

	m := NewMatcher(root)
	if m.Ignored("a/b/special.o", false) {
		t.Error("deep negation should win")
	}
	if !m.Ignored("a/b/other.o", false) {
		t.Error("root rule should still apply")
	}
	if !m.Ignored("a/x.o", false) {
		t.Error("root rule should apply outside the nested directory")
	}
}

func TestIgnoredNoGitignore(t *testing.T) {
	m := NewMatcher(t.TempDir())
	if m.Ignored("anything.txt", false) {
		t.Error("no rules means nothing is ignored")
	}
}

func TestVcsMatch(t *testing.T) {
	patterns := []string{".git/", ".svn/", "_svn/", ".hg/", "CVS/", "CVSROOT/", ".bzr/"}

	tests := []struct {
		path string
		want bool
	}{
		{".git/config", true},
		{".git/objects/ab/cdef", true},
		{"sub/.git/config", true},
		{".svn/entries", true},
		{"_svn/entries", true},
		{"CVS/Root", true},
		{"project/CVS/Root", true},
		{".bzr/checkout", true},
		{"src/main.go", false},
		{"gitignore.txt", false},
		{".github/workflows/ci.yml", false},
		{"CVSROOT", false}, // bare file, no directory content
	}
	for _, tt := range tests {
		if got := VcsMatch(tt.path, patterns); got != tt.want {
			t.Errorf("VcsMatch(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestVcsMatchOrderAndForms(t *testing.T) {
	if !VcsMatch("node_modules/x.js", []string{"node_modules"}) {
		t.Error("bare pattern should match its directory contents")
	}
	if !VcsMatch("node_modules", []string{"node_modules"}) {
		t.Error("bare pattern should match the exact path")
	}
	if !VcsMatch("a/tmp/f", []string{"tmp/*"}) {
		t.Error("star suffix pattern should match nested directory")
	}
	if VcsMatch("anything", nil) {
		t.Error("empty pattern list matches nothing")
	}
}

package filter

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/sievetools/diffsieve/internal/config"
	"github.com/sievetools/diffsieve/internal/ignore"
)

// Ignorer reports whether a repository-relative path is excluded by
// .gitignore rules. Satisfied by *ignore.Matcher.
type Ignorer interface {
	Ignored(path string, isDir bool) bool
}

type state int

const (
	awaitingEntry state = iota
	inEntryHeader
	inHunk
)

// Filter streams a unified diff, dropping entries whose paths are
// excluded. It holds no per-run state; Run may be called repeatedly.
type Filter struct {
	rules Ignorer
	vcs   config.VcsFilter
}

// New builds a filter over the given ignore rules and VCS filter
// configuration.
func New(rules Ignorer, vcs config.VcsFilter) *Filter {
	return &Filter{rules: rules, vcs: vcs}
}

var entryMarker = []byte("diff --git ")

// Run copies the diff from r to w, omitting excluded entries. Lines
// before the first entry marker pass through immediately; everything
// else is buffered per entry and flushed, byte-exact, when the entry
// closes. The error is nil at end of input, otherwise the underlying
// read or write failure.
func (f *Filter) Run(r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)

	var cur *Entry
	st := awaitingEntry

	for {
		line, rerr := br.ReadBytes('\n')
		if len(line) > 0 {
			if bytes.HasPrefix(line, entryMarker) {
				if err := f.closeEntry(cur, w); err != nil {
					return err
				}
				cur = newEntry(line)
				st = inEntryHeader
			} else if cur == nil {
				// Preamble before the first entry is not ours to judge.
				if err := writeAll(w, line); err != nil {
					return err
				}
			} else {
				cur.append(line)
				st = consumeLine(cur, st, line)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return fmt.Errorf("reading diff: %w", rerr)
		}
	}

	return f.closeEntry(cur, w)
}

// newEntry starts an entry from its "diff --git " line. A header that
// cannot be parsed marks the entry malformed, which exempts it from
// filtering.
func newEntry(line []byte) *Entry {
	e := &Entry{}
	e.append(line)
	oldPath, newPath, ok := parseHeaderPaths(string(line))
	if !ok {
		e.Malformed = true
		return e
	}
	e.OldPath = oldPath
	e.NewPath = newPath
	return e
}

// consumeLine updates entry metadata for one line and returns the next
// state. The raw bytes have already been recorded; this only tracks
// what the line means.
func consumeLine(e *Entry, st state, line []byte) state {
	if bytes.HasPrefix(line, []byte("@@")) {
		e.Hunks = append(e.Hunks, Hunk{Header: line})
		return inHunk
	}

	if st == inHunk {
		h := &e.Hunks[len(e.Hunks)-1]
		h.Lines = append(h.Lines, Line{Kind: classifyLine(line), Raw: line})
		return inHunk
	}

	s := string(line)
	switch {
	case bytes.HasPrefix(line, []byte("rename from ")):
		e.IsRename = true
		e.OldPath = parsePathValue(s[len("rename from "):])
	case bytes.HasPrefix(line, []byte("rename to ")):
		e.IsRename = true
		e.NewPath = parsePathValue(s[len("rename to "):])
	case bytes.HasPrefix(line, []byte("--- ")):
		if v := parsePathValue(s[len("--- "):]); v == "/dev/null" {
			e.OldPath = ""
		} else {
			e.OldPath = stripSide(v, "a/")
		}
	case bytes.HasPrefix(line, []byte("+++ ")):
		if v := parsePathValue(s[len("+++ "):]); v == "/dev/null" {
			e.NewPath = ""
		} else {
			e.NewPath = stripSide(v, "b/")
		}
	case bytes.HasPrefix(line, []byte("Binary files ")) || bytes.HasPrefix(line, []byte("GIT binary patch")):
		e.IsBinary = true
	}
	return inEntryHeader
}

// closeEntry decides the completed entry's fate and flushes it when
// retained. A nil entry is a no-op.
func (f *Filter) closeEntry(e *Entry, w io.Writer) error {
	if e == nil {
		return nil
	}
	if f.excluded(e) {
		return nil
	}
	for _, line := range e.raw {
		if err := writeAll(w, line); err != nil {
			return err
		}
	}
	// Entry flush is the unit of output visibility; push buffered
	// bytes onward so a downstream pager sees them without delay.
	if fl, ok := w.(interface{ Flush() error }); ok {
		if err := fl.Flush(); err != nil {
			return fmt.Errorf("flushing output: %w", err)
		}
	}
	return nil
}

// excluded applies the ignore and VCS rules to a completed entry.
// Renames are dropped when either side is ignored, suppressing noise
// both for files renamed away from and into ignored locations.
func (f *Filter) excluded(e *Entry) bool {
	if e.Malformed {
		return false
	}
	path := e.EffectivePath()
	if path == "" {
		return false
	}
	if f.rules.Ignored(path, false) {
		return true
	}
	if e.IsRename && e.OldPath != "" && f.rules.Ignored(e.OldPath, false) {
		return true
	}
	if f.vcs.Enabled {
		if ignore.VcsMatch(path, f.vcs.Patterns) {
			return true
		}
		if e.OldPath != "" && ignore.VcsMatch(e.OldPath, f.vcs.Patterns) {
			return true
		}
	}
	return false
}

func writeAll(w io.Writer, p []byte) error {
	if _, err := w.Write(p); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

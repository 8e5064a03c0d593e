// Package filter implements the streaming diff filter.
//
// A unified diff is consumed line by line and segmented into entries
// (one "diff --git" block per file change). Each completed entry is
// either dropped, when its path is excluded by .gitignore rules or VCS
// metadata patterns, or flushed to the output byte-exact, including
// line terminators and "\ No newline at end of file" markers. Entries
// are never retained past their own flush, so memory is bounded by the
// largest single entry rather than the whole diff.
//
// Paths in "diff --git" headers may be quoted and backslash-escaped;
// they are unescaped for matching while the raw bytes stay untouched
// for output. When an unquoted path itself contains " b/" the header
// is ambiguous in git's own format; the last occurrence is taken as
// the separator, a documented tie-break rather than a heuristic.
//
// Anything the parser cannot make sense of is passed through
// unfiltered. Dropping real content is the one unacceptable failure
// mode; emitting an entry that could have been filtered is not.
package filter

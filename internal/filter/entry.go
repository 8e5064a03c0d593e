package filter

// LineKind classifies a hunk content line.
type LineKind int

const (
	Context LineKind = iota
	Added
	Removed
	// Marker covers "\ No newline at end of file" lines.
	Marker
)

// Line is one raw hunk content line, terminator included.
type Line struct {
	Kind LineKind
	Raw  []byte
}

// Hunk is one @@-delimited change region within an entry.
type Hunk struct {
	Header []byte
	Lines  []Line
}

// Entry is one file's complete block within a unified diff: the
// header lines plus any hunks. Raw bytes are preserved verbatim so a
// retained entry can be re-emitted byte-exact.
type Entry struct {
	// OldPath and NewPath are the unescaped, root-relative paths.
	// OldPath is empty for pure additions, NewPath for pure
	// deletions; never both.
	OldPath string
	NewPath string

	IsBinary bool
	IsRename bool

	// Malformed marks an entry whose header could not be parsed.
	// Such entries are always emitted, never filtered.
	Malformed bool

	Hunks []Hunk

	raw [][]byte
}

// EffectivePath is the path used for ignore evaluation: the new path
// when the file still exists, otherwise the old one.
func (e *Entry) EffectivePath() string {
	if e.NewPath != "" {
		return e.NewPath
	}
	return e.OldPath
}

// append records a raw line belonging to the entry.
func (e *Entry) append(line []byte) {
	e.raw = append(e.raw, line)
}

// Bytes returns the entry's raw lines concatenated, exactly as read.
func (e *Entry) Bytes() []byte {
	var n int
	for _, l := range e.raw {
		n += len(l)
	}
	out := make([]byte, 0, n)
	for _, l := range e.raw {
		out = append(out, l...)
	}
	return out
}

func classifyLine(line []byte) LineKind {
	if len(line) == 0 {
		return Context
	}
	switch line[0] {
	case '+':
		return Added
	case '-':
		return Removed
	case '\\':
		return Marker
	default:
		return Context
	}
}

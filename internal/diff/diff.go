package diff

// Op is an operation from old text to new text.
type Op int

// Operations from old text to new text.
const (
	OpEqual Op = iota
	OpInsert
	OpDelete
	OpReplace
)

func (op Op) String() string {
	switch op {
	case OpEqual:
		return "equal"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Diff is a diff from old text to new text.
//
// As an illustration: imagine a dump where two separate rows were edited. This will produce:
//   - Hunks[0] will be OpEqual (the rows before the first edit).
//   - Hunks[1] will contain the first change: a group of contiguous lines that were changed. OpReplace.
//   - Hunks[2] will be OpEqual (the rows between the edits).
//   - Hunks[3] will contain the second change. Imagine a row was strictly inserted. OpInsert.
//   - Hunks[last] will be OpEqual (the rest of the dump).
//
// Invariants:
//   - concat(Hunks.OldText) == OldText
//   - concat(Hunks.NewText) == NewText
type Diff struct {
	OldText string     // Entire original text.
	NewText string     // Entire revised text.
	Hunks   []DiffHunk // Ordered hunks that cover the whole diff and reconstruct OldText/NewText.
}

// DiffHunk represents a contiguous group of lines. The \n character is part of the hunk (ex: if a line in the middle of some text is removed, OldText for that hunk
// would be \n terminated).
//
// Operations:
//   - OpEqual: OldText == NewText
//   - OpInsert: OldText=="" && NewText!=""
//   - OpDelete: OldText!="" && NewText==""
//   - OpReplace: OldText != "" and NewText != ""
type DiffHunk struct {
	Op      Op     // Operation for this hunk (OpEqual, OpInsert, OpDelete, or OpReplace).
	OldText string // Concatenation of old lines in this hunk; empty for inserts.
	NewText string // Concatenation of new lines in this hunk; empty for deletes.
}

// OldLines returns the old lines of h without their trailing newlines.
func (h DiffHunk) OldLines() []string {
	return splitLines(h.OldText)
}

// NewLines returns the new lines of h without their trailing newlines.
func (h DiffHunk) NewLines() []string {
	return splitLines(h.NewText)
}

// defaultEOL is the EOL ('\n').
//
// This constant exists because the design may change to allow configurable EOLs (maybe Windows needs "\r\n"), and this provides a nice hook to find callsites.
const defaultEOL = "\n"

func splitLines(text string) []string {
	lines := splitPreserveEOL(text, defaultEOL)
	for i, l := range lines {
		lines[i], _ = trimEOL(l, defaultEOL)
	}
	return lines
}

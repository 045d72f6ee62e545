package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffText diffs oldText to newText line by line, returning a Diff.
//
// Deletions immediately followed by insertions (or vice versa) are merged into a single OpReplace hunk.
func DiffText(oldText, newText string) Diff {
	dmp := diffmatchpatch.New()

	// Diff based on lines:
	rOld, rNew, lineArray := dmp.DiffLinesToRunes(oldText, newText)
	lineDiffs := dmp.DiffMainRunes(rOld, rNew, false)
	lineDiffs = dmp.DiffCleanupMerge(lineDiffs)

	// Runes are encoded line indexes, shifted past the UTF-16 surrogate range; only DiffCharsToLines decodes them correctly.
	lineDiffs = dmp.DiffCharsToLines(lineDiffs, lineArray)

	var hunks []DiffHunk
	var dels strings.Builder
	var ins strings.Builder

	flush := func() {
		if dels.Len() == 0 && ins.Len() == 0 {
			return
		}
		var op Op
		switch {
		case dels.Len() > 0 && ins.Len() > 0:
			op = OpReplace
		case dels.Len() > 0:
			op = OpDelete
		default:
			op = OpInsert
		}
		hunks = append(hunks, DiffHunk{Op: op, OldText: dels.String(), NewText: ins.String()})
		dels.Reset()
		ins.Reset()
	}

	for _, d := range lineDiffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			if d.Text == "" {
				continue
			}
			hunks = append(hunks, DiffHunk{Op: OpEqual, OldText: d.Text, NewText: d.Text})
		case diffmatchpatch.DiffDelete:
			dels.WriteString(d.Text)
		case diffmatchpatch.DiffInsert:
			ins.WriteString(d.Text)
		}
	}
	flush()

	diff := Diff{OldText: oldText, NewText: newText, Hunks: hunks}

	if err := diff.validate(); err != nil {
		panic(fmt.Errorf("DiffText: validate failed with %v", err))
	}

	return diff
}

// splitPreserveEOL splits text by eol and preserves the eol on each line, except possibly the last.
func splitPreserveEOL(text, eol string) []string {
	if text == "" {
		return nil
	}
	if eol == "" {
		eol = defaultEOL
	}
	var lines []string
	for {
		idx := strings.Index(text, eol)
		if idx == -1 {
			if text != "" {
				lines = append(lines, text)
			}
			break
		}
		lines = append(lines, text[:idx+len(eol)])
		text = text[idx+len(eol):]
		if text == "" {
			break
		}
	}
	return lines
}

// trimEOL removes a trailing eol from a line if present.
func trimEOL(line, eol string) (string, bool) {
	if eol != "" && strings.HasSuffix(line, eol) {
		return line[:len(line)-len(eol)], true
	}
	return line, false
}

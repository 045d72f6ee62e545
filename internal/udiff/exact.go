package udiff

import (
	"strings"

	"github.com/codalotl/udiff/internal/diff"
	"github.com/codalotl/udiff/internal/linereader"
	"github.com/codalotl/udiff/internal/streamdiff"
)

// exactEdits returns a minimal edit script from oldText to newText, numbered the way a linereader.Reader numbers lines.
func exactEdits(oldText, newText string) []streamdiff.Edit {
	// A missing final newline doesn't make the last line differ.
	d := diff.DiffText(terminate(oldText), terminate(newText))

	var edits []streamdiff.Edit
	oldNumber, newNumber := 1, 1
	for _, h := range d.Hunks {
		if h.Op == diff.OpEqual {
			for _, text := range h.OldLines() {
				edits = append(edits, streamdiff.Edit{
					Op:  streamdiff.EditEqual,
					Old: linereader.Line{Number: oldNumber, Text: text},
					New: linereader.Line{Number: newNumber, Text: text},
				})
				oldNumber++
				newNumber++
			}
			continue
		}
		for _, text := range h.OldLines() {
			edits = append(edits, streamdiff.Edit{Op: streamdiff.EditDelete, Old: linereader.Line{Number: oldNumber, Text: text}})
			oldNumber++
		}
		for _, text := range h.NewLines() {
			edits = append(edits, streamdiff.Edit{Op: streamdiff.EditInsert, New: linereader.Line{Number: newNumber, Text: text}})
			newNumber++
		}
	}
	return edits
}

func terminate(text string) string {
	if text == "" || strings.HasSuffix(text, "\n") {
		return text
	}
	return text + "\n"
}

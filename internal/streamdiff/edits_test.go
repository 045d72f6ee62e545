package streamdiff

import (
	"testing"

	"github.com/codalotl/udiff/internal/linereader"
	"github.com/stretchr/testify/assert"
)

func TestNewFromEdits(t *testing.T) {
	l := func(n int, text string) linereader.Line { return linereader.Line{Number: n, Text: text} }

	edits := []Edit{
		{Op: EditEqual, Old: l(1, "a"), New: l(1, "a")},
		{Op: EditDelete, Old: l(2, "b")},
		{Op: EditInsert, New: l(2, "x")},
		{Op: EditEqual, Old: l(3, "c"), New: l(3, "c")},
	}
	e := NewFromEdits(edits, Options{MaxContext: 3})
	assert.Equal(t, []string{"@@ -1 +1 @@", " a", "-b", "+x", " c"}, collect(t, e))
	assert.Equal(t, 1, e.Stats().Hunks)
}

func TestNewFromEdits_MatchesStreamingShape(t *testing.T) {
	l := func(n int, text string) linereader.Line { return linereader.Line{Number: n, Text: text} }

	old := numbered("", 1, 20)
	new := append([]string(nil), old...)
	new[4] = "X"
	new[14] = "Y"

	var edits []Edit
	for i := range old {
		if old[i] == new[i] {
			edits = append(edits, Edit{Op: EditEqual, Old: l(i+1, old[i]), New: l(i+1, new[i])})
			continue
		}
		edits = append(edits, Edit{Op: EditDelete, Old: l(i+1, old[i])}, Edit{Op: EditInsert, New: l(i+1, new[i])})
	}

	got := collect(t, NewFromEdits(edits, Options{MaxContext: 3}))
	assert.Equal(t, diffLines(t, old, new, 3), got)
}

func TestNewFromEdits_PureInsertionAnchorsOnNextOldLine(t *testing.T) {
	l := func(n int, text string) linereader.Line { return linereader.Line{Number: n, Text: text} }

	edits := []Edit{
		{Op: EditEqual, Old: l(1, "a"), New: l(1, "a")},
		{Op: EditInsert, New: l(2, "x")},
	}
	got := collect(t, NewFromEdits(edits, Options{MaxContext: 0}))
	assert.Equal(t, []string{"@@ -2 +2 @@", "+x"}, got)
}

func TestNewFromEdits_Empty(t *testing.T) {
	assert.Empty(t, collect(t, NewFromEdits(nil, Options{MaxContext: 3})))
}

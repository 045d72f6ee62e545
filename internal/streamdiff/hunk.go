package streamdiff

import (
	"github.com/codalotl/udiff/internal/linereader"
	"github.com/codalotl/udiff/internal/q/deque"
)

// mode is the hunk-shaping state. See the package documentation.
type mode uint8

const (
	modeSkip mode = iota
	modeDiff
	modeContext
)

func (m mode) String() string {
	switch m {
	case modeSkip:
		return "skip"
	case modeDiff:
		return "diff"
	case modeContext:
		return "context"
	default:
		return "unknown"
	}
}

// contextLine is an equal line held in the pre-context window, with its number on each side.
type contextLine struct {
	oldNumber int
	newNumber int
	text      string
}

// hunker turns a stream of equal/delete/insert events into output lines with hunk headers. Its output queue is drained by Engine.Next.
type hunker struct {
	mode       mode
	maxContext int
	trailing   int // Trailing context lines left to emit in modeContext.

	pre deque.Deque[contextLine]
	out deque.Deque[Line]

	hunks int
}

// equal records a line that is the same on both sides.
func (h *hunker) equal(oldLine, newLine linereader.Line) {
	if h.mode == modeDiff {
		h.enterContext()
	}
	if h.mode == modeContext {
		if h.trailing > 0 {
			h.trailing--
			h.emit(KindContext, oldLine.Text)
			return
		}
		h.enterSkip()
	}
	h.remember(contextLine{oldNumber: oldLine.Number, newNumber: newLine.Number, text: oldLine.Text})
}

// change must be called before emitting a deletion or insertion. oldNext and newNext are the numbers of the first unconsumed line on each side, used to anchor a new
// header when there is no pre-context.
func (h *hunker) change(oldNext, newNext int) {
	if h.mode == modeSkip {
		h.openHunk(oldNext, newNext)
	}
	h.enterDiff()
}

func (h *hunker) deleted(text string) {
	h.emit(KindDelete, text)
}

func (h *hunker) inserted(text string) {
	h.emit(KindInsert, text)
}

// openHunk emits a header with placeholder counts followed by the pre-context window.
func (h *hunker) openHunk(oldNext, newNext int) {
	hdr := Header{OldStart: oldNext, OldCount: Unknown, NewStart: newNext, NewCount: Unknown}
	if h.pre.Len() > 0 {
		first := h.pre.At(0)
		hdr.OldStart = first.oldNumber
		hdr.NewStart = first.newNumber
	}
	h.out.PushBack(Line{Kind: KindHeader, Header: hdr})
	for h.pre.Len() > 0 {
		c, _ := h.pre.PopFront()
		h.emit(KindContext, c.text)
	}
	h.hunks++
}

func (h *hunker) enterDiff() {
	h.mode = modeDiff
}

func (h *hunker) enterContext() {
	h.mode = modeContext
	h.trailing = h.maxContext
}

func (h *hunker) enterSkip() {
	h.mode = modeSkip
	h.trailing = 0
	h.pre.Clear()
}

// remember adds c to the pre-context window, dropping the oldest line once the window holds maxContext lines.
func (h *hunker) remember(c contextLine) {
	if h.maxContext == 0 {
		return
	}
	if h.pre.Len() == h.maxContext {
		h.pre.PopFront()
	}
	h.pre.PushBack(c)
}

func (h *hunker) emit(kind Kind, text string) {
	h.out.PushBack(Line{Kind: kind, Text: text})
}

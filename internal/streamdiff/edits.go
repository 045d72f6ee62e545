package streamdiff

import "github.com/codalotl/udiff/internal/linereader"

// EditOp is the operation of an Edit.
type EditOp uint8

// Edit operations.
const (
	EditEqual EditOp = iota
	EditDelete
	EditInsert
)

// Edit is one step of a precomputed edit script. Old is set for EditEqual and EditDelete; New is set for EditEqual and EditInsert.
type Edit struct {
	Op  EditOp
	Old linereader.Line
	New linereader.Line
}

// NewFromEdits returns an Engine that shapes a precomputed edit script into hunks, exactly as New does for streamed input. Edits must cover both sides in order.
//
// MaxLookahead is only used to cap MaxContext.
func NewFromEdits(edits []Edit, opts Options) *Engine {
	opts = opts.normalized()
	return &Engine{
		edits:   edits,
		oldNext: 1,
		newNext: 1,
		h:       hunker{maxContext: opts.MaxContext},
	}
}

func (e *Engine) stepEdit() {
	if len(e.edits) == 0 {
		e.phase = phaseDone
		return
	}
	ed := e.edits[0]
	e.edits = e.edits[1:]

	switch ed.Op {
	case EditEqual:
		e.h.equal(ed.Old, ed.New)
		e.oldNext = ed.Old.Number + 1
		e.newNext = ed.New.Number + 1
	case EditDelete:
		e.h.change(ed.Old.Number, e.newNext)
		e.h.deleted(ed.Old.Text)
		e.oldNext = ed.Old.Number + 1
	case EditInsert:
		e.h.change(e.oldNext, ed.New.Number)
		e.h.inserted(ed.New.Text)
		e.newNext = ed.New.Number + 1
	}
}

package streamdiff

import (
	"errors"

	"github.com/codalotl/udiff/internal/linereader"
)

// DefaultMaxContext is the number of context lines shown around changes by default.
const DefaultMaxContext = 3

// Options configures an Engine.
type Options struct {
	// MaxContext is the number of equal lines shown before and after each change. Negative values select DefaultMaxContext. It is capped at MaxLookahead.
	MaxContext int

	// MaxLookahead bounds pre-context, and, for engines built with New, must match the lookahead bound of the readers. Non-positive values select
	// linereader.DefaultMaxLookahead.
	MaxLookahead int
}

func (o Options) normalized() Options {
	if o.MaxLookahead <= 0 {
		o.MaxLookahead = linereader.DefaultMaxLookahead
	}
	if o.MaxContext < 0 {
		o.MaxContext = DefaultMaxContext
	}
	if o.MaxContext > o.MaxLookahead {
		o.MaxContext = o.MaxLookahead
	}
	return o
}

// Stats describes how an Engine resolved the differences it found.
type Stats struct {
	Hunks         int // Hunk headers emitted.
	OldAhead      int // Divergences resolved by deleting old lines up to a match.
	NewAhead      int // Divergences resolved by inserting new lines up to a match.
	Substitutions int // Divergences with no match within the lookahead bound.
}

type phase uint8

const (
	phaseLockstep phase = iota // Both sides have input.
	phaseDrain                 // One side is exhausted; the rest of the other is emitted.
	phaseDone
)

// Engine produces a unified-diff body. Create one with New or NewFromEdits and call Next until it returns false, then check Err.
type Engine struct {
	old *linereader.Reader
	new *linereader.Reader

	// Set for engines built with NewFromEdits, which have no readers.
	edits   []Edit
	oldNext int
	newNext int

	phase phase
	h     hunker
	stats Stats
}

// New returns an Engine diffing the lines of oldReader against newReader.
func New(oldReader, newReader *linereader.Reader, opts Options) *Engine {
	opts = opts.normalized()
	return &Engine{
		old: oldReader,
		new: newReader,
		h:   hunker{maxContext: opts.MaxContext},
	}
}

// Next returns the next output line. It returns false once the diff is complete.
func (e *Engine) Next() (Line, bool) {
	for e.h.out.Len() == 0 {
		if e.phase == phaseDone {
			return Line{}, false
		}
		e.step()
	}
	line, _ := e.h.out.PopFront()
	return line, true
}

// Err returns the first read error of either reader. A read error ends that reader's stream, so output produced before the error is incomplete.
func (e *Engine) Err() error {
	if e.old == nil {
		return nil
	}
	return errors.Join(e.old.Err(), e.new.Err())
}

// Stats returns counters describing the diff so far.
func (e *Engine) Stats() Stats {
	s := e.stats
	s.Hunks = e.h.hunks
	return s
}

func (e *Engine) step() {
	if e.old == nil {
		e.stepEdit()
		return
	}
	switch e.phase {
	case phaseLockstep:
		e.stepLockstep()
	case phaseDrain:
		e.stepDrain()
	}
}

// stepLockstep consumes one line from each reader and resolves a divergence if the lines differ.
func (e *Engine) stepLockstep() {
	if !e.old.HasNext() || !e.new.HasNext() {
		e.phase = phaseDrain
		if e.old.HasNext() || e.new.HasNext() {
			e.h.change(e.old.NextNumber(), e.new.NextNumber())
		}
		return
	}

	oldLine, _ := e.old.Next()
	newLine, _ := e.new.Next()
	if oldLine.Text == newLine.Text {
		e.h.equal(oldLine, newLine)
		return
	}

	e.h.change(oldLine.Number, newLine.Number)

	// insertAt: oldLine appears this far ahead in new, so the new lines before it were inserted.
	// deleteAt: newLine appears this far ahead in old, so the old lines before it were deleted.
	insertAt, insertOK := e.new.Find(oldLine.Text)
	deleteAt, deleteOK := e.old.Find(newLine.Text)

	switch {
	case !insertOK && !deleteOK:
		e.stats.Substitutions++
		e.h.deleted(oldLine.Text)
		e.h.inserted(newLine.Text)
	case deleteOK && (!insertOK || deleteAt <= insertAt):
		e.stats.OldAhead++
		e.h.deleted(oldLine.Text)
		e.new.PushBack(newLine)
		for i := 0; i < deleteAt; i++ {
			line, _ := e.old.Next()
			e.h.deleted(line.Text)
		}
	default:
		e.stats.NewAhead++
		e.h.inserted(newLine.Text)
		e.old.PushBack(oldLine)
		for i := 0; i < insertAt; i++ {
			line, _ := e.new.Next()
			e.h.inserted(line.Text)
		}
	}
}

// stepDrain emits one remaining line: deletions first, then insertions.
func (e *Engine) stepDrain() {
	if line, ok := e.old.Next(); ok {
		e.h.deleted(line.Text)
		return
	}
	if line, ok := e.new.Next(); ok {
		e.h.inserted(line.Text)
		return
	}
	e.phase = phaseDone
}

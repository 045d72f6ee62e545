// Package hunkpatch fills in the line counts of hunk headers produced by streamdiff.
//
// A Patcher buffers one hunk at a time. When the next header (or the end of input) arrives, the buffered header gets its counts: old = context + deleted lines,
// new = context + inserted lines. A side with a zero count has its start moved to the preceding line, following the usual unified-diff convention (an empty old file
// reads "-0,0").
//
// If a hunk grows past the buffer bound, the Patcher stops patching: it flushes the buffer with Unknown counts and passes every later line through unchanged.
package hunkpatch

import (
	"github.com/codalotl/udiff/internal/linereader"
	"github.com/codalotl/udiff/internal/q/deque"
	"github.com/codalotl/udiff/internal/simplelogger"
	"github.com/codalotl/udiff/internal/streamdiff"
)

// Source is a pull sequence of diff lines, such as a *streamdiff.Engine.
type Source interface {
	Next() (streamdiff.Line, bool)
}

// Patcher is a Source whose headers have their counts filled in.
type Patcher struct {
	src      Source
	maxLines int

	hunk     deque.Deque[streamdiff.Line] // Header first, then body lines.
	context  int
	deleted  int
	inserted int

	flush deque.Deque[streamdiff.Line] // Lines ready to be returned.

	degraded bool
	done     bool
	hunks    int
}

// New returns a Patcher reading from src that buffers at most maxLines lines of one hunk. Non-positive values select linereader.DefaultMaxLookahead.
func New(src Source, maxLines int) *Patcher {
	if maxLines <= 0 {
		maxLines = linereader.DefaultMaxLookahead
	}
	return &Patcher{src: src, maxLines: maxLines}
}

// Next returns the next line of output. It returns false at end of input.
func (p *Patcher) Next() (streamdiff.Line, bool) {
	for {
		if line, ok := p.flush.PopFront(); ok {
			return line, true
		}
		if p.done {
			return streamdiff.Line{}, false
		}
		if p.degraded {
			line, ok := p.src.Next()
			if !ok {
				p.done = true
			} else if line.Kind == streamdiff.KindHeader {
				p.hunks++
			}
			return line, ok
		}

		line, ok := p.src.Next()
		if !ok {
			p.finish()
			p.done = true
			continue
		}
		if line.Kind == streamdiff.KindHeader {
			p.finish()
			p.hunks++
			p.hunk.PushBack(line)
			continue
		}
		if p.hunk.Len() == 0 {
			// Body line outside of any hunk; nothing to count it toward.
			return line, true
		}
		if p.hunk.Len() >= p.maxLines {
			p.degrade(line)
			continue
		}
		p.count(line)
		p.hunk.PushBack(line)
	}
}

// Degraded reports whether the Patcher gave up patching because a hunk exceeded the buffer bound.
func (p *Patcher) Degraded() bool {
	return p.degraded
}

// Hunks returns the number of hunk headers seen so far.
func (p *Patcher) Hunks() int {
	return p.hunks
}

// Buffered returns the number of lines held for the current hunk.
func (p *Patcher) Buffered() int {
	return p.hunk.Len()
}

func (p *Patcher) count(line streamdiff.Line) {
	switch line.Kind {
	case streamdiff.KindDelete:
		p.deleted++
	case streamdiff.KindInsert:
		p.inserted++
	default:
		p.context++
	}
}

// finish patches the buffered hunk's header and moves the hunk to the flush queue. The flush queue must be empty.
func (p *Patcher) finish() {
	if p.hunk.Len() == 0 {
		return
	}
	header := p.hunk.At(0)
	header.Header = patchHeader(header.Header, p.context+p.deleted, p.context+p.inserted)
	p.hunk.Set(0, header)

	p.hunk, p.flush = p.flush, p.hunk
	p.context, p.deleted, p.inserted = 0, 0, 0
}

// degrade flushes the buffered hunk unpatched, followed by line, and switches to pass-through.
func (p *Patcher) degrade(line streamdiff.Line) {
	simplelogger.Warn("hunk exceeds buffer; header counts left unpatched", "max_lines", p.maxLines, "hunk", p.hunks)
	p.hunk, p.flush = p.flush, p.hunk
	p.flush.PushBack(line)
	p.degraded = true
}

func patchHeader(h streamdiff.Header, oldCount, newCount int) streamdiff.Header {
	h.OldCount = oldCount
	h.NewCount = newCount
	if oldCount == 0 && h.OldStart > 0 {
		h.OldStart--
	}
	if newCount == 0 && h.NewStart > 0 {
		h.NewStart--
	}
	return h
}

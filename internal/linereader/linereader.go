// Package linereader presents a byte stream as a sequence of numbered lines with bounded lookahead and pushback.
//
// Lines are split on '\n'. The terminator is not part of Line.Text. A final line without a terminator is still returned; a stream ending in '\n' never produces a trailing
// empty line.
//
// Only pending lines are kept in memory: the Reader buffers at most MaxLookahead lines read ahead of the consumer (plus one line returned with PushBack), and a carry
// buffer with the bytes of the current partial line.
package linereader

import (
	"bytes"
	"errors"
	"io"
	"slices"

	"github.com/codalotl/udiff/internal/q/deque"
)

// DefaultMaxLookahead is the lookahead bound used when New is given a non-positive bound.
const DefaultMaxLookahead = 10000

// chunkSize is the size of each read from the underlying stream.
const chunkSize = 8 * 1024

// Line is one line of input.
type Line struct {
	Number int    // 1-based line number.
	Text   string // Content without the trailing '\n'.
}

// Reader splits an io.Reader into Lines. It is not safe for concurrent use.
type Reader struct {
	r            io.Reader
	maxLookahead int

	pending deque.Deque[Line] // Lines read from r but not yet consumed.
	index   map[string]int    // Count of each Text in pending.

	carry   []byte // Unsplit bytes of r; carry[pos:] is live.
	pos     int
	scanned int  // carry[pos:scanned] is known to contain no '\n'.
	eof     bool // r is exhausted (or failed); no further reads are made.
	err     error
	lines   int // Lines produced from r so far.
}

// New returns a Reader over r. If maxLookahead <= 0, DefaultMaxLookahead is used.
func New(r io.Reader, maxLookahead int) *Reader {
	if maxLookahead <= 0 {
		maxLookahead = DefaultMaxLookahead
	}
	return &Reader{
		r:            r,
		maxLookahead: maxLookahead,
		index:        map[string]int{},
	}
}

// MaxLookahead returns the lookahead bound of lr.
func (lr *Reader) MaxLookahead() int {
	return lr.maxLookahead
}

// HasNext reports whether Next would return a line, reading from the stream if needed. Once the stream is exhausted and all pending lines are consumed, HasNext returns
// false without reading again.
func (lr *Reader) HasNext() bool {
	return lr.pending.Len() > 0 || lr.fill(1)
}

// Next removes and returns the earliest pending line. It returns false at end of stream.
func (lr *Reader) Next() (Line, bool) {
	if !lr.HasNext() {
		return Line{}, false
	}
	line, _ := lr.pending.PopFront()
	lr.unindex(line.Text)
	return line, true
}

// PushBack puts a previously consumed line back at the front, so the next call to Next returns it again.
func (lr *Reader) PushBack(line Line) {
	lr.pending.PushFront(line)
	lr.index[line.Text]++
}

// Find returns the offset, relative to the front of the pending lines, of the first line whose Text equals text. It reads ahead as needed but never buffers more than
// MaxLookahead lines, and only the first MaxLookahead pending lines are considered. Find does not consume lines; it returns false if no such line is within the bound.
func (lr *Reader) Find(text string) (int, bool) {
	lr.fill(lr.maxLookahead)
	if lr.index[text] == 0 {
		return -1, false
	}
	limit := min(lr.pending.Len(), lr.maxLookahead)
	for i := 0; i < limit; i++ {
		if lr.pending.At(i).Text == text {
			return i, true
		}
	}
	return -1, false
}

// Buffered returns the number of pending lines.
func (lr *Reader) Buffered() int {
	return lr.pending.Len()
}

// Lines returns the number of lines read from the stream so far, including pending ones.
func (lr *Reader) Lines() int {
	return lr.lines
}

// NextNumber returns the line number the next call to Next would return (one past the last line when the stream is exhausted).
func (lr *Reader) NextNumber() int {
	if lr.pending.Len() > 0 {
		return lr.pending.At(0).Number
	}
	return lr.lines + 1
}

// Err returns the first error returned by the underlying stream, other than io.EOF. A read error ends the stream.
func (lr *Reader) Err() error {
	return lr.err
}

// fill reads lines into pending until at least n lines are pending. It returns false if the stream ended first.
func (lr *Reader) fill(n int) bool {
	for lr.pending.Len() < n {
		line, ok := lr.readLine()
		if !ok {
			return false
		}
		lr.pending.PushBack(line)
		lr.index[line.Text]++
	}
	return true
}

func (lr *Reader) unindex(text string) {
	if c := lr.index[text]; c <= 1 {
		delete(lr.index, text)
	} else {
		lr.index[text] = c - 1
	}
}

// readLine splits the next line off carry, refilling carry from the stream as needed.
func (lr *Reader) readLine() (Line, bool) {
	for {
		if i := bytes.IndexByte(lr.carry[lr.scanned:], '\n'); i >= 0 {
			end := lr.scanned + i
			text := string(lr.carry[lr.pos:end])
			lr.pos = end + 1
			lr.scanned = lr.pos
			return lr.newLine(text), true
		}
		lr.scanned = len(lr.carry)

		if lr.eof {
			if lr.pos == len(lr.carry) {
				return Line{}, false
			}
			text := string(lr.carry[lr.pos:])
			lr.pos = len(lr.carry)
			lr.scanned = lr.pos
			return lr.newLine(text), true
		}
		lr.refill()
	}
}

func (lr *Reader) newLine(text string) Line {
	lr.lines++
	return Line{Number: lr.lines, Text: text}
}

// refill compacts carry and appends up to chunkSize bytes from the stream.
func (lr *Reader) refill() {
	if lr.pos > 0 {
		n := copy(lr.carry, lr.carry[lr.pos:])
		lr.carry = lr.carry[:n]
		lr.scanned -= lr.pos
		lr.pos = 0
	}
	lr.carry = slices.Grow(lr.carry, chunkSize)
	n, err := lr.r.Read(lr.carry[len(lr.carry) : len(lr.carry)+chunkSize])
	lr.carry = lr.carry[:len(lr.carry)+n]
	if err != nil {
		lr.eof = true
		if !errors.Is(err, io.EOF) {
			lr.err = err
		}
	}
}

// Package streamdiff computes a unified-diff body between two line streams in bounded memory.
//
// An Engine pulls lines from an old and a new linereader.Reader in lock-step. While lines are equal nothing is emitted beyond a rolling window of pre-context. When
// the streams diverge, the Engine searches each reader's lookahead for the other side's current line and treats the side with the closer match as deleted (old) or
// inserted (new) lines; if neither side matches within the lookahead bound, the two lines are reported as a one-for-one substitution.
//
// Output is a pull sequence of Lines (Engine.Next). Each hunk starts with a KindHeader line whose counts are Unknown; the counts are only known once the hunk ends,
// and are filled in by package hunkpatch.
//
// Hunk shaping is a three-state machine:
//   - skip: lines are equal and no hunk is open. Equal lines go to the pre-context window (at most MaxContext lines).
//   - diff: inside a hunk, emitting deletions and insertions.
//   - context: after a change, up to MaxContext equal lines are emitted as trailing context. A new change re-enters diff without a new header; once the trailing
//     context is used up, the next equal line returns the machine to skip.
//
// Memory: the Engine holds at most MaxContext pre-context lines and one step of output; the readers hold at most their lookahead bound.
package streamdiff

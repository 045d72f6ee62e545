// Package udiff runs the whole diff pipeline: it opens two inputs, diffs them line by line, and writes a unified diff.
package udiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/codalotl/udiff/internal/hunkpatch"
	"github.com/codalotl/udiff/internal/input"
	"github.com/codalotl/udiff/internal/linereader"
	"github.com/codalotl/udiff/internal/render"
	"github.com/codalotl/udiff/internal/simplelogger"
	"github.com/codalotl/udiff/internal/streamdiff"
)

// DefaultExactLimit is the largest input, in decompressed bytes, that exact mode diffs in memory.
const DefaultExactLimit = 64 << 20

// Options configures Run.
type Options struct {
	OldPath string
	NewPath string

	MaxContext   int  // Negative values select streamdiff.DefaultMaxContext.
	MaxLookahead int  // Non-positive values select linereader.DefaultMaxLookahead.
	Color        bool // Wrap output in ANSI colors.

	// Exact computes a minimal diff in memory when both inputs are at most ExactLimit bytes (non-positive selects DefaultExactLimit). Larger inputs are diffed
	// in streaming mode.
	Exact      bool
	ExactLimit int64

	Decompress bool // Transparently decompress gzip and zstd inputs.
}

// Result summarizes a completed diff.
type Result struct {
	Hunks    int  // Hunks written.
	Changed  bool // The inputs differ.
	Degraded bool // Some hunk header counts were left unpatched.
	Exact    bool // The diff was computed in exact mode.
}

// Run diffs opts.OldPath against opts.NewPath and writes the unified diff to stdout. The file header is always written, even when the inputs are identical.
//
// An error reading either input is returned after any output produced so far has been flushed; that output is then incomplete.
func Run(opts Options, stdout io.Writer) (Result, error) {
	var res Result
	if opts.MaxLookahead <= 0 {
		opts.MaxLookahead = linereader.DefaultMaxLookahead
	}
	if opts.ExactLimit <= 0 {
		opts.ExactLimit = DefaultExactLimit
	}

	inOpts := input.Options{Decompress: opts.Decompress}
	oldFile, err := input.Open(opts.OldPath, inOpts)
	if err != nil {
		return res, err
	}
	defer oldFile.Close()
	newFile, err := input.Open(opts.NewPath, inOpts)
	if err != nil {
		return res, err
	}
	defer newFile.Close()

	simplelogger.Debug("inputs opened",
		"old", oldFile.Path, "old_size", oldFile.Size, "old_compression", oldFile.Compression.String(),
		"new", newFile.Path, "new_size", newFile.Size, "new_compression", newFile.Compression.String(),
	)

	w := render.NewWriter(stdout, opts.Color)
	if err := w.FileHeader(opts.OldPath, oldFile.ModTime, opts.NewPath, newFile.ModTime); err != nil {
		return res, fmt.Errorf("write: %w", err)
	}

	engineOpts := streamdiff.Options{MaxContext: opts.MaxContext, MaxLookahead: opts.MaxLookahead}

	var oldR, newR io.Reader = oldFile, newFile
	var engine *streamdiff.Engine
	patchBound := opts.MaxLookahead
	if opts.Exact {
		oldText, newText, fits, err := readForExact(oldFile, newFile, opts.ExactLimit)
		if err != nil {
			return res, err
		}
		if fits {
			edits := exactEdits(string(oldText), string(newText))
			engine = streamdiff.NewFromEdits(edits, engineOpts)
			res.Exact = true
			// A hunk holds at most every edit plus its header.
			patchBound = len(edits) + 1
		} else {
			simplelogger.Warn("input exceeds exact limit; diffing in streaming mode", "limit", opts.ExactLimit)
			oldR = io.MultiReader(bytes.NewReader(oldText), oldFile)
			newR = io.MultiReader(bytes.NewReader(newText), newFile)
		}
	}
	if engine == nil {
		engine = streamdiff.New(
			linereader.New(oldR, opts.MaxLookahead),
			linereader.New(newR, opts.MaxLookahead),
			engineOpts,
		)
	}

	p := hunkpatch.New(engine, patchBound)
	for line, ok := p.Next(); ok; line, ok = p.Next() {
		if err := w.Line(line); err != nil {
			return res, fmt.Errorf("write: %w", err)
		}
	}
	res.Hunks = p.Hunks()
	res.Changed = res.Hunks > 0
	res.Degraded = p.Degraded()

	flushErr := w.Flush()
	if err := engine.Err(); err != nil {
		return res, err
	}
	if flushErr != nil {
		return res, fmt.Errorf("write: %w", flushErr)
	}

	stats := engine.Stats()
	simplelogger.Info("diff complete",
		"hunks", res.Hunks,
		"exact", res.Exact,
		"degraded", res.Degraded,
		"old_ahead", stats.OldAhead,
		"new_ahead", stats.NewAhead,
		"substitutions", stats.Substitutions,
	)
	return res, nil
}

// readForExact reads up to limit+1 bytes of each input. fits reports whether both inputs are complete within limit; if not, the returned bytes are the
// consumed prefixes, which the caller must replay before reading further. The new input is not read if the old one already exceeds limit.
func readForExact(oldR, newR io.Reader, limit int64) (oldText, newText []byte, fits bool, err error) {
	oldText, err = io.ReadAll(io.LimitReader(oldR, limit+1))
	if err != nil {
		return nil, nil, false, err
	}
	if int64(len(oldText)) > limit {
		return oldText, nil, false, nil
	}
	newText, err = io.ReadAll(io.LimitReader(newR, limit+1))
	if err != nil {
		return nil, nil, false, err
	}
	return oldText, newText, int64(len(newText)) <= limit, nil
}

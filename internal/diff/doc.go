// Package diff computes minimal line diffs between an "old" and a "new" text held in memory.
//
// Representation: A Diff holds the complete OldText/NewText and an ordered slice of hunks that, when concatenated, reconstruct both sides. Each hunk has an Op:
//   - OpEqual: unchanged region (OldText == NewText)
//   - OpInsert: text present only in the new side (OldText == "")
//   - OpDelete: text present only in the old side (NewText == "")
//   - OpReplace: text changed on both sides
//
// Hunk texts are whole lines, including the trailing '\n' if it was present in the input.
//
// Invariants:
//   - concat(hunks.OldText) == Diff.OldText
//   - concat(hunks.NewText) == Diff.NewText
//   - adjacent hunks never have the same Op, and an OpEqual hunk is never empty
//
// Getting a diff: Use DiffText to compute a Diff, then walk Hunks, using DiffHunk.OldLines/NewLines to split them:
//
//	d := diff.DiffText(oldText, newText)
//	for _, h := range d.Hunks {
//		for _, line := range h.OldLines() { ... }
//	}
//
// Unlike package streamdiff, DiffText needs both texts in memory, but its result is a minimal diff.
//
// Newlines: This package treats '\n' as the line separator. The last line may not end with '\n'.
package diff

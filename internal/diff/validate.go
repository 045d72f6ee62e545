package diff

import (
	"fmt"
	"strings"
)

// validate checks the Diff invariants and returns an error on the first violation.
func (d Diff) validate() error {
	var oldConcat, newConcat strings.Builder
	for hi, h := range d.Hunks {
		switch h.Op {
		case OpEqual:
			if h.OldText != h.NewText {
				return fmt.Errorf("hunk[%d]: OpEqual requires OldText==NewText", hi)
			}
			if h.OldText == "" {
				return fmt.Errorf("hunk[%d]: OpEqual requires non-empty text", hi)
			}
		case OpInsert:
			if h.OldText != "" || h.NewText == "" {
				return fmt.Errorf("hunk[%d]: OpInsert requires OldText==\"\" and NewText!=\"\"", hi)
			}
		case OpDelete:
			if h.OldText == "" || h.NewText != "" {
				return fmt.Errorf("hunk[%d]: OpDelete requires OldText!=\"\" and NewText==\"\"", hi)
			}
		case OpReplace:
			if h.OldText == "" || h.NewText == "" {
				return fmt.Errorf("hunk[%d]: OpReplace requires OldText!=\"\" and NewText!=\"\"", hi)
			}
		default:
			return fmt.Errorf("hunk[%d]: unknown op %d", hi, h.Op)
		}
		if hi > 0 && d.Hunks[hi-1].Op == h.Op {
			return fmt.Errorf("hunk[%d]: same op as previous hunk (%s)", hi, h.Op)
		}

		oldConcat.WriteString(h.OldText)
		newConcat.WriteString(h.NewText)
	}

	if d.OldText != oldConcat.String() {
		return fmt.Errorf("diff: hunks do not reconstruct OldText")
	}
	if d.NewText != newConcat.String() {
		return fmt.Errorf("diff: hunks do not reconstruct NewText")
	}
	return nil
}

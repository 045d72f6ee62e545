package streamdiff

import "fmt"

// Kind classifies an output line.
type Kind uint8

// Output line kinds.
const (
	KindHeader Kind = iota
	KindContext
	KindDelete
	KindInsert
)

// Sign returns the unified-diff prefix of k: '@' for headers, ' ' for context, '-' for deletions and '+' for insertions.
func (k Kind) Sign() byte {
	switch k {
	case KindHeader:
		return '@'
	case KindDelete:
		return '-'
	case KindInsert:
		return '+'
	default:
		return ' '
	}
}

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindContext:
		return "context"
	case KindDelete:
		return "delete"
	case KindInsert:
		return "insert"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Unknown is the value of a Header count that has not been computed.
const Unknown = -1

// Header is a hunk header. Starts are 1-based line numbers; counts are Unknown until patched.
type Header struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
}

// Patched reports whether both counts are known.
func (h Header) Patched() bool {
	return h.OldCount != Unknown && h.NewCount != Unknown
}

// Line is one line of diff output.
type Line struct {
	Kind   Kind
	Text   string // Line content without terminator. Empty for headers.
	Header Header // Only meaningful for KindHeader.
}

package linereader

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, lr *Reader) []Line {
	t.Helper()
	var lines []Line
	for lr.HasNext() {
		line, ok := lr.Next()
		require.True(t, ok)
		lines = append(lines, line)
	}
	return lines
}

func texts(lines []Line) []string {
	var out []string
	for _, l := range lines {
		out = append(out, l.Text)
	}
	return out
}

func TestReader_Split(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "single terminated", input: "a\n", want: []string{"a"}},
		{name: "single unterminated", input: "a", want: []string{"a"}},
		{name: "no trailing empty line", input: "a\nb\n", want: []string{"a", "b"}},
		{name: "last unterminated", input: "a\nb", want: []string{"a", "b"}},
		{name: "blank lines", input: "\n\nx\n\n", want: []string{"", "", "x", ""}},
		{name: "carriage returns kept", input: "a\r\nb\r\n", want: []string{"a\r", "b\r"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lr := New(strings.NewReader(tc.input), 0)
			got := readAll(t, lr)
			assert.Equal(t, tc.want, texts(got))
			for i, l := range got {
				assert.Equal(t, i+1, l.Number)
			}
			assert.NoError(t, lr.Err())
		})
	}
}

func TestReader_LinesSpanningChunks(t *testing.T) {
	long := strings.Repeat("x", 3*chunkSize+17)
	input := "short\n" + long + "\n" + long + "tail"

	// OneByteReader forces a refill for every byte.
	for name, r := range map[string]io.Reader{
		"whole":    strings.NewReader(input),
		"one byte": iotest.OneByteReader(strings.NewReader(input)),
		"half":     iotest.HalfReader(strings.NewReader(input)),
	} {
		t.Run(name, func(t *testing.T) {
			got := texts(readAll(t, New(r, 0)))
			assert.Equal(t, []string{"short", long, long + "tail"}, got)
		})
	}
}

func TestReader_ExhaustedStaysExhausted(t *testing.T) {
	lr := New(strings.NewReader("a\n"), 0)
	_, ok := lr.Next()
	require.True(t, ok)

	for i := 0; i < 3; i++ {
		assert.False(t, lr.HasNext())
		_, ok := lr.Next()
		assert.False(t, ok)
	}
	assert.Equal(t, 2, lr.NextNumber())
}

func TestReader_PushBack(t *testing.T) {
	lr := New(strings.NewReader("a\nb\nc\n"), 0)
	a, _ := lr.Next()
	b, _ := lr.Next()

	lr.PushBack(b)
	assert.Equal(t, 2, lr.NextNumber())

	got := texts(readAll(t, lr))
	assert.Equal(t, []string{"b", "c"}, got)
	assert.Equal(t, "a", a.Text)
}

func TestReader_PushBackAfterEOF(t *testing.T) {
	lr := New(strings.NewReader("a"), 0)
	a, _ := lr.Next()
	require.False(t, lr.HasNext())

	lr.PushBack(a)
	require.True(t, lr.HasNext())
	got, ok := lr.Next()
	require.True(t, ok)
	assert.Equal(t, a, got)
}

func TestReader_Find(t *testing.T) {
	lr := New(strings.NewReader("a\nb\nc\nb\n"), 0)

	off, ok := lr.Find("b")
	require.True(t, ok)
	assert.Equal(t, 1, off)

	off, ok = lr.Find("a")
	require.True(t, ok)
	assert.Equal(t, 0, off)

	_, ok = lr.Find("zzz")
	assert.False(t, ok)

	// Find does not consume.
	assert.Equal(t, []string{"a", "b", "c", "b"}, texts(readAll(t, lr)))
}

func TestReader_FindAfterConsume(t *testing.T) {
	lr := New(strings.NewReader("a\nb\nc\nb\n"), 0)
	lr.Next()
	lr.Next()

	off, ok := lr.Find("b")
	require.True(t, ok)
	assert.Equal(t, 1, off)
}

func TestReader_FindBounded(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 100; i++ {
		fmt.Fprintf(&sb, "line %d\n", i)
	}
	lr := New(strings.NewReader(sb.String()), 10)

	off, ok := lr.Find("line 9")
	require.True(t, ok)
	assert.Equal(t, 9, off)

	_, ok = lr.Find("line 10")
	assert.False(t, ok, "line 10 is beyond the lookahead bound")
	assert.Equal(t, 10, lr.Buffered())

	// After consuming one line, line 10 comes into range.
	lr.Next()
	off, ok = lr.Find("line 10")
	require.True(t, ok)
	assert.Equal(t, 9, off)
	assert.LessOrEqual(t, lr.Buffered(), lr.MaxLookahead())
}

func TestReader_FindDuplicateIndex(t *testing.T) {
	lr := New(strings.NewReader("x\nx\ny\n"), 0)
	lr.Next()

	off, ok := lr.Find("x")
	require.True(t, ok)
	assert.Equal(t, 0, off)

	lr.Next()
	_, ok = lr.Find("x")
	assert.False(t, ok)
}

func TestReader_ReadError(t *testing.T) {
	boom := errors.New("boom")
	r := io.MultiReader(strings.NewReader("a\nb"), iotest.ErrReader(boom))
	lr := New(r, 0)

	got := texts(readAll(t, lr))
	assert.Equal(t, []string{"a", "b"}, got)
	assert.ErrorIs(t, lr.Err(), boom)
	assert.False(t, lr.HasNext())
}

func TestReader_Counters(t *testing.T) {
	lr := New(strings.NewReader("a\nb\nc\n"), 0)
	assert.Equal(t, 1, lr.NextNumber())

	lr.Find("c")
	assert.Equal(t, 3, lr.Lines())
	assert.Equal(t, 3, lr.Buffered())

	lr.Next()
	assert.Equal(t, 2, lr.NextNumber())
	assert.Equal(t, 2, lr.Buffered())
}

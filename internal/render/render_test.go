package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/codalotl/udiff/internal/streamdiff"
	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLines() []streamdiff.Line {
	return []streamdiff.Line{
		{Kind: streamdiff.KindHeader, Header: streamdiff.Header{OldStart: 1, OldCount: 3, NewStart: 1, NewCount: 3}},
		{Kind: streamdiff.KindContext, Text: "a"},
		{Kind: streamdiff.KindDelete, Text: "b"},
		{Kind: streamdiff.KindInsert, Text: "X"},
		{Kind: streamdiff.KindContext, Text: "c"},
	}
}

func TestWriter_NoColor(t *testing.T) {
	mod := time.Date(2024, 5, 1, 13, 45, 0, 123456789, time.Local)

	var buf bytes.Buffer
	w := NewWriter(&buf, false)
	require.NoError(t, w.FileHeader("old.sql", mod, "new.sql", mod.Add(time.Second)))
	for _, l := range sampleLines() {
		require.NoError(t, w.Line(l))
	}
	require.NoError(t, w.Flush())

	exp := strings.Join([]string{
		"--- old.sql\t2024-05-01 13:45:00.123456789 +0000",
		"+++ new.sql\t2024-05-01 13:45:01.123456789 +0000",
		"@@ -1,3 +1,3 @@",
		" a",
		"-b",
		"+X",
		" c",
	}, "\n") + "\n"
	assert.Equal(t, exp, buf.String())
}

func TestWriter_Color(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	for _, l := range sampleLines() {
		require.NoError(t, w.Line(l))
	}
	require.NoError(t, w.Flush())

	exp := strings.Join([]string{
		"\x1b[35m@@ -1,3 +1,3 @@\x1b[0m",
		" a",
		"\x1b[31m-b\x1b[0m",
		"\x1b[32m+X\x1b[0m",
		" c",
	}, "\n") + "\n"
	assert.Equal(t, exp, buf.String())
}

func TestFormatHeader_Unpatched(t *testing.T) {
	h := streamdiff.Header{OldStart: 7, OldCount: streamdiff.Unknown, NewStart: 9, NewCount: streamdiff.Unknown}
	assert.Equal(t, "@@ -7,? +9,? @@", FormatHeader(h))
}

func TestTimestamp_FixedZoneSuffix(t *testing.T) {
	loc := time.FixedZone("X", 5*3600)
	ts := time.Date(2023, 1, 2, 3, 4, 5, 6, loc)

	got := Timestamp(ts)
	assert.True(t, strings.HasSuffix(got, ".000000006 +0000"), got)
	assert.Equal(t, ts.Local().Format("2006-01-02 15:04:05"), got[:19])
}

func TestTimestamp_LocalWallTimeInNonUTCZone(t *testing.T) {
	// time.Local is read once per process, so TZ can't be changed from a test; swap the zone directly.
	orig := time.Local
	time.Local = time.FixedZone("EST", -5*3600)
	t.Cleanup(func() { time.Local = orig })

	ts := time.Date(2024, 1, 2, 15, 4, 5, 6, time.UTC)
	assert.Equal(t, "2024-01-02 10:04:05.000000006 +0000", Timestamp(ts))
}

func TestParseColorMode(t *testing.T) {
	for _, s := range []string{"auto", "always", "never"} {
		m, err := ParseColorMode(s)
		require.NoError(t, err)
		assert.Equal(t, ColorMode(s), m)
	}
	_, err := ParseColorMode("sometimes")
	assert.Error(t, err)
}

func TestColorMode_Enabled(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, ColorAlways.Enabled(&buf))
	assert.False(t, ColorNever.Enabled(&buf))
	assert.False(t, ColorAuto.Enabled(&buf), "non-file writers are never terminals")

	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, ColorAuto.Enabled(f), "regular files are not terminals")
}

func TestColorMode_EnabledOnTerminal(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	assert.True(t, ColorAuto.Enabled(tty))
	assert.False(t, ColorNever.Enabled(tty))
}

package example

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsRawText(t *testing.T) {
	e := New("1 + 1", "2")

	assert.Equal(t, "1 + 1", e.RawCode)
	assert.Equal(t, "2", e.RawExpected)
	assert.Equal(t, StatusPending, e.Status)
	assert.Empty(t, e.Output())
}

func TestNew_Options(t *testing.T) {
	e := New("x", "y",
		WithSource("doc.md", 12),
		WithSection("intro"),
		WithRaw("$ x", "// => y"),
		WithID("example-1"),
	)

	assert.Equal(t, "doc.md", e.Source)
	assert.Equal(t, 12, e.Line)
	assert.Equal(t, "intro", e.Section)
	assert.Equal(t, "$ x", e.RawCode)
	assert.Equal(t, "// => y", e.RawExpected)
	assert.Equal(t, "example-1", e.ID)
}

func TestNewFromValue(t *testing.T) {
	e, err := NewFromValue("print(1)", "1")
	require.NoError(t, err)
	assert.Equal(t, "1", e.Expected)

	_, err = NewFromValue("print(1)", 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidExpected))

	_, err = NewFromValue("print(1)", nil)
	assert.ErrorIs(t, err, ErrInvalidExpected)
}

func TestExample_WriteConcatenates(t *testing.T) {
	e := New("", "")
	e.Write("a")
	e.Write("b")
	e.Write("\n")
	e.Write("c\n")

	assert.Equal(t, "ab\nc\n", e.Output())
}

func TestExample_Console(t *testing.T) {
	e := New("", "")
	e.WriteConsole("first")
	e.WriteConsole("second")

	assert.Equal(t, "first\nsecond", e.ConsoleOutput())
}

func TestExample_Summary(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{code: "x", want: "x..."},
		{code: "  short  ", want: "short..."},
		{code: "var veryLongName = computeSomething();", want: "var veryLongName = c..."},
		{code: "01234567890123456789 tail", want: "01234567890123456789..."},
		{code: "0123456789012345678 tail", want: "0123456789012345678..."},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.code, "").Summary())
		})
	}
}

func TestExample_HasWildcards(t *testing.T) {
	assert.True(t, New("", "a...b").HasWildcards())
	assert.True(t, New("", "id ?").HasWildcards())
	assert.False(t, New("", "plain").HasWildcards())
}

func TestExample_Label(t *testing.T) {
	assert.Equal(t, "doc.js:4", New("x", "", WithSource("doc.js", 4)).Label())
	assert.Equal(t, "doc.js", New("x", "", WithSource("doc.js", 0)).Label())
	assert.Equal(t, "example-2", New("x", "", WithID("example-2")).Label())
	assert.Equal(t, "x...", New("x", "").Label())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "passed", StatusPassed.String())
	assert.Equal(t, "timed out", StatusTimedOut.String())
	assert.Equal(t, "unknown", Status(99).String())
	assert.False(t, StatusPending.Done())
	assert.True(t, StatusSkipped.Done())
}

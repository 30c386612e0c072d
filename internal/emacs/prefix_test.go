package emacs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrefix_IdleCountIsOne(t *testing.T) {
	var p Prefix
	require.False(t, p.Active())
	require.Equal(t, 1, p.Count())

	_, ok := p.Precise()
	require.False(t, ok)
}

func TestPrefix_Digits(t *testing.T) {
	var p Prefix
	p.Add("1")
	p.Add("2")
	require.True(t, p.Active())
	require.Equal(t, "C-u 12", p.String())
	require.Equal(t, 12, p.Count())
	require.False(t, p.Active(), "reading consumes the prefix")
	require.Equal(t, "", p.String())
}

func TestPrefix_Negative(t *testing.T) {
	var p Prefix
	p.Add("-")
	n, ok := p.Precise()
	require.True(t, ok)
	require.Equal(t, -1, n, "lone minus reads as -1")

	p.Add("-")
	p.Add("3")
	require.Equal(t, -3, p.Count())
}

func TestPrefix_MinusAfterDigitsIgnored(t *testing.T) {
	var p Prefix
	p.Add("4")
	p.Add("-")
	p.Add("2")
	require.Equal(t, 42, p.Count())
}

func TestPrefix_GestureHandled(t *testing.T) {
	var p Prefix
	p.Add("3")
	p.gestureHandled("Ctrl-X", false)
	require.True(t, p.Active(), "Ctrl-X preserves the prefix")

	p.gestureHandled("Ctrl-F", true)
	require.True(t, p.Active(), "the prefix map suppresses clearing")

	p.gestureHandled("Ctrl-F", false)
	require.False(t, p.Active())
}

func TestPrefix_Duplicate(t *testing.T) {
	var p Prefix
	require.Equal(t, "", p.duplicate("a"))

	p.Add("3")
	require.Equal(t, "aa", p.duplicate("a"))
	require.False(t, p.Active())

	p.Add("1")
	require.Equal(t, "", p.duplicate("a"))
	require.False(t, p.Active(), "a count of one is still consumed")

	p.Add("-")
	require.Equal(t, "", p.duplicate("a"))
}

func TestPrefix_ClampsLongDigitStrings(t *testing.T) {
	var p Prefix
	for range 22 {
		p.Add("9")
	}
	require.Equal(t, maxPrefix, p.Count())

	p.Add("-")
	p.Add("12345678")
	require.Equal(t, -maxPrefix, p.Count())

	p.Add("9")
	p.Add("9")
	require.Equal(t, 99, p.Count(), "small values pass through")
}

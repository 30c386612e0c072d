// Package grapheme provides grapheme cluster helpers for column arithmetic.
//
// Every column handled by the editing engine is a grapheme index, not a byte
// offset and not a display cell. A cluster such as "e" + U+0301 or a ZWJ emoji
// sequence is a single column, so a single char step never splits it.
//
// Word classification follows simple ASCII rules: [A-Za-z0-9_] are word
// characters, everything else is not.
package grapheme

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Count returns the number of grapheme clusters in s.
func Count(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Split returns the grapheme clusters of s in order.
func Split(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.StepString(s, state)
		out = append(out, cluster)
	}
	return out
}

// At returns the cluster at grapheme index idx, or "" when out of range.
func At(s string, idx int) string {
	if idx < 0 {
		return ""
	}
	i := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.StepString(s, state)
		if i == idx {
			return cluster
		}
		i++
	}
	return ""
}

// ToByteOffset converts a grapheme index to a byte offset.
// Indexes <= 0 map to 0 and indexes past the end map to len(s).
func ToByteOffset(s string, idx int) int {
	if idx <= 0 {
		return 0
	}
	i := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		_, rest, _, state = uniseg.StepString(rest, state)
		i++
		if i == idx {
			return len(s) - len(rest)
		}
	}
	return len(s)
}

// Slice returns the clusters in [start, end) of s.
func Slice(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end < start {
		return ""
	}
	startByte := ToByteOffset(s, start)
	endByte := ToByteOffset(s, end)
	if startByte >= len(s) {
		return ""
	}
	return s[startByte:endByte]
}

// Insert inserts text before the cluster at idx.
func Insert(s string, idx int, text string) string {
	off := ToByteOffset(s, idx)
	return s[:off] + text + s[off:]
}

// Delete removes the clusters in [start, end).
func Delete(s string, start, end int) string {
	startByte := ToByteOffset(s, start)
	endByte := ToByteOffset(s, end)
	if endByte < startByte {
		return s
	}
	return s[:startByte] + s[endByte:]
}

// IsWordChar reports whether the base rune of cluster is an ASCII word
// character.
func IsWordChar(cluster string) bool {
	for _, r := range cluster {
		return isWordRune(r)
	}
	return false
}

// ContainsWordChar reports whether s contains at least one ASCII word character.
func ContainsWordChar(s string) bool {
	return strings.IndexFunc(s, isWordRune) >= 0
}

func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}

// IsSpace reports whether cluster is whitespace.
func IsSpace(cluster string) bool {
	for _, r := range cluster {
		return unicode.IsSpace(r)
	}
	return false
}

// HasText reports whether s contains any non-whitespace character.
func HasText(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) >= 0
}

// DisplayWidth returns the terminal cell width of s.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// ColumnWidth returns the display width of the first idx clusters of s.
// Used to place a terminal cursor over a grapheme column.
func ColumnWidth(s string, idx int) int {
	return runewidth.StringWidth(s[:ToByteOffset(s, idx)])
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSourceFile_LineIndexing(t *testing.T) {
	file := NewSourceFile("a.ts", "first\nsecond\n")

	// Trailing newline produces a final empty line, as in an editor.
	assert.Equal(t, 3, file.NumLines())
	assert.Equal(t, "first", file.Line(1))
	assert.Equal(t, "second", file.Line(2))
	assert.Equal(t, "", file.Line(3))
}

func TestNewSourceFile_Empty(t *testing.T) {
	file := NewSourceFile("a.ts", "")

	assert.Equal(t, 1, file.NumLines())
	assert.Equal(t, "", file.Line(1))
}

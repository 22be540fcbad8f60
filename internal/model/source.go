package model

import "strings"

// Path represents a file system path.
type Path string

// DeclKind identifies the declaration keyword that introduced an export.
type DeclKind string

const (
	// DeclFunction represents `export function` (optionally async).
	DeclFunction DeclKind = "function"
	// DeclClass represents `export class`.
	DeclClass DeclKind = "class"
	// DeclConst represents `export const`.
	DeclConst DeclKind = "const"
	// DeclType represents `export type`.
	DeclType DeclKind = "type"
	// DeclInterface represents `export interface`.
	DeclInterface DeclKind = "interface"
	// DeclEnum represents `export enum`.
	DeclEnum DeclKind = "enum"
)

// SourceFile holds the text of a single scanned file, split into lines.
// Lines are addressed 1-indexed everywhere so reported positions match what
// an editor shows. Never mutated after construction.
type SourceFile struct {
	Path  Path
	lines []string
}

// NewSourceFile splits content into lines.
func NewSourceFile(path Path, content string) SourceFile {
	return SourceFile{
		Path:  path,
		lines: strings.Split(content, "\n"),
	}
}

// NumLines returns the number of lines in the file.
func (f SourceFile) NumLines() int {
	return len(f.lines)
}

// Line returns the 1-indexed line n. Panics when n is out of range, matching
// slice semantics.
func (f SourceFile) Line(n int) string {
	return f.lines[n-1]
}

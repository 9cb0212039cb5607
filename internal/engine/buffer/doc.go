// Package buffer provides the line-oriented text buffer behind the
// terminal editor.
//
// The buffer stores text as a slice of lines with line endings removed and
// addresses it with Points (0-indexed line, byte column). Every edit is a
// Replace of a Range; Insert and Delete are shorthands for it.
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Atomic range replace with validation
//   - Line ending normalization on input, restored on write
//   - Revision tracking and change notification
//   - Undo/redo, with repeated in-place replacements coalesced into one step
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("width = 10\n")
//	res, err := buf.Replace(buffer.Range{
//	    Start: buffer.Point{Line: 0, Column: 8},
//	    End:   buffer.Point{Line: 0, Column: 10},
//	}, "12")
//
// Dragging a value replaces the same range over and over; each replace
// covers exactly the text the previous one wrote, so Undo restores the
// value from before the drag in one step.
package buffer

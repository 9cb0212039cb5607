package buffer

import "errors"

// Errors returned by Undo and Redo.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

const defaultHistoryLimit = 1000

// history holds undo and redo stacks of applied edits.
type history struct {
	undo  []EditResult
	redo  []EditResult
	limit int
}

// record pushes e and clears the redo stack. An edit that rewrites
// exactly the text the previous edit produced, on one line, is merged
// into it.
func (h *history) record(e EditResult) {
	if h.limit == 0 {
		return
	}
	h.redo = h.redo[:0]

	if n := len(h.undo); n > 0 && coalesces(h.undo[n-1], e) {
		last := &h.undo[n-1]
		last.NewRange = e.NewRange
		last.NewText = e.NewText
		last.Revision = e.Revision
		return
	}

	h.undo = append(h.undo, e)
	if len(h.undo) > h.limit {
		h.undo = append(h.undo[:0], h.undo[len(h.undo)-h.limit:]...)
	}
}

func coalesces(prev, next EditResult) bool {
	return prev.NewRange == next.OldRange &&
		!next.OldRange.IsEmpty() && next.NewText != "" &&
		prev.NewRange.SingleLine() && next.NewRange.SingleLine()
}

func (h *history) popUndo() (EditResult, bool) {
	n := len(h.undo)
	if n == 0 {
		return EditResult{}, false
	}
	e := h.undo[n-1]
	h.undo = h.undo[:n-1]
	return e, true
}

func (h *history) popRedo() (EditResult, bool) {
	n := len(h.redo)
	if n == 0 {
		return EditResult{}, false
	}
	e := h.redo[n-1]
	h.redo = h.redo[:n-1]
	return e, true
}

func (h *history) clear() {
	h.undo = nil
	h.redo = nil
}

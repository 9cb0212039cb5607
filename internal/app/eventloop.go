package app

import (
	"errors"

	"github.com/dshills/scrub/internal/engine/buffer"
	"github.com/dshills/scrub/internal/input/key"
	"github.com/dshills/scrub/internal/input/mouse"
	"github.com/dshills/scrub/internal/renderer/backend"
)

// handleEvent processes a backend event.
// Returns ErrQuit if the application should exit.
func (a *App) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		a.picker.Close()
		a.view.Resize(ev.Width, ev.Height)
		return nil
	case backend.EventKey:
		return a.handleKey(ev)
	case backend.EventMouse:
		a.handleMouse(ev)
		return nil
	case backend.EventFocus:
		a.translator.Focus(ev.Focused)
		return nil
	case backend.EventInterrupt:
		return a.handleInterrupt(ev)
	default:
		return nil
	}
}

func (a *App) handleInterrupt(ev backend.Event) error {
	switch req := ev.Data.(type) {
	case reloadRequest:
		if err := a.reload(req.Path); err != nil {
			return &FileError{Op: "reload", Path: req.Path, Err: err}
		}
	case quitRequest:
		return ErrQuit
	}
	return nil
}

// handleMouse offers the event to the picker, then the interaction
// engine, then default editing.
func (a *App) handleMouse(ev backend.Event) {
	if a.picker.HandleMouse(ev) {
		return
	}
	if ev.Wheel != 0 {
		a.view.Scroll(ev.Wheel * 3)
	}
	res := a.translator.Mouse(ev)
	if !res.Consumed && ev.Wheel == 0 && ev.MouseButton == mouse.ButtonLeft {
		a.view.PlaceCaret(ev.MouseX, ev.MouseY)
	}
}

func (a *App) handleKey(ev backend.Event) error {
	a.translator.Key(ev)
	if a.picker.HandleKey(ev) {
		return nil
	}

	if ev.Key != backend.KeyCtrlQ && ev.Key != backend.KeyCtrlC {
		a.quitArmed = false
	}

	v := a.view
	var err error
	switch ev.Key {
	case backend.KeyCtrlQ, backend.KeyCtrlC:
		return a.quit()
	case backend.KeyCtrlS:
		return a.save()
	case backend.KeyCtrlZ:
		return a.undo()
	case backend.KeyCtrlY:
		return a.redo()
	case backend.KeyEscape:
		v.SetMessage("")
	case backend.KeyEnter:
		err = v.InsertText("\n")
	case backend.KeyTab:
		err = v.InsertText("\t")
	case backend.KeyBackspace:
		err = v.Backspace()
	case backend.KeyDelete:
		err = v.DeleteForward()
	case backend.KeyLeft:
		v.MoveCaret(-1, 0)
	case backend.KeyRight:
		v.MoveCaret(1, 0)
	case backend.KeyUp:
		v.MoveCaret(0, -1)
	case backend.KeyDown:
		v.MoveCaret(0, 1)
	case backend.KeyHome:
		v.Home()
	case backend.KeyEnd:
		v.End()
	case backend.KeyPageUp:
		v.PageMove(-1)
	case backend.KeyPageDown:
		v.PageMove(1)
	case backend.KeyRune:
		if ev.Mod.Has(key.ModAlt) || ev.Mod.Has(key.ModCtrl) {
			return nil
		}
		err = v.InsertText(string(ev.Rune))
	}
	return err
}

// quit exits, asking for a second Ctrl-Q when there are unsaved changes.
func (a *App) quit() error {
	if a.view.Document().IsModified() && !a.quitArmed {
		a.quitArmed = true
		a.view.SetMessage("%v: press Ctrl-Q again to quit", ErrUnsavedChanges)
		return nil
	}
	return ErrQuit
}

func (a *App) save() error {
	doc := a.view.Document()
	if err := doc.Save(); err != nil {
		return err
	}
	a.log.Info("saved %s", doc.Path)
	a.view.SetMessage("saved %s", doc.Name)
	return nil
}

func (a *App) undo() error {
	res, err := a.view.Document().Buffer.Undo()
	if errors.Is(err, buffer.ErrNothingToUndo) {
		a.view.SetMessage("nothing to undo")
		return nil
	}
	if err != nil {
		return err
	}
	a.view.SetCaret(res.NewRange.End)
	return nil
}

func (a *App) redo() error {
	res, err := a.view.Document().Buffer.Redo()
	if errors.Is(err, buffer.ErrNothingToRedo) {
		a.view.SetMessage("nothing to redo")
		return nil
	}
	if err != nil {
		return err
	}
	a.view.SetCaret(res.NewRange.End)
	return nil
}

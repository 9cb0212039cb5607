package interact

// apply replaces t's range with text. The start of the range stays put
// and the end moves to fit the new text, so drags that change the text's
// length keep tracking without re-matching. A failed replace leaves the
// text and highlight untouched and marks t stale.
func (e *Engine) apply(t *target, text string) {
	if err := e.host.Replace(t.Range, text); err != nil {
		t.stale = true
		e.log.WithField("rule", t.Rule.Name).Error("replace %s with %q failed: %v", t.Range, text, err)
		return
	}

	t.Text = text
	t.Range.End = t.Range.Start.Offset(len(text))

	if t == e.target {
		e.resync(t)
	}
}

package rules

import (
	"fmt"
	"io"
	"regexp"

	"github.com/pkg/browser"

	"github.com/dshills/scrub/internal/interact/rule"
)

var urlPattern = regexp.MustCompile(`https?://[^ "']+`)

// URL returns the URL clicker. Clicking hands the URL to opener; failures
// go to onError when set.
func URL(opener Opener, onError func(error)) rule.Rule {
	r := rule.Rule{
		Name:    NameURL,
		Pattern: urlPattern,
		Cursor:  "pointer",
		Class:   "url",
	}
	if opener == nil {
		return r
	}
	r.Hooks.OnClick = func(_ rule.Editor, c *rule.Call) {
		if err := opener.Open(c.Text); err != nil && onError != nil {
			onError(fmt.Errorf("opening %s: %w", c.Text, err))
		}
	}
	return r
}

// BrowserOpener opens URLs in the system browser.
type BrowserOpener struct{}

// NewBrowserOpener returns an opener that keeps the browser launcher's
// output off the terminal.
func NewBrowserOpener() BrowserOpener {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return BrowserOpener{}
}

// Open launches the system browser.
func (BrowserOpener) Open(url string) error {
	return browser.OpenURL(url)
}

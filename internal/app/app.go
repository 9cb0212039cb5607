// Package app is the terminal editor that hosts the interaction engine.
//
// The App owns one document shown in a View. Terminal events are turned
// into interaction events by a Translator and published on the view's
// feed, where the engine consumes them; events the engine leaves alone
// fall through to ordinary editing. Config and Lua rule files are watched
// and reloaded on the event loop.
package app

import (
	"errors"
	"os"
	"path/filepath"
	"slices"

	"github.com/dshills/scrub/internal/config"
	"github.com/dshills/scrub/internal/config/watcher"
	"github.com/dshills/scrub/internal/engine/buffer"
	"github.com/dshills/scrub/internal/interact"
	"github.com/dshills/scrub/internal/logging"
	"github.com/dshills/scrub/internal/renderer/backend"
	"github.com/dshills/scrub/internal/rules"
)

// Options configures the application.
type Options struct {
	// Path is the file to edit. Empty opens a scratch buffer.
	Path string

	// Config is the initial configuration. Nil means config.Default().
	Config *config.Config

	// Override is applied to every configuration after loading, so
	// command line flags survive reloads.
	Override func(*config.Config)

	// Backend is the terminal.
	Backend backend.Backend

	// Logger receives application logs. Nil discards them.
	Logger *logging.Logger

	// Opener opens URLs. Nil uses the system browser.
	Opener rules.Opener

	// Watch enables live reload of the config and Lua rule files.
	Watch bool
}

// reloadRequest is posted to the event loop when a watched file changes.
type reloadRequest struct {
	Path string
}

// quitRequest asks the event loop to stop without confirmation.
type quitRequest struct{}

// App is the terminal editor.
type App struct {
	opts    Options
	backend backend.Backend
	log     *logging.Logger

	cfg        *config.Config
	view       *View
	picker     *Picker
	translator *Translator
	engine     *interact.Engine
	rules      *RuleSet
	watcher    *watcher.Watcher

	unwatchEdits func()
	quitArmed    bool
}

// New creates the application and attaches the interaction engine.
func New(opts Options) (*App, error) {
	if opts.Backend == nil {
		return nil, ErrNoBackend
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Null
	}
	if opts.Opener == nil {
		opts.Opener = rules.NewBrowserOpener()
	}

	doc, err := OpenDocument(opts.Path)
	if err != nil {
		return nil, err
	}

	a := &App{
		opts:    opts,
		backend: opts.Backend,
		log:     opts.Logger.WithComponent("app"),
		cfg:     opts.Config,
	}

	feed := interact.NewFeed()
	a.view = NewView(doc, feed, nil)
	a.picker = NewPicker(a.view)
	a.translator = NewTranslator(feed, a.view.InTextArea)

	a.rules, err = BuildRules(a.cfg, a.ruleDeps())
	if err != nil {
		return nil, &InitError{Component: "rules", Err: err}
	}

	a.engine, err = interact.Attach(a.view, a.rules.Set,
		interact.WithLogger(opts.Logger),
		interact.WithModifier(a.cfg.Selector()),
	)
	if err != nil {
		a.rules.Close()
		return nil, &InitError{Component: "interaction engine", Err: err}
	}
	a.unwatchEdits = a.view.OnOutsideEdit(a.outsideEdit)
	a.updateStatus()
	return a, nil
}

// outsideEdit closes the picker and invalidates the engine's targets
// after an edit the engine did not make.
func (a *App) outsideEdit(buffer.EditResult) {
	a.picker.Close()
	a.engine.Invalidate()
}

func (a *App) ruleDeps() RuleDeps {
	return RuleDeps{Picker: a.picker, Opener: a.opts.Opener, Logger: a.opts.Logger}
}

// View returns the editor view.
func (a *App) View() *View { return a.view }

// Engine returns the interaction engine.
func (a *App) Engine() *interact.Engine { return a.engine }

// Config returns the active configuration.
func (a *App) Config() *config.Config { return a.cfg }

// Run initializes the terminal and processes events until quit.
func (a *App) Run() error {
	if err := a.backend.Init(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	defer a.backend.Shutdown()

	a.view.Resize(a.backend.Size())

	if a.opts.Watch {
		if err := a.startWatcher(); err != nil {
			a.log.Warn("live reload disabled: %v", err)
		}
	}

	for {
		a.draw()
		err := a.handleEvent(a.backend.PollEvent())
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			a.log.Error("%v", err)
			a.view.SetMessage("%v", err)
		}
	}
}

// Quit asks a running event loop to return. It is safe to call from any
// goroutine.
func (a *App) Quit() error {
	return a.backend.Interrupt(quitRequest{})
}

// Close detaches the engine and releases watchers and Lua states.
func (a *App) Close() error {
	a.unwatchEdits()
	a.picker.Close()
	a.engine.Detach()
	a.rules.Close()
	if a.watcher != nil {
		return a.watcher.Close()
	}
	return nil
}

func (a *App) draw() {
	a.view.Draw(a.backend)
	a.picker.Draw(a.backend)
	a.backend.Show()
}

func (a *App) updateStatus() {
	a.view.SetStatus(a.cfg.Selector().String() + " + mouse")
}

func (a *App) startWatcher() error {
	w, err := watcher.New(func(ev watcher.Event) {
		if err := a.backend.Interrupt(reloadRequest{Path: ev.Path}); err != nil {
			a.log.Warn("posting reload: %v", err)
		}
	}, watcher.WithLogger(a.opts.Logger))
	if err != nil {
		return err
	}
	a.watcher = w
	a.syncWatches()
	return nil
}

// syncWatches makes the watched files match the current config.
func (a *App) syncWatches() {
	if a.watcher == nil {
		return
	}
	var want []string
	for _, p := range a.cfg.WatchPaths() {
		if abs, err := filepath.Abs(p); err == nil {
			want = append(want, abs)
		}
	}
	for _, p := range a.watcher.Files() {
		if !slices.Contains(want, p) {
			_ = a.watcher.Unwatch(p)
		}
	}
	for _, p := range want {
		if err := a.watcher.Watch(p); err != nil {
			a.log.Warn("watching %s: %v", p, err)
		}
	}
}

// reload re-reads the config (if it came from a file) and rebuilds the
// rule set. On any error the previous state is kept.
func (a *App) reload(path string) error {
	a.log.Info("reloading after change to %s", path)

	cfg := a.cfg
	if p := a.cfg.Path(); p != "" {
		loaded, err := config.Load(p, false)
		if err != nil {
			return err
		}
		loaded.ApplyEnv(os.LookupEnv)
		if a.opts.Override != nil {
			a.opts.Override(loaded)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded
	}

	rs, err := BuildRules(cfg, a.ruleDeps())
	if err != nil {
		return err
	}

	a.picker.Close()
	if err := a.engine.SetRules(rs.Set); err != nil {
		rs.Close()
		return err
	}
	a.engine.SetModifier(cfg.Selector())
	a.rules.Close()
	a.rules = rs
	a.cfg = cfg
	a.syncWatches()
	a.updateStatus()
	a.view.SetMessage("reloaded (%d rules)", rs.Set.Len())
	return nil
}

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/scrub/internal/app"
	"github.com/dshills/scrub/internal/config"
	"github.com/dshills/scrub/internal/logging"
	"github.com/dshills/scrub/internal/renderer/backend"
)

// globalFlags override the config file on every load, including reloads.
type globalFlags struct {
	configPath string
	modifier   string
	logFile    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "scrub [FILE]",
		Short: "Edit literal values with the mouse",
		Long: `scrub is a terminal text editor where numbers, booleans, vectors, colors
and URLs can be changed with the mouse while a modifier key is held.

Hold the modifier (alt by default) and:
  drag a number or vec2   to nudge it
  click a boolean         to flip it
  click a color           to open a picker
  click a URL             to open it in the browser

Rules can be added with Lua files listed in the config file.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return runEditor(flags, path, !noWatch)
		},
	}
	cmd.SetVersionTemplate(fmt.Sprintf("scrub %s\ncommit: %s\nbuilt: %s\n", version, commit, date))

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "config file path (default $XDG_CONFIG_HOME/scrub/config.toml)")
	pf.StringVarP(&flags.modifier, "modifier", "m", "", "modifier key that enables mouse editing (alt, shift, ctrl, meta, mod)")
	pf.StringVar(&flags.logFile, "log-file", "", "write logs to this file")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload the config and Lua rules when they change")

	cmd.AddCommand(newScanCmd(flags), newRulesCmd(flags))
	return cmd
}

// override applies the flags that were given to cfg.
func (f *globalFlags) override(cfg *config.Config) {
	if f.modifier != "" {
		cfg.Modifier = f.modifier
	}
	if f.logFile != "" {
		cfg.Log.File = f.logFile
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
}

// loadConfig reads the config file named by --config, or the per-user file
// if it exists, then applies the environment and the flags.
func (f *globalFlags) loadConfig() (*config.Config, error) {
	path, optional := f.configPath, false
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path, optional = p, true
	}

	cfg, err := config.Load(path, optional)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.LookupEnv)
	f.override(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration:\n%w", err)
	}
	return cfg, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newLogger returns a rotating file logger when log.file is set. Otherwise
// logs go to fallback, or nowhere if fallback is nil.
func newLogger(cfg *config.Config, fallback io.Writer) (*logging.Logger, io.Closer) {
	if cfg.Log.File != "" {
		return logging.NewFile(cfg.LogLevel(), logging.FileConfig{
			Path:       cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
		})
	}
	if fallback == nil {
		return logging.Null, nopCloser{}
	}
	lc := logging.DefaultConfig()
	lc.Level = cfg.LogLevel()
	lc.Output = fallback
	return logging.New(lc), nopCloser{}
}

func runEditor(flags *globalFlags, path string, watch bool) error {
	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}

	// The terminal owns stderr while the editor runs.
	log, closer := newLogger(cfg, nil)
	defer closer.Close()

	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("creating terminal: %w", err)
	}

	a, err := app.New(app.Options{
		Path:     path,
		Config:   cfg,
		Override: flags.override,
		Backend:  term,
		Logger:   log,
		Watch:    watch,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signals)
	go func() {
		if _, ok := <-signals; ok {
			if err := a.Quit(); err != nil {
				log.Warn("quit on signal: %v", err)
			}
		}
	}()

	log.Info("editing %q", path)
	return a.Run()
}

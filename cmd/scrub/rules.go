package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/scrub/internal/app"
	"github.com/dshills/scrub/internal/rules"
)

func newRulesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the active rules in priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			log, closer := newLogger(cfg, cmd.ErrOrStderr())
			defer closer.Close()

			// Placeholder collaborators so the built-in rules report
			// their full capabilities.
			rs, err := app.BuildRules(cfg, app.RuleDeps{
				Picker: listingPicker{},
				Opener: listingOpener{},
				Logger: log,
			})
			if err != nil {
				return err
			}
			defer rs.Close()

			source := make(map[string]string)
			for _, m := range rs.Modules {
				for _, r := range m.Rules() {
					source[r.Name] = m.Path()
				}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tNAME\tACTIONS\tCURSOR\tCLASS\tSOURCE")
			for _, e := range rs.Set.Entries() {
				src, ok := source[e.Name]
				if !ok {
					src = "builtin"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
					e.Index+1, e.Name, e.Capabilities(), orDash(e.Cursor), orDash(e.Class), src)
			}
			return tw.Flush()
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// listingPicker and listingOpener are never invoked; they only enable the
// hooks of the rules that depend on them.
type listingPicker struct{}

func (listingPicker) Open(rules.PickerRequest) func() { return func() {} }

type listingOpener struct{}

func (listingOpener) Open(string) error { return nil }

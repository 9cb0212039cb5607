package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/scrub/internal/app"
	"github.com/dshills/scrub/internal/engine/buffer"
	"github.com/dshills/scrub/internal/interact/match"
	"github.com/dshills/scrub/internal/interact/rule"
)

// scanHit is one match reported by the scan command. Line and Column are
// 1-based; Column counts bytes.
type scanHit struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Rule   string `json:"rule"`
	Text   string `json:"text"`
}

func newScanCmd(flags *globalFlags) *cobra.Command {
	var jsonOutput bool
	var only string

	cmd := &cobra.Command{
		Use:   "scan FILE...",
		Short: "Print every value the active rules recognize",
		Long: `Print every match of every active rule, one per line, as
FILE:LINE:COLUMN: RULE TEXT. Matches on a line are ordered by column and
then by rule priority.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			log, closer := newLogger(cfg, cmd.ErrOrStderr())
			defer closer.Close()

			rs, err := app.BuildRules(cfg, app.RuleDeps{Logger: log})
			if err != nil {
				return err
			}
			defer rs.Close()

			set := rs.Set
			if only != "" {
				e, ok := rs.Set.Lookup(only)
				if !ok {
					return fmt.Errorf("no active rule named %q", only)
				}
				if set, err = rule.NewSet(e.Rule); err != nil {
					return err
				}
			}

			var hits []scanHit
			for _, path := range args {
				found, err := scanFile(set, path)
				if err != nil {
					return err
				}
				hits = append(hits, found...)
			}
			return writeHits(cmd.OutOrStdout(), hits, jsonOutput)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	cmd.Flags().StringVar(&only, "rule", "", "report matches of this rule only")
	return cmd
}

func scanFile(set *rule.Set, path string) ([]scanHit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := buffer.NewBufferFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var hits []scanHit
	for row := 0; row < buf.LineCount(); row++ {
		line, _ := buf.LineText(row)
		for _, m := range match.FindAll(set, line, row) {
			hits = append(hits, scanHit{
				File:   path,
				Line:   m.Pos.Row + 1,
				Column: m.Pos.Column + 1,
				Rule:   m.Rule.Name,
				Text:   m.Text,
			})
		}
	}
	return hits, nil
}

func writeHits(w io.Writer, hits []scanHit, asJSON bool) error {
	if asJSON {
		if hits == nil {
			hits = []scanHit{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	}
	for _, h := range hits {
		if _, err := fmt.Fprintf(w, "%s:%d:%d: %s %s\n", h.File, h.Line, h.Column, h.Rule, h.Text); err != nil {
			return err
		}
	}
	return nil
}

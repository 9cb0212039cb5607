package app

import (
	"fmt"

	"github.com/dshills/scrub/internal/config"
	"github.com/dshills/scrub/internal/interact/rule"
	"github.com/dshills/scrub/internal/logging"
	"github.com/dshills/scrub/internal/plugin/lua"
	"github.com/dshills/scrub/internal/rules"
)

// RuleSet is an active rule set together with the Lua modules backing
// some of its rules.
type RuleSet struct {
	Set     *rule.Set
	Modules []*lua.Module
}

// Close releases the Lua modules.
func (rs *RuleSet) Close() {
	if rs == nil {
		return
	}
	lua.CloseAll(rs.Modules)
	rs.Modules = nil
}

// RuleDeps are the collaborators some built-in rules need. Nil members
// leave the corresponding rules without hooks.
type RuleDeps struct {
	Picker rules.Picker
	Opener rules.Opener
	Logger *logging.Logger
}

// BuildRules assembles the configured built-in rules followed by the
// rules from each Lua file.
func BuildRules(cfg *config.Config, deps RuleDeps) (*RuleSet, error) {
	log := deps.Logger
	if log == nil {
		log = logging.Null
	}

	builtin, err := rules.Select(cfg.Rules.Builtin, rules.Options{
		Sensitivity: cfg.Number.Sensitivity,
		Picker:      deps.Picker,
		Opener:      deps.Opener,
		OnError: func(err error) {
			log.WithComponent("rules").Warn("%v", err)
		},
	})
	if err != nil {
		return nil, err
	}

	mods, err := lua.LoadFiles(cfg.Rules.Lua, lua.WithLogger(log.WithComponent("lua")))
	if err != nil {
		return nil, err
	}

	all := append(builtin, lua.Rules(mods)...)
	set, err := rule.NewSet(all...)
	if err != nil {
		lua.CloseAll(mods)
		return nil, fmt.Errorf("building rule set: %w", err)
	}
	return &RuleSet{Set: set, Modules: mods}, nil
}

package framework

import (
	"context"

	"github.com/vk/mvngraph/internal/ctxlog"
	"github.com/vk/mvngraph/internal/model"
)

// Contribution is a goal contributed by a matched rule.
type Contribution struct {
	Rule      string
	PluginKey string
	Goal      Goal
}

// Registry is an ordered, read-only set of rules.
type Registry struct {
	rules []Rule
}

// NewRegistry returns a registry holding the built-in rules followed by
// extra.
func NewRegistry(extra ...Rule) *Registry {
	rules := Builtin()
	rules = append(rules, extra...)
	return &Registry{rules: rules}
}

// Rules returns the rules in evaluation order.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Phases returns the phases contributed by every rule the project matches,
// in rule order. Duplicates are left to the caller.
func (r *Registry) Phases(ctx context.Context, p *model.Project) []string {
	logger := ctxlog.FromContext(ctx)
	var phases []string
	for _, rule := range r.rules {
		if len(rule.Phases) == 0 || !rule.Matches(p) {
			continue
		}
		logger.Debug("Framework detected.", "rule", rule.Name, "phases", rule.Phases)
		phases = append(phases, rule.Phases...)
	}
	return phases
}

// PluginGoals returns the goals every rule contributes for a plugin key.
func (r *Registry) PluginGoals(pluginKey string) []Contribution {
	var out []Contribution
	for _, rule := range r.rules {
		if !rule.MatchesPlugin(pluginKey) {
			continue
		}
		for _, g := range rule.Goals {
			out = append(out, Contribution{Rule: rule.Name, PluginKey: pluginKey, Goal: g})
		}
	}
	return out
}

// DependencyGoals returns the goals contributed by dependency signatures,
// reported under each rule's canonical plugin key.
func (r *Registry) DependencyGoals(deps []model.Dependency) []Contribution {
	var out []Contribution
	for _, rule := range r.rules {
		if rule.DependencyPluginKey == "" || !rule.MatchesDependencies(deps) {
			continue
		}
		for _, g := range rule.Goals {
			out = append(out, Contribution{Rule: rule.Name, PluginKey: rule.DependencyPluginKey, Goal: g})
		}
	}
	return out
}

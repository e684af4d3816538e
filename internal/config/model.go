package config

import (
	"fmt"
	"strings"

	"github.com/vk/mvngraph/internal/framework"
	"github.com/vk/mvngraph/internal/lifecycle"
	"github.com/vk/mvngraph/internal/model"
)

// Model is the unified, format-agnostic representation of a settings file.
type Model struct {
	Settings   Settings
	Frameworks []*Framework
	Phases     []*Phase
}

// Settings holds run settings. Zero values mean "not set".
type Settings struct {
	OutputFile        string
	ManifestCacheSize int
}

// Framework is the format-agnostic representation of a `framework` block.
type Framework struct {
	Name                    string
	PluginKeys              []string
	PluginKeyContains       []string
	DependencyGroupPrefixes []string
	GoalPluginKey           string
	Phases                  []string
	Goals                   []*Goal
}

// Goal is a goal contributed by a framework.
type Goal struct {
	Name     string
	Category string
}

// Phase is the format-agnostic representation of a `phase` block.
type Phase struct {
	Name  string
	After []string
}

// Merge folds other into m. Settings set in other win; frameworks and phases
// are appended.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	if other.Settings.OutputFile != "" {
		m.Settings.OutputFile = other.Settings.OutputFile
	}
	if other.Settings.ManifestCacheSize != 0 {
		m.Settings.ManifestCacheSize = other.Settings.ManifestCacheSize
	}
	m.Frameworks = append(m.Frameworks, other.Frameworks...)
	m.Phases = append(m.Phases, other.Phases...)
}

// Rules translates the framework blocks into rules, in declaration order.
func (m *Model) Rules() ([]framework.Rule, error) {
	var rules []framework.Rule
	seen := make(map[string]bool)
	for _, f := range m.Frameworks {
		if seen[f.Name] {
			return nil, fmt.Errorf("framework %q is declared more than once", f.Name)
		}
		seen[f.Name] = true

		rule, err := f.rule()
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (f *Framework) rule() (framework.Rule, error) {
	if strings.TrimSpace(f.Name) == "" {
		return framework.Rule{}, fmt.Errorf("framework with empty name")
	}
	if len(f.PluginKeys) == 0 && len(f.PluginKeyContains) == 0 && len(f.DependencyGroupPrefixes) == 0 {
		return framework.Rule{}, fmt.Errorf("framework %q matches nothing: set plugin_keys, plugin_key_contains or dependency_group_prefixes", f.Name)
	}
	if len(f.DependencyGroupPrefixes) > 0 && f.GoalPluginKey == "" && len(f.Goals) > 0 {
		return framework.Rule{}, fmt.Errorf("framework %q contributes goals for dependencies but has no goal_plugin_key", f.Name)
	}

	rule := framework.Rule{
		Name:                    f.Name,
		PluginKeys:              f.PluginKeys,
		PluginKeyContains:       f.PluginKeyContains,
		DependencyGroupPrefixes: f.DependencyGroupPrefixes,
		DependencyPluginKey:     f.GoalPluginKey,
		Phases:                  f.Phases,
	}
	for _, g := range f.Goals {
		goal := framework.Goal{Name: g.Name}
		if g.Category != "" {
			c, ok := model.ParseCategory(g.Category)
			if !ok {
				return framework.Rule{}, fmt.Errorf("framework %q, goal %q: unknown category %q", f.Name, g.Name, g.Category)
			}
			goal.Category = c
		}
		rule.Goals = append(rule.Goals, goal)
	}
	return rule, nil
}

// Extensions translates the phase blocks into lifecycle extensions.
func (m *Model) Extensions() []lifecycle.Extension {
	out := make([]lifecycle.Extension, 0, len(m.Phases))
	for _, p := range m.Phases {
		out = append(out, lifecycle.Extension{Phase: p.Name, After: p.After})
	}
	return out
}

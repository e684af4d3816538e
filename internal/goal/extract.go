package goal

import (
	"context"

	"github.com/vk/mvngraph/internal/ctxlog"
	"github.com/vk/mvngraph/internal/framework"
	"github.com/vk/mvngraph/internal/model"
)

// New builds a goal, deriving its target name and suggested dependencies.
func New(pluginKey, name, phase, executionID string, category model.Category) model.Goal {
	if executionID == "" {
		executionID = model.DefaultExecutionID
	}
	return model.Goal{
		PluginKey:             pluginKey,
		Name:                  name,
		Phase:                 phase,
		ExecutionID:           executionID,
		TargetName:            TargetName(pluginKey, name),
		Category:              category,
		SuggestedDependencies: SuggestedDependencies(pluginKey, name, category, phase),
	}
}

// Extract returns the goals of a project: for every plugin its useful
// execution goals followed by its framework goals, then the goals implied
// by framework dependencies. Exact repeats are dropped.
func Extract(ctx context.Context, p *model.Project, rules *framework.Registry) []model.Goal {
	logger := ctxlog.FromContext(ctx)

	type identity struct{ plugin, name, phase, execution string }

	var out []model.Goal
	seen := make(map[identity]bool)
	add := func(g model.Goal) {
		key := identity{g.PluginKey, g.Name, g.Phase, g.ExecutionID}
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, g)
	}

	for _, pl := range p.Plugins {
		key := pl.Key()
		for _, ex := range pl.Executions {
			for _, name := range ex.Goals {
				if !Useful(name) {
					logger.Debug("Skipping lifecycle-covered goal.", "plugin", key, "goal", name)
					continue
				}
				add(New(key, name, ex.Phase, ex.ID, Classify(name)))
			}
		}
		for _, c := range rules.PluginGoals(key) {
			add(New(c.PluginKey, c.Goal.Name, "", model.DefaultExecutionID, categoryOf(c.Goal)))
		}
	}

	for _, c := range rules.DependencyGoals(p.Dependencies) {
		add(New(c.PluginKey, c.Goal.Name, "", model.DefaultExecutionID, categoryOf(c.Goal)))
	}

	logger.Debug("Goals extracted.", "project", p.DisplayName(), "count", len(out))
	return out
}

func categoryOf(g framework.Goal) model.Category {
	if g.Category != "" {
		return g.Category
	}
	return Classify(g.Name)
}

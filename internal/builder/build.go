package builder

import (
	"context"
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/vk/mvngraph/internal/ctxlog"
	"github.com/vk/mvngraph/internal/framework"
	"github.com/vk/mvngraph/internal/goal"
	"github.com/vk/mvngraph/internal/lifecycle"
	"github.com/vk/mvngraph/internal/model"
	"github.com/vk/mvngraph/internal/phase"
)

// DependencyIndex answers which of a project's dependencies are produced by
// the workspace.
type DependencyIndex interface {
	InternalDependencies(p *model.Project) []string
}

// Build assembles the target graph of one project. The source layout is
// read from fsys; a nil fsys reports no test or resource directories. A
// panic during assembly is returned as an error for that project.
func Build(ctx context.Context, p *model.Project, fsys billy.Filesystem, deps DependencyIndex, table *lifecycle.Table, rules *framework.Registry) (graph *ProjectGraph, err error) {
	ctx = ctxlog.With(ctx, "project", p.DisplayName())
	logger := ctxlog.FromContext(ctx)
	defer func() {
		if r := recover(); r != nil {
			graph = nil
			err = fmt.Errorf("panic while assembling %s: %v", p.DisplayName(), r)
		}
	}()

	internal := deps.InternalDependencies(p)
	relevant := phase.Relevant(ctx, p, rules)
	goals := goal.Extract(ctx, p, rules)
	logger.Debug("Build: Inputs derived.", "internal_deps", len(internal), "phases", len(relevant), "goals", len(goals))

	// Cross-project edges follow the phases the project declares, before
	// augmentation.
	cross := CrossProjectEdges(internal, relevant, goals)

	byPhase, phases, err := Organize(goals, relevant)
	if err != nil {
		return nil, fmt.Errorf("failed to organize goals of %s: %w", p.DisplayName(), err)
	}
	if added := len(phases) - len(relevant); added > 0 {
		logger.Debug("Build: Added phases needed by goals.", "phases", phases[len(phases)-added:])
	}

	phaseDeps := table.Dependencies(phases)
	goalDeps := GoalDependencies(goals, byPhase, phaseDeps)

	graph = &ProjectGraph{
		Name:                     p.DisplayName(),
		ProjectType:              projectType(p.PackagingOrDefault()),
		SourceLayout:             sourceLayoutOf(fsys, p.Root),
		Tags:                     tags(p),
		ImplicitDependencies:     ImplicitDependencies{Projects: internal},
		RelevantPhases:           phases,
		PluginGoals:              toPluginGoals(goals),
		PhaseDependencies:        phaseDeps,
		CrossProjectDependencies: cross,
		GoalsByPhase:             byPhase,
		GoalDependencies:         goalDeps,
	}
	logger.Debug("Build: Project graph assembled.", "targets", byPhase.Len(), "goal_edges", goalDeps.Len())
	return graph, nil
}

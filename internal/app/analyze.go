package app

import (
	"context"
	"fmt"

	"github.com/vk/mvngraph/internal/builder"
	"github.com/vk/mvngraph/internal/ctxlog"
	"github.com/vk/mvngraph/internal/emitter"
	"github.com/vk/mvngraph/internal/ordered"
	"github.com/vk/mvngraph/internal/registry"
)

// analysis is the debug view of a single manifest.
type analysis struct {
	Project  string `yaml:"project"`
	Manifest string `yaml:"manifest"`
	Degraded bool   `yaml:"degraded"`
	// PhaseChains lists, for every relevant phase, the phases it waits for.
	PhaseChains *ordered.Map[[]string] `yaml:"phaseChains"`
	Graph       *builder.ProjectGraph  `yaml:"graph"`
}

// analyze prints the derived phases, goals and graph of one manifest as
// YAML on stdout. Nothing is written to disk.
func (a *App) analyze(ctx context.Context, manifestPath string) error {
	logger := ctxlog.FromContext(ctx)

	paths, err := a.expand(ctx, []string{manifestPath})
	if err != nil {
		return err
	}
	if len(paths) != 1 {
		return fmt.Errorf("analyze expects a single manifest, %s resolves to %d", manifestPath, len(paths))
	}

	reg, err := registry.FromPaths(ctx, a.provider, paths)
	if err != nil {
		return err
	}
	report := reg.Report()
	if reg.Len() == 0 {
		msgs := append(report.Errors, report.Warnings...)
		return fmt.Errorf("cannot analyze %s: %v", manifestPath, msgs)
	}

	p := reg.Projects()[0]
	graph, err := builder.Build(ctx, p, a.fs, reg, a.table, a.rules)
	if err != nil {
		return err
	}
	logger.Debug("Manifest analyzed.", "project", p.DisplayName(), "goals", len(graph.PluginGoals))

	chains := ordered.New[[]string]()
	for _, ph := range graph.RelevantPhases {
		chains.Set(ph, a.table.Chain(ph))
	}

	return emitter.WriteYAML(a.stdout, analysis{
		Project:     p.DisplayName(),
		Manifest:    p.ManifestPath,
		Degraded:    p.Degraded,
		PhaseChains: chains,
		Graph:       graph,
	})
}

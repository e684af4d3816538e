package hcl

import (
	"context"
	"fmt"

	"github.com/vk/mvngraph/internal/config"
	"github.com/vk/mvngraph/internal/schema"
)

// translate converts the HCL-specific file schema into the agnostic model.
func (l *Loader) translate(ctx context.Context, f *schema.File) (*config.Model, error) {
	m := &config.Model{}
	if f.OutputFile != nil {
		m.Settings.OutputFile = *f.OutputFile
	}
	if f.ManifestCacheSize != nil {
		if *f.ManifestCacheSize <= 0 {
			return nil, fmt.Errorf("manifest_cache_size must be positive, got %d", *f.ManifestCacheSize)
		}
		m.Settings.ManifestCacheSize = *f.ManifestCacheSize
	}

	for _, fw := range f.Frameworks {
		m.Frameworks = append(m.Frameworks, translateFramework(fw))
	}
	for _, ph := range f.Phases {
		after, err := l.stringList(ctx, ph.After, "after")
		if err != nil {
			return nil, fmt.Errorf("phase %q: %w", ph.Name, err)
		}
		m.Phases = append(m.Phases, &config.Phase{Name: ph.Name, After: after})
	}
	return m, nil
}

// translateFramework converts the HCL-specific framework schema into the
// agnostic model.
func translateFramework(s *schema.Framework) *config.Framework {
	f := &config.Framework{
		Name:                    s.Name,
		PluginKeys:              s.PluginKeys,
		PluginKeyContains:       s.PluginKeyContains,
		DependencyGroupPrefixes: s.DependencyGroupPrefixes,
		GoalPluginKey:           s.GoalPluginKey,
		Phases:                  s.Phases,
	}
	for _, g := range s.Goals {
		f.Goals = append(f.Goals, &config.Goal{Name: g.Name, Category: g.Category})
	}
	return f
}

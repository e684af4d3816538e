package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/mvngraph/internal/ctxlog"
)

// Duplicates returns every name claimed by more than one manifest, in
// discovery order, with the manifest paths that claim it.
func (r *Registry) Duplicates() map[string][]string {
	out := make(map[string][]string)
	for _, p := range r.projects {
		name := p.DisplayName()
		if claims := r.byName[name]; len(claims) > 1 {
			if _, done := out[name]; done {
				continue
			}
			paths := make([]string, 0, len(claims))
			for _, c := range claims {
				paths = append(paths, c.ManifestPath)
			}
			out[name] = paths
		}
	}
	return out
}

// validate records a warning for every duplicated name. Duplicates are
// kept; later stages see every project.
func (r *Registry) validate(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	duplicates := r.Duplicates()
	seen := make(map[string]bool)
	for _, p := range r.projects {
		name := p.DisplayName()
		paths, dup := duplicates[name]
		if !dup || seen[name] {
			continue
		}
		seen[name] = true
		logger.Warn("Coordinate declared by more than one manifest.", "name", name, "paths", paths)
		r.report.Warnings = append(r.report.Warnings, fmt.Sprintf("Duplicate coordinate %s in %s", name, strings.Join(paths, ", ")))
	}
}

package builder

import (
	"github.com/vk/mvngraph/internal/model"
	"github.com/vk/mvngraph/internal/ordered"
	"github.com/vk/mvngraph/internal/targetid"
)

var (
	// compileBound phases wait for upstream compilation.
	compileBound = map[string]bool{"compile": true, "test-compile": true, "test": true}
	// packageBound phases wait for upstream packaging.
	packageBound = map[string]bool{
		"package":          true,
		"verify":           true,
		"install":          true,
		"deploy":           true,
		"integration-test": true,
	}
)

// CrossProjectEdges returns, for each local target, the upstream targets it
// waits for. Phases come first in relevant order, then goals keyed by target
// name. The result is empty when there are no internal dependencies.
func CrossProjectEdges(internalDeps, relevant []string, goals []model.Goal) *ordered.Map[[]string] {
	out := ordered.New[[]string]()
	if len(internalDeps) == 0 {
		return out
	}

	for _, ph := range relevant {
		switch {
		case compileBound[ph]:
			out.Set(ph, references(internalDeps, targetid.CompileChain))
		case packageBound[ph]:
			out.Set(ph, references(internalDeps, targetid.PackageChain))
		}
	}

	for _, g := range goals {
		if g.TargetName == "" {
			continue
		}
		switch g.Category {
		case model.CategoryServe, model.CategoryTest:
			out.Set(g.TargetName, references(internalDeps, targetid.CompileChain))
		case model.CategoryBuild, model.CategoryDeploy:
			out.Set(g.TargetName, references(internalDeps, targetid.PackageChain))
		}
	}
	return out
}

func references(deps, chain []string) []string {
	out := make([]string, 0, len(deps))
	for _, dep := range deps {
		out = append(out, targetid.New(dep, chain...).String())
	}
	return out
}

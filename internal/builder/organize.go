package builder

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/vk/mvngraph/internal/model"
	"github.com/vk/mvngraph/internal/ordered"
)

// ErrNoConvergence is returned when phase augmentation keeps finding missing
// phases. A single augmentation is enough for every known goal shape.
var ErrNoConvergence = errors.New("phase augmentation did not converge")

// maxAugmentations bounds the number of re-assignment passes.
const maxAugmentations = 8

// fallbacks lists acceptable substitutes for a phase, best first.
var fallbacks = map[string][]string{
	"test-compile":     {"compile", "validate"},
	"test":             {"compile", "validate"},
	"package":          {"compile", "validate"},
	"verify":           {"package", "compile", "validate"},
	"install":          {"package", "compile", "validate"},
	"deploy":           {"install", "package", "compile", "validate"},
	"integration-test": {"package", "compile", "validate"},
}

// Organize places every goal into exactly one phase. Phases that goals
// strictly need are appended to the relevant set until none are missing.
// It returns the goals by phase and the final phase set; the input slice is
// never modified.
func Organize(goals []model.Goal, relevant []string) (*ordered.Map[[]string], []string, error) {
	phases := dedupe(relevant)
	for pass := 0; pass <= maxAugmentations; pass++ {
		byPhase := assign(goals, phases)
		missing := missingPhases(goals, phases)
		if len(missing) == 0 {
			return byPhase, phases, nil
		}
		phases = append(phases, missing...)
	}
	return nil, nil, fmt.Errorf("%w after %d passes", ErrNoConvergence, maxAugmentations)
}

// assign runs one full assignment pass over a fixed phase set.
func assign(goals []model.Goal, phases []string) *ordered.Map[[]string] {
	available := make(map[string]bool, len(phases))
	byPhase := ordered.New[[]string]()
	for _, ph := range phases {
		available[ph] = true
		byPhase.Set(ph, []string{})
	}

	for _, g := range goals {
		if g.TargetName == "" {
			continue
		}
		ph, ok := placement(g, available)
		if !ok {
			continue
		}
		names, _ := byPhase.Get(ph)
		if slices.Contains(names, g.TargetName) {
			continue
		}
		byPhase.Set(ph, append(names, g.TargetName))
	}
	return byPhase
}

// placement picks the phase of a goal: its bound phase, then its heuristic
// phase, then a substitute. ok is false when the goal has nowhere to go.
func placement(g model.Goal, available map[string]bool) (string, bool) {
	if bound := strings.TrimSpace(g.Phase); bound != "" && available[bound] {
		return bound, true
	}
	ph := heuristicPhase(g)
	if available[ph] {
		return ph, true
	}
	return fallbackPhase(ph, available)
}

// heuristicPhase is where a goal belongs judging by its category and name.
func heuristicPhase(g model.Goal) string {
	switch g.Category {
	case model.CategoryBuild:
		switch {
		case strings.Contains(g.Name, "testCompile"):
			return "test-compile"
		case strings.Contains(g.Name, "compile") && !strings.Contains(g.Name, "test"):
			return "compile"
		case strings.Contains(g.PluginKey, "compiler"):
			if strings.Contains(g.Name, "test") {
				return "test-compile"
			}
			return "compile"
		}
		return "package"
	case model.CategoryTest:
		return "test"
	case model.CategoryServe:
		return "compile"
	case model.CategoryDeploy:
		return "deploy"
	case model.CategoryUtility:
		return "validate"
	}

	switch {
	case strings.Contains(g.Name, "compile"):
		if strings.Contains(g.Name, "test") {
			return "test-compile"
		}
		return "compile"
	case strings.Contains(g.Name, "test"):
		return "test"
	}
	return "package"
}

// idealPhase is the phase a goal strictly needs, or "" when any substitute
// will do.
func idealPhase(g model.Goal) string {
	switch g.Category {
	case model.CategoryBuild:
		switch {
		case strings.Contains(g.Name, "testCompile"):
			return "test-compile"
		case strings.Contains(g.Name, "compile") && !strings.Contains(g.Name, "test"):
			return "compile"
		}
	case model.CategoryTest:
		return "test"
	}
	return ""
}

func fallbackPhase(ideal string, available map[string]bool) (string, bool) {
	for _, ph := range fallbacks[ideal] {
		if available[ph] {
			return ph, true
		}
	}

	switch {
	case strings.Contains(ideal, "test"):
		if available["compile"] {
			return "compile", true
		}
	case strings.Contains(ideal, "compile"):
		if available["validate"] {
			return "validate", true
		}
	}

	if available["validate"] {
		return "validate", true
	}
	return "", false
}

// missingPhases returns the ideal phases absent from phases, in goal order.
func missingPhases(goals []model.Goal, phases []string) []string {
	var missing []string
	for _, g := range goals {
		if g.TargetName == "" {
			continue
		}
		ph := idealPhase(g)
		if ph == "" || slices.Contains(phases, ph) || slices.Contains(missing, ph) {
			continue
		}
		missing = append(missing, ph)
	}
	return missing
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

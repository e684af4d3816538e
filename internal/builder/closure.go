package builder

import (
	"slices"

	"github.com/vk/mvngraph/internal/model"
	"github.com/vk/mvngraph/internal/ordered"
)

// GoalDependencies links every goal to the goals of its nearest non-empty
// predecessor phases. Empty phases are walked through. Goals without
// prerequisites get no entry.
func GoalDependencies(goals []model.Goal, goalsByPhase, phaseDeps *ordered.Map[[]string]) *ordered.Map[[]string] {
	out := ordered.New[[]string]()
	for _, g := range goals {
		if g.TargetName == "" || out.Has(g.TargetName) {
			continue
		}
		ph, ok := phaseOf(g.TargetName, goalsByPhase)
		if !ok {
			continue
		}

		var prereqs []string
		visited := make(map[string]bool)
		collectPrerequisites(ph, phaseDeps, goalsByPhase, visited, &prereqs)

		prereqs = slices.DeleteFunc(dedupe(prereqs), func(name string) bool { return name == g.TargetName })
		if len(prereqs) > 0 {
			out.Set(g.TargetName, prereqs)
		}
	}
	return out
}

// phaseOf returns the first phase holding the target.
func phaseOf(target string, goalsByPhase *ordered.Map[[]string]) (string, bool) {
	for ph, names := range goalsByPhase.All() {
		if slices.Contains(names, target) {
			return ph, true
		}
	}
	return "", false
}

func collectPrerequisites(phase string, phaseDeps, goalsByPhase *ordered.Map[[]string], visited map[string]bool, out *[]string) {
	if visited[phase] {
		return
	}
	visited[phase] = true

	preds, _ := phaseDeps.Get(phase)
	for _, pred := range preds {
		if names, _ := goalsByPhase.Get(pred); len(names) > 0 {
			*out = append(*out, names...)
			continue
		}
		collectPrerequisites(pred, phaseDeps, goalsByPhase, visited, out)
	}
}

package builder

import (
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/vk/mvngraph/internal/fsutil"
	"github.com/vk/mvngraph/internal/model"
	"github.com/vk/mvngraph/internal/ordered"
)

// Project types.
const (
	ProjectTypeApplication = "application"
	ProjectTypeLibrary     = "library"
)

// ImplicitDependencies lists the workspace projects a project depends on.
type ImplicitDependencies struct {
	Projects []string `json:"projects" yaml:"projects"`
}

// Conventional source directories, relative to the project root.
const (
	MainSourceDir   = "src/main/java"
	TestSourceDir   = "src/test/java"
	MainResourceDir = "src/main/resources"
)

// SourceLayout describes the conventional source directories of a project.
type SourceLayout struct {
	SourceRoot   string `json:"sourceRoot" yaml:"sourceRoot"`
	HasTests     bool   `json:"hasTests" yaml:"hasTests"`
	HasResources bool   `json:"hasResources" yaml:"hasResources"`
}

// PluginGoal is the published form of a goal.
type PluginGoal struct {
	PluginKey string `json:"pluginKey" yaml:"pluginKey"`
	Goal      string `json:"goal" yaml:"goal"`
	// Phase is nil for goals that are not explicitly bound.
	Phase                 *string  `json:"phase" yaml:"phase"`
	ExecutionID           string   `json:"executionId" yaml:"executionId"`
	TargetName            string   `json:"targetName" yaml:"targetName"`
	TargetType            string   `json:"targetType" yaml:"targetType"`
	SuggestedDependencies []string `json:"suggestedDependencies" yaml:"suggestedDependencies"`
}

// ProjectGraph is the assembled target graph of one project. It is built
// once and never mutated afterwards.
type ProjectGraph struct {
	Name                     string `json:"name" yaml:"name"`
	ProjectType              string `json:"projectType" yaml:"projectType"`
	SourceLayout             `yaml:",inline"`
	Tags                     []string               `json:"tags" yaml:"tags"`
	ImplicitDependencies     ImplicitDependencies   `json:"implicitDependencies" yaml:"implicitDependencies"`
	RelevantPhases           []string               `json:"relevantPhases" yaml:"relevantPhases"`
	PluginGoals              []PluginGoal           `json:"pluginGoals" yaml:"pluginGoals"`
	PhaseDependencies        *ordered.Map[[]string] `json:"phaseDependencies" yaml:"phaseDependencies"`
	CrossProjectDependencies *ordered.Map[[]string] `json:"crossProjectDependencies" yaml:"crossProjectDependencies"`
	GoalsByPhase             *ordered.Map[[]string] `json:"goalsByPhase" yaml:"goalsByPhase"`
	GoalDependencies         *ordered.Map[[]string] `json:"goalDependencies" yaml:"goalDependencies"`
}

func toPluginGoals(goals []model.Goal) []PluginGoal {
	out := make([]PluginGoal, 0, len(goals))
	for _, g := range goals {
		pg := PluginGoal{
			PluginKey:             g.PluginKey,
			Goal:                  g.Name,
			ExecutionID:           g.ExecutionID,
			TargetName:            g.TargetName,
			TargetType:            string(g.Category),
			SuggestedDependencies: g.SuggestedDependencies,
		}
		if pg.SuggestedDependencies == nil {
			pg.SuggestedDependencies = []string{}
		}
		if g.Bound() {
			phase := g.Phase
			pg.Phase = &phase
		}
		out = append(out, pg)
	}
	return out
}

// projectType classifies a packaging as deployable or not.
func projectType(packaging string) string {
	switch packaging {
	case model.PackagingJar, model.PackagingWar, model.PackagingEar:
		return ProjectTypeApplication
	}
	return ProjectTypeLibrary
}

func tags(p *model.Project) []string {
	packaging := p.PackagingOrDefault()
	group := p.GroupID
	if group == "" {
		group = p.ParentGroupID
	}
	if group == "" {
		group = model.UnknownGroup
	}
	out := []string{"maven:" + group, "maven:" + packaging}
	if packaging == model.PackagingMavenPlugin {
		out = append(out, "maven:plugin")
	}
	return out
}

// sourceLayoutOf reports the source layout of the project rooted at root.
func sourceLayoutOf(fsys billy.Filesystem, root string) SourceLayout {
	layout := SourceLayout{SourceRoot: path.Join(root, MainSourceDir)}
	if fsys == nil {
		return layout
	}
	layout.HasTests = fsutil.IsDir(fsys, path.Join(root, TestSourceDir))
	layout.HasResources = fsutil.IsDir(fsys, path.Join(root, MainResourceDir))
	return layout
}

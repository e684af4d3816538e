package builder

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/mvngraph/internal/framework"
	"github.com/vk/mvngraph/internal/lifecycle"
	"github.com/vk/mvngraph/internal/model"
	"github.com/vk/mvngraph/internal/phase"
	"github.com/vk/mvngraph/internal/testutil"
	"gopkg.in/yaml.v3"
)

type staticDeps []string

func (s staticDeps) InternalDependencies(*model.Project) []string { return s }

func compilerProject() *model.Project {
	return &model.Project{
		Coordinate:   model.Coordinate{GroupID: "com.acme", ArtifactID: "app"},
		ManifestPath: "app/pom.xml",
		Root:         "app",
		Dependencies: []model.Dependency{{GroupID: "com.acme", ArtifactID: "lib", Scope: "compile"}},
		Plugins: []model.Plugin{
			{GroupID: model.DefaultPluginGroup, ArtifactID: "maven-compiler-plugin"},
			{
				GroupID:    model.DefaultPluginGroup,
				ArtifactID: "maven-source-plugin",
				Executions: []model.Execution{{ID: "attach-sources", Phase: "verify", Goals: []string{"jar-no-fork"}}},
			},
		},
	}
}

func TestBuild_JarProject(t *testing.T) {
	ctx, _ := testutil.Context(t)

	graph, err := Build(ctx, compilerProject(), nil, staticDeps{"com.acme:lib"}, lifecycle.Default(), framework.NewRegistry())
	require.NoError(t, err)

	assert.Equal(t, "com.acme:app", graph.Name)
	assert.Equal(t, ProjectTypeApplication, graph.ProjectType)
	assert.Equal(t, []string{"maven:com.acme", "maven:jar"}, graph.Tags)
	assert.Equal(t, []string{"com.acme:lib"}, graph.ImplicitDependencies.Projects)
	assert.Equal(t, []string{"clean", "validate", "compile", "test-compile", "test", "package", "verify", "install", "deploy"}, graph.RelevantPhases)

	require.Len(t, graph.PluginGoals, 2)
	assert.Equal(t, "maven-compiler:compile", graph.PluginGoals[0].TargetName)
	assert.Nil(t, graph.PluginGoals[0].Phase)
	assert.Equal(t, "maven-compiler:testCompile", graph.PluginGoals[1].TargetName)

	compile, _ := graph.GoalsByPhase.Get("compile")
	assert.Equal(t, []string{"maven-compiler:compile"}, compile)
	testCompile, _ := graph.GoalsByPhase.Get("test-compile")
	assert.Equal(t, []string{"maven-compiler:testCompile"}, testCompile)

	assert.Equal(t, map[string][]string{"maven-compiler:testCompile": {"maven-compiler:compile"}}, plain(graph.GoalDependencies))

	crossCompile, _ := graph.CrossProjectDependencies.Get("compile")
	assert.Equal(t, []string{"com.acme:lib:compile|validate"}, crossCompile)
	crossGoal, _ := graph.CrossProjectDependencies.Get("maven-compiler:compile")
	assert.Equal(t, []string{"com.acme:lib:package|compile|validate"}, crossGoal)

	assert.Equal(t, lifecycle.Default().Len(), graph.PhaseDependencies.Len())
	preds, _ := graph.PhaseDependencies.Get("test")
	assert.Equal(t, []string{"process-test-classes"}, preds)
}

func TestBuild_AggregatorNeverCompiles(t *testing.T) {
	ctx, _ := testutil.Context(t)
	p := &model.Project{
		Coordinate: model.Coordinate{GroupID: "com.acme", ArtifactID: "parent"},
		Packaging:  model.PackagingPOM,
		Modules:    []string{"app"},
	}

	graph, err := Build(ctx, p, nil, staticDeps{}, lifecycle.Default(), framework.NewRegistry())
	require.NoError(t, err)

	assert.Equal(t, ProjectTypeLibrary, graph.ProjectType)
	assert.NotContains(t, graph.RelevantPhases, "compile")
	assert.Equal(t, 0, graph.CrossProjectDependencies.Len())
	assert.Equal(t, 0, graph.GoalDependencies.Len())
	assert.Empty(t, graph.PluginGoals)
	assert.NotNil(t, graph.PluginGoals)
}

func TestBuild_AggregatorWithCompilerGoals(t *testing.T) {
	ctx, _ := testutil.Context(t)
	p := &model.Project{
		Coordinate: model.Coordinate{GroupID: "com.acme", ArtifactID: "parent"},
		Packaging:  model.PackagingPOM,
		Modules:    []string{"app"},
		Plugins:    []model.Plugin{{GroupID: model.DefaultPluginGroup, ArtifactID: "maven-compiler-plugin"}},
	}

	// The packaging never asks for compile; the declared compiler goals do.
	assert.NotContains(t, phase.Relevant(ctx, p, framework.NewRegistry()), "compile")

	graph, err := Build(ctx, p, nil, staticDeps{"com.acme:lib"}, lifecycle.Default(), framework.NewRegistry())
	require.NoError(t, err)
	assert.Equal(t, []string{"clean", "validate", "install", "deploy", "compile", "test-compile"}, graph.RelevantPhases)

	compile, _ := graph.GoalsByPhase.Get("compile")
	assert.Equal(t, []string{"maven-compiler:compile"}, compile)
	assert.False(t, graph.CrossProjectDependencies.Has("compile"), "phase edges follow the packaging phases")
}

func TestBuild_MavenPluginTags(t *testing.T) {
	ctx, _ := testutil.Context(t)
	p := &model.Project{
		Coordinate:    model.Coordinate{ArtifactID: "acme-maven-plugin"},
		ParentGroupID: "com.acme",
		Packaging:     model.PackagingMavenPlugin,
	}

	graph, err := Build(ctx, p, nil, staticDeps{}, lifecycle.Default(), framework.NewRegistry())
	require.NoError(t, err)
	assert.Equal(t, []string{"maven:com.acme", "maven:maven-plugin", "maven:plugin"}, graph.Tags)
	assert.Equal(t, ProjectTypeLibrary, graph.ProjectType)
}

func TestBuild_SourceLayout(t *testing.T) {
	fsys := testutil.Workspace(t, map[string]string{
		"app/pom.xml":                             "<project/>",
		"app/src/main/java/App.java":              "class App {}",
		"app/src/test/java/AppTest.java":          "class AppTest {}",
		"app/src/main/resources/application.yaml": "",
		"lib/pom.xml":                             "<project/>",
		"lib/src/main/java/Lib.java":              "class Lib {}",
		"lib/src/test/resources/fixture.txt":      "",
	})

	testCases := []struct {
		name string
		root string
		want SourceLayout
	}{
		{name: "tests and resources", root: "app", want: SourceLayout{SourceRoot: "app/src/main/java", HasTests: true, HasResources: true}},
		{name: "sources only", root: "lib", want: SourceLayout{SourceRoot: "lib/src/main/java"}},
		{name: "workspace root", root: ".", want: SourceLayout{SourceRoot: "src/main/java"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, _ := testutil.Context(t)
			p := compilerProject()
			p.Root = tc.root

			graph, err := Build(ctx, p, fsys, staticDeps{}, lifecycle.Default(), framework.NewRegistry())
			require.NoError(t, err)
			assert.Equal(t, tc.want, graph.SourceLayout)
		})
	}
}

func TestBuild_LogsProjectOnce(t *testing.T) {
	ctx, logs := testutil.Context(t)

	_, err := Build(ctx, compilerProject(), nil, staticDeps{}, lifecycle.Default(), framework.NewRegistry())
	require.NoError(t, err)

	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		if strings.Contains(line, "Project graph assembled.") {
			assert.Equal(t, 1, strings.Count(line, "project=com.acme:app"), line)
			return
		}
	}
	t.Fatalf("no assembly log line in:\n%s", logs.String())
}

func TestBuild_RecoversFromPanics(t *testing.T) {
	ctx, _ := testutil.Context(t)

	graph, err := Build(ctx, compilerProject(), nil, staticDeps{}, lifecycle.Default(), nil)
	require.Error(t, err)
	assert.Nil(t, graph)
	assert.Contains(t, err.Error(), "panic while assembling com.acme:app")
}

func TestProjectGraph_Serialization(t *testing.T) {
	ctx, _ := testutil.Context(t)

	graph, err := Build(ctx, compilerProject(), nil, staticDeps{"com.acme:lib"}, lifecycle.Default(), framework.NewRegistry())
	require.NoError(t, err)

	t.Run("json", func(t *testing.T) {
		data, err := json.Marshal(graph)
		require.NoError(t, err)

		var decoded struct {
			Name        string `json:"name"`
			PluginGoals []struct {
				Phase                 *string  `json:"phase"`
				TargetType            string   `json:"targetType"`
				SuggestedDependencies []string `json:"suggestedDependencies"`
			} `json:"pluginGoals"`
			GoalsByPhase map[string][]string `json:"goalsByPhase"`
		}
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "com.acme:app", decoded.Name)
		require.Len(t, decoded.PluginGoals, 2)
		assert.Nil(t, decoded.PluginGoals[0].Phase)
		assert.Equal(t, "build", decoded.PluginGoals[0].TargetType)
		assert.Contains(t, string(data), `"phase":null`)
		assert.Contains(t, string(data), `"projectType":"application","sourceRoot":"app/src/main/java","hasTests":false,"hasResources":false`)
		assert.Contains(t, string(data), `"goalsByPhase":{"clean":[],"validate":[],"compile":["maven-compiler:compile"]`)
	})

	t.Run("yaml", func(t *testing.T) {
		data, err := yaml.Marshal(graph)
		require.NoError(t, err)
		assert.Contains(t, string(data), "com.acme:app")
		assert.Contains(t, string(data), "projectType: application")
		assert.Contains(t, string(data), "sourceRoot: app/src/main/java")
		assert.Contains(t, string(data), "hasTests: false")
	})
}

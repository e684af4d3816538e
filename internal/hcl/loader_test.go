package hcl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/mvngraph/internal/config"
	"github.com/vk/mvngraph/internal/framework"
	"github.com/vk/mvngraph/internal/lifecycle"
	"github.com/vk/mvngraph/internal/model"
	"github.com/vk/mvngraph/internal/testutil"
)

const micronaut = `
output_file         = "${workspace.root}/build/graph.json"
manifest_cache_size = 64

framework "micronaut" {
  plugin_keys               = ["io.micronaut.maven:micronaut-maven-plugin"]
  dependency_group_prefixes = ["io.micronaut"]
  goal_plugin_key           = "io.micronaut.maven:micronaut-maven-plugin"
  phases                    = ["micronaut:run"]

  goal "run" {
    category = "serve"
  }
  goal "docker" {}
}

framework "exec" {
  plugin_keys = ["${groups.codehaus_mojo}:exec-maven-plugin"]
  goal "java" {
    category = "utility"
  }
}

phase "micronaut:run" {
  after = "compile"
}

phase "smoke-test" {
  after = ["package", "micronaut:run"]
}
`

func TestLoader_Load(t *testing.T) {
	ctx, _ := testutil.Context(t)
	fsys := testutil.Workspace(t, map[string]string{"mvngraph.hcl": micronaut})

	loader, err := NewLoader(fsys, "/work")
	require.NoError(t, err)

	m, err := loader.Load(ctx, "mvngraph.hcl")
	require.NoError(t, err)

	assert.Equal(t, "/work/build/graph.json", m.Settings.OutputFile)
	assert.Equal(t, 64, m.Settings.ManifestCacheSize)

	require.Len(t, m.Frameworks, 2)
	mn := m.Frameworks[0]
	assert.Equal(t, "micronaut", mn.Name)
	assert.Equal(t, []string{"io.micronaut.maven:micronaut-maven-plugin"}, mn.PluginKeys)
	assert.Equal(t, []string{"micronaut:run"}, mn.Phases)
	require.Len(t, mn.Goals, 2)
	assert.Equal(t, config.Goal{Name: "run", Category: "serve"}, *mn.Goals[0])
	assert.Equal(t, config.Goal{Name: "docker"}, *mn.Goals[1])

	assert.Equal(t, []string{"org.codehaus.mojo:exec-maven-plugin"}, m.Frameworks[1].PluginKeys)

	require.Len(t, m.Phases, 2)
	assert.Equal(t, config.Phase{Name: "micronaut:run", After: []string{"compile"}}, *m.Phases[0])
	assert.Equal(t, config.Phase{Name: "smoke-test", After: []string{"package", "micronaut:run"}}, *m.Phases[1])
}

func TestLoader_TranslatesIntoRulesAndExtensions(t *testing.T) {
	ctx, _ := testutil.Context(t)
	fsys := testutil.Workspace(t, map[string]string{"mvngraph.hcl": micronaut})

	loader, err := NewLoader(fsys, "/work")
	require.NoError(t, err)
	m, err := loader.Load(ctx, "mvngraph.hcl")
	require.NoError(t, err)

	rules, err := m.Rules()
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "io.micronaut.maven:micronaut-maven-plugin", rules[0].DependencyPluginKey)
	assert.Equal(t, []framework.Goal{{Name: "run", Category: model.CategoryServe}, {Name: "docker"}}, rules[0].Goals)

	table, err := lifecycle.New(m.Extensions())
	require.NoError(t, err)
	assert.Equal(t, []string{"compile"}, table.Predecessors("micronaut:run"))
	assert.Equal(t, []string{"package", "micronaut:run"}, table.Predecessors("smoke-test"))
}

func TestLoader_MergesFilesInOrder(t *testing.T) {
	ctx, _ := testutil.Context(t)
	fsys := testutil.Workspace(t, map[string]string{
		"a.hcl": `output_file = "a.json"
framework "one" {
  plugin_key_contains = ["one-plugin"]
}`,
		"b.hcl": `output_file = "b.json"
framework "two" {
  plugin_key_contains = ["two-plugin"]
}`,
	})

	loader, err := NewLoader(fsys, ".")
	require.NoError(t, err)

	m, err := loader.Load(ctx, "a.hcl", "missing.hcl", "b.hcl")
	require.NoError(t, err)
	assert.Equal(t, "b.json", m.Settings.OutputFile)
	assert.Equal(t, 0, m.Settings.ManifestCacheSize)
	require.Len(t, m.Frameworks, 2)
	assert.Equal(t, "one", m.Frameworks[0].Name)
	assert.Equal(t, "two", m.Frameworks[1].Name)
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"syntax error", `framework "x" {`, "failed to parse HCL file"},
		{"unknown variable", `output_file = nope.value`, "failed to decode HCL file"},
		{"misspelled attribute", `ouput_file = "out.json"`, `Unsupported argument; An argument named "ouput_file" is not expected here`},
		{"unknown block", `plugin "x" {}`, "Unsupported block type"},
		{"bad cache size", `manifest_cache_size = 0`, "manifest_cache_size must be positive"},
		{"bad after type", `phase "p" {
  after = { a = 1 }
}`, "cannot convert"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, _ := testutil.Context(t)
			fsys := testutil.Workspace(t, map[string]string{"mvngraph.hcl": tc.src})
			loader, err := NewLoader(fsys, ".")
			require.NoError(t, err)

			_, err = loader.Load(ctx, "mvngraph.hcl")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

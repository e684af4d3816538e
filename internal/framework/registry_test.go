package framework

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/mvngraph/internal/model"
)

func plugin(group, artifact string) model.Plugin {
	return model.Plugin{GroupID: group, ArtifactID: artifact}
}

func TestRegistry_Phases(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()

	testCases := []struct {
		name    string
		project *model.Project
		want    []string
	}{
		{
			name:    "plain project",
			project: &model.Project{},
			want:    nil,
		},
		{
			name:    "spring boot plugin",
			project: &model.Project{Plugins: []model.Plugin{plugin("org.springframework.boot", "spring-boot-maven-plugin")}},
			want:    []string{"spring-boot:run", "spring-boot:build-image"},
		},
		{
			name: "quarkus dependency",
			project: &model.Project{Dependencies: []model.Dependency{
				{GroupID: "io.quarkus", ArtifactID: "quarkus-resteasy"},
			}},
			want: []string{"quarkus:dev", "quarkus:build", "generate-code"},
		},
		{
			name: "surefire and failsafe",
			project: &model.Project{Plugins: []model.Plugin{
				plugin("", "maven-surefire-plugin"),
				plugin("org.apache.maven.plugins", "maven-failsafe-plugin"),
			}},
			want: []string{"integration-test", "integration-test"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, reg.Phases(ctx, tc.project))
		})
	}
}

func TestRegistry_PluginGoals(t *testing.T) {
	reg := NewRegistry()

	goals := reg.PluginGoals(SpringBootPluginKey)
	require.Len(t, goals, 3)
	assert.Equal(t, Contribution{Rule: "spring-boot-plugin", PluginKey: SpringBootPluginKey, Goal: Goal{Name: "run", Category: model.CategoryServe}}, goals[0])

	goals = reg.PluginGoals("com.github.os72:protoc-jar-maven-plugin")
	assert.Empty(t, goals)

	goals = reg.PluginGoals("org.xolstice.maven.plugins:protobuf-maven-plugin")
	require.Len(t, goals, 1)
	assert.Equal(t, "generate", goals[0].Goal.Name)

	goals = reg.PluginGoals("io.fabric8:docker-maven-plugin")
	require.Len(t, goals, 2)
	assert.Equal(t, model.CategoryDeploy, goals[1].Goal.Category)

	assert.Len(t, reg.PluginGoals(CompilerPluginKey), 2)
	assert.Len(t, reg.PluginGoals(FailsafePluginKey), 2)
}

func TestRegistry_DependencyGoals(t *testing.T) {
	reg := NewRegistry()

	goals := reg.DependencyGoals([]model.Dependency{
		{GroupID: "org.springframework.boot", ArtifactID: "spring-boot-starter-web"},
		{GroupID: "io.quarkus.arc", ArtifactID: "arc"},
	})
	require.Len(t, goals, 7)
	assert.Equal(t, QuarkusPluginKey, goals[0].PluginKey, "rules are evaluated in registry order")
	assert.Equal(t, SpringBootPluginKey, goals[4].PluginKey)

	assert.Empty(t, reg.DependencyGoals([]model.Dependency{{GroupID: "org.slf4j", ArtifactID: "slf4j-api"}}))
}

func TestNewRegistry_ExtraRules(t *testing.T) {
	reg := NewRegistry(Rule{
		Name:                    "micronaut",
		PluginKeys:              []string{"io.micronaut.maven:micronaut-maven-plugin"},
		DependencyGroupPrefixes: []string{"io.micronaut"},
		Phases:                  []string{"micronaut:run"},
		Goals:                   []Goal{{Name: "run", Category: model.CategoryServe}},
	})

	rules := reg.Rules()
	assert.Equal(t, "micronaut", rules[len(rules)-1].Name)

	p := &model.Project{Dependencies: []model.Dependency{{GroupID: "io.micronaut", ArtifactID: "micronaut-http"}}}
	assert.Equal(t, []string{"micronaut:run"}, reg.Phases(context.Background(), p))
	assert.Empty(t, reg.DependencyGoals(p.Dependencies), "no canonical plugin key, no dependency goals")
}

package framework

import (
	"strings"

	"github.com/vk/mvngraph/internal/model"
)

// Well-known plugin keys.
const (
	SpringBootPluginKey = "org.springframework.boot:spring-boot-maven-plugin"
	QuarkusPluginKey    = "io.quarkus:quarkus-maven-plugin"
	CompilerPluginKey   = "org.apache.maven.plugins:maven-compiler-plugin"
	SurefirePluginKey   = "org.apache.maven.plugins:maven-surefire-plugin"
	FailsafePluginKey   = "org.apache.maven.plugins:maven-failsafe-plugin"
)

// Goal is a goal contributed by a framework.
type Goal struct {
	Name     string
	Category model.Category
}

// Rule is a framework signature.
type Rule struct {
	Name string

	// PluginKeys match plugin keys exactly.
	PluginKeys []string
	// PluginKeyContains match any plugin key containing one of the values.
	PluginKeyContains []string
	// DependencyGroupPrefixes match declared dependencies by groupId prefix.
	DependencyGroupPrefixes []string
	// DependencyPluginKey is the plugin key reported for goals contributed
	// through a dependency match. Dependency matches contribute no goals
	// when it is empty.
	DependencyPluginKey string

	Phases []string
	Goals  []Goal
}

// MatchesPlugin reports whether the plugin key carries the signature.
func (r Rule) MatchesPlugin(key string) bool {
	for _, k := range r.PluginKeys {
		if key == k {
			return true
		}
	}
	for _, s := range r.PluginKeyContains {
		if strings.Contains(key, s) {
			return true
		}
	}
	return false
}

// MatchesDependencies reports whether any dependency carries the signature.
func (r Rule) MatchesDependencies(deps []model.Dependency) bool {
	for _, d := range deps {
		for _, prefix := range r.DependencyGroupPrefixes {
			if strings.HasPrefix(d.GroupID, prefix) {
				return true
			}
		}
	}
	return false
}

// Matches reports whether the project carries the signature through any
// plugin or dependency.
func (r Rule) Matches(p *model.Project) bool {
	for _, pl := range p.Plugins {
		if r.MatchesPlugin(pl.Key()) {
			return true
		}
	}
	return r.MatchesDependencies(p.Dependencies)
}

var springBootGoals = []Goal{
	{Name: "run", Category: model.CategoryServe},
	{Name: "build-image", Category: model.CategoryBuild},
	{Name: "repackage", Category: model.CategoryBuild},
}

var quarkusGoals = []Goal{
	{Name: "dev", Category: model.CategoryServe},
	{Name: "build", Category: model.CategoryBuild},
	{Name: "generate-code", Category: model.CategoryBuild},
	{Name: "test", Category: model.CategoryTest},
}

var springBootPhases = []string{"spring-boot:run", "spring-boot:build-image"}

var quarkusPhases = []string{"quarkus:dev", "quarkus:build", "generate-code"}

// Builtin returns the built-in rules in evaluation order.
func Builtin() []Rule {
	return []Rule{
		{
			Name:       "spring-boot-plugin",
			PluginKeys: []string{SpringBootPluginKey},
			Phases:     springBootPhases,
			Goals:      springBootGoals,
		},
		{
			Name:              "quarkus-plugin",
			PluginKeys:        []string{QuarkusPluginKey},
			PluginKeyContains: []string{"quarkus-maven-plugin"},
			Phases:            quarkusPhases,
			Goals:             quarkusGoals,
		},
		{
			Name:              "docker",
			PluginKeys:        []string{"com.spotify:dockerfile-maven-plugin", "io.fabric8:docker-maven-plugin"},
			PluginKeyContains: []string{"docker-maven-plugin"},
			Goals: []Goal{
				{Name: "build", Category: model.CategoryBuild},
				{Name: "push", Category: model.CategoryDeploy},
			},
		},
		{
			Name:              "codegen",
			PluginKeys:        []string{"org.openapitools:openapi-generator-maven-plugin"},
			PluginKeyContains: []string{"protobuf", "avro", "generator"},
			Goals:             []Goal{{Name: "generate", Category: model.CategoryBuild}},
		},
		{
			Name:       "compiler",
			PluginKeys: []string{CompilerPluginKey},
			Goals: []Goal{
				{Name: "compile", Category: model.CategoryBuild},
				{Name: "testCompile", Category: model.CategoryBuild},
			},
		},
		{
			Name:       "surefire",
			PluginKeys: []string{SurefirePluginKey},
			Phases:     []string{"integration-test"},
			Goals:      []Goal{{Name: "test", Category: model.CategoryTest}},
		},
		{
			Name:       "failsafe",
			PluginKeys: []string{FailsafePluginKey},
			Phases:     []string{"integration-test"},
			Goals: []Goal{
				{Name: "integration-test", Category: model.CategoryTest},
				{Name: "verify", Category: model.CategoryTest},
			},
		},
		{
			Name:                    "quarkus-dependency",
			DependencyGroupPrefixes: []string{"io.quarkus"},
			DependencyPluginKey:     QuarkusPluginKey,
			Phases:                  quarkusPhases,
			Goals:                   quarkusGoals,
		},
		{
			Name:                    "spring-boot-dependency",
			DependencyGroupPrefixes: []string{"org.springframework.boot"},
			DependencyPluginKey:     SpringBootPluginKey,
			Phases:                  springBootPhases,
			Goals:                   springBootGoals,
		},
	}
}

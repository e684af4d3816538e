package goal

import (
	"strings"

	"github.com/vk/mvngraph/internal/model"
)

// Target names shared by every plugin.
const (
	ServeTarget = "serve"
	BuildTarget = "build"
)

// notUseful are goals covered by the lifecycle phases themselves.
var notUseful = map[string]bool{
	"compile":              true,
	"testCompile":          true,
	"process-classes":      true,
	"process-test-classes": true,
}

var serveGoals = map[string]bool{"run": true, "dev": true, "serve": true}

var buildGoals = map[string]bool{
	"build":        true,
	"package":      true,
	"compile":      true,
	"repackage":    true,
	"build-image":  true,
	"docker-build": true,
}

// Useful reports whether an explicitly bound goal should become a target.
func Useful(goal string) bool {
	switch {
	case notUseful[goal]:
		return false
	case serveGoals[goal]:
		return true
	case buildGoals[goal], strings.Contains(goal, "generate"):
		return true
	case strings.Contains(goal, "test"):
		return true
	case goal == "push", strings.Contains(goal, "deploy"):
		return true
	}
	return false
}

// Classify returns the category of a goal. Patterns are checked in the
// order serve, test, build, deploy.
func Classify(goal string) model.Category {
	switch {
	case serveGoals[goal]:
		return model.CategoryServe
	case strings.Contains(goal, "test"):
		return model.CategoryTest
	case buildGoals[goal], strings.Contains(goal, "generate"):
		return model.CategoryBuild
	case goal == "push", strings.Contains(goal, "deploy"):
		return model.CategoryDeploy
	}
	return model.CategoryUtility
}

// ShortPluginName returns the prefix used in target names for a plugin.
func ShortPluginName(pluginKey string) string {
	switch {
	case strings.Contains(pluginKey, "spring-boot"):
		return "spring-boot"
	case strings.Contains(pluginKey, "quarkus"):
		return "quarkus"
	case strings.Contains(pluginKey, "docker"):
		return "docker"
	}
	_, artifact, ok := strings.Cut(pluginKey, ":")
	if !ok {
		return ""
	}
	artifact = strings.ReplaceAll(artifact, "-maven-plugin", "")
	return strings.ReplaceAll(artifact, "-plugin", "")
}

// TargetName returns the name a goal is published under. Serve and build
// style goals share one name across plugins.
func TargetName(pluginKey, goal string) string {
	short := ShortPluginName(pluginKey)
	switch {
	case short == "":
		return goal
	case goal == "run", goal == "dev":
		return ServeTarget
	case goal == "build", goal == "package", goal == "repackage":
		return BuildTarget
	}
	return short + ":" + goal
}

var quarkusSuggestions = map[string]string{
	"dev":           "compile",
	"build":         "test",
	"generate-code": "validate",
	"test":          "test-compile",
}

var springBootSuggestions = map[string]string{
	"run":         "compile",
	"build-image": "package",
	"repackage":   "test",
}

var categorySuggestions = map[model.Category]string{
	model.CategoryServe:   "compile",
	model.CategoryBuild:   "test",
	model.CategoryTest:    "test-compile",
	model.CategoryDeploy:  "package",
	model.CategoryUtility: "compile",
}

// boundSuggestions replace every other suggestion for explicitly bound
// goals.
var boundSuggestions = map[string]string{
	"compile": "process-resources",
	"test":    "process-test-classes",
	"package": "test",
	"verify":  "package",
	"install": "verify",
	"deploy":  "install",
}

// SuggestedDependencies returns the phases a goal should run after.
func SuggestedDependencies(pluginKey, goal string, category model.Category, phase string) []string {
	if ph, ok := boundSuggestions[strings.TrimSpace(phase)]; ok {
		return []string{ph}
	}

	var table map[string]string
	switch {
	case strings.Contains(pluginKey, "quarkus"):
		table = quarkusSuggestions
	case strings.Contains(pluginKey, "spring-boot"):
		table = springBootSuggestions
	default:
		if ph, ok := categorySuggestions[category]; ok {
			return []string{ph}
		}
		return []string{}
	}
	if ph, ok := table[goal]; ok {
		return []string{ph}
	}
	return []string{}
}

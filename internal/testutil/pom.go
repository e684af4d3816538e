package testutil

import (
	"fmt"
	"strings"
)

// PomBuilder renders small pom.xml documents for tests.
type PomBuilder struct {
	groupID      string
	artifactID   string
	packaging    string
	parent       string
	modules      []string
	dependencies []string
	plugins      []string
}

// Pom starts a manifest with the given coordinate. An empty groupId is
// omitted from the document.
func Pom(groupID, artifactID string) *PomBuilder {
	return &PomBuilder{groupID: groupID, artifactID: artifactID}
}

// Packaging sets the packaging.
func (b *PomBuilder) Packaging(packaging string) *PomBuilder {
	b.packaging = packaging
	return b
}

// Parent declares a parent with the default relative path.
func (b *PomBuilder) Parent(groupID, artifactID string) *PomBuilder {
	b.parent = fmt.Sprintf("<parent><groupId>%s</groupId><artifactId>%s</artifactId><version>1.0.0</version></parent>", groupID, artifactID)
	return b
}

// Modules declares sub-modules.
func (b *PomBuilder) Modules(modules ...string) *PomBuilder {
	b.modules = append(b.modules, modules...)
	return b
}

// Dependency declares a dependency.
func (b *PomBuilder) Dependency(groupID, artifactID string) *PomBuilder {
	b.dependencies = append(b.dependencies, fmt.Sprintf(
		"<dependency><groupId>%s</groupId><artifactId>%s</artifactId><version>1.0.0</version></dependency>",
		groupID, artifactID))
	return b
}

// Plugin declares a plugin without executions.
func (b *PomBuilder) Plugin(groupID, artifactID string) *PomBuilder {
	return b.PluginExecution(groupID, artifactID, "", "")
}

// PluginExecution declares a plugin with one execution. An empty phase
// leaves the goals unbound.
func (b *PomBuilder) PluginExecution(groupID, artifactID, id, phase string, goals ...string) *PomBuilder {
	var sb strings.Builder
	sb.WriteString("<plugin>")
	if groupID != "" {
		fmt.Fprintf(&sb, "<groupId>%s</groupId>", groupID)
	}
	fmt.Fprintf(&sb, "<artifactId>%s</artifactId>", artifactID)
	if id != "" || phase != "" || len(goals) > 0 {
		sb.WriteString("<executions><execution>")
		if id != "" {
			fmt.Fprintf(&sb, "<id>%s</id>", id)
		}
		if phase != "" {
			fmt.Fprintf(&sb, "<phase>%s</phase>", phase)
		}
		sb.WriteString("<goals>")
		for _, g := range goals {
			fmt.Fprintf(&sb, "<goal>%s</goal>", g)
		}
		sb.WriteString("</goals></execution></executions>")
	}
	sb.WriteString("</plugin>")
	b.plugins = append(b.plugins, sb.String())
	return b
}

// String renders the document.
func (b *PomBuilder) String() string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString(`<project xmlns="http://maven.apache.org/POM/4.0.0">` + "\n")
	sb.WriteString("  <modelVersion>4.0.0</modelVersion>\n")
	if b.parent != "" {
		sb.WriteString("  " + b.parent + "\n")
	}
	if b.groupID != "" {
		fmt.Fprintf(&sb, "  <groupId>%s</groupId>\n", b.groupID)
	}
	fmt.Fprintf(&sb, "  <artifactId>%s</artifactId>\n", b.artifactID)
	sb.WriteString("  <version>1.0.0</version>\n")
	if b.packaging != "" {
		fmt.Fprintf(&sb, "  <packaging>%s</packaging>\n", b.packaging)
	}
	if len(b.modules) > 0 {
		sb.WriteString("  <modules>\n")
		for _, m := range b.modules {
			fmt.Fprintf(&sb, "    <module>%s</module>\n", m)
		}
		sb.WriteString("  </modules>\n")
	}
	if len(b.dependencies) > 0 {
		sb.WriteString("  <dependencies>\n    " + strings.Join(b.dependencies, "\n    ") + "\n  </dependencies>\n")
	}
	if len(b.plugins) > 0 {
		sb.WriteString("  <build><plugins>\n    " + strings.Join(b.plugins, "\n    ") + "\n  </plugins></build>\n")
	}
	sb.WriteString("</project>\n")
	return sb.String()
}

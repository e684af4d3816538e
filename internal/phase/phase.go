// Package phase derives the lifecycle phases relevant to a project from its
// packaging, its explicit plugin bindings and the frameworks it uses.
package phase

import (
	"context"
	"strings"

	"github.com/vk/mvngraph/internal/framework"
	"github.com/vk/mvngraph/internal/model"
)

// always prefixes every packaging's phase list.
var always = []string{"clean", "validate"}

var compiledArtifact = []string{"compile", "test-compile", "test", "package", "verify", "install", "deploy"}

// byPackaging lists the phases each packaging runs after clean and validate.
var byPackaging = map[string][]string{
	model.PackagingPOM:    {"install", "deploy"},
	model.PackagingJar:    compiledArtifact,
	model.PackagingBundle: compiledArtifact,
	model.PackagingEar:    compiledArtifact,
	"ejb":                 compiledArtifact,
	"rar":                 compiledArtifact,
	model.PackagingWar: {
		"compile", "process-resources", "process-classes", "test-compile", "test",
		"package", "verify", "install", "deploy",
	},
	model.PackagingMavenPlugin: {
		"compile", "process-classes", "test-compile", "test",
		"package", "verify", "install", "deploy",
	},
}

var unknownPackaging = []string{"compile", "test", "package", "install"}

// ForPackaging returns the default phases of a packaging, clean and
// validate included. Packaging is matched case-insensitively; an empty
// packaging is treated as jar.
func ForPackaging(packaging string) []string {
	packaging = strings.ToLower(strings.TrimSpace(packaging))
	if packaging == "" {
		packaging = model.PackagingJar
	}
	rest, ok := byPackaging[packaging]
	if !ok {
		rest = unknownPackaging
	}
	out := make([]string, 0, len(always)+len(rest))
	out = append(out, always...)
	return append(out, rest...)
}

// Bound returns the phases explicitly named by plugin executions, in
// declaration order.
func Bound(p *model.Project) []string {
	var out []string
	for _, pl := range p.Plugins {
		for _, ex := range pl.Executions {
			if ph := strings.TrimSpace(ex.Phase); ph != "" {
				out = append(out, ph)
			}
		}
	}
	return out
}

// Relevant returns the deduplicated, ordered phases relevant to a project:
// packaging defaults, then explicit bindings, then framework phases. The
// first occurrence of a phase decides its position.
func Relevant(ctx context.Context, p *model.Project, rules *framework.Registry) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(phases ...string) {
		for _, ph := range phases {
			if !seen[ph] {
				seen[ph] = true
				out = append(out, ph)
			}
		}
	}

	add(ForPackaging(p.PackagingOrDefault())...)
	add(Bound(p)...)
	add(rules.Phases(ctx, p)...)
	return out
}

package registry

import (
	"github.com/vk/mvngraph/internal/model"
)

// Report accumulates discovery outcomes.
type Report struct {
	// Processed counts manifests that were found and attempted.
	Processed int
	// Read counts manifests resolved into projects.
	Read     int
	Errors   []string
	Warnings []string
}

// Registry is the closed set of projects discovered in a workspace.
type Registry struct {
	projects []*model.Project
	byName   map[string][]*model.Project
	report   Report
}

func newRegistry() *Registry {
	return &Registry{byName: make(map[string][]*model.Project)}
}

func (r *Registry) add(p *model.Project) {
	name := p.DisplayName()
	r.projects = append(r.projects, p)
	r.byName[name] = append(r.byName[name], p)
}

// Projects returns every project in discovery order.
func (r *Registry) Projects() []*model.Project {
	out := make([]*model.Project, len(r.projects))
	copy(out, r.projects)
	return out
}

// Len returns the number of projects.
func (r *Registry) Len() int {
	return len(r.projects)
}

// Has reports whether a project named "group:artifact" was discovered.
func (r *Registry) Has(name string) bool {
	return len(r.byName[name]) > 0
}

// Report returns a copy of the discovery report.
func (r *Registry) Report() Report {
	rep := r.report
	rep.Errors = append([]string(nil), r.report.Errors...)
	rep.Warnings = append([]string(nil), r.report.Warnings...)
	return rep
}

// InternalDependencies returns the names of the project's declared
// dependencies that are produced by the workspace, in declaration order,
// without repeats and without the project itself.
func (r *Registry) InternalDependencies(p *model.Project) []string {
	self := p.DisplayName()
	out := []string{}
	seen := map[string]bool{self: true}
	for _, d := range p.Dependencies {
		name := d.Coordinate().String()
		if seen[name] || !r.Has(name) {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

package manifest

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/vk/mvngraph/internal/ctxlog"
	"github.com/vk/mvngraph/internal/fsutil"
	"github.com/vk/mvngraph/internal/model"
)

// maxParentDepth bounds the parent chain.
const maxParentDepth = 32

// ancestor is one manifest of a parent chain.
type ancestor struct {
	path string
	pom  *POM
}

// effective computes the effective project of the manifest at manifestPath.
// Cached manifests are never mutated.
func (r *Reader) effective(ctx context.Context, manifestPath string, pom *POM) (*model.Project, error) {
	chain, err := r.lineage(ctx, manifestPath, pom)
	if err != nil {
		return nil, &ResolutionError{Path: manifestPath, Err: err}
	}

	merged := mergeLineage(chain)
	project, err := merged.interpolate(manifestPath)
	if err != nil {
		return nil, &ResolutionError{Path: manifestPath, Err: err}
	}
	return project, nil
}

// lineage returns the manifest followed by every locally available parent,
// nearest first. A parent that is absent or does not match the reference
// ends the chain; Maven would fetch it from a repository.
func (r *Reader) lineage(ctx context.Context, manifestPath string, pom *POM) ([]ancestor, error) {
	logger := ctxlog.FromContext(ctx)

	chain := []ancestor{{path: manifestPath, pom: pom}}
	seen := map[string]bool{manifestPath: true}

	for cur := chain[0]; cur.pom.Parent != nil; cur = chain[len(chain)-1] {
		ref := cur.pom.Parent
		parentPath, local := parentManifestPath(cur.path, ref)
		if !local {
			logger.Debug("Parent is not a workspace manifest.", "path", cur.path, "parent", ref.GroupID+":"+ref.ArtifactID)
			break
		}
		if seen[parentPath] {
			return nil, fmt.Errorf("parent cycle through %s", parentPath)
		}
		if len(chain) > maxParentDepth {
			return nil, fmt.Errorf("parent chain deeper than %d", maxParentDepth)
		}

		parent, err := r.load(parentPath)
		if errors.Is(err, ErrNotFound) {
			logger.Debug("Parent manifest not present locally.", "path", cur.path, "parent_path", parentPath)
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parent %s: %w", parentPath, err)
		}
		if !matchesParent(parent, ref) {
			logger.Debug("Manifest at parent path is not the declared parent.", "path", cur.path, "parent_path", parentPath)
			break
		}

		seen[parentPath] = true
		chain = append(chain, ancestor{path: parentPath, pom: parent})
	}
	return chain, nil
}

// parentManifestPath resolves a parent reference relative to the child.
// An explicitly empty relativePath means the parent is never local.
func parentManifestPath(childPath string, ref *ParentRef) (string, bool) {
	rel := "../pom.xml"
	if ref.RelativePath != nil {
		rel = *ref.RelativePath
	}
	if rel == "" {
		return "", false
	}
	p := path.Join(path.Dir(childPath), rel)
	if !strings.HasSuffix(strings.ToLower(p), ".xml") {
		p = path.Join(p, fsutil.ManifestName)
	}
	if p == ".." || strings.HasPrefix(p, "../") {
		return "", false
	}
	return fsutil.Normalize(p), true
}

func matchesParent(parent *POM, ref *ParentRef) bool {
	if parent.ArtifactID != ref.ArtifactID {
		return false
	}
	group := parent.GroupID
	if group == "" && parent.Parent != nil {
		group = parent.Parent.GroupID
	}
	return ref.GroupID == "" || group == ref.GroupID
}

// mergedModel is the inheritance result before interpolation.
type mergedModel struct {
	groupID    string
	artifactID string
	version    string
	packaging  string
	name       string
	parent     *ParentRef
	modules    []string
	props      Properties
	deps       []RawDependency
	plugins    []RawPlugin
	management []RawPlugin
}

// mergeLineage applies inheritance from the farthest ancestor down to the
// manifest itself.
func mergeLineage(chain []ancestor) *mergedModel {
	m := &mergedModel{}
	for i := len(chain) - 1; i >= 0; i-- {
		pom := chain[i].pom

		switch {
		case pom.GroupID != "":
			m.groupID = pom.GroupID
		case m.groupID == "" && pom.Parent != nil:
			m.groupID = pom.Parent.GroupID
		}
		switch {
		case pom.Version != "":
			m.version = pom.Version
		case m.version == "" && pom.Parent != nil:
			m.version = pom.Parent.Version
		}
		m.artifactID = pom.ArtifactID
		m.packaging = pom.Packaging
		m.name = pom.Name
		m.parent = pom.Parent
		m.modules = pom.Modules

		for _, name := range pom.Properties.Names {
			m.props.Set(name, pom.Properties.Values[name])
		}
		m.deps = mergeDependencies(pom.Dependencies, m.deps)
		m.plugins = mergePlugins(pom.Build.Plugins, inheritable(m.plugins))
		m.management = mergePlugins(pom.Build.PluginManagement, inheritable(m.management))
	}
	m.plugins = applyManagement(m.plugins, m.management)
	return m
}

// mergeDependencies returns own followed by inherited dependencies not
// redeclared.
func mergeDependencies(own, inherited []RawDependency) []RawDependency {
	out := make([]RawDependency, 0, len(own)+len(inherited))
	seen := make(map[string]bool, len(own))
	for _, d := range own {
		seen[d.GroupID+":"+d.ArtifactID] = true
		out = append(out, d)
	}
	for _, d := range inherited {
		if !seen[d.GroupID+":"+d.ArtifactID] {
			out = append(out, d)
		}
	}
	return out
}

func inheritable(plugins []RawPlugin) []RawPlugin {
	out := make([]RawPlugin, 0, len(plugins))
	for _, p := range plugins {
		if !strings.EqualFold(p.Inherited, "false") {
			out = append(out, p)
		}
	}
	return out
}

// mergePlugins returns own followed by inherited plugins not redeclared. A
// redeclared plugin also receives the inherited executions it does not
// override by id.
func mergePlugins(own, inherited []RawPlugin) []RawPlugin {
	byKey := make(map[string]RawPlugin, len(inherited))
	for _, p := range inherited {
		byKey[rawPluginKey(p)] = p
	}

	out := make([]RawPlugin, 0, len(own)+len(inherited))
	seen := make(map[string]bool, len(own))
	for _, p := range own {
		key := rawPluginKey(p)
		seen[key] = true
		if parent, ok := byKey[key]; ok {
			p = withExecutions(p, parent.Executions)
		}
		out = append(out, p)
	}
	for _, p := range inherited {
		if !seen[rawPluginKey(p)] {
			out = append(out, p)
		}
	}
	return out
}

// applyManagement adds pluginManagement executions to declared plugins.
func applyManagement(plugins, management []RawPlugin) []RawPlugin {
	if len(management) == 0 {
		return plugins
	}
	byKey := make(map[string]RawPlugin, len(management))
	for _, p := range management {
		byKey[rawPluginKey(p)] = p
	}
	out := make([]RawPlugin, len(plugins))
	for i, p := range plugins {
		if managed, ok := byKey[rawPluginKey(p)]; ok {
			p = withExecutions(p, managed.Executions)
			if p.Version == "" {
				p.Version = managed.Version
			}
		}
		out[i] = p
	}
	return out
}

// withExecutions returns a copy of p with extra executions appended unless
// p already declares one with the same id.
func withExecutions(p RawPlugin, extra []RawExecution) RawPlugin {
	if len(extra) == 0 {
		return p
	}
	ids := make(map[string]bool, len(p.Executions))
	for _, ex := range p.Executions {
		ids[executionID(ex)] = true
	}
	execs := append([]RawExecution(nil), p.Executions...)
	for _, ex := range extra {
		if !ids[executionID(ex)] {
			execs = append(execs, ex)
		}
	}
	p.Executions = execs
	return p
}

func executionID(ex RawExecution) string {
	if ex.ID == "" {
		return model.DefaultExecutionID
	}
	return ex.ID
}

func rawPluginKey(p RawPlugin) string {
	group := p.GroupID
	if group == "" {
		group = model.DefaultPluginGroup
	}
	return group + ":" + p.ArtifactID
}

// interpolate expands property references and produces the project. Fields
// that drive graph construction must resolve completely; versions and names
// are expanded on a best-effort basis.
func (m *mergedModel) interpolate(manifestPath string) (*model.Project, error) {
	root := path.Dir(manifestPath)
	packaging := m.packaging
	if packaging == "" {
		packaging = model.PackagingJar
	}

	values := make(map[string]string, len(m.props.Names)+16)
	for _, name := range m.props.Names {
		values[name] = m.props.Values[name]
	}
	builtins := map[string]string{
		"groupId":    m.groupID,
		"artifactId": m.artifactID,
		"version":    m.version,
		"packaging":  packaging,
		"name":       m.name,
		"basedir":    root,
	}
	if m.parent != nil {
		builtins["parent.groupId"] = m.parent.GroupID
		builtins["parent.artifactId"] = m.parent.ArtifactID
		builtins["parent.version"] = m.parent.Version
	}
	for k, v := range builtins {
		values["project."+k] = v
		values["pom."+k] = v
	}
	values["basedir"] = root

	s := &strict{in: newInterpolator(values)}
	p := &model.Project{
		Coordinate: model.Coordinate{
			GroupID:    s.expand(m.groupID),
			ArtifactID: s.expand(m.artifactID),
		},
		Version:      s.lenient(m.version),
		Name:         s.lenient(m.name),
		ManifestPath: manifestPath,
		Root:         root,
		Packaging:    s.expand(m.packaging),
	}
	if m.parent != nil {
		p.ParentGroupID = s.expand(m.parent.GroupID)
	}
	for _, mod := range m.modules {
		p.Modules = append(p.Modules, s.expand(mod))
	}
	for _, d := range m.deps {
		d.GroupID = s.expand(d.GroupID)
		d.ArtifactID = s.expand(d.ArtifactID)
		d.Version = s.lenient(d.Version)
		d.Scope = s.lenient(d.Scope)
		p.Dependencies = append(p.Dependencies, toDependency(d))
	}
	for _, pl := range m.plugins {
		pl.GroupID = s.expand(pl.GroupID)
		pl.ArtifactID = s.expand(pl.ArtifactID)
		pl.Version = s.lenient(pl.Version)
		execs := make([]RawExecution, len(pl.Executions))
		for i, ex := range pl.Executions {
			execs[i] = RawExecution{ID: s.lenient(ex.ID), Phase: s.expand(ex.Phase)}
			for _, g := range ex.Goals {
				execs[i].Goals = append(execs[i].Goals, s.expand(g))
			}
		}
		pl.Executions = execs
		p.Plugins = append(p.Plugins, toPlugin(pl))
	}

	if err := s.err(); err != nil {
		return nil, err
	}
	return p, nil
}

package manifest

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/go-git/go-billy/v5"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vk/mvngraph/internal/ctxlog"
	"github.com/vk/mvngraph/internal/fsutil"
	"github.com/vk/mvngraph/internal/model"
)

// DefaultCacheSize is the number of parsed manifests kept in memory.
const DefaultCacheSize = 256

var (
	// ErrNotFound is returned when no manifest exists at the given path.
	ErrNotFound = errors.New("manifest not found")
	// ErrParse is returned when a manifest cannot be read or decoded.
	ErrParse = errors.New("manifest parse failure")
)

// ResolutionError reports why the effective model of a manifest could not be
// computed.
type ResolutionError struct {
	Path string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve effective model of %s: %v", e.Path, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Provider resolves a manifest path into a project.
type Provider interface {
	// Resolve reads the manifest at the workspace-relative path. It returns
	// an error wrapping ErrNotFound or ErrParse when the manifest is missing
	// or unreadable.
	Resolve(ctx context.Context, manifestPath string) (*model.Project, error)
}

// Reader is the filesystem-backed Provider.
type Reader struct {
	fs    billy.Filesystem
	cache *lru.Cache[string, *POM]
}

// NewReader creates a Reader over the given filesystem. A non-positive
// cacheSize selects DefaultCacheSize.
func NewReader(fsys billy.Filesystem, cacheSize int) (*Reader, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, *POM](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create manifest cache: %w", err)
	}
	return &Reader{fs: fsys, cache: cache}, nil
}

// Resolve implements Provider.
func (r *Reader) Resolve(ctx context.Context, manifestPath string) (*model.Project, error) {
	logger := ctxlog.FromContext(ctx)
	manifestPath = fsutil.Normalize(manifestPath)

	pom, err := r.load(manifestPath)
	if err != nil {
		return nil, err
	}

	project, err := r.effective(ctx, manifestPath, pom)
	if err != nil {
		logger.Warn("Effective model unavailable, using raw manifest.", "path", manifestPath, "error", err)
		project = rawProject(manifestPath, pom)
		project.Degraded = true
	}
	logger.Debug("Manifest resolved.", "path", manifestPath, "coordinate", project.Coordinate.String(), "degraded", project.Degraded)
	return project, nil
}

// load returns the parsed manifest at p, consulting the cache first.
func (r *Reader) load(p string) (*POM, error) {
	if pom, ok := r.cache.Get(p); ok {
		return pom, nil
	}

	exists, err := fsutil.Exists(r.fs, p)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, p, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
	}

	data, err := fsutil.ReadFile(r.fs, p)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, p, err)
	}
	pom, err := ParseRaw(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}

	r.cache.Add(p, pom)
	return pom, nil
}

// rawProject builds a project straight from the manifest. Only the parent's
// groupId and version are borrowed.
func rawProject(manifestPath string, pom *POM) *model.Project {
	p := &model.Project{
		Coordinate:   model.Coordinate{GroupID: pom.GroupID, ArtifactID: pom.ArtifactID},
		Version:      pom.Version,
		Name:         pom.Name,
		ManifestPath: manifestPath,
		Root:         path.Dir(manifestPath),
		Packaging:    pom.Packaging,
		Modules:      append([]string(nil), pom.Modules...),
	}
	if pom.Parent != nil {
		p.ParentGroupID = pom.Parent.GroupID
		if p.GroupID == "" {
			p.GroupID = pom.Parent.GroupID
		}
		if p.Version == "" {
			p.Version = pom.Parent.Version
		}
	}
	for _, d := range pom.Dependencies {
		p.Dependencies = append(p.Dependencies, toDependency(d))
	}
	for _, pl := range pom.Build.Plugins {
		p.Plugins = append(p.Plugins, toPlugin(pl))
	}
	return p
}

func toDependency(d RawDependency) model.Dependency {
	scope := d.Scope
	if scope == "" {
		scope = "compile"
	}
	return model.Dependency{GroupID: d.GroupID, ArtifactID: d.ArtifactID, Version: d.Version, Scope: scope}
}

func toPlugin(pl RawPlugin) model.Plugin {
	out := model.Plugin{GroupID: pl.GroupID, ArtifactID: pl.ArtifactID, Version: pl.Version}
	if out.GroupID == "" {
		out.GroupID = model.DefaultPluginGroup
	}
	for _, ex := range pl.Executions {
		id := ex.ID
		if id == "" {
			id = model.DefaultExecutionID
		}
		out.Executions = append(out.Executions, model.Execution{
			ID:    id,
			Phase: ex.Phase,
			Goals: append([]string(nil), ex.Goals...),
		})
	}
	return out
}

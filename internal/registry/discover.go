package registry

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/vk/mvngraph/internal/ctxlog"
	"github.com/vk/mvngraph/internal/fsutil"
	"github.com/vk/mvngraph/internal/manifest"
	"github.com/vk/mvngraph/internal/model"
)

// ErrRootNotFound is returned when the root manifest does not exist.
var ErrRootNotFound = errors.New("root manifest not found")

// walker owns the state of one discovery pass.
type walker struct {
	provider manifest.Provider
	visited  map[string]bool
	reg      *Registry
}

func newWalker(provider manifest.Provider) *walker {
	return &walker{
		provider: provider,
		visited:  make(map[string]bool),
		reg:      newRegistry(),
	}
}

// Discover walks the aggregator tree rooted at rootManifest and returns the
// complete registry.
func Discover(ctx context.Context, provider manifest.Provider, rootManifest string) (*Registry, error) {
	logger := ctxlog.FromContext(ctx)
	rootManifest = fsutil.Normalize(rootManifest)
	logger.Info("Discovering projects.", "root", rootManifest)

	w := newWalker(provider)
	stack := []string{rootManifest}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if w.visited[current] {
			continue
		}
		w.visited[current] = true

		p, err := w.read(ctx, current)
		if errors.Is(err, manifest.ErrNotFound) && current == rootManifest {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, rootManifest)
		}
		if err != nil || !p.IsAggregator() {
			continue
		}

		// Push children in reverse so they are visited in declaration order.
		dir := path.Dir(current)
		for i := len(p.Modules) - 1; i >= 0; i-- {
			child := fsutil.ModuleManifest(dir, p.Modules[i])
			if !w.visited[child] {
				stack = append(stack, child)
			}
		}
		logger.Debug("Aggregator expanded.", "path", current, "modules", len(p.Modules))
	}

	w.reg.validate(ctx)
	logger.Info("Discovery finished.", "projects", w.reg.Len(), "errors", len(w.reg.report.Errors), "warnings", len(w.reg.report.Warnings))
	return w.reg, nil
}

// FromPaths reads exactly the given manifests, without following modules.
func FromPaths(ctx context.Context, provider manifest.Provider, manifestPaths []string) (*Registry, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Reading listed manifests.", "count", len(manifestPaths))

	w := newWalker(provider)
	for _, p := range manifestPaths {
		p = fsutil.Normalize(p)
		if w.visited[p] {
			continue
		}
		w.visited[p] = true
		_, _ = w.read(ctx, p)
	}

	w.reg.validate(ctx)
	logger.Info("Manifests read.", "projects", w.reg.Len(), "errors", len(w.reg.report.Errors))
	return w.reg, nil
}

// read resolves one manifest and records the outcome.
func (w *walker) read(ctx context.Context, manifestPath string) (*model.Project, error) {
	logger := ctxlog.FromContext(ctx)

	p, err := w.provider.Resolve(ctx, manifestPath)
	switch {
	case errors.Is(err, manifest.ErrNotFound):
		msg := fmt.Sprintf("Manifest not found: %s", manifestPath)
		logger.Warn("Manifest not found, skipping.", "path", manifestPath)
		w.reg.report.Warnings = append(w.reg.report.Warnings, msg)
		return nil, err
	case err != nil:
		w.reg.report.Processed++
		msg := fmt.Sprintf("Failed to process %s: %v", manifestPath, err)
		logger.Error("Failed to process manifest.", "path", manifestPath, "error", err)
		w.reg.report.Errors = append(w.reg.report.Errors, msg)
		return nil, err
	}

	w.reg.report.Processed++
	w.reg.report.Read++
	w.reg.add(p)
	return p, nil
}

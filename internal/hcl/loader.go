package hcl

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/mvngraph/internal/config"
	"github.com/vk/mvngraph/internal/ctxlog"
	"github.com/vk/mvngraph/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	fs      billy.Filesystem
	evalCtx *hcl.EvalContext
}

// NewLoader creates a loader reading from fsys. workspaceRoot is exposed to
// settings files as `workspace.root`.
func NewLoader(fsys billy.Filesystem, workspaceRoot string) (*Loader, error) {
	evalCtx, err := newEvalContext(workspaceRoot)
	if err != nil {
		return nil, err
	}
	return &Loader{fs: fsys, evalCtx: evalCtx}, nil
}

// Load parses every existing file in paths and merges them in order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := &config.Model{}
	parser := hclparse.NewParser()

	for _, path := range paths {
		src, err := util.ReadFile(l.fs, path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
				logger.Debug("Settings file not found, skipping.", "path", path)
				continue // It's not an error if a configured path doesn't exist.
			}
			return nil, fmt.Errorf("error reading settings file %s: %w", path, err)
		}

		file, diags := parser.ParseHCL(src, path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
		}

		var root schema.File
		if diags := gohcl.DecodeBody(file.Body, l.evalCtx, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
		}

		part, err := l.translate(ctx, &root)
		if err != nil {
			return nil, fmt.Errorf("invalid settings file %s: %w", path, err)
		}
		model.Merge(part)
		logger.Debug("Settings file loaded.", "path", path, "frameworks", len(part.Frameworks), "phases", len(part.Phases))
	}

	logger.Debug("HCL loading complete.", "frameworks", len(model.Frameworks), "phases", len(model.Phases))
	return model, nil
}

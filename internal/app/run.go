package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/mvngraph/internal/builder"
	"github.com/vk/mvngraph/internal/ctxlog"
	"github.com/vk/mvngraph/internal/emitter"
	"github.com/vk/mvngraph/internal/fsutil"
	"github.com/vk/mvngraph/internal/registry"
)

// Run executes the configured mode: discover projects, assemble every
// project graph and write the document. Failures of single projects are
// recorded in the document; only a missing root manifest or an unwritable
// output fails the run.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "mode", a.config.Mode)

	if a.config.Mode == ModeAnalyze {
		return a.analyze(ctx, a.config.Manifests[0])
	}

	reg, err := a.discover(ctx)
	if err != nil {
		return err
	}

	doc := a.assemble(ctx, reg)
	a.result = doc

	if err := a.output.Write(ctx, a.outputName, a.outputFile, doc); err != nil {
		return err
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

// discover builds the registry for the configured mode.
func (a *App) discover(ctx context.Context) (*registry.Registry, error) {
	switch a.config.Mode {
	case ModeList:
		paths, err := a.expand(ctx, a.config.Manifests)
		if err != nil {
			return nil, err
		}
		return registry.FromPaths(ctx, a.provider, paths)
	case ModeStdin:
		paths, err := a.readStdin(ctx)
		if err != nil {
			return nil, err
		}
		return registry.FromPaths(ctx, a.provider, paths)
	}

	reg, err := registry.Discover(ctx, a.provider, fsutil.ManifestName)
	if err != nil {
		return nil, fmt.Errorf("hierarchical discovery failed: %w", err)
	}
	return reg, nil
}

// assemble builds every project graph in discovery order.
func (a *App) assemble(ctx context.Context, reg *registry.Registry) *emitter.Document {
	logger := ctxlog.FromContext(ctx)
	report := reg.Report()

	doc := emitter.NewDocument()
	for _, msg := range report.Errors {
		doc.AddError(msg)
	}

	for _, p := range reg.Projects() {
		graph, err := builder.Build(ctx, p, a.fs, reg, a.table, a.rules)
		if err != nil {
			logger.Error("Failed to assemble project graph.", "project", p.DisplayName(), "error", err)
			doc.AddError(fmt.Sprintf("Failed to analyze %s: %v", p.ManifestPath, err))
			continue
		}
		if doc.Projects().Has(p.Root) {
			logger.Warn("Project root already emitted, replacing.", "root", p.Root, "project", p.DisplayName())
		}
		doc.Add(p.Root, graph)
	}
	doc.SetProcessed(report.Processed)

	stats := doc.Stats()
	logger.Info("Project graphs assembled.", "processed", stats.Processed, "successful", stats.Successful, "errors", stats.Errors)
	return doc
}

// expand converts command line paths into workspace-relative manifest
// paths. Directories are scanned for manifests.
func (a *App) expand(ctx context.Context, args []string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)
	root, err := filepath.Abs(a.config.WorkspaceRoot)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, arg := range args {
		rel, err := a.relative(root, arg)
		if err != nil {
			return nil, err
		}
		if !fsutil.IsDir(a.fs, rel) {
			out = append(out, rel)
			continue
		}
		found, err := fsutil.FindFilesByName(a.fs, rel, fsutil.ManifestName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", arg, err)
		}
		logger.Debug("Directory scanned for manifests.", "path", rel, "found", len(found))
		out = append(out, found...)
	}
	return out, nil
}

// relative maps a path to the workspace. Relative paths are taken as
// workspace-relative.
func (a *App) relative(root, p string) (string, error) {
	if !filepath.IsAbs(p) {
		return fsutil.Normalize(p), nil
	}
	return fsutil.Rel(root, p)
}

// readStdin reads one manifest path per line, ignoring blank lines.
func (a *App) readStdin(ctx context.Context) ([]string, error) {
	if a.stdin == nil {
		return nil, errors.New("stdin mode requested but no input is attached")
	}

	var lines []string
	scanner := bufio.NewScanner(a.stdin)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manifest paths from stdin: %w", err)
	}
	ctxlog.FromContext(ctx).Info("Read manifest paths from stdin.", "count", len(lines))
	return a.expand(ctx, lines)
}

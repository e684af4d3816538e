package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/vk/mvngraph/internal/config"
	"github.com/vk/mvngraph/internal/ctxlog"
	"github.com/vk/mvngraph/internal/emitter"
	"github.com/vk/mvngraph/internal/framework"
	"github.com/vk/mvngraph/internal/fsutil"
	"github.com/vk/mvngraph/internal/hcl"
	"github.com/vk/mvngraph/internal/lifecycle"
	"github.com/vk/mvngraph/internal/manifest"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	stdin  io.Reader
	stdout io.Writer
	logger *slog.Logger
	config *Config

	fs         billy.Filesystem
	provider   manifest.Provider
	table      *lifecycle.Table
	rules      *framework.Registry
	outputFile string
	output     *emitter.Writer
	outputName string

	result *emitter.Document
}

// Option customizes an App.
type Option func(*options)

type options struct {
	fs     billy.Filesystem
	loader config.Loader
}

// WithFilesystem replaces the workspace filesystem. The output file is
// written to the same filesystem.
func WithFilesystem(fsys billy.Filesystem) Option {
	return func(o *options) { o.fs = fsys }
}

// WithLoader replaces the settings loader.
func WithLoader(l config.Loader) Option {
	return func(o *options) { o.loader = l }
}

// NewApp is the constructor for the main application. It loads the settings
// file, builds the rule set and lifecycle table and wires the manifest
// provider. Logs go to stderr.
func NewApp(stdin io.Reader, stdout, stderr io.Writer, cfg *Config, opts ...Option) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, stderr)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	absRoot, err := filepath.Abs(cfg.WorkspaceRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace root: %w", err)
	}
	ownFS := o.fs == nil
	if ownFS {
		o.fs = osfs.New(absRoot)
	}
	if o.loader == nil {
		if o.loader, err = hcl.NewLoader(o.fs, absRoot); err != nil {
			return nil, err
		}
	}

	settingsPath, explicit, err := settingsFile(cfg, absRoot)
	if err != nil {
		return nil, err
	}
	if explicit {
		if ok, err := fsutil.Exists(o.fs, settingsPath); err != nil || !ok {
			return nil, fmt.Errorf("settings file %s not found", cfg.SettingsFile)
		}
	}
	settings, err := o.loader.Load(ctx, settingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	logger.Debug("Settings loaded.", "path", settingsPath, "frameworks", len(settings.Frameworks), "phases", len(settings.Phases))

	extra, err := settings.Rules()
	if err != nil {
		return nil, fmt.Errorf("invalid framework rules: %w", err)
	}
	table, err := lifecycle.New(settings.Extensions())
	if err != nil {
		return nil, fmt.Errorf("invalid phase definitions: %w", err)
	}

	reader, err := manifest.NewReader(o.fs, settings.Settings.ManifestCacheSize)
	if err != nil {
		return nil, err
	}

	a := &App{
		stdin:      stdin,
		stdout:     stdout,
		logger:     logger,
		config:     cfg,
		fs:         o.fs,
		provider:   reader,
		table:      table,
		rules:      framework.NewRegistry(extra...),
		outputFile: cfg.outputFile(settings.Settings.OutputFile),
	}
	a.output, a.outputName = a.outputTarget(ownFS)
	logger.Debug("Application wired.", "workspace", absRoot, "rules", len(a.rules.Rules()), "phases", a.table.Len(), "output", a.outputFile)
	return a, nil
}

// settingsFile returns the workspace-relative settings path and whether it
// was given explicitly.
func settingsFile(cfg *Config, absRoot string) (string, bool, error) {
	if cfg.SettingsFile == "" {
		return DefaultSettingsFile, false, nil
	}
	if !filepath.IsAbs(cfg.SettingsFile) {
		return fsutil.Normalize(cfg.SettingsFile), true, nil
	}
	rel, err := fsutil.Rel(absRoot, cfg.SettingsFile)
	if err != nil {
		return "", true, fmt.Errorf("invalid settings file: %w", err)
	}
	return rel, true, nil
}

// outputTarget picks the filesystem the document is written to. Relative
// output paths live in the workspace; absolute ones get their own
// filesystem rooted at their directory.
func (a *App) outputTarget(ownFS bool) (*emitter.Writer, string) {
	if ownFS && filepath.IsAbs(a.outputFile) {
		return emitter.NewWriter(osfs.New(filepath.Dir(a.outputFile)), a.stdout), filepath.Base(a.outputFile)
	}
	return emitter.NewWriter(a.fs, a.stdout), fsutil.Normalize(a.outputFile)
}

// Result returns the document produced by the last run.
func (a *App) Result() *emitter.Document {
	return a.result
}

// OutputFile returns the resolved output path.
func (a *App) OutputFile() string {
	return a.outputFile
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vk/mvngraph/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Exit codes.
const (
	ExitRuntime = 1
	ExitUsage   = 2
)

type flags struct {
	workspaceRoot string
	output        string
	config        string
	logLevel      string
	logFormat     string

	stdin        bool
	hierarchical bool
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, stdout, stderr io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var (
		f   flags
		cfg *app.Config
	)
	capture := func(mode app.Mode, manifests []string) error {
		c, err := buildConfig(&f, mode, manifests)
		if err != nil {
			return err
		}
		cfg = c
		return nil
	}

	if args == nil {
		args = []string{}
	}
	root := newRootCommand(&f, capture)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	if cfg == nil {
		// Help or version output; nothing to run.
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "mode", cfg.Mode, "workspaceRoot", cfg.WorkspaceRoot)
	return cfg, false, nil
}

func newRootCommand(f *flags, capture func(app.Mode, []string) error) *cobra.Command {
	root := &cobra.Command{
		Use:   "mvngraph",
		Short: "Synthesize an Nx target graph from Maven POMs",
		Long: `mvngraph reads the Maven POMs of a workspace and writes, for every project,
the lifecycle phases it runs, the plugin goals it declares, where each goal
belongs and which targets must run before it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.workspaceRoot, "workspace-root", "", "Workspace root directory (default: current directory)")
	pf.StringVarP(&f.output, "output", "o", "", "Output file, relative to the workspace root (default: "+app.DefaultOutputFile+")")
	pf.StringVar(&f.config, "config", "", "HCL settings file (default: "+app.DefaultSettingsFile+" in the workspace root, if present)")
	pf.StringVar(&f.logLevel, "log-level", "", "Logging level: 'debug', 'info', 'warn', or 'error'")
	pf.StringVar(&f.logFormat, "log-format", "", "Log output format: 'text' or 'json'")

	graphCmd := &cobra.Command{
		Use:   "graph [manifests...]",
		Short: "Analyze the workspace and write the target graph",
		Long: `Without arguments, graph walks the module tree starting at pom.xml in the
workspace root. Manifest paths or directories given as arguments are read
instead; directories are scanned for pom.xml files. With --stdin, manifest
paths are read from standard input, one per line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := graphMode(f, args)
			if err != nil {
				return err
			}
			return capture(mode, args)
		},
	}
	graphCmd.Flags().BoolVar(&f.stdin, "stdin", false, "Read manifest paths from standard input")
	graphCmd.Flags().BoolVar(&f.hierarchical, "hierarchical", false, "Walk the module tree from the root pom.xml")

	analyzeCmd := &cobra.Command{
		Use:   "analyze <pom.xml>",
		Short: "Print the analysis of a single manifest as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return capture(app.ModeAnalyze, args)
		},
	}

	root.AddCommand(graphCmd, analyzeCmd)
	return root
}

func graphMode(f *flags, args []string) (app.Mode, error) {
	switch {
	case f.stdin && f.hierarchical:
		return "", &ExitError{Code: ExitUsage, Message: "--stdin and --hierarchical cannot be combined"}
	case f.stdin && len(args) > 0:
		return "", &ExitError{Code: ExitUsage, Message: "--stdin does not take manifest arguments"}
	case f.hierarchical && len(args) > 0:
		return "", &ExitError{Code: ExitUsage, Message: "--hierarchical does not take manifest arguments"}
	case f.stdin:
		return app.ModeStdin, nil
	case len(args) > 0:
		return app.ModeList, nil
	default:
		return app.ModeHierarchical, nil
	}
}

func buildConfig(f *flags, mode app.Mode, manifests []string) (*app.Config, error) {
	root := f.workspaceRoot
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, &ExitError{Code: ExitRuntime, Message: fmt.Sprintf("cannot determine working directory: %v", err)}
		}
		root = wd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, &ExitError{Code: ExitUsage, Message: fmt.Sprintf("invalid workspace root %q: %v", f.workspaceRoot, err)}
	}

	env, err := app.LoadEnvironment(filepath.Join(root, ".env"))
	if err != nil {
		return nil, &ExitError{Code: ExitRuntime, Message: err.Error()}
	}

	cfg, err := app.NewConfig(app.Config{
		WorkspaceRoot: root,
		Mode:          mode,
		Manifests:     manifests,
		OutputFile:    f.output,
		SettingsFile:  f.config,
		Env:           env,
		LogFormat:     f.logFormat,
		LogLevel:      f.logLevel,
	})
	if err != nil {
		return nil, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	return cfg, nil
}

package emitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/vk/mvngraph/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// Writer persists documents to a filesystem and announces them on stdout.
type Writer struct {
	fs     billy.Filesystem
	stdout io.Writer
}

// NewWriter creates a Writer. stdout receives the SUCCESS line.
func NewWriter(fsys billy.Filesystem, stdout io.Writer) *Writer {
	return &Writer{fs: fsys, stdout: stdout}
}

// Write renders doc as indented JSON into name, creating parent
// directories. display is the path printed in the SUCCESS line.
func (w *Writer) Write(ctx context.Context, name, display string, doc *Document) error {
	logger := ctxlog.FromContext(ctx)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode graph document: %w", err)
	}

	if dir := path.Dir(name); dir != "." && dir != "/" {
		if err := w.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := util.WriteFile(w.fs, name, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", display, err)
	}

	stats := doc.Stats()
	logger.Info("Graph document written.", "path", display, "projects", stats.Successful, "errors", stats.Errors)
	if _, err := fmt.Fprintf(w.stdout, "SUCCESS: %s\n", display); err != nil {
		return fmt.Errorf("failed to report output path: %w", err)
	}
	return nil
}

// WriteYAML renders v as YAML. It is used for debug output.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

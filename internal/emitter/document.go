package emitter

import (
	"encoding/json"

	"github.com/vk/mvngraph/internal/builder"
	"github.com/vk/mvngraph/internal/ordered"
)

// Reserved top-level keys.
const (
	ErrorsKey = "_errors"
	StatsKey  = "_stats"
)

// Stats summarizes a run.
type Stats struct {
	Processed  int `json:"processed" yaml:"processed"`
	Successful int `json:"successful" yaml:"successful"`
	Errors     int `json:"errors" yaml:"errors"`
}

// Document collects the project graphs and errors of one run.
type Document struct {
	projects   *ordered.Map[*builder.ProjectGraph]
	errors     []string
	processed  int
	successful int
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{projects: ordered.New[*builder.ProjectGraph](), errors: []string{}}
}

// Add records the graph of the project rooted at root. A later graph for
// the same root replaces the earlier one in place; both count as
// successful.
func (d *Document) Add(root string, g *builder.ProjectGraph) {
	d.projects.Set(root, g)
	d.successful++
}

// AddError records an error message.
func (d *Document) AddError(msg string) {
	d.errors = append(d.errors, msg)
}

// SetProcessed records how many manifests were attempted.
func (d *Document) SetProcessed(n int) {
	d.processed = n
}

// Projects returns the recorded graphs keyed by root.
func (d *Document) Projects() *ordered.Map[*builder.ProjectGraph] {
	return d.projects
}

// Errors returns a copy of the recorded errors.
func (d *Document) Errors() []string {
	return append([]string{}, d.errors...)
}

// Stats returns the run summary.
func (d *Document) Stats() Stats {
	return Stats{
		Processed:  d.processed,
		Successful: d.successful,
		Errors:     len(d.errors),
	}
}

// MarshalJSON renders the projects followed by the reserved keys.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := ordered.New[any]()
	for root, g := range d.projects.All() {
		out.Set(root, g)
	}
	out.Set(ErrorsKey, d.errors)
	out.Set(StatsKey, d.Stats())
	return json.Marshal(out)
}

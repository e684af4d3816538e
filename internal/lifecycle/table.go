package lifecycle

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vk/mvngraph/internal/dag"
	"github.com/vk/mvngraph/internal/ordered"
)

// DefaultChain is the default lifecycle in execution order.
var DefaultChain = []string{
	"validate", "initialize",
	"generate-sources", "process-sources",
	"generate-resources", "process-resources",
	"compile", "process-classes",
	"generate-test-sources", "process-test-sources",
	"generate-test-resources", "process-test-resources",
	"test-compile", "process-test-classes", "test",
	"prepare-package", "package",
	"pre-integration-test", "integration-test", "post-integration-test",
	"verify", "install", "deploy",
}

// CleanChain is the clean lifecycle in execution order.
var CleanChain = []string{"pre-clean", "clean", "post-clean"}

// SiteChain is the site lifecycle in execution order.
var SiteChain = []string{"pre-site", "site", "post-site", "site-deploy"}

// Extension attaches a phase outside the standard lifecycles.
type Extension struct {
	Phase string
	After []string
}

// FrameworkExtensions are the framework phases known out of the box.
var FrameworkExtensions = []Extension{
	{Phase: "generate-code", After: []string{"validate"}},
	{Phase: "quarkus:dev", After: []string{"compile"}},
	{Phase: "quarkus:build", After: []string{"test"}},
	{Phase: "spring-boot:run", After: []string{"compile"}},
	{Phase: "spring-boot:build-image", After: []string{"package"}},
}

// Table maps each phase to its direct predecessors.
type Table struct {
	order []string
	preds map[string][]string
}

var defaultTable = sync.OnceValue(func() *Table {
	t, err := New(nil)
	if err != nil {
		panic(fmt.Errorf("built-in lifecycle table is invalid: %w", err))
	}
	return t
})

// Default returns the built-in table.
func Default() *Table {
	return defaultTable()
}

// New builds a table from the standard lifecycles, the built-in framework
// phases and the given extensions. Extensions may not redefine a known
// phase, and the resulting ordering must be acyclic.
func New(extensions []Extension) (*Table, error) {
	t := &Table{preds: make(map[string][]string)}
	for _, chain := range [][]string{DefaultChain, CleanChain, SiteChain} {
		for i, phase := range chain {
			if i == 0 {
				t.add(phase, nil)
				continue
			}
			t.add(phase, []string{chain[i-1]})
		}
	}
	for _, ext := range FrameworkExtensions {
		t.add(ext.Phase, ext.After)
	}

	for _, ext := range extensions {
		phase := strings.TrimSpace(ext.Phase)
		if phase == "" {
			return nil, errors.New("lifecycle extension with empty phase name")
		}
		if t.Has(phase) {
			return nil, fmt.Errorf("lifecycle extension redefines known phase %q", phase)
		}
		var after []string
		for _, p := range ext.After {
			if p = strings.TrimSpace(p); p != "" && !slices.Contains(after, p) {
				after = append(after, p)
			}
		}
		t.add(phase, after)
	}

	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) add(phase string, after []string) {
	t.order = append(t.order, phase)
	t.preds[phase] = slices.Clone(after)
}

// validate rejects cyclic orderings.
func (t *Table) validate() error {
	g := dag.New()
	for _, phase := range t.order {
		g.AddNode(phase)
		for _, p := range t.preds[phase] {
			g.AddNode(p)
		}
	}
	for _, phase := range t.order {
		for _, p := range t.preds[phase] {
			if err := g.AddEdge(p, phase); err != nil {
				return fmt.Errorf("invalid lifecycle ordering: %w", err)
			}
		}
	}
	if err := g.DetectCycles(); err != nil {
		return fmt.Errorf("invalid lifecycle ordering: %w", err)
	}
	return nil
}

// Has reports whether the phase has an entry.
func (t *Table) Has(phase string) bool {
	_, ok := t.preds[phase]
	return ok
}

// Predecessors returns the direct predecessors of a phase. Unknown phases
// have none. The result is never nil.
func (t *Table) Predecessors(phase string) []string {
	return append([]string{}, t.preds[phase]...)
}

// Names returns every phase with an entry, in table order.
func (t *Table) Names() []string {
	return slices.Clone(t.order)
}

// Len returns the number of phases with an entry.
func (t *Table) Len() int {
	return len(t.order)
}

// Chain returns every transitive predecessor of phase, nearest first, up to
// the root of its lifecycle. Each phase is reported once.
func (t *Table) Chain(phase string) []string {
	var out []string
	visited := map[string]bool{phase: true}
	queue := t.Predecessors(phase)
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if visited[p] {
			continue
		}
		visited[p] = true
		out = append(out, p)
		queue = append(queue, t.preds[p]...)
	}
	return out
}

// Dependencies returns the full table followed by an empty entry for each
// relevant phase the table does not know.
func (t *Table) Dependencies(relevant []string) *ordered.Map[[]string] {
	out := ordered.New[[]string]()
	for _, phase := range t.order {
		out.Set(phase, t.Predecessors(phase))
	}
	for _, phase := range relevant {
		if !out.Has(phase) {
			out.Set(phase, []string{})
		}
	}
	return out
}

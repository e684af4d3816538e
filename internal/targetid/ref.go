// internal/targetid/ref.go
package targetid

import "strings"

// Chain separator between fallback candidates.
const Separator = "|"

// Fallback chains emitted for cross-project edges.
var (
	CompileChain = []string{"compile", "validate"}
	PackageChain = []string{"package", "compile", "validate"}
)

// Ref is a reference to a target of another project.
type Ref struct {
	Project    string
	Candidates []string
}

// New creates a reference to the given candidates of a project.
func New(project string, candidates ...string) Ref {
	return Ref{Project: project, Candidates: append([]string(nil), candidates...)}
}

// String renders the canonical `project:a|b|c` form.
func (r Ref) String() string {
	return r.Project + ":" + strings.Join(r.Candidates, Separator)
}

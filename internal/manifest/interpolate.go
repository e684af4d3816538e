package manifest

import (
	"fmt"
	"regexp"
	"strings"
)

// maxExpansionDepth bounds nested property references.
const maxExpansionDepth = 16

var expressionRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// interpolator expands ${...} references against a fixed set of values.
type interpolator struct {
	values    map[string]string
	resolved  map[string]string
	resolving map[string]bool
}

func newInterpolator(values map[string]string) *interpolator {
	return &interpolator{
		values:    values,
		resolved:  make(map[string]string),
		resolving: make(map[string]bool),
	}
}

// expand replaces every reference in s. The returned error lists every
// reference that could not be resolved; unresolved references are kept
// verbatim in the result.
func (in *interpolator) expand(s string) (string, error) {
	return in.expandDepth(s, 0)
}

func (in *interpolator) expandDepth(s string, depth int) (string, error) {
	if !strings.Contains(s, "${") {
		return s, nil
	}
	var missing []string
	out := expressionRegex.ReplaceAllStringFunc(s, func(expr string) string {
		name := strings.TrimSpace(expr[2 : len(expr)-1])
		v, err := in.lookup(name, depth)
		if err != nil {
			missing = append(missing, err.Error())
			return expr
		}
		return v
	})
	if len(missing) > 0 {
		return out, fmt.Errorf("unresolved %s", strings.Join(missing, ", "))
	}
	return out, nil
}

func (in *interpolator) lookup(name string, depth int) (string, error) {
	if v, ok := in.resolved[name]; ok {
		return v, nil
	}
	raw, ok := in.values[name]
	if !ok {
		return "", fmt.Errorf("${%s}", name)
	}
	if in.resolving[name] || depth >= maxExpansionDepth {
		return "", fmt.Errorf("${%s} (recursive)", name)
	}

	in.resolving[name] = true
	v, err := in.expandDepth(raw, depth+1)
	delete(in.resolving, name)
	if err != nil {
		return "", fmt.Errorf("${%s} (%v)", name, err)
	}
	in.resolved[name] = v
	return v, nil
}

// strict collects errors from expansions whose result must be fully
// resolved.
type strict struct {
	in   *interpolator
	errs []string
}

func (s *strict) expand(v string) string {
	out, err := s.in.expand(v)
	if err != nil {
		s.errs = append(s.errs, err.Error())
	}
	return out
}

// lenient expands v, keeping unresolved references as they are.
func (s *strict) lenient(v string) string {
	out, _ := s.in.expand(v)
	return out
}

func (s *strict) err() error {
	if len(s.errs) == 0 {
		return nil
	}
	return fmt.Errorf("%s", strings.Join(s.errs, "; "))
}

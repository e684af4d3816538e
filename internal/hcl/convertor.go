package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/mvngraph/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Plugin groups exposed to settings files as `groups.<name>`.
var pluginGroups = map[string]string{
	"apache_plugins": "org.apache.maven.plugins",
	"spring_boot":    "org.springframework.boot",
	"quarkus":        "io.quarkus",
	"codehaus_mojo":  "org.codehaus.mojo",
}

// newEvalContext builds the variables available to every expression.
func newEvalContext(workspaceRoot string) (*hcl.EvalContext, error) {
	groups, err := toCtyValue(pluginGroups)
	if err != nil {
		return nil, fmt.Errorf("failed to convert plugin groups: %w", err)
	}
	workspace, err := toCtyValue(map[string]string{"root": workspaceRoot})
	if err != nil {
		return nil, fmt.Errorf("failed to convert workspace variables: %w", err)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"groups":    groups,
			"workspace": workspace,
		},
	}, nil
}

// toCtyValue converts a native Go value into its corresponding cty.Value.
func toCtyValue(v any) (cty.Value, error) {
	if v == nil {
		return cty.NilVal, nil
	}
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to infer cty.Type: %w", err)
	}
	return gocty.ToCtyValue(v, ty)
}

// isExprDefined reports whether an optional attribute was present in the
// source. Omitted attributes decode to zero-width expressions.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	return r.End.Byte > r.Start.Byte
}

// stringList evaluates an attribute that accepts either a single string or
// a list of strings.
func (l *Loader) stringList(ctx context.Context, expr hcl.Expression, attr string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)
	if !isExprDefined(expr) {
		return nil, nil
	}

	val, diags := expr.Value(l.evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	if val.Type().Equals(cty.String) {
		return []string{val.AsString()}, nil
	}

	converted, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, fmt.Errorf("%s: cannot convert %s to a list of strings: %w", attr, val.Type().FriendlyName(), err)
	}
	if !val.Type().Equals(converted.Type()) {
		logger.Debug("Implicitly converted value type.", "attribute", attr, "from", val.Type().FriendlyName(), "to", converted.Type().FriendlyName())
	}

	var out []string
	if err := gocty.FromCtyValue(converted, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", attr, err)
	}
	return out, nil
}

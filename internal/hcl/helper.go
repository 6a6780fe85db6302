package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/tsbridge/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// isExprDefined checks if an HCL expression was actually present in the source
// code. The HCL decoder populates omitted optional expression fields with
// zero-width placeholder expressions, so a nil check is insufficient.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)
	return isDefined
}

// decodeStringList evaluates expr and converts the result to a string slice.
// A defined but empty list yields a non-nil empty slice.
func decodeStringList(expr hcl.Expression, evalCtx *hcl.EvalContext) ([]string, error) {
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return []string{}, nil
	}

	listType := cty.List(cty.String)
	converted, err := convert.Convert(val, listType)
	if err != nil {
		return nil, fmt.Errorf("cannot convert %s to %s: %w", val.Type().FriendlyName(), listType.FriendlyName(), err)
	}

	out := []string{}
	if converted.LengthInt() == 0 {
		return out, nil
	}
	if err := gocty.FromCtyValue(converted, &out); err != nil {
		return nil, err
	}
	return out, nil
}

package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// newEvalContext returns the evaluation context manifests are decoded with.
// `root` names the repository root so paths can be written as
// "${root}/node_modules/typescript/bin/tsc".
func newEvalContext(root string) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"root": cty.StringVal(root),
		},
		Functions: map[string]function.Function{
			"concat": stdlib.ConcatFunc,
			"format": stdlib.FormatFunc,
			"join":   stdlib.JoinFunc,
			"lower":  stdlib.LowerFunc,
			"upper":  stdlib.UpperFunc,
		},
	}
}

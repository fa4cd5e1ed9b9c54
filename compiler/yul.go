package compiler

import "context"

// YulCompiler invokes solc's `--strict-assembly --standard-json` mode for
// the low-level EVM dialect flavor. Yul has no optimizer-runs/library
// settings of its own beyond what solc's strict-assembly mode accepts, but
// shares the same standard-json request/response shape, so it reuses
// runStandardJSON wholesale.
type YulCompiler struct {
	Binary string
}

func (c YulCompiler) Compile(ctx context.Context, input Input) (Output, error) {
	return runStandardJSON(ctx, c.Binary, "Yul", input)
}

// Package logging builds the structured logger used by the stlc command and
// carries per-build correlation fields in a context.
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//	if err != nil {
//	    return err
//	}
//
//	ctx := logging.WithBuildID(ctx, logging.NewBuildID())
//	ctx = logging.WithSource(ctx, "examples/id.lam")
//
//	// build_id and source are added automatically
//	logger.InfoContext(ctx, "AST built", "nodes", 4)
//
// Logs are written to stderr by default so command output on stdout is not
// interleaved with log records.
package logging

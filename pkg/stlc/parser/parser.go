package parser

import (
	"context"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"lambda-hq/stlc/pkg/stlc/ast"
	stlcErrors "lambda-hq/stlc/pkg/stlc/errors"
	"lambda-hq/stlc/pkg/stlc/grammar"
	"lambda-hq/stlc/pkg/telemetry/logging"
	"lambda-hq/stlc/pkg/telemetry/tracing"
)

// DefaultMaxFileSize is the largest source file Parse accepts.
const DefaultMaxFileSize = 10 * 1024 * 1024

// Outcomes reported to a Recorder.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder receives one observation per build.
type Recorder interface {
	RecordBuild(outcome, kind string, duration time.Duration, nodes int)
}

// Parser turns lambda calculus sources into ASTs.
// It runs the grammar, then the AST builder, and reports each build to the
// configured logger, tracer and metrics recorder.
type Parser struct {
	maxFileSize int64 // Maximum source size in bytes (default: 10MB)
	maxDepth    int   // Maximum nesting depth, 0 for unlimited

	logger  *slog.Logger
	tracer  trace.Tracer
	metrics Recorder
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxFileSize: DefaultMaxFileSize,
		logger:      slog.Default().With("component", "stlc.parser"),
		tracer:      otel.Tracer("lambda-hq/stlc/parser"),
	}
}

// WithMaxFileSize sets the maximum source size limit.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// WithMaxDepth sets the maximum nesting depth. Zero disables the limit.
func (p *Parser) WithMaxDepth(depth int) *Parser {
	p.maxDepth = depth
	return p
}

// WithLogger sets the logger.
func (p *Parser) WithLogger(logger *slog.Logger) *Parser {
	if logger != nil {
		p.logger = logger.With("component", "stlc.parser")
	}
	return p
}

// WithTracer sets the tracer used for build spans.
func (p *Parser) WithTracer(tracer trace.Tracer) *Parser {
	if tracer != nil {
		p.tracer = tracer
	}
	return p
}

// WithMetrics sets the recorder notified after every build.
func (p *Parser) WithMetrics(recorder Recorder) *Parser {
	p.metrics = recorder
	return p
}

// Parse reads the source file at path and builds its AST.
func (p *Parser) Parse(ctx context.Context, path string) (ast.Node, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, stlcErrors.Wrap(stlcErrors.KindIO, "Failed to access file", err)
	}

	if fileInfo.Size() > p.maxFileSize {
		return nil, stlcErrors.Newf(stlcErrors.KindLimit,
			"File size %d exceeds maximum %d bytes", fileInfo.Size(), p.maxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, stlcErrors.Wrap(stlcErrors.KindIO, "Failed to read file", err)
	}

	return p.ParseBytes(ctx, data, path)
}

// ParseBytes builds the AST of source text held in memory. sourcePath only
// labels logs and spans.
func (p *Parser) ParseBytes(ctx context.Context, data []byte, sourcePath string) (ast.Node, error) {
	return p.run(ctx, "stlc.parse", sourcePath, func() (ast.Node, error) {
		if err := p.checkSize(len(data)); err != nil {
			return nil, err
		}

		pairs, err := grammar.Parse(string(data), grammar.WithMaxDepth(p.maxDepth))
		if err != nil {
			return nil, err
		}
		return newBuilder(p.maxDepth).buildAST(pairs)
	})
}

// ParseTree builds the AST of a parse tree serialized as YAML.
func (p *Parser) ParseTree(ctx context.Context, data []byte, sourcePath string) (ast.Node, error) {
	return p.run(ctx, "stlc.parse_tree", sourcePath, func() (ast.Node, error) {
		if err := p.checkSize(len(data)); err != nil {
			return nil, err
		}

		pairs, err := grammar.DecodeYAML(data)
		if err != nil {
			return nil, err
		}
		return newBuilder(p.maxDepth).buildAST(pairs)
	})
}

// Build converts an already parsed pair sequence into an AST.
func (p *Parser) Build(ctx context.Context, pairs []*grammar.Pair, sourcePath string) (ast.Node, error) {
	return p.run(ctx, "stlc.build", sourcePath, func() (ast.Node, error) {
		return newBuilder(p.maxDepth).buildAST(pairs)
	})
}

func (p *Parser) checkSize(n int) error {
	if int64(n) > p.maxFileSize {
		return stlcErrors.Newf(stlcErrors.KindLimit, "Data size %d exceeds maximum %d bytes", n, p.maxFileSize)
	}
	return nil
}

// run wraps one build with a span, a log record and a metrics observation.
func (p *Parser) run(ctx context.Context, spanName, sourcePath string, fn func() (ast.Node, error)) (ast.Node, error) {
	if logging.GetBuildID(ctx) == "" {
		ctx = logging.WithBuildID(ctx, logging.NewBuildID())
	}
	if sourcePath != "" {
		ctx = logging.WithSource(ctx, sourcePath)
	}

	ctx, span := p.tracer.Start(ctx, spanName, tracing.BuildStart(logging.GetBuildID(ctx), sourcePath))
	defer span.End()

	start := time.Now()
	node, err := fn()
	duration := time.Since(start)

	if err != nil {
		kind := string(stlcErrors.KindOf(err))
		tracing.SetBuildError(span, err, kind)

		p.logger.DebugContext(ctx, "build failed",
			"error_kind", kind,
			"error", err,
			"duration", duration,
		)
		p.record(OutcomeFailure, kind, duration, 0)
		return nil, err
	}

	nodes := ast.Count(node)
	tracing.SetBuildResult(span, string(node.Kind()), nodes)

	p.logger.DebugContext(ctx, "AST built",
		"root", string(node.Kind()),
		"nodes", nodes,
		"duration", duration,
	)
	p.record(OutcomeSuccess, "", duration, nodes)
	return node, nil
}

func (p *Parser) record(outcome, kind string, duration time.Duration, nodes int) {
	if p.metrics == nil {
		return
	}
	p.metrics.RecordBuild(outcome, kind, duration, nodes)
}

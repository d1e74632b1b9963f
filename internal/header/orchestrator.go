package header

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"vcfheader/internal/model"
	"vcfheader/internal/source"
)

// Result is a merged run together with the files that contributed to it.
type Result struct {
	Files  []string             `json:"files"`
	Fields model.HeaderFieldSet `json:"fields"`
}

// Orchestrator resolves a pattern, extracts every file's header
// concurrently and merges the results in file-list order.
type Orchestrator struct {
	Resolver source.Resolver
	Opener   source.Opener
	Logger   *log.Logger

	// Parallelism bounds concurrent file reads. Zero means GOMAXPROCS.
	Parallelism int
}

// NewOrchestrator returns an Orchestrator over the OS filesystem.
func NewOrchestrator(logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		Resolver: source.NewGlobResolver(nil),
		Opener:   source.NewFileOpener(nil),
		Logger:   logger,
	}
}

// MergeHeaders merges the headers of every file matching pattern using the
// OS filesystem. A pattern matching nothing yields the empty set.
func MergeHeaders(ctx context.Context, pattern string) (model.HeaderFieldSet, error) {
	return NewOrchestrator(nil).MergeHeaders(ctx, pattern)
}

// MergeHeaders is Run without the file list.
func (o *Orchestrator) MergeHeaders(ctx context.Context, pattern string) (model.HeaderFieldSet, error) {
	res, err := o.Run(ctx, pattern)
	if err != nil {
		return model.HeaderFieldSet{}, err
	}
	return res.Fields, nil
}

// Run resolves pattern and merges the headers of every matching file.
// The first FormatError or IncompatibleHeaderError aborts the run; no
// partial result is returned.
func (o *Orchestrator) Run(ctx context.Context, pattern string) (Result, error) {
	logger := o.logger()

	files, err := o.Resolver.Resolve(ctx, pattern)
	if err != nil {
		return Result{}, err
	}
	logger.Info("resolved input pattern", "pattern", pattern, "files", len(files))
	if len(files) == 0 {
		return Result{Files: []string{}, Fields: model.NewHeaderFieldSet()}, nil
	}

	perFile := make([]model.HeaderFieldSet, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.parallelism())
	for i, path := range files {
		g.Go(func() error {
			fields, err := o.extract(gctx, path)
			if err != nil {
				logger.Error("header extraction failed", "file", path, "error", err)
				return err
			}
			logger.Debug("extracted header", "file", path,
				"infos", len(fields.Infos), "formats", len(fields.Formats))
			perFile[i] = fields
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	merged, err := MergeAll(perFile...)
	if err != nil {
		logger.Error("header merge failed", "error", err)
		return Result{}, err
	}
	return Result{Files: files, Fields: merged}, nil
}

func (o *Orchestrator) extract(ctx context.Context, path string) (model.HeaderFieldSet, error) {
	if err := ctx.Err(); err != nil {
		return model.HeaderFieldSet{}, err
	}
	r, err := o.Opener.Open(ctx, path)
	if err != nil {
		return model.HeaderFieldSet{}, fmt.Errorf("header: %w", err)
	}
	defer r.Close()

	return ExtractFile(path, source.Lines(r))
}

func (o *Orchestrator) parallelism() int {
	if o.Parallelism > 0 {
		return o.Parallelism
	}
	return runtime.GOMAXPROCS(0)
}

func (o *Orchestrator) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

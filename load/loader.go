package load

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/c360studio/semmap/diagnostic"
	"github.com/c360studio/semmap/metric"
	"github.com/c360studio/semmap/selector"
	"github.com/c360studio/semmap/termmap"
)

// Policy decides what happens to a load when a term map is rejected.
type Policy string

const (
	// FailFast aborts the load at the first rejected term map.
	FailFast Policy = "fail-fast"
	// Skip reports rejected term maps and continues.
	Skip Policy = "skip"
)

// ErrRejected is returned by a fail-fast load; it wraps the *termmap.Error.
var ErrRejected = errors.New("term map rejected")

// Options configure a Loader.
type Options struct {
	Policy          Policy
	StrictDatatypes bool

	// Source and Formulation apply to record files that name none.
	Source      string
	Formulation selector.Formulation

	Logger  *slog.Logger
	Metrics *metric.Collector
}

// Rejection locates one rejected term map.
type Rejection struct {
	File  string
	Group string
	Index int // position of the record in its group
	Line  int
	Err   *termmap.Error
}

func (r Rejection) String() string {
	return fmt.Sprintf("%s:%d: group %q map %d: %v", r.File, r.Line, r.Group, r.Index, r.Err)
}

// Result is the outcome of one load.
type Result struct {
	Arena      *termmap.Arena
	Files      []string
	Rejections []Rejection
	Summary    diagnostic.Summary
}

// OK reports whether every term map was accepted.
func (r *Result) OK() bool { return len(r.Rejections) == 0 }

// Selectors returns every source field read by the accepted term maps, in
// first-use order without duplicates.
func (r *Result) Selectors() []selector.Selector {
	set := selector.NewSet()
	for _, g := range r.Arena.Groups() {
		for _, id := range r.Arena.Maps(g) {
			tm, _ := r.Arena.Map(id)
			for _, sel := range tm.ReferencedSelectors() {
				set.Add(sel)
			}
		}
	}
	return set.Items()
}

// Loader builds term maps from record files.
type Loader struct {
	opts   Options
	logger *slog.Logger
}

// NewLoader creates a Loader.
func NewLoader(opts Options) *Loader {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Policy == "" {
		opts.Policy = Skip
	}
	if opts.Formulation == "" {
		opts.Formulation = selector.FormulationColumn
	}
	return &Loader{opts: opts, logger: opts.Logger}
}

// Load reads and validates every file into a fresh arena. Under FailFast the
// first rejection stops the load and is returned wrapped in ErrRejected together
// with the partial result. Decode and I/O failures always abort.
func (l *Loader) Load(ctx context.Context, files []string) (*Result, error) {
	diag := diagnostic.New(l.logger, l.opts.Metrics)
	res := &Result{Arena: termmap.NewArena()}

	var loadErr error
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			loadErr = err
			break
		}
		res.Files = append(res.Files, file)
		if err := l.loadFile(diag, res, file); err != nil {
			loadErr = err
			break
		}
	}

	res.Summary = diag.Finish(len(res.Files))
	return res, loadErr
}

func (l *Loader) loadFile(diag *diagnostic.Context, res *Result, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("open records: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	source := doc.Source
	if source == "" {
		source = l.opts.Source
	}
	formulation := selector.Formulation(doc.Formulation)
	if formulation == "" {
		formulation = l.opts.Formulation
	}

	builder := termmap.NewBuilder(
		selector.NewContextFactory(source, formulation),
		termmap.WithObserver(diag),
		termmap.WithStrictDatatypes(l.opts.StrictDatatypes),
	)

	diag.Logger().Debug("Loading record file",
		"file", file,
		"source", source,
		"groups", len(doc.Groups))

	for _, group := range doc.Groups {
		gid := res.Arena.NewGroup(group.Name)

		for i, rec := range group.Maps {
			role, err := termmap.ParseRole(rec.Role)
			if err != nil {
				return fmt.Errorf("%s:%d: %w", file, rec.Line, err)
			}
			reject := func(tmErr *termmap.Error) error {
				rej := Rejection{File: file, Group: group.Name, Index: i, Line: rec.Line, Err: tmErr}
				res.Rejections = append(res.Rejections, rej)
				if l.opts.Policy == FailFast {
					return fmt.Errorf("%w: %s:%d: group %q map %d: %w",
						ErrRejected, file, rec.Line, group.Name, i, tmErr)
				}
				return nil
			}

			fields, err := rec.Fields()
			if err != nil {
				var tmErr *termmap.Error
				if !errors.As(err, &tmErr) {
					return fmt.Errorf("%s:%d: %w", file, rec.Line, err)
				}
				tmErr.Role = role
				diag.Rejected(role, tmErr)
				if err := reject(tmErr); err != nil {
					return err
				}
				continue
			}

			tm, err := builder.Build(role, fields)
			if err != nil {
				var tmErr *termmap.Error
				if !errors.As(err, &tmErr) {
					return err
				}
				if err := reject(tmErr); err != nil {
					return err
				}
				continue
			}

			if _, err := res.Arena.Add(gid, tm); err != nil {
				return fmt.Errorf("%s:%d: %w", file, rec.Line, err)
			}
		}
	}
	return nil
}

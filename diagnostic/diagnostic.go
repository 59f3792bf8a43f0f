// Package diagnostic collects the outcome of one mapping specification load.
//
// A Context is handed to termmap.NewBuilder as its Observer. It carries a load id,
// a logger enriched with that id and an optional metric collector, and it keeps
// every rejection so callers can report them after the load.
package diagnostic

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/semmap/metric"
	"github.com/c360studio/semmap/termmap"
	"github.com/c360studio/semmap/vocabulary/rml"
)

// Rejection is one term map that failed validation.
type Rejection struct {
	Role termmap.Role
	Err  *termmap.Error
}

// Summary counts the outcomes of a load.
type Summary struct {
	LoadID   string
	Built    int
	Rejected int
	ByKind   map[termmap.Kind]int // rejections per error kind
	ByRole   map[termmap.Role]int // built maps per role
}

// Context is a termmap.Observer scoped to one load.
type Context struct {
	id      string
	logger  *slog.Logger
	metrics *metric.Collector
	started time.Time

	mu         sync.Mutex
	built      int
	byRole     map[termmap.Role]int
	byKind     map[termmap.Kind]int
	rejections []Rejection
}

// New creates a Context with a fresh load id. A nil logger falls back to
// slog.Default(); a nil collector disables metrics.
func New(logger *slog.Logger, metrics *metric.Collector) *Context {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	return &Context{
		id:      id,
		logger:  logger.With("load_id", id),
		metrics: metrics,
		started: time.Now(),
		byRole:  make(map[termmap.Role]int),
		byKind:  make(map[termmap.Kind]int),
	}
}

// LoadID returns the id attached to every log record of this load.
func (c *Context) LoadID() string { return c.id }

// Logger returns the load-scoped logger.
func (c *Context) Logger() *slog.Logger { return c.logger }

// Built implements termmap.Observer.
func (c *Context) Built(tm *termmap.TermMap) {
	c.mu.Lock()
	c.built++
	c.byRole[tm.Role()]++
	c.mu.Unlock()

	c.metrics.RecordBuilt(tm.Role().String(), tm.MapType().String())
	c.logger.Debug("Term map built",
		"role", tm.Role(),
		"link", rml.FieldIRI(tm.Role().GroupPredicate()),
		"map_type", tm.MapType(),
		"term_type", tm.TermType())
}

// Rejected implements termmap.Observer.
func (c *Context) Rejected(role termmap.Role, err *termmap.Error) {
	c.mu.Lock()
	c.byKind[err.Kind]++
	c.rejections = append(c.rejections, Rejection{Role: role, Err: err})
	c.mu.Unlock()

	c.metrics.RecordRejected(role.String(), err.Kind.String())

	attrs := []any{
		"role", role,
		"link", rml.FieldIRI(role.GroupPredicate()),
		"kind", err.Kind,
		"field", err.FieldIRI(),
		"error", err,
	}
	if hint := err.Hint(); hint != "" {
		attrs = append(attrs, "hint", hint)
	}
	c.logger.Warn("Term map rejected", attrs...)
}

// Rejections returns the rejections recorded so far, in order.
func (c *Context) Rejections() []Rejection {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Rejection, len(c.rejections))
	copy(out, c.rejections)
	return out
}

// Summary returns a snapshot of the counts.
func (c *Context) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Summary{
		LoadID:   c.id,
		Built:    c.built,
		Rejected: len(c.rejections),
		ByKind:   make(map[termmap.Kind]int, len(c.byKind)),
		ByRole:   make(map[termmap.Role]int, len(c.byRole)),
	}
	for k, v := range c.byKind {
		s.ByKind[k] = v
	}
	for k, v := range c.byRole {
		s.ByRole[k] = v
	}
	return s
}

// Finish records the load duration and logs the summary.
func (c *Context) Finish(files int) Summary {
	elapsed := time.Since(c.started)
	c.metrics.RecordLoad(elapsed, files)

	s := c.Summary()
	c.logger.Info("Mapping specification loaded",
		"files", files,
		"built", s.Built,
		"rejected", s.Rejected,
		"duration", elapsed)
	return s
}

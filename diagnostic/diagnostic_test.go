package diagnostic

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semmap/metric"
	"github.com/c360studio/semmap/termmap"
	"github.com/c360studio/semmap/vocabulary/rml"
)

func newTestContext(t *testing.T, buf *bytes.Buffer, reg prometheus.Registerer) *Context {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	collector, err := metric.NewCollector(reg, "test")
	require.NoError(t, err)
	return New(logger, collector)
}

func TestContext_RecordsOutcomes(t *testing.T) {
	var buf bytes.Buffer
	reg := prometheus.NewRegistry()
	ctx := newTestContext(t, &buf, reg)

	b := termmap.NewBuilder(nil, termmap.WithObserver(ctx))

	_, err := b.Build(termmap.RoleSubject, termmap.Fields{Template: "http://ex/{id}"})
	require.NoError(t, err)
	_, err = b.Build(termmap.RoleObject, termmap.Fields{Reference: "name"})
	require.NoError(t, err)
	_, err = b.Build(termmap.RoleGraph, termmap.Fields{Template: "http://ex/{id"})
	require.Error(t, err)

	s := ctx.Summary()
	assert.Equal(t, ctx.LoadID(), s.LoadID)
	assert.Equal(t, 2, s.Built)
	assert.Equal(t, 1, s.Rejected)
	assert.Equal(t, 1, s.ByKind[termmap.KindSyntax])
	assert.Equal(t, 1, s.ByRole[termmap.RoleSubject])

	rejections := ctx.Rejections()
	require.Len(t, rejections, 1)
	assert.Equal(t, termmap.RoleGraph, rejections[0].Role)
	assert.Equal(t, rml.TermMapTemplate, rejections[0].Err.Field)

	out := buf.String()
	assert.Contains(t, out, "load_id="+ctx.LoadID())
	assert.Contains(t, out, "Term map rejected")
	assert.Contains(t, out, "hint=")
	assert.Contains(t, out, "field="+rml.R2RMLNamespace+"template")

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestContext_LoadIDIsUUID(t *testing.T) {
	ctx := New(nil, nil)
	_, err := uuid.Parse(ctx.LoadID())
	require.NoError(t, err)
	assert.NotEqual(t, ctx.LoadID(), New(nil, nil).LoadID())
}

func TestContext_Finish(t *testing.T) {
	var buf bytes.Buffer
	reg := prometheus.NewRegistry()
	ctx := newTestContext(t, &buf, reg)

	s := ctx.Finish(4)
	assert.Zero(t, s.Built)
	assert.Contains(t, buf.String(), "Mapping specification loaded")

	count, err := testutil.GatherAndCount(reg, "test_load_files_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestContext_ConcurrentObservers(t *testing.T) {
	ctx := New(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), nil)
	b := termmap.NewBuilder(nil, termmap.WithObserver(ctx))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, _ = b.Build(termmap.RoleObject, termmap.Fields{Reference: "name"})
				return
			}
			_, _ = b.Build(termmap.RoleSubject, termmap.Fields{})
		}(i)
	}
	wg.Wait()

	s := ctx.Summary()
	assert.Equal(t, 10, s.Built)
	assert.Equal(t, 10, s.Rejected)
	assert.Equal(t, 10, s.ByKind[termmap.KindStructural])
}

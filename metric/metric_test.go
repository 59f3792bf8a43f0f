package metric

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollector_NilRegistryDisablesMetrics(t *testing.T) {
	c, err := NewCollector(nil, "")
	require.NoError(t, err)
	assert.Nil(t, c)

	// Recording on a nil collector is a no-op.
	c.RecordBuilt("subject", "template-valued")
	c.RecordRejected("object", "syntax")
	c.RecordLoad(time.Second, 3)
}

func TestCollector_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg, "")
	require.NoError(t, err)

	c.RecordBuilt("subject", "template-valued")
	c.RecordBuilt("subject", "template-valued")
	c.RecordBuilt("object", "reference-valued")
	c.RecordRejected("graph", "structural")
	c.RecordLoad(20*time.Millisecond, 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.built.WithLabelValues("subject", "template-valued")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.built.WithLabelValues("object", "reference-valued")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.rejected.WithLabelValues("graph", "structural")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.filesLoaded))
	assert.Equal(t, 1, testutil.CollectAndCount(c.loadDuration))

	families, err := reg.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "semmap_termmap_built_total")
	assert.Contains(t, names, "semmap_termmap_rejected_total")
	assert.Contains(t, names, "semmap_load_duration_seconds")
	assert.Contains(t, names, "semmap_load_files_total")
}

func TestNewCollector_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first, err := NewCollector(reg, "test")
	require.NoError(t, err)
	second, err := NewCollector(reg, "test")
	require.NoError(t, err)

	second.RecordRejected("object", "data")
	assert.Equal(t, 1.0, testutil.ToFloat64(first.rejected.WithLabelValues("object", "data")))
}

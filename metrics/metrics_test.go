package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRun(t *testing.T) {
	before := testutil.ToFloat64(PipelineRunsTotal.WithLabelValues("metrics-test", OutcomeOK))
	RecordRun("metrics-test", OutcomeOK, 3*time.Millisecond)
	after := testutil.ToFloat64(PipelineRunsTotal.WithLabelValues("metrics-test", OutcomeOK))
	assert.Equal(t, before+1, after)
}

func TestRecordDroppedIgnoresZero(t *testing.T) {
	c := RowsDroppedTotal.WithLabelValues("metrics-test")
	before := testutil.ToFloat64(c)
	RecordDropped("metrics-test", 0)
	assert.Equal(t, before, testutil.ToFloat64(c))
	RecordDropped("metrics-test", 4)
	assert.Equal(t, before+4, testutil.ToFloat64(c))
}

func TestRecordStaleAndLoad(t *testing.T) {
	RecordStale("metrics-test", "site_id")
	assert.GreaterOrEqual(t, testutil.ToFloat64(StaleSelectionsTotal.WithLabelValues("metrics-test", "site_id")), 1.0)

	RecordLoad("metrics-test", LoadMiss)
	assert.GreaterOrEqual(t, testutil.ToFloat64(DatasetLoadsTotal.WithLabelValues("metrics-test", LoadMiss)), 1.0)
}

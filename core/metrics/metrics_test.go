package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	assert.Equal(t, "2xx", ClassifyStatus(201))
	assert.Equal(t, "4xx", ClassifyStatus(404))
	assert.Equal(t, "5xx", ClassifyStatus(503))
	assert.Equal(t, "error", ClassifyStatus(0))
}

func TestRecordRequest(t *testing.T) {
	before := testutil.ToFloat64(remoteRequestsTotal.WithLabelValues("GET", "outlets", "2xx"))
	RecordRequest("GET", "outlets", 200, 10*time.Millisecond)
	after := testutil.ToFloat64(remoteRequestsTotal.WithLabelValues("GET", "outlets", "2xx"))
	assert.Equal(t, before+1, after)
}

func TestRecordReconciliation(t *testing.T) {
	RecordReconciliation("create", nil)
	RecordReconciliation("create", errors.New("x"))
	assert.GreaterOrEqual(t, testutil.ToFloat64(reconciliationsTotal.WithLabelValues("create", "ok")), float64(1))
	assert.GreaterOrEqual(t, testutil.ToFloat64(reconciliationsTotal.WithLabelValues("create", "error")), float64(1))
}

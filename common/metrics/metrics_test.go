package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveUpstream(t *testing.T) {
	before := testutil.ToFloat64(UpstreamRequests.WithLabelValues(OutcomeHTTPError))

	ObserveUpstream(OutcomeHTTPError, 120*time.Millisecond)

	after := testutil.ToFloat64(UpstreamRequests.WithLabelValues(OutcomeHTTPError))
	assert.Equal(t, before+1, after)
	assert.Equal(t, 1, testutil.CollectAndCount(UpstreamDuration))
}

func TestObserveResponse(t *testing.T) {
	before := testutil.ToFloat64(Responses.WithLabelValues("502"))

	ObserveResponse(502)
	ObserveResponse(502)

	assert.Equal(t, before+2, testutil.ToFloat64(Responses.WithLabelValues("502")))
}

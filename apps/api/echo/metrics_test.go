package echoapi

import (
	"net/http"
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	a := setup(t)

	a.do(http.MethodGet, "/discipline", "")
	a.do(http.MethodGet, "/discipline", "")
	a.do(http.MethodGet, "/admin/profesori", "")

	assert.Equal(t, 2.0, promtest.ToFloat64(a.metrics.requests.WithLabelValues(http.MethodGet, "/discipline", "200")))
	assert.Equal(t, 1.0, promtest.ToFloat64(a.metrics.requests.WithLabelValues(http.MethodGet, "/admin/profesori", "401")))
}

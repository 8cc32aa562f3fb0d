package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerExposesCallMetrics(t *testing.T) {
	before := testutil.ToFloat64(CallsTotal.WithLabelValues("missed"))
	CallsTotal.WithLabelValues("missed").Inc()
	Contacts.Set(3)
	assert.Equal(t, before+1, testutil.ToFloat64(CallsTotal.WithLabelValues("missed")))

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `callsim_calls_total{outcome="missed"}`)
	assert.Contains(t, string(body), "callsim_contacts 3")
	assert.Contains(t, string(body), "callsim_call_duration_seconds_bucket")
}

func TestHandlerOnlyServesMetrics(t *testing.T) {
	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

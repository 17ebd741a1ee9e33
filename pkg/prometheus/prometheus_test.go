package prometheus

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vriksha-lab/backend/internal/common"
)

func TestHandler(t *testing.T) {
	common.PromCounters[common.HTTPRequestTotal].WithLabelValues("GET", "200").Inc()
	common.PromGauges[common.SaplingsByStatus].WithLabelValues("Healthy").Set(3)

	server := httptest.NewServer(NewHandler())
	defer server.Close()

	resp, err := server.Client().Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `http_requests_total{method="GET",status_code="200"}`)
	require.Contains(t, string(body), `saplings_by_status{status="Healthy"} 3`)
}

func TestRegistry_Once(t *testing.T) {
	require.Same(t, Registry(), Registry())
	require.NotPanics(t, func() { NewHandler() })
}

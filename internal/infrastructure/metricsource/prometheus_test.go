package metricsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xdd7520/QualityStar/internal/utils/httpclients"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, queryPath, r.URL.Path)
		assert.Equal(t, "http_server_requests_seconds_count", r.URL.Query().Get("query"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPrometheusClient_Query(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{
		"status": "success",
		"data": {
			"resultType": "vector",
			"result": [
				{"metric": {"__name__": "http_server_requests_seconds_count", "application": "ORDER-SVC", "uri": "/api/orders", "method": "GET"}, "value": [1714550400, "12"]},
				{"metric": {"application": "USER-SVC", "uri": "/actuator/health", "method": "GET"}, "value": [1714550400, "3"]}
			]
		}
	}`)
	client := NewPrometheusClient(httpclients.NewClient("prometheus"), srv.URL+"/", time.Second)

	samples, err := client.Query(context.Background(), "http_server_requests_seconds_count")
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, "ORDER-SVC", samples[0].Application)
	assert.Equal(t, "/api/orders", samples[0].URI)
	assert.Equal(t, "GET", samples[0].Method)
	assert.Equal(t, "http_server_requests_seconds_count", samples[0].Labels["__name__"])
}

func TestPrometheusClient_NonSuccessStatus(t *testing.T) {
	srv := newServer(t, http.StatusServiceUnavailable, `{"status":"error","error":"down"}`)
	client := NewPrometheusClient(httpclients.NewClient("prometheus"), srv.URL, time.Second)

	_, err := client.Query(context.Background(), "http_server_requests_seconds_count")
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal))
}

func TestPrometheusClient_ErrorBody(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"status":"error","errorType":"bad_data","error":"parse error"}`)
	client := NewPrometheusClient(httpclients.NewClient("prometheus"), srv.URL, time.Second)

	_, err := client.Query(context.Background(), "http_server_requests_seconds_count")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad_data")
}

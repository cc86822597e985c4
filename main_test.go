package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdaptRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/events?x=1&x=2&y=3", strings.NewReader("body"))
	r.Header.Set("X-Request-Id", "req-42")
	r.Header.Set("User-Agent", "test-agent")

	req, err := adaptRequest(r)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, req.HTTPMethod)
	assert.Equal(t, "/api/events", req.Path)
	assert.Equal(t, "1", req.QueryStringParameters["x"])
	assert.Equal(t, "3", req.QueryStringParameters["y"])
	assert.Equal(t, "test-agent", req.Headers["User-Agent"])
	assert.Equal(t, "body", req.Body)
	assert.Equal(t, "req-42", req.RequestContext.RequestID)
	assert.Equal(t, r.RemoteAddr, req.RequestContext.Identity.SourceIP)
}

func TestWriteResponse(t *testing.T) {
	w := httptest.NewRecorder()
	writeResponse(w, events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Cache-Control": "s-maxage=900, stale-while-revalidate=86400"},
		Body:       `{"ok":true}`,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "s-maxage=900, stale-while-revalidate=86400", w.Header().Get("Cache-Control"))
	assert.Equal(t, `{"ok":true}`, w.Body.String())
}

func TestNewMux(t *testing.T) {
	var seen events.APIGatewayProxyRequest
	stub := func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		seen = req
		return events.APIGatewayProxyResponse{StatusCode: http.StatusNoContent}, nil
	}

	server := httptest.NewServer(newMux(stub))
	defer server.Close()

	t.Run("events route goes through the lambda handler", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodOptions, server.URL+"/api/events", nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Equal(t, http.MethodOptions, seen.HTTPMethod)
	})

	t.Run("healthz", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/healthz")
		require.NoError(t, err)
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "ok", string(body))
	})

	t.Run("metrics", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestNewRootCmd_Flags(t *testing.T) {
	t.Setenv("PORT", "9090")
	cmd := newRootCmd()

	port, err := cmd.Flags().GetString("port")
	require.NoError(t, err)
	assert.Equal(t, "9090", port)

	envFile, err := cmd.Flags().GetString("env-file")
	require.NoError(t, err)
	assert.Equal(t, ".env", envFile)
}

package probe_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alejandrodnm/nomnom/internal/adapters/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbe_Array(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Token abc", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"a":1},{"a":2},{"a":3}]`))
	}))
	defer srv.Close()

	res := probe.New(time.Second).Probe(context.Background(), srv.URL, map[string]string{"Authorization": "Token abc"})
	require.NoError(t, res.Err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 3, res.Items)
	assert.Greater(t, res.Latency, time.Duration(0))
}

func TestProbe_Object(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[],"next_cursor":"LTE="}`))
	}))
	defer srv.Close()

	res := probe.New(time.Second).Probe(context.Background(), srv.URL, nil)
	require.NoError(t, res.Err)
	assert.Equal(t, 1, res.Items)
}

func TestProbe_NotJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>ok</html>`))
	}))
	defer srv.Close()

	res := probe.New(time.Second).Probe(context.Background(), srv.URL, nil)
	require.NoError(t, res.Err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Zero(t, res.Items)
}

func TestProbe_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`[1,2]`))
	}))
	defer srv.Close()

	res := probe.New(time.Second).Probe(context.Background(), srv.URL, nil)
	require.NoError(t, res.Err)
	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode)
	assert.Zero(t, res.Items, "solo se cuentan elementos con 200")
}

func TestProbe_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	res := probe.New(time.Second).Probe(context.Background(), url, nil)
	assert.Error(t, res.Err)
	assert.Zero(t, res.StatusCode)
}

func TestProbe_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	res := probe.New(50*time.Millisecond).Probe(context.Background(), srv.URL, nil)
	assert.Error(t, res.Err)
}

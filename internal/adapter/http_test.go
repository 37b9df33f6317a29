package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastRetry = &RetryPolicy{
	InitialInterval: time.Millisecond,
	MaxInterval:     5 * time.Millisecond,
	MaxElapsedTime:  500 * time.Millisecond,
}

func TestRealHTTPClient_GetBytes(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			_, _ = w.Write([]byte(`{"name":"pack"}`))
		}))
		defer server.Close()

		body, err := NewHTTPClient(time.Second, fastRetry).GetBytes(context.Background(), server.URL)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"pack"}`, string(body))
	})

	t.Run("not found is permanent", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			http.NotFound(w, r)
		}))
		defer server.Close()

		_, err := NewHTTPClient(time.Second, fastRetry).GetBytes(context.Background(), server.URL)
		require.Error(t, err)
		assert.True(t, IsStatus(err, http.StatusNotFound))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("rate limited then success", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		body, err := NewHTTPClient(time.Second, fastRetry).GetBytes(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "{}", string(body))
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("server errors exhaust retries", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := NewHTTPClient(time.Second, fastRetry).GetBytes(context.Background(), server.URL)
		require.Error(t, err)
		assert.True(t, IsStatus(err, http.StatusBadGateway))
	})

	t.Run("canceled context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewHTTPClient(time.Second, fastRetry).GetBytes(ctx, server.URL)
		assert.Error(t, err)
	})
}

func TestRealJCS_Hash(t *testing.T) {
	j := NewJCS()
	a, err := j.Hash([]byte(`{"b":1,"a":"x"}`))
	require.NoError(t, err)
	b, err := j.Hash([]byte(`{ "a": "x", "b": 1 }`))
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	_, err = j.Hash([]byte(`not json`))
	assert.Error(t, err)
}

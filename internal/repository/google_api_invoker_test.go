//go:build unit

package repository

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lichwu/iapush/internal/service"
	"github.com/lichwu/iapush/internal/util/iaperror"

	"github.com/stretchr/testify/require"
)

func TestInvokeForwardsMethodHeadersAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer ya29.x", r.Header.Get("Authorization"))
		raw, _ := io.ReadAll(r.Body)
		require.JSONEq(t, `{"developerPayload":"uid:7"}`, string(raw))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	result, err := NewGoogleAPIInvoker().Invoke(context.Background(), service.APICall{
		Method:  http.MethodPost,
		URL:     srv.URL + "/acknowledge",
		Headers: map[string]string{"Authorization": "Bearer ya29.x"},
		Body:    []byte(`{"developerPayload":"uid:7"}`),
	})
	require.NoError(t, err)
	require.True(t, result.Success())
}

func TestInvokePassesThroughUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":401,"status":"UNAUTHENTICATED"}}`))
	}))
	defer srv.Close()

	result, err := NewGoogleAPIInvoker().Invoke(context.Background(), service.APICall{
		Method: http.MethodGet,
		URL:    srv.URL,
	})
	require.NoError(t, err)
	require.Equal(t, 401, result.StatusCode)
	require.False(t, result.Success())
}

func TestInvokeTransportError(t *testing.T) {
	_, err := NewGoogleAPIInvoker().Invoke(context.Background(), service.APICall{
		Method: http.MethodGet,
		URL:    "http://127.0.0.1:1/unreachable",
	})
	require.Error(t, err)
	var transportErr *iaperror.TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestInvokeRespectsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewGoogleAPIInvoker().Invoke(ctx, service.APICall{
		Method: http.MethodGet,
		URL:    srv.URL,
	})
	require.Error(t, err)
}

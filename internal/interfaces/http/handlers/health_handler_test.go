package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

type pingerStub struct{ err error }

func (p pingerStub) PingContext(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	r := newTestRouter()
	r.GET("/health", NewHealthHandler(pingerStub{}).Health)
	w := doRequest(r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, "ok", body["database"])
	require.Equal(t, true, body["ok"])

	r = newTestRouter()
	r.GET("/health", NewHealthHandler(pingerStub{err: errors.New("down")}).Health)
	w = doRequest(r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Equal(t, "degraded", decodeBody(t, w)["status"])

	r = newTestRouter()
	r.GET("/health", NewHealthHandler(nil).Health)
	w = doRequest(r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "unconfigured", decodeBody(t, w)["database"])
}

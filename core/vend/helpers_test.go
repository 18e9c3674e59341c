package vend_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vend-sync/core/vend"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestClient starts a server for handler and returns a client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*vend.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := vend.NewClient(vend.Config{
		SiteID:      "acme",
		Token:       "secret-token",
		BaseURL:     srv.URL + "/api/",
		Concurrency: 3,
		PageSize:    100,
	}, zap.NewNop())
	require.NoError(t, err)
	return client, srv
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

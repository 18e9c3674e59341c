package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"vend-sync/core/vend"
	"vend-sync/core/xref"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type route func(body map[string]any, r *http.Request) (int, any)

// fakeVend is an in-process Vend API that records the calls it receives.
type fakeVend struct {
	t      *testing.T
	mu     sync.Mutex
	calls  []string
	bodies []map[string]any
	routes map[string]route
}

func newFakeVend(t *testing.T) *fakeVend {
	return &fakeVend{t: t, routes: map[string]route{}}
}

func (f *fakeVend) on(method, path string, fn route) {
	f.routes[method+" "+path] = fn
}

func (f *fakeVend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeVend) Bodies() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.bodies...)
}

func (f *fakeVend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api")

	var body map[string]any
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		_ = json.Unmarshal(raw, &body)
	}

	f.mu.Lock()
	f.calls = append(f.calls, key)
	if body != nil {
		f.bodies = append(f.bodies, body)
	}
	fn, ok := f.routes[key]
	f.mu.Unlock()

	if !ok {
		f.t.Errorf("unexpected Vend call %s", key)
		w.WriteHeader(http.StatusNotFound)
		return
	}

	status, out := fn(body, r)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(out)
}

type recordedRef struct {
	kind, identifier, vendID string
	object                   map[string]any
}

type fakeRefs struct {
	records []recordedRef
}

func (r *fakeRefs) Record(ctx context.Context, kind, identifier, vendID string, object map[string]any) (*xref.ExternalReference, error) {
	r.records = append(r.records, recordedRef{kind: kind, identifier: identifier, vendID: vendID, object: object})
	return &xref.ExternalReference{Kind: kind, Identifier: identifier, VendID: vendID, Object: object}, nil
}

func newTestClient(t *testing.T, fake *fakeVend) *vend.Client {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := vend.NewClient(vend.Config{
		SiteID:      "acme",
		Token:       "token",
		BaseURL:     srv.URL + "/api",
		Concurrency: 3,
		PageSize:    100,
	}, zap.NewNop())
	require.NoError(t, err)
	return client
}

func setupTestApp(t *testing.T, fake *fakeVend, refs References) *fiber.App {
	t.Helper()
	app := fiber.New()
	require.NoError(t, NewFeature(newTestClient(t, fake), refs, "Vend", zap.NewNop()).Load(app))
	return app
}

func post(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

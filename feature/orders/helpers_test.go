package orders

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

func (f *fakeVend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api")
	f.mu.Lock()
	f.calls = append(f.calls, key)
	fn, ok := f.routes[key]
	f.mu.Unlock()

	if !ok {
		f.t.Errorf("unexpected Vend call %s", key)
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var body map[string]any
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		_ = json.Unmarshal(raw, &body)
	}
	status, out := fn(body, r)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(out)
}

type fakeArchive struct {
	mu   sync.Mutex
	puts []string
}

func (a *fakeArchive) Put(ctx context.Context, kind, id string, doc any) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.puts = append(a.puts, kind+"/"+id)
	return kind + "/" + id + ".json", nil
}

type fakeRefs struct {
	cancelled []string
}

func (r *fakeRefs) CancelTransfer(ctx context.Context, name string) (int, error) {
	r.cancelled = append(r.cancelled, name)
	return 2, nil
}

func setupTestApp(t *testing.T, fake *fakeVend, refs TransferReferences, archive Archiver) *fiber.App {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := vend.NewClient(vend.Config{
		SiteID:      "acme",
		Token:       "token",
		BaseURL:     srv.URL + "/api",
		Register:    "Main Register",
		Concurrency: 3,
		PageSize:    100,
	}, zap.NewNop())
	require.NoError(t, err)

	app := fiber.New()
	NewFeature(client, refs, archive, "Vend", zap.NewNop()).Load(app)
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

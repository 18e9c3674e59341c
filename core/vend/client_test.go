package vend_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"vend-sync/core/vend"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConfig(t *testing.T) {
	t.Run("MissingCredentials", func(t *testing.T) {
		err := vend.Config{Concurrency: 3, PageSize: 100}.Validate()
		assert.Error(t, err)
	})

	t.Run("TenantURL", func(t *testing.T) {
		cfg := vend.Config{SiteID: "acme", Token: "t", Concurrency: 3, PageSize: 100}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "https://acme.vendhq.com/api", cfg.URL())
	})

	t.Run("ConcurrencyCapped", func(t *testing.T) {
		cfg := vend.Config{SiteID: "acme", Token: "t", Concurrency: 20, PageSize: 100}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Concurrency")

		cfg.Concurrency = 3
		assert.NoError(t, cfg.Validate())
	})

	t.Run("BaseURLOverride", func(t *testing.T) {
		cfg := vend.Config{SiteID: "acme", BaseURL: "http://localhost:9999/api/"}
		assert.Equal(t, "http://localhost:9999/api", cfg.URL())
	})

	t.Run("NewClientRejectsInvalidConfig", func(t *testing.T) {
		client, err := vend.NewClient(vend.Config{}, zap.NewNop())
		assert.Error(t, err)
		assert.Nil(t, client)
	})
}

func TestClient_Request(t *testing.T) {
	t.Run("SendsBearerTokenAndJSON", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/consignment", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "application/json", r.Header.Get("Accept"))

			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "PO-1", body["name"])

			writeJSON(w, http.StatusOK, map[string]any{"id": "C1", "name": "PO-1"})
		})

		resp, err := client.Request(context.Background(), http.MethodPost, "/consignment", nil, map[string]any{"name": "PO-1"})
		require.NoError(t, err)
		assert.True(t, resp.OK())
		assert.Equal(t, "C1", resp.String("id"))
		assert.Contains(t, string(resp.Raw), `"PO-1"`)
	})

	t.Run("TopLevelArrayStoredAsData", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, []any{map[string]any{"id": "1"}})
		})

		resp, err := client.Request(context.Background(), http.MethodGet, "outlets", nil, nil)
		require.NoError(t, err)
		assert.Len(t, resp.Items("data"), 1)
	})

	t.Run("EmptyBody", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		resp, err := client.Request(context.Background(), http.MethodDelete, "consignment_product/L1", nil, nil)
		require.NoError(t, err)
		assert.True(t, resp.OK())
		assert.Empty(t, resp.Body)
	})

	t.Run("MalformedJSONIsTransportError", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = io.WriteString(w, "{not json")
		})

		resp, err := client.Request(context.Background(), http.MethodGet, "outlets", nil, nil)
		assert.Nil(t, resp)
		assert.True(t, vend.IsTransport(err))
		assert.False(t, vend.IsValidation(err))
	})

	t.Run("ConnectionRefusedIsTransportError", func(t *testing.T) {
		client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
		srv.Close()

		_, err := client.Request(context.Background(), http.MethodGet, "outlets", nil, nil)
		require.Error(t, err)
		assert.True(t, vend.IsTransport(err))
	})

	t.Run("APIErrorIsNotTransportError", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Bad request", "details": "name is required"})
		})

		resp, err := client.Request(context.Background(), http.MethodPost, "supplier", nil, map[string]any{})
		require.NoError(t, err)
		assert.False(t, resp.OK())
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestClient_CircuitBreaker(t *testing.T) {
	var hits atomic.Int32
	var broken atomic.Bool
	broken.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if broken.Load() {
			_, _ = io.WriteString(w, "<html>gateway error</html>")
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Bad request"})
	}))
	t.Cleanup(srv.Close)

	client, err := vend.NewClient(vend.Config{
		SiteID:                 "acme",
		Token:                  "secret-token",
		BaseURL:                srv.URL + "/api",
		Concurrency:            1,
		PageSize:               100,
		BreakerFailures:        2,
		BreakerCooldownSeconds: 60,
	}, zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := client.Request(ctx, http.MethodGet, "outlets", nil, nil)
		assert.True(t, vend.IsTransport(err))
		assert.False(t, errors.Is(err, gobreaker.ErrOpenState))
	}

	broken.Store(false)
	_, err = client.Request(ctx, http.MethodGet, "outlets", nil, nil)
	assert.True(t, vend.IsTransport(err))
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
	assert.EqualValues(t, 2, hits.Load())
}

func TestClient_CancelledCallsKeepBreakerClosed(t *testing.T) {
	started := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/slow" {
			started <- struct{}{}
			<-r.Context().Done()
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"outlets": []any{}})
	}))
	t.Cleanup(srv.Close)

	client, err := vend.NewClient(vend.Config{
		SiteID: "acme", Token: "secret-token", BaseURL: srv.URL + "/api",
		Concurrency: 1, PageSize: 100, BreakerFailures: 1,
	}, zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()
	_, err = client.Request(ctx, http.MethodGet, "slow", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	resp, err := client.Request(context.Background(), http.MethodGet, "outlets", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClient_APIErrorsKeepBreakerClosed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Bad request"})
	}))
	t.Cleanup(srv.Close)

	client, err := vend.NewClient(vend.Config{
		SiteID: "acme", Token: "secret-token", BaseURL: srv.URL + "/api",
		Concurrency: 1, PageSize: 100, BreakerFailures: 1,
	}, zap.NewNop())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		resp, err := client.Request(context.Background(), http.MethodGet, "outlets", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}
}

func TestClient_SendProductValidates(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": "error", "details": "You cannot edit a SYSTEM product"})
	})

	_, err := client.SendProduct(context.Background(), map[string]any{"id": "p1"})
	require.Error(t, err)
	assert.True(t, vend.IsValidation(err))
	assert.Contains(t, err.Error(), "You cannot edit a SYSTEM product")
}

func TestClient_UpdateInventory(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		details string
		wantErr bool
	}{
		{"DeletedProductTolerated", http.StatusBadRequest, "Cannot update a deleted product", false},
		{"SystemProductTolerated", http.StatusBadRequest, "You cannot edit a SYSTEM product", false},
		{"OtherErrorFails", http.StatusBadRequest, "Something else", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/products", r.URL.Path)
				writeJSON(w, tt.status, map[string]any{"error": "Invalid", "details": tt.details})
			})

			resp, err := client.UpdateInventory(context.Background(), map[string]any{"id": "p1"})
			if tt.wantErr {
				require.Error(t, err)
				var endpointErr *vend.EndpointError
				require.ErrorAs(t, err, &endpointErr)
				assert.Contains(t, endpointErr.Error(), tt.details)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.details, resp.String("details"))
		})
	}

	t.Run("Success", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"product": map[string]any{"id": "p1"}})
		})
		resp, err := client.UpdateInventory(context.Background(), map[string]any{"id": "p1"})
		require.NoError(t, err)
		assert.True(t, resp.OK())
	})
}

func TestClient_FindProductByID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/2.0/products/p1":
			writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"id": "p1", "active": true}})
		default:
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "Not found"})
		}
	})

	product, err := client.FindProductByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", product["id"])
	assert.Equal(t, 1, vend.ProductActive(product))

	missing, err := client.FindProductByID(context.Background(), "gone")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestClient_GetInventoryByID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/2.0/products/p1/inventory", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"data": []any{
			map[string]any{"outlet_id": "o1", "inventory_level": 4},
		}})
	})

	levels, err := client.GetInventoryByID(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, "o1", levels[0]["outlet_id"])
	assert.EqualValues(t, 4, levels[0]["count"])
}

func TestClient_UploadProductImage(t *testing.T) {
	var uploaded bool
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/images/shoe.png":
			_, _ = w.Write([]byte("png-bytes"))
		case "/api/2.0/products/p1/actions/image_upload":
			assert.NoError(t, r.ParseMultipartForm(1<<20))
			file, header, err := r.FormFile("image")
			if !assert.NoError(t, err) {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			defer file.Close()
			content, _ := io.ReadAll(file)
			assert.Equal(t, "png-bytes", string(content))
			assert.Equal(t, "shoe.png", header.Filename)
			uploaded = true
			writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"id": "img1"}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	resp, err := client.UploadProductImage(context.Background(), "p1", srv.URL+"/images/shoe.png")
	require.NoError(t, err)
	assert.True(t, uploaded)
	assert.Equal(t, "img1", resp.Data()["id"])
}

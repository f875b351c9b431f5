package directory_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/directory"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

func newOpenSearchDirectory(t *testing.T, handler http.HandlerFunc) *directory.OpenSearch {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := opensearch.NewClient(opensearch.Config{
		Addresses:    []string{srv.URL},
		DisableRetry: true,
	})
	require.NoError(t, err)
	return directory.NewOpenSearch(client, "")
}

func TestOpenSearch(t *testing.T) {
	t.Parallel()

	t.Run("contract", func(t *testing.T) {
		t.Parallel()

		acme := newTenant("acme")
		dir := newOpenSearchDirectory(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if r.Method != http.MethodGet || r.URL.Path != "/tenants/_doc/acme" {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"_index":"tenants","found":false}`))
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"_index":  "tenants",
				"_id":     "acme",
				"found":   true,
				"_source": acme,
			})
		})

		assertContract(t, dir, acme)
	})

	t.Run("document ids are path escaped", func(t *testing.T) {
		t.Parallel()

		acme := newTenant("acme")
		var (
			mu   sync.Mutex
			uris []string
		)
		dir := newOpenSearchDirectory(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if !strings.HasPrefix(r.RequestURI, "/tenants/_doc/") {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			mu.Lock()
			uris = append(uris, r.RequestURI)
			mu.Unlock()

			if r.RequestURI != "/tenants/_doc/acme" {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"_index":"tenants","found":false}`))
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"_index":  "tenants",
				"_id":     "acme",
				"found":   true,
				"_source": acme,
			})
		})

		cases := map[string]string{
			"acme#evil": "/tenants/_doc/acme%23evil",
			"acme?x=1":  "/tenants/_doc/acme%3Fx=1",
			"100%":      "/tenants/_doc/100%25",
			"acme/evil": "/tenants/_doc/acme%2Fevil",
			"../acme":   "/tenants/_doc/..%2Facme",
		}
		for name, wantURI := range cases {
			mu.Lock()
			uris = nil
			mu.Unlock()

			got, err := dir.FindByCanonicalName(context.Background(), name)
			assert.Nil(t, got, name)
			assert.ErrorIs(t, err, tenant.ErrTenantNotFound, name)

			mu.Lock()
			assert.Equal(t, []string{wantURI}, uris, name)
			mu.Unlock()
		}

		got, err := dir.FindByCanonicalName(context.Background(), "acme")
		require.NoError(t, err)
		assert.Equal(t, acme.ID, got.ID)
	})

	t.Run("missing index is not found", func(t *testing.T) {
		t.Parallel()

		dir := newOpenSearchDirectory(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"type":"index_not_found_exception"},"status":404}`))
		})

		_, err := dir.FindByCanonicalName(context.Background(), "acme")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})

	t.Run("cluster errors pass through", func(t *testing.T) {
		t.Parallel()

		dir := newOpenSearchDirectory(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := dir.FindByCanonicalName(context.Background(), "acme")
		require.Error(t, err)
		assert.NotErrorIs(t, err, tenant.ErrTenantNotFound)
	})
}

package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Vovarama1992/spaces_gateway/internal/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsByRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
		require.Equal(t, http.StatusTeapot, w.Code)
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requests.WithLabelValues("/items/{id}", "GET", "418")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.inflight))
}

func TestObserveStorageError(t *testing.T) {
	m := New()

	m.ObserveStorageError("upload", nil)
	m.ObserveStorageError("upload", ports.NewStorageError(ports.CredentialsMissing, ports.ErrNoCredentials))
	m.ObserveStorageError("delete", errors.New("boom"))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.storageErrors.WithLabelValues("upload", "credentials_missing")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.storageErrors.WithLabelValues("delete", "unexpected")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.ObserveStorageError("presign", errors.New("boom"))

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "spaces_gateway_storage_errors_total"))
}

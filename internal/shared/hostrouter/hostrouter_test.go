package hostrouter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCfg = Config{AdminLabel: "admin"}

func TestRouteAdminHostRewrites(t *testing.T) {
	d := Route(testCfg, "admin.example.com", "/dashboard")

	assert.True(t, d.Rewritten)
	assert.Equal(t, "/admin/dashboard", d.Path)
}

func TestRoutePublicHostPassesThrough(t *testing.T) {
	d := Route(testCfg, "example.com", "/dashboard")

	assert.False(t, d.Rewritten)
	assert.Equal(t, "/dashboard", d.Path)
}

func TestRouteNeverDoublePrefixes(t *testing.T) {
	for _, path := range []string{"/admin", "/admin/dashboard", "/admin/edit/42"} {
		d := Route(testCfg, "admin.example.com", path)
		assert.False(t, d.Rewritten, "path %q must not be rewritten again", path)
		assert.Equal(t, path, d.Path)
	}
}

func TestRouteStripsPort(t *testing.T) {
	d := Route(testCfg, "admin.localhost:8080", "/create")

	assert.True(t, d.Rewritten)
	assert.Equal(t, "/admin/create", d.Path)
}

func TestRouteRootMapsToAdminIndex(t *testing.T) {
	d := Route(testCfg, "admin.example.com", "/")

	assert.True(t, d.Rewritten)
	assert.Equal(t, "/admin", d.Path)
}

func TestRouteExemptsAPIAndStatic(t *testing.T) {
	for _, path := range []string{"/api/contact", "/api/admin/posts", "/static/logo.png", "/healthz"} {
		d := Route(testCfg, "admin.example.com", path)
		assert.False(t, d.Rewritten, "path %q is exempt from rewriting", path)
		assert.Equal(t, path, d.Path)
	}
}

func TestRouteIgnoresDeeperLabels(t *testing.T) {
	// Only the first label is consulted; "blog.admin.example.com" is not
	// the admin host.
	d := Route(testCfg, "blog.admin.example.com", "/dashboard")

	assert.False(t, d.Rewritten)
}

func TestRouteCaseInsensitiveLabel(t *testing.T) {
	d := Route(testCfg, "Admin.Example.COM", "/dashboard")

	assert.True(t, d.Rewritten)
	assert.Equal(t, "/admin/dashboard", d.Path)
}

func TestMiddlewareRewritesRequestPath(t *testing.T) {
	var seenPath string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	})

	handler := Middleware(testCfg, next)

	req := httptest.NewRequest(http.MethodGet, "http://admin.example.com/dashboard", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/admin/dashboard", seenPath)
}

func TestMiddlewareLeavesPublicHostAlone(t *testing.T) {
	var seenPath string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenPath = r.URL.Path
	})

	handler := Middleware(testCfg, next)

	req := httptest.NewRequest(http.MethodGet, "http://www.example.com/blog", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "/blog", seenPath)
}

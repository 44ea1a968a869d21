package hostrouter

import (
	"net"
	"net/http"
	"strings"
)

// Config identifies the admin subdomain. A request whose first hostname
// label equals AdminLabel is served from under the /admin prefix. The
// single-label rule covers both production ("admin.institute.edu") and
// local development ("admin.localhost") hostnames.
type Config struct {
	AdminLabel string
}

// Decision is the outcome of routing one request.
type Decision struct {
	Rewritten bool
	Path      string
}

// exemptPrefixes are never rewritten: API routes and static assets are
// shared between the two hostnames.
var exemptPrefixes = []string{"/api/", "/static/", "/healthz"}

// Route decides whether a request should be rewritten to the admin
// section. Pure function of the host header and path.
func Route(cfg Config, host, path string) Decision {
	pass := Decision{Rewritten: false, Path: path}

	if cfg.AdminLabel == "" {
		return pass
	}

	for _, prefix := range exemptPrefixes {
		if strings.HasPrefix(path, prefix) || path == strings.TrimSuffix(prefix, "/") {
			return pass
		}
	}

	hostname := stripPort(host)
	label, _, _ := strings.Cut(hostname, ".")
	if !strings.EqualFold(label, cfg.AdminLabel) {
		return pass
	}

	// Already under the admin prefix: nothing to do.
	if path == "/admin" || strings.HasPrefix(path, "/admin/") {
		return pass
	}

	rewritten := "/admin" + path
	if path == "/" {
		rewritten = "/admin"
	}

	return Decision{Rewritten: true, Path: rewritten}
}

// Middleware applies Route before the mux sees the request.
func Middleware(cfg Config, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision := Route(cfg, r.Host, r.URL.Path)
		if decision.Rewritten {
			r.URL.Path = decision.Path
		}
		next.ServeHTTP(w, r)
	})
}

func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

package testing

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// ContentServer is a fake delivery API. Environments without a configured
// response answer 404.
type ContentServer struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string]response
	requests  []string
}

type response struct {
	status int
	body   string
}

// NewContentServer starts a server that is closed when the test ends.
func NewContentServer(t *testing.T) *ContentServer {
	t.Helper()
	cs := &ContentServer{responses: make(map[string]response)}
	cs.Server = httptest.NewServer(http.HandlerFunc(cs.handle))
	t.Cleanup(cs.Close)
	return cs
}

// Serve answers env with 200 and body.
func (cs *ContentServer) Serve(env, body string) *ContentServer {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.responses[env] = response{status: http.StatusOK, body: body}
	return cs
}

// Fail answers env with status.
func (cs *ContentServer) Fail(env string, status int) *ContentServer {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.responses[env] = response{status: status}
	return cs
}

// Requests returns the environments requested so far, in order.
func (cs *ContentServer) Requests() []string {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return append([]string(nil), cs.requests...)
}

func (cs *ContentServer) handle(w http.ResponseWriter, r *http.Request) {
	// spaces/{space}/environments/{env}/entries
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 5 || parts[2] != "environments" || parts[4] != "entries" {
		http.Error(w, "bad path", http.StatusBadRequest)
		return
	}
	env := parts[3]

	cs.mu.Lock()
	cs.requests = append(cs.requests, env)
	resp, ok := cs.responses[env]
	cs.mu.Unlock()

	switch {
	case !ok:
		http.NotFound(w, r)
	case resp.status != http.StatusOK:
		http.Error(w, http.StatusText(resp.status), resp.status)
	default:
		w.Header().Set("Content-Type", "application/vnd.contentful.delivery.v1+json")
		_, _ = w.Write([]byte(resp.body))
	}
}

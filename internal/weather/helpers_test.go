package weather

import (
	"embed"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

//go:embed testdata/*.json
var testData embed.FS

func setupMockServer(handler http.HandlerFunc) *httptest.Server {
	return httptest.NewServer(handler)
}

// serveFixture returns a handler that writes the named testdata file with a 200.
func serveFixture(t *testing.T, name string) http.HandlerFunc {
	t.Helper()
	data, err := testData.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("failed to read test data: %v", err)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

// countingHandler wraps h and counts the requests it serves.
func countingHandler(h http.HandlerFunc, calls *atomic.Int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		h(w, r)
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// newTestClient points both endpoints at the same test server.
func newTestClient(server *httptest.Server, opts ...Option) *Client {
	return NewClient(server.URL+"/v1/search", server.URL+"/v1/forecast", server.Client(), opts...)
}

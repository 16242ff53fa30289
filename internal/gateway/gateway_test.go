package gateway

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
)

// closeNotifyRecorder adds the http.CloseNotifier method that
// httputil.ReverseProxy requires but httptest.ResponseRecorder lacks.
type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
}

func (c *closeNotifyRecorder) CloseNotify() <-chan bool { return make(chan bool) }

func TestGatewayProxiesAPIUnchanged(t *testing.T) {
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/films" {
			t.Errorf("upstream saw path %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("authorization header not forwarded: %q", r.Header.Get("Authorization"))
		}
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"proxied":true}`))
	}))
	defer upstream.Close()

	router, err := NewRouter(upstream.URL, t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}

	w := &closeNotifyRecorder{httptest.NewRecorder()}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/films", nil)
	req.Header.Set("Authorization", "Bearer tok")
	router.ServeHTTP(w, req)

	// Status and body must pass through untouched.
	if w.Code != http.StatusTeapot {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusTeapot)
	}
	if w.Body.String() != `{"proxied":true}` {
		t.Fatalf("body: got %s", w.Body.String())
	}
}

func TestGatewayServesStaticAssets(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>films</html>"), 0o644); err != nil {
		t.Fatalf("write asset: %v", err)
	}

	router, err := NewRouter("http://localhost:0", dir, nil)
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/index.html", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body=%s", w.Code, w.Body.String())
	}
	if w.Body.String() != "<html>films</html>" {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}

func TestGatewayRejectsInvalidUpstream(t *testing.T) {
	if _, err := NewRouter("://not-a-url", t.TempDir(), nil); err == nil {
		t.Fatal("expected error for invalid upstream url")
	}
}

package docapi

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.BindAddr = "127.0.0.1"
	cfg.BindPort = 0
	cfg.Settings.StoragePath = filepath.Join(t.TempDir(), "processed")
	return cfg
}

// TestNewServerWithListener_Nil tests that a nil listener is rejected
func TestNewServerWithListener_Nil(t *testing.T) {
	if _, err := NewServerWithListener(testConfig(t), nil); err == nil {
		t.Error("expected error for nil listener")
	}
}

// TestServer_Routes tests that every endpoint is registered
func TestServer_Routes(t *testing.T) {
	server := NewServer(testConfig(t))

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{"GET", "/", http.StatusOK},
		{"GET", "/health", http.StatusOK},
		{"GET", "/api/v1/health", http.StatusOK},
		{"GET", "/documents", http.StatusOK},
		{"GET", "/documents/6ba7b810-9dad-11d1-80b4-00c04fd430c8", http.StatusNotFound},
		{"POST", "/process", http.StatusOK},
		{"GET", "/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			server.Handler().ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

// TestCORSMiddleware tests CORS headers and preflight handling
func TestCORSMiddleware(t *testing.T) {
	server := NewServer(testConfig(t))

	req := httptest.NewRequest("OPTIONS", "/process", nil)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("OPTIONS status = %d, want 204", w.Code)
	}
	expected := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
		"Access-Control-Allow-Headers": "Accept, Content-Type",
		"Access-Control-Max-Age":       "300",
	}
	for header, want := range expected {
		if got := w.Header().Get(header); got != want {
			t.Errorf("Header %s = %q, want %q", header, got, want)
		}
	}
}

// TestServer_StartShutdown tests serving on a pre-bound listener
func TestServer_StartShutdown(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to create test listener: %v", err)
	}

	server, err := NewServerWithListener(testConfig(t), listener)
	if err != nil {
		t.Fatalf("NewServerWithListener() error = %v", err)
	}
	if err := server.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + server.Addr() + "/health")
	if err != nil {
		t.Fatalf("GET /health error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "healthy") {
		t.Errorf("GET /health = %d %s", resp.StatusCode, body)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}

	if _, err := client.Get("http://" + server.Addr() + "/health"); err == nil {
		t.Error("server still serving after Shutdown")
	}
}

// TestServer_StartBindsPort tests binding from config when no listener is given
func TestServer_StartBindsPort(t *testing.T) {
	server := NewServer(testConfig(t))
	if err := server.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer server.Shutdown(context.Background())

	if server.Port() == 0 || strings.HasSuffix(server.Addr(), ":0") {
		t.Errorf("Port() = %d, Addr() = %q, want the bound port", server.Port(), server.Addr())
	}
}

package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dashanan13/AzureContainerOptionDemo/internal/docapi/store"
)

func testSettings(t *testing.T) Settings {
	t.Helper()
	return Settings{
		Environment:              "test",
		LogLevel:                 "INFO",
		ModelName:                "gpt-4o-mini",
		MaxDocumentSizeMB:        1,
		ProcessingTimeoutSeconds: 15,
		StoragePath:              filepath.Join(t.TempDir(), "processed"),
	}
}

func newRouter(settings Settings) (*gin.Engine, *store.Store) {
	gin.SetMode(gin.TestMode)
	docs := store.New(settings.StoragePath)

	router := gin.New()
	router.GET("/", HandleInfo(settings, "1.0.0"))
	router.GET("/health", HandleHealth())
	router.POST("/process", HandleProcess(settings, docs))
	router.GET("/documents", HandleListDocuments(docs))
	router.GET("/documents/:id", HandleGetDocument(docs))
	return router, docs
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) ProcessResult {
	t.Helper()
	var result ProcessResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
	}
	return result
}

// TestHandleHealth tests the fixed liveness body
func TestHandleHealth(t *testing.T) {
	router, _ := newRouter(testSettings(t))
	w := serve(router, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != `{"status":"healthy"}` {
		t.Errorf("body = %s", w.Body.String())
	}
}

// TestHandleHealthDetail tests version and uptime reporting
func TestHandleHealthDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/v1/health", HandleHealthDetail("1.0.0", time.Now().Add(-30*time.Minute)))

	w := serve(router, httptest.NewRequest("GET", "/api/v1/health", nil))
	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "healthy" || resp.Version != "1.0.0" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Uptime != "30m0s" {
		t.Errorf("Uptime = %q, want 30m0s", resp.Uptime)
	}
}

// TestHandleInfo tests that the key is reported but never echoed
func TestHandleInfo(t *testing.T) {
	settings := testSettings(t)
	settings.EmbeddingsAPIKey = "super-secret"
	router, _ := newRouter(settings)

	w := serve(router, httptest.NewRequest("GET", "/", nil))
	if strings.Contains(w.Body.String(), "super-secret") {
		t.Fatal("info response leaked the embeddings key")
	}

	var info InfoResponse
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatal(err)
	}
	if info.Service != ServiceName || info.Status != "running" || info.Version != "1.0.0" {
		t.Errorf("unexpected info: %+v", info)
	}
	if !info.Secrets.EmbeddingsAPIKeyConfigured {
		t.Error("embeddings key should be reported as configured")
	}
	if info.Model.Name != "gpt-4o-mini" || info.Config.MaxDocumentSizeMB != 1 {
		t.Errorf("unexpected model/config: %+v %+v", info.Model, info.Config)
	}
}

// TestEmbeddingsKeyConfigured tests that blank keys count as missing
func TestEmbeddingsKeyConfigured(t *testing.T) {
	for key, want := range map[string]bool{"": false, "   ": false, "k": true} {
		if got := (Settings{EmbeddingsAPIKey: key}).EmbeddingsKeyConfigured(); got != want {
			t.Errorf("EmbeddingsKeyConfigured(%q) = %v, want %v", key, got, want)
		}
	}
}

// TestHandleProcess_JSON tests statistics, mock analysis and storage
func TestHandleProcess_JSON(t *testing.T) {
	settings := testSettings(t)
	router, docs := newRouter(settings)

	body := `{"content":"Azure Container Apps runs containers","filename":"notes.txt"}`
	req := httptest.NewRequest("POST", "/process", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := serve(router, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	result := decodeResult(t, w)

	if !store.ValidID(result.DocumentID) {
		t.Errorf("document_id %q is not a uuid", result.DocumentID)
	}
	if result.Filename != "notes.txt" {
		t.Errorf("filename = %q", result.Filename)
	}
	if !strings.HasSuffix(result.ProcessedAt, "Z") {
		t.Errorf("processed_at = %q, want UTC with Z", result.ProcessedAt)
	}
	if _, err := time.Parse(time.RFC3339Nano, result.ProcessedAt); err != nil {
		t.Errorf("processed_at not RFC3339: %v", err)
	}
	want := Statistics{CharacterCount: 36, WordCount: 5, SizeBytes: 36}
	if result.Statistics != want {
		t.Errorf("statistics = %+v, want %+v", result.Statistics, want)
	}
	if len(result.Analysis.Entities) != 3 || len(result.Analysis.KeyPhrases) != 4 {
		t.Errorf("unexpected analysis: %+v", result.Analysis)
	}
	if result.Analysis.Sentiment.Overall != "neutral" {
		t.Errorf("sentiment = %q", result.Analysis.Sentiment.Overall)
	}
	if result.ProcessingConfig != (ProcessingConfig{TimeoutSeconds: 15, MaxSizeMB: 1}) {
		t.Errorf("processing_config = %+v", result.ProcessingConfig)
	}

	if result.Storage == nil || !result.Storage.Saved {
		t.Fatalf("storage = %+v, want saved", result.Storage)
	}
	if _, err := os.Stat(result.Storage.Path); err != nil {
		t.Errorf("stored file missing: %v", err)
	}
	stored, err := docs.Get(result.DocumentID)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(stored), `"storage"`) {
		t.Error("stored result should not contain the storage block")
	}
}

// TestHandleProcess_MalformedJSON tests that bad JSON is treated as an empty object
func TestHandleProcess_MalformedJSON(t *testing.T) {
	router, _ := newRouter(testSettings(t))

	req := httptest.NewRequest("POST", "/process", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := serve(router, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	result := decodeResult(t, w)
	if result.Filename != "document.txt" || result.Statistics.SizeBytes != 0 {
		t.Errorf("unexpected result: filename=%q stats=%+v", result.Filename, result.Statistics)
	}
}

// TestHandleProcess_Multipart tests file uploads
func TestHandleProcess_Multipart(t *testing.T) {
	router, _ := newRouter(testSettings(t))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "report.txt")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("one two three"))
	mw.Close()

	req := httptest.NewRequest("POST", "/process", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := serve(router, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	result := decodeResult(t, w)
	if result.Filename != "report.txt" || result.Statistics.WordCount != 3 {
		t.Errorf("unexpected result: filename=%q stats=%+v", result.Filename, result.Statistics)
	}
}

// TestHandleProcess_MultipartWithoutFile tests the 400 for a missing file field
func TestHandleProcess_MultipartWithoutFile(t *testing.T) {
	router, _ := newRouter(testSettings(t))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("note", "no file here")
	mw.Close()

	req := httptest.NewRequest("POST", "/process", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := serve(router, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No file provided") {
		t.Errorf("body = %s", w.Body.String())
	}
}

// TestHandleProcess_RawBody tests raw bodies and the empty-body sample
func TestHandleProcess_RawBody(t *testing.T) {
	router, _ := newRouter(testSettings(t))

	req := httptest.NewRequest("POST", "/process", strings.NewReader("plain text body"))
	req.Header.Set("Content-Type", "text/plain")
	result := decodeResult(t, serve(router, req))
	if result.Statistics.WordCount != 3 || result.Filename != "document.txt" {
		t.Errorf("unexpected result: %+v", result.Statistics)
	}

	req = httptest.NewRequest("POST", "/process", nil)
	result = decodeResult(t, serve(router, req))
	if result.Statistics.CharacterCount != len("Sample document") {
		t.Errorf("empty body should process the sample document, got %+v", result.Statistics)
	}
}

// TestHandleProcess_TooLarge tests the 413 for documents over the limit
func TestHandleProcess_TooLarge(t *testing.T) {
	router, _ := newRouter(testSettings(t))

	payload, _ := json.Marshal(map[string]string{"content": strings.Repeat("a", 1024*1024+1)})
	req := httptest.NewRequest("POST", "/process", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := serve(router, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Document exceeds maximum size of 1 MB") {
		t.Errorf("body = %s", w.Body.String())
	}
}

// TestHandleProcess_EscapedJSONAtLimit tests that a document at the size limit
// is accepted even when JSON escaping makes the body several times larger
func TestHandleProcess_EscapedJSONAtLimit(t *testing.T) {
	router, _ := newRouter(testSettings(t))

	content := strings.Repeat("\x01", 1024*1024)
	payload, _ := json.Marshal(map[string]string{"content": content})
	if len(payload) <= 2*len(content)+1<<20 {
		t.Fatalf("payload is only %d bytes, escaping did not expand it", len(payload))
	}

	req := httptest.NewRequest("POST", "/process", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := serve(router, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %.200s)", w.Code, w.Body.String())
	}
	if got := decodeResult(t, w).Statistics.SizeBytes; got != len(content) {
		t.Errorf("size_bytes = %d, want %d", got, len(content))
	}
}

// TestTransportLimit tests the body cap per content type
func TestTransportLimit(t *testing.T) {
	const limit = 1 << 20
	tests := []struct {
		contentType string
		want        int64
	}{
		{"application/json", 6*limit + 1<<20},
		{"application/vnd.api+json", 6*limit + 1<<20},
		{"multipart/form-data", 2*limit + 1<<20},
		{"text/plain", 2*limit + 1<<20},
	}
	for _, tt := range tests {
		if got := transportLimit(tt.contentType, limit); got != tt.want {
			t.Errorf("transportLimit(%q) = %d, want %d", tt.contentType, got, tt.want)
		}
	}
}

// TestHandleProcess_StorageUnavailable tests that processing succeeds without storage
func TestHandleProcess_StorageUnavailable(t *testing.T) {
	settings := testSettings(t)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	settings.StoragePath = filepath.Join(blocker, "processed")
	router, _ := newRouter(settings)

	req := httptest.NewRequest("POST", "/process", strings.NewReader("text"))
	w := serve(router, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	result := decodeResult(t, w)
	if result.Storage == nil || result.Storage.Saved || result.Storage.Reason != "Storage not available" {
		t.Errorf("storage = %+v", result.Storage)
	}
}

// TestDocuments tests listing and fetching stored results
func TestDocuments(t *testing.T) {
	router, _ := newRouter(testSettings(t))

	req := httptest.NewRequest("POST", "/process", strings.NewReader("stored text"))
	id := decodeResult(t, serve(router, req)).DocumentID

	w := serve(router, httptest.NewRequest("GET", "/documents", nil))
	var list struct {
		Documents []DocumentSummary `json:"documents"`
		Count     int               `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if list.Count != 1 || len(list.Documents) != 1 || list.Documents[0].DocumentID != id {
		t.Fatalf("unexpected list: %+v", list)
	}
	if !strings.HasSuffix(list.Documents[0].CreatedAt, "Z") {
		t.Errorf("created_at = %q", list.Documents[0].CreatedAt)
	}

	w = serve(router, httptest.NewRequest("GET", "/documents/"+id, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if decodeResult(t, w).DocumentID != id {
		t.Error("fetched document has wrong id")
	}
}

// TestGetDocument_NotFound tests unknown and malformed ids
func TestGetDocument_NotFound(t *testing.T) {
	router, _ := newRouter(testSettings(t))

	for _, id := range []string{store.NewID(), "not-a-uuid", "6BA7B810-9DAD-11D1-80B4-00C04FD430C8"} {
		w := serve(router, httptest.NewRequest("GET", "/documents/"+id, nil))
		if w.Code != http.StatusNotFound {
			t.Errorf("GET /documents/%s status = %d, want 404", id, w.Code)
		}
		if !strings.Contains(w.Body.String(), "Document not found") {
			t.Errorf("body = %s", w.Body.String())
		}
	}
}

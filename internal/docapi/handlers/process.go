package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/dashanan13/AzureContainerOptionDemo/internal/docapi/store"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/logging"
)

const (
	defaultFilename = "document.txt"
	sampleContent   = "Sample document"

	// processedAtLayout renders UTC timestamps with microseconds and a Z suffix.
	processedAtLayout = "2006-01-02T15:04:05.000000Z07:00"
)

// Statistics are computed from the submitted document.
type Statistics struct {
	CharacterCount int `json:"character_count"`
	WordCount      int `json:"word_count"`
	SizeBytes      int `json:"size_bytes"`
}

// Entity is a recognized entity in the mock analysis.
type Entity struct {
	Text       string  `json:"text"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

// SentimentScores are per-class sentiment probabilities.
type SentimentScores struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// Sentiment is the overall sentiment of the mock analysis.
type Sentiment struct {
	Overall    string          `json:"overall"`
	Confidence float64         `json:"confidence"`
	Scores     SentimentScores `json:"scores"`
}

// Analysis is the fixed mock output. No model is called.
type Analysis struct {
	Entities   []Entity  `json:"entities"`
	KeyPhrases []string  `json:"key_phrases"`
	Sentiment  Sentiment `json:"sentiment"`
}

// ProcessingConfig echoes the limits applied to the request.
type ProcessingConfig struct {
	TimeoutSeconds int `json:"timeout_seconds"`
	MaxSizeMB      int `json:"max_size_mb"`
}

// StorageInfo reports whether the result was persisted.
type StorageInfo struct {
	Saved  bool   `json:"saved"`
	Path   string `json:"path,omitempty"`
	Error  string `json:"error,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// ProcessResult is the response of POST /process and the stored document.
type ProcessResult struct {
	DocumentID       string           `json:"document_id"`
	Filename         string           `json:"filename"`
	ProcessedAt      string           `json:"processed_at"`
	Environment      string           `json:"environment"`
	Model            ModelInfo        `json:"model"`
	Secrets          SecretsInfo      `json:"secrets"`
	Statistics       Statistics       `json:"statistics"`
	Analysis         Analysis         `json:"analysis"`
	ProcessingConfig ProcessingConfig `json:"processing_config"`
	Storage          *StorageInfo     `json:"storage,omitempty"`
}

func mockAnalysis() Analysis {
	return Analysis{
		Entities: []Entity{
			{Text: "Azure", Type: "Technology", Confidence: 0.95},
			{Text: "Container Apps", Type: "Service", Confidence: 0.93},
			{Text: "document", Type: "Concept", Confidence: 0.87},
		},
		KeyPhrases: []string{
			"document processing",
			"container deployment",
			"secrets and configuration",
			"revision management",
		},
		Sentiment: Sentiment{
			Overall:    "neutral",
			Confidence: 0.78,
			Scores:     SentimentScores{Positive: 0.22, Neutral: 0.68, Negative: 0.10},
		},
	}
}

// requestError carries the HTTP status for a rejected request.
type requestError struct {
	status int
	msg    string
}

func (e *requestError) Error() string { return e.msg }

// HandleProcess accepts a document as JSON {"content","filename"}, as a
// multipart upload in the "file" field, or as a raw body, and returns mock
// analysis. The result is also saved to the store when storage is available.
func HandleProcess(settings Settings, docs *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		logging.Info("Document processing request received")

		limit := settings.MaxDocumentBytes()
		tooLarge := &requestError{
			status: http.StatusRequestEntityTooLarge,
			msg:    fmt.Sprintf("Document exceeds maximum size of %d MB", settings.MaxDocumentSizeMB),
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, transportLimit(c.ContentType(), limit))

		content, filename, err := readDocument(c)
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				err = tooLarge
			}
			var reqErr *requestError
			if errors.As(err, &reqErr) {
				c.JSON(reqErr.status, gin.H{"error": reqErr.msg})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		size := len(content)
		if int64(size) > limit {
			logging.Warn("Document too large: %.2f MB", float64(size)/(1024*1024))
			c.JSON(tooLarge.status, gin.H{"error": tooLarge.msg})
			return
		}

		logging.Info("Processing document: %s (%d chars)", filename, utf8.RuneCountInString(content))

		result := ProcessResult{
			DocumentID:  store.NewID(),
			Filename:    filename,
			ProcessedAt: time.Now().UTC().Format(processedAtLayout),
			Environment: settings.Environment,
			Model:       settings.model(),
			Secrets:     settings.secrets(),
			Statistics: Statistics{
				CharacterCount: utf8.RuneCountInString(content),
				WordCount:      len(strings.Fields(content)),
				SizeBytes:      size,
			},
			Analysis: mockAnalysis(),
			ProcessingConfig: ProcessingConfig{
				TimeoutSeconds: settings.ProcessingTimeoutSeconds,
				MaxSizeMB:      settings.MaxDocumentSizeMB,
			},
		}

		result.Storage = saveResult(docs, result)
		c.JSON(http.StatusOK, result)
	}
}

// transportLimit bounds the request body for a document limit. The document
// size is checked after decoding; this only stops unbounded reads. JSON
// escaping can take up to 6 bytes per document byte ("\u0001"), and multipart
// framing adds headers and boundaries.
func transportLimit(contentType string, limit int64) int64 {
	const overhead = 1 << 20
	if isJSON(contentType) {
		return 6*limit + overhead
	}
	return 2*limit + overhead
}

func isJSON(contentType string) bool {
	return contentType == "application/json" || strings.HasSuffix(contentType, "+json")
}

// saveResult stores result (without its storage block) and reports the outcome.
func saveResult(docs *store.Store, result ProcessResult) *StorageInfo {
	if err := docs.Ensure(); err != nil {
		logging.Warn("Could not create storage directory: %v", err)
		return &StorageInfo{Saved: false, Reason: "Storage not available"}
	}

	path, err := docs.Save(result.DocumentID, result)
	if err != nil {
		logging.Error("Failed to save result: %v", err)
		return &StorageInfo{Saved: false, Error: err.Error()}
	}

	logging.Info("Result saved to %s", path)
	return &StorageInfo{Saved: true, Path: path}
}

func readDocument(c *gin.Context) (content, filename string, err error) {
	contentType := c.ContentType()

	switch {
	case isJSON(contentType):
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return "", "", err
		}
		// Malformed JSON is treated as an empty object.
		var req struct {
			Content  *string `json:"content"`
			Filename *string `json:"filename"`
		}
		_ = json.Unmarshal(body, &req)

		filename = defaultFilename
		if req.Filename != nil {
			filename = *req.Filename
		}
		if req.Content != nil {
			content = *req.Content
		}
		return content, filename, nil

	case contentType == "multipart/form-data":
		header, err := c.FormFile("file")
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				return "", "", &requestError{status: http.StatusBadRequest, msg: "No file provided"}
			}
			return "", "", err
		}
		f, err := header.Open()
		if err != nil {
			return "", "", err
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return "", "", err
		}
		filename = header.Filename
		if filename == "" {
			filename = defaultFilename
		}
		return strings.ToValidUTF8(string(data), ""), filename, nil

	default:
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return "", "", err
		}
		content = strings.ToValidUTF8(string(body), "")
		if content == "" {
			content = sampleContent
		}
		return content, defaultFilename, nil
	}
}

// Package handlers implements the docapi HTTP endpoints as gin handler
// factories. Each factory captures its dependencies once at route setup.
package handlers

import "strings"

// Settings are the service settings the handlers report and enforce.
type Settings struct {
	Environment              string
	LogLevel                 string
	ModelName                string
	EmbeddingsAPIKey         string
	MaxDocumentSizeMB        int
	ProcessingTimeoutSeconds int
	StoragePath              string
}

// EmbeddingsKeyConfigured reports whether a non-blank embeddings key is set.
// The key itself is never returned by any endpoint.
func (s Settings) EmbeddingsKeyConfigured() bool {
	return strings.TrimSpace(s.EmbeddingsAPIKey) != ""
}

// MaxDocumentBytes returns the document size limit in bytes.
func (s Settings) MaxDocumentBytes() int64 {
	return int64(s.MaxDocumentSizeMB) * 1024 * 1024
}

// ModelInfo names the configured model.
type ModelInfo struct {
	Name string `json:"name"`
}

// SecretsInfo reports which secrets are present without revealing them.
type SecretsInfo struct {
	EmbeddingsAPIKeyConfigured bool `json:"embeddings_api_key_configured"`
}

func (s Settings) model() ModelInfo {
	return ModelInfo{Name: s.ModelName}
}

func (s Settings) secrets() SecretsInfo {
	return SecretsInfo{EmbeddingsAPIKeyConfigured: s.EmbeddingsKeyConfigured()}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dashanan13/AzureContainerOptionDemo/internal/docapi/store"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/logging"
)

// DocumentSummary is one entry of GET /documents.
type DocumentSummary struct {
	DocumentID string `json:"document_id"`
	SizeBytes  int64  `json:"size_bytes"`
	CreatedAt  string `json:"created_at"`
}

// HandleListDocuments lists results stored on this replica. Storage problems
// are reported in the body with status 200 and an empty list.
func HandleListDocuments(docs *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		logging.Info("Listing processed documents")

		if err := docs.Ensure(); err != nil {
			c.JSON(http.StatusOK, gin.H{"documents": []DocumentSummary{}, "error": "Storage not available"})
			return
		}

		entries, err := docs.List()
		if err != nil {
			logging.Error("Failed to list documents: %v", err)
			c.JSON(http.StatusOK, gin.H{"documents": []DocumentSummary{}, "error": err.Error()})
			return
		}

		summaries := make([]DocumentSummary, 0, len(entries))
		for _, e := range entries {
			summaries = append(summaries, DocumentSummary{
				DocumentID: e.DocumentID,
				SizeBytes:  e.SizeBytes,
				CreatedAt:  e.CreatedAt.UTC().Format(processedAtLayout),
			})
		}

		c.JSON(http.StatusOK, gin.H{"documents": summaries, "count": len(summaries)})
	}
}

// HandleGetDocument returns a stored result by id.
func HandleGetDocument(docs *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		logging.Info("Retrieving document: %s", id)

		data, err := docs.Get(id)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		if err != nil {
			logging.Error("Failed to read document: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
	}
}

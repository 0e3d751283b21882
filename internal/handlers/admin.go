package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"reviewstats/internal/config"
	"reviewstats/internal/models"
)

// CollectionStatter reports the size of a collection
type CollectionStatter interface {
	CollectionStats(ctx context.Context, name string) (*models.CollectionStats, error)
}

// AdminHandler handles administrative requests
type AdminHandler struct {
	database    CollectionStatter
	name        string
	collections config.Collections
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(database CollectionStatter, name string, collections config.Collections) *AdminHandler {
	return &AdminHandler{
		database:    database,
		name:        name,
		collections: collections,
	}
}

// DatabaseStats summarizes the collections the reports read
type DatabaseStats struct {
	DatabaseName   string                   `json:"database_name"`
	TotalDocuments int64                    `json:"total_documents"`
	TotalSize      float64                  `json:"total_size_mb"`
	Collections    []models.CollectionStats `json:"collections"`
	LastUpdated    time.Time                `json:"last_updated"`
}

// GetDatabaseStats handles GET /api/v1/admin/db-stats
func (h *AdminHandler) GetDatabaseStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	stats, err := h.collectDatabaseStats(ctx)
	if err != nil {
		slog.Error("Failed to collect database stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to collect database statistics",
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// collectDatabaseStats gathers stats for the review collections. A collection
// that cannot be inspected is logged and left out.
func (h *AdminHandler) collectDatabaseStats(ctx context.Context) (*DatabaseStats, error) {
	stats := &DatabaseStats{
		DatabaseName: h.name,
		Collections:  []models.CollectionStats{},
		LastUpdated:  time.Now(),
	}

	names := []string{h.collections.Reviews, h.collections.Genres, h.collections.Content}
	var lastErr error
	for _, name := range names {
		collStats, err := h.database.CollectionStats(ctx, name)
		if err != nil {
			slog.Warn("Failed to get collection stats", "collection", name, "error", err)
			lastErr = err
			continue
		}

		stats.TotalDocuments += collStats.Documents
		stats.TotalSize += collStats.DataSize
		stats.Collections = append(stats.Collections, *collStats)
	}

	// Nothing could be read at all
	if len(stats.Collections) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return stats, nil
}

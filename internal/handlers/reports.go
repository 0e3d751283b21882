package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reviewstats/internal/handlers/render"
	"reviewstats/internal/reports"
)

// ReportHandler serves the review reports as JSON
type ReportHandler struct {
	service *reports.Service
}

// NewReportHandler creates a new report handler
func NewReportHandler(service *reports.Service) *ReportHandler {
	return &ReportHandler{
		service: service,
	}
}

// RegisterRoutes mounts the report endpoints under /api/v1
func (h *ReportHandler) RegisterRoutes(router gin.IRouter) {
	v1 := router.Group("/api/v1")
	{
		v1.GET("/reports/top-artists", h.TopArtists)
		v1.GET("/reports/genres", h.Genres)
		v1.GET("/reports/genres/:genre/years", h.GenreTrend)
		v1.GET("/reports/genre-averages", h.GenreAverages)
		v1.GET("/reports/score-distribution", h.ScoreDistribution)
		v1.GET("/search", h.Search)
	}
}

// TopArtists handles GET /api/v1/reports/top-artists
func (h *ReportHandler) TopArtists(c *gin.Context) {
	report, err := h.service.TopArtists(c.Request.Context())
	if err != nil {
		h.fail(c, "Failed to rank artists", err)
		return
	}
	c.JSON(http.StatusOK, render.TopArtists(report))
}

// Genres handles GET /api/v1/reports/genres
func (h *ReportHandler) Genres(c *gin.Context) {
	genres, err := h.service.Genres(c.Request.Context())
	if err != nil {
		h.fail(c, "Failed to list genres", err)
		return
	}
	c.JSON(http.StatusOK, render.Genres(genres))
}

// GenreTrend handles GET /api/v1/reports/genres/:genre/years
func (h *ReportHandler) GenreTrend(c *gin.Context) {
	genre := reports.GenreByLabel(c.Param("genre"))

	groups, err := h.service.GenreTrend(c.Request.Context(), genre)
	if err != nil {
		h.fail(c, "Failed to load genre trend", err)
		return
	}
	c.JSON(http.StatusOK, render.GenreTrend(genre, groups))
}

// GenreAverages handles GET /api/v1/reports/genre-averages
func (h *ReportHandler) GenreAverages(c *gin.Context) {
	groups, err := h.service.GenreAverages(c.Request.Context())
	if err != nil {
		h.fail(c, "Failed to average genres", err)
		return
	}
	c.JSON(http.StatusOK, render.GenreAverages(groups))
}

// ScoreDistribution handles GET /api/v1/reports/score-distribution
func (h *ReportHandler) ScoreDistribution(c *gin.Context) {
	report, err := h.service.ScoreDistribution(c.Request.Context())
	if err != nil {
		h.fail(c, "Failed to build score distribution", err)
		return
	}
	c.JSON(http.StatusOK, render.Distribution(report))
}

// Search handles GET /api/v1/search?term=...&index=...
// Without index it lists the hits; with index it returns that review.
func (h *ReportHandler) Search(c *gin.Context) {
	term := c.Query("term")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter 'term' is required",
		})
		return
	}

	rawIndex, hasIndex := c.GetQuery("index")
	index := 0
	if hasIndex {
		n, err := strconv.Atoi(rawIndex)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Query parameter 'index' must be an integer",
				"details": err.Error(),
			})
			return
		}
		index = n
	}

	ctx := c.Request.Context()
	hits, err := h.service.Search(ctx, term)
	if err != nil {
		h.fail(c, "Failed to search reviews", err)
		return
	}

	if !hasIndex {
		c.JSON(http.StatusOK, render.Search(term, hits))
		return
	}

	hit, err := reports.SelectHit(hits, index)
	if err != nil {
		h.fail(c, "Review index out of range", err)
		return
	}

	detail, err := h.service.ReviewDetail(ctx, hit)
	if err != nil {
		h.fail(c, "Failed to load review", err)
		return
	}
	c.JSON(http.StatusOK, render.Review(term, index, detail))
}

// fail maps report errors to status codes
func (h *ReportHandler) fail(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, reports.ErrIndexOutOfRange), errors.Is(err, reports.ErrReviewNotFound):
		status = http.StatusNotFound
	default:
		slog.Error(message, "path", c.FullPath(), "error", err)
	}

	c.JSON(status, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}

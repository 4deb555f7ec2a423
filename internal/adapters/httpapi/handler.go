package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"tradeJournal/internal/app"
	"tradeJournal/internal/domain"
	"tradeJournal/internal/ports"
)

// maxImportBytes caps the size of an uploaded export file.
const maxImportBytes = 10 << 20

// Handler exposes the journal service over HTTP.
type Handler struct {
	svc    *app.JournalService
	logger ports.Logger
}

// NewHandler creates a new HTTP handler around the journal service.
func NewHandler(svc *app.JournalService, logger ports.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// RegisterRoutes binds the handler methods to the gin engine.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/healthz", h.Health)

	api := router.Group("/api/v1")
	{
		api.POST("/trades/import", h.ImportTrades)
		api.GET("/trades", h.ListTrades)
		api.POST("/trades", h.AddTrade)
		api.DELETE("/trades", h.ClearTrades)
		api.GET("/trades/export", h.ExportTrades)
		api.GET("/stats/daily", h.DailyStats)
		api.GET("/stats/overall", h.OverallStats)
	}
}

// Health reports process liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ImportTrades accepts a broker CSV export, either as a multipart "file"
// field or as the raw request body, and responds with the saved count and a
// preview sample.
func (h *Handler) ImportTrades(c *gin.Context) {
	filename, raw, err := readUpload(c)
	if err != nil {
		h.writeError(c, http.StatusBadRequest, err)
		return
	}

	result, err := h.svc.ImportCSV(c.Request.Context(), filename, raw)
	if err != nil {
		h.writeError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListTrades returns the full stored collection.
func (h *Handler) ListTrades(c *gin.Context) {
	records, err := h.svc.ListTrades(c.Request.Context())
	if err != nil {
		h.writeError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// AddTrade persists one manual journal entry from the request body.
func (h *Handler) AddTrade(c *gin.Context) {
	var rec domain.TradeRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		h.writeError(c, http.StatusBadRequest, err)
		return
	}
	if err := h.svc.AddTrade(c.Request.Context(), rec); err != nil {
		h.writeError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"saved": 1})
}

// ClearTrades removes every record from the store.
func (h *Handler) ClearTrades(c *gin.Context) {
	if err := h.svc.ClearTrades(c.Request.Context()); err != nil {
		h.writeError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

// ExportTrades streams the collection back out as a CSV attachment.
func (h *Handler) ExportTrades(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="trades.csv"`)
	if err := h.svc.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		// Headers are already written; all we can do is log.
		h.logger.Error(c.Request.Context(), err, "Failed to export trades")
	}
}

// DailyStats returns the per-day aggregation.
func (h *Handler) DailyStats(c *gin.Context) {
	stats, err := h.svc.DailyStats(c.Request.Context())
	if err != nil {
		h.writeError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// OverallStats returns the all-time summary.
func (h *Handler) OverallStats(c *gin.Context) {
	stats, err := h.svc.OverallStats(c.Request.Context())
	if err != nil {
		h.writeError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// readUpload extracts the CSV payload from the request: multipart upload when
// present, raw body otherwise.
func readUpload(c *gin.Context) (filename string, raw []byte, err error) {
	if file, ferr := c.FormFile("file"); ferr == nil {
		f, err := file.Open()
		if err != nil {
			return "", nil, err
		}
		defer f.Close()
		raw, err = io.ReadAll(io.LimitReader(f, maxImportBytes))
		return file.Filename, raw, err
	}
	raw, err = io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	return "", raw, err
}

// statusFor maps the application error taxonomy to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ports.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ports.ErrInvalidRecord), errors.Is(err, ports.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, ports.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ports.ErrStoreUnavailable),
		errors.Is(err, ports.ErrQueryFailed),
		errors.Is(err, ports.ErrSaveFailed),
		errors.Is(err, ports.ErrDeleteFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.Error(c.Request.Context(), err, "Request failed", map[string]interface{}{"path": c.FullPath()})
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

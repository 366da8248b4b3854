// internal/api/handlers/orders_handler.go
package handlers

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mojavemfg/mfgdashboard-sub000/internal/parser"
	"github.com/mojavemfg/mfgdashboard-sub000/internal/service"
)

type OrdersHandler struct {
	ingest *service.IngestService
}

func NewOrdersHandler(ingest *service.IngestService) *OrdersHandler {
	return &OrdersHandler{ingest: ingest}
}

type importFn func(ctx context.Context, filename, text string) (*service.ImportResult, error)

type fileImportResult struct {
	Filename string                `json:"filename"`
	Result   *service.ImportResult `json:"result,omitempty"`
	Error    string                `json:"error,omitempty"`
}

// UploadOrderItems ingests order-items export files. Ingestion is
// synchronous so the response carries the exact added/duplicate counts.
func (h *OrdersHandler) UploadOrderItems(c *gin.Context) {
	h.upload(c, h.ingest.ImportOrderItems)
}

// UploadSoldOrders ingests sold-orders (per-order summary) export files.
func (h *OrdersHandler) UploadSoldOrders(c *gin.Context) {
	h.upload(c, h.ingest.ImportSoldOrders)
}

func (h *OrdersHandler) upload(c *gin.Context, fn importFn) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return
	}

	results := make([]fileImportResult, 0, len(files))
	for _, file := range files {
		entry := fileImportResult{Filename: file.Filename}

		text, err := readUpload(file)
		if err != nil {
			log.Error().Err(err).Str("filename", file.Filename).Msg("failed to read uploaded file")
			entry.Error = err.Error()
			results = append(results, entry)
			continue
		}

		result, err := fn(c.Request.Context(), file.Filename, text)
		if err != nil {
			if errors.Is(err, service.ErrNothingToImport) {
				entry.Error = "no usable rows to import"
			} else {
				entry.Error = err.Error()
			}
			results = append(results, entry)
			continue
		}

		entry.Result = result
		results = append(results, entry)
	}

	c.JSON(http.StatusOK, gin.H{"files": results})
}

// readUpload returns the uploaded file as delimited text, converting XLSX
// uploads so spreadsheets enter the same parse path.
func readUpload(file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(file.Filename), ".xlsx") {
		return parser.ConvertXLSX(f)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ListOrderItems returns the persisted line items.
func (h *OrdersHandler) ListOrderItems(c *gin.Context) {
	c.JSON(http.StatusOK, h.ingest.OrderItems(c.Request.Context()))
}

// ListSoldOrders returns the persisted order summaries.
func (h *OrdersHandler) ListSoldOrders(c *gin.Context) {
	c.JSON(http.StatusOK, h.ingest.SoldOrders(c.Request.Context()))
}

// ClearOrders empties both persisted collections. Irreversible; any
// confirmation dialog belongs to the frontend.
func (h *OrdersHandler) ClearOrders(c *gin.Context) {
	if err := h.ingest.ClearOrders(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear orders"})
		return
	}
	c.Status(http.StatusNoContent)
}

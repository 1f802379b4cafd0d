package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retaildash/sales-backend-go/internal/core/export"
	"github.com/retaildash/sales-backend-go/pkg/utils"
)

// ExportCSV downloads the filtered collection as CSV.
func (h *Handlers) ExportCSV(c *gin.Context) {
	h.export(c, export.FormatCSV)
}

// ExportJSON downloads the filtered collection as JSON.
func (h *Handlers) ExportJSON(c *gin.Context) {
	h.export(c, export.FormatJSON)
}

// export runs the shared download path. An empty filtered collection is
// a no-op answered with 204; the exporter logs the diagnostic.
func (h *Handlers) export(c *gin.Context, format export.Format) {
	filtered, ok := h.filteredRecords(c)
	if !ok {
		return
	}

	result, err := h.exporter.Export(filtered, format, c.Query("filename"))
	if err == export.ErrNoData {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if h.collector != nil {
		h.collector.RecordExport(string(format))
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

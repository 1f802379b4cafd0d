package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retaildash/sales-backend-go/pkg/utils"
)

// GetData serves the full raw dataset as a bare JSON array, the shape
// the dashboard's initial fetch expects. No filtering or pagination
// happens here. A 500 with {error, details} is returned while no
// snapshot has ever been loadable.
func (h *Handlers) GetData(c *gin.Context) {
	if !h.dataset.Loaded() {
		details := "dataset not loaded"
		if err := h.dataset.Err(); err != nil {
			details = err.Error()
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch data",
			"details": details,
		})
		return
	}

	c.JSON(http.StatusOK, h.dataset.Records())
}

// ReloadDataset re-reads the dataset file on demand.
func (h *Handlers) ReloadDataset(c *gin.Context) {
	err := h.dataset.Reload()

	if h.collector != nil {
		h.collector.RecordDatasetReload(err == nil)
		if err == nil {
			h.collector.RecordDatasetState(len(h.dataset.Records()), h.dataset.Version())
		}
	}

	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.SendSuccess(c, gin.H{
		"version": h.dataset.Version(),
		"records": len(h.dataset.Records()),
	})
}

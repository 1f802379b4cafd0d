package handlers

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/retaildash/sales-backend-go/pkg/utils"
	"github.com/shirou/gopsutil/v3/process"
)

// Health returns the health status of the service, including dataset
// state and process memory usage.
func (h *Handlers) Health(c *gin.Context) {
	health := gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "sales-backend-go",
		"version":   "1.0.0",
		"uptime":    time.Since(h.startedAt).String(),
		"dataset": gin.H{
			"loaded":  h.dataset.Loaded(),
			"records": len(h.dataset.Records()),
			"version": h.dataset.Version(),
		},
	}

	if !h.dataset.Loaded() {
		health["status"] = "degraded"
		if err := h.dataset.Err(); err != nil {
			health["dataset_error"] = err.Error()
		}
	}

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mem, err := proc.MemoryInfo(); err == nil && mem != nil {
			health["memory"] = gin.H{
				"rss_bytes": mem.RSS,
				"vms_bytes": mem.VMS,
			}
		}
	}

	utils.SendSuccess(c, health)
}

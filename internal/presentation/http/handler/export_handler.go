package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rjnotas/notas-api/internal/application/service"
	"github.com/rjnotas/notas-api/internal/presentation/http/dto/response"
)

// ExportHandler handles invoice export downloads
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// JPEG handles exporting an invoice as a JPEG snapshot
func (h *ExportHandler) JPEG(c *gin.Context) {
	artifact, err := h.exportService.ExportJPEG(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	sendArtifact(c, artifact)
}

// PDF handles exporting an invoice as a single-page PDF
func (h *ExportHandler) PDF(c *gin.Context) {
	artifact, err := h.exportService.ExportPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	sendArtifact(c, artifact)
}

func sendArtifact(c *gin.Context, artifact *service.Artifact) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(200, artifact.ContentType, artifact.Data)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rjnotas/notas-api/internal/application/service"
	"github.com/rjnotas/notas-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles company-name and logo requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetCompanyName handles getting the default company name
func (h *SettingsHandler) GetCompanyName(c *gin.Context) {
	name := h.settingsService.CompanyName(c.Request.Context())
	response.OK(c, "Company name retrieved successfully", gin.H{"companyName": name})
}

// UpdateCompanyName handles setting the default company name
func (h *SettingsHandler) UpdateCompanyName(c *gin.Context) {
	var req struct {
		CompanyName string `json:"companyName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := h.settingsService.SetCompanyName(c.Request.Context(), req.CompanyName); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Company name updated successfully", gin.H{"companyName": req.CompanyName})
}

// GetLogo handles getting the stored logo data URL
func (h *SettingsHandler) GetLogo(c *gin.Context) {
	logo := h.settingsService.Logo(c.Request.Context())
	response.OK(c, "Logo retrieved successfully", gin.H{"logo": logo})
}

// UpdateLogo handles storing a new logo from a data URL
func (h *SettingsHandler) UpdateLogo(c *gin.Context) {
	var req struct {
		Logo string `json:"logo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := h.settingsService.SetLogo(c.Request.Context(), req.Logo); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Logo updated successfully", nil)
}

// DeleteLogo handles removing the stored logo
func (h *SettingsHandler) DeleteLogo(c *gin.Context) {
	if err := h.settingsService.ClearLogo(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

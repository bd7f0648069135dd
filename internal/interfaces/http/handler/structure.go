package handler

import (
	"github.com/gin-gonic/gin"
	locationapp "github.com/wms/backend/internal/application/location"
	"github.com/wms/backend/internal/interfaces/http/middleware"
)

// StructureHandler exposes physical structure axis configuration
type StructureHandler struct {
	BaseHandler
	structureService *locationapp.StructureService
}

// NewStructureHandler creates a new StructureHandler
func NewStructureHandler(structureService *locationapp.StructureService) *StructureHandler {
	return &StructureHandler{
		structureService: structureService,
	}
}

// GetAxes godoc
// @ID           getStructureAxes
//
//	@Summary		List structure axes
//	@Description	Lists the active axes of a physical structure in composition order
//	@Tags			structures
//	@Produce		json
//	@Param			X-Tenant-ID	header		string	true	"Tenant ID"
//	@Param			slug			path		string	true	"Structure slug"
//	@Success		200			{object}	dto.Response{data=locationapp.StructureAxesResponse}
//	@Failure		404			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/location/structures/{slug}/axes [get]
func (h *StructureHandler) GetAxes(c *gin.Context) {
	axes, err := h.structureService.GetAxes(c.Request.Context(), middleware.GetTenantID(c), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, axes)
}

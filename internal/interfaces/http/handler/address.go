package handler

import (
	"github.com/gin-gonic/gin"
	locationapp "github.com/wms/backend/internal/application/location"
	"github.com/wms/backend/internal/interfaces/http/middleware"
)

const defaultAddressPageSize = 50

// AddressHandler serves the address generation wizard
type AddressHandler struct {
	BaseHandler
	generationService *locationapp.AddressGenerationService
}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler(generationService *locationapp.AddressGenerationService) *AddressHandler {
	return &AddressHandler{
		generationService: generationService,
	}
}

// Preview godoc
// @ID           previewAddresses
//
//	@Summary		Preview an address space
//	@Description	Returns the total size of the requested coordinate space and a capped sample without persisting anything
//	@Tags			addresses
//	@Accept			json
//	@Produce		json
//	@Param			X-Tenant-ID	header		string	true	"Tenant ID"
//	@Param			request		body		locationapp.GenerateAddressesRequest	true	"Structure and coordinate ranges"
//	@Success		200			{object}	dto.Response{data=locationapp.PreviewResponse}
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		422			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/location/addresses/preview [post]
func (h *AddressHandler) Preview(c *gin.Context) {
	var req locationapp.GenerateAddressesRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.generationService.Preview(c.Request.Context(), middleware.GetTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Generate godoc
// @ID           generateAddresses
//
//	@Summary		Generate addresses
//	@Description	Persists every address of the requested coordinate space as one all-or-nothing batch
//	@Tags			addresses
//	@Accept			json
//	@Produce		json
//	@Param			X-Tenant-ID	header		string	true	"Tenant ID"
//	@Param			request		body		locationapp.GenerateAddressesRequest	true	"Structure and coordinate ranges"
//	@Success		201			{object}	dto.Response{data=locationapp.CommitResponse}
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		409			{object}	dto.Response
//	@Failure		422			{object}	dto.Response
//	@Failure		429			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/location/addresses/generate [post]
func (h *AddressHandler) Generate(c *gin.Context) {
	var req locationapp.GenerateAddressesRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.generationService.Commit(c.Request.Context(), middleware.GetTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List godoc
// @ID           listAddresses
//
//	@Summary		List addresses
//	@Description	Lists committed addresses of one deposit and structure
//	@Tags			addresses
//	@Produce		json
//	@Param			X-Tenant-ID	header		string	true	"Tenant ID"
//	@Param			deposit_id		query		string	true	"Deposit ID" format(uuid)
//	@Param			structure_slug	query		string	true	"Structure slug"
//	@Param			group_id		query		string	false	"Address group ID" format(uuid)
//	@Param			hand_reachable	query		bool	false	"Only hand-reachable addresses"
//	@Param			search			query		string	false	"Label search"
//	@Param			page			query		int		false	"Page number" default(1)
//	@Param			page_size		query		int		false	"Page size" default(50) maximum(500)
//	@Success		200			{object}	dto.Response{data=[]locationapp.AddressResponse}
//	@Failure		400			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/location/addresses [get]
func (h *AddressHandler) List(c *gin.Context) {
	var filter locationapp.AddressListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = defaultAddressPageSize
	}

	addrs, total, err := h.generationService.List(c.Request.Context(), middleware.GetTenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, addrs, total, filter.Page, filter.PageSize)
}

package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	locationapp "github.com/wms/backend/internal/application/location"
	"github.com/wms/backend/internal/interfaces/http/middleware"
)

const defaultGroupPageSize = 20

// AddressGroupHandler handles address group templates
type AddressGroupHandler struct {
	BaseHandler
	groupService *locationapp.AddressGroupService
}

// NewAddressGroupHandler creates a new AddressGroupHandler
func NewAddressGroupHandler(groupService *locationapp.AddressGroupService) *AddressGroupHandler {
	return &AddressGroupHandler{
		groupService: groupService,
	}
}

// Create godoc
// @ID           createAddressGroup
//
//	@Summary		Create an address group
//	@Description	Creates a reusable address group template bound to a deposit and structure
//	@Tags			address-groups
//	@Accept			json
//	@Produce		json
//	@Param			X-Tenant-ID	header		string	true	"Tenant ID"
//	@Param			request		body		locationapp.CreateAddressGroupRequest	true	"Address group creation request"
//	@Success		201			{object}	dto.Response{data=locationapp.AddressGroupResponse}
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		409			{object}	dto.Response
//	@Failure		422			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/location/address-groups [post]
func (h *AddressGroupHandler) Create(c *gin.Context) {
	var req locationapp.CreateAddressGroupRequest
	if !h.BindJSON(c, &req) {
		return
	}
	req.CreatedBy = middleware.GetUserID(c)

	group, err := h.groupService.Create(c.Request.Context(), middleware.GetTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, group)
}

// GetByID godoc
// @ID           getAddressGroupById
//
//	@Summary		Get an address group
//	@Description	Returns one address group by ID
//	@Tags			address-groups
//	@Produce		json
//	@Param			X-Tenant-ID	header		string	true	"Tenant ID"
//	@Param			id			path		string	true	"Address group ID" format(uuid)
//	@Success		200			{object}	dto.Response{data=locationapp.AddressGroupResponse}
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/location/address-groups/{id} [get]
func (h *AddressGroupHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	group, err := h.groupService.GetByID(c.Request.Context(), middleware.GetTenantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, group)
}

// List godoc
// @ID           listAddressGroups
//
//	@Summary		List address groups
//	@Description	Lists address groups with filtering and pagination
//	@Tags			address-groups
//	@Produce		json
//	@Param			X-Tenant-ID	header		string	true	"Tenant ID"
//	@Param			search			query		string	false	"Name search"
//	@Param			deposit_id		query		string	false	"Deposit ID" format(uuid)
//	@Param			function		query		string	false	"Address function" Enums(storage, picking, buffer, shipping)
//	@Param			page			query		int		false	"Page number" default(1)
//	@Param			page_size		query		int		false	"Page size" default(20) maximum(100)
//	@Param			order_by		query		string	false	"Order by field" default(name)
//	@Param			order_dir		query		string	false	"Order direction" Enums(asc, desc) default(asc)
//	@Success		200			{object}	dto.Response{data=[]locationapp.AddressGroupResponse}
//	@Failure		400			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/location/address-groups [get]
func (h *AddressGroupHandler) List(c *gin.Context) {
	var filter locationapp.AddressGroupListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = defaultGroupPageSize
	}

	groups, total, err := h.groupService.List(c.Request.Context(), middleware.GetTenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, groups, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateAddressGroup
//
//	@Summary		Update an address group
//	@Description	Replaces the name, coordinate bounds and tags of an address group
//	@Tags			address-groups
//	@Accept			json
//	@Produce		json
//	@Param			X-Tenant-ID	header		string	true	"Tenant ID"
//	@Param			id			path		string	true	"Address group ID" format(uuid)
//	@Param			request		body		locationapp.UpdateAddressGroupRequest	true	"Address group update request"
//	@Success		200			{object}	dto.Response{data=locationapp.AddressGroupResponse}
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		409			{object}	dto.Response
//	@Failure		422			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/location/address-groups/{id} [put]
func (h *AddressGroupHandler) Update(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req locationapp.UpdateAddressGroupRequest
	if !h.BindJSON(c, &req) {
		return
	}

	group, err := h.groupService.Update(c.Request.Context(), middleware.GetTenantID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, group)
}

// Delete godoc
// @ID           deleteAddressGroup
//
//	@Summary		Delete an address group
//	@Description	Deletes an address group; generated addresses are kept
//	@Tags			address-groups
//	@Produce		json
//	@Param			X-Tenant-ID	header		string	true	"Tenant ID"
//	@Param			id			path		string	true	"Address group ID" format(uuid)
//	@Success		204			"No Content"
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/location/address-groups/{id} [delete]
func (h *AddressGroupHandler) Delete(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.groupService.Delete(c.Request.Context(), middleware.GetTenantID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Preview godoc
// @ID           previewAddressGroup
//
//	@Summary		Preview an address group
//	@Description	Returns the size of the group's address space and a sample of at most limit addresses
//	@Tags			address-groups
//	@Produce		json
//	@Param			X-Tenant-ID	header		string	true	"Tenant ID"
//	@Param			id			path		string	true	"Address group ID" format(uuid)
//	@Param			limit			query		int		false	"Sample size" minimum(1)
//	@Success		200			{object}	dto.Response{data=locationapp.PreviewResponse}
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		422			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/location/address-groups/{id}/preview [get]
func (h *AddressGroupHandler) Preview(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var limit *int
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.BadRequest(c, "limit must be a positive integer")
			return
		}
		limit = &n
	}

	result, err := h.groupService.Preview(c.Request.Context(), middleware.GetTenantID(c), id, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Generate godoc
// @ID           generateAddressGroup
//
//	@Summary		Generate a group's addresses
//	@Description	Persists every address of the group's space as one batch tagged with the group
//	@Tags			address-groups
//	@Produce		json
//	@Param			X-Tenant-ID	header		string	true	"Tenant ID"
//	@Param			id			path		string	true	"Address group ID" format(uuid)
//	@Success		201			{object}	dto.Response{data=locationapp.CommitResponse}
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Failure		409			{object}	dto.Response
//	@Failure		422			{object}	dto.Response
//	@Failure		429			{object}	dto.Response
//	@Failure		500			{object}	dto.Response
//	@Router			/location/address-groups/{id}/generate [post]
func (h *AddressGroupHandler) Generate(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.groupService.Generate(c.Request.Context(), middleware.GetTenantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

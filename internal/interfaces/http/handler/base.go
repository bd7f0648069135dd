// Package handler holds the HTTP handlers of the address service.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/location"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/infrastructure/logger"
	"github.com/wms/backend/internal/interfaces/http/dto"
	"github.com/wms/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

func getRequestID(c *gin.Context) string {
	return middleware.GetRequestID(c)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// ValidationError sends a 400 validation error response with details
func (h *BaseHandler) ValidationError(c *gin.Context, details []dto.ValidationDetail) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed",
		getRequestID(c),
		details,
	))
}

// BindJSON binds the body into req, answering the request itself on failure
func (h *BaseHandler) BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.bindError(c, err, dto.ErrCodeInvalidJSON, "Malformed request body")
		return false
	}
	return true
}

// BindQuery binds query parameters into req, answering the request itself on failure
func (h *BaseHandler) BindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		h.bindError(c, err, dto.ErrCodeBadRequest, "Invalid query parameters")
		return false
	}
	return true
}

func (h *BaseHandler) bindError(c *gin.Context, err error, code, message string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
		return
	}
	if details := middleware.ValidationDetails(err); details != nil {
		h.ValidationError(c, details)
		return
	}
	h.Error(c, http.StatusBadRequest, code, message)
}

// ParseUUIDParam parses a path parameter as a UUID, answering 400 when it is not one
func (h *BaseHandler) ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// HandleError converts service errors to HTTP responses. Domain errors keep
// their code; the typed generation errors add their details to the envelope.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		logger.L(c.Request.Context()).Error("Unhandled request error", zap.Error(err))
		h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
		return
	}

	code := dto.NormalizeErrorCode(domainErr.Code)
	status := dto.GetHTTPStatus(code)

	message := domainErr.Message
	if status >= http.StatusInternalServerError {
		logger.L(c.Request.Context()).Error("Request failed", zap.String("code", code), zap.Error(err))
	} else if err != error(domainErr) {
		message = err.Error()
	}

	resp := dto.NewErrorResponseWithRequestID(code, message, getRequestID(c))
	attachErrorDetails(resp.Error, err)
	c.JSON(status, resp)
}

func attachErrorDetails(info *dto.ErrorInfo, err error) {
	var rangeErr *location.RangeValidationError
	if errors.As(err, &rangeErr) {
		info.Message = location.ErrValidationFailed.Message
		for _, v := range rangeErr.Violations {
			field := v.Field
			if v.AxisCode != "" {
				field = string(v.AxisCode) + "." + v.Field
			}
			info.Details = append(info.Details, dto.ValidationDetail{Field: field, Message: v.Message})
		}
	}

	var tooLarge *location.SpaceTooLargeError
	if errors.As(err, &tooLarge) {
		maxAddresses := tooLarge.Max
		info.Max = &maxAddresses
		if !tooLarge.Overflow {
			total := tooLarge.Total
			info.Total = &total
		}
	}

	var duplicates *location.DuplicateLabelError
	if errors.As(err, &duplicates) {
		info.Labels = duplicates.Labels
	}
}

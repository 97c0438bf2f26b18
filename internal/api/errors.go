package api

import (
	"errors"
	"net/http"

	"collector_dao/internal/governance"

	"github.com/gin-gonic/gin"
)

const codeInvalidRequest = "invalid_request"

var statusByCode = map[string]int{
	"length_mismatch":     http.StatusBadRequest,
	"empty_proposal":      http.StatusBadRequest,
	"invalid_value":       http.StatusBadRequest,
	"invalid_support":     http.StatusBadRequest,
	"malformed_signature": http.StatusBadRequest,
	codeInvalidRequest:    http.StatusBadRequest,
	"unknown_proposal":    http.StatusNotFound,
	"not_member":          http.StatusForbidden,
	"payment_failed":      http.StatusPaymentRequired,
	"already_member":      http.StatusConflict,
	"wrong_fee":           http.StatusConflict,
	"proposal_not_active": http.StatusConflict,
	"invalid_signature":   http.StatusConflict,
	"already_voted":       http.StatusConflict,
	"already_executed":    http.StatusConflict,
	"not_succeeded":       http.StatusConflict,
	"reentrant_call":      http.StatusConflict,
	"call_reverted":       http.StatusUnprocessableEntity,
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (h *Handlers) abort(c *gin.Context, err error) {
	code := governance.ErrorCode(err)
	if errors.Is(err, errMissingField) {
		code = codeInvalidRequest
	}

	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Errorw("request failed", "path", c.FullPath(), "request_id", c.GetString(requestIDKey), "error", err)
		message = "internal error"
	}

	c.AbortWithStatusJSON(status, errorResponse{Error: code, Message: message})
}

func (h *Handlers) badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: codeInvalidRequest, Message: err.Error()})
}

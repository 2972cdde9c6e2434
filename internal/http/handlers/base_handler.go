// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"breadrun/internal/modules/deliveryfee"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeRuleError(c *gin.Context, err error) {
	switch err {
	case deliveryfee.ErrInvalidRule, deliveryfee.ErrInvalidRange:
		writeError(c, http.StatusBadRequest, err.Error())
	case deliveryfee.ErrOverlappingRange, deliveryfee.ErrDuplicateOrderValueRule:
		writeError(c, http.StatusConflict, err.Error())
	case deliveryfee.ErrNotFound:
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

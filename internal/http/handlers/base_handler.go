// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"guardian/internal/dispatch"
	"guardian/internal/maps"
	"guardian/internal/modules/pickup"
	"guardian/internal/modules/rider"
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

func writePickupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pickup.ErrNoValidRoute):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, maps.ErrBadSnapResponse), errors.Is(err, dispatch.ErrProductUnavailable):
		writeError(c, http.StatusBadGateway, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeRiderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, rider.ErrInvalidPhone):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, rider.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// README: Emergency-contact registration.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"guardian/internal/http/middleware"
	"guardian/internal/modules/rider"
)

type ContactHandler struct {
	riders *rider.Service
}

func NewContactHandler(riders *rider.Service) *ContactHandler {
	return &ContactHandler{riders: riders}
}

type contactReq struct {
	PhoneNumber string `json:"phone_number"`
}

func (h *ContactHandler) Register(c *gin.Context) {
	r, ok := middleware.RiderFrom(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "not authenticated")
		return
	}
	var req contactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	contact, err := h.riders.RegisterEmergencyContact(c.Request.Context(), r.UUID, req.PhoneNumber)
	if err != nil {
		writeRiderError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"emergency_contact": contact})
}

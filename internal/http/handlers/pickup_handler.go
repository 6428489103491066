// README: Pickup handler; plans the rendezvous, answers immediately, and
// leaves the dispatch flow running in the background.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"guardian/internal/http/middleware"
	"guardian/internal/modules/pickup"
	"guardian/internal/modules/trip"
	"guardian/internal/types"
)

type PickupHandler struct {
	pickup *pickup.Service
	trip   *trip.Service
}

func NewPickupHandler(pickupSvc *pickup.Service, tripSvc *trip.Service) *PickupHandler {
	return &PickupHandler{pickup: pickupSvc, trip: tripSvc}
}

type pickupReq struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Speed     float64 `json:"speed"`
	Heading   float64 `json:"heading"`
}

func (h *PickupHandler) Plan(c *gin.Context) {
	r, ok := middleware.RiderFrom(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req pickupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	origin := types.Point{Lat: req.Latitude, Lng: req.Longitude}
	if !origin.Valid() {
		writeError(c, http.StatusBadRequest, "coordinates out of range")
		return
	}

	plan, err := h.pickup.Plan(c.Request.Context(), r.AccessToken, pickup.Request{
		Origin: origin,
		Motion: types.Motion{Speed: req.Speed, Heading: req.Heading},
	})
	if err != nil {
		writePickupError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, plan)

	// The rider has their meeting point; the rest of the trip runs detached
	// from this request's lifetime.
	go h.trip.Escort(context.WithoutCancel(c.Request.Context()), r, plan.ProductID, plan.MeetingPoint)
}

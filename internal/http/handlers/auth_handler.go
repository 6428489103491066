// README: Login flow; redirects to the ride provider, exchanges the callback
// code, and mints a bearer session.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"guardian/internal/auth"
	"guardian/internal/http/middleware"
	"guardian/internal/modules/rider"
)

type AuthHandler struct {
	provider *auth.Provider
	sessions *auth.Sessions
	riders   *rider.Service
	log      *logrus.Entry
}

func NewAuthHandler(provider *auth.Provider, sessions *auth.Sessions, riders *rider.Service, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		provider: provider,
		sessions: sessions,
		riders:   riders,
		log:      log.WithField("component", "auth"),
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	state, err := h.sessions.NewState(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.Redirect(http.StatusFound, h.provider.AuthURL(state))
}

func (h *AuthHandler) Callback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		writeError(c, http.StatusBadRequest, "missing state or code")
		return
	}
	if !h.sessions.ConsumeState(c.Request.Context(), state) {
		writeError(c, http.StatusForbidden, "bad state")
		return
	}

	accessToken, profile, err := h.provider.Exchange(c.Request.Context(), code)
	if err != nil {
		h.log.WithError(err).Error("oauth exchange failed")
		writeError(c, http.StatusBadGateway, "login failed")
		return
	}

	r := &rider.Rider{
		UUID:        profile.UUID,
		AccessToken: accessToken,
		FirstName:   profile.FirstName,
		LastName:    profile.LastName,
		Email:       profile.Email,
		Picture:     profile.Picture,
		PromoCode:   profile.PromoCode,
	}
	if err := h.riders.Upsert(c.Request.Context(), r); err != nil {
		h.log.WithError(err).Error("rider upsert failed")
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := h.sessions.Create(c.Request.Context(), r.UUID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"token": token})
}

func (h *AuthHandler) Me(c *gin.Context) {
	r, ok := middleware.RiderFrom(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "not authenticated")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"uuid":              r.UUID,
		"first_name":        r.FirstName,
		"last_name":         r.LastName,
		"email":             r.Email,
		"emergency_contact": r.EmergencyContact,
	})
}

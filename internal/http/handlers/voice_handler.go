// README: Voice webhook; the call platform fetches this when the driver
// answers, and we speak the rider introduction back as TwiML.
package handlers

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"guardian/internal/auth"
	"guardian/internal/modules/rider"
	"guardian/internal/notify"
)

type riderFinder interface {
	FindByUUID(ctx context.Context, uuid string) (*rider.Rider, error)
}

type VoiceHandler struct {
	riders riderFinder
	secret string
}

func NewVoiceHandler(riders riderFinder, secret string) *VoiceHandler {
	return &VoiceHandler{riders: riders, secret: secret}
}

type twimlSay struct {
	Voice string `xml:"voice,attr"`
	Text  string `xml:",chardata"`
}

type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Say     twimlSay `xml:"Say"`
}

func (h *VoiceHandler) Handle(c *gin.Context) {
	uuid := c.Query("uuid")
	eta := c.Query("eta")
	sig := c.Query("sig")
	if !auth.VerifyVoiceParams(h.secret, uuid, eta, sig) {
		writeError(c, http.StatusForbidden, "bad signature")
		return
	}

	r, err := h.riders.FindByUUID(c.Request.Context(), uuid)
	if err != nil {
		if errors.Is(err, rider.ErrNotFound) {
			writeError(c, http.StatusNotFound, "unknown rider")
			return
		}
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}

	etaSeconds, err := strconv.ParseFloat(eta, 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "bad eta")
		return
	}

	message := fmt.Sprintf(
		"Hello, this is %s. I requested this ride and I'm walking to meet you. I should be there in about %d minutes.",
		r.DisplayName(), notify.ETAMinutes(etaSeconds),
	)
	c.XML(http.StatusOK, twimlResponse{Say: twimlSay{Voice: "alice", Text: message}})
}

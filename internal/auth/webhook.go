// README: HMAC signing for the voice webhook callback URL, so rider identity
// and ETA cannot be forged or replayed with altered values.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strconv"
)

// SignVoiceParams signs the uuid and eta exactly as they appear in the query
// string.
func SignVoiceParams(secret, uuid, eta string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(uuid + "|" + eta))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyVoiceParams checks a webhook signature in constant time.
func VerifyVoiceParams(secret, uuid, eta, sig string) bool {
	want := SignVoiceParams(secret, uuid, eta)
	return hmac.Equal([]byte(want), []byte(sig))
}

// VoiceCallbackURL builds the signed URL handed to the voice platform.
func VoiceCallbackURL(hostname, secret, uuid string, etaSeconds float64) string {
	eta := strconv.FormatFloat(etaSeconds, 'f', -1, 64)
	q := url.Values{}
	q.Set("uuid", uuid)
	q.Set("eta", eta)
	q.Set("sig", SignVoiceParams(secret, uuid, eta))
	return hostname + "/twilio/voice?" + q.Encode()
}

// README: Webhook signing tests.
package auth

import (
	"net/url"
	"strings"
	"testing"
)

func TestVerifyVoiceParams(t *testing.T) {
	sig := SignVoiceParams("secret", "rider-1", "300")

	if !VerifyVoiceParams("secret", "rider-1", "300", sig) {
		t.Error("valid signature rejected")
	}
	if VerifyVoiceParams("secret", "rider-2", "300", sig) {
		t.Error("signature accepted for a different rider")
	}
	if VerifyVoiceParams("secret", "rider-1", "600", sig) {
		t.Error("signature accepted for a tampered eta")
	}
	if VerifyVoiceParams("other", "rider-1", "300", sig) {
		t.Error("signature accepted under a different secret")
	}
	if VerifyVoiceParams("secret", "rider-1", "300", "") {
		t.Error("empty signature accepted")
	}
}

func TestVoiceCallbackURL(t *testing.T) {
	raw := VoiceCallbackURL("https://guardian.example.com", "secret", "rider-1", 300)
	if !strings.HasPrefix(raw, "https://guardian.example.com/twilio/voice?") {
		t.Fatalf("unexpected URL %q", raw)
	}

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	q := u.Query()
	if q.Get("uuid") != "rider-1" || q.Get("eta") != "300" {
		t.Errorf("params = %v", q)
	}
	if !VerifyVoiceParams("secret", q.Get("uuid"), q.Get("eta"), q.Get("sig")) {
		t.Error("URL signature does not verify")
	}
}

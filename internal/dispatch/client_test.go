// README: Dispatch client and sandbox tests against an httptest backend.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"guardian/internal/types"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestEstimateWaitMatchesProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/estimates/time" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("auth header = %q", got)
		}
		if got := r.URL.Query().Get("start_latitude"); got != "41.9" {
			t.Errorf("start_latitude = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"times": []map[string]any{
			{"product_id": "pool-1", "display_name": "uberPOOL", "estimate": 120},
			{"product_id": "x-1", "display_name": "uberX", "estimate": 300},
		}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "uberX")
	est, err := c.EstimateWait(context.Background(), "tok", types.Point{Lat: 41.9, Lng: -87.65})
	if err != nil {
		t.Fatalf("EstimateWait: %v", err)
	}
	if est.ProductID != "x-1" || est.WaitSeconds != 300 {
		t.Errorf("estimate = %+v, want x-1/300", est)
	}
}

func TestEstimateWaitProductUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"times": []map[string]any{
			{"product_id": "pool-1", "display_name": "uberPOOL", "estimate": 120},
		}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "uberX")
	_, err := c.EstimateWait(context.Background(), "tok", types.Point{Lat: 41.9, Lng: -87.65})
	if !errors.Is(err, ErrProductUnavailable) {
		t.Fatalf("err = %v, want ErrProductUnavailable", err)
	}
}

func TestCreateAndGetRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/requests":
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["product_id"] != "x-1" {
				t.Errorf("product_id = %v", body["product_id"])
			}
			if body["end_latitude"] != 41.91 {
				t.Errorf("end_latitude = %v, want 41.91", body["end_latitude"])
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"request_id": "req-1", "status": "processing"})
		case r.Method == http.MethodGet && r.URL.Path == "/v1/requests/req-1":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"request_id": "req-1",
				"status":     "accepted",
				"eta":        7,
				"driver":     map[string]any{"name": "Sam", "phone_number": "+14155550123"},
			})
		default:
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "uberX")
	id, err := c.CreateRequest(context.Background(), "tok", "x-1",
		types.Point{Lat: 41.9, Lng: -87.65}, &types.Point{Lat: 41.91, Lng: -87.66})
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	if id != "req-1" {
		t.Errorf("request id = %q", id)
	}

	d, err := c.GetRequest(context.Background(), "tok", "req-1")
	if err != nil {
		t.Fatalf("GetRequest: %v", err)
	}
	if d.Status != StatusAccepted || d.ETAMinutes != 7 {
		t.Errorf("details = %+v", d)
	}
	if d.Driver == nil || d.Driver.PhoneNumber != "+14155550123" {
		t.Errorf("driver = %+v", d.Driver)
	}
}

// TestCreateRequestOmitsMissingDestination checks that an order without a
// drop-off serializes no end coordinates at all, rather than zeroes or a copy
// of the pickup point.
func TestCreateRequestOmitsMissingDestination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if _, ok := body["end_latitude"]; ok {
			t.Errorf("end_latitude present in body: %v", body)
		}
		if _, ok := body["end_longitude"]; ok {
			t.Errorf("end_longitude present in body: %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"request_id": "req-1", "status": "processing"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "uberX")
	if _, err := c.CreateRequest(context.Background(), "tok", "x-1",
		types.Point{Lat: 41.9, Lng: -87.65}, nil); err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
}

func TestClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "uberX")
	if _, err := c.GetRequest(context.Background(), "tok", "req-1"); err == nil {
		t.Fatal("expected error on 401")
	}
}

// TestSandboxAdvancesStatus checks the simulated progression: each poll
// returns the current state and nudges the backend one step forward.
func TestSandboxAdvancesStatus(t *testing.T) {
	status := StatusRequested
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]any{"request_id": "req-1", "status": status})
		case http.MethodPut:
			if r.URL.Path != "/v1/sandbox/requests/req-1" {
				t.Errorf("sandbox path = %s", r.URL.Path)
			}
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			status = Status(body["status"])
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	sb := NewSandbox(NewClient(srv.URL, "uberX"), testLogger())

	want := []Status{StatusRequested, StatusAccepted, StatusInProgress, StatusInProgress}
	for i, w := range want {
		d, err := sb.GetRequest(context.Background(), "tok", "req-1")
		if err != nil {
			t.Fatalf("poll %d: %v", i, err)
		}
		if d.Status != w {
			t.Errorf("poll %d: status = %s, want %s", i, d.Status, w)
		}
	}
}

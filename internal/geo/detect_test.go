package geo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// newTestDetector returns a Detector pointed at handler.
func newTestDetector(t *testing.T, handler http.HandlerFunc) *Detector {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	d := NewDetector()
	d.URL = server.URL
	return d
}

func jsonHandler(resp ipAPIResponse) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func TestDetect_Success(t *testing.T) {
	d := newTestDetector(t, jsonHandler(ipAPIResponse{
		Status:   "success",
		Lat:      51.5074,
		Lon:      -0.1278,
		City:     "London",
		Country:  "United Kingdom",
		Timezone: "Europe/London",
	}))

	loc, err := d.Detect()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Latitude != 51.5074 {
		t.Errorf("Latitude = %v, want %v", loc.Latitude, 51.5074)
	}
	if loc.Longitude != -0.1278 {
		t.Errorf("Longitude = %v, want %v", loc.Longitude, -0.1278)
	}
	if loc.Name() != "London, United Kingdom" {
		t.Errorf("Name() = %q, want %q", loc.Name(), "London, United Kingdom")
	}
	if loc.Timezone != "Europe/London" {
		t.Errorf("Timezone = %q, want %q", loc.Timezone, "Europe/London")
	}
}

func TestDetect_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name:    "failed status",
			handler: jsonHandler(ipAPIResponse{Status: "fail", Message: "reserved range"}),
			wantErr: "reserved range",
		},
		{
			name: "http error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "internal error", http.StatusInternalServerError)
			},
			wantErr: "status 500",
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("{not json"))
			},
			wantErr: "decode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestDetector(t, tt.handler).Detect()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestDetect_ConnectionRefused(t *testing.T) {
	d := NewDetector()
	d.URL = "http://127.0.0.1:1"

	if _, err := d.Detect(); err == nil {
		t.Fatal("expected error for connection refused, got nil")
	}
}

func TestLocation_Name(t *testing.T) {
	if got := (Location{City: "Cairo"}).Name(); got != "" {
		t.Errorf("Name() without country = %q, want empty", got)
	}
}

func TestLocation_Zone(t *testing.T) {
	zone, err := Location{Timezone: "UTC"}.Zone()
	if err != nil {
		t.Fatalf("Zone() error: %v", err)
	}
	if zone.String() != "UTC" {
		t.Errorf("Zone() = %v, want UTC", zone)
	}

	if _, err := (Location{Timezone: "Mars/Olympus_Mons"}).Zone(); err == nil {
		t.Error("Zone() should reject an unknown timezone")
	}

	zone, err = Location{}.Zone()
	if err != nil || zone != time.Local {
		t.Errorf("Zone() without timezone = %v, %v; want Local", zone, err)
	}
}

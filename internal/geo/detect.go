// Package geo finds the user's approximate location from their public IP.
package geo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultURL = "http://ip-api.com/json/?fields=status,message,lat,lon,city,country,timezone"

// Location holds geographic coordinates detected from the user's IP.
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Timezone  string  `json:"timezone"` // IANA name, e.g. "America/Toronto"
}

// Name returns "City, Country", or an empty string if either is unknown.
func (l Location) Name() string {
	if l.City == "" || l.Country == "" {
		return ""
	}
	return l.City + ", " + l.Country
}

// Zone loads the location's IANA timezone. An unknown timezone falls back
// to the local one.
func (l Location) Zone() (*time.Location, error) {
	if l.Timezone == "" {
		return time.Local, nil
	}
	zone, err := time.LoadLocation(l.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", l.Timezone, err)
	}
	return zone, nil
}

// ipAPIResponse maps the response from ip-api.com.
type ipAPIResponse struct {
	Status   string  `json:"status"`
	Message  string  `json:"message"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	City     string  `json:"city"`
	Country  string  `json:"country"`
	Timezone string  `json:"timezone"`
}

// Detector queries ip-api.com, a free service that requires no API key.
type Detector struct {
	httpClient *http.Client
	// URL is the lookup endpoint. Exported for testing with httptest.
	URL string
}

// NewDetector creates a Detector with a short timeout.
func NewDetector() *Detector {
	return &Detector{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		URL:        defaultURL,
	}
}

// Detect determines the user's location from their public IP address.
func (d *Detector) Detect() (*Location, error) {
	resp, err := d.httpClient.Get(d.URL)
	if err != nil {
		return nil, fmt.Errorf("geolocation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geolocation API returned status %d", resp.StatusCode)
	}

	var result ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode geolocation response: %w", err)
	}

	if result.Status != "success" {
		return nil, fmt.Errorf("geolocation failed: %s", result.Message)
	}

	return &Location{
		Latitude:  result.Lat,
		Longitude: result.Lon,
		City:      result.City,
		Country:   result.Country,
		Timezone:  result.Timezone,
	}, nil
}

// Package api talks to the Al Adhan prayer times service, used as a remote
// alternative to local calculation and to resolve city names to coordinates.
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.aladhan.com/v1"

// Client communicates with the Al Adhan prayer times API.
type Client struct {
	httpClient *http.Client
	// BaseURL is the API base URL. Defaults to the Al Adhan API.
	// Exported for testing with httptest.
	BaseURL string
}

// NewClient creates a new API client with sensible defaults.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		BaseURL: defaultBaseURL,
	}
}

// FetchByCoordinates fetches prayer times for the given date and coordinates.
func (c *Client) FetchByCoordinates(date time.Time, lat, lon float64, method, school int) (*Response, error) {
	endpoint := fmt.Sprintf("%s/timings/%s", c.BaseURL, date.Format(dateLayout))

	var resp Response
	if err := c.get(endpoint, coordinateParams(lat, lon, method, school), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchByCity fetches prayer times for the given date, city, and country.
// The response metadata carries the coordinates the service resolved.
func (c *Client) FetchByCity(date time.Time, city, country string, method, school int) (*Response, error) {
	endpoint := fmt.Sprintf("%s/timingsByCity/%s", c.BaseURL, date.Format(dateLayout))

	var resp Response
	if err := c.get(endpoint, cityParams(city, country, method, school), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchCalendarByCoordinates fetches a whole month of prayer times.
func (c *Client) FetchCalendarByCoordinates(year, month int, lat, lon float64, method, school int) (*CalendarResponse, error) {
	endpoint := fmt.Sprintf("%s/calendar/%d/%d", c.BaseURL, year, month)

	var resp CalendarResponse
	if err := c.get(endpoint, coordinateParams(lat, lon, method, school), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchCalendarByCity fetches a whole month of prayer times for a city.
func (c *Client) FetchCalendarByCity(year, month int, city, country string, method, school int) (*CalendarResponse, error) {
	endpoint := fmt.Sprintf("%s/calendarByCity/%d/%d", c.BaseURL, year, month)

	var resp CalendarResponse
	if err := c.get(endpoint, cityParams(city, country, method, school), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// envelope is the status part shared by every API response.
type envelope interface {
	status() (int, string)
}

func (r *Response) status() (int, string)         { return r.Code, r.Status }
func (r *CalendarResponse) status() (int, string) { return r.Code, r.Status }

func coordinateParams(lat, lon float64, method, school int) url.Values {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", lat))
	params.Set("longitude", fmt.Sprintf("%f", lon))
	setOptional(params, method, school)
	return params
}

func cityParams(city, country string, method, school int) url.Values {
	params := url.Values{}
	params.Set("city", city)
	params.Set("country", country)
	setOptional(params, method, school)
	return params
}

// setOptional adds method and school unless negative, which leaves the
// service's own default in place.
func setOptional(params url.Values, method, school int) {
	if method >= 0 {
		params.Set("method", fmt.Sprintf("%d", method))
	}
	if school >= 0 {
		params.Set("school", fmt.Sprintf("%d", school))
	}
}

func (c *Client) get(endpoint string, params url.Values, out envelope) error {
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	resp, err := c.httpClient.Get(reqURL)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode API response: %w", err)
	}

	if code, status := out.status(); code != http.StatusOK {
		return fmt.Errorf("API error: code=%d status=%s", code, status)
	}

	return nil
}

// ResolveCity asks the service where a city is. The timings in the response
// are discarded.
func (c *Client) ResolveCity(date time.Time, city, country string) (*Place, error) {
	resp, err := c.FetchByCity(date, city, country, -1, -1)
	if err != nil {
		return nil, fmt.Errorf("resolving %s, %s: %w", city, country, err)
	}
	return resp.Data.Meta.Place(), nil
}

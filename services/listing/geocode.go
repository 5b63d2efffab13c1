package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// GeoResult is the coarse region information for an address.
type GeoResult struct {
	Country string
	State   string
	City    string
}

// Geocoder resolves a free-text address to region fields.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (GeoResult, error)
}

// NominatimGeocoder implements Geocoder against the OpenStreetMap
// Nominatim API.
type NominatimGeocoder struct {
	BaseURL string
	Client  *http.Client
}

func NewNominatimGeocoder(baseURL string) *NominatimGeocoder {
	return &NominatimGeocoder{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type nominatimResult struct {
	Address struct {
		Country string `json:"country"`
		State   string `json:"state"`
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
	} `json:"address"`
}

func (g *NominatimGeocoder) Geocode(ctx context.Context, address string) (GeoResult, error) {
	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "jsonv2")
	query.Set("addressdetails", "1")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return GeoResult{}, fmt.Errorf("failed to build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", "stayhaven/1.0")

	resp, err := g.Client.Do(req)
	if err != nil {
		return GeoResult{}, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return GeoResult{}, fmt.Errorf("geocode request failed: status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return GeoResult{}, fmt.Errorf("failed to decode geocode response: %w", err)
	}
	if len(results) == 0 {
		return GeoResult{}, nil
	}

	addr := results[0].Address
	city := addr.City
	if city == "" {
		city = addr.Town
	}
	if city == "" {
		city = addr.Village
	}
	return GeoResult{Country: addr.Country, State: addr.State, City: city}, nil
}

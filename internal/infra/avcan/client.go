// Package avcan fetches point forecast products from the Avalanche Canada API.
package avcan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/peakwatch/avybrief/pkg/fetch"
)

const defaultBaseURL = "https://api.avalanche.ca"

// Client fetches forecast products for a coordinate.
type Client struct {
	baseURL string
	fetcher *fetch.Client
}

// NewClient builds an API client on top of a retrying fetcher.
func NewClient(baseURL string, fetcher *fetch.Client) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		fetcher: fetcher,
	}
}

// PointProduct retrieves the forecast product for the given coordinate. The
// upstream sometimes wraps the product in a single-element array; both shapes
// are accepted. A nil product with a nil error means the upstream had nothing
// for this location.
func (c *Client) PointProduct(ctx context.Context, lat, long float64) (*Product, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("long", strconv.FormatFloat(long, 'f', -1, 64))
	endpoint := fmt.Sprintf("%s/forecasts/en/products/point?%s", c.baseURL, query.Encode())

	resp, err := c.fetcher.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read forecast response: %w", err)
	}

	return decodeProduct(body)
}

func decodeProduct(body []byte) (*Product, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var products []Product
		if err := json.Unmarshal(trimmed, &products); err != nil {
			return nil, fmt.Errorf("decode forecast response: %w", err)
		}
		if len(products) == 0 {
			return nil, nil
		}
		return &products[0], nil
	}

	var product Product
	if err := json.Unmarshal(trimmed, &product); err != nil {
		return nil, fmt.Errorf("decode forecast response: %w", err)
	}
	return &product, nil
}

// Product is the raw point forecast payload.
type Product struct {
	Area   Area    `json:"area"`
	Report *Report `json:"report"`
}

// Area names the forecast region.
type Area struct {
	Name string `json:"name"`
}

// Report carries the forecast content for a product.
type Report struct {
	Forecaster    string         `json:"forecaster"`
	DateIssued    string         `json:"dateIssued"`
	ValidUntil    string         `json:"validUntil"`
	Confidence    Confidence     `json:"confidence"`
	Highlights    string         `json:"highlights"`
	DangerRatings []DangerRating `json:"dangerRatings"`
}

// Confidence nests the forecaster confidence rating.
type Confidence struct {
	Rating RatingValue `json:"rating"`
}

// RatingValue holds a display string for a rating.
type RatingValue struct {
	Display string `json:"display"`
}

// DisplayValue holds a display string for a date.
type DisplayValue struct {
	Display string `json:"display"`
}

// DangerRating carries one day of elevation-band danger ratings.
type DangerRating struct {
	Date    DisplayValue     `json:"date"`
	Ratings ElevationRatings `json:"ratings"`
}

// ElevationRatings groups the three elevation bands.
type ElevationRatings struct {
	Alpine        BandRating `json:"alp"`
	Treeline      BandRating `json:"tln"`
	BelowTreeline BandRating `json:"btl"`
}

// BandRating nests a single band rating.
type BandRating struct {
	Rating RatingValue `json:"rating"`
}

package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/tfl-bdd/pkg/util"
)

const DefaultBaseURL = "https://api.opencagedata.com"

var (
	ErrSchemaMismatch = errors.New("geocoding response did not match expected schema")
	ErrEmptyResults   = errors.New("geocoding returned no results")
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%g,%g", c.Lat, c.Lng)
}

// Geocoder resolves a free text address to a single coordinate
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Coordinates, error)
}

// Error is returned for every failed lookup, whatever the cause
type Error struct {
	Address    string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to geocode address %q: %d %s: %s", e.Address, e.StatusCode, http.StatusText(e.StatusCode), e.Err)
	}

	return fmt.Sprintf("failed to geocode address %q: %s", e.Address, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type response struct {
	Results *[]struct {
		Geometry *Coordinates `json:"geometry"`
	} `json:"results"`
}

// Client talks to the OpenCage forward geocoding API
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(baseURL string, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		APIKey:     apiKey,
		HTTPClient: &http.Client{},
	}
}

func (c *Client) Geocode(ctx context.Context, address string) (Coordinates, error) {
	requestURL, err := url.Parse(c.BaseURL + "/geocode/v1/json")
	if err != nil {
		return Coordinates{}, &Error{Address: address, Err: err}
	}
	query := requestURL.Query()
	query.Set("q", address)
	query.Set("key", c.APIKey)
	requestURL.RawQuery = query.Encode()

	log.Debug().Str("url", util.RedactURL(requestURL, "key")).Msg("Geocoding address")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL.String(), nil)
	if err != nil {
		return Coordinates{}, &Error{Address: address, Err: err}
	}
	req.Header.Set("User-Agent", "curl/7.54.1")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Coordinates{}, &Error{Address: address, Err: util.RedactError(err, c.APIKey)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, &Error{Address: address, StatusCode: resp.StatusCode, Err: errors.New("unexpected status")}
	}

	jsonBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return Coordinates{}, &Error{Address: address, Err: err}
	}

	var geocodeResponse response
	if err := json.Unmarshal(jsonBytes, &geocodeResponse); err != nil {
		return Coordinates{}, &Error{Address: address, Err: fmt.Errorf("%w: %s", ErrSchemaMismatch, err)}
	}

	if geocodeResponse.Results == nil {
		return Coordinates{}, &Error{Address: address, Err: fmt.Errorf("%w: missing results", ErrSchemaMismatch)}
	}
	if len(*geocodeResponse.Results) == 0 {
		return Coordinates{}, &Error{Address: address, Err: ErrEmptyResults}
	}

	best := (*geocodeResponse.Results)[0]
	if best.Geometry == nil {
		return Coordinates{}, &Error{Address: address, Err: fmt.Errorf("%w: missing results[0].geometry", ErrSchemaMismatch)}
	}

	log.Debug().Msgf("Geocoded %s to %s", address, pretty.Sprint(*best.Geometry))

	return *best.Geometry, nil
}

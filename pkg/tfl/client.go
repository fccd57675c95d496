package tfl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/tfl-bdd/pkg/util"
)

const DefaultBaseURL = "https://api.tfl.gov.uk"

// Planner is the subset of the TfL unified API used by the journey planning steps
type Planner interface {
	FindNearestStopPoints(ctx context.Context, lat float64, lng float64) ([]StopPoint, error)
	PlanJourney(ctx context.Context, from string, to string) (*JourneyResultSet, error)
	PlanLatestDeparture(ctx context.Context, fromLat float64, fromLng float64, toLat float64, toLng float64, arrivalTime string) (*JourneyResultSet, error)
}

type Client struct {
	BaseURL    string
	AppKey     string
	HTTPClient *http.Client
}

func NewClient(baseURL string, appKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		AppKey:     appKey,
		HTTPClient: &http.Client{},
	}
}

func (c *Client) FindNearestStopPoints(ctx context.Context, lat float64, lng float64) ([]StopPoint, error) {
	wrap := func(statusCode int, err error) error {
		return &NoStopPointsError{Lat: lat, Lng: lng, StatusCode: statusCode, Err: err}
	}

	query := url.Values{}
	query.Set("lat", formatCoordinate(lat))
	query.Set("lon", formatCoordinate(lng))
	query.Set("stopTypes", StopPointTypes)
	query.Set("radius", strconv.Itoa(StopPointRadius))

	jsonBytes, statusCode, err := c.get(ctx, "/StopPoint", query)
	if err != nil {
		return nil, wrap(statusCode, err)
	}

	var response stopPointsResponse
	if err := json.Unmarshal(jsonBytes, &response); err != nil {
		return nil, wrap(0, fmt.Errorf("%w: %s", ErrSchemaMismatch, err))
	}
	if response.StopPoints == nil {
		return nil, wrap(0, fmt.Errorf("%w: missing stopPoints", ErrSchemaMismatch))
	}
	if len(*response.StopPoints) == 0 {
		return nil, wrap(0, ErrNoStopPoints)
	}

	log.Debug().
		Float64("lat", lat).
		Float64("lng", lng).
		Int("count", len(*response.StopPoints)).
		Str("nearest", (*response.StopPoints)[0].ID).
		Msg("Found stop points")

	return *response.StopPoints, nil
}

func (c *Client) PlanJourney(ctx context.Context, from string, to string) (*JourneyResultSet, error) {
	path := fmt.Sprintf("/Journey/JourneyResults/%s/to/%s", encodeComponent(from), encodeComponent(to))

	journeys, statusCode, err := c.journeyResults(ctx, path, url.Values{})
	if err != nil {
		return nil, &JourneyPlanningError{From: from, To: to, StatusCode: statusCode, Err: err}
	}

	return journeys, nil
}

// PlanLatestDeparture plans between two coordinates, arriving by arrivalTime (YYYYMMDDTHHMM)
func (c *Client) PlanLatestDeparture(ctx context.Context, fromLat float64, fromLng float64, toLat float64, toLng float64, arrivalTime string) (*JourneyResultSet, error) {
	from := fmt.Sprintf("%s,%s", formatCoordinate(fromLat), formatCoordinate(fromLng))
	to := fmt.Sprintf("%s,%s", formatCoordinate(toLat), formatCoordinate(toLng))

	journeys, err := c.planLatestDeparture(ctx, from, to, arrivalTime)
	if err != nil {
		log.Error().Err(err).Str("arrivaltime", arrivalTime).Msg("Failed to plan journey")
		return nil, err
	}

	return journeys, nil
}

func (c *Client) planLatestDeparture(ctx context.Context, from string, to string, arrivalTime string) (*JourneyResultSet, error) {
	date, timeOfDay, found := strings.Cut(arrivalTime, "T")
	if !found || date == "" || timeOfDay == "" {
		return nil, &JourneyPlanningError{From: from, To: to, Err: fmt.Errorf("arrival time %q is not in YYYYMMDDTHHMM form", arrivalTime)}
	}

	query := url.Values{}
	query.Set("timeIs", "arriving")
	query.Set("date", strings.ReplaceAll(date, "-", ""))
	query.Set("time", strings.ReplaceAll(timeOfDay, ":", ""))

	path := fmt.Sprintf("/Journey/JourneyResults/%s/to/%s", from, to)

	journeys, statusCode, err := c.journeyResults(ctx, path, query)
	if err != nil {
		return nil, &JourneyPlanningError{From: from, To: to, StatusCode: statusCode, Err: err}
	}

	return journeys, nil
}

func (c *Client) journeyResults(ctx context.Context, path string, query url.Values) (*JourneyResultSet, int, error) {
	jsonBytes, statusCode, err := c.get(ctx, path, query)
	if err != nil {
		return nil, statusCode, err
	}

	var journeys JourneyResultSet
	if err := json.Unmarshal(jsonBytes, &journeys); err != nil {
		return nil, 0, fmt.Errorf("%w: %s", ErrSchemaMismatch, err)
	}

	log.Debug().Int("journeys", len(journeys.Journeys)).Str("path", path).Msg("Received journey results")

	return &journeys, http.StatusOK, nil
}

// get performs exactly one request and returns the body of a 200 response
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, int, error) {
	requestURL, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return nil, 0, err
	}
	query.Set("app_key", c.AppKey)
	requestURL.RawQuery = query.Encode()

	log.Debug().Str("url", util.RedactURL(requestURL, "app_key")).Msg("TfL API request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL.String(), nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", "curl/7.54.1") // TfL is protected by cloudflare and it gets angry when no user agent is set

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, util.RedactError(err, c.AppKey)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, errUnexpectedStatus
	}

	jsonBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	return jsonBytes, resp.StatusCode, nil
}

// encodeComponent percent-encodes a path segment, spaces as %20
func encodeComponent(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}

func formatCoordinate(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

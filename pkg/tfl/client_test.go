package tfl

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const journeyResultsBody = `{
	"journeys": [
		{
			"duration": 21,
			"startDateTime": "2026-10-21T08:20:00",
			"arrivalDateTime": "2026-10-21T08:41:00",
			"legs": [
				{
					"mode": {"id": "tube", "name": "tube"},
					"departurePoint": {"naptanId": "940GZZLULSQ", "commonName": "Leicester Square Underground Station"},
					"arrivalPoint": {"naptanId": "940GZZLUCGN", "commonName": "Covent Garden Underground Station"},
					"departureTime": "2026-10-21T08:20:00",
					"arrivalTime": "2026-10-21T08:41:00",
					"instruction": {"summary": "Piccadilly line to Covent Garden", "detailed": "Piccadilly line towards Cockfosters"},
					"fare": {"totalCost": 250, "currency": "GBP"}
				}
			]
		}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(srv.URL, "test-app-key")
}

func TestFindNearestStopPoints(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/StopPoint", r.URL.Path)

		query := r.URL.Query()
		assert.Equal(t, "51.5226", query.Get("lat"))
		assert.Equal(t, "-0.1571", query.Get("lon"))
		assert.Equal(t, "NaptanPublicBusCoachTram", query.Get("stopTypes"))
		assert.Equal(t, "500", query.Get("radius"))
		assert.Equal(t, "test-app-key", query.Get("app_key"))
		assert.Equal(t, "curl/7.54.1", r.Header.Get("User-Agent"))

		fmt.Fprint(w, `{"stopPoints": [{"id": "490000011B", "commonName": "Baker Street Station", "distance": 40.5}, {"id": "490000011A", "commonName": "Baker Street Station"}]}`)
	})

	stopPoints, err := client.FindNearestStopPoints(context.Background(), 51.5226, -0.1571)

	require.NoError(t, err)
	require.Len(t, stopPoints, 2)
	assert.Equal(t, "490000011B", stopPoints[0].ID)
	assert.Equal(t, 40.5, stopPoints[0].Distance)
}

func TestFindNearestStopPointsFailures(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		target     error
	}{
		{name: "empty list", statusCode: http.StatusOK, body: `{"stopPoints": []}`, target: ErrNoStopPoints},
		{name: "missing field", statusCode: http.StatusOK, body: `{"centrePoint": [51.5, -0.1]}`, target: ErrSchemaMismatch},
		{name: "not json", statusCode: http.StatusOK, body: `<html></html>`, target: ErrSchemaMismatch},
		{name: "server error", statusCode: http.StatusInternalServerError, body: `{}`, target: errUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				fmt.Fprint(w, tt.body)
			})

			stopPoints, err := client.FindNearestStopPoints(context.Background(), 51.5, -0.1)

			assert.Nil(t, stopPoints)
			assert.ErrorIs(t, err, tt.target)

			var noStopPoints *NoStopPointsError
			require.ErrorAs(t, err, &noStopPoints)
			assert.Equal(t, 51.5, noStopPoints.Lat)
		})
	}
}

func TestPlanJourneyEncodesPath(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Journey/JourneyResults/490000011B/to/Kings Cross", r.URL.Path)
		assert.Equal(t, "/Journey/JourneyResults/490000011B/to/Kings%20Cross", r.URL.EscapedPath())
		assert.Equal(t, "test-app-key", r.URL.Query().Get("app_key"))

		fmt.Fprint(w, journeyResultsBody)
	})

	result, err := client.PlanJourney(context.Background(), "490000011B", "Kings Cross")

	require.NoError(t, err)
	require.Len(t, result.Journeys, 1)

	journey := result.Journeys[0]
	assert.Equal(t, 21, journey.Duration)
	assert.Equal(t, DateTime("2026-10-21T08:20:00"), journey.StartDateTime)
	require.Len(t, journey.Legs, 1)
	assert.Equal(t, "Piccadilly line to Covent Garden", journey.Legs[0].Instruction.Summary)
	assert.Equal(t, "2.5 GBP", journey.Legs[0].Fare.Display())
}

func TestPlanJourneyFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	result, err := client.PlanJourney(context.Background(), "490000011B", "Nowhere")

	assert.Nil(t, result)

	var planningError *JourneyPlanningError
	require.ErrorAs(t, err, &planningError)
	assert.Equal(t, http.StatusNotFound, planningError.StatusCode)
	assert.Equal(t, "Nowhere", planningError.To)
	assert.NotContains(t, err.Error(), "test-app-key")
}

func TestPlanJourneyKeepsEmptyJourneys(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"journeys": []}`)
	})

	result, err := client.PlanJourney(context.Background(), "490000011B", "Kings Cross")

	require.NoError(t, err)
	assert.NotNil(t, result.Journeys)
	assert.Empty(t, result.Journeys)
}

func TestPlanJourneyRejectsBadTimestamps(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"journeys": [{"duration": 5, "startDateTime": "tomorrow"}]}`)
	})

	_, err := client.PlanJourney(context.Background(), "490000011B", "Kings Cross")

	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestPlanLatestDeparture(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Journey/JourneyResults/51.5113,-0.1281/to/51.5129,-0.1243", r.URL.Path)

		query := r.URL.Query()
		assert.Equal(t, "arriving", query.Get("timeIs"))
		assert.Equal(t, "20261021", query.Get("date"))
		assert.Equal(t, "0850", query.Get("time"))

		fmt.Fprint(w, journeyResultsBody)
	})

	result, err := client.PlanLatestDeparture(context.Background(), 51.5113, -0.1281, 51.5129, -0.1243, "20261021T0850")

	require.NoError(t, err)
	assert.Len(t, result.Journeys, 1)
}

func TestPlanLatestDepartureRejectsMalformedArrivalTime(t *testing.T) {
	requests := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})

	_, err := client.PlanLatestDeparture(context.Background(), 51.5, -0.1, 51.6, -0.2, "20261021")

	var planningError *JourneyPlanningError
	require.ErrorAs(t, err, &planningError)
	assert.Equal(t, 0, requests)
}

func TestEncodeComponent(t *testing.T) {
	assert.Equal(t, "Kings%20Cross", encodeComponent("Kings Cross"))
	assert.Equal(t, "St%20John%27s%20Wood", encodeComponent("St John's Wood"))
	assert.Equal(t, "A%2FB", encodeComponent("A/B"))
	assert.Equal(t, "490000011B", encodeComponent("490000011B"))
}

func TestCancelledRequestKeepsCause(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"stopPoints": []}`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FindNearestStopPoints(ctx, 51.5, -0.1)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, err.Error(), "test-app-key")
}

func TestFareDisplay(t *testing.T) {
	tests := []struct {
		fare Fare
		want string
	}{
		{fare: Fare{TotalCost: 280, Currency: "GBP"}, want: "2.8 GBP"},
		{fare: Fare{TotalCost: 250, Currency: "GBP"}, want: "2.5 GBP"},
		{fare: Fare{TotalCost: 175, Currency: "GBP"}, want: "1.75 GBP"},
		{fare: Fare{TotalCost: 0, Currency: "GBP"}, want: "0 GBP"},
		{fare: Fare{TotalCost: 100000000, Currency: "GBP"}, want: "1000000 GBP"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fare.Display())
		})
	}
}

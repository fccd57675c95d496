package steps

import (
	"context"

	"github.com/travigo/tfl-bdd/pkg/geocoding"
	"github.com/travigo/tfl-bdd/pkg/tfl"
)

type fakeGeocoder struct {
	places map[string]geocoding.Coordinates
	calls  []string
}

func newFakeGeocoder() *fakeGeocoder {
	return &fakeGeocoder{
		places: map[string]geocoding.Coordinates{
			"Baker Street":      {Lat: 51.5226, Lng: -0.1571},
			"Kings Cross":       {Lat: 51.5308, Lng: -0.1238},
			"Leicester Square":  {Lat: 51.5113, Lng: -0.1281},
			"Covent Garden":     {Lat: 51.5129, Lng: -0.1243},
			"Middle of Nowhere": {Lat: 0, Lng: 0},
			"Nowhere Reachable": {Lat: 51.6, Lng: -0.2},
		},
	}
}

func (f *fakeGeocoder) Geocode(_ context.Context, address string) (geocoding.Coordinates, error) {
	f.calls = append(f.calls, address)

	coordinates, ok := f.places[address]
	if !ok {
		return geocoding.Coordinates{}, &geocoding.Error{Address: address, Err: geocoding.ErrEmptyResults}
	}

	return coordinates, nil
}

type latestDepartureCall struct {
	from        geocoding.Coordinates
	to          geocoding.Coordinates
	arrivalTime string
}

type fakePlanner struct {
	stopPointSearches    int
	journeyPlans         [][2]string
	latestDepartureCalls []latestDepartureCall

	journeys        map[string]*tfl.JourneyResultSet
	latestDeparture *tfl.JourneyResultSet
}

func newFakePlanner() *fakePlanner {
	return &fakePlanner{
		journeys: map[string]*tfl.JourneyResultSet{
			"Kings Cross": {
				Journeys: []tfl.Journey{
					testJourney(25, "2026-10-19T12:05:00", "2026-10-19T12:30:00"),
					testJourney(18, "2026-10-19T12:10:00", "2026-10-19T12:28:00"),
					testJourney(30, "2026-10-19T12:00:00", "2026-10-19T12:30:00"),
				},
			},
			"Nowhere Reachable": {Journeys: []tfl.Journey{}},
		},
		latestDeparture: &tfl.JourneyResultSet{
			Journeys: []tfl.Journey{
				testJourney(20, "2026-10-21T08:05:00", "2026-10-21T08:25:00"),
				testJourney(15, "2026-10-21T08:31:00", "2026-10-21T08:46:00"),
				testJourney(12, "2026-10-21T08:31:00", "2026-10-21T08:43:00"),
				testJourney(40, "2026-10-21T07:50:00", "2026-10-21T08:30:00"),
			},
		},
	}
}

func (f *fakePlanner) FindNearestStopPoints(_ context.Context, lat float64, lng float64) ([]tfl.StopPoint, error) {
	f.stopPointSearches++

	if lat == 0 && lng == 0 {
		return nil, &tfl.NoStopPointsError{Lat: lat, Lng: lng, Err: tfl.ErrNoStopPoints}
	}

	return []tfl.StopPoint{
		{ID: "490000011B", CommonName: "Baker Street Station"},
		{ID: "490000011A", CommonName: "Baker Street Station"},
	}, nil
}

func (f *fakePlanner) PlanJourney(_ context.Context, from string, to string) (*tfl.JourneyResultSet, error) {
	f.journeyPlans = append(f.journeyPlans, [2]string{from, to})

	result, ok := f.journeys[to]
	if !ok {
		return nil, &tfl.JourneyPlanningError{From: from, To: to, StatusCode: 404}
	}

	return result, nil
}

func (f *fakePlanner) PlanLatestDeparture(_ context.Context, fromLat float64, fromLng float64, toLat float64, toLng float64, arrivalTime string) (*tfl.JourneyResultSet, error) {
	f.latestDepartureCalls = append(f.latestDepartureCalls, latestDepartureCall{
		from:        geocoding.Coordinates{Lat: fromLat, Lng: fromLng},
		to:          geocoding.Coordinates{Lat: toLat, Lng: toLng},
		arrivalTime: arrivalTime,
	})

	return f.latestDeparture, nil
}

func testJourney(duration int, start string, arrival string) tfl.Journey {
	return tfl.Journey{
		Duration:        duration,
		StartDateTime:   tfl.DateTime(start),
		ArrivalDateTime: tfl.DateTime(arrival),
		Legs: []tfl.Leg{
			{
				Mode:           tfl.LegMode{ID: "tube", Name: "tube"},
				DeparturePoint: tfl.LegPoint{CommonName: "Baker Street Underground Station"},
				ArrivalPoint:   tfl.LegPoint{CommonName: "King's Cross St. Pancras Underground Station"},
				DepartureTime:  tfl.DateTime(start),
				ArrivalTime:    tfl.DateTime(arrival),
				Instruction: tfl.Instruction{
					Summary:  "Metropolitan line to King's Cross St. Pancras",
					Detailed: "Metropolitan line towards Aldgate",
				},
				Fare: &tfl.Fare{TotalCost: 280, Currency: "GBP"},
			},
		},
	}
}

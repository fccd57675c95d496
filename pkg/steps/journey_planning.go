package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"
	"github.com/rs/zerolog"
	"github.com/travigo/tfl-bdd/pkg/geocoding"
	"github.com/travigo/tfl-bdd/pkg/planner"
	"github.com/travigo/tfl-bdd/pkg/tfl"
)

// Arrivals for the "next Wednesday" step are always at 08:50
const (
	arrivalWeekday = time.Wednesday
	arrivalHour    = 8
	arrivalMinute  = 50
)

type Dependencies struct {
	Geocoder geocoding.Geocoder
	Planner  tfl.Planner

	// Logger receives the journey reports
	Logger zerolog.Logger

	// Now defaults to time.Now
	Now func() time.Time
}

type JourneyPlanningSteps struct {
	Dependencies

	State *ScenarioState
}

func NewJourneyPlanningSteps(dependencies Dependencies) *JourneyPlanningSteps {
	if dependencies.Now == nil {
		dependencies.Now = time.Now
	}

	return &JourneyPlanningSteps{
		Dependencies: dependencies,
		State:        &ScenarioState{},
	}
}

// InitializeScenario binds the journey planning steps to a godog scenario.
// godog calls the scenario initializer once per scenario, so every scenario gets its own state.
func InitializeScenario(sc *godog.ScenarioContext, dependencies Dependencies) *JourneyPlanningSteps {
	s := NewJourneyPlanningSteps(dependencies)

	sc.Before(func(ctx context.Context, scenario *godog.Scenario) (context.Context, error) {
		s.State = &ScenarioState{}
		s.Logger.Debug().Str("scenario", scenario.Name).Msg("Starting scenario")
		return ctx, nil
	})

	// Context steps
	sc.Step(`^I am at "([^"]*)"$`, s.iAmAt)
	sc.Step(`^I want to go to "([^"]*)"$`, s.iWantToGoTo)
	sc.Step(`^I am arriving at "([^"]*)" next Wednesday$`, s.iAmArrivingAtNextWednesday)
	sc.Step(`^I need to be at "([^"]*)" by "([^"]*)"$`, s.iNeedToBeAtBy)

	// Planning steps
	sc.Step(`^I plan the quickest journey$`, s.iPlanTheJourney)
	sc.Step(`^I plan the journey$`, s.iPlanTheJourney)
	sc.Step(`^I plan the latest possible departure journey$`, s.iPlanTheLatestPossibleDepartureJourney)

	// Assertion steps
	sc.Step(`^I should see the quickest journey plan$`, s.iShouldSeeTheQuickestJourneyPlan)
	sc.Step(`^I should see the journey plan$`, s.iShouldSeeTheJourneyPlan)
	sc.Step(`^I should see the latest possible departure time$`, s.iShouldSeeTheLatestPossibleDepartureTime)

	return s
}

func (s *JourneyPlanningSteps) geocode(ctx context.Context, place string) (*geocoding.Coordinates, error) {
	coordinates, err := s.Geocoder.Geocode(ctx, place)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", place, err)
	}

	return &coordinates, nil
}

func (s *JourneyPlanningSteps) iAmAt(ctx context.Context, place string) error {
	s.State.Origin = place

	coordinates, err := s.geocode(ctx, place)
	if err != nil {
		return err
	}
	s.State.OriginCoordinates = coordinates

	s.Logger.Info().Str("origin", place).Float64("lat", coordinates.Lat).Float64("lng", coordinates.Lng).Msg("Origin set")

	return nil
}

func (s *JourneyPlanningSteps) iWantToGoTo(ctx context.Context, place string) error {
	s.State.Destination = place

	coordinates, err := s.geocode(ctx, place)
	if err != nil {
		return err
	}
	s.State.DestinationCoordinates = coordinates

	s.Logger.Info().Str("destination", place).Float64("lat", coordinates.Lat).Float64("lng", coordinates.Lng).Msg("Destination set")

	return nil
}

func (s *JourneyPlanningSteps) iAmArrivingAtNextWednesday(ctx context.Context, place string) error {
	s.State.Origin = place

	arrival := planner.NextWeekdayAt(s.Now(), arrivalWeekday, arrivalHour, arrivalMinute)
	s.State.ArrivalTime = planner.ArrivalToken(arrival)

	s.Logger.Info().Str("origin", place).Str("arrivaltime", s.State.ArrivalTime).Msg("Arriving next Wednesday")

	coordinates, err := s.geocode(ctx, place)
	if err != nil {
		return err
	}
	s.State.OriginCoordinates = coordinates

	s.Logger.Info().Str("origin", place).Float64("lat", coordinates.Lat).Float64("lng", coordinates.Lng).Msg("Origin set")

	return nil
}

// iNeedToBeAtBy keeps the arrival time from the next Wednesday step, the "by" text is not used
func (s *JourneyPlanningSteps) iNeedToBeAtBy(ctx context.Context, place string, requestedTime string) error {
	s.State.Destination = place

	s.Logger.Debug().Str("requested", requestedTime).Str("arrivaltime", s.State.ArrivalTime).Msg("Ignoring requested arrival time")

	coordinates, err := s.geocode(ctx, place)
	if err != nil {
		return err
	}
	s.State.DestinationCoordinates = coordinates

	s.Logger.Info().
		Str("destination", place).
		Float64("lat", coordinates.Lat).
		Float64("lng", coordinates.Lng).
		Str("arrivaltime", s.State.ArrivalTime).
		Msg("Destination set")

	return nil
}

// iPlanTheJourney plans from the stop point nearest the origin to the destination by name
func (s *JourneyPlanningSteps) iPlanTheJourney(ctx context.Context) error {
	origin, err := s.State.requireOriginCoordinates()
	if err != nil {
		return err
	}
	if s.State.Destination == "" {
		return errDestinationNotSet
	}

	stopPoints, err := s.Planner.FindNearestStopPoints(ctx, origin.Lat, origin.Lng)
	if err != nil {
		return fmt.Errorf("find nearest stop points: %w", err)
	}
	if len(stopPoints) == 0 {
		return &tfl.NoStopPointsError{Lat: origin.Lat, Lng: origin.Lng, Err: tfl.ErrNoStopPoints}
	}

	nearest := stopPoints[0]
	s.Logger.Info().Str("stoppoint", nearest.ID).Str("name", nearest.CommonName).Msg("Planning from nearest stop point")

	result, err := s.Planner.PlanJourney(ctx, nearest.ID, s.State.Destination)
	if err != nil {
		return fmt.Errorf("plan journey: %w", err)
	}
	s.State.Result = result

	return nil
}

func (s *JourneyPlanningSteps) iPlanTheLatestPossibleDepartureJourney(ctx context.Context) error {
	origin, err := s.State.requireOriginCoordinates()
	if err != nil {
		return err
	}
	destination, err := s.State.requireDestinationCoordinates()
	if err != nil {
		return err
	}
	if s.State.ArrivalTime == "" {
		return errArrivalTimeNotSet
	}

	result, err := s.Planner.PlanLatestDeparture(ctx, origin.Lat, origin.Lng, destination.Lat, destination.Lng, s.State.ArrivalTime)
	if err != nil {
		return fmt.Errorf("plan latest departure journey: %w", err)
	}
	s.State.Result = result

	return nil
}

func (s *JourneyPlanningSteps) iShouldSeeTheQuickestJourneyPlan(ctx context.Context) (context.Context, error) {
	journeys, err := s.State.requireJourneys()
	if err != nil {
		return ctx, err
	}

	quickest, err := planner.QuickestJourney(journeys)
	if err != nil {
		return ctx, err
	}

	s.reportJourney("Quickest journey", quickest, legDetailFull)

	return attachJourneys(ctx, "quickest-journey.json", attachmentGroupReport, quickest)
}

func (s *JourneyPlanningSteps) iShouldSeeTheJourneyPlan(ctx context.Context) (context.Context, error) {
	journeys, err := s.State.requireJourneys()
	if err != nil {
		return ctx, err
	}

	for i := range journeys {
		s.reportJourney(fmt.Sprintf("Journey %d", i+1), &journeys[i], legDetailSummary)
	}

	return attachJourneys(ctx, "journeys.json", attachmentGroupSummary, journeys)
}

func (s *JourneyPlanningSteps) iShouldSeeTheLatestPossibleDepartureTime(ctx context.Context) (context.Context, error) {
	journeys, err := s.State.requireJourneys()
	if err != nil {
		return ctx, err
	}

	latest, err := planner.LatestDepartureJourney(journeys)
	if err != nil {
		return ctx, err
	}

	s.reportJourney("Latest possible departure journey", latest, legDetailSummary)

	return attachJourneys(ctx, "latest-departure-journey.json", attachmentGroupSummary, latest)
}

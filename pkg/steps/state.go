package steps

import (
	"errors"

	"github.com/travigo/tfl-bdd/pkg/geocoding"
	"github.com/travigo/tfl-bdd/pkg/tfl"
)

var (
	errOriginNotGeocoded      = errors.New("origin coordinates have not been set, use an origin step first")
	errDestinationNotSet      = errors.New("destination has not been set, use a destination step first")
	errDestinationNotGeocoded = errors.New("destination coordinates have not been set, use a destination step first")
	errArrivalTimeNotSet      = errors.New("arrival time has not been set, use the next Wednesday step first")
	errNoJourneyResult        = errors.New("no journey has been planned in this scenario")
	errJourneysMissing        = errors.New("journey result has no journeys field")
	errJourneysEmpty          = errors.New("journey result contains no journeys")
)

// ScenarioState is everything one scenario accumulates between its steps.
// A new value is created for every scenario and never shared.
type ScenarioState struct {
	Origin      string
	Destination string

	OriginCoordinates      *geocoding.Coordinates
	DestinationCoordinates *geocoding.Coordinates

	// ArrivalTime is a compact YYYYMMDDTHHMM token
	ArrivalTime string

	Result *tfl.JourneyResultSet
}

func (s *ScenarioState) requireOriginCoordinates() (geocoding.Coordinates, error) {
	if s.OriginCoordinates == nil {
		return geocoding.Coordinates{}, errOriginNotGeocoded
	}

	return *s.OriginCoordinates, nil
}

func (s *ScenarioState) requireDestinationCoordinates() (geocoding.Coordinates, error) {
	if s.DestinationCoordinates == nil {
		return geocoding.Coordinates{}, errDestinationNotGeocoded
	}

	return *s.DestinationCoordinates, nil
}

// requireJourneys backs every assertion step
func (s *ScenarioState) requireJourneys() ([]tfl.Journey, error) {
	if s.Result == nil {
		return nil, errNoJourneyResult
	}
	if s.Result.Journeys == nil {
		return nil, errJourneysMissing
	}
	if len(s.Result.Journeys) == 0 {
		return nil, errJourneysEmpty
	}

	return s.Result.Journeys, nil
}

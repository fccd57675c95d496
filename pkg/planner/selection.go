package planner

import (
	"errors"
	"fmt"

	"github.com/travigo/tfl-bdd/pkg/tfl"
)

var ErrNoJourneys = errors.New("journey result set contains no journeys")

// QuickestJourney returns the journey with the smallest duration.
// Ties go to the journey that appears first.
func QuickestJourney(journeys []tfl.Journey) (*tfl.Journey, error) {
	if len(journeys) == 0 {
		return nil, ErrNoJourneys
	}

	quickest := &journeys[0]
	for i := 1; i < len(journeys); i++ {
		if journeys[i].Duration < quickest.Duration {
			quickest = &journeys[i]
		}
	}

	return quickest, nil
}

// LatestDepartureJourney returns the journey with the latest start time.
// Ties go to the journey that appears first.
func LatestDepartureJourney(journeys []tfl.Journey) (*tfl.Journey, error) {
	if len(journeys) == 0 {
		return nil, ErrNoJourneys
	}

	latest := &journeys[0]
	latestStart, err := latest.StartDateTime.Time()
	if err != nil {
		return nil, fmt.Errorf("journey 1 start time: %w", err)
	}

	for i := 1; i < len(journeys); i++ {
		start, err := journeys[i].StartDateTime.Time()
		if err != nil {
			return nil, fmt.Errorf("journey %d start time: %w", i+1, err)
		}

		if start.After(latestStart) {
			latest = &journeys[i]
			latestStart = start
		}
	}

	return latest, nil
}

package tfl

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrSchemaMismatch = errors.New("TfL response did not match expected schema")

// ErrNoStopPoints is wrapped by NoStopPointsError when the search came back empty
var ErrNoStopPoints = errors.New("no stop points found near the provided coordinates")

type NoStopPointsError struct {
	Lat        float64
	Lng        float64
	StatusCode int
	Err        error
}

func (e *NoStopPointsError) Error() string {
	return fmt.Sprintf("failed to get stop points near %g,%g: %s", e.Lat, e.Lng, describeCause(e.StatusCode, e.Err))
}

func (e *NoStopPointsError) Unwrap() error {
	return e.Err
}

type JourneyPlanningError struct {
	From       string
	To         string
	StatusCode int
	Err        error
}

func (e *JourneyPlanningError) Error() string {
	return fmt.Sprintf("failed to plan journey from %s to %s: %s", e.From, e.To, describeCause(e.StatusCode, e.Err))
}

func (e *JourneyPlanningError) Unwrap() error {
	return e.Err
}

func describeCause(statusCode int, err error) string {
	if statusCode == 0 {
		return err.Error()
	}

	return fmt.Sprintf("%d %s: %s", statusCode, http.StatusText(statusCode), err)
}

var errUnexpectedStatus = errors.New("unexpected status")

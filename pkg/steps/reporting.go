package steps

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cucumber/godog"
	"github.com/liip/sheriff"
	"github.com/travigo/tfl-bdd/pkg/tfl"
)

type legDetail int

const (
	legDetailSummary legDetail = iota
	// legDetailFull adds the detailed instruction and fare
	legDetailFull
)

func (s *JourneyPlanningSteps) reportJourney(title string, journey *tfl.Journey, detail legDetail) {
	s.Logger.Info().
		Int("duration", journey.Duration).
		Str("start", journey.StartDateTime.String()).
		Str("arrival", journey.ArrivalDateTime.String()).
		Int("legs", len(journey.Legs)).
		Msg(title)

	for i, leg := range journey.Legs {
		event := s.Logger.Info().
			Int("leg", i+1).
			Str("mode", leg.Mode.Name).
			Str("departurepoint", leg.DeparturePoint.CommonName).
			Str("arrivalpoint", leg.ArrivalPoint.CommonName).
			Str("departuretime", leg.DepartureTime.String()).
			Str("arrivaltime", leg.ArrivalTime.String()).
			Str("instruction", leg.Instruction.Summary)

		if detail == legDetailFull {
			event = event.Str("detailedinstruction", leg.Instruction.Detailed)

			if leg.Fare != nil {
				event = event.Str("fare", leg.Fare.Display())
			}
		}

		event.Msg(fmt.Sprintf("%s leg", title))
	}
}

// Field groups for attachments, matching the fields each assertion step logs
const (
	attachmentGroupReport  = "report"
	attachmentGroupSummary = "summary"
)

// attachJourneys embeds the reported journeys in the cucumber JSON output, reduced to the given field group
func attachJourneys(ctx context.Context, fileName string, group string, journeys any) (context.Context, error) {
	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{group},
	}, journeys)
	if err != nil {
		return ctx, fmt.Errorf("reduce journeys for report: %w", err)
	}

	body, err := json.Marshal(reduced)
	if err != nil {
		return ctx, fmt.Errorf("encode journeys for report: %w", err)
	}

	return godog.Attach(ctx, godog.Attachment{
		Body:      body,
		FileName:  fileName,
		MediaType: "application/json",
	}), nil
}

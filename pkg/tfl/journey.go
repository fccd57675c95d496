package tfl

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

var dateTimeLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02T15:04",
}

// DateTime keeps the provider's timestamp text as-is while guaranteeing it parses
type DateTime string

func (d *DateTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw != "" {
		if _, err := parseDateTime(raw); err != nil {
			return err
		}
	}

	*d = DateTime(raw)

	return nil
}

func (d DateTime) Time() (time.Time, error) {
	return parseDateTime(string(d))
}

func (d DateTime) String() string {
	return string(d)
}

func parseDateTime(value string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised date time %q", value)
}

type JourneyResultSet struct {
	Journeys []Journey `json:"journeys" groups:"report"`
}

type Journey struct {
	Duration        int      `json:"duration" groups:"report,summary"`
	StartDateTime   DateTime `json:"startDateTime" groups:"report,summary"`
	ArrivalDateTime DateTime `json:"arrivalDateTime" groups:"report,summary"`

	Legs []Leg `json:"legs" groups:"report,summary"`
}

type Leg struct {
	Mode           LegMode     `json:"mode" groups:"report,summary"`
	DeparturePoint LegPoint    `json:"departurePoint" groups:"report,summary"`
	ArrivalPoint   LegPoint    `json:"arrivalPoint" groups:"report,summary"`
	DepartureTime  DateTime    `json:"departureTime" groups:"report,summary"`
	ArrivalTime    DateTime    `json:"arrivalTime" groups:"report,summary"`
	Instruction    Instruction `json:"instruction" groups:"report,summary"`

	Fare *Fare `json:"fare,omitempty" groups:"report"`
}

type LegMode struct {
	ID   string `json:"id"`
	Name string `json:"name" groups:"report,summary"`
}

type LegPoint struct {
	NaptanID   string `json:"naptanId"`
	CommonName string `json:"commonName" groups:"report,summary"`
}

type Instruction struct {
	Summary  string `json:"summary" groups:"report,summary"`
	Detailed string `json:"detailed,omitempty" groups:"report"`
}

// Fare costs are in minor currency units
type Fare struct {
	TotalCost int    `json:"totalCost" groups:"report"`
	Currency  string `json:"currency" groups:"report"`
}

// Display renders the fare in major units, eg 250 GBP becomes "2.5 GBP"
func (f *Fare) Display() string {
	return fmt.Sprintf("%s %s", strconv.FormatFloat(float64(f.TotalCost)/100, 'f', -1, 64), f.Currency)
}

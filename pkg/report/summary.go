package report

import (
	"time"

	"golang.org/x/exp/slices"
)

const (
	StatusPassed    = "passed"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
	StatusUndefined = "undefined"
	StatusPending   = "pending"
	StatusAmbiguous = "ambiguous"
)

type Counts struct {
	Total     int `json:"total" bson:"total"`
	Passed    int `json:"passed" bson:"passed"`
	Failed    int `json:"failed" bson:"failed"`
	Skipped   int `json:"skipped" bson:"skipped"`
	Undefined int `json:"undefined" bson:"undefined"`
	Pending   int `json:"pending" bson:"pending"`
	Ambiguous int `json:"ambiguous" bson:"ambiguous"`
}

func (c *Counts) add(status string) {
	c.Total++

	switch status {
	case StatusPassed:
		c.Passed++
	case StatusFailed:
		c.Failed++
	case StatusUndefined:
		c.Undefined++
	case StatusPending:
		c.Pending++
	case StatusAmbiguous:
		c.Ambiguous++
	default:
		c.Skipped++
	}
}

type Summary struct {
	Features  int           `json:"features" bson:"features"`
	Scenarios Counts        `json:"scenarios" bson:"scenarios"`
	Steps     Counts        `json:"steps" bson:"steps"`
	Duration  time.Duration `json:"duration" bson:"duration"`
}

func (s Summary) Passed() bool {
	return s.Scenarios.Total == s.Scenarios.Passed
}

// ScenarioStatus folds step results: any failure fails the scenario,
// otherwise the first step that did not pass decides.
func ScenarioStatus(scenario Scenario) string {
	if slices.ContainsFunc(scenario.Steps, func(step Step) bool { return step.Result.Status == StatusFailed }) {
		return StatusFailed
	}

	index := slices.IndexFunc(scenario.Steps, func(step Step) bool { return step.Result.Status != StatusPassed })
	if index == -1 {
		return StatusPassed
	}

	return scenario.Steps[index].Result.Status
}

// Summarise counts every scenario as a test in its own right
func Summarise(features []Feature) Summary {
	summary := Summary{Features: len(features)}

	for _, feature := range features {
		for _, scenario := range feature.Elements {
			if scenario.Type == "background" {
				continue
			}

			summary.Scenarios.add(ScenarioStatus(scenario))

			for _, step := range scenario.Steps {
				summary.Steps.add(step.Result.Status)

				if step.Result.Duration != nil {
					summary.Duration += time.Duration(*step.Result.Duration)
				}
			}
		}
	}

	return summary
}

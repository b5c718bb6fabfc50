package model

import (
	"encoding/json"
	"time"
)

// PlanTimeLayout is the wall-clock layout the Hub Management service stores. It carries no zone.
const PlanTimeLayout = "2006-01-02T15:04:05"

// PlanTime is a wall-clock timestamp of a plan. The zero value marshals to an empty string.
type PlanTime struct {
	timeVal time.Time
}

func NewPlanTime(t time.Time) PlanTime {
	return PlanTime{timeVal: t.Truncate(time.Second)}
}

func NewPlanTimeFromString(s string) (PlanTime, error) {
	if s == "" {
		return PlanTime{}, nil
	}
	ts, err := time.Parse(PlanTimeLayout, s)
	if err != nil {
		ts, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return PlanTime{}, err
		}
	}
	return PlanTime{timeVal: ts}, nil
}

func (pt PlanTime) IsZero() bool {
	return pt.timeVal.IsZero()
}

func (pt PlanTime) GetTime() time.Time {
	return pt.timeVal
}

func (pt PlanTime) String() string {
	if pt.timeVal.IsZero() {
		return ""
	}
	return pt.timeVal.Format(PlanTimeLayout)
}

func (pt PlanTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(pt.String())
}

func (pt *PlanTime) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*pt = PlanTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	newPt, err := NewPlanTimeFromString(s)
	if err != nil {
		return err
	}
	*pt = newPt
	return nil
}

package domain

import (
	"encoding/json"
	"time"
)

const dateLayout = "2006-01-02"

// Holiday is a named calendar day observed in a given year. ObservedOn
// carries date precision only; the time component is always midnight UTC.
type Holiday struct {
	Name       string
	ObservedOn time.Time
}

type holidayJSON struct {
	Name       string `json:"name"`
	ObservedOn string `json:"observed_on"`
}

func (h Holiday) MarshalJSON() ([]byte, error) {
	return json.Marshal(holidayJSON{
		Name:       h.Name,
		ObservedOn: h.ObservedOn.Format(dateLayout),
	})
}

func (h *Holiday) UnmarshalJSON(data []byte) error {
	var raw holidayJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	observed, err := time.Parse(dateLayout, raw.ObservedOn)
	if err != nil {
		return err
	}
	h.Name = raw.Name
	h.ObservedOn = observed
	return nil
}

// SameDate reports whether the holiday falls on the given calendar day
func (h Holiday) SameDate(date time.Time) bool {
	hy, hm, hd := h.ObservedOn.Date()
	dy, dm, dd := date.Date()
	return hy == dy && hm == dm && hd == dd
}

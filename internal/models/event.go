// Package models contains the wire models exchanged with the agenda backend.
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Default colors for a new event.
const (
	DefaultBackgroundColor = "#0000FF"
	DefaultBorderColor     = "#ff1414"
	DefaultTextColor       = "#ffffff"
)

// Event is a calendar event. Start and End travel as "start" and "end";
// the start_date/end_date naming is not supported.
type Event struct {
	ID              string  `json:"id,omitempty"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Start           Instant `json:"start"`
	End             Instant `json:"end"`
	AllDay          bool    `json:"allDay"`
	BackgroundColor string  `json:"backgroundColor"`
	BorderColor     string  `json:"borderColor"`
	TextColor       string  `json:"textColor"`
}

// EventSpan is the partial update sent when an event is moved or resized
// on the calendar.
type EventSpan struct {
	Start  Instant `json:"start"`
	End    Instant `json:"end"`
	AllDay bool    `json:"allDay"`
}

// DecodeEvent decodes an event, reading zone-less instants in loc.
func DecodeEvent(data []byte, loc *time.Location) (Event, error) {
	var raw struct {
		Event
		Start json.RawMessage `json:"start"`
		End   json.RawMessage `json:"end"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Event{}, fmt.Errorf("decoding event: %w", err)
	}

	ev := raw.Event
	var err error
	if ev.Start, err = DecodeInstant(raw.Start, loc); err != nil {
		return Event{}, fmt.Errorf("decoding event start: %w", err)
	}
	if ev.End, err = DecodeInstant(raw.End, loc); err != nil {
		return Event{}, fmt.Errorf("decoding event end: %w", err)
	}
	return ev, nil
}

// DecodeEvents decodes a list of events, reading zone-less instants in loc.
func DecodeEvents(data []byte, loc *time.Location) ([]Event, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decoding events: %w", err)
	}
	events := make([]Event, 0, len(raws))
	for _, raw := range raws {
		ev, err := DecodeEvent(raw, loc)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

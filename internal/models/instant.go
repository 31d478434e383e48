package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// InstantLayout is the wire format for event instants.
const InstantLayout = "2006-01-02 15:04"

// instantLayouts lists the accepted decode formats, in order.
var instantLayouts = []string{
	InstantLayout,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// Instant is a point in time as exchanged with the backend.
// It encodes as wall-clock text in its own location.
type Instant struct {
	time.Time
}

// NewInstant wraps t.
func NewInstant(t time.Time) Instant {
	return Instant{Time: t}
}

// ParseInstant parses s using the wire layout, then RFC 3339, then the
// ISO layouts calendar widgets emit. Zone-less values are read in loc.
func ParseInstant(s string, loc *time.Location) (Instant, error) {
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Instant{Time: t.In(loc)}, nil
	}
	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return Instant{Time: t}, nil
		}
	}
	return Instant{}, fmt.Errorf("unrecognized instant %q", s)
}

// String formats the instant with InstantLayout.
func (i Instant) String() string {
	if i.IsZero() {
		return ""
	}
	return i.Format(InstantLayout)
}

// MarshalJSON implements json.Marshaler.
func (i Instant) MarshalJSON() ([]byte, error) {
	if i.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(i.Format(InstantLayout))
}

// UnmarshalJSON implements json.Unmarshaler. Zone-less values are read
// in time.Local; use DecodeInstant to pick the zone.
func (i *Instant) UnmarshalJSON(data []byte) error {
	parsed, err := DecodeInstant(data, time.Local)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// DecodeInstant decodes a JSON instant, reading zone-less values in loc.
// Missing, null and empty values decode to the zero instant.
func DecodeInstant(data []byte, loc *time.Location) (Instant, error) {
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return Instant{}, nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return Instant{}, fmt.Errorf("decoding instant: %w", err)
	}
	if s == "" {
		return Instant{}, nil
	}
	return ParseInstant(s, loc)
}

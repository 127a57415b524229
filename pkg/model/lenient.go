package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// The upstream statistics API is loosely typed: fields go missing, arrays turn
// into objects and counts arrive as strings. The types below decode those
// shapes without failing the whole payload.

// Text is a name field. Strings decode as-is, numbers keep their literal text,
// anything else decodes to "".
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*t = ""
	if len(b) == 0 {
		return nil
	}
	switch {
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	case isNumberToken(b):
		*t = Text(b)
	}
	return nil
}

// Trimmed returns the text without surrounding whitespace.
func (t Text) Trimmed() string { return strings.TrimSpace(string(t)) }

// Count is a tally coerced to an integer. Numeric strings are parsed, booleans
// become 1 or 0, and anything that is not a finite number becomes 0.
// Fractional values are truncated toward zero.
type Count int64

func (c *Count) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*c = 0
	if len(b) == 0 {
		return nil
	}
	var f float64
	switch {
	case isNumberToken(b):
		v, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			return nil
		}
		f = v
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f = v
	case bytes.Equal(b, []byte("true")):
		f = 1
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	*c = Count(math.Trunc(f))
	return nil
}

// Coordinate is a latitude or longitude. Valid is set only when the JSON value
// was a number; strings, null and missing fields are invalid.
type Coordinate struct {
	Value float64
	Valid bool
}

func (c *Coordinate) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*c = Coordinate{}
	if !isNumberToken(b) {
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return nil
	}
	*c = Coordinate{Value: v, Valid: true}
	return nil
}

// List decodes a JSON array. Any non-array value decodes to an empty list, and
// elements that do not fit T decode to T's zero value.
type List[T any] []T

func (l *List[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*l = nil
	if len(b) == 0 || b[0] != '[' {
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	items := make([]T, len(raw))
	for i, r := range raw {
		var item T
		if err := json.Unmarshal(r, &item); err != nil {
			item = *new(T)
		}
		items[i] = item
	}
	*l = items
	return nil
}

func isNumberToken(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	return b[0] == '-' || (b[0] >= '0' && b[0] <= '9')
}

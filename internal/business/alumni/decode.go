package alumni

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/psu-oas/alumni-dashboard/apps/api/pkg/model"
)

// ErrInvalidFormat signals an upstream body that parsed as JSON but lacks the
// expected `faculty_major_counts` array.
var ErrInvalidFormat = errors.New("invalid data format from external API")

// DecodeOrgPayload extracts the faculty records from an upstream org body.
// Bodies that are not JSON return a decode error; JSON without a
// `faculty_major_counts` array returns ErrInvalidFormat.
func DecodeOrgPayload(body []byte) ([]model.FacultyRecord, error) {
	if !json.Valid(body) {
		return nil, errors.New("decode org payload: malformed JSON")
	}
	var envelope struct {
		Counts json.RawMessage `json:"faculty_major_counts"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, ErrInvalidFormat
	}
	counts := bytes.TrimSpace(envelope.Counts)
	if len(counts) == 0 || counts[0] != '[' {
		return nil, ErrInvalidFormat
	}
	var records model.List[model.FacultyRecord]
	if err := json.Unmarshal(counts, &records); err != nil {
		return nil, fmt.Errorf("decode faculty_major_counts: %w", err)
	}
	return records, nil
}

// DecodeLocationPayload parses an upstream location body. Missing or
// mistyped arrays decode as empty; only bodies that are not JSON fail.
func DecodeLocationPayload(body []byte) (model.LocationPayload, error) {
	if !json.Valid(body) {
		return model.LocationPayload{}, errors.New("decode location payload: malformed JSON")
	}
	var payload model.LocationPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return model.LocationPayload{}, nil
		}
		return model.LocationPayload{}, fmt.Errorf("decode location payload: %w", err)
	}
	return payload, nil
}

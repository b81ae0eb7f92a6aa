package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aaronzipp/rps/internal/models"
)

// ErrInvalidShape indicates persisted history that parses but is not a mapping
// of identities to complete stats records.
var ErrInvalidShape = errors.New("history must map player names to objects with ties, wins, rock, paper, scissors and games")

// FormatError reports persisted history that cannot be used. It is never repaired.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid history: %v", e.Err)
	}
	return fmt.Sprintf("invalid history %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Validate reports whether data is a JSON object whose every value is an object
// carrying all the stats fields. Extra fields are allowed.
func Validate(data []byte) bool {
	var top map[string]json.RawMessage
	if !isObject(data) || json.Unmarshal(data, &top) != nil {
		return false
	}
	for _, raw := range top {
		var record map[string]json.RawMessage
		if !isObject(raw) || json.Unmarshal(raw, &record) != nil {
			return false
		}
		for _, field := range models.StatsFields {
			if _, ok := record[field]; !ok {
				return false
			}
		}
	}
	return true
}

// isObject is needed because a JSON null unmarshals into a nil map without error.
func isObject(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// Decode parses persisted history. Zero bytes is an empty history.
func Decode(data []byte) (History, error) {
	if len(data) == 0 {
		return History{}, nil
	}
	if !json.Valid(data) {
		return nil, errors.New("history is not valid JSON")
	}
	if !Validate(data) {
		return nil, ErrInvalidShape
	}
	history := History{}
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return history, nil
}

// Encode serializes the full history.
func Encode(h History) ([]byte, error) {
	if h == nil {
		h = History{}
	}
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}
	return append(data, '\n'), nil
}

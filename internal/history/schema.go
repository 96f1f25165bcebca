// Package history persists the single reversible change the agent may undo
// on a later run.
//
// The slot holds at most one Record. Saving a record replaces whatever was
// there; clearing writes an empty object. An absent or unreadable file is
// treated as an empty slot.
package history

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Record describes one reversible edit: which repository and file, the exact
// text appended, and when.
type Record struct {
	Repository   string    `json:"repo_url,omitempty"`
	RelativePath string    `json:"rel_path"`
	AddedContent string    `json:"added_content"`
	Timestamp    time.Time `json:"timestamp"`

	// Separator is the text inserted before AddedContent to keep the file
	// well-formed. Nil for records written before it was tracked.
	Separator *string `json:"separator,omitempty"`
}

// IsZero reports whether the record points at nothing.
func (r Record) IsZero() bool {
	return r.RelativePath == "" && r.AddedContent == ""
}

// UnmarshalJSON accepts timestamps either as RFC 3339 strings or as Unix
// seconds, the format used by older history files.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	var aux struct {
		plain
		Timestamp json.RawMessage `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*r = Record(aux.plain)
	r.Timestamp = time.Time{}

	if len(aux.Timestamp) == 0 || string(aux.Timestamp) == "null" {
		return nil
	}

	var secs float64
	if err := json.Unmarshal(aux.Timestamp, &secs); err == nil {
		whole, frac := math.Modf(secs)
		r.Timestamp = time.Unix(int64(whole), int64(frac*1e9)).UTC()
		return nil
	}

	var ts time.Time
	if err := json.Unmarshal(aux.Timestamp, &ts); err != nil {
		return fmt.Errorf("parse timestamp: %w", err)
	}
	r.Timestamp = ts
	return nil
}

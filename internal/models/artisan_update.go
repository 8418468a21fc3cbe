package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// readOnlyProfileFields may appear in an update body (clients often send the
// whole document back) but are never applied.
var readOnlyProfileFields = []string{"id", "email", "createdAt", "updatedAt"}

// ErrUnknownField reports a key that is not part of ArtisanUpdate.
var ErrUnknownField = errors.New("unknown field")

// DecodeArtisanUpdate parses a JSON object into an ArtisanUpdate. Read-only
// profile keys are dropped; any other key outside the allow-list is an error.
func DecodeArtisanUpdate(data []byte) (ArtisanUpdate, error) {
	var upd ArtisanUpdate

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return upd, fmt.Errorf("invalid body: %w", err)
	}
	for _, k := range readOnlyProfileFields {
		delete(raw, k)
	}

	allowed := updatableFields()
	var unknown []string
	for k := range raw {
		if !allowed[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return upd, fmt.Errorf("%w: %q", ErrUnknownField, unknown[0])
	}

	clean, err := json.Marshal(raw)
	if err != nil {
		return upd, err
	}
	dec := json.NewDecoder(bytes.NewReader(clean))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&upd); err != nil {
		return upd, fmt.Errorf("invalid body: %w", err)
	}
	return upd, nil
}

func updatableFields() map[string]bool {
	return map[string]bool{
		"name": true, "phone": true, "trade": true, "skills": true,
		"priceRange": true, "hourlyRate": true, "availability": true,
		"location": true, "verified": true, "description": true,
		"photo": true, "rating": true, "reviewCount": true,
		"experience": true, "completedJobs": true, "whatsapp": true,
	}
}

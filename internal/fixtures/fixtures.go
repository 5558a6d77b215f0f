// Package fixtures holds the bundled sample catalog shown when the backend is
// unreachable.
package fixtures

import (
	"embed"
	"fmt"
	"time"

	"github.com/GustavoCaso/storefront/internal/listing"
)

//go:embed data/*.json
var dataFS embed.FS

// Epoch is the instant the fixture timestamps were written against. Load
// shifts every timestamp so that Epoch lands on the given now.
var Epoch = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

// Raw returns the fixture JSON for kind.
func Raw(kind listing.Kind) ([]byte, error) {
	data, err := dataFS.ReadFile("data/" + kind.Collection() + ".json")
	if err != nil {
		return nil, fmt.Errorf("no fixtures for %s: %w", kind.Collection(), err)
	}
	return data, nil
}

// Load decodes the fixtures for kind relative to now.
func Load(kind listing.Kind, now time.Time) ([]listing.Record, error) {
	data, err := Raw(kind)
	if err != nil {
		return nil, err
	}

	records, err := listing.DecodeList(kind, data)
	if err != nil {
		return nil, err
	}

	offset := now.Sub(Epoch)
	for i := range records {
		records[i].CreatedAt = shift(records[i].CreatedAt, offset)
		records[i].EndTime = shift(records[i].EndTime, offset)
	}

	return records, nil
}

// LoadAll decodes the fixtures of every kind.
func LoadAll(now time.Time) ([]listing.Record, error) {
	var all []listing.Record
	for _, kind := range listing.Kinds {
		records, err := Load(kind, now)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}

func shift(t *time.Time, offset time.Duration) *time.Time {
	if t == nil {
		return nil
	}
	shifted := t.Add(offset).Truncate(time.Second)
	return &shifted
}

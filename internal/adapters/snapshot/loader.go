// Package snapshot reads rule catalogs, room layouts and day plannings from YAML files.
package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"orplanning/internal/domain"
	"orplanning/internal/supervision"
)

// Load reads and parses the snapshot file at path.
func Load(path string) (*domain.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	snap, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return snap, nil
}

// Parse decodes a YAML snapshot. Unknown keys are rejected so that a misspelt
// condition never silently disables a rule, and the rules must form a valid
// catalog: every malformed or duplicated rule is reported as an
// *domain.InvalidRuleDefinitionError.
func Parse(raw []byte) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&snap); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w: %w", domain.ErrInvalidInput, err)
	}
	if _, err := supervision.NewCatalog(snap.Rules); err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}
	for i, a := range snap.Assignments {
		if a == nil {
			continue
		}
		if _, err := domain.ParseDate(a.Date); err != nil {
			return nil, fmt.Errorf("assignment %d: invalid date %q: %w", i, a.Date, domain.ErrInvalidInput)
		}
	}
	return &snap, nil
}

// Assignment returns the planning stored for date.
func Assignment(snap *domain.Snapshot, date string) (*domain.Assignment, error) {
	for _, a := range snap.Assignments {
		if a != nil && a.Date == date {
			return a, nil
		}
	}
	return nil, fmt.Errorf("no planning for %s: %w", date, domain.ErrNotFound)
}

package tz

import (
	"fmt"
	"time"
)

// Default is the location used when none is configured (CET/CEST with automatic DST).
const Default = "Europe/Paris"

// Load returns the named location, falling back to Default when name is empty.
func Load(name string) (*time.Location, error) {
	if name == "" {
		name = Default
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("tz: load %s: %w", name, err)
	}
	return loc, nil
}

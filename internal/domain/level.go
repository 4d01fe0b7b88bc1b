// Package domain holds the small set of types shared across the resolution
// pipeline: government tiers and ZIP validation.
package domain

import (
	"regexp"

	dErrors "civiscope/pkg/domain-errors"
)

// Level identifies a government data tier, each served by an independent
// source adapter.
type Level string

const (
	LevelFederal Level = "federal"
	LevelState   Level = "state"
	LevelLocal   Level = "local"
)

// IsValid checks if the level is one of the supported tiers.
func (l Level) IsValid() bool {
	switch l {
	case LevelFederal, LevelState, LevelLocal:
		return true
	}
	return false
}

// String returns the string representation.
func (l Level) String() string {
	return string(l)
}

// Order defines the stable merge order: federal, then state, then local.
func (l Level) Order() int {
	switch l {
	case LevelFederal:
		return 0
	case LevelState:
		return 1
	case LevelLocal:
		return 2
	}
	return 3
}

// AllLevels lists the tiers in merge order.
func AllLevels() []Level {
	return []Level{LevelFederal, LevelState, LevelLocal}
}

// ContainsLevel reports whether levels includes l.
func ContainsLevel(levels []Level, l Level) bool {
	for _, v := range levels {
		if v == l {
			return true
		}
	}
	return false
}

var zipPattern = regexp.MustCompile(`^\d{5}$`)

// ValidateZip enforces the 5-digit ZIP contract at the engine boundary.
// Invalid input fails before any source is contacted.
func ValidateZip(zip string) error {
	if !zipPattern.MatchString(zip) {
		return dErrors.New(dErrors.CodeValidation, "zip must be exactly 5 digits")
	}
	return nil
}

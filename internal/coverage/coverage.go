// Package coverage decides which government tiers are safe to display for a
// classified jurisdiction. Coverage only ever narrows what the classifier
// allows: a low-confidence classification biases toward a stricter coverage
// level rather than guessing full coverage.
package coverage

import (
	"fmt"

	"civiscope/internal/domain"
	"civiscope/internal/jurisdiction"
)

// Type is the user-facing coverage decision.
type Type string

const (
	TypeFullCoverage Type = "full_coverage"
	TypeFederalOnly  Type = "federal_only"
	TypeNotSupported Type = "not_supported"
)

// Level describes which tiers to display and why.
type Level struct {
	Type        Type   `json:"type"`
	ShowFederal bool   `json:"show_federal"`
	ShowState   bool   `json:"show_state"`
	ShowLocal   bool   `json:"show_local"`
	Message     string `json:"message"`
}

// AllowedLevels lists the tiers this coverage permits, in merge order.
func (l Level) AllowedLevels() []domain.Level {
	var levels []domain.Level
	if l.ShowFederal {
		levels = append(levels, domain.LevelFederal)
	}
	if l.ShowState {
		levels = append(levels, domain.LevelState)
	}
	if l.ShowLocal {
		levels = append(levels, domain.LevelLocal)
	}
	return levels
}

// Resolver applies the coverage decision table. Pure; no side effects.
type Resolver struct {
	confidenceFloor float64
}

// NewResolver builds a resolver with the configured confidence floor, below
// which an unresolved classification is treated as unsupported.
func NewResolver(confidenceFloor float64) (*Resolver, error) {
	if confidenceFloor < 0 || confidenceFloor > 1 {
		return nil, fmt.Errorf("confidence floor must be within [0,1], got %f", confidenceFloor)
	}
	return &Resolver{confidenceFloor: confidenceFloor}, nil
}

// Resolve maps a jurisdiction classification to a coverage level.
func (r *Resolver) Resolve(det *jurisdiction.DetectionResult) Level {
	if det == nil {
		return notSupported("We couldn't resolve this location.")
	}

	hasFederal := domain.ContainsLevel(det.GovernmentLevels, domain.LevelFederal)
	hasState := domain.ContainsLevel(det.GovernmentLevels, domain.LevelState)
	hasLocal := domain.ContainsLevel(det.GovernmentLevels, domain.LevelLocal)

	// Below the floor with nothing resolved: unsupported, not an error.
	if det.Confidence < r.confidenceFloor && len(det.GovernmentLevels) == 0 {
		return notSupported("This area isn't supported yet. Try a nearby city's ZIP code.")
	}

	if det.HasLocalRepresentatives && hasState && hasLocal {
		return Level{
			Type:        TypeFullCoverage,
			ShowFederal: true,
			ShowState:   true,
			ShowLocal:   true,
			Message:     "Showing federal, state, and local representatives.",
		}
	}

	if hasFederal {
		msg := "Showing federal representatives for this area."
		if hasState {
			msg = "Showing federal and state representatives; this area has no local government of its own."
		}
		return Level{
			Type:        TypeFederalOnly,
			ShowFederal: true,
			ShowState:   hasState,
			ShowLocal:   false,
			Message:     msg,
		}
	}

	return notSupported("This area isn't supported yet. Try a nearby city's ZIP code.")
}

func notSupported(message string) Level {
	return Level{Type: TypeNotSupported, Message: message}
}

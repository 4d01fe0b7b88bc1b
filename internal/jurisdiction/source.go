package jurisdiction

import (
	"context"

	"civiscope/internal/location"
)

// Reliability ranks classification sources. Higher reliability sources are
// consulted first and are allowed higher confidence bands.
type Reliability int

const (
	// ReliabilityDefault: last-resort fallback, confidence below 0.5.
	ReliabilityDefault Reliability = iota
	// ReliabilityHeuristic: name/pattern inference, confidence 0.5-0.8.
	ReliabilityHeuristic
	// ReliabilityAuthoritative: curated boundary data, confidence 0.8 and up.
	ReliabilityAuthoritative
)

// Confidence band boundaries per reliability tier.
const (
	authoritativeFloor = 0.8
	heuristicFloor     = 0.5
)

// clampConfidence forces a source's confidence into the band its reliability
// tier permits, keeping confidence monotone in source reliability.
func clampConfidence(r Reliability, confidence float64) float64 {
	switch r {
	case ReliabilityAuthoritative:
		if confidence < authoritativeFloor {
			return authoritativeFloor
		}
		if confidence > 1 {
			return 1
		}
	case ReliabilityHeuristic:
		if confidence < heuristicFloor {
			return heuristicFloor
		}
		if confidence >= authoritativeFloor {
			return authoritativeFloor - 0.01
		}
	default:
		if confidence < 0 {
			return 0
		}
		if confidence >= heuristicFloor {
			return heuristicFloor - 0.01
		}
	}
	return confidence
}

// Source is a single classification strategy. Detect returns
// sentinel.ErrNotFound when the source has no answer for the location;
// any other error is treated as a source fault and the chain continues.
type Source interface {
	Name() string
	Reliability() Reliability
	Detect(ctx context.Context, loc *location.Data) (*DetectionResult, error)
}

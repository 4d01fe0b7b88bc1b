package jurisdiction

import (
	"context"
	"strings"

	"civiscope/internal/domain"
	"civiscope/internal/location"
	"civiscope/pkg/platform/sentinel"
)

// HeuristicSource infers jurisdiction type from place-name patterns when the
// boundary registry has no coverage. Its answers are capped to the heuristic
// confidence band.
type HeuristicSource struct{}

// NewHeuristicSource builds the pattern-matching classification source.
func NewHeuristicSource() *HeuristicSource {
	return &HeuristicSource{}
}

func (s *HeuristicSource) Name() string { return "name_heuristics" }

func (s *HeuristicSource) Reliability() Reliability { return ReliabilityHeuristic }

// cdpNameMarkers are tokens common in census-designated place names. CDPs are
// named settlements without their own municipal government.
var cdpNameMarkers = []string{
	"ranch", "springs", "acres", "estates", "crossing", "junction", "station",
}

// Detect infers a classification from the location record. Returns
// sentinel.ErrNotFound when the record is too sparse to infer anything.
func (s *HeuristicSource) Detect(_ context.Context, loc *location.Data) (*DetectionResult, error) {
	switch {
	case loc.City == "" && loc.County != "":
		// County-only address: unincorporated county territory.
		return NewDetectionResult(
			TypeUnincorporatedArea,
			[]domain.Level{domain.LevelFederal, domain.LevelState},
			false,
			clampConfidence(s.Reliability(), 0.6),
			s.Name(),
			loc.County,
			"Unincorporated "+loc.County+" County",
		), nil

	case matchesCDPName(loc.City):
		return NewDetectionResult(
			TypeCensusDesignatedPlace,
			[]domain.Level{domain.LevelFederal, domain.LevelState},
			false,
			clampConfidence(s.Reliability(), 0.55),
			s.Name(),
			loc.County,
			loc.City,
		), nil

	case loc.City != "" && loc.State != "":
		// A named place with state data and no contrary signal is most
		// likely an incorporated municipality.
		return NewDetectionResult(
			TypeIncorporatedCity,
			[]domain.Level{domain.LevelFederal, domain.LevelState, domain.LevelLocal},
			true,
			clampConfidence(s.Reliability(), 0.7),
			s.Name(),
			loc.County,
			"City of "+loc.City,
		), nil
	}

	return nil, sentinel.ErrNotFound
}

func matchesCDPName(city string) bool {
	lower := strings.ToLower(city)
	if !strings.Contains(lower, " ") {
		return false
	}
	for _, marker := range cdpNameMarkers {
		if strings.HasSuffix(lower, marker) {
			return true
		}
	}
	return false
}

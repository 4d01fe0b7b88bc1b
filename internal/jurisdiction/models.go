// Package jurisdiction classifies locations into governmental jurisdiction
// types. Classification sources are consulted in descending reliability
// order; the first non-empty answer wins and its reliability tier bounds the
// confidence score.
package jurisdiction

import (
	"civiscope/internal/domain"
)

// Type is the closed set of jurisdiction variants.
type Type string

const (
	TypeIncorporatedCity      Type = "incorporated_city"
	TypeUnincorporatedArea    Type = "unincorporated_area"
	TypeCensusDesignatedPlace Type = "census_designated_place"
	TypeSpecialDistrict       Type = "special_district"
	TypeUnknown               Type = "unknown"
)

// IsValid checks if the jurisdiction type is one of the supported variants.
func (t Type) IsValid() bool {
	switch t {
	case TypeIncorporatedCity, TypeUnincorporatedArea, TypeCensusDesignatedPlace,
		TypeSpecialDistrict, TypeUnknown:
		return true
	}
	return false
}

// SupportsLocalRepresentation reports whether this jurisdiction variant can
// have its own local representatives. Unincorporated areas and
// census-designated places have no municipal government of their own.
func (t Type) SupportsLocalRepresentation() bool {
	switch t {
	case TypeUnincorporatedArea, TypeCensusDesignatedPlace, TypeUnknown:
		return false
	}
	return true
}

// DetectionResult is the classifier's answer for a location.
type DetectionResult struct {
	JurisdictionType        Type           `json:"jurisdiction_type"`
	GovernmentLevels        []domain.Level `json:"government_levels"`
	HasLocalRepresentatives bool           `json:"has_local_representatives"`
	Confidence              float64        `json:"confidence"`
	Source                  string         `json:"source"`
	County                  string         `json:"county"`
	Name                    string         `json:"name"`
}

// NewDetectionResult builds a result enforcing the local-representation
// invariant: jurisdiction variants without their own government never report
// local representatives, regardless of what a source claimed.
func NewDetectionResult(t Type, levels []domain.Level, hasLocal bool, confidence float64, source, county, name string) *DetectionResult {
	hasLocal = hasLocal && t.SupportsLocalRepresentation()

	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return &DetectionResult{
		JurisdictionType:        t,
		GovernmentLevels:        levels,
		HasLocalRepresentatives: hasLocal,
		Confidence:              confidence,
		Source:                  source,
		County:                  county,
		Name:                    name,
	}
}

// Unknown is the best-effort zero answer used when no source responds.
// Callers must treat it as "unsupported", never as an error.
func Unknown(county string) *DetectionResult {
	return &DetectionResult{
		JurisdictionType: TypeUnknown,
		Confidence:       0,
		Source:           "none",
		County:           county,
	}
}

package jurisdiction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"civiscope/internal/domain"
	"civiscope/internal/location"
	dErrors "civiscope/pkg/domain-errors"
	"civiscope/pkg/platform/sentinel"
)

// stubSource is a hand-rolled classification source for driving the chain.
type stubSource struct {
	name        string
	reliability Reliability
	result      *DetectionResult
	err         error
	calls       int
}

func (s *stubSource) Name() string             { return s.name }
func (s *stubSource) Reliability() Reliability { return s.reliability }

func (s *stubSource) Detect(context.Context, *location.Data) (*DetectionResult, error) {
	s.calls++
	return s.result, s.err
}

type ClassifierSuite struct {
	suite.Suite
	loc *location.Data
}

func TestClassifierSuite(t *testing.T) {
	suite.Run(t, new(ClassifierSuite))
}

func (s *ClassifierSuite) SetupTest() {
	s.loc = &location.Data{
		ZipCode: "90210",
		City:    "Beverly Hills",
		State:   "CA",
		County:  "Los Angeles",
	}
}

func (s *ClassifierSuite) TestNew() {
	s.Run("no sources returns error", func() {
		_, err := New(nil)
		s.Error(err)
		s.Contains(err.Error(), "at least one classification source is required")
	})

	s.Run("sources reordered by descending reliability", func() {
		fallback := &stubSource{name: "fallback", reliability: ReliabilityDefault,
			result: Unknown("")}
		authoritative := &stubSource{name: "authoritative", reliability: ReliabilityAuthoritative,
			result: NewDetectionResult(TypeIncorporatedCity, nil, true, 0.9, "authoritative", "", "")}

		c, err := New([]Source{fallback, authoritative})
		s.Require().NoError(err)

		result, err := c.Classify(context.Background(), s.loc)
		s.Require().NoError(err)
		s.Equal("authoritative", result.Source)
	})
}

func (s *ClassifierSuite) TestClassify() {
	s.Run("invalid zip fails before any source is contacted", func() {
		src := &stubSource{name: "spy", reliability: ReliabilityAuthoritative,
			err: sentinel.ErrNotFound}
		c, err := New([]Source{src})
		s.Require().NoError(err)

		_, err = c.Classify(context.Background(), &location.Data{ZipCode: "bad"})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Zero(src.calls)
	})

	s.Run("first answering source wins", func() {
		boundary := &stubSource{name: "boundary", reliability: ReliabilityAuthoritative,
			err: sentinel.ErrNotFound}
		heuristic := &stubSource{name: "heuristic", reliability: ReliabilityHeuristic,
			result: NewDetectionResult(TypeIncorporatedCity, []domain.Level{domain.LevelFederal}, true, 0.7, "heuristic", "", "")}

		c, err := New([]Source{boundary, heuristic})
		s.Require().NoError(err)

		result, err := c.Classify(context.Background(), s.loc)
		s.Require().NoError(err)
		s.Equal("heuristic", result.Source)
		s.Equal(TypeIncorporatedCity, result.JurisdictionType)
	})

	s.Run("faulty source is skipped not fatal", func() {
		broken := &stubSource{name: "broken", reliability: ReliabilityAuthoritative,
			err: errors.New("registry connection refused")}
		heuristic := &stubSource{name: "heuristic", reliability: ReliabilityHeuristic,
			result: NewDetectionResult(TypeIncorporatedCity, nil, true, 0.65, "heuristic", "", "")}

		c, err := New([]Source{broken, heuristic})
		s.Require().NoError(err)

		result, err := c.Classify(context.Background(), s.loc)
		s.Require().NoError(err)
		s.Equal("heuristic", result.Source)
	})

	s.Run("no source answering yields unknown with zero confidence", func() {
		silent := &stubSource{name: "silent", reliability: ReliabilityAuthoritative,
			err: sentinel.ErrNotFound}

		c, err := New([]Source{silent})
		s.Require().NoError(err)

		result, err := c.Classify(context.Background(), s.loc)
		s.Require().NoError(err)
		s.Equal(TypeUnknown, result.JurisdictionType)
		s.Zero(result.Confidence)
		s.False(result.HasLocalRepresentatives)
	})

	s.Run("nil location yields unknown", func() {
		c, err := New([]Source{&stubSource{name: "any", reliability: ReliabilityDefault, err: sentinel.ErrNotFound}})
		s.Require().NoError(err)

		result, err := c.Classify(context.Background(), nil)
		s.Require().NoError(err)
		s.Equal(TypeUnknown, result.JurisdictionType)
	})
}

func (s *ClassifierSuite) TestConfidenceMonotonicity() {
	// The same zip answered by an authoritative source must strictly
	// outscore a heuristic answer.
	authoritative := NewDetectionResult(TypeIncorporatedCity, nil, true,
		clampConfidence(ReliabilityAuthoritative, 0.5), "boundary", "", "")
	heuristic := NewDetectionResult(TypeIncorporatedCity, nil, true,
		clampConfidence(ReliabilityHeuristic, 0.95), "heuristic", "", "")

	s.Greater(authoritative.Confidence, heuristic.Confidence)
}

func (s *ClassifierSuite) TestLocalRepresentationInvariant() {
	for _, jt := range []Type{TypeUnincorporatedArea, TypeCensusDesignatedPlace} {
		result := NewDetectionResult(jt, nil, true, 0.9, "test", "", "")
		s.False(result.HasLocalRepresentatives, "jurisdiction type %s must never report local representatives", jt)
	}
}

func TestBoundarySource(t *testing.T) {
	t.Run("nil store returns error", func(t *testing.T) {
		_, err := NewBoundarySource(nil)
		if err == nil {
			t.Fatal("expected error for nil store")
		}
	})
}

func TestHeuristicSource(t *testing.T) {
	src := NewHeuristicSource()
	ctx := context.Background()

	tests := []struct {
		name     string
		loc      *location.Data
		wantType Type
		wantErr  bool
	}{
		{
			name:     "named city with state",
			loc:      &location.Data{ZipCode: "80202", City: "Denver", State: "CO", County: "Denver"},
			wantType: TypeIncorporatedCity,
		},
		{
			name:     "county only is unincorporated",
			loc:      &location.Data{ZipCode: "89049", State: "NV", County: "Nye"},
			wantType: TypeUnincorporatedArea,
		},
		{
			name:     "cdp name marker",
			loc:      &location.Data{ZipCode: "95497", City: "The Sea Ranch", State: "CA", County: "Sonoma"},
			wantType: TypeCensusDesignatedPlace,
		},
		{
			name:    "empty record has no answer",
			loc:     &location.Data{ZipCode: "00000"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := src.Detect(ctx, tt.loc)
			if tt.wantErr {
				if !errors.Is(err, sentinel.ErrNotFound) {
					t.Fatalf("expected ErrNotFound, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.JurisdictionType != tt.wantType {
				t.Fatalf("expected %s, got %s", tt.wantType, result.JurisdictionType)
			}
			if result.Confidence < heuristicFloor || result.Confidence >= authoritativeFloor {
				t.Fatalf("heuristic confidence %f outside band", result.Confidence)
			}
		})
	}
}

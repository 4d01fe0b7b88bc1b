package location

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civiscope/pkg/platform/sentinel"
)

func TestStaticGeocoder_KnownZip(t *testing.T) {
	g := NewStaticGeocoder()

	data, err := g.Geocode(context.Background(), "90210")
	require.NoError(t, err)
	assert.Equal(t, "Beverly Hills", data.City)
	assert.Equal(t, "CA", data.State)
	assert.Equal(t, "Los Angeles", data.County)
	assert.Equal(t, "CA-30", data.CongressionalDistrict)
}

func TestStaticGeocoder_UnassignedZip(t *testing.T) {
	g := NewStaticGeocoder()

	_, err := g.Geocode(context.Background(), "99999")
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))
}

func TestStaticGeocoder_ExtraRecordsOverride(t *testing.T) {
	g := NewStaticGeocoder(Data{ZipCode: "90210", City: "Override City", State: "CA"})

	data, err := g.Geocode(context.Background(), "90210")
	require.NoError(t, err)
	assert.Equal(t, "Override City", data.City)
}

func TestStaticGeocoder_ContextCancellation(t *testing.T) {
	g := NewStaticGeocoder()
	g.Latency = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Geocode(ctx, "90210")
	assert.ErrorIs(t, err, context.Canceled)
}

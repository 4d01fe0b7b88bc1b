package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civiscope/internal/domain"
	"civiscope/internal/representatives/models"
	"civiscope/pkg/platform/sentinel"
)

func resolution(zip string, tiers ...domain.Level) *models.Resolution {
	res := &models.Resolution{ZipCode: zip, ComputedAt: time.Now()}
	for i, tier := range tiers {
		res.Aggregation.Representatives = append(res.Aggregation.Representatives, models.Representative{
			ID:         zip + "-" + string(rune('a'+i)),
			SourceTier: tier,
			Contact:    models.ContactInfo{Phone: "555-0100"},
		})
	}
	res.Aggregation.Total = len(res.Aggregation.Representatives)
	return res
}

func TestKey_VariesByOptions(t *testing.T) {
	plain := Key("90210", models.Options{})
	enriched := Key("90210", models.Options{IncludeVotingRecords: true})

	assert.NotEqual(t, plain, enriched)
	assert.Equal(t, plain, Key("90210", models.Options{}))
}

func TestMemoryStore_SetGet(t *testing.T) {
	store := NewMemoryStore(0)
	defer store.Close()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	want := resolution("90210", domain.LevelFederal)
	require.NoError(t, store.Set(ctx, "k1", want, time.Minute))

	got, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, want.ZipCode, got.ZipCode)
	assert.Equal(t, 1, got.Aggregation.Total)
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	store := NewMemoryStore(0)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k1", resolution("90210"), 10*time.Millisecond))
	time.Sleep(25 * time.Millisecond)

	_, err := store.Get(ctx, "k1")
	require.ErrorIs(t, err, sentinel.ErrExpired)

	// The lazy eviction removed the entry, so a second read is a plain miss.
	_, err = store.Get(ctx, "k1")
	require.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestMemoryStore_SweeperEvicts(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "short", resolution("10001"), 5*time.Millisecond))
	require.NoError(t, store.Set(ctx, "long", resolution("60601"), time.Minute))

	assert.Eventually(t, func() bool {
		return store.Len() == 1
	}, time.Second, 5*time.Millisecond)

	_, err := store.Get(ctx, "long")
	assert.NoError(t, err)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore(0)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k1", resolution("90210"), time.Minute))
	require.NoError(t, store.Delete(ctx, "k1"))

	_, err := store.Get(ctx, "k1")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestMemoryStore_InvalidateTier(t *testing.T) {
	store := NewMemoryStore(0)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "with-local", resolution("90210", domain.LevelFederal, domain.LevelLocal), time.Minute))
	require.NoError(t, store.Set(ctx, "fed-only", resolution("89049", domain.LevelFederal), time.Minute))

	dropped, err := store.InvalidateTier(ctx, domain.LevelLocal)
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)

	_, err = store.Get(ctx, "with-local")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	_, err = store.Get(ctx, "fed-only")
	assert.NoError(t, err)
}

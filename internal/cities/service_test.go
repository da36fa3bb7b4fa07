package cities

import (
	"context"
	"testing"
	"time"

	"colabatr_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, client *redis.Client) *Service {
	t.Helper()
	dataset := NewDataset(testEntries())
	return NewService(dataset, NewCache(client, time.Minute), logger.New("development"))
}

func TestServiceSearchWithoutCache(t *testing.T) {
	svc := newTestService(t, nil)

	got := svc.Search(context.Background(), "mah")
	require.Len(t, got, 2)
	assert.Equal(t, "Mumbai", got[0].City)
	assert.Equal(t, "Pune", got[1].City)
}

func TestServiceSearchCachesResults(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := newTestService(t, client)

	first := svc.Search(context.Background(), "Pune")
	require.Len(t, first, 1)

	// The normalized query must now be cached.
	require.True(t, mr.Exists("cities:q:pune"))

	second := svc.Search(context.Background(), "  PUNE ")
	assert.Equal(t, first, second)
}

func TestServiceSearchSurvivesRedisOutage(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := newTestService(t, client)

	mr.Close()

	// Cache failures degrade to a direct dataset scan.
	got := svc.Search(context.Background(), "delhi")
	require.Len(t, got, 1)
	assert.Equal(t, "Delhi", got[0].City)
}

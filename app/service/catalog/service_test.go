package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"ariatravel/app/config"
	"ariatravel/app/model"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	calls        atomic.Int32
	destinations []model.Destination
	err          error
	delay        time.Duration
}

func (f *fakeSource) Destinations(_ context.Context, _ model.DestinationQuery) ([]model.Destination, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.destinations, f.err
}

func TestSampleFallback(t *testing.T) {
	svc := NewWithSources(nil)

	destinations := svc.Destinations(context.Background(), model.DestinationQuery{})
	require.Len(t, destinations, 6)
	assert.Equal(t, "Taj Mahal", destinations[0].Name)
}

func TestSampleFilters(t *testing.T) {
	featured := true

	destinations := Sample(model.DestinationQuery{Featured: &featured})
	assert.Len(t, destinations, 4)
	for _, d := range destinations {
		assert.True(t, d.Featured)
	}

	destinations = Sample(model.DestinationQuery{Category: "historical"})
	require.Len(t, destinations, 2)
	assert.Equal(t, "Rajasthan Palaces", destinations[1].Name)

	destinations = Sample(model.DestinationQuery{Limit: 2})
	assert.Len(t, destinations, 2)
}

func TestSampleIsNotShared(t *testing.T) {
	destinations := Sample(model.DestinationQuery{})
	destinations[0].Name = "changed"

	assert.Equal(t, "Taj Mahal", Sample(model.DestinationQuery{})[0].Name)
}

func TestSourceOrder(t *testing.T) {
	failing := &fakeSource{err: errors.New("connection refused")}
	empty := &fakeSource{}
	working := &fakeSource{destinations: []model.Destination{{ID: 42, Name: "Hampi Ruins"}}}

	svc := NewWithSources(nil,
		NamedSource{Name: "backend", Source: failing},
		NamedSource{Name: "empty", Source: empty},
		NamedSource{Name: "supabase", Source: working},
	)

	assert.Equal(t, []string{"backend", "empty", "supabase"}, svc.SourceNames())

	destinations := svc.Destinations(context.Background(), model.DestinationQuery{})
	require.Len(t, destinations, 1)
	assert.Equal(t, "Hampi Ruins", destinations[0].Name)
	assert.EqualValues(t, 1, failing.calls.Load())
	assert.EqualValues(t, 1, empty.calls.Load())
}

func TestAllSourcesFail(t *testing.T) {
	svc := NewWithSources(nil,
		NamedSource{Name: "backend", Source: &fakeSource{err: errors.New("timeout")}},
	)

	destinations := svc.Destinations(context.Background(), model.DestinationQuery{Limit: 3})
	assert.Len(t, destinations, 3)
}

func TestConcurrentFetchIsShared(t *testing.T) {
	src := &fakeSource{
		destinations: []model.Destination{{ID: 1, Name: "Taj Mahal"}},
		delay:        100 * time.Millisecond,
	}
	svc := NewWithSources(nil, NamedSource{Name: "backend", Source: src})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, svc.Destinations(context.Background(), model.DestinationQuery{}), 1)
		}()
	}
	wg.Wait()

	assert.Less(t, src.calls.Load(), int32(8))
}

func TestUnreachableCacheFallsThrough(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	cache := NewCacheWithClient(client, time.Minute)
	t.Cleanup(func() { _ = cache.Close() })

	src := &fakeSource{destinations: []model.Destination{{ID: 7, Name: "Ladakh Valley"}}}
	svc := NewWithSources(cache, NamedSource{Name: "backend", Source: src})

	destinations := svc.Destinations(context.Background(), model.DestinationQuery{})
	require.Len(t, destinations, 1)
	assert.Equal(t, "Ladakh Valley", destinations[0].Name)
}

func TestNewCacheDisabled(t *testing.T) {
	cache, err := NewCache(config.Redis{})
	require.NoError(t, err)
	assert.Nil(t, cache)

	_, err = NewCache(config.Redis{URL: "not a url"})
	require.Error(t, err)
}

func TestQueryKey(t *testing.T) {
	featured := false

	assert.Equal(t, "limit=20:featured=any:category=", queryKey(model.DestinationQuery{Limit: 20}))
	assert.Equal(t, "limit=5:featured=false:category=beach",
		queryKey(model.DestinationQuery{Limit: 5, Featured: &featured, Category: "Beach"}))
}

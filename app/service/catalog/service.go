package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"ariatravel/app/client/fastapi"
	"ariatravel/app/client/supabase"
	"ariatravel/app/config"
	"ariatravel/app/model"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
	"github.com/samber/oops"
	"golang.org/x/sync/singleflight"
)

// DefaultLimit matches the page size the assistant asks content stores for.
const DefaultLimit = 20

var _ do.Shutdownable = (*Service)(nil)

type Source interface {
	Destinations(ctx context.Context, query model.DestinationQuery) ([]model.Destination, error)
}

type NamedSource struct {
	Name string
	Source
}

// Service reads destinations from the configured content stores in order and
// degrades to the built-in sample dataset, so callers never see an empty
// catalog.
type Service struct {
	sources []NamedSource
	cache   *Cache
	group   singleflight.Group
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	var sources []NamedSource

	if backend := do.MustInvoke[*fastapi.Client](di); backend.Enabled() {
		sources = append(sources, NamedSource{Name: "backend", Source: backend})
	}
	if store := do.MustInvoke[*supabase.Client](di); store.Enabled() {
		sources = append(sources, NamedSource{Name: "supabase", Source: store})
	}

	cache, err := NewCache(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog cache: %w", err)
	}

	return NewWithSources(cache, sources...), nil
}

// NewWithSources builds a service over explicit sources. cache may be nil.
func NewWithSources(cache *Cache, sources ...NamedSource) *Service {
	return &Service{
		sources: sources,
		cache:   cache,
	}
}

// SourceNames lists the configured content stores in lookup order.
func (s *Service) SourceNames() []string {
	return pie.Map(s.sources, func(src NamedSource) string {
		return src.Name
	})
}

func (s *Service) Destinations(ctx context.Context, query model.DestinationQuery) []model.Destination {
	if query.Limit <= 0 {
		query.Limit = DefaultLimit
	}

	key := queryKey(query)

	// concurrent sessions asking for the same page share one fetch
	result, _, _ := s.group.Do(key, func() (any, error) {
		return s.load(context.WithoutCancel(ctx), key, query), nil
	})

	destinations := result.([]model.Destination)

	return append([]model.Destination(nil), destinations...)
}

func (s *Service) load(ctx context.Context, key string, query model.DestinationQuery) []model.Destination {
	if s.cache != nil {
		if destinations, ok := s.cache.Get(ctx, key); ok {
			return destinations
		}
	}

	for _, src := range s.sources {
		destinations, err := s.fetch(ctx, src, query)
		if err != nil {
			slog.Warn("Content store unavailable",
				"source", src.Name,
				"error", err,
			)
			continue
		}

		slog.Debug("Loaded destinations",
			"source", src.Name,
			"count", len(destinations),
		)

		if s.cache != nil {
			s.cache.Set(ctx, key, destinations)
		}

		return destinations
	}

	slog.Debug("Using sample destinations")

	return Sample(query)
}

func (s *Service) fetch(ctx context.Context, src NamedSource, query model.DestinationQuery) ([]model.Destination, error) {
	destinations, err := src.Destinations(ctx, query)
	if err != nil {
		return nil, oops.
			With("source", src.Name).
			Wrapf(err, "failed to fetch destinations")
	}

	if len(destinations) == 0 {
		return nil, oops.
			With("source", src.Name).
			Errorf("no destinations returned")
	}

	return destinations, nil
}

func (s *Service) Shutdown() error {
	if s.cache == nil {
		return nil
	}

	return s.cache.Close()
}

func applyQuery(destinations []model.Destination, query model.DestinationQuery) []model.Destination {
	result := pie.Filter(destinations, func(d model.Destination) bool {
		if query.Featured != nil && d.Featured != *query.Featured {
			return false
		}
		if query.Category != "" && !strings.EqualFold(d.Category, query.Category) {
			return false
		}
		return true
	})

	if query.Limit > 0 {
		result = pie.Top(result, query.Limit)
	}

	return append([]model.Destination(nil), result...)
}

func queryKey(query model.DestinationQuery) string {
	featured := "any"
	if query.Featured != nil {
		featured = fmt.Sprint(*query.Featured)
	}

	return fmt.Sprintf("limit=%d:featured=%s:category=%s", query.Limit, featured, strings.ToLower(query.Category))
}

// CacheStatus reports whether the redis snapshot cache is configured and
// reachable.
func (s *Service) CacheStatus(ctx context.Context) (bool, error) {
	if s.cache == nil {
		return false, nil
	}

	return true, s.cache.Ping(ctx)
}

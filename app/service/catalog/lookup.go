package catalog

import (
	"context"
	"strings"

	"ariatravel/app/model"

	"github.com/elliotchance/pie/v2"
)

// lookupLimit bounds the page that single-item and text lookups scan.
const lookupLimit = 100

func (s *Service) Find(ctx context.Context, id int) (model.Destination, bool) {
	destinations := s.Destinations(ctx, model.DestinationQuery{Limit: lookupLimit})

	i := pie.FindFirstUsing(destinations, func(d model.Destination) bool {
		return d.ID == id
	})
	if i < 0 {
		return model.Destination{}, false
	}

	return destinations[i], true
}

// Search matches text case-insensitively against name, location and description.
func (s *Service) Search(ctx context.Context, text string, limit int) []model.Destination {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return nil
	}

	matches := pie.Filter(s.Destinations(ctx, model.DestinationQuery{Limit: lookupLimit}), func(d model.Destination) bool {
		return strings.Contains(strings.ToLower(d.Name), needle) ||
			strings.Contains(strings.ToLower(d.Location), needle) ||
			strings.Contains(strings.ToLower(d.Description), needle)
	})

	if limit > 0 {
		matches = pie.Top(matches, limit)
	}

	return matches
}

func (s *Service) Categories(ctx context.Context) []string {
	destinations := s.Destinations(ctx, model.DestinationQuery{Limit: lookupLimit})

	categories := pie.Filter(pie.Map(destinations, func(d model.Destination) string {
		return d.Category
	}), func(category string) bool {
		return category != ""
	})

	return pie.Sort(pie.Unique(categories))
}

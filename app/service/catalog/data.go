package catalog

import "ariatravel/app/model"

const sampleCreatedAt = "2024-01-01T00:00:00Z"

// sampleDestinations is served when no content store answers.
var sampleDestinations = []model.Destination{
	{
		ID:          1,
		Name:        "Taj Mahal",
		Description: "One of the Seven Wonders of the World, this ivory-white marble mausoleum is a symbol of eternal love.",
		Location:    "Agra",
		State:       "Uttar Pradesh",
		ImageURL:    "/placeholder.svg?height=400&width=600",
		PriceFrom:   5000,
		Rating:      4.8,
		Category:    "Historical",
		Featured:    true,
		CreatedAt:   sampleCreatedAt,
	},
	{
		ID:          2,
		Name:        "Kerala Backwaters",
		Description: "Experience the serene beauty of Kerala's backwaters with traditional houseboat stays.",
		Location:    "Alleppey",
		State:       "Kerala",
		ImageURL:    "/placeholder.svg?height=400&width=600",
		PriceFrom:   8000,
		Rating:      4.7,
		Category:    "Nature",
		Featured:    true,
		CreatedAt:   sampleCreatedAt,
	},
	{
		ID:          3,
		Name:        "Golden Temple",
		Description: "The holiest Gurdwara of Sikhism, known for its stunning golden architecture.",
		Location:    "Amritsar",
		State:       "Punjab",
		ImageURL:    "/placeholder.svg?height=400&width=600",
		PriceFrom:   3000,
		Rating:      4.9,
		Category:    "Religious",
		Featured:    false,
		CreatedAt:   sampleCreatedAt,
	},
	{
		ID:          4,
		Name:        "Goa Beaches",
		Description: "Pristine beaches, vibrant nightlife, and Portuguese colonial architecture.",
		Location:    "Panaji",
		State:       "Goa",
		ImageURL:    "/placeholder.svg?height=400&width=600",
		PriceFrom:   6000,
		Rating:      4.6,
		Category:    "Beach",
		Featured:    true,
		CreatedAt:   sampleCreatedAt,
	},
	{
		ID:          5,
		Name:        "Rajasthan Palaces",
		Description: "Explore the royal heritage with magnificent palaces and forts.",
		Location:    "Jaipur",
		State:       "Rajasthan",
		ImageURL:    "/placeholder.svg?height=400&width=600",
		PriceFrom:   7000,
		Rating:      4.5,
		Category:    "Historical",
		Featured:    false,
		CreatedAt:   sampleCreatedAt,
	},
	{
		ID:          6,
		Name:        "Himalayan Trek",
		Description: "Adventure through the majestic Himalayas with breathtaking mountain views.",
		Location:    "Manali",
		State:       "Himachal Pradesh",
		ImageURL:    "/placeholder.svg?height=400&width=600",
		PriceFrom:   12000,
		Rating:      4.8,
		Category:    "Adventure",
		Featured:    true,
		CreatedAt:   sampleCreatedAt,
	},
}

// Sample returns the built-in dataset filtered by query.
func Sample(query model.DestinationQuery) []model.Destination {
	return applyQuery(sampleDestinations, query)
}

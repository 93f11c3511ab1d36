package model

type Destination struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	State       string  `json:"state"`
	ImageURL    string  `json:"image_url,omitempty"`
	PriceFrom   int     `json:"price_from"`
	Rating      float64 `json:"rating"`
	Category    string  `json:"category"`
	Featured    bool    `json:"featured"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

type DestinationQuery struct {
	Limit    int
	Featured *bool
	Category string
}

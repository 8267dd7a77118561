package transport

import (
	"time"

	"homely_backend/internal/listings/domain"
)

// Search

type SearchRequest struct {
	PriceMin *float64 `form:"priceMin" validate:"omitempty,min=0"`
	PriceMax *float64 `form:"priceMax" validate:"omitempty,min=0"`
	Bedrooms int      `form:"bedrooms" validate:"omitempty,min=0,max=50"`
	Type     string   `form:"type" validate:"omitempty,oneof=All Buy Rent all buy rent"`
	Parser   string   `form:"parser" validate:"omitempty,oneof=legacy decimal"`
}

type ListingResponse struct {
	domain.Listing
	// PriceValue is the magnitude the filters compared against.
	PriceValue float64 `json:"priceValue"`
}

type ListingListResponse struct {
	Items []ListingResponse `json:"items"`
	Total int               `json:"total"`
}

// Map

type MarkerResponse struct {
	ID       int                    `json:"id"`
	Title    string                 `json:"title"`
	Price    string                 `json:"price"`
	Type     domain.TransactionKind `json:"type"`
	Featured bool                   `json:"isFeatured"`
	Top      float64                `json:"top"`
	Left     float64                `json:"left"`
	Geohash  string                 `json:"geohash"`
}

type MapResponse struct {
	Bounds  domain.Bounds    `json:"bounds"`
	Markers []MarkerResponse `json:"markers"`
}

type PopupResponse struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Location string  `json:"location"`
	Price    string  `json:"price"`
	ImageURL string  `json:"imageUrl"`
	Top      float64 `json:"top"`
	Left     float64 `json:"left"`
}

// Sharing

type ShareResponse struct {
	URL      string `json:"url"`
	Text     string `json:"text"`
	Twitter  string `json:"twitter"`
	Facebook string `json:"facebook"`
}

// Images

type PresignImageRequest struct {
	FileName    string `json:"fileName" validate:"required,min=1,max=255"`
	ContentType string `json:"contentType" validate:"required,max=100"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,min=1"`
}

type PresignImageResponse struct {
	UploadURL string    `json:"uploadUrl"`
	FileKey   string    `json:"fileKey"`
	PublicURL string    `json:"publicUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Package domain holds the listing catalog model and the pure functions
// that filter, order, price and place listings on the map.
package domain

import (
	"fmt"
	"strings"
)

// TransactionKind is the offer type of a listing.
type TransactionKind string

const (
	ForSale TransactionKind = "For Sale"
	ForRent TransactionKind = "For Rent"
)

// Valid reports whether k is one of the two known kinds.
func (k TransactionKind) Valid() bool {
	return k == ForSale || k == ForRent
}

// ConstructionStatus is the build state shown on listing cards.
type ConstructionStatus string

const (
	StatusReadyToMove       ConstructionStatus = "Ready to move"
	StatusUnderConstruction ConstructionStatus = "Under Construction"
)

// Position is a WGS84 coordinate in decimal degrees.
type Position struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Agent is the listing contact shown on cards.
type Agent struct {
	Name      string `json:"name" yaml:"name"`
	AvatarURL string `json:"avatarUrl" yaml:"avatarUrl"`
}

// Listing is one catalog entry. Price is the display string; its numeric
// magnitude is derived on demand by ExtractPriceLakhs.
type Listing struct {
	ID                int                `json:"id" yaml:"id"`
	Title             string             `json:"title" yaml:"title"`
	Kind              TransactionKind    `json:"type" yaml:"type"`
	Price             string             `json:"price" yaml:"price"`
	Location          string             `json:"location" yaml:"location"`
	Beds              int                `json:"beds" yaml:"beds"`
	Baths             int                `json:"baths" yaml:"baths"`
	Sqft              int                `json:"sqft" yaml:"sqft"`
	Featured          *bool              `json:"isFeatured,omitempty" yaml:"isFeatured,omitempty"`
	Position          Position           `json:"coordinates" yaml:"coordinates"`
	Status            ConstructionStatus `json:"status" yaml:"status"`
	Verified          bool               `json:"isVerified" yaml:"isVerified"`
	Agent             Agent              `json:"agent" yaml:"agent"`
	ImageURLs         []string           `json:"imageUrls" yaml:"imageUrls"`
	Amenities         []string           `json:"amenities" yaml:"amenities"`
	Description       string             `json:"description" yaml:"description"`
	ReraApproved      *bool              `json:"isReraApproved,omitempty" yaml:"isReraApproved,omitempty"`
	LoanAvailability  *string            `json:"loanAvailability,omitempty" yaml:"loanAvailability,omitempty"`
	AuthorityVerified *bool              `json:"isAuthorityVerified,omitempty" yaml:"isAuthorityVerified,omitempty"`
}

// IsFeatured treats an absent flag as false.
func (l Listing) IsFeatured() bool {
	return l.Featured != nil && *l.Featured
}

// PrimaryImage returns the first image URL or "".
func (l Listing) PrimaryImage() string {
	if len(l.ImageURLs) == 0 {
		return ""
	}
	return l.ImageURLs[0]
}

// TransactionFilter is the Buy/Rent tab selection. The zero value is All.
type TransactionFilter int

const (
	TransactionAll TransactionFilter = iota
	TransactionBuy
	TransactionRent
)

func (f TransactionFilter) String() string {
	switch f {
	case TransactionBuy:
		return "Buy"
	case TransactionRent:
		return "Rent"
	default:
		return "All"
	}
}

// ParseTransactionFilter accepts All, Buy or Rent in any case. Empty means All.
func ParseTransactionFilter(raw string) (TransactionFilter, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all":
		return TransactionAll, nil
	case "buy":
		return TransactionBuy, nil
	case "rent":
		return TransactionRent, nil
	default:
		return TransactionAll, fmt.Errorf("unknown transaction filter %q", raw)
	}
}

// Matches reports whether a listing of kind k passes the filter.
func (f TransactionFilter) Matches(k TransactionKind) bool {
	switch f {
	case TransactionBuy:
		return k == ForSale
	case TransactionRent:
		return k == ForRent
	default:
		return true
	}
}

// FilterCriteria narrows the catalog. Nil bounds and zero MinBedrooms are unconstrained.
type FilterCriteria struct {
	PriceMin    *float64
	PriceMax    *float64
	MinBedrooms int
	Transaction TransactionFilter
	PriceParser PriceParserMode
}

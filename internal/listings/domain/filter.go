package domain

import "slices"

// FilterAndSort returns the listings that satisfy every criterion, with
// featured listings first. Relative order is otherwise preserved. The
// input slice is never modified and the result is never nil.
func FilterAndSort(listings []Listing, criteria FilterCriteria) []Listing {
	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if criteria.Matches(l) {
			out = append(out, l)
		}
	}

	slices.SortStableFunc(out, func(a, b Listing) int {
		switch {
		case a.IsFeatured() == b.IsFeatured():
			return 0
		case a.IsFeatured():
			return -1
		default:
			return 1
		}
	})
	return out
}

// Matches applies the price, bedroom and transaction predicates.
func (c FilterCriteria) Matches(l Listing) bool {
	price := ExtractPrice(l.Price, c.PriceParser)
	if c.PriceMin != nil && price < *c.PriceMin {
		return false
	}
	if c.PriceMax != nil && price > *c.PriceMax {
		return false
	}
	if c.MinBedrooms != 0 && l.Beds < c.MinBedrooms {
		return false
	}
	return c.Transaction.Matches(l.Kind)
}

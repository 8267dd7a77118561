package domain

import (
	"reflect"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func testCatalog() []Listing {
	return []Listing{
		{ID: 1, Kind: ForSale, Price: "₹ 2.5 Cr", Beds: 3, Featured: ptr(true)},
		{ID: 2, Kind: ForRent, Price: "₹ 85,000/month", Beds: 2},
		{ID: 3, Kind: ForSale, Price: "₹ 7 Cr", Beds: 5},
		{ID: 4, Kind: ForRent, Price: "₹ 40,000/month", Beds: 1},
		{ID: 5, Kind: ForSale, Price: "₹ 12 Cr", Beds: 4, Featured: ptr(true)},
		{ID: 6, Kind: ForSale, Price: "₹ 95 Lakhs", Beds: 2, Featured: ptr(false)},
		{ID: 7, Kind: ForRent, Price: "₹ 60,000/month", Beds: 2},
		{ID: 8, Kind: ForSale, Price: "₹ 15 Cr", Beds: 4},
	}
}

func ids(listings []Listing) []int {
	out := make([]int, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.ID)
	}
	return out
}

func TestFilterAndSortNoCriteriaPutsFeaturedFirst(t *testing.T) {
	got := ids(FilterAndSort(testCatalog(), FilterCriteria{}))
	want := []int{1, 5, 2, 3, 4, 6, 7, 8}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFilterAndSortTransactionBuy(t *testing.T) {
	catalog := []Listing{
		{ID: 10, Kind: ForSale, Price: "₹ 1 Cr"},
		{ID: 11, Kind: ForRent, Price: "₹ 20,000/month"},
	}
	got := FilterAndSort(catalog, FilterCriteria{Transaction: TransactionBuy})
	if len(got) != 1 || got[0].ID != 10 {
		t.Fatalf("expected only the for-sale listing, got %v", ids(got))
	}

	got = FilterAndSort(catalog, FilterCriteria{Transaction: TransactionRent})
	if len(got) != 1 || got[0].ID != 11 {
		t.Fatalf("expected only the for-rent listing, got %v", ids(got))
	}
}

func TestFilterAndSortPriceBoundsAreInclusive(t *testing.T) {
	// 2.5 Cr reads as 2500 under the legacy heuristic.
	got := ids(FilterAndSort(testCatalog(), FilterCriteria{PriceMin: ptr(2500.0), PriceMax: ptr(2500.0)}))
	if !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("expected [1], got %v", got)
	}
}

func TestFilterAndSortZeroIsAValidBound(t *testing.T) {
	catalog := []Listing{
		{ID: 1, Price: "Price on request"},
		{ID: 2, Price: "₹ 50 Lakhs"},
	}
	got := ids(FilterAndSort(catalog, FilterCriteria{PriceMax: ptr(0.0)}))
	if !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("expected only the digitless price to pass a zero max, got %v", got)
	}
}

func TestFilterAndSortMinBedrooms(t *testing.T) {
	got := ids(FilterAndSort(testCatalog(), FilterCriteria{MinBedrooms: 4}))
	want := []int{5, 3, 8}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFilterAndSortIsIdempotent(t *testing.T) {
	criteria := FilterCriteria{PriceMin: ptr(100.0), MinBedrooms: 2, Transaction: TransactionAll}
	once := FilterAndSort(testCatalog(), criteria)
	twice := FilterAndSort(once, criteria)
	if !reflect.DeepEqual(ids(once), ids(twice)) {
		t.Fatalf("expected idempotence, got %v then %v", ids(once), ids(twice))
	}
}

func TestFilterAndSortIsStableWithinFeaturedGroups(t *testing.T) {
	catalog := []Listing{
		{ID: 1, Price: "1"},
		{ID: 2, Price: "1", Featured: ptr(true)},
		{ID: 3, Price: "1"},
		{ID: 4, Price: "1", Featured: ptr(true)},
		{ID: 5, Price: "1"},
	}
	got := ids(FilterAndSort(catalog, FilterCriteria{}))
	want := []int{2, 4, 1, 3, 5}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFilterAndSortIsMonotonic(t *testing.T) {
	loose := FilterCriteria{PriceMin: ptr(50.0), MinBedrooms: 1}
	tight := FilterCriteria{PriceMin: ptr(1000.0), PriceMax: ptr(5000.0), MinBedrooms: 3, Transaction: TransactionBuy}

	looseIDs := map[int]bool{}
	for _, l := range FilterAndSort(testCatalog(), loose) {
		looseIDs[l.ID] = true
	}
	for _, l := range FilterAndSort(testCatalog(), tight) {
		if !looseIDs[l.ID] {
			t.Fatalf("listing %d passed tight criteria but not loose ones", l.ID)
		}
	}
}

func TestFilterAndSortDoesNotMutateInput(t *testing.T) {
	catalog := testCatalog()
	before := ids(catalog)
	_ = FilterAndSort(catalog, FilterCriteria{Transaction: TransactionRent})
	if !reflect.DeepEqual(before, ids(catalog)) {
		t.Fatalf("input slice was reordered: %v", ids(catalog))
	}
}

func TestFilterAndSortEmptyInput(t *testing.T) {
	got := FilterAndSort(nil, FilterCriteria{})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestFilterAndSortDecimalParser(t *testing.T) {
	// 2.5 Cr is 250 lakhs once the decimal point is respected.
	got := ids(FilterAndSort(testCatalog(), FilterCriteria{
		PriceMin:    ptr(200.0),
		PriceMax:    ptr(300.0),
		PriceParser: PriceParserDecimal,
	}))
	if !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("expected [1], got %v", got)
	}
}

func TestParseTransactionFilter(t *testing.T) {
	cases := map[string]TransactionFilter{"": TransactionAll, "all": TransactionAll, "Buy": TransactionBuy, "RENT": TransactionRent}
	for in, want := range cases {
		got, err := ParseTransactionFilter(in)
		if err != nil || got != want {
			t.Fatalf("ParseTransactionFilter(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseTransactionFilter("Sell"); err == nil {
		t.Fatalf("expected error for unknown filter")
	}
}

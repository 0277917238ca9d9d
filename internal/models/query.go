// internal/models/query.go
package models

import "fmt"

// SortKey selects the ordering of a search result set.
type SortKey string

const (
	SortDefault          SortKey = "default"
	SortCurrentPriceAsc  SortKey = "current_price_asc"
	SortCurrentPriceDesc SortKey = "current_price_desc"
	SortFuturePriceAsc   SortKey = "future_price_asc"
	SortFuturePriceDesc  SortKey = "future_price_desc"
)

// ParseSortKey normalizes a user-supplied sort option. The short forms
// "current_price" and "future_price" map to the ascending variants.
func ParseSortKey(s string) (SortKey, error) {
	switch s {
	case "", string(SortDefault):
		return SortDefault, nil
	case "current_price", string(SortCurrentPriceAsc):
		return SortCurrentPriceAsc, nil
	case string(SortCurrentPriceDesc):
		return SortCurrentPriceDesc, nil
	case "future_price", string(SortFuturePriceAsc):
		return SortFuturePriceAsc, nil
	case string(SortFuturePriceDesc):
		return SortFuturePriceDesc, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// Query is one property search request. Either SearchText or the
// PostcodeDistrict+Street pair must be present.
type Query struct {
	Area             string  `json:"area"`
	SearchText       string  `json:"searchText,omitempty"`
	PostcodeDistrict string  `json:"postcodeDistrict,omitempty"`
	Street           string  `json:"street,omitempty"`
	SortKey          SortKey `json:"sortKey,omitempty"`
}

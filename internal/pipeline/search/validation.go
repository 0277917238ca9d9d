// internal/pipeline/search/validation.go
package search

import (
	"fmt"
	"regexp"
	"strings"

	stderrors "property-search/internal/common/errors"
	"property-search/internal/models"
	"property-search/pkg/areas"
)

var (
	// A UK postcode district: 1-2 letters, 1-2 digits, optional letter
	// (e.g. SW1A, NG8, SS0).
	districtPattern = regexp.MustCompile(`^[A-Za-z]{1,2}\d{1,2}[A-Za-z]?$`)

	// A full UK postcode including the inward part (e.g. SS0 0BW). Full
	// postcodes are not a supported search term.
	fullPostcodePattern = regexp.MustCompile(`^[A-Za-z]{1,2}\d{1,2}[A-Za-z]?\s+\d[A-Za-z]{2}$`)
)

// ValidateQuery checks a query before any I/O happens. All failures are
// user-correctable and reported as ValidationError.
func ValidateQuery(query models.Query, registry *areas.Registry) error {
	if !registry.Contains(query.Area) {
		return stderrors.NewValidationError(fmt.Sprintf("%q is not a recognized area", query.Area))
	}

	text := strings.TrimSpace(query.SearchText)
	district := strings.TrimSpace(query.PostcodeDistrict)
	street := strings.TrimSpace(query.Street)

	if text == "" && (district == "" || street == "") {
		return stderrors.NewValidationError(
			"provide either a search term or both a postcode district and a street name")
	}

	if text != "" && fullPostcodePattern.MatchString(text) {
		return stderrors.NewValidationError(
			"full postcodes are not supported; use an area name, or a postcode district plus street")
	}

	// District and street only come as a pair.
	if (district != "") != (street != "") {
		return stderrors.NewValidationError(
			"searching by street requires both the postcode district and the street name")
	}

	if district != "" && !districtPattern.MatchString(district) {
		return stderrors.NewValidationError(fmt.Sprintf("%q is not a valid postcode district", district))
	}

	if _, err := models.ParseSortKey(string(query.SortKey)); err != nil {
		return stderrors.NewValidationError(err.Error())
	}

	return nil
}

// internal/scansan/models.go
package scansan

import (
	"encoding/json"

	"property-search/internal/models"
)

// FetchResult is the tagged outcome of one fetch. The fallback path is an
// explicit branch, not exception-driven control flow: Source tells callers
// and tests whether the records are live or synthetic.
type FetchResult struct {
	Records []models.PropertyRecord `json:"records"`
	Source  models.Source           `json:"source"`
}

// --- Scansan API payload shapes (documented contract, consumed as-is) ---

type searchResponse struct {
	SearchQuery  string            `json:"search_query"`
	SearchFound  string            `json:"search_found"`
	ResponseTime string            `json:"response_time"`
	Data         []json.RawMessage `json:"data"`
}

type searchResult struct {
	AreaCode struct {
		District string   `json:"area_code_district"`
		Count    int      `json:"area_code_count"`
		List     []string `json:"area_code_list"`
	} `json:"area_code"`
	Borough []string `json:"borough"`
	Ward    []string `json:"ward"`
	Street  struct {
		Count int      `json:"street_count"`
		List  []string `json:"street_list"`
	} `json:"street"`
}

// parsedSearch is the flattened view of a search response.
type parsedSearch struct {
	AreaCodes []string
	Districts []string
	Boroughs  []string
	Wards     []string
	Streets   []string
}

type valuationsResponse struct {
	Data []valuation `json:"data"`
}

type valuation struct {
	PropertyAddress  string  `json:"property_address"`
	LastSoldPrice    int64   `json:"last_sold_price"`
	LastSoldDate     string  `json:"last_sold_date"`
	LowerOutlier     bool    `json:"lower_outlier"`
	UpperOutlier     bool    `json:"upper_outlier"`
	BoundedValuation []int64 `json:"bounded_valuation"`
}

type energyResponse struct {
	Data []energyPerformance `json:"data"`
}

type energyPerformance struct {
	StreetAddress string  `json:"street_address"`
	PropertyType  string  `json:"property_type"`
	Bedrooms      int     `json:"bedrooms"`
	LivingRooms   int     `json:"living_rooms"`
	PropertySize  float64 `json:"property_size"`
	EPC           struct {
		CurrentRating string `json:"current_rating"`
	} `json:"EPC"`
	EnergyConsumption struct {
		CurrentAnnual float64 `json:"current_annual_energy_consumption"`
	} `json:"energy_consumption"`
	CO2Emissions struct {
		Current float64 `json:"current_emissions"`
	} `json:"annual_CO2_emissions"`
	EnergyCosts struct {
		Heating  float64 `json:"current_annual_heating_cost"`
		HotWater float64 `json:"current_annual_hot_water_cost"`
	} `json:"annual_energy_costs"`
}

// AreaSummary aggregates listing counts and price ranges for one area code.
type AreaSummary struct {
	TotalProperties         int     `json:"total_properties"`
	SoldPriceRangeLast5Yrs  []int64 `json:"sold_price_range_in_last_5yrs"`
	CurrentValuationRange   []int64 `json:"current_valuation_range"`
	CurrentRentListings     int     `json:"current_rent_listings"`
	CurrentSaleListings     int     `json:"current_sale_listings"`
}

type summaryResponse struct {
	Data AreaSummary `json:"data"`
}

// SaleRecord is one historical sale for a postcode.
type SaleRecord struct {
	StreetAddress string `json:"street_address"`
	PropertyType  string `json:"property_type"`
	SoldPrice     int64  `json:"sold_price"`
	SoldDate      string `json:"sold_date"`
}

type saleHistoryResponse struct {
	Data []SaleRecord `json:"data"`
}

// ValuationPoint is one dated valuation in a property's history.
type ValuationPoint struct {
	Date      string  `json:"date"`
	Valuation float64 `json:"valuation"`
}

// ValuationHistory is the valuation series for one property.
type ValuationHistory struct {
	PropertyAddress string           `json:"property_address"`
	Valuations      []ValuationPoint `json:"valuations"`
}

type historicalResponse struct {
	Data []ValuationHistory `json:"data"`
}

// internal/models/property.go
package models

// Source records whether a fetched record set came from the live Scansan
// API or from the mock generator.
type Source string

const (
	SourceAPI  Source = "api"
	SourceMock Source = "mock"
)

// PropertyRecord is one raw listing as fetched from the API or synthesized
// by the mock generator. Records are treated as immutable once fetched.
type PropertyRecord struct {
	ID       string `json:"id"`
	Address  string `json:"address"`
	Postcode string `json:"postcode"`
	Area     string `json:"area"`

	CurrentPrice  int64  `json:"currentPrice,omitempty"`
	LastSoldPrice int64  `json:"lastSoldPrice,omitempty"`
	LastSoldDate  string `json:"lastSoldDate,omitempty"`

	Bedrooms     int     `json:"bedrooms,omitempty"`
	LivingRooms  int     `json:"livingRooms,omitempty"`
	PropertyType string  `json:"propertyType,omitempty"`
	FloorArea    float64 `json:"floorArea,omitempty"` // square metres

	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`

	// Raw sustainability inputs from the energy performance endpoint.
	EPCBand           string  `json:"epcBand,omitempty"`
	EnergyConsumption float64 `json:"energyConsumption,omitempty"` // kWh/m²/yr
	CO2Emissions      float64 `json:"co2Emissions,omitempty"`      // tonnes/yr
	HeatingCost       float64 `json:"heatingCost,omitempty"`       // £/yr
	HotWaterCost      float64 `json:"hotWaterCost,omitempty"`      // £/yr
}

// HasPrice reports whether the record carries any usable price signal.
func (r *PropertyRecord) HasPrice() bool {
	return r.CurrentPrice > 0 || r.LastSoldPrice > 0
}

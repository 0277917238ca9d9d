// internal/pipeline/sanitize/sanitizer.go
package sanitize

import (
	"fmt"
	"math"
	"strings"
	"time"

	stderrors "property-search/internal/common/errors"
	"property-search/internal/models"
)

// SchemaVersion tags the feature layout this sanitizer emits. The
// predictor refuses vectors carrying any other version.
const SchemaVersion = "v1"

// Feature vector layout. Index order is a hard contract with the model
// artifact and must not be reordered without bumping SchemaVersion.
const (
	idxCurrentPrice = iota
	idxLastSoldPrice
	idxYearsSinceSale
	idxBedrooms
	idxLivingRooms
	idxFloorArea
	idxTypeDetached
	idxTypeSemi
	idxTypeTerraced
	idxTypeFlat
	idxTypeOther
	idxEPCBand
	idxEnergyConsumption
	idxCO2Emissions
	idxHeatingCost
	idxHotWaterCost

	FeatureCount = 16
)

// Imputation defaults, per field. Values sit near the middle of the
// observed UK housing distributions and are fixed for test determinism.
const (
	defaultBedrooms       = 3.0
	defaultLivingRooms    = 1.0
	defaultFloorArea      = 85.0
	defaultYearsSinceSale = 5.0
	defaultEPCOrdinal     = 4.0 // band D
	defaultEnergy         = 250.0
	defaultCO2            = 2.5
	defaultHeatingCost    = 700.0
	defaultHotWaterCost   = 150.0
)

// Clipping bounds per numeric field, applied after coercion so the model
// never sees out-of-distribution inputs.
var (
	priceBounds    = bounds{10_000, 20_000_000}
	bedroomBounds  = bounds{0, 10}
	livingBounds   = bounds{0, 5}
	areaBounds     = bounds{10, 1000}
	saleAgeBounds  = bounds{0, 100}
	energyBounds   = bounds{0, 1000}
	co2Bounds      = bounds{0, 50}
	heatingBounds  = bounds{0, 10_000}
	hotWaterBounds = bounds{0, 5000}
)

type bounds struct {
	min, max float64
}

func (b bounds) clip(v float64) float64 {
	return math.Min(math.Max(v, b.min), b.max)
}

// epcOrdinals maps EPC bands onto a 1–7 ordinal, best first.
var epcOrdinals = map[string]float64{
	"A": 1, "B": 2, "C": 3, "D": 4, "E": 5, "F": 6, "G": 7,
}

// Sanitizer normalizes raw property records into model-ready feature
// vectors. It is stateless: the same record always yields the same vector.
type Sanitizer struct {
	// now anchors the years-since-sale computation; injectable so tests
	// stay deterministic.
	now time.Time
}

func New() *Sanitizer {
	return &Sanitizer{now: time.Now().UTC()}
}

// NewAt pins the sanitizer's clock, for reproducible tests.
func NewAt(now time.Time) *Sanitizer {
	return &Sanitizer{now: now.UTC()}
}

// Sanitize converts one record into a feature vector, or fails when a
// required field is missing and cannot be imputed.
func (s *Sanitizer) Sanitize(record *models.PropertyRecord) (models.FeatureVector, error) {
	if record == nil {
		return models.FeatureVector{}, stderrors.NewSanitizationError("", "record is nil")
	}
	if strings.TrimSpace(record.Address) == "" {
		return models.FeatureVector{}, stderrors.NewSanitizationError(record.ID, "address is required and cannot be imputed")
	}
	if !record.HasPrice() {
		return models.FeatureVector{}, stderrors.NewSanitizationError(record.ID, "record has neither a current price nor a last sold price")
	}

	values := make([]float64, FeatureCount)

	currentPrice := float64(record.CurrentPrice)
	lastSold := float64(record.LastSoldPrice)
	// Either price can stand in for the other; at least one is present.
	if currentPrice <= 0 {
		currentPrice = lastSold
	}
	if lastSold <= 0 {
		lastSold = currentPrice
	}
	values[idxCurrentPrice] = priceBounds.clip(currentPrice)
	values[idxLastSoldPrice] = priceBounds.clip(lastSold)

	values[idxYearsSinceSale] = saleAgeBounds.clip(s.yearsSinceSale(record.LastSoldDate))
	values[idxBedrooms] = bedroomBounds.clip(imputeInt(record.Bedrooms, defaultBedrooms))
	values[idxLivingRooms] = livingBounds.clip(imputeInt(record.LivingRooms, defaultLivingRooms))
	values[idxFloorArea] = areaBounds.clip(imputeFloat(record.FloorArea, defaultFloorArea))

	encodePropertyType(record.PropertyType, values)

	values[idxEPCBand] = epcOrdinal(record.EPCBand)
	values[idxEnergyConsumption] = energyBounds.clip(imputeFloat(record.EnergyConsumption, defaultEnergy))
	values[idxCO2Emissions] = co2Bounds.clip(imputeFloat(record.CO2Emissions, defaultCO2))
	values[idxHeatingCost] = heatingBounds.clip(imputeFloat(record.HeatingCost, defaultHeatingCost))
	values[idxHotWaterCost] = hotWaterBounds.clip(imputeFloat(record.HotWaterCost, defaultHotWaterCost))

	return models.FeatureVector{SchemaVersion: SchemaVersion, Values: values}, nil
}

// yearsSinceSale parses the last sold date and converts it to fractional
// years before the sanitizer's clock. Unparseable or absent dates impute.
func (s *Sanitizer) yearsSinceSale(lastSoldDate string) float64 {
	if strings.TrimSpace(lastSoldDate) == "" {
		return defaultYearsSinceSale
	}

	t, err := time.Parse("2006-01-02", lastSoldDate)
	if err != nil {
		t, err = time.Parse(time.RFC3339, lastSoldDate)
	}
	if err != nil {
		return defaultYearsSinceSale
	}

	years := s.now.Sub(t).Hours() / (24 * 365.25)
	if years < 0 {
		return 0
	}
	return years
}

// encodePropertyType one-hot encodes the raw property type by keyword:
// flats and maisonettes collapse into flat, unrecognized descriptions
// land in the other bucket.
func encodePropertyType(raw string, values []float64) {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "semi"):
		values[idxTypeSemi] = 1
	case strings.Contains(lower, "detached"):
		values[idxTypeDetached] = 1
	case strings.Contains(lower, "terrace"):
		values[idxTypeTerraced] = 1
	case strings.Contains(lower, "flat"), strings.Contains(lower, "maisonette"):
		values[idxTypeFlat] = 1
	default:
		values[idxTypeOther] = 1
	}
}

func epcOrdinal(band string) float64 {
	if v, ok := epcOrdinals[strings.ToUpper(strings.TrimSpace(band))]; ok {
		return v
	}
	return defaultEPCOrdinal
}

func imputeInt(v int, def float64) float64 {
	if v <= 0 {
		return def
	}
	return float64(v)
}

func imputeFloat(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}

// FeatureName returns the documented name of a feature index, used in
// error details and by the artifact loader's consistency check.
func FeatureName(idx int) string {
	names := [...]string{
		"current_price", "last_sold_price", "years_since_sale",
		"bedrooms", "living_rooms", "floor_area",
		"type_detached", "type_semi", "type_terraced", "type_flat", "type_other",
		"epc_band", "energy_consumption", "co2_emissions",
		"heating_cost", "hot_water_cost",
	}
	if idx < 0 || idx >= len(names) {
		return fmt.Sprintf("feature_%d", idx)
	}
	return names[idx]
}

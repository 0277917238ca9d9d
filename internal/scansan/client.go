// internal/scansan/client.go
package scansan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"property-search/internal/common/config"
	"property-search/internal/common/logger"
	"property-search/internal/common/metrics"
	"property-search/internal/models"
)

// Client talks to the Scansan valuation API. Fetch never fails to the
// caller: one attempt is made against the live API within the configured
// timeout, and any failure falls back to the mock generator.
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client

	maxAreaCodes int
	maxPerCode   int

	mock   *MockGenerator
	logger logger.Logger
}

func NewClient(cfg config.ScansanConfig, mock *MockGenerator, log logger.Logger) *Client {
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		timeout:      cfg.Timeout(),
		maxAreaCodes: cfg.MaxAreaCodes,
		maxPerCode:   cfg.MaxPropertiesPerRow,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
		mock:   mock,
		logger: log.WithFields(map[string]interface{}{"component": "scansan"}),
	}
}

// Fetch resolves a validated query to a record set, live or mock.
func (c *Client) Fetch(ctx context.Context, query models.Query) *FetchResult {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	records, err := c.fetchFromAPI(attemptCtx, query)
	if err == nil && len(records) > 0 {
		return &FetchResult{Records: records, Source: models.SourceAPI}
	}

	if err != nil {
		c.logger.WithError(err).Warn("live fetch failed, falling back to mock data", map[string]interface{}{
			"area": query.Area,
		})
	} else {
		c.logger.Warn("live fetch returned no records, falling back to mock data", map[string]interface{}{
			"area": query.Area,
		})
	}
	metrics.FetchFallbacks.Inc()

	return &FetchResult{Records: c.mock.Generate(query), Source: models.SourceMock}
}

// fetchFromAPI searches for area codes, then pulls current valuations per
// code, enriched best-effort with energy performance data.
func (c *Client) fetchFromAPI(ctx context.Context, query models.Query) ([]models.PropertyRecord, error) {
	parsed, err := c.searchAreaCodes(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(parsed.AreaCodes) == 0 {
		return nil, nil
	}

	areaCodes := parsed.AreaCodes
	if len(areaCodes) > c.maxAreaCodes {
		areaCodes = areaCodes[:c.maxAreaCodes]
	}

	area := query.Area
	if len(parsed.Boroughs) > 0 {
		area = parsed.Boroughs[0]
	} else if len(parsed.Wards) > 0 {
		area = parsed.Wards[0]
	}

	var records []models.PropertyRecord
	for _, code := range areaCodes {
		vals, err := c.currentValuations(ctx, code)
		if err != nil {
			return nil, err
		}

		// Best effort only: missing energy data leaves the
		// sustainability inputs for the sanitizer to impute.
		energy := c.energyPerformance(ctx, code)

		limit := len(vals)
		if limit > c.maxPerCode {
			limit = c.maxPerCode
		}
		for _, val := range vals[:limit] {
			rec := models.PropertyRecord{
				ID:            uuid.NewString(),
				Address:       val.PropertyAddress,
				Postcode:      code,
				Area:          area,
				CurrentPrice:  currentPriceOf(val),
				LastSoldPrice: val.LastSoldPrice,
				LastSoldDate:  val.LastSoldDate,
			}
			if ep, ok := energy[val.PropertyAddress]; ok {
				rec.PropertyType = ep.PropertyType
				rec.Bedrooms = ep.Bedrooms
				rec.LivingRooms = ep.LivingRooms
				rec.FloorArea = ep.PropertySize
				rec.EPCBand = ep.EPC.CurrentRating
				rec.EnergyConsumption = ep.EnergyConsumption.CurrentAnnual
				rec.CO2Emissions = ep.CO2Emissions.Current
				rec.HeatingCost = ep.EnergyCosts.Heating
				rec.HotWaterCost = ep.EnergyCosts.HotWater
			}
			records = append(records, rec)
		}
	}

	return records, nil
}

// currentPriceOf is the midpoint of the bounded valuation range, else the
// last sold price.
func currentPriceOf(val valuation) int64 {
	if n := len(val.BoundedValuation); n > 0 {
		if n >= 2 {
			return (val.BoundedValuation[0] + val.BoundedValuation[n-1]) / 2
		}
		return val.BoundedValuation[0]
	}
	return val.LastSoldPrice
}

// searchAreaCodes resolves the query to area codes via /area_codes/search.
// Valid parameter combinations: area_name, or gbr_district + gbr_street.
func (c *Client) searchAreaCodes(ctx context.Context, query models.Query) (*parsedSearch, error) {
	params := url.Values{}
	switch {
	case query.PostcodeDistrict != "" && query.Street != "":
		params.Set("gbr_district", strings.ToUpper(strings.TrimSpace(query.PostcodeDistrict)))
		params.Set("gbr_street", strings.TrimSpace(query.Street))
	case query.SearchText != "":
		params.Set("area_name", strings.TrimSpace(query.SearchText))
	default:
		params.Set("area_name", strings.TrimSpace(query.Area))
	}

	body, err := c.doGet(ctx, c.baseURL+"/area_codes/search", params)
	if err != nil {
		return nil, err
	}
	if err := validatePayload(body, searchResponseSchema); err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal search response: %w", err)
	}

	return flattenSearch(&resp), nil
}

// flattenSearch walks the search payload, which nests its results one list
// deep but has been observed flat as well.
func flattenSearch(resp *searchResponse) *parsedSearch {
	parsed := &parsedSearch{}

	collect := func(item searchResult) {
		parsed.AreaCodes = append(parsed.AreaCodes, item.AreaCode.List...)
		if item.AreaCode.District != "" {
			parsed.Districts = append(parsed.Districts, item.AreaCode.District)
		}
		parsed.Boroughs = append(parsed.Boroughs, item.Borough...)
		parsed.Wards = append(parsed.Wards, item.Ward...)
		parsed.Streets = append(parsed.Streets, item.Street.List...)
	}

	for _, raw := range resp.Data {
		var nested []searchResult
		if err := json.Unmarshal(raw, &nested); err == nil {
			for _, item := range nested {
				collect(item)
			}
			continue
		}
		var flat searchResult
		if err := json.Unmarshal(raw, &flat); err == nil {
			collect(flat)
		}
	}

	return parsed
}

func (c *Client) currentValuations(ctx context.Context, areaCode string) ([]valuation, error) {
	params := url.Values{}
	params.Set("area_code", areaCode)

	body, err := c.doGet(ctx, fmt.Sprintf("%s/postcode/%s/valuations/current", c.baseURL, url.PathEscape(areaCode)), params)
	if err != nil {
		return nil, err
	}
	if err := validatePayload(body, valuationsResponseSchema); err != nil {
		return nil, err
	}

	var resp valuationsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal valuations response: %w", err)
	}
	return resp.Data, nil
}

// energyPerformance returns the EPC records for a postcode keyed by street
// address. Errors are swallowed: energy data only enriches records.
func (c *Client) energyPerformance(ctx context.Context, areaCode string) map[string]energyPerformance {
	body, err := c.doGet(ctx, fmt.Sprintf("%s/postcode/%s/energy/performance", c.baseURL, url.PathEscape(areaCode)), nil)
	if err != nil {
		c.logger.WithError(err).Debug("energy performance lookup failed", map[string]interface{}{
			"areaCode": areaCode,
		})
		return nil
	}

	var resp energyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil
	}

	byAddress := make(map[string]energyPerformance, len(resp.Data))
	for _, ep := range resp.Data {
		byAddress[ep.StreetAddress] = ep
	}
	return byAddress
}

// CheckArea asks the live API whether an area name resolves to anything.
// Used by the area-validator tool to vet the registry.
func (c *Client) CheckArea(ctx context.Context, name string) (bool, error) {
	parsed, err := c.searchAreaCodes(ctx, models.Query{Area: name})
	if err != nil {
		return false, err
	}
	return len(parsed.AreaCodes) > 0, nil
}

// Summary returns the listing summary for one area code.
func (c *Client) Summary(ctx context.Context, areaCode string) (*AreaSummary, error) {
	params := url.Values{}
	params.Set("area_code", areaCode)

	body, err := c.doGet(ctx, fmt.Sprintf("%s/area_codes/%s/summary", c.baseURL, url.PathEscape(areaCode)), params)
	if err != nil {
		return nil, err
	}

	var resp summaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary response: %w", err)
	}
	return &resp.Data, nil
}

// SaleHistory returns past sales for a postcode.
func (c *Client) SaleHistory(ctx context.Context, postcode string) ([]SaleRecord, error) {
	params := url.Values{}
	params.Set("area_code", postcode)

	body, err := c.doGet(ctx, fmt.Sprintf("%s/postcode/%s/sale/history", c.baseURL, url.PathEscape(postcode)), params)
	if err != nil {
		return nil, err
	}

	var resp saleHistoryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sale history response: %w", err)
	}
	return resp.Data, nil
}

// HistoricalValuations returns the dated valuation series for a postcode.
func (c *Client) HistoricalValuations(ctx context.Context, postcode string) ([]ValuationHistory, error) {
	params := url.Values{}
	params.Set("area_code", postcode)

	body, err := c.doGet(ctx, fmt.Sprintf("%s/postcode/%s/valuations/historical", c.baseURL, url.PathEscape(postcode)), params)
	if err != nil {
		return nil, err
	}

	var resp historicalResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal historical valuations response: %w", err)
	}
	return resp.Data, nil
}

func (c *Client) doGet(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	if len(params) > 0 {
		rawURL = rawURL + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Auth-Token", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed (status %d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// pkg/areas/areas.go
//
// Package areas holds the registry of UK areas the search supports,
// together with the price bands used when synthesizing fallback data.
package areas

import (
	"encoding/json"
	"os"
	"sort"
)

// Area describes one supported search area.
type Area struct {
	Name     string   `json:"name"`
	Region   string   `json:"region"`
	MinPrice int64    `json:"minPrice"`
	MaxPrice int64    `json:"maxPrice"`
	Streets  []string `json:"streets,omitempty"`
}

// Registry is the enumerated set of valid areas.
type Registry struct {
	Version string `json:"version"`
	Areas   []Area `json:"areas"`

	byName map[string]Area
}

// Load reads a registry from a JSON file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}
	reg.index()
	return &reg, nil
}

func (r *Registry) index() {
	r.byName = make(map[string]Area, len(r.Areas))
	for _, a := range r.Areas {
		r.byName[a.Name] = a
	}
}

// Contains reports whether name is a recognized area.
func (r *Registry) Contains(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Get returns the area entry for name.
func (r *Registry) Get(name string) (Area, bool) {
	a, ok := r.byName[name]
	return a, ok
}

// Names returns the area names in alphabetical order, for dropdowns.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default returns the built-in registry covering the major UK cities and
// London districts.
func Default() *Registry {
	reg := &Registry{
		Version: "1",
		Areas: []Area{
			{Name: "London", Region: "Greater London", MinPrice: 450_000, MaxPrice: 1_500_000,
				Streets: []string{"Baker Street", "Abbey Road", "Portobello Road"}},
			{Name: "Camden", Region: "Greater London", MinPrice: 500_000, MaxPrice: 1_400_000,
				Streets: []string{"Baker Street", "Camden High Street", "Parkway"}},
			{Name: "Brixton", Region: "Greater London", MinPrice: 400_000, MaxPrice: 950_000,
				Streets: []string{"Electric Avenue", "Coldharbour Lane", "Atlantic Road"}},
			{Name: "Manchester", Region: "North West", MinPrice: 180_000, MaxPrice: 550_000,
				Streets: []string{"Deansgate", "Oxford Road", "Piccadilly"}},
			{Name: "Birmingham", Region: "West Midlands", MinPrice: 150_000, MaxPrice: 450_000,
				Streets: []string{"New Street", "Broad Street", "Corporation Street"}},
			{Name: "Leeds", Region: "Yorkshire", MinPrice: 150_000, MaxPrice: 430_000,
				Streets: []string{"Briggate", "The Headrow", "Park Row"}},
			{Name: "Glasgow", Region: "Scotland", MinPrice: 130_000, MaxPrice: 480_000,
				Streets: []string{"Buchanan Street", "Sauchiehall Street", "George Square"}},
			{Name: "Edinburgh", Region: "Scotland", MinPrice: 250_000, MaxPrice: 800_000,
				Streets: []string{"Princes Street", "Royal Mile", "Grassmarket"}},
			{Name: "Bristol", Region: "South West", MinPrice: 200_000, MaxPrice: 500_000,
				Streets: []string{"Park Street", "Clifton Down", "Whiteladies Road"}},
			{Name: "Liverpool", Region: "North West", MinPrice: 120_000, MaxPrice: 380_000,
				Streets: []string{"Bold Street", "Lime Street", "Hope Street"}},
			{Name: "Cardiff", Region: "Wales", MinPrice: 140_000, MaxPrice: 430_000,
				Streets: []string{"Queen Street", "St Mary Street", "Cathedral Road"}},
			{Name: "Belfast", Region: "Northern Ireland", MinPrice: 110_000, MaxPrice: 320_000,
				Streets: []string{"Royal Avenue", "Donegall Place", "Botanic Avenue"}},
			{Name: "Aberdeen", Region: "Scotland", MinPrice: 110_000, MaxPrice: 350_000,
				Streets: []string{"Union Street", "King Street", "Holburn Street"}},
			{Name: "Nottingham", Region: "East Midlands", MinPrice: 140_000, MaxPrice: 400_000,
				Streets: []string{"Market Street", "Derby Road", "Mansfield Road"}},
		},
	}
	reg.index()
	return reg
}

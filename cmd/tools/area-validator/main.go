// cmd/tools/area-validator/main.go
//
// Checks every area in the registry against the live Scansan API and
// reports which ones still resolve to search results. Run before
// shipping registry changes so the dropdown never offers a dead area.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"property-search/internal/common/config"
	"property-search/internal/common/logger"
	"property-search/internal/scansan"
	"property-search/pkg/areas"
)

type results struct {
	Valid   []string `json:"valid"`
	Invalid []string `json:"invalid"`
	Errors  []string `json:"error"`
}

func main() {
	outPath := flag.String("out", "validation_results.json", "Where to write the JSON report")
	registryPath := flag.String("registry", "", "Optional registry JSON; defaults to the built-in area list")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	registry := areas.Default()
	if *registryPath != "" {
		registry, err = areas.Load(*registryPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "registry load failed: %v\n", err)
			os.Exit(1)
		}
	}

	log := logger.NewNoOpLogger()
	mock := scansan.NewMockGenerator(registry, cfg.Search.MockRecordCount)
	client := scansan.NewClient(cfg.Scansan, mock, log)

	ctx := context.Background()
	names := registry.Names()
	res := results{}

	fmt.Printf("Validating %d UK areas...\n", len(names))
	for i, name := range names {
		found, err := client.CheckArea(ctx, name)
		switch {
		case err != nil:
			res.Errors = append(res.Errors, name)
			fmt.Printf("[%d/%d] ERROR %-20s %v\n", i+1, len(names), name, err)
		case found:
			res.Valid = append(res.Valid, name)
			fmt.Printf("[%d/%d] ok    %-20s\n", i+1, len(names), name)
		default:
			res.Invalid = append(res.Invalid, name)
			fmt.Printf("[%d/%d] MISS  %-20s no results\n", i+1, len(names), name)
		}
	}

	fmt.Printf("\nvalid=%d invalid=%d errors=%d\n", len(res.Valid), len(res.Invalid), len(res.Errors))
	if len(res.Invalid) > 0 {
		fmt.Println("Areas that should be removed from the registry:")
		for _, name := range res.Invalid {
			fmt.Printf("  - %s\n", name)
		}
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal results: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write results: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Results saved to %s\n", *outPath)
}

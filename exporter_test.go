package shopsync

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestExportScrapeOutput(t *testing.T) {
	dir := t.TempDir()
	p := testPipeline(Config{OutputDir: dir})

	output := &ScrapeOutput{
		Store:    Store{Name: "Cool Gear Store", Handle: "cool-gear-store", Currency: "USD"},
		Products: []Product{{ID: "1", Title: "Shirt", Tags: nil}},
		Variants: []Variant{{ID: "11", ProductID: "1", Title: "Default", Price: "9.99", WeightUnit: "kg", Currency: "USD"}},
	}

	path, err := p.exportScrapeOutput(context.Background(), "cool-gear-store.com", output)
	if err != nil {
		t.Fatalf("exportScrapeOutput returned error: %v", err)
	}
	if filepath.Base(path) != "cool-gear-store.com.json" {
		t.Errorf("artifact named %q, want <hostname>.json", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	var document map[string]json.RawMessage
	if err := json.Unmarshal(data, &document); err != nil {
		t.Fatalf("artifact is not valid JSON: %v", err)
	}
	for _, key := range []string{"store", "products", "product_variants"} {
		if _, ok := document[key]; !ok {
			t.Errorf("artifact missing top-level %q", key)
		}
	}

	// Tags of a tagless product must serialize as null, not [].
	var parsed struct {
		Products []struct {
			Tags json.RawMessage `json:"tags"`
		} `json:"products"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("parse products: %v", err)
	}
	if string(parsed.Products[0].Tags) != "null" {
		t.Errorf("tags = %s, want null", parsed.Products[0].Tags)
	}
}

func TestBuildStore(t *testing.T) {
	info := ShopInfo{Currency: "EUR", LogoURL: "https://cdn/shop-logo.png", Description: "from shopinfo"}

	store := buildStore("cool-gear-store.com", info, "", "")
	if store.Name != "Cool Gear Store" || store.Handle != "cool-gear-store" {
		t.Errorf("store = %+v", store)
	}
	if store.URL != "https://cool-gear-store.com" {
		t.Errorf("URL = %q", store.URL)
	}
	if !store.IsShopify || store.Platform != "shopify" || store.ShopifyDomain != "cool-gear-store.com" {
		t.Errorf("shopify link fields = %+v", store)
	}
	if store.Currency != "EUR" || len(store.SupportedCurrencies) != 1 || store.SupportedCurrencies[0] != "EUR" {
		t.Errorf("currency fields = %+v", store)
	}
	if store.LogoURL != "https://cdn/shop-logo.png" || store.Description != "from shopinfo" {
		t.Errorf("branding fields = %+v", store)
	}

	// CLI-supplied values override shop-info branding.
	overridden := buildStore("cool-gear-store.com", info, "https://cdn/cli-logo.png", "from cli")
	if overridden.LogoURL != "https://cdn/cli-logo.png" || overridden.Description != "from cli" {
		t.Errorf("overrides not applied: %+v", overridden)
	}
}
